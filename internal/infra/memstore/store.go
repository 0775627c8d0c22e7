// Package memstore keeps every repository in process memory. It backs the
// use case tests and STORE=memory runs.
package memstore

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/BruksfildServices01/barber-queue/internal/audit"
	"github.com/BruksfildServices01/barber-queue/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-queue/internal/domain/barber"
	"github.com/BruksfildServices01/barber-queue/internal/domain/catalog"
	"github.com/BruksfildServices01/barber-queue/internal/domain/crm"
	"github.com/BruksfildServices01/barber-queue/internal/domain/finance"
	"github.com/BruksfildServices01/barber-queue/internal/domain/inventory"
	"github.com/BruksfildServices01/barber-queue/internal/domain/queue"
	"github.com/BruksfildServices01/barber-queue/internal/models"
)

type profileKey struct {
	barberID uint
	phone    string
}

type Store struct {
	mu sync.Mutex

	entries      map[string]models.QueueEntry
	appointments map[string]models.Appointment
	profiles     map[profileKey]models.ClientProfile
	photos       []models.ClientPhoto
	services     map[uint]models.Service
	products     map[uint]models.Product
	expenses     map[uint]models.Expense
	statuses     map[uint]models.BarberStatus
	users        map[uint]models.User
	shops        map[uint]models.Barbershop
	auditLogs    []models.AuditLog

	seq uint
}

func New() *Store {
	return &Store{
		entries:      make(map[string]models.QueueEntry),
		appointments: make(map[string]models.Appointment),
		profiles:     make(map[profileKey]models.ClientProfile),
		services:     make(map[uint]models.Service),
		products:     make(map[uint]models.Product),
		expenses:     make(map[uint]models.Expense),
		statuses:     make(map[uint]models.BarberStatus),
		users:        make(map[uint]models.User),
		shops:        make(map[uint]models.Barbershop),
	}
}

func (s *Store) nextID() uint {
	s.seq++
	return s.seq
}

func copyEntry(e models.QueueEntry) *models.QueueEntry {
	e.Materials = e.Materials.Clone()
	return &e
}

// ===============================
// Queue
// ===============================

func (s *Store) MaxOrder(_ context.Context, barberID uint) (*int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var max *int64
	for _, e := range s.entries {
		if e.BarberID != barberID || e.Status != string(queue.StatusWaiting) || e.Order == nil {
			continue
		}
		if max == nil || *e.Order > *max {
			v := *e.Order
			max = &v
		}
	}
	return max, nil
}

func (s *Store) MinWaitingOrder(_ context.Context, barberID uint) (*int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var min *int64
	for _, e := range s.entries {
		if e.BarberID != barberID || e.Status != string(queue.StatusWaiting) || e.Order == nil {
			continue
		}
		if min == nil || *e.Order < *min {
			v := *e.Order
			min = &v
		}
	}
	return min, nil
}

// orderTaken reports whether another waiting entry of the barber holds order.
func (s *Store) orderTaken(barberID uint, order int64, exceptID string) bool {
	for id, e := range s.entries {
		if id == exceptID || e.BarberID != barberID || e.Status != string(queue.StatusWaiting) {
			continue
		}
		if e.Order != nil && *e.Order == order {
			return true
		}
	}
	return false
}

func (s *Store) ApplyOrders(_ context.Context, barberID uint, assignments []queue.OrderAssignment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make(map[string]int64, len(assignments))
	for _, a := range assignments {
		e, ok := s.entries[a.ID]
		if !ok || e.BarberID != barberID || e.Status != string(queue.StatusWaiting) {
			return queue.ErrEntryNotFound
		}
		next[a.ID] = a.Order
	}

	// valida o estado final antes de escrever
	seen := map[int64]bool{}
	for id, e := range s.entries {
		if e.BarberID != barberID || e.Status != string(queue.StatusWaiting) {
			continue
		}
		o, moved := next[id]
		if !moved {
			if e.Order == nil {
				continue
			}
			o = *e.Order
		}
		if seen[o] {
			return queue.ErrOrderConflict
		}
		seen[o] = true
	}

	for id, o := range next {
		e := s.entries[id]
		v := o
		e.Order = &v
		s.entries[id] = e
	}
	return nil
}

func (s *Store) CreateEntry(_ context.Context, e *models.QueueEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.entries[e.ID]; exists {
		return fmt.Errorf("memstore: duplicate entry id %s", e.ID)
	}
	if e.Status == string(queue.StatusWaiting) && e.Order != nil && s.orderTaken(e.BarberID, *e.Order, e.ID) {
		return queue.ErrOrderConflict
	}

	now := time.Now()
	e.CreatedAt, e.UpdatedAt = now, now
	s.entries[e.ID] = *copyEntry(*e)
	return nil
}

func (s *Store) GetEntry(_ context.Context, barberID uint, id string) (*models.QueueEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[id]
	if !ok || e.BarberID != barberID {
		return nil, queue.ErrEntryNotFound
	}
	return copyEntry(e), nil
}

func (s *Store) DeleteEntry(_ context.Context, barberID uint, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[id]
	if !ok || e.BarberID != barberID {
		return queue.ErrEntryNotFound
	}
	delete(s.entries, id)
	return nil
}

func (s *Store) ListWaiting(_ context.Context, barberID uint) ([]models.QueueEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.QueueEntry, 0)
	for _, e := range s.entries {
		if e.BarberID == barberID && e.Status == string(queue.StatusWaiting) {
			out = append(out, *copyEntry(e))
		}
	}
	queue.SortWaiting(out)
	return out, nil
}

func (s *Store) ListCompleted(_ context.Context, barberID uint, since time.Time) ([]models.QueueEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.QueueEntry, 0)
	for _, e := range s.entries {
		if e.BarberID != barberID || e.Status != string(queue.StatusDone) {
			continue
		}
		if !since.IsZero() && e.EffectiveTime().Before(since) {
			continue
		}
		out = append(out, *copyEntry(e))
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].EffectiveTime().Before(out[j].EffectiveTime())
	})
	return out, nil
}

func (s *Store) UpdateEntryDetails(_ context.Context, barberID uint, id string, patch queue.EntryPatch) (*models.QueueEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[id]
	if !ok || e.BarberID != barberID {
		return nil, queue.ErrEntryNotFound
	}
	if err := queue.CanEdit(queue.Status(e.Status)); err != nil {
		return nil, err
	}

	patch.Apply(&e)
	e.UpdatedAt = time.Now()
	s.entries[id] = e
	return copyEntry(e), nil
}

func (s *Store) TransitionEntry(_ context.Context, barberID uint, id string, t queue.Transition) (*models.QueueEntry, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[id]
	if !ok || e.BarberID != barberID {
		return nil, false, queue.ErrEntryNotFound
	}
	if e.Status != string(t.From) {
		return copyEntry(e), false, nil
	}
	if t.Order != nil && t.To == queue.StatusWaiting && s.orderTaken(barberID, *t.Order, id) {
		return nil, false, queue.ErrOrderConflict
	}

	e.Status = string(t.To)
	if t.CompletedAt != nil {
		v := *t.CompletedAt
		e.CompletedAt = &v
	}
	if t.ClearCompleted {
		e.CompletedAt = nil
	}
	if t.CancelledAt != nil {
		v := *t.CancelledAt
		e.CancelledAt = &v
	}
	if t.PaymentMethod != "" {
		e.PaymentMethod = string(t.PaymentMethod)
	}
	if t.Order != nil {
		v := *t.Order
		e.Order = &v
	}
	e.UpdatedAt = time.Now()
	s.entries[id] = e
	return copyEntry(e), true, nil
}

func (s *Store) SetRating(_ context.Context, barberID uint, id string, stars int) (*models.QueueEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[id]
	if !ok || e.BarberID != barberID {
		return nil, queue.ErrEntryNotFound
	}
	if err := queue.CanRate(queue.Status(e.Status)); err != nil {
		return nil, err
	}
	r := stars
	e.Rating = &r
	s.entries[id] = e
	return copyEntry(e), nil
}

// ===============================
// Appointments
// ===============================

func (s *Store) CreateAppointments(_ context.Context, aps []models.Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, ap := range aps {
		if _, exists := s.appointments[ap.ID]; exists {
			return fmt.Errorf("memstore: duplicate appointment id %s", ap.ID)
		}
	}
	now := time.Now()
	for _, ap := range aps {
		ap.CreatedAt, ap.UpdatedAt = now, now
		ap.Materials = ap.Materials.Clone()
		s.appointments[ap.ID] = ap
	}
	return nil
}

func (s *Store) GetAppointment(_ context.Context, barberID uint, id string) (*models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ap, ok := s.appointments[id]
	if !ok || ap.BarberID != barberID {
		return nil, appointment.ErrNotFound
	}
	ap.Materials = ap.Materials.Clone()
	return &ap, nil
}

func (s *Store) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.appointments[ap.ID]
	if !ok || cur.BarberID != ap.BarberID {
		return appointment.ErrNotFound
	}
	v := *ap
	v.Materials = ap.Materials.Clone()
	v.UpdatedAt = time.Now()
	s.appointments[ap.ID] = v
	return nil
}

func (s *Store) PromoteToQueue(_ context.Context, barberID uint, id string, entry *models.QueueEntry, movedAt time.Time) (*models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ap, ok := s.appointments[id]
	if !ok || ap.BarberID != barberID {
		return nil, appointment.ErrNotFound
	}
	if err := appointment.CanPromote(appointment.Status(ap.Status)); err != nil {
		return nil, err
	}
	if entry.Order != nil && s.orderTaken(barberID, *entry.Order, entry.ID) {
		return nil, queue.ErrOrderConflict
	}

	entry.CreatedAt, entry.UpdatedAt = movedAt, movedAt
	s.entries[entry.ID] = *copyEntry(*entry)

	entryID := entry.ID
	at := movedAt
	ap.Status = string(appointment.StatusMovedToQueue)
	ap.MovedAt = &at
	ap.QueueEntryID = &entryID
	ap.UpdatedAt = movedAt
	s.appointments[id] = ap

	ap.Materials = ap.Materials.Clone()
	return &ap, nil
}

func (s *Store) ListAppointmentsForPeriod(_ context.Context, barberID uint, start, end time.Time) ([]models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Appointment, 0)
	for _, ap := range s.appointments {
		if ap.BarberID != barberID || ap.ScheduledDate.Before(start) || !ap.ScheduledDate.Before(end) {
			continue
		}
		ap.Materials = ap.Materials.Clone()
		out = append(out, ap)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].ScheduledDate.Equal(out[j].ScheduledDate) {
			return out[i].ScheduledDate.Before(out[j].ScheduledDate)
		}
		if out[i].ScheduledTime != out[j].ScheduledTime {
			return out[i].ScheduledTime < out[j].ScheduledTime
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// ===============================
// CRM
// ===============================

func (s *Store) ApplyProfileUpdate(_ context.Context, barberID uint, key string, u crm.ProfileUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := profileKey{barberID, key}
	p, ok := s.profiles[k]
	if !ok {
		p = u.Seed(barberID, key)
		p.ID = s.nextID()
		p.CreatedAt = time.Now()
	} else {
		u.Apply(&p)
	}
	p.UpdatedAt = time.Now()
	s.profiles[k] = p
	return nil
}

func (s *Store) SeedProfile(_ context.Context, barberID uint, key string, u crm.ProfileUpdate) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := profileKey{barberID, key}
	if _, ok := s.profiles[k]; ok {
		return false, nil
	}
	p := u.Seed(barberID, key)
	p.ID = s.nextID()
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	s.profiles[k] = p
	return true, nil
}

func (s *Store) GetProfile(_ context.Context, barberID uint, key string) (*models.ClientProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.profiles[profileKey{barberID, key}]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (s *Store) ListProfiles(_ context.Context, barberID uint) ([]models.ClientProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.ClientProfile, 0)
	for k, p := range s.profiles {
		if k.barberID == barberID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Store) CountProfiles(_ context.Context, barberID uint) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for k := range s.profiles {
		if k.barberID == barberID {
			n++
		}
	}
	return n, nil
}

func (s *Store) AppendPhoto(_ context.Context, photo *models.ClientPhoto) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if photo.EntryID != "" {
		for _, existing := range s.photos {
			if existing.BarberID == photo.BarberID && existing.EntryID == photo.EntryID {
				*photo = existing
				return nil
			}
		}
	}

	photo.ID = s.nextID()
	if photo.CreatedAt.IsZero() {
		photo.CreatedAt = time.Now()
	}
	s.photos = append(s.photos, *photo)
	return nil
}

func (s *Store) ListPhotos(_ context.Context, barberID uint, key string) ([]models.ClientPhoto, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.ClientPhoto, 0)
	for i := len(s.photos) - 1; i >= 0; i-- {
		if p := s.photos[i]; p.BarberID == barberID && p.Phone == key {
			out = append(out, p)
		}
	}
	return out, nil
}

// ===============================
// Catalog
// ===============================

func (s *Store) CreateService(_ context.Context, svc *models.Service) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	svc.ID = s.nextID()
	v := *svc
	v.Materials = svc.Materials.Clone()
	s.services[svc.ID] = v
	return nil
}

func (s *Store) GetService(_ context.Context, barberID, id uint) (*models.Service, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	svc, ok := s.services[id]
	if !ok || svc.BarberID != barberID {
		return nil, catalog.ErrServiceNotFound
	}
	svc.Materials = svc.Materials.Clone()
	return &svc, nil
}

func (s *Store) SaveService(_ context.Context, svc *models.Service) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.services[svc.ID]
	if !ok || cur.BarberID != svc.BarberID {
		return catalog.ErrServiceNotFound
	}
	v := *svc
	v.Materials = svc.Materials.Clone()
	s.services[svc.ID] = v
	return nil
}

func (s *Store) ListServices(_ context.Context, barberID uint, activeOnly bool) ([]models.Service, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Service, 0)
	for _, svc := range s.services {
		if svc.BarberID != barberID || (activeOnly && !svc.Active) {
			continue
		}
		svc.Materials = svc.Materials.Clone()
		out = append(out, svc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// ===============================
// Inventory
// ===============================

func (s *Store) CreateProduct(_ context.Context, p *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p.ID = s.nextID()
	s.products[p.ID] = *p
	return nil
}

func (s *Store) GetProduct(_ context.Context, barberID, id uint) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[id]
	if !ok || p.BarberID != barberID {
		return nil, inventory.ErrProductNotFound
	}
	return &p, nil
}

func (s *Store) SaveProduct(_ context.Context, p *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.products[p.ID]
	if !ok || cur.BarberID != p.BarberID {
		return inventory.ErrProductNotFound
	}
	s.products[p.ID] = *p
	return nil
}

func (s *Store) DeleteProduct(_ context.Context, barberID, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[id]
	if !ok || p.BarberID != barberID {
		return inventory.ErrProductNotFound
	}
	delete(s.products, id)
	return nil
}

func (s *Store) ListProducts(_ context.Context, barberID uint) ([]models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Product, 0)
	for _, p := range s.products {
		if p.BarberID == barberID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Store) AdjustQuantity(_ context.Context, barberID, productID uint, delta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[productID]
	if !ok || p.BarberID != barberID {
		return inventory.ErrProductNotFound
	}
	p.Quantity += delta
	s.products[productID] = p
	return nil
}

// ===============================
// Finance
// ===============================

func (s *Store) CreateExpense(_ context.Context, e *models.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e.ID = s.nextID()
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	s.expenses[e.ID] = *e
	return nil
}

func (s *Store) DeleteExpense(_ context.Context, barberID, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.expenses[id]
	if !ok || e.BarberID != barberID {
		return finance.ErrExpenseNotFound
	}
	delete(s.expenses, id)
	return nil
}

func (s *Store) ListExpenses(_ context.Context, barberID uint, from, to time.Time) ([]models.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Expense, 0)
	for _, e := range s.expenses {
		if e.BarberID != barberID || e.CreatedAt.Before(from) || !e.CreatedAt.Before(to) {
			continue
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *Store) GetGoals(_ context.Context, barberID uint) (finance.Goals, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[barberID]
	if !ok {
		return finance.Goals{}, barber.ErrBarberNotFound
	}
	return finance.GoalsOf(&u), nil
}

func (s *Store) SaveGoals(_ context.Context, barberID uint, g finance.Goals) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[barberID]
	if !ok {
		return barber.ErrBarberNotFound
	}
	u.DailyGoal, u.MonthlyGoal, u.FixedCosts = g.DailyGoal, g.MonthlyGoal, g.FixedCosts
	s.users[barberID] = u
	return nil
}

// ===============================
// Barbers
// ===============================

func (s *Store) GetStatus(_ context.Context, barberID uint) (*models.BarberStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.statuses[barberID]
	if !ok {
		return nil, nil
	}
	return &st, nil
}

func (s *Store) SaveStatus(_ context.Context, st *models.BarberStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	st.UpdatedAt = time.Now()
	s.statuses[st.BarberID] = *st
	return nil
}

func (s *Store) ListExpiredBreaks(_ context.Context, now time.Time) ([]models.BarberStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.BarberStatus, 0)
	for _, st := range s.statuses {
		if barber.Expired(&st, now) {
			out = append(out, st)
		}
	}
	return out, nil
}

func (s *Store) withShop(u models.User) *models.User {
	u.Barbershop = s.shops[u.BarbershopID]
	return &u
}

func (s *Store) GetBarber(_ context.Context, barberID uint) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[barberID]
	if !ok {
		return nil, barber.ErrBarberNotFound
	}
	return s.withShop(u), nil
}

func (s *Store) FindBarberBySlug(_ context.Context, slug string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, shop := range s.shops {
		if shop.Slug != slug {
			continue
		}
		var found *models.User
		for _, u := range s.users {
			if u.BarbershopID == shop.ID && (found == nil || u.ID < found.ID) {
				found = s.withShop(u)
			}
		}
		if found != nil {
			return found, nil
		}
	}
	return nil, barber.ErrBarberNotFound
}

func (s *Store) FindBarberByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == email {
			return s.withShop(u), nil
		}
	}
	return nil, barber.ErrBarberNotFound
}

func (s *Store) SlugExists(_ context.Context, slug string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, shop := range s.shops {
		if shop.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) ListBarberIDs(_ context.Context) ([]uint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]uint, 0, len(s.users))
	for id := range s.users {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (s *Store) CreateBarber(_ context.Context, shop *models.Barbershop, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == user.Email {
			return barber.ErrEmailTaken
		}
	}

	shop.ID = s.nextID()
	if shop.Timezone == "" {
		shop.Timezone = "America/Sao_Paulo"
	}
	s.shops[shop.ID] = *shop

	user.ID = s.nextID()
	user.BarbershopID = shop.ID
	user.Barbershop = *shop
	s.users[user.ID] = *user
	return nil
}

func (s *Store) SaveBarbershop(_ context.Context, shop *models.Barbershop) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.shops[shop.ID]; !ok {
		return barber.ErrBarberNotFound
	}
	s.shops[shop.ID] = *shop
	return nil
}

// ===============================
// Audit
// ===============================

func (s *Store) WriteAuditLog(_ context.Context, log *models.AuditLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	log.ID = s.nextID()
	s.auditLogs = append(s.auditLogs, *log)
	return nil
}

func (s *Store) ListAuditLogs(_ context.Context, q audit.Query) ([]models.AuditLog, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	matched := make([]models.AuditLog, 0)
	for i := len(s.auditLogs) - 1; i >= 0; i-- {
		l := s.auditLogs[i]
		if l.BarberID != q.BarberID ||
			(q.Action != "" && l.Action != q.Action) ||
			(q.Entity != "" && l.Entity != q.Entity) ||
			(q.From != nil && l.CreatedAt.Before(*q.From)) ||
			(q.To != nil && !l.CreatedAt.Before(*q.To)) {
			continue
		}
		matched = append(matched, l)
	}

	total := int64(len(matched))
	if q.Offset >= len(matched) {
		return []models.AuditLog{}, total, nil
	}
	matched = matched[q.Offset:]
	if q.Limit > 0 && q.Limit < len(matched) {
		matched = matched[:q.Limit]
	}
	return matched, total, nil
}

var (
	_ queue.Repository       = (*Store)(nil)
	_ appointment.Repository = (*Store)(nil)
	_ crm.Repository         = (*Store)(nil)
	_ catalog.Repository     = (*Store)(nil)
	_ inventory.Repository   = (*Store)(nil)
	_ finance.Repository     = (*Store)(nil)
	_ barber.Repository      = (*Store)(nil)
	_ audit.Sink             = (*Store)(nil)
	_ audit.Reader           = (*Store)(nil)
)
