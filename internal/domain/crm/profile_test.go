package crm

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-queue/internal/models"
)

func TestNormalizePhone(t *testing.T) {
	assert.Equal(t, "5511999990000", NormalizePhone("+55 (11) 99999-0000"))
	assert.Equal(t, "", NormalizePhone("sem telefone"))
}

func TestSeedTreatsIncrementsAsInitialValues(t *testing.T) {
	name := "Bruno"
	p := ProfileUpdate{Name: &name, IncrementVisits: 1, AddSpent: decimal.NewFromInt(40)}.Seed(2, "11999990000")

	assert.Equal(t, uint(2), p.BarberID)
	assert.Equal(t, "11999990000", p.Phone)
	assert.Equal(t, "Bruno", p.Name)
	assert.Equal(t, int64(1), p.TotalVisits)
	assert.True(t, decimal.NewFromInt(40).Equal(p.TotalSpent))
}

func TestApplyIncrementsExistingProfile(t *testing.T) {
	visit := time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC)
	service := "Barba"
	p := models.ClientProfile{Name: "Bruno", TotalVisits: 4, TotalSpent: decimal.NewFromInt(100)}

	ProfileUpdate{LastVisit: &visit, LastService: &service, IncrementVisits: 1, AddSpent: decimal.NewFromInt(25)}.Apply(&p)

	assert.Equal(t, "Bruno", p.Name)
	assert.Equal(t, int64(5), p.TotalVisits)
	assert.True(t, decimal.NewFromInt(125).Equal(p.TotalSpent))
	require.NotNil(t, p.LastVisit)
	assert.Equal(t, visit, *p.LastVisit)
	assert.Equal(t, "Barba", p.LastService)
}

func TestDisplayVisits(t *testing.T) {
	assert.Equal(t, int64(1), DisplayVisits(nil))
	assert.Equal(t, int64(7), DisplayVisits(&models.ClientProfile{TotalVisits: 7}))
}

func TestInactive(t *testing.T) {
	now := time.Date(2024, 6, 30, 12, 0, 0, 0, time.UTC)
	at := func(days int) *time.Time {
		v := now.AddDate(0, 0, -days)
		return &v
	}

	profiles := []models.ClientProfile{
		{Phone: "1", LastVisit: at(25)},
		{Phone: "2", LastVisit: at(5)},
		{Phone: "3", LastVisit: at(60)},
		{Phone: "4"},
		{Phone: "5", LastVisit: at(20)},
	}

	got := Inactive(profiles, now, 20)

	require.Len(t, got, 2)
	assert.Equal(t, "3", got[0].Profile.Phone)
	assert.Equal(t, 60, got[0].DaysSince)
	assert.Equal(t, "1", got[1].Profile.Phone)
	assert.Equal(t, 25, got[1].DaysSince)
}

func TestReconstructKeepsLatestVisit(t *testing.T) {
	t0 := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	done := func(phone, name, service string, days int) models.QueueEntry {
		c := t0.AddDate(0, 0, days)
		return models.QueueEntry{Phone: phone, Name: name, ServiceName: service, ServicePrice: decimal.NewFromInt(40), CompletedAt: &c}
	}

	got := Reconstruct([]models.QueueEntry{
		done("(11) 99999-0000", "Caio", "Corte", 5),
		done("11999990000", "Caio S.", "Barba", 1),
		done("", "Sem fone", "Corte", 2),
		done("21988887777", "Duda", "Corte", 3),
	})

	require.Len(t, got, 2)
	assert.Equal(t, "11999990000", got[0].Key)
	assert.Equal(t, "Caio", *got[0].Update.Name)
	assert.Equal(t, "Corte", *got[0].Update.LastService)
	assert.Equal(t, t0.AddDate(0, 0, 5), *got[0].Update.LastVisit)
	assert.Equal(t, int64(2), got[0].Update.IncrementVisits)
	assert.Equal(t, "80", got[0].Update.AddSpent.String())

	assert.Equal(t, "21988887777", got[1].Key)
}
