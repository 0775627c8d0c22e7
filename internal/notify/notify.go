package notify

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/BruksfildServices01/barber-queue/internal/live"
	"github.com/BruksfildServices01/barber-queue/internal/messages"
	"github.com/BruksfildServices01/barber-queue/internal/validators"
)

type Alert struct {
	BarberID uint
	EntryID  string
	Phone    string
	Title    string
	Body     string
}

type Notifier interface {
	Notify(ctx context.Context, a Alert) error
}

// LogNotifier only logs; used when no provider is configured.
type LogNotifier struct{}

func (LogNotifier) Notify(_ context.Context, a Alert) error {
	slog.Info("next in line", "barber_id", a.BarberID, "entry_id", a.EntryID, "title", a.Title)
	return nil
}

// TwilioNotifier sends the alert as a WhatsApp message.
type TwilioNotifier struct {
	client *twilio.RestClient
	from   string
}

func NewTwilioNotifier(accountSID, authToken, whatsappFrom string) *TwilioNotifier {
	return &TwilioNotifier{
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSID,
			Password: authToken,
		}),
		from: whatsappFrom,
	}
}

func (n *TwilioNotifier) Notify(_ context.Context, a Alert) error {
	digits := validators.Digits(a.Phone)
	if digits == "" {
		return nil
	}
	if !strings.HasPrefix(digits, "55") || len(digits) <= 11 {
		digits = "55" + digits
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo("whatsapp:+" + digits)
	params.SetFrom("whatsapp:" + n.from)
	params.SetBody(a.Title + "\n" + a.Body)

	resp, err := n.client.Api.CreateMessage(params)
	if err != nil {
		return fmt.Errorf("twilio send: %w", err)
	}
	if resp.Sid != nil {
		slog.Info("next-in-line message sent", "entry_id", a.EntryID, "sid", *resp.Sid)
	}
	return nil
}

// HeadWatcher raises an alert when a new entry reaches position 1.
type HeadWatcher struct {
	notifier Notifier

	mu    sync.Mutex
	heads map[uint]string
}

func NewHeadWatcher(n Notifier) *HeadWatcher {
	return &HeadWatcher{notifier: n, heads: make(map[uint]string)}
}

func (w *HeadWatcher) Observe(ctx context.Context, snap live.Snapshot) {
	head := ""
	if len(snap.Entries) > 0 {
		head = snap.Entries[0].ID
	}

	w.mu.Lock()
	prev, seen := w.heads[snap.BarberID]
	w.heads[snap.BarberID] = head
	w.mu.Unlock()

	// o primeiro snapshot só registra a cabeça atual
	if !seen || head == "" || head == prev {
		return
	}

	e := snap.Entries[0]
	title, body := messages.NextInLine(e.Name)
	if err := w.notifier.Notify(ctx, Alert{
		BarberID: snap.BarberID,
		EntryID:  e.ID,
		Phone:    e.Phone,
		Title:    title,
		Body:     body,
	}); err != nil {
		slog.Warn("next-in-line alert failed", "barber_id", snap.BarberID, "entry_id", e.ID, "error", err)
	}
}

var (
	_ Notifier      = LogNotifier{}
	_ Notifier      = (*TwilioNotifier)(nil)
	_ live.Observer = (*HeadWatcher)(nil)
)
