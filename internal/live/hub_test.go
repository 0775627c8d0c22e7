package live

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-queue/internal/models"
)

type fakeSource struct {
	mu      sync.Mutex
	entries map[uint][]models.QueueEntry
	err     error
}

func (f *fakeSource) set(barberID uint, ids ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	list := make([]models.QueueEntry, 0, len(ids))
	for _, id := range ids {
		list = append(list, models.QueueEntry{ID: id, BarberID: barberID})
	}
	f.entries[barberID] = list
}

func (f *fakeSource) load(_ context.Context, barberID uint) (Snapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return Snapshot{}, f.err
	}
	return Snapshot{BarberID: barberID, Entries: f.entries[barberID], At: time.Now()}, nil
}

type recordingObserver struct {
	mu    sync.Mutex
	snaps []Snapshot
}

func (o *recordingObserver) Observe(_ context.Context, snap Snapshot) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.snaps = append(o.snaps, snap)
}

func ids(s Snapshot) []string {
	out := make([]string, 0, len(s.Entries))
	for _, e := range s.Entries {
		out = append(out, e.ID)
	}
	return out
}

func receive(t *testing.T, sub *Subscription) Snapshot {
	t.Helper()
	select {
	case snap, ok := <-sub.C():
		require.True(t, ok, "subscription closed")
		return snap
	case <-time.After(time.Second):
		t.Fatal("no snapshot delivered")
	}
	return Snapshot{}
}

func TestSubscribeDeliversInitialSnapshot(t *testing.T) {
	src := &fakeSource{entries: map[uint][]models.QueueEntry{}}
	src.set(1, "a", "b")
	hub := NewHub(src.load)

	sub, err := hub.Subscribe(context.Background(), 1)
	require.NoError(t, err)
	defer sub.Cancel()

	assert.Equal(t, []string{"a", "b"}, ids(receive(t, sub)))
	assert.Equal(t, 1, hub.SubscriberCount(1))
}

func TestRefreshReachesOnlyThatBarber(t *testing.T) {
	src := &fakeSource{entries: map[uint][]models.QueueEntry{}}
	hub := NewHub(src.load)

	one, err := hub.Subscribe(context.Background(), 1)
	require.NoError(t, err)
	two, err := hub.Subscribe(context.Background(), 2)
	require.NoError(t, err)
	receive(t, one)
	receive(t, two)

	src.set(1, "x")
	hub.Refresh(context.Background(), 1)

	assert.Equal(t, []string{"x"}, ids(receive(t, one)))
	select {
	case <-two.C():
		t.Fatal("barber 2 must not be notified")
	default:
	}
}

func TestSlowSubscriberGetsLatestSnapshot(t *testing.T) {
	src := &fakeSource{entries: map[uint][]models.QueueEntry{}}
	hub := NewHub(src.load)

	sub, err := hub.Subscribe(context.Background(), 1)
	require.NoError(t, err)

	src.set(1, "a")
	hub.Refresh(context.Background(), 1)
	src.set(1, "a", "b")
	hub.Refresh(context.Background(), 1)

	assert.Equal(t, []string{"a", "b"}, ids(receive(t, sub)))
	select {
	case <-sub.C():
		t.Fatal("stale snapshot left in buffer")
	default:
	}
}

func TestFailedRefreshKeepsSubscribers(t *testing.T) {
	src := &fakeSource{entries: map[uint][]models.QueueEntry{}}
	hub := NewHub(src.load)

	sub, err := hub.Subscribe(context.Background(), 1)
	require.NoError(t, err)
	receive(t, sub)

	src.err = errors.New("store unavailable")
	hub.Refresh(context.Background(), 1)
	src.err = nil
	src.set(1, "back")
	hub.Refresh(context.Background(), 1)

	assert.Equal(t, []string{"back"}, ids(receive(t, sub)))
}

func TestSubscribeFailsOnLoadError(t *testing.T) {
	src := &fakeSource{entries: map[uint][]models.QueueEntry{}, err: ErrAccessDenied}
	hub := NewHub(src.load)

	_, err := hub.Subscribe(context.Background(), 1)
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Equal(t, 0, hub.SubscriberCount(1))
}

func TestCancelClosesChannelOnce(t *testing.T) {
	src := &fakeSource{entries: map[uint][]models.QueueEntry{}}
	hub := NewHub(src.load)

	sub, err := hub.Subscribe(context.Background(), 1)
	require.NoError(t, err)
	receive(t, sub)

	sub.Cancel()
	sub.Cancel()

	_, ok := <-sub.C()
	assert.False(t, ok)
	assert.Equal(t, 0, hub.SubscriberCount(1))
	assert.NotPanics(t, func() { hub.Refresh(context.Background(), 1) })
}

func TestObserversSeeRefreshes(t *testing.T) {
	src := &fakeSource{entries: map[uint][]models.QueueEntry{}}
	obs := &recordingObserver{}
	hub := NewHub(src.load, obs)

	src.set(4, "a")
	hub.Refresh(context.Background(), 4)

	require.Len(t, obs.snaps, 1)
	assert.Equal(t, uint(4), obs.snaps[0].BarberID)
}

func TestConcurrentRefreshAndCancel(t *testing.T) {
	src := &fakeSource{entries: map[uint][]models.QueueEntry{}}
	hub := NewHub(src.load)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		sub, err := hub.Subscribe(context.Background(), 1)
		require.NoError(t, err)
		wg.Add(2)
		go func() {
			defer wg.Done()
			hub.Refresh(context.Background(), 1)
		}()
		go func() {
			defer wg.Done()
			sub.Cancel()
		}()
	}
	wg.Wait()

	assert.Equal(t, 0, hub.SubscriberCount(1))
}

func TestRefreshDoesNotBlockOtherBarbers(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})

	load := func(ctx context.Context, barberID uint) (Snapshot, error) {
		if barberID == 1 {
			close(started)
			<-release
		}
		return Snapshot{BarberID: barberID, At: time.Now()}, nil
	}
	hub := NewHub(load)

	go hub.Refresh(context.Background(), 1)
	<-started
	defer close(release)

	done := make(chan struct{})
	go func() {
		hub.Refresh(context.Background(), 2)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("barber 2 waited on barber 1's load")
	}
}
