package escalation

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"murmur/internal/platform/events"

	"github.com/rs/zerolog"
)

type fakeRecorder struct {
	mu    sync.Mutex
	notes []Note
	err   error
}

func (f *fakeRecorder) RecordEscalation(ctx context.Context, note Note) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.notes = append(f.notes, note)
	return nil
}

func (f *fakeRecorder) snapshot() []Note {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Note(nil), f.notes...)
}

func runNotifier(t *testing.T, rec *fakeRecorder, evs []events.ResponsePublished) {
	t.Helper()

	var zl zerolog.Logger
	n := New(rec, zl)
	n.now = func() time.Time { return time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC) }

	ch := make(chan events.ResponsePublished, len(evs))
	for _, ev := range evs {
		ch <- ev
	}
	close(ch)

	done := make(chan struct{})
	go func() {
		n.Run(context.Background(), ch)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("notifier did not drain the channel")
	}
}

func TestRun_RecordsEscalatedOnly(t *testing.T) {
	rec := &fakeRecorder{}
	runNotifier(t, rec, []events.ResponsePublished{
		{ResponseID: "r1", PromptID: "2026-08-28", Escalated: false},
		{ResponseID: "r2", PromptID: "2026-08-28", Transcript: "rough day", Flags: []string{"SELF_HARM_RISK"}, Escalated: true},
		{ResponseID: "r3", PromptID: "2026-08-28", Escalated: false},
	})

	notes := rec.snapshot()
	if len(notes) != 1 {
		t.Fatalf("expected 1 note, got %d", len(notes))
	}
	n := notes[0]
	if n.ResponseID != "r2" || n.Transcript != "rough day" || len(n.Flags) != 1 {
		t.Fatalf("unexpected note: %+v", n)
	}
	if n.NotedAt.IsZero() {
		t.Fatalf("noted_at must be stamped")
	}
}

func TestRun_RecorderFailureSkipsAndContinues(t *testing.T) {
	rec := &fakeRecorder{err: errors.New("pg down")}
	runNotifier(t, rec, []events.ResponsePublished{
		{ResponseID: "r1", Escalated: true},
		{ResponseID: "r2", Escalated: true},
	})

	if len(rec.snapshot()) != 0 {
		t.Fatalf("failed records must not be stored")
	}
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	var zl zerolog.Logger
	n := New(&fakeRecorder{}, zl)

	ctx, cancel := context.WithCancel(context.Background())
	ch := make(chan events.ResponsePublished)

	done := make(chan struct{})
	go func() {
		n.Run(ctx, ch)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("notifier did not honor cancellation")
	}
}

func TestRun_WiredThroughBus(t *testing.T) {
	var zl zerolog.Logger
	bus := events.NewBus(4, zl, nil)
	sub := bus.Subscribe()

	rec := &fakeRecorder{}
	n := New(rec, zl)

	done := make(chan struct{})
	go func() {
		n.Run(context.Background(), sub)
		close(done)
	}()

	bus.Publish(context.Background(), events.ResponsePublished{ResponseID: "r9", Escalated: true})
	if err := bus.Close(); err != nil {
		t.Fatalf("bus close: %v", err)
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("notifier did not stop when the bus closed")
	}
	if len(rec.snapshot()) != 1 {
		t.Fatalf("bus-delivered escalation not recorded")
	}
}
