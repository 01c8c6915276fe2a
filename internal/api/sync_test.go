package api

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/nzaccagnino/studydesk/internal/domain"
	"github.com/nzaccagnino/studydesk/internal/store"
)

type fakeRemote struct {
	mu       sync.Mutex
	doc      domain.Document
	fetchErr error
	putErr   error
	fetches  int
	puts     []domain.Document
}

func (f *fakeRemote) Fetch(ctx context.Context) (domain.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetches++
	return f.doc.Clone(), f.fetchErr
}

func (f *fakeRemote) Put(ctx context.Context, doc domain.Document) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.putErr != nil {
		return f.putErr
	}
	f.puts = append(f.puts, doc)
	return nil
}

func (f *fakeRemote) savedCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.puts)
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestSyncerStartReplacesWithRemote(t *testing.T) {
	remote := &fakeRemote{doc: domain.Document{Notes: []domain.Note{{ID: "remote", Tags: []string{}}}}}
	st := store.New(domain.Defaults())
	s := NewSyncer(st, remote, WithDebounce(10*time.Millisecond))

	s.Start(context.Background())

	doc := st.Snapshot()
	if len(doc.Notes) != 1 || doc.Notes[0].ID != "remote" {
		t.Errorf("Expected remote notes, got %+v", doc.Notes)
	}
	if len(doc.Courses) != 3 {
		t.Errorf("Expected missing courses to fall back to defaults, got %d", len(doc.Courses))
	}
	if s.State() != StateClean {
		t.Errorf("Expected clean after load, got %s", s.State())
	}

	time.Sleep(30 * time.Millisecond)
	if remote.savedCount() != 0 {
		t.Error("Expected the load itself not to trigger a save")
	}
}

func TestSyncerStartKeepsDefaultsOnFailure(t *testing.T) {
	testCases := []struct {
		name string
		err  error
	}{
		{"not found", ErrNotFound},
		{"network", errors.New("connection refused")},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			st := store.New(domain.Defaults())
			s := NewSyncer(st, &fakeRemote{fetchErr: tc.err})
			s.Start(context.Background())

			if st.Revision() != 0 {
				t.Error("Expected store untouched")
			}
			if s.State() != StateClean {
				t.Errorf("Expected ready, got %s", s.State())
			}
		})
	}
}

func TestSyncerCoalescesBurst(t *testing.T) {
	remote := &fakeRemote{}
	st := store.New(domain.Defaults())
	s := NewSyncer(st, remote, WithDebounce(50*time.Millisecond))
	s.Start(context.Background())

	var last domain.Task
	for i := 0; i < 10; i++ {
		last = st.AddTask(domain.TaskForm{Title: "burst"})
	}
	if s.State() != StateDirty {
		t.Errorf("Expected dirty, got %s", s.State())
	}

	waitFor(t, func() bool { return remote.savedCount() == 1 })
	time.Sleep(100 * time.Millisecond)

	if n := remote.savedCount(); n != 1 {
		t.Fatalf("Expected exactly one save, got %d", n)
	}
	saved := remote.puts[0]
	if len(saved.Tasks) != 17 || saved.Tasks[0].ID != last.ID {
		t.Errorf("Expected save to carry the state after the last edit, got %d tasks", len(saved.Tasks))
	}
	waitFor(t, func() bool { return s.State() == StateClean })
}

func TestSyncerUnconfiguredNeverTouchesRemote(t *testing.T) {
	st := store.New(domain.Defaults())
	s := NewSyncer(st, nil, WithDebounce(time.Millisecond))
	s.Start(context.Background())

	st.DeleteTask("task-1")
	time.Sleep(20 * time.Millisecond)
	s.Flush(context.Background())

	if s.State() != StateClean {
		t.Errorf("Expected clean, got %s", s.State())
	}
}

func TestSyncerIgnoresEditsBeforeStart(t *testing.T) {
	remote := &fakeRemote{fetchErr: ErrNotFound}
	st := store.New(domain.Defaults())
	s := NewSyncer(st, remote, WithDebounce(5*time.Millisecond))

	st.DeleteNote("note-1")
	time.Sleep(20 * time.Millisecond)
	if remote.savedCount() != 0 {
		t.Error("Expected no save before the initial load")
	}
	if s.State() != StateLoading {
		t.Errorf("Expected loading, got %s", s.State())
	}
}

func TestSyncerFlushSavesPendingEdit(t *testing.T) {
	remote := &fakeRemote{fetchErr: ErrNotFound}
	st := store.New(domain.Defaults())
	s := NewSyncer(st, remote, WithDebounce(time.Hour))
	s.Start(context.Background())

	var states []SyncState
	s.OnStateChange(func(state SyncState) { states = append(states, state) })

	st.DeleteNote("note-1")
	s.Flush(context.Background())
	s.Stop()

	if remote.savedCount() != 1 {
		t.Fatalf("Expected one flushed save, got %d", remote.savedCount())
	}
	if len(remote.puts[0].Notes) != 2 {
		t.Errorf("Expected flushed document without note-1")
	}
	if len(states) != 2 || states[0] != StateDirty || states[1] != StateClean {
		t.Errorf("Expected dirty then clean, got %v", states)
	}
}

func TestSyncerSaveFailureReturnsClean(t *testing.T) {
	remote := &fakeRemote{fetchErr: ErrNotFound, putErr: errors.New("503")}
	st := store.New(domain.Defaults())
	s := NewSyncer(st, remote, WithDebounce(time.Hour))
	s.Start(context.Background())

	st.DeleteNote("note-1")
	if s.State() != StateDirty {
		t.Fatalf("Expected dirty after edit, got %s", s.State())
	}
	s.Flush(context.Background())

	if s.State() != StateClean {
		t.Errorf("Expected clean after failed save, got %s", s.State())
	}
	if remote.savedCount() != 0 {
		t.Errorf("Expected no stored document, got %d", remote.savedCount())
	}
}

type stateRecorder struct {
	mu     sync.Mutex
	states []SyncState
}

func (r *stateRecorder) record(state SyncState) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states = append(r.states, state)
}

func (r *stateRecorder) get() []SyncState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]SyncState{}, r.states...)
}

func TestSyncerStateSequence(t *testing.T) {
	remote := &fakeRemote{fetchErr: ErrNotFound}
	st := store.New(domain.Defaults())
	s := NewSyncer(st, remote, WithDebounce(10*time.Millisecond))

	rec := &stateRecorder{}
	s.OnStateChange(rec.record)
	if s.State() != StateLoading {
		t.Fatalf("Expected loading before Start, got %s", s.State())
	}

	s.Start(context.Background())
	st.AddTask(domain.TaskForm{Title: "essay"})
	waitFor(t, func() bool { return remote.savedCount() == 1 && s.State() == StateClean })

	want := []SyncState{StateClean, StateDirty, StateClean}
	if diff := cmp.Diff(want, rec.get()); diff != "" {
		t.Errorf("State sequence mismatch (-want +got):\n%s", diff)
	}
}

// gatedRemote holds its first Put until release is closed.
type gatedRemote struct {
	fakeRemote
	entered chan struct{}
	release chan struct{}
}

func (g *gatedRemote) Put(ctx context.Context, doc domain.Document) error {
	g.mu.Lock()
	first := len(g.puts) == 0
	g.puts = append(g.puts, doc)
	g.mu.Unlock()

	if first {
		close(g.entered)
		<-g.release
	}
	return nil
}

func TestSyncerEditDuringSaveSchedulesAnother(t *testing.T) {
	remote := &gatedRemote{
		fakeRemote: fakeRemote{fetchErr: ErrNotFound},
		entered:    make(chan struct{}),
		release:    make(chan struct{}),
	}
	st := store.New(domain.Defaults())
	s := NewSyncer(st, remote, WithDebounce(50*time.Millisecond))
	s.Start(context.Background())

	rec := &stateRecorder{}
	s.OnStateChange(rec.record)

	st.DeleteNote("note-1")
	<-remote.entered

	// The first save is in flight; this edit schedules a second one.
	st.DeleteNote("note-2")
	close(remote.release)

	waitFor(t, func() bool { return remote.savedCount() == 2 && s.State() == StateClean })
	time.Sleep(100 * time.Millisecond)

	if n := remote.savedCount(); n != 2 {
		t.Fatalf("Expected two saves, got %d", n)
	}
	if got := len(remote.puts[0].Notes); got != 2 {
		t.Errorf("Expected first save with 2 notes, got %d", got)
	}
	if got := len(remote.puts[1].Notes); got != 1 {
		t.Errorf("Expected second save with the later state, got %d notes", got)
	}

	// The first save finished while the second was pending, so the state
	// stayed dirty until the second one completed.
	want := []SyncState{StateDirty, StateClean}
	if diff := cmp.Diff(want, rec.get()); diff != "" {
		t.Errorf("State sequence mismatch (-want +got):\n%s", diff)
	}
	if s.State() != StateClean {
		t.Errorf("Expected clean, got %s", s.State())
	}
}

func TestSyncerStopCancelsPendingSave(t *testing.T) {
	remote := &fakeRemote{fetchErr: ErrNotFound}
	st := store.New(domain.Defaults())
	s := NewSyncer(st, remote, WithDebounce(10*time.Millisecond))
	s.Start(context.Background())

	st.DeleteNote("note-1")
	s.Stop()
	time.Sleep(40 * time.Millisecond)

	if remote.savedCount() != 0 {
		t.Errorf("Expected no save after Stop, got %d", remote.savedCount())
	}
}
