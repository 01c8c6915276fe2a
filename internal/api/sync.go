package api

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/nzaccagnino/studydesk/internal/domain"
	"github.com/nzaccagnino/studydesk/internal/logger"
	"github.com/nzaccagnino/studydesk/internal/store"
)

// Remote is the document store the Syncer reads once and writes after edits.
type Remote interface {
	Fetch(ctx context.Context) (domain.Document, error)
	Put(ctx context.Context, doc domain.Document) error
}

type SyncState int

const (
	StateLoading SyncState = iota
	StateClean
	StateDirty
)

func (s SyncState) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateClean:
		return "saved"
	default:
		return "unsaved"
	}
}

const DefaultDebounce = 2 * time.Second

// Syncer loads the document once at startup and saves the whole of it after
// edits settle for the debounce interval. Edits inside the interval restart
// it, so a burst of edits produces a single save.
type Syncer struct {
	store    *store.Store
	remote   Remote
	defaults domain.Document
	debounce time.Duration
	log      *logger.Logger

	mu        sync.Mutex
	state     SyncState
	ready     bool
	stopped   bool
	timer     *time.Timer
	gen       uint64
	listeners []func(SyncState)
	inflight  sync.WaitGroup
}

type SyncOption func(*Syncer)

func WithDebounce(d time.Duration) SyncOption {
	return func(s *Syncer) {
		if d > 0 {
			s.debounce = d
		}
	}
}

// WithDefaults sets the document used for collections missing remotely.
func WithDefaults(doc domain.Document) SyncOption {
	return func(s *Syncer) { s.defaults = doc }
}

func WithLogger(log *logger.Logger) SyncOption {
	return func(s *Syncer) { s.log = log }
}

// NewSyncer subscribes to st. A nil remote means persistence is not
// configured: the Syncer becomes ready on Start and never does any I/O.
func NewSyncer(st *store.Store, remote Remote, opts ...SyncOption) *Syncer {
	s := &Syncer{
		store:    st,
		remote:   remote,
		defaults: domain.Defaults(),
		debounce: DefaultDebounce,
		log:      logger.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.WithComponent("sync")
	st.Subscribe(s.onChange)
	return s
}

func (s *Syncer) State() SyncState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// OnStateChange registers fn to be called on every state transition.
func (s *Syncer) OnStateChange(fn func(SyncState)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Start performs the single initial read. Read failures are logged and the
// store keeps its defaults.
func (s *Syncer) Start(ctx context.Context) {
	if s.remote == nil {
		s.log.Infow("Remote store not configured, persistence disabled")
		s.setReady()
		return
	}

	doc, err := s.remote.Fetch(ctx)
	switch {
	case errors.Is(err, ErrNotFound):
		s.log.Infow("No saved document, using defaults")
	case err != nil:
		s.log.WithError(err).Warnw("Failed to load document, using defaults")
	case doc.IsEmpty():
		s.log.Infow("Saved document is empty, using defaults")
	default:
		s.store.Replace(doc.WithDefaults(s.defaults))
		s.log.Infow("Document loaded", "notes", len(doc.Notes), "tasks", len(doc.Tasks))
	}
	s.setReady()
}

func (s *Syncer) setReady() {
	s.mu.Lock()
	s.ready = true
	s.mu.Unlock()
	s.setState(StateClean)
}

// onChange schedules a save for user edits. Loads, and edits made before
// the initial read finished, are not saved.
func (s *Syncer) onChange(c store.Change) {
	if c.Kind == store.ChangeReplace {
		return
	}

	s.mu.Lock()
	if !s.ready || s.stopped || s.remote == nil {
		s.mu.Unlock()
		return
	}
	if s.timer != nil {
		s.timer.Stop()
	}
	s.gen++
	gen := s.gen
	s.timer = time.AfterFunc(s.debounce, func() { s.fire(gen) })
	s.mu.Unlock()

	s.setState(StateDirty)
}

func (s *Syncer) fire(gen uint64) {
	s.mu.Lock()
	if gen != s.gen || s.stopped {
		s.mu.Unlock()
		return
	}
	s.timer = nil
	s.inflight.Add(1)
	s.mu.Unlock()

	defer s.inflight.Done()
	s.save(context.Background())
}

// save writes the current snapshot. Failures are logged only and not
// retried. Either way the state returns to clean unless a newer edit has
// scheduled another save meanwhile.
func (s *Syncer) save(ctx context.Context) {
	doc := s.store.Snapshot()
	if err := s.remote.Put(ctx, doc); err != nil {
		s.log.WithError(err).Warnw("Failed to save document")
	} else {
		s.log.Debugw("Document saved", "revision", s.store.Revision())
	}

	s.mu.Lock()
	pending := s.timer != nil
	s.mu.Unlock()
	if !pending {
		s.setState(StateClean)
	}
}

// Flush runs a pending save immediately and waits for saves in progress.
func (s *Syncer) Flush(ctx context.Context) {
	s.mu.Lock()
	pending := s.timer != nil
	if pending {
		s.timer.Stop()
		s.timer = nil
		s.gen++
		s.inflight.Add(1)
	}
	s.mu.Unlock()

	if pending {
		s.save(ctx)
		s.inflight.Done()
	}
	s.inflight.Wait()
}

// Stop cancels a pending save and ignores later edits. Call Flush first to
// keep them.
func (s *Syncer) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped = true
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *Syncer) setState(state SyncState) {
	s.mu.Lock()
	if s.state == state {
		s.mu.Unlock()
		return
	}
	s.state = state
	listeners := slices.Clone(s.listeners)
	s.mu.Unlock()

	for _, l := range listeners {
		l(state)
	}
}
