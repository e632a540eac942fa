package feedback

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"feedbackdesk/internal/bootstrap/logging"
	domainfeedback "feedbackdesk/internal/domain/feedback"
	"feedbackdesk/internal/errs"
	"feedbackdesk/internal/ports"
)

var (
	ErrInvalidPassword  = errors.New("invalid password")
	ErrNotAuthenticated = errors.New("admin login required")
	ErrNothingToExport  = errors.New("no feedback to export")
)

// State is the persisted blob: the newest-first record list and the admin
// session flag.
type State struct {
	Feedbacks       []domainfeedback.Record `json:"feedbacks"`
	IsAuthenticated bool                    `json:"isAuthenticated"`
}

type Options struct {
	StoreKey      string
	AdminPassword string
}

// Service owns the application state. Every mutation runs under one lock and
// ends with an explicit save of the whole state.
type Service struct {
	mu            sync.Mutex
	store         ports.StateStore
	storeKey      string
	adminPassword string
	state         State

	now   func() time.Time
	newID func() string
}

func NewService(store ports.StateStore, options Options) *Service {
	return &Service{
		store:         store,
		storeKey:      options.StoreKey,
		adminPassword: options.AdminPassword,
		state:         State{Feedbacks: []domainfeedback.Record{}},
		now:           time.Now,
		newID:         uuid.NewString,
	}
}

// Hydrate replaces the in-memory state with the persisted blob. A missing
// blob leaves the empty defaults in place.
func (s *Service) Hydrate(ctx context.Context) error {
	if ctx == nil {
		return errors.New("context is required")
	}
	if s.store == nil {
		return errors.New("state store is required")
	}

	logCtx := logging.WithComponent(ctx, "usecase.feedback")

	raw, found, err := s.store.Load(ctx, s.storeKey)
	if err != nil {
		return errs.Wrap(err, "load feedback state")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !found {
		s.state = State{Feedbacks: []domainfeedback.Record{}}
		logging.Info(logCtx, "no persisted feedback state, starting empty", slog.String("key", s.storeKey))
		return nil
	}

	var loaded State
	if err := json.Unmarshal(raw, &loaded); err != nil {
		return errs.Wrapf(errs.WithStack(err), "decode feedback state %q", s.storeKey)
	}
	if loaded.Feedbacks == nil {
		loaded.Feedbacks = []domainfeedback.Record{}
	}
	s.state = loaded

	logging.Info(logCtx, "feedback state hydrated",
		slog.String("key", s.storeKey),
		slog.Int("feedbacks", len(loaded.Feedbacks)),
		slog.Bool("authenticated", loaded.IsAuthenticated),
	)
	return nil
}

// Snapshot returns a copy of the current state.
func (s *Service) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return State{
		Feedbacks:       slices.Clone(s.state.Feedbacks),
		IsAuthenticated: s.state.IsAuthenticated,
	}
}

func (s *Service) Feedbacks() []domainfeedback.Record {
	return s.Snapshot().Feedbacks
}

func (s *Service) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.IsAuthenticated
}

// AddFeedback prepends record. It performs no validation.
func (s *Service) AddFeedback(ctx context.Context, record domainfeedback.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Feedbacks = append([]domainfeedback.Record{record}, s.state.Feedbacks...)
	s.save(ctx)
}

func (s *Service) SetAuthenticated(ctx context.Context, authenticated bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.IsAuthenticated = authenticated
	s.save(ctx)
}

// DeleteFeedback removes the record with id. An unknown id is a no-op; the
// result reports whether a record was removed.
func (s *Service) DeleteFeedback(ctx context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := slices.IndexFunc(s.state.Feedbacks, func(r domainfeedback.Record) bool { return r.ID == id })
	if idx >= 0 {
		s.state.Feedbacks = slices.Delete(slices.Clone(s.state.Feedbacks), idx, idx+1)
	}
	s.save(ctx)
	return idx >= 0
}

// List applies filter to the current records, newest first.
func (s *Service) List(filter domainfeedback.Filter) []domainfeedback.Record {
	return filter.Apply(s.Feedbacks())
}

// save persists the full state. Failures are logged, never returned: the
// in-memory state stays authoritative for the session.
func (s *Service) save(ctx context.Context) {
	if ctx == nil {
		ctx = context.Background()
	}
	logCtx := logging.WithComponent(ctx, "usecase.feedback")

	if s.store == nil {
		logging.Warn(logCtx, "state store not configured, skipping persist")
		return
	}

	raw, err := json.Marshal(s.state)
	if err != nil {
		logging.Error(logCtx, "encode feedback state failed", slog.Any("err", errs.Loggable(err)))
		return
	}
	if err := s.store.Save(ctx, s.storeKey, raw); err != nil {
		logging.Error(logCtx, "persist feedback state failed",
			slog.String("key", s.storeKey),
			slog.Any("err", errs.Loggable(err)),
		)
		return
	}
	logging.Debug(logCtx, "feedback state persisted", slog.Int("feedbacks", len(s.state.Feedbacks)))
}
