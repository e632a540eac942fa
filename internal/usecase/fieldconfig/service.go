package fieldconfig

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"

	"feedbackdesk/internal/bootstrap/logging"
	"feedbackdesk/internal/domain/customfield"
	"feedbackdesk/internal/errs"
	"feedbackdesk/internal/ports"
)

var ErrSessionClosed = errors.New("field editing session already saved or canceled")

// Service holds the live custom field set shown on the feedback form.
// Edits go through a Session and only reach the live set on Save.
type Service struct {
	mu       sync.Mutex
	store    ports.StateStore
	storeKey string
	live     []customfield.Definition
}

func NewService(store ports.StateStore, storeKey string) *Service {
	return &Service{store: store, storeKey: storeKey}
}

func (s *Service) Hydrate(ctx context.Context) error {
	if ctx == nil {
		return errors.New("context is required")
	}
	if s.store == nil {
		return errors.New("state store is required")
	}

	raw, found, err := s.store.Load(ctx, s.storeKey)
	if err != nil {
		return errs.Wrap(err, "load custom fields")
	}

	var fields []customfield.Definition
	if found {
		if err := json.Unmarshal(raw, &fields); err != nil {
			return errs.Wrapf(errs.WithStack(err), "decode custom fields %q", s.storeKey)
		}
	}

	s.mu.Lock()
	s.live = fields
	s.mu.Unlock()

	logging.Info(logging.WithComponent(ctx, "usecase.fieldconfig"), "custom fields hydrated", slog.Int("fields", len(fields)))
	return nil
}

// Live returns a copy of the saved field set. Callers may fill in values on
// the copy without affecting the configuration.
func (s *Service) Live() []customfield.Definition {
	s.mu.Lock()
	defer s.mu.Unlock()
	return customfield.Clone(s.live)
}

// Begin opens an editing session on a draft copy of the live set.
func (s *Service) Begin() *Session {
	return &Session{owner: s, draft: s.Live()}
}

func (s *Service) commit(ctx context.Context, fields []customfield.Definition) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.live = customfield.Clone(fields)
	s.save(ctx)
}

func (s *Service) save(ctx context.Context) {
	if ctx == nil {
		ctx = context.Background()
	}
	logCtx := logging.WithComponent(ctx, "usecase.fieldconfig")

	if s.store == nil {
		logging.Warn(logCtx, "state store not configured, skipping persist")
		return
	}

	fields := s.live
	if fields == nil {
		fields = []customfield.Definition{}
	}
	raw, err := json.Marshal(fields)
	if err != nil {
		logging.Error(logCtx, "encode custom fields failed", slog.Any("err", errs.Loggable(err)))
		return
	}
	if err := s.store.Save(ctx, s.storeKey, raw); err != nil {
		logging.Error(logCtx, "persist custom fields failed", slog.String("key", s.storeKey), slog.Any("err", errs.Loggable(err)))
		return
	}
	logging.Info(logCtx, "custom fields saved", slog.Int("fields", len(fields)))
}
