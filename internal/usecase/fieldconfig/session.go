package fieldconfig

import (
	"context"

	"feedbackdesk/internal/domain/customfield"
)

// Session stages edits to the custom field set. The live set is untouched
// until Save; Cancel discards the draft. A session is single-use.
type Session struct {
	owner  *Service
	draft  []customfield.Definition
	closed bool
}

// Fields returns a copy of the draft.
func (s *Session) Fields() []customfield.Definition {
	return customfield.Clone(s.draft)
}

func (s *Session) Closed() bool { return s.closed }

func (s *Session) Add() error {
	return s.apply(func(fields []customfield.Definition) ([]customfield.Definition, error) {
		return customfield.Add(fields), nil
	})
}

func (s *Session) Update(index int, patch customfield.Patch) error {
	return s.apply(func(fields []customfield.Definition) ([]customfield.Definition, error) {
		return customfield.Update(fields, index, patch)
	})
}

func (s *Session) Remove(index int) error {
	return s.apply(func(fields []customfield.Definition) ([]customfield.Definition, error) {
		return customfield.Remove(fields, index)
	})
}

func (s *Session) AddOption(fieldIndex int) error {
	return s.apply(func(fields []customfield.Definition) ([]customfield.Definition, error) {
		return customfield.AddOption(fields, fieldIndex)
	})
}

func (s *Session) UpdateOption(fieldIndex int, optionIndex int, value string) error {
	return s.apply(func(fields []customfield.Definition) ([]customfield.Definition, error) {
		return customfield.UpdateOption(fields, fieldIndex, optionIndex, value)
	})
}

func (s *Session) RemoveOption(fieldIndex int, optionIndex int) error {
	return s.apply(func(fields []customfield.Definition) ([]customfield.Definition, error) {
		return customfield.RemoveOption(fields, fieldIndex, optionIndex)
	})
}

// Replace swaps the whole draft, as an import does.
func (s *Session) Replace(fields []customfield.Definition) error {
	return s.apply(func([]customfield.Definition) ([]customfield.Definition, error) {
		return customfield.Clone(fields), nil
	})
}

// Save replaces the live set with the draft and closes the session.
func (s *Session) Save(ctx context.Context) error {
	if s.closed {
		return ErrSessionClosed
	}
	s.closed = true
	s.owner.commit(ctx, s.draft)
	return nil
}

// Cancel discards the draft and closes the session.
func (s *Session) Cancel() {
	s.closed = true
	s.draft = nil
}

func (s *Session) apply(edit func([]customfield.Definition) ([]customfield.Definition, error)) error {
	if s.closed {
		return ErrSessionClosed
	}
	next, err := edit(s.draft)
	if err != nil {
		return err
	}
	s.draft = next
	return nil
}
