package errs

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

type fieldErr struct{ fields map[string]string }

func (e fieldErr) Error() string                    { return "invalid form" }
func (e fieldErr) FieldMessages() map[string]string { return e.fields }

func TestWrapPreservesChain(t *testing.T) {
	base := errors.New("disk full")
	err := Wrapf(Wrap(base, "persist state"), "save key %q", "feedback-store")

	if !errors.Is(err, base) {
		t.Fatalf("errors.Is() = false, want true")
	}
	if got := err.Error(); got != `save key "feedback-store": persist state: disk full` {
		t.Fatalf("Error() = %q", got)
	}
	if Wrap(nil, "x") != nil || Wrapf(nil, "x %d", 1) != nil {
		t.Fatalf("wrapping nil should return nil")
	}
}

func TestWithStackDoesNotDoubleCapture(t *testing.T) {
	err := WithStack(errors.New("decode"))
	again := WithStack(Wrap(err, "outer"))

	var se *StackError
	if !errors.As(again, &se) {
		t.Fatalf("expected StackError in chain")
	}
	if len(se.Stack()) == 0 {
		t.Fatalf("expected captured stack")
	}
}

func TestLoggableIncludesFieldMessages(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	err := Wrap(fieldErr{fields: map[string]string{"rating": "Please provide a rating"}}, "submit feedback")
	logger.Error("submit failed", slog.Any("err", Loggable(err)))

	out := buf.String()
	if !strings.Contains(out, `err.fields.rating="Please provide a rating"`) {
		t.Fatalf("log output missing field message: %s", out)
	}
	if !strings.Contains(out, "submit feedback: invalid form") {
		t.Fatalf("log output missing message: %s", out)
	}
}
