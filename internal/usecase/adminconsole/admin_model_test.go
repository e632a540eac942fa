package adminconsole

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	domainfeedback "feedbackdesk/internal/domain/feedback"
	"feedbackdesk/internal/usecase/feedback"
)

type memoryStore struct {
	data map[string][]byte
}

func (s *memoryStore) Load(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := s.data[key]
	return v, ok, nil
}

func (s *memoryStore) Save(_ context.Context, key string, value []byte) error {
	s.data[key] = value
	return nil
}

func (s *memoryStore) Delete(_ context.Context, key string) error {
	delete(s.data, key)
	return nil
}

func setupModel(t *testing.T, records ...domainfeedback.Record) (*adminModel, *feedback.Service) {
	t.Helper()

	ctx := context.Background()
	service := feedback.NewService(&memoryStore{data: map[string][]byte{}}, feedback.Options{
		StoreKey:      "feedback-store",
		AdminPassword: "admin123",
	})
	for i := len(records) - 1; i >= 0; i-- {
		service.AddFeedback(ctx, records[i])
	}
	if err := service.Login(ctx, "admin123"); err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	model := NewAdminModel(ctx, service, Options{ExportDir: t.TempDir()}).(*adminModel)
	run(model, model.Init())
	return model, service
}

// run feeds the result of cmd back into the model until no command remains.
func run(model *adminModel, cmd tea.Cmd) {
	for cmd != nil {
		msg := cmd()
		if msg == nil {
			return
		}
		if _, ok := msg.(tea.QuitMsg); ok {
			return
		}
		_, cmd = model.Update(msg)
	}
}

func press(model *adminModel, key string) {
	var msg tea.KeyMsg
	switch key {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		msg = tea.KeyMsg{Type: tea.KeyDown}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	_, cmd := model.Update(msg)
	run(model, cmd)
}

func sampleRecords() []domainfeedback.Record {
	return []domainfeedback.Record{
		{ID: "a", Name: "Ann", Email: "ann@example.com", Rating: 5, Message: "Love it", Category: domainfeedback.CategoryCompliment, Timestamp: "2025-03-04T15:07:00.000Z"},
		{ID: "b", Name: "", Email: "", Rating: 2, Message: "Crash on save", Category: domainfeedback.CategoryBug, Timestamp: "2025-03-03T09:00:00.000Z"},
	}
}

func TestEmptyStateMessages(t *testing.T) {
	model, _ := setupModel(t)
	if !strings.Contains(model.View(), "No feedback submissions yet") {
		t.Fatalf("View() missing empty store message:\n%s", model.View())
	}
	if strings.Contains(model.View(), "e export") {
		t.Fatalf("export key should be hidden when the store is empty")
	}

	model, _ = setupModel(t, sampleRecords()...)
	press(model, "/")
	for _, r := range "zzz" {
		press(model, string(r))
	}
	if !strings.Contains(model.View(), "No results found") {
		t.Fatalf("View() missing no-results message:\n%s", model.View())
	}
}

func TestSearchAndCategoryFilter(t *testing.T) {
	model, _ := setupModel(t, sampleRecords()...)
	if len(model.items) != 2 {
		t.Fatalf("items = %d, want 2", len(model.items))
	}

	press(model, "/")
	for _, r := range "CRASH" {
		press(model, string(r))
	}
	press(model, "enter")
	if len(model.items) != 1 || model.items[0].ID != "b" {
		t.Fatalf("search items = %+v", model.items)
	}

	press(model, "esc")
	press(model, "c")
	if model.filter.Category != domainfeedback.CategoryBug {
		t.Fatalf("category = %q", model.filter.Category)
	}
	if len(model.items) != 1 || model.items[0].ID != "b" {
		t.Fatalf("category items = %+v", model.items)
	}
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	model, service := setupModel(t, sampleRecords()...)

	press(model, "d")
	press(model, "n")
	if len(service.Feedbacks()) != 2 {
		t.Fatalf("declined delete removed a record")
	}

	press(model, "down")
	press(model, "d")
	if !strings.Contains(model.View(), "Delete feedback from Anonymous?") {
		t.Fatalf("View() missing confirm prompt:\n%s", model.View())
	}
	press(model, "y")

	remaining := service.Feedbacks()
	if len(remaining) != 1 || remaining[0].ID != "a" {
		t.Fatalf("remaining = %+v", remaining)
	}
	if model.selectedIndex != 0 {
		t.Fatalf("selectedIndex = %d", model.selectedIndex)
	}
}

func TestLogoutClearsSession(t *testing.T) {
	model, service := setupModel(t, sampleRecords()...)
	press(model, "l")
	if service.IsAuthenticated() {
		t.Fatalf("IsAuthenticated() = true after logout")
	}
	if !model.quitting {
		t.Fatalf("console should quit after logout")
	}
}

func TestNextCategoryCycles(t *testing.T) {
	current := domainfeedback.Category("")
	seen := 0
	for {
		current = nextCategory(current)
		if current == "" {
			break
		}
		seen++
	}
	if seen != len(domainfeedback.Categories()) {
		t.Fatalf("cycled through %d categories", seen)
	}
}

func TestRenderCard(t *testing.T) {
	card := renderCard(sampleRecords()[1], false)
	for _, want := range []string{"Anonymous", "★★☆☆☆", "Bug Report", "Crash on save"} {
		if !strings.Contains(card, want) {
			t.Fatalf("card missing %q:\n%s", want, card)
		}
	}
}
