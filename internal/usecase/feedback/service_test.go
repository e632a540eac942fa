package feedback

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	gormsqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"

	domainfeedback "feedbackdesk/internal/domain/feedback"
	"feedbackdesk/internal/infrastructure/kv"
	"feedbackdesk/internal/infrastructure/persistence/sqlite/model"
)

type testStore struct {
	data    map[string][]byte
	saves   int
	failing bool
}

func newTestStore() *testStore {
	return &testStore{data: make(map[string][]byte)}
}

func (s *testStore) Load(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := s.data[key]
	return v, ok, nil
}

func (s *testStore) Save(_ context.Context, key string, value []byte) error {
	s.saves++
	if s.failing {
		return errors.New("disk full")
	}
	s.data[key] = append([]byte(nil), value...)
	return nil
}

func (s *testStore) Delete(_ context.Context, key string) error {
	delete(s.data, key)
	return nil
}

func setupService(t *testing.T) (*Service, *testStore) {
	t.Helper()

	store := newTestStore()
	svc := NewService(store, Options{StoreKey: "feedback-store", AdminPassword: "admin123"})
	seq := 0
	svc.newID = func() string {
		seq++
		return fmt.Sprintf("fb-%d", seq)
	}
	svc.now = func() time.Time { return time.Date(2025, 3, 4, 15, 7, 0, 0, time.UTC) }
	return svc, store
}

func TestAddFeedbackPrependsAndPersists(t *testing.T) {
	svc, store := setupService(t)
	ctx := context.Background()

	svc.AddFeedback(ctx, domainfeedback.Record{ID: "a"})
	svc.AddFeedback(ctx, domainfeedback.Record{ID: "b"})

	got := svc.Feedbacks()
	if len(got) != 2 || got[0].ID != "b" || got[1].ID != "a" {
		t.Fatalf("Feedbacks() = %+v", got)
	}
	if store.saves != 2 {
		t.Fatalf("saves = %d, want 2", store.saves)
	}
	if _, ok := store.data["feedback-store"]; !ok {
		t.Fatalf("state not persisted under fixed key")
	}
}

func TestAddThenDeleteRoundTrip(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	svc.AddFeedback(ctx, domainfeedback.Record{ID: "keep", Message: "first"})
	before := svc.Snapshot()

	svc.AddFeedback(ctx, domainfeedback.Record{ID: "temp", Message: "second"})
	if !svc.DeleteFeedback(ctx, "temp") {
		t.Fatalf("DeleteFeedback() = false, want true")
	}

	if after := svc.Snapshot(); !reflect.DeepEqual(before, after) {
		t.Fatalf("state after round trip = %+v, want %+v", after, before)
	}
}

func TestDeleteUnknownIDIsNoop(t *testing.T) {
	svc, store := setupService(t)
	ctx := context.Background()

	svc.AddFeedback(ctx, domainfeedback.Record{ID: "a"})
	before := svc.Snapshot()

	if svc.DeleteFeedback(ctx, "missing") {
		t.Fatalf("DeleteFeedback(missing) = true, want false")
	}
	if after := svc.Snapshot(); !reflect.DeepEqual(before, after) {
		t.Fatalf("state changed: %+v", after)
	}
	if store.saves != 2 {
		t.Fatalf("saves = %d, want 2 (delete still persists)", store.saves)
	}
}

func TestSnapshotIsDetached(t *testing.T) {
	svc, _ := setupService(t)
	svc.AddFeedback(context.Background(), domainfeedback.Record{ID: "a", Message: "original"})

	snapshot := svc.Snapshot()
	snapshot.Feedbacks[0].Message = "changed"

	if svc.Feedbacks()[0].Message != "original" {
		t.Fatalf("snapshot mutation leaked into service")
	}
}

func TestPersistFailureIsNotSurfaced(t *testing.T) {
	svc, store := setupService(t)
	store.failing = true
	ctx := context.Background()

	svc.AddFeedback(ctx, domainfeedback.Record{ID: "a"})
	svc.SetAuthenticated(ctx, true)

	if len(svc.Feedbacks()) != 1 || !svc.IsAuthenticated() {
		t.Fatalf("in-memory state lost after persist failure: %+v", svc.Snapshot())
	}
}

func TestHydrateDefaultsAndReload(t *testing.T) {
	svc, store := setupService(t)
	ctx := context.Background()

	if err := svc.Hydrate(ctx); err != nil {
		t.Fatalf("Hydrate(empty) error = %v", err)
	}
	if state := svc.Snapshot(); len(state.Feedbacks) != 0 || state.IsAuthenticated {
		t.Fatalf("default state = %+v", state)
	}

	svc.AddFeedback(ctx, domainfeedback.Record{ID: "a", Rating: 5})
	svc.SetAuthenticated(ctx, true)

	reloaded := NewService(store, Options{StoreKey: "feedback-store"})
	if err := reloaded.Hydrate(ctx); err != nil {
		t.Fatalf("Hydrate() error = %v", err)
	}
	state := reloaded.Snapshot()
	if len(state.Feedbacks) != 1 || state.Feedbacks[0].Rating != 5 || !state.IsAuthenticated {
		t.Fatalf("reloaded state = %+v", state)
	}
}

func TestHydrateRejectsCorruptBlob(t *testing.T) {
	svc, store := setupService(t)
	store.data["feedback-store"] = []byte("{not json")

	if err := svc.Hydrate(context.Background()); err == nil {
		t.Fatalf("Hydrate() expected error for corrupt blob")
	}
}

func TestHydrateFromSQLiteStore(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "state.sqlite")
	db, err := gorm.Open(gormsqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })
	if err := db.AutoMigrate(&model.StateKV{}); err != nil {
		t.Fatalf("auto migrate: %v", err)
	}

	ctx := context.Background()
	store := kv.NewSQLiteStore(db)

	first := NewService(store, Options{StoreKey: "feedback-store", AdminPassword: "admin123"})
	if err := first.Hydrate(ctx); err != nil {
		t.Fatalf("Hydrate() error = %v", err)
	}
	if _, err := first.Submit(ctx, SubmitInput{Rating: 3, Category: "bug", Message: "crash on save"}); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	second := NewService(store, Options{StoreKey: "feedback-store"})
	if err := second.Hydrate(ctx); err != nil {
		t.Fatalf("Hydrate() error = %v", err)
	}
	records := second.Feedbacks()
	if len(records) != 1 || records[0].Message != "crash on save" || records[0].Category != domainfeedback.CategoryBug {
		t.Fatalf("records = %+v", records)
	}
}
