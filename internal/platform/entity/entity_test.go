package entity

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/clinicdesk/clinicdesk/internal/platform/store"
)

type widget struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Unit  string `json:"unit"`
	Count int    `json:"count"`
}

func (w *widget) RecordID() string      { return w.ID }
func (w *widget) SetRecordID(id string) { w.ID = id }

func widgetDef(seed ...widget) Definition[widget] {
	return Definition[widget]{
		Name:         "widget",
		IndexName:    "widgets",
		InitialState: widget{Unit: "piece"},
		Seed:         seed,
	}
}

func newWidgetStore(seed ...widget) (*Store[widget, *widget], *store.Memory) {
	backend := store.NewMemory()
	return NewStore[widget, *widget](backend, widgetDef(seed...)), backend
}

func TestCreateAndList_InsertionOrder(t *testing.T) {
	s, _ := newWidgetStore()
	ctx := context.Background()

	for _, id := range []string{"w-3", "w-1", "w-2"} {
		if _, err := s.Create(ctx, widget{ID: id, Name: id}); err != nil {
			t.Fatalf("create %s: %v", id, err)
		}
	}

	items, count, err := s.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if count != 3 || len(items) != 3 {
		t.Fatalf("expected 3 items, got count=%d len=%d", count, len(items))
	}
	for i, want := range []string{"w-3", "w-1", "w-2"} {
		if items[i].ID != want {
			t.Errorf("item %d: expected %s, got %s", i, want, items[i].ID)
		}
	}
}

func TestCreate_EmptyID(t *testing.T) {
	s, _ := newWidgetStore()
	if _, err := s.Create(context.Background(), widget{Name: "anonymous"}); !errors.Is(err, ErrEmptyID) {
		t.Errorf("expected ErrEmptyID, got %v", err)
	}
}

func TestCreate_DuplicateRejected(t *testing.T) {
	s, _ := newWidgetStore()
	ctx := context.Background()

	if _, err := s.Create(ctx, widget{ID: "w-1", Name: "first"}); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if _, err := s.Create(ctx, widget{ID: "w-1", Name: "second"}); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}

	got, err := s.Get(ctx, "w-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "first" {
		t.Errorf("stored record changed on rejected create: %q", got.Name)
	}
	if _, count, _ := s.List(ctx); count != 1 {
		t.Errorf("expected 1 indexed record, got %d", count)
	}
}

func TestGet_MissingReadsAsDefaults(t *testing.T) {
	s, _ := newWidgetStore()
	ctx := context.Background()

	ok, err := s.Exists(ctx, "ghost")
	if err != nil || ok {
		t.Fatalf("expected absent record, ok=%v err=%v", ok, err)
	}
	got, err := s.Get(ctx, "ghost")
	if err != nil {
		t.Fatalf("get should not fail for missing records: %v", err)
	}
	if got.Unit != "piece" || got.ID != "" {
		t.Errorf("expected initial state, got %+v", got)
	}
}

func TestGet_DefaultFilling(t *testing.T) {
	s, backend := newWidgetStore()
	ctx := context.Background()

	// A record stored before the unit field existed.
	if err := backend.Put(ctx, "widget:w-old", []byte(`{"id":"w-old","name":"legacy"}`)); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, err := s.Get(ctx, "w-old")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "legacy" {
		t.Errorf("stored field lost: %+v", got)
	}
	if got.Unit != "piece" {
		t.Errorf("missing field not filled from initial state: %+v", got)
	}
}

func TestMutate_PreservesID(t *testing.T) {
	s, _ := newWidgetStore()
	ctx := context.Background()

	if _, err := s.Create(ctx, widget{ID: "w-1", Count: 1}); err != nil {
		t.Fatalf("create: %v", err)
	}
	updated, err := s.Mutate(ctx, "w-1", func(w widget) widget {
		w.ID = "hijacked"
		w.Count = 2
		return w
	})
	if err != nil {
		t.Fatalf("mutate: %v", err)
	}
	if updated.ID != "w-1" {
		t.Errorf("mutate changed identity to %q", updated.ID)
	}
	if updated.Count != 2 {
		t.Errorf("transform result lost: %+v", updated)
	}

	if ok, _ := s.Exists(ctx, "hijacked"); ok {
		t.Error("record moved to a new storage key")
	}
	got, _ := s.Get(ctx, "w-1")
	if got.Count != 2 {
		t.Errorf("persisted state wrong: %+v", got)
	}
}

func TestDelete_IdempotentInEffect(t *testing.T) {
	s, _ := newWidgetStore()
	ctx := context.Background()

	removed, err := s.Delete(ctx, "w-1")
	if err != nil {
		t.Fatalf("delete missing: %v", err)
	}
	if removed {
		t.Error("expected nothing removed for unknown id")
	}

	if _, err := s.Create(ctx, widget{ID: "w-1"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	removed, err = s.Delete(ctx, "w-1")
	if err != nil || !removed {
		t.Fatalf("expected removal, removed=%v err=%v", removed, err)
	}
	if ok, _ := s.Exists(ctx, "w-1"); ok {
		t.Error("record still stored after delete")
	}
	if _, count, _ := s.List(ctx); count != 0 {
		t.Errorf("index not emptied, count=%d", count)
	}
}

func TestIndexStorageCoherence(t *testing.T) {
	s, _ := newWidgetStore()
	ctx := context.Background()

	ops := []struct {
		create bool
		id     string
	}{
		{true, "a"}, {true, "b"}, {false, "a"}, {true, "c"},
		{false, "missing"}, {true, "d"}, {false, "c"},
	}
	for _, op := range ops {
		if op.create {
			if _, err := s.Create(ctx, widget{ID: op.id}); err != nil {
				t.Fatalf("create %s: %v", op.id, err)
			}
		} else {
			if _, err := s.Delete(ctx, op.id); err != nil {
				t.Fatalf("delete %s: %v", op.id, err)
			}
		}

		items, _, err := s.List(ctx)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		for _, it := range items {
			ok, err := s.Exists(ctx, it.ID)
			if err != nil || !ok {
				t.Fatalf("indexed id %s not stored (ok=%v err=%v)", it.ID, ok, err)
			}
		}
	}
}

func TestEnsureSeed_Idempotent(t *testing.T) {
	seed := []widget{{ID: "w-1", Name: "alpha"}, {ID: "w-2", Name: "beta"}}
	s, _ := newWidgetStore(seed...)
	ctx := context.Background()

	if err := s.EnsureSeed(ctx); err != nil {
		t.Fatalf("first seed: %v", err)
	}
	if err := s.EnsureSeed(ctx); err != nil {
		t.Fatalf("second seed: %v", err)
	}

	items, count, err := s.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 seeded records, got %d", count)
	}
	if items[0].ID != "w-1" || items[1].ID != "w-2" {
		t.Errorf("seed order not preserved: %+v", items)
	}
}

func TestEnsureSeed_ExistingIndexUntouched(t *testing.T) {
	seed := []widget{{ID: "w-1"}}
	s, _ := newWidgetStore(seed...)
	ctx := context.Background()

	if err := s.EnsureSeed(ctx); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := s.Delete(ctx, "w-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	// Index exists (empty), so a re-seed must not restore anything.
	if err := s.EnsureSeed(ctx); err != nil {
		t.Fatalf("re-seed: %v", err)
	}
	if _, count, _ := s.List(ctx); count != 0 {
		t.Errorf("re-seed repopulated an initialized kind, count=%d", count)
	}
}

func TestEnsureSeed_EmptySeedEstablishesIndex(t *testing.T) {
	s, backend := newWidgetStore()
	ctx := context.Background()

	if err := s.EnsureSeed(ctx); err != nil {
		t.Fatalf("seed: %v", err)
	}
	ok, err := backend.Exists(ctx, "idx:widgets")
	if err != nil || !ok {
		t.Fatalf("expected index record after empty seed, ok=%v err=%v", ok, err)
	}
}

func TestMerge_OverlaysAndProtectsID(t *testing.T) {
	current := widget{ID: "w-1", Name: "old", Unit: "box", Count: 4}
	patch := map[string]any{"name": "new", "id": "other", "count": 9}

	merged, err := Merge(current, patch)
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	if merged.ID != "w-1" {
		t.Errorf("patch reassigned id: %q", merged.ID)
	}
	if merged.Name != "new" || merged.Count != 9 {
		t.Errorf("patched fields not applied: %+v", merged)
	}
	if merged.Unit != "box" {
		t.Errorf("untouched field lost: %+v", merged)
	}
}

func TestMerge_BadPatchValue(t *testing.T) {
	current := widget{ID: "w-1", Count: 4}
	if _, err := Merge(current, map[string]any{"count": "not a number"}); err == nil {
		t.Error("expected error for type-mismatched patch")
	}
}

func TestStoredShape(t *testing.T) {
	s, backend := newWidgetStore()
	ctx := context.Background()

	if _, err := s.Create(ctx, widget{ID: "w-1", Name: "alpha"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	raw, ok, err := backend.Get(ctx, "widget:w-1")
	if err != nil || !ok {
		t.Fatalf("record key missing, ok=%v err=%v", ok, err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("stored value is not JSON: %v", err)
	}
	if decoded["id"] != "w-1" {
		t.Errorf("stored record id wrong: %v", decoded["id"])
	}

	raw, ok, err = backend.Get(ctx, "idx:widgets")
	if err != nil || !ok {
		t.Fatalf("index key missing, ok=%v err=%v", ok, err)
	}
	var ids []string
	if err := json.Unmarshal(raw, &ids); err != nil {
		t.Fatalf("index is not a JSON id list: %v", err)
	}
	if len(ids) != 1 || ids[0] != "w-1" {
		t.Errorf("index content wrong: %v", ids)
	}
}
