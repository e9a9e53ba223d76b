package store

import (
	"bytes"
	"context"
	"testing"
)

func TestMemory_PutGet(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	if err := m.Put(ctx, "k1", []byte("v1")); err != nil {
		t.Fatalf("put: %v", err)
	}
	v, ok, err := m.Get(ctx, "k1")
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if !bytes.Equal(v, []byte("v1")) {
		t.Errorf("expected v1, got %q", v)
	}

	_, ok, err = m.Get(ctx, "nope")
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if ok {
		t.Error("expected missing key")
	}
}

func TestMemory_GetReturnsCopy(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	m.Put(ctx, "k1", []byte("abc"))
	v, _, _ := m.Get(ctx, "k1")
	v[0] = 'X'

	again, _, _ := m.Get(ctx, "k1")
	if !bytes.Equal(again, []byte("abc")) {
		t.Errorf("stored value mutated through returned slice: %q", again)
	}
}

func TestMemory_Delete(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	removed, err := m.Delete(ctx, "k1")
	if err != nil {
		t.Fatalf("delete missing: %v", err)
	}
	if removed {
		t.Error("expected false for missing key")
	}

	m.Put(ctx, "k1", []byte("v"))
	removed, err = m.Delete(ctx, "k1")
	if err != nil || !removed {
		t.Fatalf("expected removal, removed=%v err=%v", removed, err)
	}
	if ok, _ := m.Exists(ctx, "k1"); ok {
		t.Error("key still present after delete")
	}
}

func TestMemory_Exists(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	if ok, _ := m.Exists(ctx, "k1"); ok {
		t.Error("expected absent key")
	}
	m.Put(ctx, "k1", nil)
	if ok, _ := m.Exists(ctx, "k1"); !ok {
		t.Error("expected present key even with empty value")
	}
	if m.Len() != 1 {
		t.Errorf("expected 1 key, got %d", m.Len())
	}
}
