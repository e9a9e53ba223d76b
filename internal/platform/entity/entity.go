// Package entity implements the indexed-entity persistence core shared by
// every resource kind: namespaced record keys over a key-value backend, a
// per-kind index of live record IDs, create/read/update/delete/list with
// uniform semantics, and idempotent first-run seeding.
//
// The index is the only way to enumerate records of a kind. A record exists
// in storage iff its ID is in its kind's index; the entity layer is the sole
// owner of that invariant, and callers never touch the backend directly.
package entity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/clinicdesk/clinicdesk/internal/platform/store"
)

var (
	// ErrEmptyID rejects records created without an identifier.
	ErrEmptyID = errors.New("entity: record id must be a non-empty string")
	// ErrConflict rejects creates whose id is already indexed for the kind.
	ErrConflict = errors.New("entity: record id already exists")
)

// Record constrains entity record types: a pointer to the record struct
// exposing its string identity.
type Record[T any] interface {
	*T
	RecordID() string
	SetRecordID(id string)
}

// Definition describes one entity kind. InitialState doubles as the template
// that fills fields missing from stored records on read, so old records gain
// new fields with their default value without a migration step.
type Definition[T any] struct {
	Name         string
	IndexName    string
	InitialState T
	Seed         []T
}

// Seeder is the part of a Store the startup path uses to guarantee seed data.
type Seeder interface {
	Kind() string
	EnsureSeed(ctx context.Context) error
}

// Store gives one entity kind CRUD and listing over a Backend.
type Store[T any, PT Record[T]] struct {
	backend store.Backend
	def     Definition[T]
}

// NewStore binds a kind definition to a backend.
func NewStore[T any, PT Record[T]](backend store.Backend, def Definition[T]) *Store[T, PT] {
	return &Store[T, PT]{backend: backend, def: def}
}

// Kind returns the entity name used as the key prefix.
func (s *Store[T, PT]) Kind() string { return s.def.Name }

func (s *Store[T, PT]) recordKey(id string) string { return s.def.Name + ":" + id }

func (s *Store[T, PT]) indexKey() string { return "idx:" + s.def.IndexName }

func (s *Store[T, PT]) readIndex(ctx context.Context) ([]string, error) {
	raw, ok, err := s.backend.Get(ctx, s.indexKey())
	if err != nil {
		return nil, fmt.Errorf("read index %s: %w", s.def.IndexName, err)
	}
	if !ok {
		return nil, nil
	}
	var ids []string
	if err := json.Unmarshal(raw, &ids); err != nil {
		return nil, fmt.Errorf("decode index %s: %w", s.def.IndexName, err)
	}
	return ids, nil
}

func (s *Store[T, PT]) writeIndex(ctx context.Context, ids []string) error {
	if ids == nil {
		ids = []string{}
	}
	raw, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("encode index %s: %w", s.def.IndexName, err)
	}
	if err := s.backend.Put(ctx, s.indexKey(), raw); err != nil {
		return fmt.Errorf("write index %s: %w", s.def.IndexName, err)
	}
	return nil
}

// Exists reports whether a record is currently stored under id for this kind.
func (s *Store[T, PT]) Exists(ctx context.Context, id string) (bool, error) {
	return s.backend.Exists(ctx, s.recordKey(id))
}

// Get returns the stored record with fields absent from storage filled from
// InitialState; stored fields win over defaults. A missing record reads as
// the initial state itself rather than an error; callers that need
// not-found semantics check Exists first.
func (s *Store[T, PT]) Get(ctx context.Context, id string) (T, error) {
	state := s.def.InitialState
	raw, ok, err := s.backend.Get(ctx, s.recordKey(id))
	if err != nil {
		return state, fmt.Errorf("get %s: %w", s.recordKey(id), err)
	}
	if !ok {
		return state, nil
	}
	if err := json.Unmarshal(raw, &state); err != nil {
		return s.def.InitialState, fmt.Errorf("decode %s: %w", s.recordKey(id), err)
	}
	return state, nil
}

// Create stores a new record and appends its id to the kind's index,
// preserving insertion order. An empty id or an id already present in the
// index fails the create; it never silently overwrites.
//
// The index append is a read-modify-write without a multi-key transaction:
// two concurrent creates for the same kind can race on it and one appended
// id can be lost. The backend contract offers nothing stronger.
func (s *Store[T, PT]) Create(ctx context.Context, rec T) (T, error) {
	id := PT(&rec).RecordID()
	if id == "" {
		return rec, ErrEmptyID
	}
	ids, err := s.readIndex(ctx)
	if err != nil {
		return rec, err
	}
	for _, existing := range ids {
		if existing == id {
			return rec, fmt.Errorf("%s %q: %w", s.def.Name, id, ErrConflict)
		}
	}
	raw, err := json.Marshal(rec)
	if err != nil {
		return rec, fmt.Errorf("encode %s: %w", s.recordKey(id), err)
	}
	if err := s.backend.Put(ctx, s.recordKey(id), raw); err != nil {
		return rec, fmt.Errorf("put %s: %w", s.recordKey(id), err)
	}
	if err := s.writeIndex(ctx, append(ids, id)); err != nil {
		return rec, err
	}
	return rec, nil
}

// Mutate reads the current state (per Get semantics), applies fn, and writes
// the result back under the same key. The record id is forced back to id
// after the transform so identity can never change; the index is untouched.
// There is no version check: concurrent mutations of the same record race
// and the last writer wins.
func (s *Store[T, PT]) Mutate(ctx context.Context, id string, fn func(T) T) (T, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return current, err
	}
	next := fn(current)
	PT(&next).SetRecordID(id)
	raw, err := json.Marshal(next)
	if err != nil {
		return next, fmt.Errorf("encode %s: %w", s.recordKey(id), err)
	}
	if err := s.backend.Put(ctx, s.recordKey(id), raw); err != nil {
		return next, fmt.Errorf("put %s: %w", s.recordKey(id), err)
	}
	return next, nil
}

// Delete removes the record and its index entry, reporting whether anything
// was removed. Deleting an id that is not indexed is a no-op, not an error.
func (s *Store[T, PT]) Delete(ctx context.Context, id string) (bool, error) {
	ids, err := s.readIndex(ctx)
	if err != nil {
		return false, err
	}
	kept := make([]string, 0, len(ids))
	found := false
	for _, existing := range ids {
		if existing == id {
			found = true
			continue
		}
		kept = append(kept, existing)
	}
	if !found {
		return false, nil
	}
	if _, err := s.backend.Delete(ctx, s.recordKey(id)); err != nil {
		return false, fmt.Errorf("delete %s: %w", s.recordKey(id), err)
	}
	if err := s.writeIndex(ctx, kept); err != nil {
		return false, err
	}
	return true, nil
}

// List returns every record of the kind in index (insertion) order, each
// default-filled as in Get, plus the total count.
func (s *Store[T, PT]) List(ctx context.Context) ([]T, int, error) {
	ids, err := s.readIndex(ctx)
	if err != nil {
		return nil, 0, err
	}
	items := make([]T, 0, len(ids))
	for _, id := range ids {
		rec, err := s.Get(ctx, id)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, rec)
	}
	return items, len(items), nil
}

// EnsureSeed populates the kind with its starting dataset when its index
// does not exist yet. An existing index, even an empty one, means the kind
// is already initialized and nothing happens. The existence check and the
// seed writes are not guarded by a lock; two concurrent first-time callers
// can both observe a missing index and both attempt to seed, which is why a
// duplicate id during seeding is tolerated: the second write of identical
// content is a no-op in effect.
func (s *Store[T, PT]) EnsureSeed(ctx context.Context) error {
	ok, err := s.backend.Exists(ctx, s.indexKey())
	if err != nil {
		return fmt.Errorf("check index %s: %w", s.def.IndexName, err)
	}
	if ok {
		return nil
	}
	for _, rec := range s.def.Seed {
		if _, err := s.Create(ctx, rec); err != nil && !errors.Is(err, ErrConflict) {
			return fmt.Errorf("seed %s: %w", s.def.Name, err)
		}
	}
	if len(s.def.Seed) == 0 {
		return s.writeIndex(ctx, nil)
	}
	return nil
}

// Merge overlays a partial JSON patch onto current, key by key at the top
// level, and decodes the result back into the record type. The id key is
// ignored so a patch cannot reassign identity.
func Merge[T any](current T, patch map[string]any) (T, error) {
	raw, err := json.Marshal(current)
	if err != nil {
		return current, fmt.Errorf("encode current state: %w", err)
	}
	base := map[string]any{}
	if err := json.Unmarshal(raw, &base); err != nil {
		return current, fmt.Errorf("decode current state: %w", err)
	}
	for k, v := range patch {
		if k == "id" {
			continue
		}
		base[k] = v
	}
	merged, err := json.Marshal(base)
	if err != nil {
		return current, fmt.Errorf("encode merged state: %w", err)
	}
	var out T
	if err := json.Unmarshal(merged, &out); err != nil {
		return current, fmt.Errorf("apply patch: %w", err)
	}
	return out, nil
}
