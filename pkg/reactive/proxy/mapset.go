package proxy

import (
	"sync"

	"github.com/vitarx-lib/core-sub005/pkg/reactive"
)

// Map is a shallow reactive wrapper over a Go map[any]any, modeling the
// spec's Map/WeakMap kind: Get/Has/iteration/Size track, Set/Delete/
// Clear emit. Shallow means values are returned raw, never wrapped,
// regardless of the Deep option (spec.md §4.5: "Map/Set/WeakMap/WeakSet:
// shallow only").
type Map struct {
	mu    sync.Mutex
	raw   map[any]any
	keyed map[any]*reactive.Signal[bool]
	all   *reactive.Signal[uint64]
}

// ReactiveMap wraps target directly; Map has no identity cache, so each
// call returns a new *Map -- callers are expected to keep the *Map
// alongside their map rather than re-deriving it.
func ReactiveMap(target map[any]any) *Map {
	if target == nil {
		target = make(map[any]any)
	}
	return &Map{
		raw:   target,
		keyed: make(map[any]*reactive.Signal[bool]),
		all:   reactive.NewSignal[uint64](0),
	}
}

func (m *Map) keySignal(k any) *reactive.Signal[bool] {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.keyed[k]
	if !ok {
		_, present := m.raw[k]
		s = reactive.NewSignal(present)
		m.keyed[k] = s
	}
	return s
}

// Get reads k, tracking both k's presence signal and the all-properties
// sentinel (a later Set of a previously-absent key still invalidates a
// reader that iterated before it existed).
func (m *Map) Get(k any) (any, bool) {
	m.keySignal(k).Get()
	m.all.Get()
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.raw[k]
	return v, ok
}

// Has tracks the same dependency as Get.
func (m *Map) Has(k any) bool {
	return m.keySignal(k).Get()
}

// Size tracks the structural sentinel.
func (m *Map) Size() int {
	m.all.Get()
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.raw)
}

// Set writes k=v. A no-op write (existing key, Object.is-equal value)
// does not emit.
func (m *Map) Set(k, v any) {
	m.mu.Lock()
	old, existed := m.raw[k]
	if existed && equalAny(old, v) {
		m.mu.Unlock()
		return
	}
	m.raw[k] = v
	m.mu.Unlock()

	if existed {
		m.bumpAll()
		return
	}
	m.keySignal(k).Set(true)
	m.bumpAll()
}

// Delete removes k, invalidating its presence signal and the sentinel.
func (m *Map) Delete(k any) bool {
	m.mu.Lock()
	_, existed := m.raw[k]
	if !existed {
		m.mu.Unlock()
		return false
	}
	delete(m.raw, k)
	m.mu.Unlock()

	m.keySignal(k).Set(false)
	m.bumpAll()
	return true
}

// Clear empties the map, invalidating every known key signal once.
func (m *Map) Clear() {
	m.mu.Lock()
	keys := make([]any, 0, len(m.raw))
	for k := range m.raw {
		keys = append(keys, k)
	}
	m.raw = make(map[any]any)
	m.mu.Unlock()

	for _, k := range keys {
		m.keySignal(k).Set(false)
	}
	m.bumpAll()
}

// Keys returns a snapshot of the current keys, tracking the sentinel.
func (m *Map) Keys() []any {
	m.all.Get()
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := make([]any, 0, len(m.raw))
	for k := range m.raw {
		keys = append(keys, k)
	}
	return keys
}

func (m *Map) bumpAll() {
	m.all.Update(func(n uint64) uint64 { return n + 1 })
}

// Set_ is a shallow reactive wrapper over a Go set (map[any]struct{}),
// modeling the spec's Set/WeakSet kind.
type Set_ struct {
	mu      sync.Mutex
	raw     map[any]struct{}
	members map[any]*reactive.Signal[bool]
	all     *reactive.Signal[uint64]
}

// ReactiveSet wraps target directly, mirroring ReactiveMap.
func ReactiveSet(target map[any]struct{}) *Set_ {
	if target == nil {
		target = make(map[any]struct{})
	}
	return &Set_{
		raw:     target,
		members: make(map[any]*reactive.Signal[bool]),
		all:     reactive.NewSignal[uint64](0),
	}
}

func (s *Set_) memberSignal(k any) *reactive.Signal[bool] {
	s.mu.Lock()
	defer s.mu.Unlock()
	sig, ok := s.members[k]
	if !ok {
		_, present := s.raw[k]
		sig = reactive.NewSignal(present)
		s.members[k] = sig
	}
	return sig
}

// Has tracks membership of k.
func (s *Set_) Has(k any) bool {
	return s.memberSignal(k).Get()
}

// Size tracks the structural sentinel.
func (s *Set_) Size() int {
	s.all.Get()
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.raw)
}

// Add inserts k; a no-op if k is already a member.
func (s *Set_) Add(k any) {
	s.mu.Lock()
	_, existed := s.raw[k]
	if existed {
		s.mu.Unlock()
		return
	}
	s.raw[k] = struct{}{}
	s.mu.Unlock()

	s.memberSignal(k).Set(true)
	s.bumpAll()
}

// Delete removes k.
func (s *Set_) Delete(k any) bool {
	s.mu.Lock()
	_, existed := s.raw[k]
	if !existed {
		s.mu.Unlock()
		return false
	}
	delete(s.raw, k)
	s.mu.Unlock()

	s.memberSignal(k).Set(false)
	s.bumpAll()
	return true
}

// Clear empties the set.
func (s *Set_) Clear() {
	s.mu.Lock()
	keys := make([]any, 0, len(s.raw))
	for k := range s.raw {
		keys = append(keys, k)
	}
	s.raw = make(map[any]struct{})
	s.mu.Unlock()

	for _, k := range keys {
		s.memberSignal(k).Set(false)
	}
	s.bumpAll()
}

// Values returns a snapshot of current members, tracking the sentinel.
func (s *Set_) Values() []any {
	s.all.Get()
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]any, 0, len(s.raw))
	for k := range s.raw {
		out = append(out, k)
	}
	return out
}

func (s *Set_) bumpAll() {
	s.all.Update(func(n uint64) uint64 { return n + 1 })
}
