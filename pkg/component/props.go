package component

import (
	"sync"

	"github.com/vitarx-lib/core-sub005/pkg/reactive"
)

// Props is a per-instance reactive props proxy. Reads of any key route
// through a lazily created property signal (so a parent's prop write
// invalidates exactly the readers of that key); update is only ever called
// by the reconciler's "props-change notification" path (spec.md §4.8),
// never by the component itself.
//
// Per spec.md §9 Open Question (ii): iteration (Keys) enumerates only
// keys present in the input map, while Get on an unset-but-defaulted
// key returns the default without it ever becoming an "own" key.
type Props struct {
	mu       sync.Mutex
	input    map[string]any
	defaults map[string]any
	signals  map[string]*reactive.Signal[any]
}

// NewProps builds a props proxy from the input map supplied at mount/
// update time. defaults is consulted on a miss and is never mutated.
func NewProps(input map[string]any, defaults map[string]any) *Props {
	if input == nil {
		input = map[string]any{}
	}
	return &Props{input: input, defaults: defaults, signals: map[string]*reactive.Signal[any]{}}
}

func (p *Props) signal(key string) *reactive.Signal[any] {
	p.mu.Lock()
	defer p.mu.Unlock()
	s, ok := p.signals[key]
	if !ok {
		v, has := p.input[key]
		if !has {
			v = p.defaults[key]
		}
		s = reactive.NewSignal(v)
		p.signals[key] = s
	}
	return s
}

// Get reads key, tracking a dependency, falling back to the default.
func (p *Props) Get(key string) any {
	return p.signal(key).Get()
}

// Has reports whether key was supplied by the caller (not a default).
func (p *Props) Has(key string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.input[key]
	return ok
}

// Keys enumerates only input-supplied keys, per Open Question (ii).
func (p *Props) Keys() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	keys := make([]string, 0, len(p.input))
	for k := range p.input {
		keys = append(keys, k)
	}
	return keys
}

// update replaces the backing input map on a reconciler prop-change
// notification, writing through each existing signal so current
// readers react; keys with no live signal are left to be picked up
// lazily on next read.
func (p *Props) update(next map[string]any) {
	p.mu.Lock()
	p.input = next
	signals := make(map[string]*reactive.Signal[any], len(p.signals))
	for k, s := range p.signals {
		signals[k] = s
	}
	defaults := p.defaults
	p.mu.Unlock()

	for k, s := range signals {
		v, has := next[k]
		if !has {
			v = defaults[k]
		}
		s.Set(v)
	}
}
