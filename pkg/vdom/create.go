package vdom

import (
	"log/slog"
	"sync"
)

// StatefulType builds a stateful widget's backing Component for a given
// props map; the vnode produced from it is KindComponent.
type StatefulType func(props Props) Component

// StatelessType renders directly to a vnode with no backing instance;
// the vnode produced from it is KindStateless.
type StatelessType func(props Props) *VNode

// memoKey scopes a v-memo cache entry to the owner (component instance)
// whose render produced it, so two components can use the same
// v-memo-slot string without colliding and an unmounted owner's entries
// are reclaimable rather than pinned forever.
type memoKey struct {
	owner any
	slot  string
}

var (
	memoMu     sync.Mutex
	memoCache  = map[memoKey][]any{}
	memoResult = map[memoKey]*VNode{}
)

// memoOwnerStack tracks the instance currently rendering, set by
// WithMemoOwner around each component build; vdom stays independent of
// pkg/component so owner travels as an opaque comparable value rather
// than a typed *component.Instance. Unguarded, like the component
// runtime's own mountingStack: safe under the scheduler's
// single-threaded-cooperative render invariant (spec.md §5), unlike
// memoCache/memoResult below which a concurrent async-init goroutine
// can legitimately read/write via checkMemo outside of any render.
var memoOwnerStack []any

// WithMemoOwner runs fn with owner as the active v-memo cache scope. The
// component runtime wraps every render pass in this so CreateVNode's
// v-memo handling attributes cache entries to the right instance.
func WithMemoOwner(owner any, fn func()) {
	memoOwnerStack = append(memoOwnerStack, owner)
	defer func() { memoOwnerStack = memoOwnerStack[:len(memoOwnerStack)-1] }()
	fn()
}

func currentMemoOwner() any {
	if len(memoOwnerStack) == 0 {
		return nil
	}
	return memoOwnerStack[len(memoOwnerStack)-1]
}

// ClearMemoOwner releases every v-memo cache entry scoped to owner. The
// component runtime calls this from Instance.Unmount so a memoized
// subtree does not keep its last v-memo tuple/result alive forever,
// per spec.md §4.9's "releasing references is mandatory" invariant.
func ClearMemoOwner(owner any) {
	memoMu.Lock()
	defer memoMu.Unlock()
	for k := range memoCache {
		if k.owner == owner {
			delete(memoCache, k)
			delete(memoResult, k)
		}
	}
}

// CreateVNode is the canonical constructor spec.md §4.7 describes:
// drain reserved keys, evaluate v-if/v-memo, normalize class/style,
// merge v-bind spreads, flatten children, and route to the right Kind.
// typ is a tag string ("fragment"/"text"/"comment"/an element tag) or a
// StatefulType/StatelessType function.
func CreateVNode(typ any, rawProps Props, children []any) *VNode {
	props := drainReserved(rawProps)

	if props.hasVIf && !truthy(props.vIf) {
		return &VNode{Kind: KindComment, Text: "v-if"}
	}

	if props.vMemo != nil {
		if cached, _, ok := checkMemo(props.memoSlot, props.vMemo); ok {
			return cached
		}
	}

	node := &VNode{Props: props.attrs, Key: props.key, Ref: props.ref,
		TeleportTarget: props.vParent, Static: props.vStatic}
	if props.hasShow {
		node.HasShow = true
		node.ShowValue = props.vShow
	}

	switch t := typ.(type) {
	case string:
		switch t {
		case "fragment":
			node.Kind = KindFragment
		case "text":
			node.Kind = KindText
			node.Text = textOf(children)
		case "comment":
			node.Kind = KindComment
			node.Text = textOf(children)
		default:
			if IsVoidElement(t) {
				node.Kind = KindVoidElement
			} else {
				node.Kind = KindElement
			}
			node.Tag = t
		}
	case StatefulType:
		node.Kind = KindComponent
		node.CompFactory = t
	case StatelessType:
		node.Kind = KindStateless
		// Stateless widgets are pure: their "component" is a thin
		// closure so the driver can still invoke Render() uniformly.
		node.Comp = &FuncComponent{render: func() *VNode { return t(props.attrs) }}
	default:
		panic(&shapeError{msg: "createVNode: unsupported type"})
	}

	if node.Kind == KindElement || node.Kind == KindVoidElement || node.Kind == KindFragment {
		node.Children = flattenChildren(children)
		checkDuplicateKeys(node.Children)
	}

	if props.vMemo != nil {
		k := memoKey{owner: currentMemoOwner(), slot: props.memoSlot}
		memoMu.Lock()
		memoCache[k] = props.vMemo
		memoResult[k] = node
		memoMu.Unlock()
	}

	return node
}

// shapeError mirrors reactive.ShapeError without importing the reactive
// package (vdom must stay independent of the effect graph). Construction
// panics carry this type at every call site; app.CreateVNode passes them
// through without converting them to reactive.ShapeError.
type shapeError struct{ msg string }

func (e *shapeError) Error() string { return "shape error: " + e.msg }

type normalizedProps struct {
	attrs     Props
	key       string
	ref       string
	vIf       any
	hasVIf    bool
	vMemo     []any
	memoSlot  string
	vStatic   bool
	vShow     any
	hasShow   bool
	vParent   any
}

// drainReserved consumes the reserved keys spec.md §3 lists (key, ref,
// v-if, v-show, v-memo, v-static, v-parent, v-bind) and returns the
// remaining attrs with class/style normalized and v-bind spreads merged.
func drainReserved(raw Props) normalizedProps {
	out := normalizedProps{attrs: make(Props, len(raw))}
	var classParts []any
	var styleMaps []map[string]any
	var spreads []map[string]any

	for k, v := range raw {
		switch k {
		case "key":
			if s, ok := v.(string); ok {
				out.key = s
			}
		case "ref":
			if s, ok := v.(string); ok {
				out.ref = s
			}
		case "v-if":
			out.vIf, out.hasVIf = v, true
		case "v-show":
			out.vShow, out.hasShow = v, true
		case "v-memo":
			if tuple, ok := v.([]any); ok {
				out.vMemo = tuple
			}
		case "v-memo-slot":
			if s, ok := v.(string); ok {
				out.memoSlot = s
			}
		case "v-static":
			out.vStatic = truthy(v)
		case "v-parent":
			out.vParent = v
		case "v-bind":
			switch sp := v.(type) {
			case map[string]any:
				spreads = append(spreads, sp)
			case []map[string]any:
				spreads = append(spreads, sp...)
			}
		case "class":
			classParts = append(classParts, v)
		case "style":
			if m, ok := v.(map[string]any); ok {
				styleMaps = append(styleMaps, m)
			}
		default:
			out.attrs[k] = v
		}
	}

	for _, sp := range spreads {
		for k, v := range sp {
			switch k {
			case "class":
				classParts = append(classParts, v)
			case "style":
				if m, ok := v.(map[string]any); ok {
					styleMaps = append(styleMaps, m)
				}
			default:
				if _, exists := out.attrs[k]; !exists {
					out.attrs[k] = v
				}
			}
		}
	}

	if len(classParts) > 0 {
		out.attrs["class"] = normalizeClass(classParts)
	}
	if len(styleMaps) > 0 {
		merged := make(map[string]string)
		for _, m := range styleMaps {
			for k, v := range m {
				merged[k] = toStyleValue(v)
			}
		}
		out.attrs["style"] = merged
	}

	return out
}

// normalizeClass flattens strings/[]string/map[string]bool class inputs,
// and []any lists of them (recursively), into an ordered, de-duplicated
// sequence joined by a single space.
func normalizeClass(parts []any) string {
	seen := map[string]bool{}
	var ordered []string
	add := func(name string) {
		if name == "" || seen[name] {
			return
		}
		seen[name] = true
		ordered = append(ordered, name)
	}
	for _, p := range parts {
		switch v := p.(type) {
		case string:
			for _, name := range splitFields(v) {
				add(name)
			}
		case []string:
			for _, name := range v {
				add(name)
			}
		case []any:
			for _, name := range splitFields(normalizeClass(v)) {
				add(name)
			}
		case map[string]bool:
			for name, on := range v {
				if on {
					add(name)
				}
			}
		}
	}
	result := ""
	for i, n := range ordered {
		if i > 0 {
			result += " "
		}
		result += n
	}
	return result
}

func splitFields(s string) []string {
	var out []string
	cur := ""
	for _, r := range s {
		if r == ' ' || r == '\t' || r == '\n' {
			if cur != "" {
				out = append(out, cur)
				cur = ""
			}
			continue
		}
		cur += string(r)
	}
	if cur != "" {
		out = append(out, cur)
	}
	return out
}

func toStyleValue(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return propToString(v)
}

func truthy(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case nil:
		return false
	default:
		return true
	}
}

func textOf(children []any) string {
	if len(children) == 0 {
		return ""
	}
	if s, ok := children[0].(string); ok {
		return s
	}
	return ""
}

// flattenChildren depth-first flattens nested slices, converts
// booleans/nil to empty comment placeholders, and strings/numbers to
// text nodes, per spec.md §4.7.
func flattenChildren(children []any) []*VNode {
	var out []*VNode
	var walk func(any)
	walk = func(c any) {
		switch v := c.(type) {
		case nil:
			out = append(out, &VNode{Kind: KindComment, Text: ""})
		case bool:
			out = append(out, &VNode{Kind: KindComment, Text: ""})
		case *VNode:
			if v == nil {
				out = append(out, &VNode{Kind: KindComment, Text: ""})
				return
			}
			out = append(out, v)
		case []*VNode:
			for _, n := range v {
				walk(n)
			}
		case []any:
			for _, n := range v {
				walk(n)
			}
		case string:
			out = append(out, &VNode{Kind: KindText, Text: v})
		case Component:
			// Already-constructed component instance, not a factory: wrap
			// it so componentDriver.Mount's CompFactory(props) call still
			// has something to invoke.
			out = append(out, &VNode{Kind: KindComponent, CompFactory: func(Props) Component { return v }})
		default:
			out = append(out, &VNode{Kind: KindText, Text: propToString(v)})
		}
	}
	for _, c := range children {
		walk(c)
	}
	return out
}

// checkDuplicateKeys emits the warn-and-continue diagnostic spec.md §4.7
// and §9 Open Question (i) call for: a duplicate key is logged, the
// first occurrence is reused by the reconciler, and later duplicates are
// left to remount under their own identity.
func checkDuplicateKeys(children []*VNode) {
	seen := map[string]bool{}
	for _, c := range children {
		if c.Key == "" {
			continue
		}
		if seen[c.Key] {
			slog.Warn("vdom: duplicate child key, reusing first match", "key", c.Key)
			continue
		}
		seen[c.Key] = true
	}
}

// checkMemo compares tuple against the last tuple recorded for slot
// (scoped to the currently-rendering owner) by deep-ish equality
// (propsEqual element-wise); a match returns the cached vnode so the
// caller can skip rebuilding the subtree.
func checkMemo(slot string, tuple []any) (*VNode, []any, bool) {
	if slot == "" {
		return nil, tuple, false
	}
	k := memoKey{owner: currentMemoOwner(), slot: slot}
	memoMu.Lock()
	defer memoMu.Unlock()
	prev, ok := memoCache[k]
	if !ok || len(prev) != len(tuple) {
		return nil, tuple, false
	}
	for i := range tuple {
		if !propsEqual(prev[i], tuple[i]) {
			return nil, tuple, false
		}
	}
	return memoResult[k], tuple, true
}
