package component

// Stage tags the lifecycle point a hook runs at, per spec.md §3's Hook
// store: "mapping from lifecycle stage tag to an ordered list of
// functions".
type Stage string

const (
	StageInit          Stage = "init"
	StageBeforeMount   Stage = "beforeMount"
	StageMounted       Stage = "mounted"
	StageBeforeUpdate  Stage = "beforeUpdate"
	StageUpdated       Stage = "updated"
	StageActivated     Stage = "activated"
	StageDeactivated   Stage = "deactivated"
	StageBeforeUnmount Stage = "beforeUnmount"
	StageUnmounted     Stage = "unmounted"
	StageError         Stage = "error"
	StageRender        Stage = "render"
)

// HookStore holds the ordered per-stage hook lists for one component
// instance. Hooks are appended in registration order and always run in
// that order within a stage.
type HookStore struct {
	stages map[Stage][]func(args ...any)
}

func newHookStore() *HookStore {
	return &HookStore{stages: make(map[Stage][]func(args ...any))}
}

// On registers fn to run whenever stage fires.
func (h *HookStore) On(stage Stage, fn func(args ...any)) {
	h.stages[stage] = append(h.stages[stage], fn)
}

// Run invokes every hook registered for stage, in registration order.
func (h *HookStore) Run(stage Stage, args ...any) {
	for _, fn := range h.stages[stage] {
		fn(args...)
	}
}

// ErrorHookResult is what an instance's error hook returns to
// reportError: Handled=false means "not handled, keep bubbling";
// Handled=true with a nil Fallback suppresses propagation; Handled=true
// with a *vdom.VNode Fallback replaces the subview.
type ErrorHookResult struct {
	Handled  bool
	Fallback any // *vdom.VNode, set only when Handled and a replacement was returned
}

func (h *HookStore) clear() {
	h.stages = make(map[Stage][]func(args ...any))
}
