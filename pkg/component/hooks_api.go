package component

// This file is the public composition-style API surface for user
// component code: thin wrappers over Current() that register against
// whichever Instance is building right now. Calling one outside an
// instance context is a no-op, so a stray lifecycle registration during
// a plain function call is silently dropped rather than panicking.

// OnMounted registers fn to run once, after this instance's subview has
// mounted.
func OnMounted(fn func()) { onStage(StageMounted, fn) }

// OnUnmounted registers fn to run once, after this instance tears down.
func OnUnmounted(fn func()) { onStage(StageUnmounted, fn) }

// OnBeforeUpdate registers fn to run before a re-render patches the
// mounted subview.
func OnBeforeUpdate(fn func()) { onStage(StageBeforeUpdate, fn) }

// OnUpdated registers fn to run after a re-render's patch lands.
func OnUpdated(fn func()) { onStage(StageUpdated, fn) }

// OnActivated registers fn to run when a preserved subtree reattaches.
func OnActivated(fn func()) { onStage(StageActivated, fn) }

// OnDeactivated registers fn to run when a preserved subtree detaches
// without unmounting.
func OnDeactivated(fn func()) { onStage(StageDeactivated, fn) }

func onStage(stage Stage, fn func()) {
	inst := Current()
	if inst == nil {
		return
	}
	inst.Hooks.On(stage, func(args ...any) { fn() })
}

// OnErrorCaptured installs fn as the current instance's error hook. fn
// returns (result, ran): ran=false or result.Handled=false means "not
// interested, keep bubbling"; Handled=true with a nil Fallback
// suppresses the error; Handled=true with a *vdom.VNode Fallback
// replaces the subview.
func OnErrorCaptured(fn func(err error) (ErrorHookResult, bool)) {
	inst := Current()
	if inst == nil {
		return
	}
	inst.OnErrorCaptured(fn)
}

// Provide writes name -> value into the current instance's provide map.
func Provide(name string, value any) {
	inst := Current()
	if inst == nil {
		return
	}
	inst.Provide(name, value)
}

// appProvideTable is the application-level provide fallback, set once
// by pkg/app at createApp time.
var appProvideTable func(string) (any, bool)

// SetAppProvideTable installs the application-level provide lookup
// Inject falls back to once no instance ancestor has a match.
func SetAppProvideTable(f func(string) (any, bool)) {
	appProvideTable = f
}

// appErrorHandler is the application-level error handler spec.md §4.9
// names as the last stop for an error no component's onError hook
// claimed. pkg/app installs it at Mount time.
var appErrorHandler func(error)

// SetAppErrorHandler installs the application-level error handler.
func SetAppErrorHandler(f func(error)) { appErrorHandler = f }

// Inject walks the current instance's ancestors for name, then the
// application-level provide table, then returns def.
func Inject(name string, def any) any {
	inst := Current()
	if inst == nil {
		if appProvideTable != nil {
			if v, ok := appProvideTable(name); ok {
				return v
			}
		}
		return def
	}
	return inst.Inject(name, def, appProvideTable)
}
