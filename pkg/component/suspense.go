package component

// suspenseCtxTag is the C6 context key a suspense boundary publishes its
// counter cell under, per spec.md §4.9: "a counter cell provided at a
// suspense boundary; children look it up via inject."
type suspenseCtxTag struct{}

// ProvideSuspense installs the current instance as the nearest suspense
// boundary for its subtree, so descendant async inits can find it via
// InjectSuspense.
func ProvideSuspense() {
	inst := Current()
	if inst == nil {
		return
	}
	inst.Provide(suspenseKey, inst)
}

const suspenseKey = "__suspense_boundary__"

// InjectSuspense returns the nearest enclosing suspense boundary
// instance, or nil if the current instance has none.
func InjectSuspense() *Instance {
	inst := Current()
	if inst == nil {
		return nil
	}
	if v := inst.Inject(suspenseKey, nil, nil); v != nil {
		if b, ok := v.(*Instance); ok {
			return b
		}
	}
	return nil
}

// RunAsyncInit runs fn, an async "init" hook body, incrementing the
// nearest suspense boundary's counter while fn is pending and
// decrementing it on settle -- spec.md §4.9/§8 S6. Errors are routed
// through reportError with source "init" rather than propagated, so a
// rejected init can never escape into the scheduler.
func RunAsyncInit(fn func() error) {
	inst := Current()
	if inst == nil {
		return
	}
	boundary := InjectSuspense()
	if boundary != nil {
		boundary.IncSuspense()
	}
	inst.IncSuspense()
	go func() {
		defer func() {
			if boundary != nil {
				boundary.DecSuspense()
			}
			inst.DecSuspense()
			if r := recover(); r != nil {
				inst.reportError(asError(r), "init")
			}
		}()
		if err := fn(); err != nil {
			inst.reportError(err, "init")
		}
	}()
}
