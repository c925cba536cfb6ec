package app

import (
	"github.com/vitarx-lib/core-sub005/internal/observability"
	"github.com/vitarx-lib/core-sub005/pkg/component"
	"github.com/vitarx-lib/core-sub005/pkg/driver"
	"github.com/vitarx-lib/core-sub005/pkg/reactive"
	"github.com/vitarx-lib/core-sub005/pkg/vdom"
)

// ConfigureSentry initializes the Sentry SDK an app's OnError fallback
// reports to when no custom handler claims an error. An empty dsn
// disables sending (the fallback still logs via slog).
func ConfigureSentry(dsn, environment string) error {
	return observability.ConfigureSentry(dsn, environment)
}

// Plugin is installed via App.Use; it receives the application so it can
// register directives, provide values, or otherwise configure itself
// before the first mount.
type Plugin interface {
	Install(a *App, opts any)
}

// DirectiveSpec is a named custom directive's set of lifecycle
// callbacks, as stored by App.Directive.
type DirectiveSpec = vdom.Directive

// App is the root application object spec.md §6 describes:
// createApp(root, config).mount(target), with use/provide/directive
// configuration methods.
type App struct {
	root   func() *vdom.VNode
	config Config

	host       driver.HostAdapter
	dispatcher *driver.Dispatcher

	directives map[string]DirectiveSpec
	provide    map[string]any

	rootVNode *vdom.VNode
	errorHandler func(err error)
}

// Config holds the development-mode toggle as a per-app field rather
// than a single global, so multiple apps in the same process (as in
// tests) don't share state.
type Config struct {
	DevMode bool
}

// CreateApp builds an application whose tree is produced by calling
// root() once, at Mount. The host adapter is supplied at Mount
// time, not here, since spec.md's adapter is injected "at init" -- Mount
// is this core's init point.
func CreateApp(root func() *vdom.VNode, config ...Config) *App {
	a := &App{root: root, directives: map[string]DirectiveSpec{}, provide: map[string]any{}}
	if len(config) > 0 {
		a.config = config[0]
	}
	return a
}

// Use installs plugin, passing opts through to its Install method.
func (a *App) Use(plugin Plugin, opts any) *App {
	plugin.Install(a, opts)
	return a
}

// Provide makes name -> value available to Inject calls anywhere in
// this app's tree that find no closer provider.
func (a *App) Provide(name string, value any) *App {
	a.provide[name] = value
	return a
}

// Directive stores spec under name in this app's directive registry.
// Nothing reads the registry back: CreateVNode does not resolve
// v-<name> props against it (they stay plain attributes). The driver
// dispatcher runs directive callbacks only for bindings already placed
// in a vnode's Directives field.
func (a *App) Directive(name string, spec DirectiveSpec) *App {
	spec.Name = name
	a.directives[name] = spec
	return a
}

// OnError installs the application-level error handler spec.md §4.9
// names as the last stop for an error that bubbled past every
// component's onError hook.
func (a *App) OnError(fn func(err error)) *App {
	a.errorHandler = fn
	return a
}

// Mount builds the dispatcher bound to host, renders the root, and
// mounts it into target via the host adapter.
func (a *App) Mount(host driver.HostAdapter, target driver.Node) {
	a.host = host
	a.dispatcher = driver.NewDispatcher(host)
	component.RegisterDrivers(a.dispatcher)

	component.SetAppProvideTable(func(name string) (any, bool) {
		if v, ok := a.provide[name]; ok {
			return v, true
		}
		return appProvideLookup(name)
	})
	component.SetAppErrorHandler(a.reportUnhandled)

	a.rootVNode = a.root()
	a.dispatcher.Mount(a.rootVNode, target, nil, host)
}

// Unmount tears the whole tree down.
func (a *App) Unmount() {
	if a.rootVNode == nil {
		return
	}
	a.dispatcher.Unmount(a.rootVNode, a.host)
	a.rootVNode = nil
}

func (a *App) reportUnhandled(err error) {
	if a.errorHandler != nil {
		a.errorHandler(err)
		return
	}
	observability.CaptureError("app", err)
}

// FlushSync drains the scheduler synchronously -- the explicit
// suspension point spec.md §5 names alongside microtask boundaries and
// awaited promises.
func FlushSync() { reactive.FlushSync() }
