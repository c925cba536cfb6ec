package component

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vitarx-lib/core-sub005/pkg/driver"
	"github.com/vitarx-lib/core-sub005/pkg/reactive"
	"github.com/vitarx-lib/core-sub005/pkg/vdom"
)

func newTestDispatcher() (*driver.Dispatcher, *driver.FakeHost) {
	host := driver.NewFakeHost()
	d := driver.NewDispatcher(host)
	RegisterDrivers(d)
	return d, host
}

// counterWidget is a minimal stateful widget: an internal signal
// rendered as a div's text content, incremented externally via the
// returned bump function.
func counterWidget(bump *func()) vdom.StatefulType {
	return func(props vdom.Props) vdom.Component {
		count := reactive.NewSignal(0)
		*bump = func() { count.Set(count.Peek() + 1) }
		return vdom.Func(func() *vdom.VNode {
			return vdom.CreateVNode("div", vdom.Props{}, []any{fmt.Sprintf("%d", count.Get())})
		})
	}
}

func TestInstanceMountRendersInitialSubview(t *testing.T) {
	d, host := newTestDispatcher()
	var bump func()
	n := vdom.CreateVNode(vdom.StatefulType(counterWidget(&bump)), vdom.Props{}, nil)

	d.Mount(n, nil, nil, host)

	assert.Equal(t, `<div>0</div>`, host.String())
}

func TestInstanceReRendersOnSignalChange(t *testing.T) {
	d, host := newTestDispatcher()
	var bump func()
	n := vdom.CreateVNode(vdom.StatefulType(counterWidget(&bump)), vdom.Props{}, nil)

	d.Mount(n, nil, nil, host)
	bump()
	reactive.FlushSync()

	assert.Equal(t, `<div>1</div>`, host.String())
}

func TestInstanceLifecycleHookOrder(t *testing.T) {
	d, host := newTestDispatcher()
	var events []string

	widget := func(props vdom.Props) vdom.Component {
		OnMounted(func() { events = append(events, "mounted") })
		OnUnmounted(func() { events = append(events, "unmounted") })
		return vdom.Func(func() *vdom.VNode {
			return vdom.CreateVNode("div", vdom.Props{}, nil)
		})
	}

	n := vdom.CreateVNode(vdom.StatefulType(widget), vdom.Props{}, nil)
	d.Mount(n, nil, nil, host)
	assert.Equal(t, []string{"mounted"}, events)

	d.Unmount(n, host)
	assert.Equal(t, []string{"mounted", "unmounted"}, events)
}

func TestProvideInjectWalksAncestors(t *testing.T) {
	d, host := newTestDispatcher()
	var childResult any

	child := func(props vdom.Props) vdom.Component {
		return vdom.Func(func() *vdom.VNode {
			childResult = Inject("theme", "light")
			return vdom.CreateVNode("span", vdom.Props{}, nil)
		})
	}
	parent := func(props vdom.Props) vdom.Component {
		Provide("theme", "dark")
		return vdom.Func(func() *vdom.VNode {
			return vdom.CreateVNode(vdom.StatefulType(child), vdom.Props{}, nil)
		})
	}

	n := vdom.CreateVNode(vdom.StatefulType(parent), vdom.Props{}, nil)
	d.Mount(n, nil, nil, host)

	assert.Equal(t, "dark", childResult)
}

func TestInjectDefaultWhenNoProvider(t *testing.T) {
	d, host := newTestDispatcher()
	var result any

	widget := func(props vdom.Props) vdom.Component {
		return vdom.Func(func() *vdom.VNode {
			result = Inject("theme", "light")
			return vdom.CreateVNode("span", vdom.Props{}, nil)
		})
	}
	n := vdom.CreateVNode(vdom.StatefulType(widget), vdom.Props{}, nil)
	d.Mount(n, nil, nil, host)

	assert.Equal(t, "light", result)
}

func TestErrorBubblesToAncestorOnErrorHook(t *testing.T) {
	d, host := newTestDispatcher()

	child := func(props vdom.Props) vdom.Component {
		return vdom.Func(func() *vdom.VNode {
			panic(fmt.Errorf("boom"))
		})
	}
	var captured error
	parent := func(props vdom.Props) vdom.Component {
		OnErrorCaptured(func(err error) (ErrorHookResult, bool) {
			captured = err
			return ErrorHookResult{Handled: true}, true
		})
		return vdom.Func(func() *vdom.VNode {
			return vdom.CreateVNode(vdom.StatefulType(child), vdom.Props{}, nil)
		})
	}

	n := vdom.CreateVNode(vdom.StatefulType(parent), vdom.Props{}, nil)
	d.Mount(n, nil, nil, host)

	assert.Error(t, captured)
	assert.Contains(t, captured.Error(), "boom")
}

func TestPropsDefaultsAndIterationOnlyOwnKeys(t *testing.T) {
	p := NewProps(map[string]any{"label": "hi"}, map[string]any{"label": "default", "size": "md"})

	assert.Equal(t, "hi", p.Get("label"))
	assert.Equal(t, "md", p.Get("size"))
	assert.True(t, p.Has("label"))
	assert.False(t, p.Has("size"))
	assert.Equal(t, []string{"label"}, p.Keys())
}

func TestSuspenseCounterTracksPendingInit(t *testing.T) {
	d, host := newTestDispatcher()

	widget := func(props vdom.Props) vdom.Component {
		ProvideSuspense()
		return vdom.Func(func() *vdom.VNode {
			return vdom.CreateVNode("div", vdom.Props{}, nil)
		})
	}
	n := vdom.CreateVNode(vdom.StatefulType(widget), vdom.Props{}, nil)
	d.Mount(n, nil, nil, host)

	inst := instances[n]
	assert.NotNil(t, inst)
	inst.IncSuspense()
	assert.True(t, inst.Pending())
	inst.DecSuspense()
	assert.False(t, inst.Pending())
}

func TestRefAttachesOnMountAndDetachesOnUnmount(t *testing.T) {
	d, host := newTestDispatcher()
	nodeRef := NewRef[driver.Node](nil)

	widget := func(props vdom.Props) vdom.Component {
		BindRef("box", nodeRef)
		return vdom.Func(func() *vdom.VNode {
			return vdom.CreateVNode("div", vdom.Props{"ref": "box"}, nil)
		})
	}
	n := vdom.CreateVNode(vdom.StatefulType(widget), vdom.Props{}, nil)
	d.Mount(n, nil, nil, host)

	assert.True(t, nodeRef.IsSet())
	assert.NotNil(t, nodeRef.Current())

	d.Unmount(n, host)
	assert.False(t, nodeRef.IsSet())
}
