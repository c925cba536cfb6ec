package app

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vitarx-lib/core-sub005/pkg/driver"
	"github.com/vitarx-lib/core-sub005/pkg/reactive"
	"github.com/vitarx-lib/core-sub005/pkg/vdom"
)

// counter builds the canonical "click to increment" widget: a signal
// held in its own scope, rendered into a div, with the bump callback
// stashed out so the test can simulate a click without a real DOM.
func counter(bump *func()) func() *vdom.VNode {
	return func() *vdom.VNode {
		return CreateVNode(vdom.StatefulType(func(props vdom.Props) vdom.Component {
			count := Signal(0)
			*bump = func() { count.Set(count.Peek() + 1) }
			return vdom.Func(func() *vdom.VNode {
				return CreateVNode("div", vdom.Props{}, []any{fmt.Sprintf("count: %d", count.Get())})
			})
		}), vdom.Props{}, nil)
	}
}

func TestAppMountAndSignalUpdateRerendersHost(t *testing.T) {
	host := driver.NewFakeHost()
	var bump func()

	a := CreateApp(counter(&bump))
	a.Mount(host, nil)

	assert.Equal(t, `<div>count: 0</div>`, host.String())

	bump()
	FlushSync()

	assert.Equal(t, `<div>count: 1</div>`, host.String())
}

func TestAppProvideReachesNestedInject(t *testing.T) {
	host := driver.NewFakeHost()
	var seen any

	child := func(props vdom.Props) vdom.Component {
		return vdom.Func(func() *vdom.VNode {
			seen = Inject("theme", "light")
			return CreateVNode("span", vdom.Props{}, nil)
		})
	}
	root := func() *vdom.VNode {
		return CreateVNode(vdom.StatefulType(child), vdom.Props{}, nil)
	}

	a := CreateApp(root).Provide("theme", "dark")
	a.Mount(host, nil)

	assert.Equal(t, "dark", seen)
}

func TestAppOnErrorReceivesUncaughtRenderPanic(t *testing.T) {
	host := driver.NewFakeHost()
	var reported error

	root := func() *vdom.VNode {
		return CreateVNode(vdom.StatefulType(func(props vdom.Props) vdom.Component {
			return vdom.Func(func() *vdom.VNode {
				panic(fmt.Errorf("widget exploded"))
			})
		}), vdom.Props{}, nil)
	}

	a := CreateApp(root).OnError(func(err error) { reported = err })
	a.Mount(host, nil)

	assert.Error(t, reported)
	assert.Contains(t, reported.Error(), "widget exploded")
}

func TestAppUnmountTearsDownHost(t *testing.T) {
	host := driver.NewFakeHost()
	root := func() *vdom.VNode {
		return CreateVNode("div", vdom.Props{}, []any{"hi"})
	}

	a := CreateApp(root)
	a.Mount(host, nil)
	assert.Equal(t, `<div>hi</div>`, host.String())

	a.Unmount()
	assert.Equal(t, ``, host.String())
}

func TestScopeHelperIsolatesReads(t *testing.T) {
	count := reactive.NewSignal(0)
	var ran int

	Scope(func() {
		Effect(func() reactive.Cleanup {
			_ = count.Get()
			ran++
			return nil
		})
	})

	count.Set(1)
	reactive.FlushSync()

	assert.Equal(t, 2, ran)
}
