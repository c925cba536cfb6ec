package vdom

import "strings"

// VKind is the node type discriminator: the nine kinds spec.md §3/§4.7
// requires (element, void element, text, comment, fragment, stateful
// and stateless widget, dynamic switch, keyed list), plus KindRaw for
// raw HTML, ten in all.
type VKind uint8

const (
	KindElement     VKind = iota // regular-element: <div>, <button>, etc.
	KindVoidElement              // void-element: <br>, <img>, ... (no children)
	KindText                     // Plain text node
	KindComment                  // Comment node (v-if=false placeholder, directive markers)
	KindFragment                 // Grouping without wrapper
	KindComponent                // stateful-widget: owns a ComponentInstance
	KindStateless                // stateless-widget: pure render function, no instance
	KindDynamic                  // dynamic switch: single child classified view/text/empty
	KindList                     // list: keyed repetition, diffed via LIS
	KindRaw                      // Raw HTML (dangerous)
)

// String returns the string representation of the VKind.
func (k VKind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindVoidElement:
		return "VoidElement"
	case KindText:
		return "Text"
	case KindComment:
		return "Comment"
	case KindFragment:
		return "Fragment"
	case KindComponent:
		return "Component"
	case KindStateless:
		return "Stateless"
	case KindDynamic:
		return "Dynamic"
	case KindList:
		return "List"
	case KindRaw:
		return "Raw"
	default:
		return "Unknown"
	}
}

// DirectiveBinding is a directive attached to a vnode at construction,
// per spec.md §3's Directive binding type.
type DirectiveBinding struct {
	Directive Directive
	Value     any
	OldValue  any
	Arg       string
	Modifiers map[string]bool
}

// Directive exposes the lifecycle callbacks a binding may implement.
// Every callback is optional; a directive implements only the stages it
// cares about by providing non-nil funcs.
type Directive struct {
	Name          string
	Created       func(el *VNode, b *DirectiveBinding)
	BeforeMount   func(el *VNode, b *DirectiveBinding)
	Mounted       func(el *VNode, b *DirectiveBinding)
	BeforeUpdate  func(el *VNode, b *DirectiveBinding)
	Updated       func(el *VNode, b *DirectiveBinding)
	BeforeUnmount func(el *VNode, b *DirectiveBinding)
	Unmounted     func(el *VNode, b *DirectiveBinding)
	GetSSRProps   func(b *DirectiveBinding) Props
}

// VNode is the virtual DOM node.
type VNode struct {
	Kind     VKind      // Node type
	Tag      string     // Element tag name (e.g., "div"), or widget name
	Props    Props      // Attributes and event handlers, normalized
	Children []*VNode   // Child nodes
	Key      string     // Reconciliation key
	Text     string     // For KindText, KindComment and KindRaw
	Comp     Component  // For KindStateless; a KindComponent's built Component is kept on its instance, not here
	CompFactory StatefulType // For KindComponent: constructs the Component once, inside the new instance's context
	HID      string     // Hydration ID; nothing in this module assigns it

	// Ref, when non-empty, names the public-instance/host-element slot
	// that mounting should populate (the reserved `ref` prop).
	Ref string

	// TeleportTarget holds the `v-parent` reserved prop value: a host
	// container the driver should mount this subtree into instead of
	// its structural parent.
	TeleportTarget any

	// Directives are the custom directive bindings attached to this
	// vnode, applied by the driver dispatcher (C11) at the documented
	// lifecycle points. CreateVNode does not fill this field.
	Directives []*DirectiveBinding

	// Classifier is set on KindDynamic nodes: "view", "text", or "empty",
	// per spec.md §4.8's dynamic-switch update rule.
	Classifier string

	// Static marks a `v-static` subtree: the reconciler treats it as
	// immutable and skips patching it once mounted.
	Static bool

	// ShowValue holds the `v-show` reserved-prop value (nil if absent):
	// unlike v-if, a false v-show keeps the element mounted and toggles
	// host visibility instead of unmounting.
	ShowValue any
	HasShow   bool
}

// Props holds attributes and event handlers.
type Props map[string]any

// IsInteractive returns true if this node has event handlers and needs a HID.
func (v *VNode) IsInteractive() bool {
	if v == nil || (v.Kind != KindElement && v.Kind != KindVoidElement) {
		return false
	}
	for key := range v.Props {
		if strings.HasPrefix(key, "on") {
			return true
		}
	}
	return false
}

// Attr represents a single attribute.
type Attr struct {
	Key   string
	Value any
}

// IsEmpty returns true if this is an empty/nil attribute.
func (a Attr) IsEmpty() bool {
	return a.Key == ""
}

// EventHandler represents an event handler.
type EventHandler struct {
	Event   string // "onclick", "oninput", etc.
	Handler any    // Function to call
}

// Component is anything that can render to a VNode.
type Component interface {
	Render() *VNode
}

// FuncComponent wraps a render function.
type FuncComponent struct {
	render func() *VNode
}

// Render implements Component.
func (f *FuncComponent) Render() *VNode {
	return f.render()
}

// Func creates a component from a render function.
func Func(render func() *VNode) Component {
	return &FuncComponent{render: render}
}
