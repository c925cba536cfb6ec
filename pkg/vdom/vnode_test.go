package vdom

import "testing"

func TestVKindString(t *testing.T) {
	tests := []struct {
		kind VKind
		want string
	}{
		{KindElement, "Element"},
		{KindVoidElement, "VoidElement"},
		{KindText, "Text"},
		{KindComment, "Comment"},
		{KindFragment, "Fragment"},
		{KindComponent, "Component"},
		{KindStateless, "Stateless"},
		{KindDynamic, "Dynamic"},
		{KindList, "List"},
		{KindRaw, "Raw"},
		{VKind(255), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.want {
				t.Errorf("VKind.String() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVNodeIsInteractive(t *testing.T) {
	tests := []struct {
		name string
		node *VNode
		want bool
	}{
		{
			name: "nil node",
			node: nil,
			want: false,
		},
		{
			name: "text node",
			node: &VNode{Kind: KindText, Text: "hello"},
			want: false,
		},
		{
			name: "element without handlers",
			node: &VNode{Kind: KindElement, Tag: "div", Props: Props{"class": "test"}},
			want: false,
		},
		{
			name: "element with onclick",
			node: &VNode{Kind: KindElement, Tag: "button", Props: Props{"onclick": func() {}}},
			want: true,
		},
		{
			name: "void element with oninput",
			node: &VNode{Kind: KindVoidElement, Tag: "input", Props: Props{"oninput": func() {}}},
			want: true,
		},
		{
			name: "element with multiple handlers",
			node: &VNode{Kind: KindElement, Tag: "div", Props: Props{
				"onclick":     func() {},
				"onmouseover": func() {},
			}},
			want: true,
		},
		{
			name: "element with nil props",
			node: &VNode{Kind: KindElement, Tag: "div"},
			want: false,
		},
		{
			name: "fragment node",
			node: &VNode{Kind: KindFragment},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.node.IsInteractive(); got != tt.want {
				t.Errorf("VNode.IsInteractive() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAttrIsEmpty(t *testing.T) {
	tests := []struct {
		name string
		attr Attr
		want bool
	}{
		{"empty attr", Attr{}, true},
		{"attr with key", Attr{Key: "class", Value: "test"}, false},
		{"attr with empty value", Attr{Key: "disabled", Value: ""}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.attr.IsEmpty(); got != tt.want {
				t.Errorf("Attr.IsEmpty() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFuncComponent(t *testing.T) {
	called := false
	comp := Func(func() *VNode {
		called = true
		return CreateVNode("div", Props{"class": "test"}, nil)
	})

	node := comp.Render()

	if !called {
		t.Error("Func component was not called")
	}

	if node == nil {
		t.Fatal("Render returned nil")
	}

	if node.Kind != KindElement {
		t.Errorf("Kind = %v, want KindElement", node.Kind)
	}

	if node.Tag != "div" {
		t.Errorf("Tag = %v, want div", node.Tag)
	}
}

func TestVNodeDirectiveAndTeleportFields(t *testing.T) {
	binding := &DirectiveBinding{
		Directive: Directive{Name: "focus"},
		Arg:       "immediate",
		Modifiers: map[string]bool{"once": true},
	}
	node := CreateVNode("input", Props{"v-parent": "#modal-root", "v-static": true}, nil)
	node.Directives = []*DirectiveBinding{binding}

	if node.TeleportTarget != "#modal-root" {
		t.Errorf("TeleportTarget = %v, want #modal-root", node.TeleportTarget)
	}
	if !node.Static {
		t.Error("Static = false, want true for v-static node")
	}
	if len(node.Directives) != 1 || node.Directives[0].Arg != "immediate" {
		t.Errorf("Directives not preserved: %+v", node.Directives)
	}
}

func TestVNodeClassifierField(t *testing.T) {
	node := &VNode{Kind: KindDynamic, Classifier: "text"}
	if node.Classifier != "text" {
		t.Errorf("Classifier = %v, want text", node.Classifier)
	}
}

func TestVNodeShowValueField(t *testing.T) {
	node := CreateVNode("div", Props{"v-show": false}, nil)
	if !node.HasShow {
		t.Error("HasShow = false, want true when v-show is present")
	}
	if shown, ok := node.ShowValue.(bool); !ok || shown {
		t.Errorf("ShowValue = %v, want false", node.ShowValue)
	}
}

func TestVNodeRefField(t *testing.T) {
	node := CreateVNode("input", Props{"ref": "emailField"}, nil)
	if node.Ref != "emailField" {
		t.Errorf("Ref = %q, want emailField", node.Ref)
	}
}
