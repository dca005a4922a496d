package vdom

// TextTag is the tag of a bare text node.
const TextTag = "#text"

// VNode represents a virtual DOM node.
type VNode struct {
	Tag        string         // The HTML tag name
	Attributes map[string]any // The attributes of the node
	Children   []*VNode       // The child nodes
	Content    string         // The content of the node
	OnClick    func()         // Optional click event handler

	// callbacks holds the platform handles (js.Func in the browser) created
	// for this node so they can be released when the node leaves the DOM.
	callbacks []any
}

// NewVNode creates a new VNode.
func NewVNode(tag string, attributes map[string]any, children []*VNode, content string) *VNode {
	var onClick func()
	if attributes != nil {
		if v, ok := attributes["onClick"]; ok {
			if f, ok := v.(func()); ok {
				onClick = f
				// Remove from attributes so it doesn't get rendered as an HTML attribute
				delete(attributes, "onClick")
			}
		}
	}
	return &VNode{
		Tag:        tag,
		Attributes: attributes,
		Children:   children,
		Content:    content,
		OnClick:    onClick,
	}
}

// Click invokes the node's click handler, if any. It reports whether a
// handler was present.
func (v *VNode) Click() bool {
	if v == nil || v.OnClick == nil {
		return false
	}
	v.OnClick()
	return true
}

// AddEventCallback records a platform callback handle owned by this node.
func (v *VNode) AddEventCallback(cb any) {
	v.callbacks = append(v.callbacks, cb)
}

// GetEventCallbacks returns the platform callback handles owned by this node.
func (v *VNode) GetEventCallbacks() []any {
	return v.callbacks
}

// ClearEventCallbacks forgets all callback handles.
func (v *VNode) ClearEventCallbacks() {
	v.callbacks = nil
}

// Text creates a bare text node.
func Text(content string) *VNode {
	return NewVNode(TextTag, nil, nil, content)
}

// Paragraph creates a <p> VNode with the given text as its child and allows passing attributes.
func Paragraph(text string, attrs map[string]any) *VNode {
	return NewVNode("p", attrs, nil, text)
}

// Heading creates an <h1>..<h6> VNode. Levels outside 1..6 are clamped.
func Heading(level int, text string, attrs map[string]any) *VNode {
	if level < 1 {
		level = 1
	}
	if level > 6 {
		level = 6
	}
	return NewVNode("h"+string(rune('0'+level)), attrs, nil, text)
}

// Div creates a <div> VNode with the given children and allows passing attributes.
func Div(attrs map[string]any, children ...*VNode) *VNode {
	return NewVNode("div", attrs, children, "")
}

// Button creates a <button> VNode with the given children and allows passing attributes.
func Button(content string, attrs map[string]any, children ...*VNode) *VNode {
	return NewVNode("button", attrs, children, content)
}
