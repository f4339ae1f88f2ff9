package dom

import "strings"

// Attribute is a single name/value pair on an element. Presence-only
// attributes carry an empty value.
type Attribute struct {
	Key string
	Val string
}

// Node is an element in the page tree.
type Node struct {
	Tag      string
	Attrs    []Attribute
	Parent   *Node
	Children []*Node
}

// NewElement creates a detached element with the given attributes.
func NewElement(tag string, attrs ...Attribute) *Node {
	n := &Node{Tag: strings.ToLower(tag)}
	for _, a := range attrs {
		n.SetAttr(a.Key, a.Val)
	}
	return n
}

// Flag builds a presence-only attribute such as data-log.
func Flag(key string) Attribute {
	return Attribute{Key: key}
}

// Attr returns the value of the named attribute and whether it is present.
func (n *Node) Attr(name string) (string, bool) {
	if n == nil {
		return "", false
	}
	name = strings.ToLower(name)
	for _, a := range n.Attrs {
		if a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

// HasAttr reports whether the node carries the named attribute.
func (n *Node) HasAttr(name string) bool {
	_, ok := n.Attr(name)
	return ok
}

// SetAttr sets or replaces an attribute. Names are case-insensitive.
func (n *Node) SetAttr(name, val string) {
	name = strings.ToLower(name)
	for i := range n.Attrs {
		if n.Attrs[i].Key == name {
			n.Attrs[i].Val = val
			return
		}
	}
	n.Attrs = append(n.Attrs, Attribute{Key: name, Val: val})
}

// RemoveAttr deletes the named attribute if present.
func (n *Node) RemoveAttr(name string) {
	name = strings.ToLower(name)
	for i := range n.Attrs {
		if n.Attrs[i].Key == name {
			n.Attrs = append(n.Attrs[:i], n.Attrs[i+1:]...)
			return
		}
	}
}

// AppendChild attaches child as the last child of n, detaching it from any
// previous parent. It returns child for chaining.
func (n *Node) AppendChild(child *Node) *Node {
	if child.Parent != nil {
		child.Parent.removeChild(child)
	}
	child.Parent = n
	n.Children = append(n.Children, child)
	return child
}

func (n *Node) removeChild(child *Node) {
	for i, c := range n.Children {
		if c == child {
			n.Children = append(n.Children[:i], n.Children[i+1:]...)
			break
		}
	}
	child.Parent = nil
}

// Closest walks from n (inclusive) up through its ancestors and returns the
// first node carrying attr, or nil when no node in the chain has it.
func (n *Node) Closest(attr string) *Node {
	for cur := n; cur != nil; cur = cur.Parent {
		if cur.HasAttr(attr) {
			return cur
		}
	}
	return nil
}

// FindByID returns the first descendant (or n itself) whose id matches.
func (n *Node) FindByID(id string) *Node {
	if n == nil {
		return nil
	}
	if v, ok := n.Attr("id"); ok && v == id {
		return n
	}
	for _, c := range n.Children {
		if found := c.FindByID(id); found != nil {
			return found
		}
	}
	return nil
}
