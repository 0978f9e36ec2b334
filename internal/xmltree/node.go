// Package xmltree builds ordered XML element trees and streams them out in
// bounded chunks. Unlike encoding/xml it preserves attribute order exactly
// as produced, which keeps generated documents byte-stable across runs.
package xmltree

// Attr is a single name="value" attribute. Order of attributes on an
// element is the order they were set.
type Attr struct {
	Name  string
	Value string
}

// Element is one node of the document tree. An element carries either
// child elements, plain text, or a CDATA block; the zero value renders as
// a self-closing tag.
type Element struct {
	Name     string
	Attrs    []Attr
	Text     string
	CDATA    string
	Children []*Element
}

// New returns an element with the given tag name.
func New(name string) *Element {
	return &Element{Name: name}
}

// SetAttr appends an attribute and returns the element for chaining.
// Setting the same name twice appends twice; callers control ordering.
func (e *Element) SetAttr(name, value string) *Element {
	e.Attrs = append(e.Attrs, Attr{Name: name, Value: value})
	return e
}

// Child appends a new empty child element and returns it.
func (e *Element) Child(name string) *Element {
	c := New(name)
	e.Children = append(e.Children, c)
	return c
}

// TextChild appends a child element containing only text and returns it.
func (e *Element) TextChild(name, text string) *Element {
	c := e.Child(name)
	c.Text = text
	return c
}

// Append attaches an existing subtree as the last child.
func (e *Element) Append(child *Element) *Element {
	e.Children = append(e.Children, child)
	return e
}

// Attr returns the value of the first attribute with the given name.
func (e *Element) Attr(name string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}
