package binding

import "sort"

// Group tracks the bindings of a form by field name.
type Group struct {
	bindings map[string]*Binding
}

// NewGroup creates an empty group.
func NewGroup() *Group {
	return &Group{bindings: make(map[string]*Binding)}
}

// Add registers b, unbinding any previous binding with the same name.
func (g *Group) Add(b *Binding) {
	if old, ok := g.bindings[b.Name()]; ok && old != b {
		old.Unbind()
	}
	g.bindings[b.Name()] = b
}

// Bind creates a binding and adds it to the group.
func (g *Group) Bind(opts Options) (*Binding, error) {
	b, err := Bind(opts)
	if err != nil {
		return nil, err
	}
	g.Add(b)
	return b, nil
}

// Get returns the binding for name.
func (g *Group) Get(name string) (*Binding, bool) {
	b, ok := g.bindings[name]
	return b, ok
}

// Names returns the bound field names in sorted order.
func (g *Group) Names() []string {
	names := make([]string, 0, len(g.bindings))
	for n := range g.bindings {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of bindings.
func (g *Group) Len() int {
	return len(g.bindings)
}

// Values returns the raw value of every field.
func (g *Group) Values() map[string]any {
	out := make(map[string]any, len(g.bindings))
	for n, b := range g.bindings {
		out[n] = b.Value()
	}
	return out
}

// UnbindAll unbinds every binding and empties the group.
func (g *Group) UnbindAll() {
	for n, b := range g.bindings {
		b.Unbind()
		delete(g.bindings, n)
	}
}
