// Package fastview implements a small builder pattern for server-rendered,
// incrementally-updated views: given an input stream of data, convert it to
// a view-model, and multiplex that view-model to one or more components
// that each render their own slice of the page and push back only the
// element-level diffs a client needs to apply.
package fastview

import "html/template"

// EleUpdate names an element and the operations to apply to it.
type EleUpdate struct {
	// EleId is the id by which a client locates the element.
	EleId string
	// Ops are attribute/content mutations. Op.Key "textContent" is reserved
	// for setting an element's text; any other key sets that attribute.
	Ops []Op
}

// Op is a single attribute-or-content mutation.
type Op struct {
	Key   string
	Value string
}

// ViewComponent is one renderable, independently-updating piece of a page.
type ViewComponent interface {
	// Updates returns the channel of ele-update batches this component
	// emits as its underlying view-model changes.
	Updates() <-chan []EleUpdate
	// Parse adds this component's template, under its own name, to parent
	// and returns that name so the caller can reference it.
	Parse(parent *template.Template) (name string, err error)
}
