package core

import (
	"iter"
	"slices"
)

// LayerStack keeps regular layers in front of overlays:
//
//	[ layer0 layer1 ... | overlay0 overlay1 ... ]
//	                    ^ insert
//
// Updates walk it front to back, events back to front so the topmost
// overlay sees them first.
type LayerStack struct {
	list   []Layer
	insert int
}

func NewLayerStack() *LayerStack { return &LayerStack{} }

// PushLayer inserts l after the last regular layer and attaches it.
func (ls *LayerStack) PushLayer(l Layer) {
	ls.list = slices.Insert(ls.list, ls.insert, l)
	ls.insert++
	l.OnAttach()
}

// PushOverlay appends l on top of everything and attaches it.
func (ls *LayerStack) PushOverlay(l Layer) {
	ls.list = append(ls.list, l)
	l.OnAttach()
}

// PopLayer detaches and removes a regular layer. It reports false, changing
// nothing, when l is not a regular layer of this stack.
func (ls *LayerStack) PopLayer(l Layer) bool {
	i := slices.Index(ls.list[:ls.insert], l)
	if i < 0 {
		return false
	}
	ls.list = slices.Delete(ls.list, i, i+1)
	ls.insert--
	l.OnDetach()
	return true
}

// PopOverlay detaches and removes an overlay. It reports false when l is not
// an overlay of this stack.
func (ls *LayerStack) PopOverlay(l Layer) bool {
	i := slices.Index(ls.list[ls.insert:], l)
	if i < 0 {
		return false
	}
	i += ls.insert
	ls.list = slices.Delete(ls.list, i, i+1)
	l.OnDetach()
	return true
}

func (ls *LayerStack) Len() int { return len(ls.list) }

// Overlays returns how many of the layers are overlays.
func (ls *LayerStack) Overlays() int { return len(ls.list) - ls.insert }

// All yields regular layers then overlays, each in insertion order. It walks
// a snapshot, so layers pushed while iterating show up on the next traversal,
// while a layer popped mid-pass is skipped from then on.
func (ls *LayerStack) All() iter.Seq[Layer] {
	snap := slices.Clone(ls.list)
	return func(yield func(Layer) bool) {
		for _, l := range snap {
			if ls.has(l) && !yield(l) {
				return
			}
		}
	}
}

// Backward yields All in reverse.
func (ls *LayerStack) Backward() iter.Seq[Layer] {
	snap := slices.Clone(ls.list)
	return func(yield func(Layer) bool) {
		for i := len(snap) - 1; i >= 0; i-- {
			if ls.has(snap[i]) && !yield(snap[i]) {
				return
			}
		}
	}
}

func (ls *LayerStack) has(l Layer) bool { return slices.Contains(ls.list, l) }

// Close detaches every layer once, topmost first, and empties the stack.
func (ls *LayerStack) Close() {
	list := ls.list
	ls.list, ls.insert = nil, 0
	for i := len(list) - 1; i >= 0; i-- {
		list[i].OnDetach()
	}
}
