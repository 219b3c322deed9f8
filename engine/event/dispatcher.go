package event

// Dispatcher routes one event to the handlers whose kind matches it.
// It lives for a single OnEvent call.
type Dispatcher struct {
	ev Event
}

func NewDispatcher(e Event) *Dispatcher { return &Dispatcher{ev: e} }

// Event returns the event being dispatched.
func (d *Dispatcher) Event() Event { return d.ev }

// Dispatch calls fn when the event's concrete kind is T and nobody has handled
// it yet. A true result from fn marks the event handled. The return value
// reports whether fn ran.
//
//	d := event.NewDispatcher(e)
//	event.Dispatch(d, a.onWindowClose)
//	event.Dispatch(d, a.onWindowResize)
func Dispatch[T Event](d *Dispatcher, fn func(T) bool) bool {
	if d.ev.Handled() {
		return false
	}
	e, ok := d.ev.(T)
	if !ok {
		return false
	}
	if fn(e) {
		d.ev.MarkHandled()
	}
	return true
}
