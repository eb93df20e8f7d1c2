package input

// Handler receives dispatched events.
type Handler func(Event)

// ListenerID identifies a registered listener. The zero ID is never issued.
type ListenerID uint64

// EventTarget is something listeners can be attached to: a drawable
// container or the whole window.
type EventTarget interface {
	AddListener(kind Kind, h Handler) ListenerID
	RemoveListener(id ListenerID)
}

type listener struct {
	id   ListenerID
	kind Kind
	h    Handler
}

// Dispatcher is an EventTarget that delivers events to its listeners in
// registration order.
type Dispatcher struct {
	next      ListenerID
	listeners []listener
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

// AddListener registers h for events of kind.
func (d *Dispatcher) AddListener(kind Kind, h Handler) ListenerID {
	d.next++
	d.listeners = append(d.listeners, listener{id: d.next, kind: kind, h: h})
	return d.next
}

// RemoveListener unregisters a listener. Unknown IDs are ignored.
func (d *Dispatcher) RemoveListener(id ListenerID) {
	for i, l := range d.listeners {
		if l.id == id {
			d.listeners = append(d.listeners[:i], d.listeners[i+1:]...)
			return
		}
	}
}

// Dispatch delivers ev to every listener registered for its kind. Listeners
// added or removed during dispatch take effect from the next event.
func (d *Dispatcher) Dispatch(ev Event) {
	snapshot := make([]listener, len(d.listeners))
	copy(snapshot, d.listeners)
	for _, l := range snapshot {
		if l.kind == ev.Kind {
			l.h(ev)
		}
	}
}

// Len returns the number of registered listeners.
func (d *Dispatcher) Len() int {
	return len(d.listeners)
}
