package dom

import (
	"net/url"
	"sync"
)

// EventClick is the only event type dispatched by Document.Click.
const EventClick = "click"

// Location is the current page address, split the way the browser exposes it.
type Location struct {
	Origin   string
	Path     string
	RawQuery string
}

// ParseLocation splits an absolute URL into origin, path and query.
// An empty path is normalised to "/".
func ParseLocation(raw string) (Location, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return Location{}, err
	}
	loc := Location{Path: u.EscapedPath(), RawQuery: u.RawQuery}
	if u.Scheme != "" && u.Host != "" {
		loc.Origin = u.Scheme + "://" + u.Host
	}
	if loc.Path == "" {
		loc.Path = "/"
	}
	return loc, nil
}

// Event is delivered to listeners. Target is the node that was acted on,
// not the node the listener was registered on.
type Event struct {
	Type   string
	Target *Node
}

// Listener handles a dispatched event.
type Listener func(Event)

type registration struct {
	key string
	fn  Listener
}

// Document is a page: its root element, title, location and the listeners
// registered at document level.
type Document struct {
	Root  *Node
	Title string

	mu        sync.RWMutex
	location  Location
	listeners map[string][]registration
}

// NewDocument wraps root as a page at loc.
func NewDocument(root *Node, loc Location) *Document {
	if loc.Path == "" {
		loc.Path = "/"
	}
	return &Document{
		Root:      root,
		location:  loc,
		listeners: make(map[string][]registration),
	}
}

// Location returns the current page location.
func (d *Document) Location() Location {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.location
}

// Navigate changes the current path (and query) while keeping the origin,
// like a client-side history push.
func (d *Document) Navigate(pathAndQuery string) error {
	u, err := url.Parse(pathAndQuery)
	if err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.location.Path = u.EscapedPath()
	if d.location.Path == "" {
		d.location.Path = "/"
	}
	d.location.RawQuery = u.RawQuery
	return nil
}

// AddEventListener registers fn for eventType under key. A key can only be
// registered once per event type; a repeat registration is ignored and
// reported as false.
func (d *Document) AddEventListener(eventType, key string, fn Listener) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, r := range d.listeners[eventType] {
		if r.key == key {
			return false
		}
	}
	d.listeners[eventType] = append(d.listeners[eventType], registration{key: key, fn: fn})
	return true
}

// RemoveEventListener drops the listener registered under key.
func (d *Document) RemoveEventListener(eventType, key string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	regs := d.listeners[eventType]
	for i, r := range regs {
		if r.key == key {
			d.listeners[eventType] = append(regs[:i], regs[i+1:]...)
			return true
		}
	}
	return false
}

// Dispatch delivers ev to every listener for its type, in registration
// order, on the calling goroutine. It returns the number of listeners run.
func (d *Document) Dispatch(ev Event) int {
	d.mu.RLock()
	regs := make([]registration, len(d.listeners[ev.Type]))
	copy(regs, d.listeners[ev.Type])
	d.mu.RUnlock()

	for _, r := range regs {
		r.fn(ev)
	}
	return len(regs)
}

// Click dispatches a click whose target is the given node.
func (d *Document) Click(target *Node) int {
	return d.Dispatch(Event{Type: EventClick, Target: target})
}
