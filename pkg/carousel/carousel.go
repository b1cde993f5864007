// Package carousel has the index math of rotating lists, like the did-you-know cards
// and the headline ticker. All functions are pure and safe for empty lists.
package carousel

// Next returns the index after i in a ring of n items
func Next(i, n int) int {
	if n <= 0 {
		return 0
	}
	return wrap(i+1, n)
}

// Prev returns the index before i in a ring of n items
func Prev(i, n int) int {
	if n <= 0 {
		return 0
	}
	return wrap(i-1, n)
}

func wrap(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}

// Event is a named update of the state
type Event int

// carousel events
const (
	EventNext Event = iota
	EventPrev
	EventTick // timer rotation, same as EventNext
)

// State is the current position in a list of Len items.
// Updates return a new state and never change the receiver.
type State struct {
	Index int
	Len   int
}

// New makes state for n items positioned at the first one
func New(n int) State {
	return State{Len: max(n, 0)}
}

// Next moves to the following item, wrapping at the end
func (s State) Next() State {
	s.Index = Next(s.Index, s.Len)
	return s
}

// Prev moves to the previous item, wrapping at the start
func (s State) Prev() State {
	s.Index = Prev(s.Index, s.Len)
	return s
}

// Select moves to item i, any integer is wrapped into the list
func (s State) Select(i int) State {
	if s.Len <= 0 {
		s.Index = 0
		return s
	}
	s.Index = wrap(i, s.Len)
	return s
}

// Apply returns state after the event, unknown events leave it as is
func (s State) Apply(e Event) State {
	switch e {
	case EventNext, EventTick:
		return s.Next()
	case EventPrev:
		return s.Prev()
	default:
		return s
	}
}

// Empty returns true if there is nothing to show
func (s State) Empty() bool {
	return s.Len <= 0
}
