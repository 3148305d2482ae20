// Package pointer implements outside-press dismissal for transient UI
// regions: given a region descriptor and a stream of pointer presses, a
// subscription invokes its callback when a press lands outside the region.
// Subscriptions must be closed when the owning element closes; Source.Len
// exists so tests can prove nothing leaked.
package pointer

// Region is a rectangle in screen cells.
type Region struct {
	X, Y          int
	Width, Height int
}

// Contains reports whether the cell (x, y) lies inside the region.
func (r Region) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Source fans pointer presses out to active subscriptions.
type Source struct {
	subs map[int]*Subscription
	next int
}

func NewSource() *Source {
	return &Source{subs: make(map[int]*Subscription)}
}

// Subscribe registers an outside-press callback for a region. The callback
// fires on every press not contained in the region, and never on presses
// inside it.
func (s *Source) Subscribe(region Region, onOutside func()) *Subscription {
	s.next++
	sub := &Subscription{src: s, id: s.next, region: region, onOutside: onOutside}
	s.subs[sub.id] = sub
	return sub
}

// Press delivers a pointer press to all active subscriptions.
func (s *Source) Press(x, y int) {
	for _, sub := range s.subs {
		if !sub.region.Contains(x, y) && sub.onOutside != nil {
			sub.onOutside()
		}
	}
}

// Len returns the number of active subscriptions.
func (s *Source) Len() int { return len(s.subs) }

type Subscription struct {
	src       *Source
	id        int
	region    Region
	onOutside func()
}

// SetRegion moves the watched region, e.g. after a relayout.
func (sub *Subscription) SetRegion(r Region) { sub.region = r }

// Close deregisters the subscription. Safe to call more than once.
func (sub *Subscription) Close() {
	if sub.src != nil {
		delete(sub.src.subs, sub.id)
		sub.src = nil
	}
}
