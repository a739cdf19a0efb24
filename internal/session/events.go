package session

import "sync"

type EventKind string

const (
	EventSession EventKind = "session"
	EventCart    EventKind = "cart"
)

// Event tells subscribers which part of the store changed and its current shape.
type Event struct {
	Kind          EventKind `json:"kind"`
	Authenticated bool      `json:"authenticated"`
	ItemCount     int       `json:"itemCount"`
}

// Subscribe returns a channel of store changes and a func that ends the subscription.
// Slow subscribers miss intermediate events but always receive the newest one.
func (s *Store) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, 8)
	s.subsMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch
	s.subsMu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.subsMu.Lock()
			delete(s.subs, id)
			s.subsMu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

// publishLocked snapshots the store and fans the event out. Callers hold s.mu for writing,
// so events leave in mutation order and describe the state that mutation produced.
func (s *Store) publishLocked(kind EventKind) {
	ev := Event{
		Kind:          kind,
		Authenticated: s.identity != nil,
		ItemCount:     s.itemCountLocked(),
	}
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	for _, ch := range s.subs {
		select {
		case ch <- ev:
		default:
			// full: drop the oldest pending event so the newest one lands
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- ev:
			default:
			}
		}
	}
}
