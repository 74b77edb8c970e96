// Package realtime provides in-process push fan-out for match streams.
// Services publish a full snapshot of a stream after every mutation, and
// every subscriber of that topic receives it. Delivery is coalescing: a
// subscriber that has not drained its channel sees only the latest
// snapshot, never a backlog.
package realtime

import "sync"

// Topic names are "<kind>:<matchId>". Observers of a match's messages,
// meetups and lifecycle subscribe to separate topics.
const (
	kindMessages = "messages"
	kindMeetups  = "meetups"
	kindMatch    = "match"
)

// MessagesTopic is the topic carrying full ordered message lists for a match.
func MessagesTopic(matchID string) string { return kindMessages + ":" + matchID }

// MeetupsTopic is the topic carrying full meetup lists for a match.
func MeetupsTopic(matchID string) string { return kindMeetups + ":" + matchID }

// MatchTopic is the topic carrying match record updates and close events.
func MatchTopic(matchID string) string { return kindMatch + ":" + matchID }

// SplitTopic returns the kind and match id of a topic.
func SplitTopic(topic string) (kind, matchID string) {
	for i := 0; i < len(topic); i++ {
		if topic[i] == ':' {
			return topic[:i], topic[i+1:]
		}
	}
	return topic, ""
}

// MatchClosed is published on a match topic when the match is unmatched or
// blocked away. Subscribers should drop local state for the match.
type MatchClosed struct {
	MatchID string `json:"matchId"`
}

type subscriber struct {
	ch chan interface{}
}

// Subscription is a live registration on one topic. Receive snapshots from
// C; call Cancel to stop delivery. Cancel is safe to call repeatedly and
// guarantees nothing more is delivered (or left buffered) once it returns.
type Subscription struct {
	C    <-chan interface{}
	once sync.Once
	stop func()
}

// Cancel detaches the subscription and closes C.
func (s *Subscription) Cancel() {
	s.once.Do(s.stop)
}

// Hub routes published snapshots to topic subscribers. An optional
// forwarder mirrors every publish to an external transport (the socket.io
// bridge in production).
type Hub struct {
	mu      sync.Mutex
	subs    map[string]map[int64]*subscriber
	nextID  int64
	forward func(topic string, payload interface{})
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[string]map[int64]*subscriber)}
}

// SetForwarder installs a sink that receives every published snapshot in
// addition to in-process subscribers. Must be called before serving.
func (h *Hub) SetForwarder(f func(topic string, payload interface{})) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.forward = f
}

// Subscribe registers an observer on topic.
func (h *Hub) Subscribe(topic string) *Subscription {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.subs[topic]; !ok {
		h.subs[topic] = make(map[int64]*subscriber)
	}
	h.nextID++
	id := h.nextID
	sub := &subscriber{ch: make(chan interface{}, 1)}
	h.subs[topic][id] = sub

	return &Subscription{
		C: sub.ch,
		stop: func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			if conns, ok := h.subs[topic]; ok {
				delete(conns, id)
				if len(conns) == 0 {
					delete(h.subs, topic)
				}
			}
			// Drop any undelivered snapshot so nothing arrives after
			// cancellation, then close to unblock receivers.
			select {
			case <-sub.ch:
			default:
			}
			close(sub.ch)
		},
	}
}

// Publish delivers payload to every subscriber of topic, replacing any
// snapshot a slow subscriber has not consumed yet.
func (h *Hub) Publish(topic string, payload interface{}) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, sub := range h.subs[topic] {
		select {
		case <-sub.ch:
		default:
		}
		sub.ch <- payload
	}
	if h.forward != nil {
		h.forward(topic, payload)
	}
}
