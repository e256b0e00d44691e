package server

import (
	"sync"

	"github.com/leapstack-labs/oxoff/pkg/resolve"
)

// Snapshot is the latest resolution of the watched config file.
type Snapshot struct {
	Revision  uint64             `json:"revision"`
	Path      string             `json:"path"`
	Fragments []resolve.Fragment `json:"fragments"`
	Error     string             `json:"error,omitempty"`
}

// Notifier keeps the latest Snapshot and pings subscribers when it changes.
// Subscribers receive an empty struct and should re-read Latest.
type Notifier struct {
	mu        sync.RWMutex
	listeners map[chan struct{}]struct{}
	latest    Snapshot
}

// NewNotifier creates an empty Notifier.
func NewNotifier() *Notifier {
	return &Notifier{
		listeners: make(map[chan struct{}]struct{}),
	}
}

// Subscribe returns a channel that receives a ping per published snapshot.
// The caller must call Unsubscribe when done.
func (n *Notifier) Subscribe() chan struct{} {
	ch := make(chan struct{}, 1)
	n.mu.Lock()
	n.listeners[ch] = struct{}{}
	n.mu.Unlock()
	return ch
}

// Unsubscribe removes a listener channel and closes it.
func (n *Notifier) Unsubscribe(ch chan struct{}) {
	n.mu.Lock()
	delete(n.listeners, ch)
	n.mu.Unlock()
	close(ch)
}

// Publish stores s with the next revision number and pings every listener.
// A listener whose channel is full already has a pending ping and is skipped.
func (n *Notifier) Publish(s Snapshot) Snapshot {
	n.mu.Lock()
	s.Revision = n.latest.Revision + 1
	n.latest = s
	n.mu.Unlock()

	n.mu.RLock()
	defer n.mu.RUnlock()
	for ch := range n.listeners {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
	return s
}

// Latest returns the most recently published snapshot.
func (n *Notifier) Latest() Snapshot {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.latest
}
