package store

import "sync"

// Notifier is a payloadless change broadcast. Each store owns one and fires
// it after every successful mutation; subscribers re-query state themselves.
type Notifier struct {
	mu   sync.Mutex
	next uint64
	subs map[uint64]func()
}

// Subscribe registers fn and returns a function that removes the
// subscription. Callbacks carry no payload and run on the mutating goroutine.
func (n *Notifier) Subscribe(fn func()) (cancel func()) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.subs == nil {
		n.subs = make(map[uint64]func())
	}
	id := n.next
	n.next++
	n.subs[id] = fn
	return func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		delete(n.subs, id)
	}
}

// notify invokes every subscriber. The subscriber list is snapshotted under
// the lock and callbacks run outside it, so a callback may re-query the
// owning store or unsubscribe itself.
func (n *Notifier) notify() {
	n.mu.Lock()
	fns := make([]func(), 0, len(n.subs))
	for _, fn := range n.subs {
		fns = append(fns, fn)
	}
	n.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}
