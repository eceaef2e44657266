// Package event implements a small synchronous publish/subscribe registry.
package event

import "sync"

// Topic multicasts values of one event kind to every subscribed callback.
//
// The zero value is ready to use. Subscribing and unsubscribing is safe from
// any goroutine, including from within a callback during Publish.
type Topic[T any] struct {
	mu     sync.Mutex
	nextID uint64
	subs   []subscriber[T]
}

type subscriber[T any] struct {
	id uint64
	fn func(T)
}

// Subscription is the capability to remove a callback from its Topic.
type Subscription struct {
	once   sync.Once
	cancel func()
}

// Unsubscribe removes the callback. Calling it more than once is a no-op.
func (sub *Subscription) Unsubscribe() {
	if sub == nil {
		return
	}
	sub.once.Do(sub.cancel)
}

// Subscribe registers fn to be called, in subscription order, on every Publish.
func (topic *Topic[T]) Subscribe(fn func(T)) *Subscription {
	topic.mu.Lock()
	defer topic.mu.Unlock()

	topic.nextID++
	id := topic.nextID
	topic.subs = append(topic.subs, subscriber[T]{id: id, fn: fn})

	return &Subscription{cancel: func() { topic.remove(id) }}
}

func (topic *Topic[T]) remove(id uint64) {
	topic.mu.Lock()
	defer topic.mu.Unlock()

	for i, sub := range topic.subs {
		if sub.id == id {
			// Copy rather than splice in place, so snapshots taken by an
			// in-flight Publish are left untouched
			subs := make([]subscriber[T], 0, len(topic.subs)-1)
			subs = append(subs, topic.subs[:i]...)
			topic.subs = append(subs, topic.subs[i+1:]...)
			return
		}
	}
}

// Publish calls every callback subscribed at the moment of the call.
func (topic *Topic[T]) Publish(value T) {
	topic.mu.Lock()
	subs := topic.subs
	topic.mu.Unlock()

	for _, sub := range subs {
		sub.fn(value)
	}
}

// Len returns the number of current subscribers.
func (topic *Topic[T]) Len() int {
	topic.mu.Lock()
	defer topic.mu.Unlock()
	return len(topic.subs)
}
