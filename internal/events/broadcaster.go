// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package events is the in-process notification bus of interia.
package events

import (
	"sync"

	"github.com/aplu147/interia/models"
)

// ColorsChanged is published after the color scheme has been persisted.
type ColorsChanged struct {
	Colors   models.ColorSettings
	Username string
}

// Broadcaster delivers every published event of type T to all current
// subscribers. Handlers run synchronously on the publishing goroutine, in
// subscription order.
type Broadcaster[T any] struct {
	mu       sync.RWMutex
	nextID   int
	order    []int
	handlers map[int]func(T)
}

func NewBroadcaster[T any]() *Broadcaster[T] {
	return &Broadcaster[T]{handlers: make(map[int]func(T))}
}

// Subscribe registers fn and returns a function that removes it again.
func (b *Broadcaster[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.handlers[id] = fn
	b.order = append(b.order, id)

	var once sync.Once
	return func() {
		once.Do(func() { b.remove(id) })
	}
}

func (b *Broadcaster[T]) remove(id int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	delete(b.handlers, id)
	for i, v := range b.order {
		if v == id {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
}

// Publish hands ev to every subscriber.
func (b *Broadcaster[T]) Publish(ev T) {
	b.mu.RLock()
	handlers := make([]func(T), 0, len(b.order))
	for _, id := range b.order {
		handlers = append(handlers, b.handlers[id])
	}
	b.mu.RUnlock()

	for _, fn := range handlers {
		fn(ev)
	}
}

// Len returns the number of subscribers.
func (b *Broadcaster[T]) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.order)
}
