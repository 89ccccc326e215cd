// Package databus passes values between pages of a wizard session.
//
// Entries are transient: nothing is persisted, and the usual pattern is a
// single writer that Sets before navigating and a single reader that Takes
// on arrival.
package databus

import (
	"errors"
	"fmt"
	"sync"
)

// ErrWrongType is returned by TakeAs when the stored value has another type.
var ErrWrongType = errors.New("databus: wrong value type")

// Bus is a page-scoped key/value store. The zero value is ready to use.
type Bus struct {
	mu    sync.Mutex
	items map[string]any
}

func New() *Bus {
	return &Bus{items: map[string]any{}}
}

func (b *Bus) Get(key string) (any, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	v, ok := b.items[key]
	return v, ok
}

func (b *Bus) Set(key string, value any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.items == nil {
		b.items = map[string]any{}
	}
	b.items[key] = value
}

func (b *Bus) Del(key string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.items, key)
}

// Take returns the value under key and removes it in the same step.
func (b *Bus) Take(key string) (any, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	v, ok := b.items[key]
	if ok {
		delete(b.items, key)
	}
	return v, ok
}

func (b *Bus) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.items)
}

// TakeAs is Take with a type assertion. A value of the wrong type is left in
// place.
func TakeAs[T any](b *Bus, key string) (T, bool, error) {
	var zero T
	b.mu.Lock()
	defer b.mu.Unlock()
	v, ok := b.items[key]
	if !ok {
		return zero, false, nil
	}
	typed, ok := v.(T)
	if !ok {
		return zero, true, fmt.Errorf("%w: key %q holds %T", ErrWrongType, key, v)
	}
	delete(b.items, key)
	return typed, true, nil
}
