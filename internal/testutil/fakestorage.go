// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"sync"
)

// FakeStorage is an in-memory implementation of service.Storage for testing.
type FakeStorage struct {
	mu     sync.RWMutex
	values map[string]string
	sets   int

	// Error injection for testing
	GetErr error
	SetErr error
}

// NewFakeStorage creates an empty FakeStorage.
func NewFakeStorage() *FakeStorage {
	return &FakeStorage{values: make(map[string]string)}
}

// Put stores a raw value without counting it as a write.
func (f *FakeStorage) Put(key, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[key] = value
}

// Value returns the raw value stored under key.
func (f *FakeStorage) Value(key string) (string, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	v, ok := f.values[key]
	return v, ok
}

// Sets returns the number of successful Set calls.
func (f *FakeStorage) Sets() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.sets
}

// Get implements service.Storage.
func (f *FakeStorage) Get(ctx context.Context, key string) (string, bool, error) {
	if f.GetErr != nil {
		return "", false, f.GetErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	v, ok := f.values[key]
	return v, ok, nil
}

// Set implements service.Storage.
func (f *FakeStorage) Set(ctx context.Context, key, value string) error {
	if f.SetErr != nil {
		return f.SetErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[key] = value
	f.sets++
	return nil
}
