package kvsqlite

import (
	"context"
	"path/filepath"
	"testing"
)

func TestStore_SetGetAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "timemgr.db")
	ctx := context.Background()

	s, err := Open(ctx, path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, ok, err := s.Get(ctx, "tasks"); err != nil || ok {
		t.Fatalf("expected missing key, got ok=%v err=%v", ok, err)
	}
	if err := s.Set(ctx, "tasks", `[{"id":"a"}]`); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Set(ctx, "tasks", `[{"id":"b"}]`); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s, err = Open(ctx, path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer s.Close()

	v, ok, err := s.Get(ctx, "tasks")
	if err != nil || !ok {
		t.Fatalf("expected value, got ok=%v err=%v", ok, err)
	}
	if v != `[{"id":"b"}]` {
		t.Errorf("expected last write to win, got %q", v)
	}
}

func TestStore_EmptyValue(t *testing.T) {
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "timemgr.db"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer s.Close()

	if err := s.Set(context.Background(), "k", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v, ok, err := s.Get(context.Background(), "k")
	if err != nil || !ok || v != "" {
		t.Errorf("expected empty present value, got %q ok=%v err=%v", v, ok, err)
	}
}
