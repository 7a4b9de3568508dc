/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/suparena/mapstore/driver"
	"github.com/suparena/mapstore/driver/mock"
	"github.com/suparena/mapstore/errors"
)

// bareManager hides the mock's optional capabilities behind the plain
// BucketManager interface, simulating a driver without TTL support.
type bareManager struct {
	driver.BucketManager
}

func newTestRepo(t *testing.T, b *mock.Bucket) *KeyValue[wfEntity] {
	t.Helper()
	repo, err := New[wfEntity](b, wfConverter{}, nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return repo
}

func TestPutRoundTrip(t *testing.T) {
	ctx := context.Background()
	b := mock.New()
	repo := newTestRepo(t, b)

	in := wfEntity{ID: "1", Name: "Ada"}
	out, err := repo.Put(ctx, &in)
	if err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if out == nil || *out != in {
		t.Errorf("Round trip law violated: got %+v, want %+v", out, in)
	}
	if b.Calls("Put") != 1 {
		t.Errorf("Expected exactly one driver put, got %d", b.Calls("Put"))
	}
}

func TestPutWithTTL(t *testing.T) {
	ctx := context.Background()

	t.Run("Supported", func(t *testing.T) {
		b := mock.New()
		repo := newTestRepo(t, b)

		out, err := repo.PutWithTTL(ctx, &wfEntity{ID: "1", Name: "Ada"}, time.Hour)
		if err != nil {
			t.Fatalf("PutWithTTL failed: %v", err)
		}
		if out == nil || out.ID != "1" {
			t.Errorf("Unexpected result: %+v", out)
		}
		if b.Calls("PutWithTTL") != 1 {
			t.Errorf("Expected PutWithTTL on driver, got %d calls", b.Calls("PutWithTTL"))
		}
	})

	t.Run("Unsupported", func(t *testing.T) {
		b := mock.New()
		repo, err := New[wfEntity](bareManager{b}, wfConverter{}, nil)
		if err != nil {
			t.Fatalf("New failed: %v", err)
		}

		_, err = repo.PutWithTTL(ctx, &wfEntity{ID: "1"}, time.Hour)
		if !errors.IsUnsupported(err) {
			t.Fatalf("Expected unsupported-operation error, got %v", err)
		}
		if b.TotalCalls() != 0 {
			t.Errorf("Driver must not be touched; saw %d calls", b.TotalCalls())
		}
	})

	t.Run("InvalidTTL", func(t *testing.T) {
		b := mock.New()
		repo := newTestRepo(t, b)
		_, err := repo.PutWithTTL(ctx, &wfEntity{ID: "1"}, 0)
		if !errors.IsNilArgument(err) {
			t.Fatalf("Expected nil-argument error for zero ttl, got %v", err)
		}
		if b.TotalCalls() != 0 {
			t.Errorf("Driver must not be touched; saw %d calls", b.TotalCalls())
		}
	})
}

func TestGet(t *testing.T) {
	ctx := context.Background()
	b := mock.New()
	repo := newTestRepo(t, b)

	stored, err := repo.Put(ctx, &wfEntity{ID: "1", Name: "Ada"})
	if err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	t.Run("Present", func(t *testing.T) {
		got, err := repo.Get(ctx, "WF#1")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if got == nil || *got != *stored {
			t.Errorf("Expected %+v, got %+v", stored, got)
		}
	})

	t.Run("Absent", func(t *testing.T) {
		got, err := repo.Get(ctx, "WF#missing")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if got != nil {
			t.Errorf("Expected empty result for absent key, got %+v", got)
		}
	})

	t.Run("NilConversionIsEmptyNotError", func(t *testing.T) {
		// A stored value that does not convert to a wfEntity.
		foreign := nativeWithoutID("WF#foreign")
		if err := b.Put(ctx, foreign); err != nil {
			t.Fatalf("seed failed: %v", err)
		}
		got, err := repo.Get(ctx, "WF#foreign")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if got != nil {
			t.Errorf("Expected empty result for nil conversion, got %+v", got)
		}
	})

	t.Run("EmptyKey", func(t *testing.T) {
		before := b.TotalCalls()
		_, err := repo.Get(ctx, "")
		if !errors.IsNilArgument(err) {
			t.Fatalf("Expected nil-argument error, got %v", err)
		}
		if b.TotalCalls() != before {
			t.Error("Driver must not be invoked for an empty key")
		}
	})
}

func TestGetAll(t *testing.T) {
	ctx := context.Background()
	b := mock.New()
	repo := newTestRepo(t, b)

	for _, e := range []wfEntity{{ID: "1", Name: "a"}, {ID: "3", Name: "c"}} {
		e := e
		if _, err := repo.Put(ctx, &e); err != nil {
			t.Fatalf("Put failed: %v", err)
		}
	}
	// The middle key holds a value that converts to nil.
	if err := b.Put(ctx, nativeWithoutID("WF#2")); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	got, err := repo.GetAll(ctx, []string{"WF#1", "WF#2", "WF#3"})
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Expected 2 entities after dropping the nil conversion, got %d", len(got))
	}
	if got[0].ID != "1" || got[1].ID != "3" {
		t.Errorf("Expected driver order [1 3], got [%s %s]", got[0].ID, got[1].ID)
	}

	t.Run("NilKeys", func(t *testing.T) {
		before := b.TotalCalls()
		_, err := repo.GetAll(ctx, nil)
		if !errors.IsNilArgument(err) {
			t.Fatalf("Expected nil-argument error, got %v", err)
		}
		if b.TotalCalls() != before {
			t.Error("Driver must not be invoked for nil keys")
		}
	})
}

func TestRemove(t *testing.T) {
	ctx := context.Background()
	b := mock.New()
	repo := newTestRepo(t, b)

	if _, err := repo.Put(ctx, &wfEntity{ID: "1"}); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := repo.Remove(ctx, "WF#1"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if b.Count() != 0 {
		t.Errorf("Expected empty bucket, got %d values", b.Count())
	}

	if err := repo.Remove(ctx, ""); !errors.IsNilArgument(err) {
		t.Errorf("Expected nil-argument error, got %v", err)
	}
	if err := repo.RemoveAll(ctx, nil); !errors.IsNilArgument(err) {
		t.Errorf("Expected nil-argument error, got %v", err)
	}
}

func TestRemoveAll(t *testing.T) {
	ctx := context.Background()
	b := mock.New()
	repo := newTestRepo(t, b)

	for _, id := range []string{"1", "2", "3"} {
		if _, err := repo.Put(ctx, &wfEntity{ID: id}); err != nil {
			t.Fatalf("Put failed: %v", err)
		}
	}
	if err := repo.RemoveAll(ctx, []string{"WF#1", "WF#3"}); err != nil {
		t.Fatalf("RemoveAll failed: %v", err)
	}
	if b.Count() != 1 {
		t.Errorf("Expected 1 remaining value, got %d", b.Count())
	}
}

func TestPutNilEntityTouchesNoDriver(t *testing.T) {
	ctx := context.Background()
	b := mock.New()
	repo := newTestRepo(t, b)

	_, err := repo.Put(ctx, nil)
	if !errors.IsNilArgument(err) {
		t.Fatalf("Expected nil-argument error, got %v", err)
	}
	if b.TotalCalls() != 0 {
		t.Errorf("Driver mock must receive zero invocations, got %d", b.TotalCalls())
	}
}
