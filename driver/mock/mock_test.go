/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package mock

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/suparena/mapstore/storagemodels"
)

func native(key string) *storagemodels.NativeEntity {
	return &storagemodels.NativeEntity{
		Key: key,
		Item: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: key},
		},
	}
}

func TestBucketPutGet(t *testing.T) {
	ctx := context.Background()
	b := New()

	if err := b.Put(ctx, native("k1")); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, err := b.Get(ctx, "k1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got == nil || got.Key != "k1" {
		t.Fatalf("Expected k1, got %+v", got)
	}

	absent, err := b.Get(ctx, "missing")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if absent != nil {
		t.Error("Expected nil for absent key")
	}
}

func TestBucketGetAllOrder(t *testing.T) {
	ctx := context.Background()
	b := New()
	for _, k := range []string{"a", "b", "c"} {
		if err := b.Put(ctx, native(k)); err != nil {
			t.Fatalf("Put failed: %v", err)
		}
	}

	out, err := b.GetAll(ctx, []string{"c", "missing", "a"})
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	if len(out) != 2 || out[0].Key != "c" || out[1].Key != "a" {
		t.Errorf("Expected [c a] in request order, got %v", out)
	}
}

func TestBucketTTLExpiry(t *testing.T) {
	ctx := context.Background()
	b := New()

	if err := b.PutWithTTL(ctx, native("tmp"), -time.Second); err != nil {
		t.Fatalf("PutWithTTL failed: %v", err)
	}
	got, err := b.Get(ctx, "tmp")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != nil {
		t.Error("Expected expired value to read as absent")
	}
}

func TestBucketErrorInjection(t *testing.T) {
	ctx := context.Background()
	boom := fmt.Errorf("boom")

	t.Run("PutError", func(t *testing.T) {
		b := New().WithPutError(boom)
		if err := b.Put(ctx, native("k")); err != boom {
			t.Errorf("Expected injected error, got %v", err)
		}
	})

	t.Run("PutErrorForKey", func(t *testing.T) {
		b := New().WithPutErrorForKey("bad", boom)
		if err := b.Put(ctx, native("good")); err != nil {
			t.Errorf("Unexpected error for good key: %v", err)
		}
		if err := b.Put(ctx, native("bad")); err != boom {
			t.Errorf("Expected injected error for bad key, got %v", err)
		}
	})
}

func TestBucketCallCounting(t *testing.T) {
	ctx := context.Background()
	b := New()

	_ = b.Put(ctx, native("k"))
	_, _ = b.Get(ctx, "k")
	_, _ = b.Get(ctx, "k")

	if b.Calls("Put") != 1 {
		t.Errorf("Expected 1 Put call, got %d", b.Calls("Put"))
	}
	if b.Calls("Get") != 2 {
		t.Errorf("Expected 2 Get calls, got %d", b.Calls("Get"))
	}
	if b.TotalCalls() != 3 {
		t.Errorf("Expected 3 total calls, got %d", b.TotalCalls())
	}

	b.Clear()
	if b.TotalCalls() != 0 || b.Count() != 0 {
		t.Error("Clear should reset data and counters")
	}
}

func TestBucketExecuteQueryDefaults(t *testing.T) {
	ctx := context.Background()
	b := New()
	for _, k := range []string{"x", "y"} {
		_ = b.Put(ctx, native(k))
	}

	out, err := b.ExecuteQuery(ctx, &storagemodels.QueryParams{})
	if err != nil {
		t.Fatalf("ExecuteQuery failed: %v", err)
	}
	if len(out) != 2 || out[0].Key != "x" || out[1].Key != "y" {
		t.Errorf("Expected insertion order [x y], got %v", out)
	}
}

// Error injection may race with in-flight operations when a test reconfigures
// the bucket while asynchronous work runs; every injected field read must hold
// the bucket lock.
func TestBucketConcurrentInjection(t *testing.T) {
	ctx := context.Background()
	boom := fmt.Errorf("boom")
	b := New()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		key := fmt.Sprintf("k%d", i)
		wg.Add(3)
		go func() {
			defer wg.Done()
			_ = b.Put(ctx, native(key))
			_ = b.Update(ctx, native(key))
			_ = b.PutWithTTL(ctx, native(key), time.Minute)
		}()
		go func() {
			defer wg.Done()
			_, _ = b.Get(ctx, key)
			_, _ = b.GetAll(ctx, []string{key})
			_, _ = b.ExecuteQuery(ctx, &storagemodels.QueryParams{})
		}()
		go func() {
			defer wg.Done()
			b.WithPutError(boom).WithGetError(boom).WithUpdateError(boom)
			b.WithPutError(nil).WithGetError(nil).WithUpdateError(nil)
			b.WithPutErrorForKey(key, boom)
		}()
	}
	wg.Wait()

	if b.Calls("Put") != 8 {
		t.Errorf("Expected 8 Put calls, got %d", b.Calls("Put"))
	}
}

func TestBucketSyncExec(t *testing.T) {
	b := New().WithSyncExec()
	ran := false
	b.Go(func() { ran = true })
	if !ran {
		t.Error("Expected Go to run inline with WithSyncExec")
	}
}
