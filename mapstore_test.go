/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package mapstore

import (
	"context"
	"fmt"
	"testing"

	"github.com/suparena/mapstore/driver/mock"
	"github.com/suparena/mapstore/registry"
)

// Test types
type TestUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type TestProduct struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

func init() {
	registry.RegisterIndexMap[TestUser](map[string]string{
		"PK": "USER#{ID}",
		"SK": "USER#{ID}",
	})
	registry.RegisterIndexMap[TestProduct](map[string]string{
		"PK": "PRODUCT#{ID}",
		"SK": "PRODUCT#{ID}",
	})
}

func TestNewRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	b := mock.New()
	repo, err := NewRepository[TestUser](b, nil)
	if err != nil {
		t.Fatalf("NewRepository failed: %v", err)
	}

	user := TestUser{ID: "123", Name: "Ada", Email: "ada@example.com"}
	saved, err := repo.Put(ctx, &user)
	if err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if saved == nil || *saved != user {
		t.Errorf("Round trip mismatch: got %+v, want %+v", saved, user)
	}

	found, err := repo.Get(ctx, "USER#123")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if found == nil || found.Email != "ada@example.com" {
		t.Errorf("Unexpected entity: %+v", found)
	}
}

func TestNewAsyncRepository(t *testing.T) {
	ctx := context.Background()
	b := mock.New().WithSyncExec()
	repo, err := NewAsyncRepository[TestUser](b, nil)
	if err != nil {
		t.Fatalf("NewAsyncRepository failed: %v", err)
	}

	done, err := repo.Save(ctx, &TestUser{ID: "1", Name: "Ada"})
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	res := <-done
	if res.Err != nil {
		t.Fatalf("Save result error: %v", res.Err)
	}
	if res.Entity == nil || res.Entity.ID != "1" {
		t.Errorf("Unexpected entity: %+v", res.Entity)
	}
}

func TestTypedRepositories(t *testing.T) {
	t.Run("BasicOperations", func(t *testing.T) {
		repos := NewTypedRepositories[TestUser]()

		userRepo, err := NewRepository[TestUser](mock.New(), nil)
		if err != nil {
			t.Fatalf("NewRepository failed: %v", err)
		}
		if err := repos.Register("users", userRepo); err != nil {
			t.Fatalf("Failed to register: %v", err)
		}

		retrieved, err := repos.Get("users")
		if err != nil {
			t.Fatalf("Failed to get: %v", err)
		}
		if retrieved == nil {
			t.Fatal("Retrieved repository is nil")
		}

		keys := repos.List()
		if len(keys) != 1 || keys[0] != "users" {
			t.Fatalf("Expected [users], got %v", keys)
		}

		if err := repos.Remove("users"); err != nil {
			t.Fatalf("Failed to remove: %v", err)
		}
		if _, err := repos.Get("users"); err == nil {
			t.Fatal("Expected error after removal")
		}
	})

	t.Run("DuplicateRegistration", func(t *testing.T) {
		repos := NewTypedRepositories[TestUser]()

		first, err := NewRepository[TestUser](mock.New(), nil)
		if err != nil {
			t.Fatalf("NewRepository failed: %v", err)
		}
		if err := repos.Register("users", first); err != nil {
			t.Fatalf("First registration failed: %v", err)
		}

		second, err := NewRepository[TestUser](mock.New(), nil)
		if err != nil {
			t.Fatalf("NewRepository failed: %v", err)
		}
		if err := repos.Register("users", second); err == nil {
			t.Fatal("Expected duplicate registration error")
		}
	})
}

func TestMultiTypeRepositories(t *testing.T) {
	mtr := NewMultiTypeRepositories()

	t.Run("DifferentTypes", func(t *testing.T) {
		userRepo, err := NewRepository[TestUser](mock.New(), nil)
		if err != nil {
			t.Fatalf("NewRepository failed: %v", err)
		}
		if err := RegisterRepository(mtr, "users", userRepo); err != nil {
			t.Fatalf("Failed to register user repo: %v", err)
		}

		productRepo, err := NewRepository[TestProduct](mock.New(), nil)
		if err != nil {
			t.Fatalf("NewRepository failed: %v", err)
		}
		if err := RegisterRepository(mtr, "products", productRepo); err != nil {
			t.Fatalf("Failed to register product repo: %v", err)
		}

		if got, err := GetRepository[TestUser](mtr, "users"); err != nil || got == nil {
			t.Fatalf("Failed to get user repo: %v", err)
		}
		if got, err := GetRepository[TestProduct](mtr, "products"); err != nil || got == nil {
			t.Fatalf("Failed to get product repo: %v", err)
		}

		userKeys := ListRepositories[TestUser](mtr)
		if len(userKeys) != 1 || userKeys[0] != "users" {
			t.Fatalf("Expected user keys [users], got %v", userKeys)
		}
		productKeys := ListRepositories[TestProduct](mtr)
		if len(productKeys) != 1 || productKeys[0] != "products" {
			t.Fatalf("Expected product keys [products], got %v", productKeys)
		}
	})

	t.Run("SameKeyDifferentTypes", func(t *testing.T) {
		userRepo, err := NewRepository[TestUser](mock.New(), nil)
		if err != nil {
			t.Fatalf("NewRepository failed: %v", err)
		}
		if err := RegisterRepository(mtr, "items", userRepo); err != nil {
			t.Fatalf("Failed to register user repo: %v", err)
		}

		productRepo, err := NewRepository[TestProduct](mock.New(), nil)
		if err != nil {
			t.Fatalf("NewRepository failed: %v", err)
		}
		if err := RegisterRepository(mtr, "items", productRepo); err != nil {
			t.Fatalf("Failed to register product repo: %v", err)
		}

		if got, err := GetRepository[TestUser](mtr, "items"); err != nil || got == nil {
			t.Fatal("Failed to get user items repo")
		}
		if got, err := GetRepository[TestProduct](mtr, "items"); err != nil || got == nil {
			t.Fatal("Failed to get product items repo")
		}
	})
}

func TestMultiTypeRepositoriesThreadSafety(t *testing.T) {
	mtr := NewMultiTypeRepositories()
	done := make(chan bool)

	for i := 0; i < 10; i++ {
		go func(id int) {
			repo, err := NewRepository[TestUser](mock.New(), nil)
			if err == nil {
				RegisterRepository(mtr, fmt.Sprintf("repo%d", id), repo)
			}
			done <- true
		}(i)
	}
	for i := 0; i < 10; i++ {
		go func() {
			ListRepositories[TestUser](mtr)
			done <- true
		}()
	}
	for i := 0; i < 20; i++ {
		<-done
	}

	keys := ListRepositories[TestUser](mtr)
	if len(keys) != 10 {
		t.Fatalf("Expected 10 repositories, got %d", len(keys))
	}
}
