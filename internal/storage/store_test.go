package storage

import (
	"context"
	"errors"
	"testing"
)

func TestOwnerKeysAreNamespaced(t *testing.T) {
	tests := []struct {
		name string
		key  string
		want string
	}{
		{"session token", SessionTokenKey("u1"), "investprofile:u1:session:token"},
		{"session data", SessionDataKey("u1"), "investprofile:u1:session:data"},
		{"questionnaire", QuestionnaireKey("u1"), "investprofile:u1:questionnaire"},
		{"analysis", AnalysisKey("u1"), "investprofile:u1:analysis"},
		{"recommendations", RecommendationKey("u1"), "investprofile:u1:recommendations"},
		{"flow state", FlowStateKey("u1"), "investprofile:u1:flow_state"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.key != tt.want {
				t.Errorf("got %q, want %q", tt.key, tt.want)
			}
		})
	}
}

func TestKeysIsolatePerOwner(t *testing.T) {
	if QuestionnaireKey("u1") == QuestionnaireKey("u2") {
		t.Fatal("different owners must not share keys")
	}
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	if _, found, err := s.Get(ctx, "k"); err != nil || found {
		t.Fatalf("absent key: found=%v err=%v", found, err)
	}

	if err := s.Set(ctx, "k", "v1"); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if err := s.Set(ctx, "k", "v2"); err != nil {
		t.Fatalf("overwrite failed: %v", err)
	}

	value, found, err := s.Get(ctx, "k")
	if err != nil || !found || value != "v2" {
		t.Fatalf("get after overwrite: value=%q found=%v err=%v", value, found, err)
	}

	if err := s.Delete(ctx, "k"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := s.Delete(ctx, "k"); err != nil {
		t.Fatalf("deleting absent key must be a no-op: %v", err)
	}
	if _, found, _ := s.Get(ctx, "k"); found {
		t.Fatal("key survived delete")
	}
}

func TestMemoryStoreForcedFailures(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	boom := errors.New("boom")
	s.FailOps = map[string]error{"set": boom}

	err := s.Set(ctx, "k", "v")
	if err == nil {
		t.Fatal("expected forced failure")
	}
	if !errors.Is(err, ErrStorage) {
		t.Errorf("forced failure should wrap ErrStorage, got %v", err)
	}

	var storageErr *StorageError
	if !errors.As(err, &storageErr) {
		t.Fatalf("expected *StorageError, got %T", err)
	}
	if storageErr.Op != "set" || storageErr.Key != "k" {
		t.Errorf("unexpected error detail: op=%q key=%q", storageErr.Op, storageErr.Key)
	}
}
