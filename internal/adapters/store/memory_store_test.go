package store

import (
	"context"
	"errors"
	"sync"
	"testing"

	"go.uber.org/zap"

	"github.com/syncapply/syncapply/internal/core"
)

func TestMemoryStoreInsertAndGet(t *testing.T) {
	s := NewMemoryStore(zap.NewNop())
	ctx := context.Background()

	got, err := s.GetByEmailID(ctx, "m1")
	if err != nil {
		t.Fatal(err)
	}
	if got != nil {
		t.Fatalf("expected nil for absent id, got %+v", got)
	}

	record := &core.ApplicationRecord{
		CompanyName: "Acme",
		JobTitle:    "Engineer",
		Status:      "applied",
		EmailID:     "m1",
	}
	if err := s.Insert(ctx, record); err != nil {
		t.Fatal(err)
	}

	got, err = s.GetByEmailID(ctx, "m1")
	if err != nil {
		t.Fatal(err)
	}
	if got == nil || got.CompanyName != "Acme" {
		t.Fatalf("got %+v", got)
	}

	// Mutating the returned record must not touch the stored copy.
	got.CompanyName = "changed"
	again, _ := s.GetByEmailID(ctx, "m1")
	if again.CompanyName != "Acme" {
		t.Fatalf("stored record mutated: %+v", again)
	}
}

func TestMemoryStoreDuplicateInsert(t *testing.T) {
	s := NewMemoryStore(zap.NewNop())
	ctx := context.Background()
	record := &core.ApplicationRecord{CompanyName: "Acme", EmailID: "m1"}

	if err := s.Insert(ctx, record); err != nil {
		t.Fatal(err)
	}
	err := s.Insert(ctx, &core.ApplicationRecord{CompanyName: "Other", EmailID: "m1"})
	if !errors.Is(err, core.ErrDuplicateApplication) {
		t.Fatalf("err = %v, want ErrDuplicateApplication", err)
	}

	// The original record survives the rejected insert.
	got, _ := s.GetByEmailID(ctx, "m1")
	if got.CompanyName != "Acme" {
		t.Fatalf("got %+v", got)
	}
}

func TestMemoryStoreList(t *testing.T) {
	s := NewMemoryStore(zap.NewNop())
	ctx := context.Background()

	records, err := s.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 0 {
		t.Fatalf("records = %v, want empty", records)
	}

	_ = s.Insert(ctx, &core.ApplicationRecord{EmailID: "m1"})
	_ = s.Insert(ctx, &core.ApplicationRecord{EmailID: "m2"})
	records, err = s.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Fatalf("len = %d, want 2", len(records))
	}
}

func TestMemoryStoreConcurrentInserts(t *testing.T) {
	s := NewMemoryStore(zap.NewNop())
	ctx := context.Background()

	const workers = 16
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = s.Insert(ctx, &core.ApplicationRecord{EmailID: "m1"})
		}(i)
	}
	wg.Wait()

	ok := 0
	for _, err := range errs {
		if err == nil {
			ok++
		} else if !errors.Is(err, core.ErrDuplicateApplication) {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if ok != 1 {
		t.Fatalf("%d inserts succeeded, want exactly 1", ok)
	}
}
