package naming

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/ytget/img2png/internal/model"
)

func TestResolver_SameCandidateTwice(t *testing.T) {
	dir := t.TempDir()
	r := NewResolver(dir)

	first, err := r.Resolve("a.png")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	second, err := r.Resolve("a.png")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if first != filepath.Join(dir, "a.png") {
		t.Errorf("Expected first path a.png, got %s", first)
	}
	if second != filepath.Join(dir, "a_1.png") {
		t.Errorf("Expected second path a_1.png, got %s", second)
	}
	if !r.Claimed(first) || !r.Claimed(second) || r.Len() != 2 {
		t.Error("Expected both paths to be claimed")
	}
}

func TestResolver_SkipsExistingFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"cat.png", "cat_1.png", "cat_2.png"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "cat_3.png"), 0755); err != nil {
		t.Fatal(err)
	}

	p, err := NewResolver(dir).Resolve("cat.png")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if filepath.Base(p) != "cat_4.png" {
		t.Errorf("Expected cat_4.png, got %s", filepath.Base(p))
	}
}

func TestResolver_KeepsExistingSuffixInCandidate(t *testing.T) {
	dir := t.TempDir()
	r := NewResolver(dir)

	r.Resolve("shot_7.png")
	p, err := r.Resolve("shot_7.png")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if filepath.Base(p) != "shot_7_1.png" {
		t.Errorf("Expected shot_7_1.png, got %s", filepath.Base(p))
	}
}

func TestResolver_Exhausted(t *testing.T) {
	r := NewResolver("/out")
	r.exists = func(string) bool { return true }

	_, err := r.Resolve("busy.png")
	if !errors.Is(err, model.ErrNamingConflictExhausted) {
		t.Fatalf("Expected ErrNamingConflictExhausted, got %v", err)
	}

	var itemErr *model.ItemError
	if !errors.As(err, &itemErr) {
		t.Fatalf("Expected *model.ItemError, got %T", err)
	}
	if itemErr.Kind != model.FailureNamingConflict || itemErr.Stem != "busy" {
		t.Errorf("Unexpected item error: %+v", itemErr)
	}
	if r.Len() != 0 {
		t.Errorf("Exhausted resolution must not claim a path, got %d claims", r.Len())
	}
}

func TestResolver_LastSuffixStillUsable(t *testing.T) {
	r := NewResolver("/out")
	taken := map[string]bool{filepath.Join("/out", "x.png"): true}
	for i := 1; i < MaxSuffix; i++ {
		taken[filepath.Join("/out", fmt.Sprintf("x_%d.png", i))] = true
	}
	r.exists = func(p string) bool { return taken[p] }

	p, err := r.Resolve("x.png")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if filepath.Base(p) != fmt.Sprintf("x_%d.png", MaxSuffix) {
		t.Errorf("Expected x_%d.png, got %s", MaxSuffix, filepath.Base(p))
	}
}

func TestResolver_ConcurrentClaimsAreDistinct(t *testing.T) {
	r := NewResolver(t.TempDir())

	const workers = 20
	paths := make([]string, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			p, err := r.Resolve("same.png")
			if err != nil {
				t.Errorf("Resolve failed: %v", err)
				return
			}
			paths[i] = p
		}(i)
	}
	wg.Wait()

	seen := make(map[string]bool)
	for _, p := range paths {
		if seen[p] {
			t.Errorf("Path %s handed out twice", p)
		}
		seen[p] = true
	}
}
