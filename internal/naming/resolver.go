package naming

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/ytget/img2png/internal/model"
)

// MaxSuffix is the highest numeric suffix tried before giving up on a name.
const MaxSuffix = 100

// Resolver hands out output paths that neither exist on disk nor were
// claimed earlier by the same resolver. Create one per run.
type Resolver struct {
	dir     string
	mu      sync.Mutex
	claimed map[string]struct{}

	// exists is replaceable in tests
	exists func(path string) bool
}

// NewResolver creates a resolver for paths inside dir
func NewResolver(dir string) *Resolver {
	return &Resolver{
		dir:     dir,
		claimed: make(map[string]struct{}),
		exists:  pathExists,
	}
}

// Dir returns the directory paths are resolved into
func (r *Resolver) Dir() string {
	return r.dir
}

// Resolve returns dir/candidate, or dir/stem_N.ext for the first free N in
// 1..MaxSuffix, and claims it. When every suffix is taken it returns an
// *model.ItemError of kind NamingConflictExhausted wrapping
// model.ErrNamingConflictExhausted.
func (r *Resolver) Resolve(candidate string) (string, error) {
	ext := filepath.Ext(candidate)
	stem := strings.TrimSuffix(candidate, ext)

	r.mu.Lock()
	defer r.mu.Unlock()

	p := filepath.Join(r.dir, candidate)
	for counter := 1; r.taken(p); counter++ {
		if counter > MaxSuffix {
			err := model.NewItemError(model.FailureNamingConflict, "",
				fmt.Errorf("%w: %s", model.ErrNamingConflictExhausted, candidate))
			err.Stem = stem
			return "", err
		}
		p = filepath.Join(r.dir, fmt.Sprintf("%s_%d%s", stem, counter, ext))
	}

	r.claimed[p] = struct{}{}
	return p, nil
}

// Claimed reports whether path was handed out by this resolver
func (r *Resolver) Claimed(path string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.claimed[filepath.Clean(path)]
	return ok
}

// Len returns the number of claimed paths
func (r *Resolver) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.claimed)
}

func (r *Resolver) taken(p string) bool {
	if _, ok := r.claimed[p]; ok {
		return true
	}
	return r.exists(p)
}

// pathExists treats any entry (file, dir, dangling symlink) as taken, and
// errors other than "not exist" as taken too so we never write blindly.
func pathExists(p string) bool {
	_, err := os.Lstat(p)
	if err == nil {
		return true
	}
	return !errors.Is(err, fs.ErrNotExist)
}
