package pipeline

import (
	"fmt"
	"path/filepath"
	"sync"
)

// CollisionResolver tracks output paths claimed by input files and resolves
// duplicates by appending "_dupN" to the stem. Two inputs collide when they
// share a base name and write into the same --output directory. Paths are
// compared in absolute, cleaned form, so "./a.brd" and "/work/a.brd" are
// the same file. All methods are goroutine-safe.
type CollisionResolver struct {
	mu       sync.Mutex
	owners   map[string]string // abs output path → abs input path that owns it ("" = reserved)
	counters map[string]int    // abs base output path → next dup counter
}

// pathKey is the comparison form of path. filepath.Abs also cleans.
func pathKey(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}

// NewCollisionResolver creates a ready-to-use resolver.
func NewCollisionResolver() *CollisionResolver {
	return &CollisionResolver{
		owners:   make(map[string]string),
		counters: make(map[string]int),
	}
}

// Reserve marks path as unavailable to every output, so that no output can
// replace an input of the same run.
func (cr *CollisionResolver) Reserve(path string) {
	key := pathKey(path)
	cr.mu.Lock()
	defer cr.mu.Unlock()
	if _, exists := cr.owners[key]; !exists {
		cr.owners[key] = ""
	}
}

// Resolve returns the final output path for input, handling collisions.
// If requestedOutput is unclaimed (or already owned by input), it is returned
// as-is. Otherwise a "_dupN" variant is generated.
func (cr *CollisionResolver) Resolve(input, requestedOutput string) string {
	in, want := pathKey(input), pathKey(requestedOutput)
	cr.mu.Lock()
	defer cr.mu.Unlock()

	owner, exists := cr.owners[want]
	if !exists || owner == in {
		cr.owners[want] = in
		return requestedOutput
	}

	dir := filepath.Dir(requestedOutput)
	stem, ext := splitName(filepath.Base(requestedOutput))

	counter := cr.counters[want]
	if counter == 0 {
		counter = 1
	}

	for {
		candidate := filepath.Join(dir, fmt.Sprintf("%s_dup%d%s", stem, counter, ext))
		key := pathKey(candidate)
		cOwner, cExists := cr.owners[key]
		if !cExists || cOwner == in {
			cr.counters[want] = counter + 1
			cr.owners[key] = in
			return candidate
		}
		counter++
	}
}
