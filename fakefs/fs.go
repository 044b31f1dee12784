package fakefs

import (
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"sync"

	"github.com/seamkit/seam"
	"github.com/seamkit/seam/internal/vpath"
)

// Options seeds the virtual filesystem.
type Options struct {
	// Files maps path → content. Parent directories are created
	// automatically.
	Files map[string][]byte

	// Dirs lists directories to create empty.
	Dirs []string

	// Archive is a txtar archive whose files seed the virtual set.
	// Files is applied on top, so it can override archive entries.
	Archive []byte
}

// entry is one virtual file or directory.
type entry struct {
	data []byte
	mode fs.FileMode
	dir  bool
}

// Fake is an in-memory filesystem boundary. All operations work on
// normalized rooted paths and only touch the virtual entry set. Listing is
// deterministic (path-lexicographic), never dependent on storage order.
// Safe for concurrent use.
type Fake struct {
	mu      sync.RWMutex
	entries map[string]*entry
}

// New builds the fake with the seeded entries. Seeding order: Archive,
// then Dirs, then Files, each in sorted path order. A conflicting seed
// (a path used both as a file and as a parent directory) is a broken
// fixture and panics.
func New(opts Options) *Fake {
	f := &Fake{entries: map[string]*entry{
		"/": {mode: 0o755, dir: true},
	}}

	if len(opts.Archive) > 0 {
		f.seedArchive(opts.Archive)
	}
	for _, dir := range sortedPaths(opts.Dirs) {
		if err := f.mkdirAllLocked(vpath.Clean(dir), 0o755); err != nil {
			panic("fakefs: seed: " + err.Error())
		}
	}
	files := make([]string, 0, len(opts.Files))
	for path := range opts.Files {
		files = append(files, path)
	}
	for _, path := range sortedPaths(files) {
		if err := f.putLocked(vpath.Clean(path), opts.Files[path], 0o644); err != nil {
			panic("fakefs: seed: " + err.Error())
		}
	}
	return f
}

// sortedPaths returns a sorted copy so seeding order never depends on map
// iteration.
func sortedPaths(paths []string) []string {
	sorted := append([]string(nil), paths...)
	sort.Strings(sorted)
	return sorted
}

// ReadFile returns a copy of the file's contents. A missing path or a
// directory yields NotFoundError.
func (f *Fake) ReadFile(name string) ([]byte, error) {
	cleaned := vpath.Clean(name)

	f.mu.RLock()
	defer f.mu.RUnlock()

	e, ok := f.entries[cleaned]
	if !ok || e.dir {
		return nil, &seam.NotFoundError{Op: "read", Path: cleaned}
	}
	return append([]byte(nil), e.data...), nil
}

// WriteFile writes data under the normalized path, creating missing parent
// directories. Writing a new path creates it; writing an existing path
// overwrites its content.
func (f *Fake) WriteFile(name string, data []byte, perm fs.FileMode) error {
	cleaned := vpath.Clean(name)

	f.mu.Lock()
	defer f.mu.Unlock()

	return f.putLocked(cleaned, data, perm)
}

// Remove deletes a file or an empty directory. A missing path yields
// NotFoundError.
func (f *Fake) Remove(name string) error {
	cleaned := vpath.Clean(name)

	f.mu.Lock()
	defer f.mu.Unlock()

	e, ok := f.entries[cleaned]
	if !ok {
		return &seam.NotFoundError{Op: "remove", Path: cleaned}
	}
	if e.dir {
		if cleaned == "/" {
			return fmt.Errorf("remove /: invalid argument")
		}
		// Entry keys are already cleaned; the trailing separator restricts
		// the scan to true children, not name-prefix siblings.
		for path := range f.entries {
			if strings.HasPrefix(path, cleaned+"/") {
				return fmt.Errorf("remove %s: directory not empty", cleaned)
			}
		}
	}
	delete(f.entries, cleaned)
	return nil
}

// Exists reports whether the path exists as a file or directory.
func (f *Fake) Exists(name string) (bool, error) {
	cleaned := vpath.Clean(name)

	f.mu.RLock()
	defer f.mu.RUnlock()

	_, ok := f.entries[cleaned]
	return ok, nil
}

// List returns the file paths whose normalized path starts with prefix, in
// path-lexicographic order. Directories are not listed. No matches yields
// an empty result, not an error.
func (f *Fake) List(prefix string) ([]string, error) {
	cleaned := vpath.Clean(prefix)

	f.mu.RLock()
	defer f.mu.RUnlock()

	var paths []string
	for path, e := range f.entries {
		if e.dir {
			continue
		}
		if vpath.HasPrefix(path, cleaned) {
			paths = append(paths, path)
		}
	}
	sort.Strings(paths)
	return paths, nil
}

// MkdirAll creates a directory along with any missing parents. Creating an
// existing directory is a no-op; a file in the way is an error.
func (f *Fake) MkdirAll(path string, perm fs.FileMode) error {
	cleaned := vpath.Clean(path)

	f.mu.Lock()
	defer f.mu.Unlock()

	return f.mkdirAllLocked(cleaned, perm)
}

// Mode returns the entry's permission bits. A missing path yields
// NotFoundError.
func (f *Fake) Mode(name string) (fs.FileMode, error) {
	cleaned := vpath.Clean(name)

	f.mu.RLock()
	defer f.mu.RUnlock()

	e, ok := f.entries[cleaned]
	if !ok {
		return 0, &seam.NotFoundError{Op: "stat", Path: cleaned}
	}
	return e.mode, nil
}

// Snapshot returns a copy of the final file state (path → content) for
// assertions. Directories are omitted.
func (f *Fake) Snapshot() map[string][]byte {
	f.mu.RLock()
	defer f.mu.RUnlock()

	snapshot := make(map[string][]byte)
	for path, e := range f.entries {
		if e.dir {
			continue
		}
		snapshot[path] = append([]byte(nil), e.data...)
	}
	return snapshot
}

// Summary describes the fake for state dumps.
func (f *Fake) Summary() map[string]any {
	f.mu.RLock()
	defer f.mu.RUnlock()

	files, dirs := 0, 0
	for path, e := range f.entries {
		if e.dir {
			if path != "/" {
				dirs++
			}
			continue
		}
		files++
	}
	return map[string]any{
		"files": files,
		"dirs":  dirs,
	}
}

// putLocked stores a file under an already-cleaned path, creating parent
// directories. Callers hold the write lock.
func (f *Fake) putLocked(cleaned string, data []byte, perm fs.FileMode) error {
	if e, ok := f.entries[cleaned]; ok && e.dir {
		return fmt.Errorf("write %s: is a directory", cleaned)
	}
	if err := f.mkdirAllLocked(vpath.Dir(cleaned), 0o755); err != nil {
		return err
	}
	if perm == 0 {
		perm = 0o644
	}
	f.entries[cleaned] = &entry{
		data: append([]byte(nil), data...),
		mode: perm.Perm(),
	}
	return nil
}

// mkdirAllLocked creates a directory chain for an already-cleaned path.
// Callers hold the write lock.
func (f *Fake) mkdirAllLocked(cleaned string, perm fs.FileMode) error {
	for _, dir := range append(vpath.Parents(cleaned), cleaned) {
		e, ok := f.entries[dir]
		if ok {
			if !e.dir {
				return fmt.Errorf("mkdir %s: not a directory", dir)
			}
			continue
		}
		f.entries[dir] = &entry{mode: perm.Perm(), dir: true}
	}
	return nil
}
