package matcher

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"gopkg.in/fsnotify.v1"
	"gopkg.in/yaml.v3"
)

// Registry manages the set of crime families used by the matcher.
type Registry struct {
	mu       sync.RWMutex
	families map[string]*CrimeFamily
	dir      string
	watcher  *fsnotify.Watcher
	stopChan chan struct{}
}

// NewRegistry creates a registry seeded with the built-in families.
func NewRegistry() *Registry {
	r := &Registry{families: make(map[string]*CrimeFamily)}
	for _, f := range DefaultFamilies() {
		// Built-in families are known-good; Register only fails on a bad
		// trigger regex.
		if err := r.Register(f); err != nil {
			panic(fmt.Sprintf("matcher: built-in family %q: %v", f.Key, err))
		}
	}
	return r
}

// NewEmptyRegistry creates a registry with no families, for tests and for
// fully file-driven configurations.
func NewEmptyRegistry() *Registry {
	return &Registry{families: make(map[string]*CrimeFamily)}
}

// Register adds or replaces a family. The family is validated and its trigger
// compiled before it becomes visible.
func (r *Registry) Register(f *CrimeFamily) error {
	if f == nil {
		return fmt.Errorf("family cannot be nil")
	}
	if err := f.Validate(); err != nil {
		return fmt.Errorf("invalid family: %w", err)
	}
	if !f.IsCompiled() {
		if err := f.Compile(); err != nil {
			return err
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.families[f.Key] = f
	return nil
}

// Get returns a family by key.
func (r *Registry) Get(key string) (*CrimeFamily, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.families[key]
	return f, ok
}

// List returns all families ordered by priority descending, with key order
// breaking ties so selection stays deterministic.
func (r *Registry) List() []*CrimeFamily {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*CrimeFamily, 0, len(r.families))
	for _, f := range r.families {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Priority != out[j].Priority {
			return out[i].Priority > out[j].Priority
		}
		return out[i].Key < out[j].Key
	})
	return out
}

// ExtendKeywords merges extra keywords into registered families by key.
// Unknown keys are ignored; duplicates are dropped.
func (r *Registry) ExtendKeywords(extra map[string][]string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for key, words := range extra {
		f, ok := r.families[key]
		if !ok {
			continue
		}
		existing := make(map[string]bool, len(f.Keywords))
		for _, kw := range f.Keywords {
			existing[strings.ToLower(kw)] = true
		}
		for _, kw := range words {
			if kw == "" || existing[strings.ToLower(kw)] {
				continue
			}
			existing[strings.ToLower(kw)] = true
			f.Keywords = append(f.Keywords, kw)
		}
	}
}

// termsFile is the schema of the crowd-sourced keyword-extension file.
type termsFile map[string]struct {
	ExtraKeywords []string `json:"extra_keywords"`
}

// LoadTermsFile reads a keyword-extension JSON file and merges it into the
// registry. A missing file is not an error.
func (r *Registry) LoadTermsFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading matcher terms %s: %w", path, err)
	}

	var terms termsFile
	if err := json.Unmarshal(data, &terms); err != nil {
		return fmt.Errorf("parsing matcher terms %s: %w", path, err)
	}

	extra := make(map[string][]string, len(terms))
	for key, t := range terms {
		extra[key] = t.ExtraKeywords
	}
	r.ExtendKeywords(extra)
	return nil
}

// familyFile is the schema of one YAML family definition file. A file may
// hold a single family or a list.
type familyFile struct {
	Families []*CrimeFamily `yaml:"families"`
}

// LoadFile loads crime families from one YAML file.
func (r *Registry) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading family file %s: %w", path, err)
	}

	var ff familyFile
	if err := yaml.Unmarshal(data, &ff); err != nil {
		return fmt.Errorf("parsing family file %s: %w", path, err)
	}
	if len(ff.Families) == 0 {
		var single CrimeFamily
		if err := yaml.Unmarshal(data, &single); err == nil && single.Key != "" {
			ff.Families = append(ff.Families, &single)
		}
	}

	for _, f := range ff.Families {
		if err := r.Register(f); err != nil {
			return fmt.Errorf("loading %s: %w", path, err)
		}
	}
	return nil
}

// LoadDirectory loads every .yaml/.yml file in dir and remembers the
// directory for Reload and Watch.
func (r *Registry) LoadDirectory(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading family directory %s: %w", dir, err)
	}

	r.mu.Lock()
	r.dir = dir
	r.mu.Unlock()

	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		if err := r.LoadFile(filepath.Join(dir, e.Name())); err != nil {
			return err
		}
	}
	return nil
}

// Reload re-reads the configured family directory.
func (r *Registry) Reload() error {
	r.mu.RLock()
	dir := r.dir
	r.mu.RUnlock()
	if dir == "" {
		return fmt.Errorf("no family directory configured")
	}
	return r.LoadDirectory(dir)
}

// Watch reloads family files when the configured directory changes.
func (r *Registry) Watch() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.dir == "" {
		return fmt.Errorf("no family directory configured")
	}
	if r.watcher != nil {
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	if err := watcher.Add(r.dir); err != nil {
		watcher.Close()
		return fmt.Errorf("watching %s: %w", r.dir, err)
	}

	r.watcher = watcher
	r.stopChan = make(chan struct{})

	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				ext := strings.ToLower(filepath.Ext(event.Name))
				if ext != ".yaml" && ext != ".yml" {
					continue
				}
				switch {
				case event.Op&(fsnotify.Write|fsnotify.Create) != 0:
					// Best effort; a bad edit keeps the last good set.
					_ = r.LoadFile(event.Name)
				case event.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
					_ = r.Reload()
				}
			case <-r.stopChan:
				return
			}
		}
	}()

	return nil
}

// StopWatch stops watching the family directory.
func (r *Registry) StopWatch() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.watcher == nil {
		return
	}
	close(r.stopChan)
	r.watcher.Close()
	r.watcher = nil
	r.stopChan = nil
}
