package discovery

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

// ErrInvalidSource marks caller errors on the source registry: empty names,
// duplicates, or removal of something that is not a custom source.
var ErrInvalidSource = errors.New("invalid source")

// Default sources scanned by every sweep. Fixed; they can never be removed.
var defaultSources = []string{
	"SomebodyMakeThis",
	"AppIdeas",
	"mildlyinfuriating",
	"Lightbulb",
	"ProductivityApps",
	"startups",
	"SideProject",
	"indiehackers",
}

// Registry holds the combined source set: the immutable defaults plus a
// concurrently mutable custom list. Iteration always works on a snapshot, so
// a sweep in progress never observes a concurrent add or remove.
type Registry struct {
	mu     sync.RWMutex
	custom []string
}

func NewRegistry() *Registry {
	return &Registry{}
}

// All returns a snapshot of the combined registry, defaults first, in list
// order.
func (r *Registry) All() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	all := make([]string, 0, len(defaultSources)+len(r.custom))
	all = append(all, defaultSources...)
	all = append(all, r.custom...)
	return all
}

// Defaults returns a copy of the fixed default list.
func (r *Registry) Defaults() []string {
	return append([]string(nil), defaultSources...)
}

// Custom returns a snapshot of the user-added sources.
func (r *Registry) Custom() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.custom...)
}

// Add registers a custom source. The trimmed name must be non-empty and
// case-insensitively unique against the full registry.
func (r *Registry) Add(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: source name cannot be empty", ErrInvalidSource)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range defaultSources {
		if strings.EqualFold(existing, name) {
			return "", fmt.Errorf("%w: source %q already exists", ErrInvalidSource, name)
		}
	}
	for _, existing := range r.custom {
		if strings.EqualFold(existing, name) {
			return "", fmt.Errorf("%w: source %q already exists", ErrInvalidSource, name)
		}
	}
	r.custom = append(r.custom, name)
	return name, nil
}

// Remove deletes a custom source. Defaults cannot be removed.
func (r *Registry) Remove(name string) error {
	name = strings.TrimSpace(name)

	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.custom {
		if strings.EqualFold(existing, name) {
			r.custom = append(r.custom[:i], r.custom[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: source %q is not a custom source", ErrInvalidSource, name)
}
