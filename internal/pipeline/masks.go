package pipeline

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// PipeMaskID is reserved by the host for the whole pipeline.
const PipeMaskID = 0

// Mask registered by this module.
const (
	MaskID   = 1
	MaskName = "linearsaturation checkerboard"
)

// ErrReservedMask is returned when a caller tries to register key 0.
var ErrReservedMask = errors.New("mask id 0 is reserved for the pipe")

// MaskRegistry maps raster mask ids to display names.
type MaskRegistry struct {
	mu    sync.RWMutex
	masks map[int]string
}

// NewMaskRegistry returns an empty registry.
func NewMaskRegistry() *MaskRegistry {
	return &MaskRegistry{masks: make(map[int]string)}
}

// Replace clears the registry and inserts entries in one critical section.
// Readers never observe the cleared intermediate state.
func (r *MaskRegistry) Replace(entries map[int]string) error {
	if _, ok := entries[PipeMaskID]; ok {
		return ErrReservedMask
	}

	next := make(map[int]string, len(entries))
	for id, name := range entries {
		next[id] = name
	}

	r.mu.Lock()
	r.masks = next
	r.mu.Unlock()
	return nil
}

// Name returns the display name registered under id.
func (r *MaskRegistry) Name(id int) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	name, ok := r.masks[id]
	return name, ok
}

// Len returns the number of registered masks.
func (r *MaskRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.masks)
}

// Mask is one registry entry.
type Mask struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Snapshot returns a copy of the registry sorted by id.
func (r *MaskRegistry) Snapshot() []Mask {
	r.mu.RLock()
	out := make([]Mask, 0, len(r.masks))
	for id, name := range r.masks {
		out = append(out, Mask{ID: id, Name: name})
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (m Mask) String() string {
	return fmt.Sprintf("%d:%s", m.ID, m.Name)
}
