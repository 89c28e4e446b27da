package pipeline

import (
	"fmt"
	"log"
	"sync"

	"github.com/ironsheep/linear-saturation-mcp/internal/params"
	"github.com/ironsheep/linear-saturation-mcp/internal/tile"
)

// ROI is the region descriptor the host passes with every tile.
type ROI = tile.ROI

// Module flags reported to the host.
const (
	FlagIncludeInStyles  = 1 << 0
	FlagSupportsBlending = 1 << 1
)

// Groups the module is listed under.
const (
	GroupBasic     = 1 << 0
	GroupTechnical = 1 << 1
)

// ColorspaceRGB marks a stage that expects tiles in the working RGB space.
const ColorspaceRGB = "rgb"

// Info describes the module to the host.
type Info struct {
	Name       string `json:"name"`
	Version    int    `json:"version"`
	Flags      int    `json:"flags"`
	Groups     int    `json:"groups"`
	Colorspace string `json:"colorspace"`
}

// Module is the host-facing object of the linear saturation stage. It owns
// the current parameters and the mask registry.
type Module struct {
	mu       sync.RWMutex
	params   params.Params
	defaults params.Params

	masks *MaskRegistry
}

// NewModule returns a module holding the default parameters.
func NewModule() *Module {
	d := params.Defaults()
	return &Module{
		params:   d,
		defaults: d,
		masks:    NewMaskRegistry(),
	}
}

// Info returns the static description of the module.
func (m *Module) Info() Info {
	return Info{
		Name:       "linear saturation",
		Version:    params.Version,
		Flags:      FlagIncludeInStyles | FlagSupportsBlending,
		Groups:     GroupBasic | GroupTechnical,
		Colorspace: ColorspaceRGB,
	}
}

// Params returns a copy of the current parameters.
func (m *Module) Params() params.Params {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.params
}

// Defaults returns a copy of the default parameters.
func (m *Module) Defaults() params.Params {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.defaults
}

// SetParams validates p and makes it current. Invalid parameters leave the
// module unchanged.
func (m *Module) SetParams(p params.Params) error {
	if err := p.Validate(); err != nil {
		return err
	}
	m.mu.Lock()
	m.params = p
	m.mu.Unlock()
	return nil
}

// Reset restores the default parameters.
func (m *Module) Reset() {
	m.mu.Lock()
	m.params = m.defaults
	m.mu.Unlock()
}

// LoadLegacy replaces the current parameters with a stored blob of any
// supported version. If migration fails the previous parameters are kept
// and the error is returned.
func (m *Module) LoadLegacy(blob []byte, version int) error {
	p, err := params.Load(blob, version)
	if err != nil {
		log.Printf("linear saturation: keeping current parameters, cannot load v%d blob: %v", version, err)
		return fmt.Errorf("load v%d parameters: %w", version, err)
	}
	m.mu.Lock()
	m.params = p
	m.mu.Unlock()
	return nil
}

// Masks returns the registry this module publishes its mask in.
func (m *Module) Masks() *MaskRegistry {
	return m.masks
}

// Commit copies the current parameters into piece.
func (m *Module) Commit(piece *Piece) error {
	return m.CommitParams(m.Params(), piece)
}

// CommitParams copies p into piece's working state and re-registers the
// module's mask. p is copied by value; the piece never shares storage with
// the caller.
func (m *Module) CommitParams(p params.Params, piece *Piece) error {
	piece.replace(p)

	if err := m.masks.Replace(map[int]string{MaskID: MaskName}); err != nil {
		return fmt.Errorf("register mask: %w", err)
	}
	return nil
}
