package pipeline

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/ironsheep/linear-saturation-mcp/internal/colorspace"
	"github.com/ironsheep/linear-saturation-mcp/internal/params"
	"github.com/ironsheep/linear-saturation-mcp/internal/saturation"
)

// ErrNotCommitted is returned when a piece is processed before its first
// commit.
var ErrNotCommitted = errors.New("pipeline piece has no committed parameters")

// PipeType identifies the render pass a piece belongs to.
type PipeType int

const (
	PipeFull PipeType = iota
	PipePreview
)

func (p PipeType) String() string {
	switch p {
	case PipeFull:
		return "full"
	case PipePreview:
		return "preview"
	default:
		return fmt.Sprintf("pipe(%d)", int(p))
	}
}

// ParsePipe maps "full" or "preview" to a PipeType. An empty string means
// full.
func ParsePipe(s string) (PipeType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "full":
		return PipeFull, nil
	case "preview":
		return PipePreview, nil
	default:
		return 0, fmt.Errorf("unknown pipe %q", s)
	}
}

// State is the lifecycle of a piece.
type State int

const (
	Uninitialized State = iota
	Committed
)

func (s State) String() string {
	if s == Committed {
		return "committed"
	}
	return "uninitialized"
}

// Piece is one instance of the module inside a render pass. Its working
// state is a private copy of the parameters, replaced wholesale on every
// commit and never modified by processing.
type Piece struct {
	id   string
	pipe PipeType

	mu      sync.RWMutex
	state   State
	data    params.Params
	commits int
}

// NewPiece returns an uninitialized piece for the given pass.
func NewPiece(pipe PipeType) *Piece {
	return &Piece{
		id:   uuid.NewString(),
		pipe: pipe,
	}
}

// ID identifies the piece in logs.
func (p *Piece) ID() string { return p.id }

// Pipe returns the render pass of the piece.
func (p *Piece) Pipe() PipeType { return p.pipe }

// State returns the current lifecycle state.
func (p *Piece) State() State {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.state
}

// Commits returns how many times the piece has been committed.
func (p *Piece) Commits() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.commits
}

// WorkingState returns a copy of the committed parameters. ok is false
// before the first commit.
func (p *Piece) WorkingState() (d params.Params, ok bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.data, p.state == Committed
}

func (p *Piece) replace(d params.Params) {
	p.mu.Lock()
	p.data = d
	p.state = Committed
	p.commits++
	p.mu.Unlock()
}

// Process runs the saturation kernel with the piece's working state. The
// state is snapshotted before the kernel starts, so a concurrent commit
// affects only later calls.
func (p *Piece) Process(profile *colorspace.Profile, in, out []float32, roiIn, roiOut ROI) error {
	d, ok := p.WorkingState()
	if !ok {
		return ErrNotCommitted
	}
	return saturation.Process(&d, profile, in, out, roiIn, roiOut)
}
