package main

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/propforge/internal/assets"
	"github.com/Faultbox/propforge/internal/logger"
)

// state is the editor model behind the UI: the selected kind, its current
// values and the parts built from them.
type state struct {
	registry *assets.Registry
	names    []string

	kind   *assets.Kind
	values assets.Values
	seed   uint64

	asset   assets.Asset
	parts   []assets.Part
	lastErr error
	// dirty is set when values changed since the last build.
	dirty bool

	log *zap.Logger
}

func newState(reg *assets.Registry) *state {
	return &state{
		registry: reg,
		names:    reg.Names(),
		log:      logger.Named("propbrowser"),
	}
}

// selectKind switches to the named kind with its defaults.
func (s *state) selectKind(name string) error {
	k, err := s.registry.Kind(name)
	if err != nil {
		return err
	}
	s.kind = k
	s.values = k.Defaults()
	s.seed = 0
	s.dirty = true
	return nil
}

// set changes one value, clamped to its range.
func (s *state) set(key string, x float64) {
	if s.kind == nil || s.values[key] == x {
		return
	}
	v := s.values.Clone()
	v[key] = x
	s.values = s.kind.Normalize(v)
	s.dirty = true
}

func (s *state) randomize(seed uint64) {
	if s.kind == nil {
		return
	}
	s.seed = seed
	s.values = s.kind.Random(seed)
	s.dirty = true
}

func (s *state) resetDefaults() {
	if s.kind == nil {
		return
	}
	s.values = s.kind.Defaults()
	s.seed = 0
	s.dirty = true
}

func (s *state) loadParams(path string) error {
	if s.kind == nil {
		return fmt.Errorf("no asset selected")
	}
	v, err := s.kind.LoadParams(path)
	if err != nil {
		return err
	}
	s.values = v
	s.seed = 0
	s.dirty = true
	return nil
}

func (s *state) saveParams(path string) error {
	if s.kind == nil {
		return fmt.Errorf("no asset selected")
	}
	return s.kind.SaveParams(path, s.values)
}

// rebuild regenerates the parts when values changed. It reports whether
// new parts are available. On failure the previous parts stay current.
func (s *state) rebuild() bool {
	if !s.dirty || s.kind == nil {
		return false
	}
	s.dirty = false

	a := s.kind.New(s.values)
	parts, err := a.Generate()
	if err != nil {
		s.lastErr = err
		s.log.Error("generate failed", zap.String("asset", s.kind.Name), zap.Error(err))
		a.Release()
		return false
	}
	s.lastErr = nil
	s.release()
	s.asset, s.parts = a, parts
	return true
}

func (s *state) atlases() []assets.Atlas {
	if s.asset == nil {
		return nil
	}
	return s.asset.Atlases()
}

func (s *state) stats() (parts, verts, tris int) {
	for _, p := range s.parts {
		verts += p.Mesh.VertexCount()
		tris += p.Mesh.TriangleCount()
	}
	return len(s.parts), verts, tris
}

func (s *state) release() {
	if s.asset != nil {
		s.asset.Release()
	}
	s.asset, s.parts = nil, nil
}
