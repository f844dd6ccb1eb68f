package main

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/propforge/internal/assets"
	"github.com/Faultbox/propforge/internal/logger"
)

// session tracks which variation of an asset is on screen. Seed 0 shows
// the defaults, or the params file when one is set.
type session struct {
	kind       *assets.Kind
	seed       uint64
	paramsFile string
	cache      *assets.Cache
	log        *zap.Logger
}

func newSession(kind *assets.Kind, seed uint64, paramsFile string) *session {
	return &session{
		kind:       kind,
		seed:       seed,
		paramsFile: paramsFile,
		cache:      assets.NewCache(32),
		log:        logger.Named("propview"),
	}
}

func (s *session) key() string {
	return assets.SeedKey(s.kind.Name, s.seed)
}

func (s *session) values() (assets.Values, error) {
	switch {
	case s.seed != 0:
		return s.kind.Random(s.seed), nil
	case s.paramsFile != "":
		return s.kind.LoadParams(s.paramsFile)
	default:
		return s.kind.Defaults(), nil
	}
}

// parts returns the meshes of the current variation. The caller owns them.
func (s *session) parts() ([]assets.Part, error) {
	if parts, ok := s.cache.Get(s.key()); ok {
		return parts, nil
	}
	v, err := s.values()
	if err != nil {
		return nil, err
	}
	a := s.kind.New(v)
	parts, err := a.Generate()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.key(), err)
	}
	s.cache.Set(s.key(), parts)
	s.log.Debug("generated", zap.String("key", s.key()), zap.Int("parts", len(parts)))
	return parts, nil
}

// next steps to the following seed.
func (s *session) next() { s.seed++ }

// prev steps back one seed, stopping at 0.
func (s *session) prev() {
	if s.seed > 0 {
		s.seed--
	}
}

// reload drops the cached params-file variation so it is rebuilt.
func (s *session) reload() {
	if s.paramsFile == "" {
		return
	}
	s.cache.Delete(assets.SeedKey(s.kind.Name, 0))
	s.seed = 0
}

func (s *session) title() string {
	switch {
	case s.seed != 0:
		return fmt.Sprintf("propview - %s #%d", s.kind.DisplayName(), s.seed)
	case s.paramsFile != "":
		return fmt.Sprintf("propview - %s (%s)", s.kind.DisplayName(), s.paramsFile)
	default:
		return fmt.Sprintf("propview - %s", s.kind.DisplayName())
	}
}
