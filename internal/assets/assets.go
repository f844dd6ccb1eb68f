// Package assets builds parametric props out of the geometry kernel.
//
// Every asset kind publishes a parameter table. Values for it come from the
// defaults, a YAML document or a seeded random draw, and Generate turns them
// into named mesh parts ready for export or preview.
package assets

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sort"
	"strings"
	"sync"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/Faultbox/propforge/internal/logger"
	"github.com/Faultbox/propforge/pkg/binpack"
	"github.com/Faultbox/propforge/pkg/geometry"
)

// ErrUnknownAsset is returned for names missing from the registry.
var ErrUnknownAsset = errors.New("assets: unknown asset")

// Part is one mesh of a generated asset. Its transform is baked into the
// positions.
type Part struct {
	Name string
	Mesh *geometry.Mesh
}

// Atlas is a texture layout shared by several parts.
type Atlas struct {
	Name   string
	Result *binpack.Result
}

// Asset is a generated prop. Generate may be called repeatedly; each call
// releases the parts returned by the previous one.
type Asset interface {
	Name() string
	Values() Values
	Generate() ([]Part, error)
	// Atlases lists the packings made by the last Generate.
	Atlases() []Atlas
	Release()
}

// Kind describes one asset type.
type Kind struct {
	// Name is the registry key, Title the human name.
	Name   string
	Title  string
	Params []Param
	build  func(v Values) ([]Part, []Atlas, error)
	// tweak adjusts a random draw before it is normalized.
	tweak func(r *rand.Rand, v Values)
}

// DisplayName returns the name in title case, e.g. "Drink Can".
func (k *Kind) DisplayName() string {
	name := k.Title
	if name == "" {
		name = k.Name
	}
	return cases.Title(language.English).String(name)
}

// Defaults returns the default value of every parameter.
func (k *Kind) Defaults() Values {
	v := make(Values, len(k.Params))
	for _, p := range k.Params {
		v[p.Key] = p.Default
	}
	return v
}

// Param returns the parameter with the given key.
func (k *Kind) Param(key string) (Param, bool) {
	for _, p := range k.Params {
		if p.Key == key {
			return p, true
		}
	}
	return Param{}, false
}

// Registry maps asset names to kinds.
type Registry struct {
	kinds map[string]*Kind
	mu    sync.RWMutex
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{kinds: make(map[string]*Kind)}
}

// Register adds a kind, replacing any kind with the same name.
func (r *Registry) Register(k *Kind) {
	r.mu.Lock()
	r.kinds[k.Name] = k
	r.mu.Unlock()
}

// Kind looks up a kind by name.
func (r *Registry) Kind(name string) (*Kind, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	k, ok := r.kinds[name]
	if !ok {
		if s := r.suggest(name); s != "" {
			return nil, fmt.Errorf("%w: %q (did you mean %q?)", ErrUnknownAsset, name, s)
		}
		return nil, fmt.Errorf("%w: %q", ErrUnknownAsset, name)
	}
	return k, nil
}

// suggestThreshold is the minimum similarity for a name suggestion.
const suggestThreshold = 0.5

// suggest returns the registered name closest to name, or "" when
// nothing is close. Callers hold r.mu.
func (r *Registry) suggest(name string) string {
	best, score := "", 0.0
	for n := range r.kinds {
		s := strutil.Similarity(strings.ToLower(name), n, metrics.NewLevenshtein())
		if s > score || (s == score && n < best) {
			best, score = n, s
		}
	}
	if score < suggestThreshold {
		return ""
	}
	return best
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.kinds))
	for name := range r.kinds {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New creates an asset from defaults overridden by a YAML mapping of
// parameter keys. Empty paramsYAML keeps the defaults.
func (r *Registry) New(name string, paramsYAML []byte) (Asset, error) {
	k, err := r.Kind(name)
	if err != nil {
		return nil, err
	}
	v, err := k.Decode(paramsYAML)
	if err != nil {
		return nil, err
	}
	return k.New(v), nil
}

// Random creates an asset from a deterministic random draw.
func (r *Registry) Random(name string, seed uint64) (Asset, error) {
	k, err := r.Kind(name)
	if err != nil {
		return nil, err
	}
	return k.New(k.Random(seed)), nil
}

// Builtin returns a registry with every bundled kind.
func Builtin() *Registry {
	r := NewRegistry()
	for _, k := range []*Kind{RoundBoxKind, MugKind, DrawerKind, DrinkCanKind, StoolKind, WineGlassKind} {
		r.Register(k)
	}
	return r
}

// New wraps v in an asset of this kind. Missing keys take their defaults
// and every value is clamped to its range.
func (k *Kind) New(v Values) Asset {
	return &instance{kind: k, values: k.Normalize(v)}
}

type instance struct {
	kind    *Kind
	values  Values
	parts   []Part
	atlases []Atlas
}

func (a *instance) Name() string { return a.kind.Name }

func (a *instance) Values() Values { return a.values.Clone() }

func (a *instance) Atlases() []Atlas { return a.atlases }

func (a *instance) Generate() ([]Part, error) {
	a.Release()

	log := logger.Named("assets").With(zap.String("asset", a.kind.Name))
	parts, atlases, err := a.kind.build(a.values)
	if err != nil {
		log.Warn("generate failed", zap.Error(err))
		return nil, fmt.Errorf("generating %s: %w", a.kind.Name, err)
	}

	if a.values.Bool("flat") {
		for i := range parts {
			flat := parts[i].Mesh.Faceted()
			parts[i].Mesh.Release()
			parts[i].Mesh = flat
		}
	}

	vertices := 0
	for _, p := range parts {
		vertices += p.Mesh.VertexCount()
	}
	log.Debug("generated",
		zap.Int("parts", len(parts)),
		zap.Int("vertices", vertices),
		zap.Int("atlases", len(atlases)))

	a.parts, a.atlases = parts, atlases
	return parts, nil
}

func (a *instance) Release() {
	for _, p := range a.parts {
		p.Mesh.Release()
	}
	a.parts, a.atlases = nil, nil
}
