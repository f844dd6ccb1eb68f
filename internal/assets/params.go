package assets

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/propforge/pkg/units"
)

// Unit tells how a parameter value is interpreted and edited.
type Unit int

const (
	Number Unit = iota
	Count
	Meter
	Centimeter
	Millimeter
	Degree
	Percent
	Flag
)

var unitSuffix = map[Unit]string{
	Meter:      "m",
	Centimeter: "cm",
	Millimeter: "mm",
	Degree:     "deg",
	Percent:    "%",
}

// Param describes one tunable input.
type Param struct {
	Key    string
	Name   string
	Folder string
	Unit   Unit

	Default  float64
	Min, Max float64
	// Prec is the number of decimals kept by random draws.
	Prec int
	// Exp draws integers exponentially between Min and Max.
	Exp bool
	// Chance is the probability of a random Flag being set.
	Chance float64
}

// Label returns the name for display, e.g. "Handle Height (cm)".
func (p Param) Label() string {
	label := cases.Title(language.English).String(p.Name)
	if p.Folder != "" && !strings.EqualFold(p.Folder, "general") {
		label = cases.Title(language.English).String(p.Folder) + " " + label
	}
	if s, ok := unitSuffix[p.Unit]; ok {
		label += " (" + s + ")"
	}
	return label
}

func (p Param) clamp(x float64) float64 {
	switch p.Unit {
	case Flag:
		if x > 0.5 {
			return 1
		}
		return 0
	case Count:
		x = math.Floor(x)
	}
	if p.Min < p.Max {
		x = units.Clamp(x, p.Min, p.Max)
	}
	return x
}

func flag(key, folder, name string, def bool, chance float64) Param {
	d := 0.0
	if def {
		d = 1
	}
	return Param{Key: key, Name: name, Folder: folder, Unit: Flag, Default: d, Max: 1, Chance: chance}
}

// Values holds parameter values by key. Flags are stored as 0 or 1.
type Values map[string]float64

// Clone returns a copy of v.
func (v Values) Clone() Values {
	out := make(Values, len(v))
	for k, x := range v {
		out[k] = x
	}
	return out
}

// Float returns the raw value.
func (v Values) Float(key string) float64 { return v[key] }

// F32 returns the raw value as float32.
func (v Values) F32(key string) float32 { return float32(v[key]) }

// Int returns the value rounded down.
func (v Values) Int(key string) int { return int(math.Floor(v[key])) }

// Bool reports whether a flag is set.
func (v Values) Bool(key string) bool { return v[key] > 0.5 }

// Cm returns the value converted from centimeters to meters.
func (v Values) Cm(key string) float32 { return units.Cm(v[key]) }

// Mm returns the value converted from millimeters to meters.
func (v Values) Mm(key string) float32 { return units.Mm(v[key]) }

// Slope returns the sine of a value in degrees.
func (v Values) Slope(key string) float32 { return units.Slope(v[key]) }

// Keys returns the keys in sorted order.
func (v Values) Keys() []string {
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Normalize fills missing keys with defaults, clamps every value to its
// range and drops unknown keys.
func (k *Kind) Normalize(v Values) Values {
	out := k.Defaults()
	for _, p := range k.Params {
		if x, ok := v[p.Key]; ok {
			out[p.Key] = p.clamp(x)
		}
	}
	return out
}

// Decode parses a YAML mapping of parameter keys over the defaults. Flags
// accept true/false. Unknown keys are rejected.
func (k *Kind) Decode(data []byte) (Values, error) {
	raw := map[string]yaml.Node{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decoding %s params: %w", k.Name, err)
	}

	v := k.Defaults()
	for key, node := range raw {
		p, ok := k.Param(key)
		if !ok {
			return nil, fmt.Errorf("decoding %s params: unknown parameter %q", k.Name, key)
		}
		if p.Unit == Flag {
			var b bool
			if err := node.Decode(&b); err != nil {
				return nil, fmt.Errorf("decoding %s.%s: %w", k.Name, key, err)
			}
			v[key] = 0
			if b {
				v[key] = 1
			}
			continue
		}
		var x float64
		if err := node.Decode(&x); err != nil {
			return nil, fmt.Errorf("decoding %s.%s: %w", k.Name, key, err)
		}
		v[key] = x
	}
	return k.Normalize(v), nil
}

// Encode writes v as a YAML mapping, flags as booleans.
func (k *Kind) Encode(v Values) ([]byte, error) {
	out := make(map[string]any, len(k.Params))
	for _, p := range k.Params {
		if p.Unit == Flag {
			out[p.Key] = v.Bool(p.Key)
		} else {
			out[p.Key] = v[p.Key]
		}
	}
	return yaml.Marshal(out)
}

// Random draws every parameter from its range: flags with their chance,
// exponential counts rounded down, other values rounded to Prec decimals.
// The same seed always gives the same values.
func (k *Kind) Random(seed uint64) Values {
	r := units.NewRand(seed)
	v := make(Values, len(k.Params))
	for _, p := range k.Params {
		switch {
		case p.Unit == Flag:
			v[p.Key] = 0
			if units.Chance(r, p.Chance) {
				v[p.Key] = 1
			}
		case p.Exp:
			v[p.Key] = math.Floor(units.MapExp(r.Float64(), p.Min, p.Max, 0, 1))
		default:
			v[p.Key] = units.Random(r, p.Min, p.Max, p.Prec)
		}
	}
	if k.tweak != nil {
		k.tweak(r, v)
	}
	return k.Normalize(v)
}
