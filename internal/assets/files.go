package assets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// DecodeTOML is Decode for a TOML table of parameter keys.
func (k *Kind) DecodeTOML(data []byte) (Values, error) {
	raw := map[string]any{}
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decoding %s params: %w", k.Name, err)
	}

	v := k.Defaults()
	for key, val := range raw {
		p, ok := k.Param(key)
		if !ok {
			return nil, fmt.Errorf("decoding %s params: unknown parameter %q", k.Name, key)
		}
		switch x := val.(type) {
		case bool:
			if p.Unit != Flag {
				return nil, fmt.Errorf("decoding %s.%s: got bool for a number", k.Name, key)
			}
			v[key] = 0
			if x {
				v[key] = 1
			}
		case int64:
			if p.Unit == Flag {
				return nil, fmt.Errorf("decoding %s.%s: got number for a flag", k.Name, key)
			}
			v[key] = float64(x)
		case float64:
			if p.Unit == Flag {
				return nil, fmt.Errorf("decoding %s.%s: got number for a flag", k.Name, key)
			}
			v[key] = x
		default:
			return nil, fmt.Errorf("decoding %s.%s: unsupported value %T", k.Name, key, val)
		}
	}
	return k.Normalize(v), nil
}

// EncodeTOML writes v as a TOML table, flags as booleans.
func (k *Kind) EncodeTOML(v Values) ([]byte, error) {
	out := make(map[string]any, len(k.Params))
	for _, p := range k.Params {
		if p.Unit == Flag {
			out[p.Key] = v.Bool(p.Key)
		} else {
			out[p.Key] = v[p.Key]
		}
	}
	return toml.Marshal(out)
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

// LoadParams reads a parameter file. Files ending in .toml are TOML,
// anything else is YAML.
func (k *Kind) LoadParams(path string) (Values, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if isTOML(path) {
		return k.DecodeTOML(data)
	}
	return k.Decode(data)
}

// SaveParams writes v to path in the format chosen by its extension.
func (k *Kind) SaveParams(path string, v Values) error {
	var (
		data []byte
		err  error
	)
	if isTOML(path) {
		data, err = k.EncodeTOML(v)
	} else {
		data, err = k.Encode(v)
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
