package export

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/propforge/internal/assets"
	"github.com/Faultbox/propforge/pkg/binpack"
)

// AtlasReport is the YAML form of a packing.
type AtlasReport struct {
	Name       string            `yaml:"name"`
	Size       float64           `yaml:"size"`
	Padding    float64           `yaml:"padding"`
	Used       float64           `yaml:"used"`
	Attempts   []float64         `yaml:"attempts,flow"`
	Placements []PlacementReport `yaml:"placements"`
}

// PlacementReport describes one packed footprint.
type PlacementReport struct {
	Owner   string     `yaml:"owner"`
	Face    int        `yaml:"face"`
	Width   float64    `yaml:"width"`
	Height  float64    `yaml:"height"`
	X       float64    `yaml:"x"`
	Y       float64    `yaml:"y"`
	Rotated bool       `yaml:"rotated,omitempty"`
	Placed  bool       `yaml:"placed"`
	UV      [9]float32 `yaml:"uv,flow"`
}

// NewAtlasReport summarizes a packing.
func NewAtlasReport(name string, res *binpack.Result) AtlasReport {
	size, _ := res.Size()
	r := AtlasReport{
		Name:     name,
		Size:     size,
		Padding:  res.Padding(),
		Used:     res.Used(),
		Attempts: res.Attempts,
	}
	for _, p := range res.Placements() {
		r.Placements = append(r.Placements, PlacementReport{
			Owner:   p.Request.Owner,
			Face:    p.Request.Face,
			Width:   p.Request.Width,
			Height:  p.Request.Height,
			X:       p.Rect.X,
			Y:       p.Rect.Y,
			Rotated: p.Rect.Rotated,
			Placed:  p.Positioned,
			UV:      p.UV,
		})
	}
	return r
}

// WriteAtlasReport writes the atlases of an asset as a YAML list.
func WriteAtlasReport(w io.Writer, atlases []assets.Atlas) error {
	reports := make([]AtlasReport, 0, len(atlases))
	for _, a := range atlases {
		reports = append(reports, NewAtlasReport(a.Name, a.Result))
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(reports); err != nil {
		return fmt.Errorf("encoding atlas report: %w", err)
	}
	return enc.Close()
}

// ReadAtlasReport parses a report written by WriteAtlasReport.
func ReadAtlasReport(r io.Reader) ([]AtlasReport, error) {
	var reports []AtlasReport
	if err := yaml.NewDecoder(r).Decode(&reports); err != nil {
		return nil, fmt.Errorf("decoding atlas report: %w", err)
	}
	return reports, nil
}
