package storage

import (
	"encoding/json"
	"io"
	"math/big"

	"github.com/san-kum/ratgrav/internal/exact"
)

type ExportData struct {
	Run    RunMetadata   `json:"run"`
	Frames []ExportFrame `json:"frames"`
}

type ExportFrame struct {
	Tick   int          `json:"tick"`
	Bodies []ExportBody `json:"bodies"`
}

// ExportBody carries each axis exactly (as "n/d" text) and approximately.
type ExportBody struct {
	Name     string            `json:"name"`
	Position [3]exact.Rational `json:"position"`
	Approx   [3]float64        `json:"approx"`
	Distance *big.Int          `json:"distance"`
}

// ExportJSON writes the run's metadata and every frame to w.
func (s *Store) ExportJSON(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	frames, err := s.LoadFrames(runID)
	if err != nil {
		return err
	}

	data := ExportData{
		Run:    *meta,
		Frames: make([]ExportFrame, len(frames)),
	}
	for i, f := range frames {
		ef := ExportFrame{Tick: f.Tick, Bodies: make([]ExportBody, len(f.Bodies))}
		for j, b := range f.Bodies {
			ef.Bodies[j] = ExportBody{
				Name:     b.Name,
				Position: [3]exact.Rational{b.Position.X, b.Position.Y, b.Position.Z},
				Approx:   b.Position.Floats(),
				Distance: b.Distance,
			}
		}
		data.Frames[i] = ef
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
