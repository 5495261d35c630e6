package export

import (
	"encoding/json"
	"io"

	"github.com/san-kum/orbitsim/internal/nbody"
)

// RunData is the JSON document written by WriteJSON.
type RunData struct {
	Meta
	Times  []float64   `json:"times"`
	Tracks []TrackData `json:"tracks"`
}

type TrackData struct {
	Name      string       `json:"name"`
	Positions [][3]float64 `json:"positions"`
}

// NewRunData copies h into a serialisable form.
func NewRunData(meta Meta, h *nbody.History) RunData {
	data := RunData{Meta: meta, Times: h.Times()}
	for _, tr := range h.Trajectories() {
		td := TrackData{Name: tr.Name(), Positions: make([][3]float64, tr.Len())}
		for i := range td.Positions {
			td.Positions[i] = tr.At(i)
		}
		data.Tracks = append(data.Tracks, td)
	}
	return data
}

// WriteJSON encodes meta and every trajectory of h. Non-finite positions
// cannot be represented in JSON and make it fail.
func WriteJSON(w io.Writer, meta Meta, h *nbody.History) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(NewRunData(meta, h))
}
