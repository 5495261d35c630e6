package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/san-kum/orbitsim/internal/nbody"
)

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// WriteCSV writes one row per step: the step index, the time in seconds and
// x, y, z in metres for every body, star first.
func WriteCSV(w io.Writer, h *nbody.History) error {
	cw := csv.NewWriter(w)

	header := []string{"step", "time"}
	for _, name := range h.Names() {
		header = append(header, name+"_x", name+"_y", name+"_z")
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	tracks := h.Trajectories()
	row := make([]string, 0, len(header))
	for i := 0; i < h.Len(); i++ {
		row = append(row[:0], strconv.Itoa(i), formatFloat(h.Time(i)))
		for _, tr := range tracks {
			p := tr.At(i)
			row = append(row, formatFloat(p[0]), formatFloat(p[1]), formatFloat(p[2]))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
