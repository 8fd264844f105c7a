package export

import (
	"encoding/json"
	"io"

	"github.com/san-kum/golfsim/internal/ballistics"
	"github.com/san-kum/golfsim/internal/storage"
)

type ExportData struct {
	Run      storage.RunMetadata    `json:"run"`
	Crossing ballistics.Point       `json:"ground_crossing"`
	Samples  []storage.SampleRecord `json:"samples"`
}

// JSON writes a run and its full sample table as indented JSON.
func JSON(w io.Writer, meta storage.RunMetadata, tr *ballistics.Trajectory) error {
	data := ExportData{
		Run:      meta,
		Crossing: tr.GroundCrossing(),
		Samples:  make([]storage.SampleRecord, len(tr.Samples)),
	}
	for i, s := range tr.Samples {
		data.Samples[i] = storage.SampleRecord{T: s.T, X: s.X, Y: s.Y, VX: s.VX, VY: s.VY}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
