package storage

import (
	"io"

	"github.com/gocarina/gocsv"

	"github.com/san-kum/golfsim/internal/ballistics"
)

// SampleRecord is one CSV row of a trajectory.
type SampleRecord struct {
	T  float64 `csv:"t" json:"t"`
	X  float64 `csv:"x" json:"x"`
	Y  float64 `csv:"y" json:"y"`
	VX float64 `csv:"vx" json:"vx"`
	VY float64 `csv:"vy" json:"vy"`
}

func WriteSamples(w io.Writer, samples []ballistics.Sample) error {
	records := make([]*SampleRecord, len(samples))
	for i, s := range samples {
		records[i] = &SampleRecord{T: s.T, X: s.X, Y: s.Y, VX: s.VX, VY: s.VY}
	}
	return gocsv.Marshal(records, w)
}

func ReadSamples(r io.Reader) ([]ballistics.Sample, error) {
	var records []*SampleRecord
	if err := gocsv.Unmarshal(r, &records); err != nil {
		return nil, err
	}
	samples := make([]ballistics.Sample, len(records))
	for i, rec := range records {
		samples[i] = ballistics.Sample{T: rec.T, X: rec.X, Y: rec.Y, VX: rec.VX, VY: rec.VY}
	}
	return samples, nil
}
