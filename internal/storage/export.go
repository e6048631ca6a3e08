package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gmifflen/planetsim/internal/orbit"
	"github.com/gmifflen/planetsim/internal/sim"
)

// columnsPerBody is x, y, vx, vy, dist.
const columnsPerBody = 5

// ExportCSV writes a trajectory as one row per sample: the time column
// followed by five columns per body.
func ExportCSV(w io.Writer, result *sim.Result) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{"time"}
	for _, name := range result.Names {
		header = append(header,
			name+"_x", name+"_y", name+"_vx", name+"_vy", name+"_dist")
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for i, frame := range result.Frames {
		row := make([]string, 0, len(header))
		row = append(row, strconv.FormatFloat(result.Times[i], 'g', -1, 64))
		for _, bs := range frame {
			row = append(row,
				strconv.FormatFloat(bs.Pos.X, 'g', -1, 64),
				strconv.FormatFloat(bs.Pos.Y, 'g', -1, 64),
				strconv.FormatFloat(bs.Vel.X, 'g', -1, 64),
				strconv.FormatFloat(bs.Vel.Y, 'g', -1, 64),
				strconv.FormatFloat(bs.DistToStar, 'g', -1, 64))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	return nil
}

// ImportCSV is the inverse of ExportCSV.
func ImportCSV(r io.Reader) (*sim.Result, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("storage: empty trajectory file")
	}

	header := records[0]
	if len(header) < 1+columnsPerBody || (len(header)-1)%columnsPerBody != 0 {
		return nil, fmt.Errorf("storage: malformed header with %d columns", len(header))
	}

	numBodies := (len(header) - 1) / columnsPerBody
	names := make([]string, 0, numBodies)
	for b := 0; b < numBodies; b++ {
		names = append(names, strings.TrimSuffix(header[1+b*columnsPerBody], "_x"))
	}

	result := &sim.Result{
		Names:  names,
		Times:  make([]float64, 0, len(records)-1),
		Frames: make([][]sim.BodyState, 0, len(records)-1),
	}

	for _, record := range records[1:] {
		if len(record) != len(header) {
			return nil, fmt.Errorf("storage: row has %d columns, want %d", len(record), len(header))
		}
		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			return nil, err
		}

		frame := make([]sim.BodyState, 0, numBodies)
		for b := 0; b < numBodies; b++ {
			vals := make([]float64, columnsPerBody)
			for k := range vals {
				vals[k], err = strconv.ParseFloat(record[1+b*columnsPerBody+k], 64)
				if err != nil {
					return nil, err
				}
			}
			frame = append(frame, sim.BodyState{
				Pos:        orbit.Vec2{X: vals[0], Y: vals[1]},
				Vel:        orbit.Vec2{X: vals[2], Y: vals[3]},
				DistToStar: vals[4],
			})
		}

		result.Times = append(result.Times, t)
		result.Frames = append(result.Frames, frame)
	}

	result.StepsTaken = len(result.Frames) - 1
	return result, nil
}

// ExportJSON writes metadata and trajectory as a single indented document.
func ExportJSON(w io.Writer, meta *RunMetadata, result *sim.Result) error {
	doc := struct {
		Meta   *RunMetadata `json:"meta"`
		Result *sim.Result  `json:"result"`
	}{meta, result}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
