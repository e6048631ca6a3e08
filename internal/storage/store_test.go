package storage

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/gmifflen/planetsim/internal/config"
	"github.com/gmifflen/planetsim/internal/orbit"
	"github.com/gmifflen/planetsim/internal/sim"
)

func earthResult(t *testing.T) *sim.Result {
	t.Helper()
	sys, err := config.GetPreset("earth").BuildSystem()
	if err != nil {
		t.Fatal(err)
	}
	result, err := sim.New(sys).Run(context.Background(),
		sim.Config{Dt: orbit.SecondsPerDay, Steps: 20})
	if err != nil {
		t.Fatal(err)
	}
	return result
}

func TestSaveLoadRoundtrip(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	result := earthResult(t)
	runID, err := st.Save("earth", orbit.SecondsPerDay, "euler", true, result)
	if err != nil {
		t.Fatal(err)
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatal(err)
	}
	if meta.Scenario != "earth" || meta.Steps != 20 || !meta.FixedStar {
		t.Errorf("unexpected metadata %+v", meta)
	}
	if len(meta.Bodies) != 2 || meta.Bodies[0] != "Sun" {
		t.Errorf("unexpected bodies %v", meta.Bodies)
	}

	loaded, err := st.LoadResult(runID)
	if err != nil {
		t.Fatal(err)
	}
	if len(loaded.Frames) != len(result.Frames) {
		t.Fatalf("frame count mismatch: %d vs %d", len(loaded.Frames), len(result.Frames))
	}
	for i := range result.Frames {
		for j := range result.Frames[i] {
			if loaded.Frames[i][j] != result.Frames[i][j] {
				t.Fatalf("frame %d body %d mismatch: %+v vs %+v",
					i, j, loaded.Frames[i][j], result.Frames[i][j])
			}
		}
	}
}

func TestList(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}

	result := earthResult(t)
	if _, err := st.Save("earth", orbit.SecondsPerDay, "euler", true, result); err != nil {
		t.Fatal(err)
	}
	if _, err := st.Save("inner", orbit.SecondsPerDay, "leapfrog", true, result); err != nil {
		t.Fatal(err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 2 {
		t.Errorf("expected 2 runs, got %d", len(runs))
	}
}

func TestImportCSVRejectsMalformedHeader(t *testing.T) {
	if _, err := ImportCSV(strings.NewReader("time,only_one\n0,1\n")); err == nil {
		t.Error("expected error for malformed header")
	}
}

func TestExportJSON(t *testing.T) {
	result := earthResult(t)
	meta := &RunMetadata{ID: "earth_1", Scenario: "earth", Bodies: result.Names}

	var buf bytes.Buffer
	if err := ExportJSON(&buf, meta, result); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, `"scenario": "earth"`) {
		t.Errorf("metadata missing from export: %s", out[:120])
	}
	if !strings.Contains(out, `"Frames"`) {
		t.Error("trajectory missing from export")
	}
}
