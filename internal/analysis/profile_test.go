package analysis_test

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/AstraForge/skyhound-cli/internal/analysis"
)

func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return p
}

func TestAnalyzeCSVProfile(t *testing.T) {
	content := "id,hurst_I,corr_IP,note\n" +
		"a,0.2,0.1,first\n" +
		"b,0.4,0.2,second\n" +
		"c,0.6,0.3,third\n" +
		"d,0.8,0.4,\n"
	rep, err := analysis.AnalyzeCSV(writeFixture(t, "m.csv", content), analysis.DefaultOptions())
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if rep.Rows != 4 {
		t.Fatalf("rows: got %d", rep.Rows)
	}
	if len(rep.Cols) != 4 {
		t.Fatalf("cols: got %d", len(rep.Cols))
	}

	hurst := rep.Cols[1]
	if !hurst.Numeric {
		t.Fatalf("hurst_I should be numeric: %+v", hurst)
	}
	if math.Abs(hurst.Mean-0.5) > 1e-9 {
		t.Errorf("hurst mean: got %v, want 0.5", hurst.Mean)
	}
	if hurst.Min != 0.2 || hurst.Max != 0.8 {
		t.Errorf("hurst range: got [%v, %v]", hurst.Min, hurst.Max)
	}

	note := rep.Cols[3]
	if note.Numeric {
		t.Errorf("note should be text: %+v", note)
	}
	if note.Missing != 1 {
		t.Errorf("note missing: got %d", note.Missing)
	}

	// hurst_I and corr_IP are perfectly linearly related in the fixture.
	if rep.Corr == nil {
		t.Fatal("expected correlation matrix")
	}
	found := false
	for i, a := range rep.Corr.Columns {
		for j, b := range rep.Corr.Columns {
			if a == "hurst_I" && b == "corr_IP" {
				found = true
				if math.Abs(rep.Corr.Values[i][j]-1) > 1e-9 {
					t.Errorf("corr(hurst_I, corr_IP): got %v, want 1", rep.Corr.Values[i][j])
				}
			}
		}
	}
	if !found {
		t.Errorf("matrix missing hurst_I/corr_IP pair: %v", rep.Corr.Columns)
	}

	text := rep.Text()
	for _, want := range []string{"[TABLE PROFILE]", "[SCHEMA]", "[CORRELATIONS]", "Rows: 4"} {
		if !strings.Contains(text, want) {
			t.Errorf("text report missing %q:\n%s", want, text)
		}
	}
}

func TestAnalyzeCSVMissingMetrics(t *testing.T) {
	// nan and empty cells count as missing, not as text.
	content := "id,hurst_I\na,0.5\nb,nan\nc,\n"
	rep, err := analysis.AnalyzeCSV(writeFixture(t, "m.csv", content), analysis.DefaultOptions())
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	h := rep.Cols[1]
	if !h.Numeric {
		t.Errorf("hurst_I should stay numeric with missing cells: %+v", h)
	}
	if h.Missing != 2 || h.NonNull != 1 {
		t.Errorf("missing accounting: %+v", h)
	}
}

func TestAnalyzeCSVSniffsSemicolon(t *testing.T) {
	content := "id;hurst_I\na;0.5\nb;0.7\n"
	rep, err := analysis.AnalyzeCSV(writeFixture(t, "m.csv", content), analysis.DefaultOptions())
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if len(rep.Cols) != 2 {
		t.Fatalf("delimiter sniff failed: %d cols", len(rep.Cols))
	}
	if !rep.Cols[1].Numeric || math.Abs(rep.Cols[1].Mean-0.6) > 1e-9 {
		t.Errorf("hurst stats: %+v", rep.Cols[1])
	}
}

func TestAnalyzeCSVEmpty(t *testing.T) {
	if _, err := analysis.AnalyzeCSV(writeFixture(t, "e.csv", ""), analysis.DefaultOptions()); err == nil {
		t.Error("expected error for empty file")
	}
}
