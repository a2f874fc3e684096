// Package report writes the ranked-candidates artifact and the run manifest,
// and prints the console summary for a filter run.
package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/AstraForge/skyhound-cli/internal/filter"
	"github.com/AstraForge/skyhound-cli/internal/ring"
	"github.com/AstraForge/skyhound-cli/internal/utils"
)

// WriteError reports an artifact that could not be written.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// Manifest records what a run did, next to its artifacts.
type Manifest struct {
	RunID      string            `json:"run_id"`
	Command    string            `json:"command"`
	CreatedAt  time.Time         `json:"created_at"`
	Input      string            `json:"input"`
	Thresholds filter.Thresholds `json:"thresholds"`
	Summary    filter.Summary    `json:"summary"`
	Artifacts  []string          `json:"artifacts"`
}

// NewManifest stamps a manifest with a fresh run ID and creation time.
func NewManifest(command, input string, t filter.Thresholds, s filter.Summary) *Manifest {
	return &Manifest{
		RunID:      uuid.NewString(),
		Command:    command,
		CreatedAt:  time.Now().UTC(),
		Input:      input,
		Thresholds: t,
		Summary:    s,
	}
}

// WriteManifest persists the manifest as indented JSON via an atomic rename.
func WriteManifest(path string, m *Manifest) error {
	b, err := utils.PrettyJSON(m)
	if err != nil {
		return &WriteError{Path: path, Err: err}
	}
	if err := utils.SafeWriteFile(path, b); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	return nil
}

// WriteCandidates writes the ranked survivor list as CSV: the canonical
// columns first, passthrough columns after, one row per survivor in rank
// order. An empty survivor set still produces a file with just the header.
func WriteCandidates(path string, survivors []ring.Record, extraCols []string) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := append([]string{"id", "lat", "lon", "hurst_I", "corr_IP"}, extraCols...)
	if err := w.Write(header); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	for _, r := range survivors {
		row := []string{
			r.ID,
			formatFloat(r.Lat),
			formatFloat(r.Lon),
			formatFloat(r.HurstI),
			formatFloat(r.CorrIP),
		}
		for _, c := range extraCols {
			row = append(row, r.Extra[c])
		}
		if err := w.Write(row); err != nil {
			return &WriteError{Path: path, Err: err}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	if err := utils.SafeWriteFile(path, buf.Bytes()); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	return nil
}

// ReadCandidates loads a previously written candidates artifact. Used by the
// chart-only render path, which has lat/lon already derived.
func ReadCandidates(path string) ([]ring.Record, error) {
	t, err := loadFlat(path)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func formatFloat(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// PrintSummary writes the per-condition accounting for a run.
func PrintSummary(w io.Writer, s filter.Summary) {
	fmt.Fprintf(w, "Total rings:       %d\n", s.Total)
	if s.ExcludedByMask > 0 {
		fmt.Fprintf(w, "Excluded in-plane: %d\n", s.ExcludedByMask)
	}
	fmt.Fprintf(w, "Excluded by hurst: %d\n", s.ExcludedByHurst)
	fmt.Fprintf(w, "Excluded by corr:  %d\n", s.ExcludedByCorr)
	if s.FallbackApplied {
		fmt.Fprintf(w, "Policy applied:    %s (primary cut left nothing)\n", s.Policy)
	} else {
		fmt.Fprintf(w, "Policy applied:    %s\n", s.Policy)
	}
	fmt.Fprintf(w, "Candidates:        %d\n", s.Survivors)
}

// PrintTop writes the n strongest survivors. The slice is already ranked.
func PrintTop(w io.Writer, survivors []ring.Record, n int) {
	if len(survivors) == 0 {
		return
	}
	if n > len(survivors) {
		n = len(survivors)
	}
	fmt.Fprintf(w, "\nTop %d by corr_IP:\n", n)
	for i := 0; i < n; i++ {
		r := survivors[i]
		fmt.Fprintf(w, "  %2d. ring %-8s lat %8.3f  lon %8.3f  hurst_I %.4f  corr_IP %.4f\n",
			i+1, r.ID, r.Lat, r.Lon, r.HurstI, r.CorrIP)
	}
}
