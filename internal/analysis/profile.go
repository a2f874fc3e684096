// Package analysis profiles a metrics table: per-column statistics and a
// Pearson correlation matrix across the numeric columns. It is the quick
// sanity pass run on a table before hunting in it.
package analysis

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Options controls profiling behavior.
type Options struct {
	// Delimiter for CSV. If 0, auto-detects among ',', ';', '\t'.
	Delimiter rune
	// Correlations computes the Pearson matrix among numeric columns.
	Correlations bool
}

// DefaultOptions returns the defaults used by the inspect command.
func DefaultOptions() Options {
	return Options{Correlations: true}
}

// Report is a profile of a tabular dataset.
type Report struct {
	Name string
	Rows int
	Cols []ColumnSummary
	Corr *CorrMatrix
}

// ColumnSummary captures inferred type and statistics per column.
type ColumnSummary struct {
	Name    string
	Numeric bool
	NonNull int
	Missing int
	Min     float64
	Max     float64
	Mean    float64
	Std     float64
}

// CorrMatrix holds a symmetric Pearson correlation matrix.
type CorrMatrix struct {
	Columns []string
	Values  [][]float64 // row-major, Values[i][j]
}

// AnalyzeCSV profiles a CSV file and returns a Report.
func AnalyzeCSV(path string, opt Options) (*Report, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	delim := opt.Delimiter
	if delim == 0 {
		delim = sniffDelimiter(string(b))
	}
	r := csv.NewReader(strings.NewReader(string(b)))
	r.Comma = delim
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty table")
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	ncol := len(header)
	names := make([]string, ncol)
	for i := range header {
		names[i] = strings.TrimSpace(header[i])
	}

	// Column values; NaN marks a missing or non-numeric cell.
	vals := make([][]float64, ncol)
	missing := make([]int, ncol)
	textCnt := make([]int, ncol)

	rep := &Report{Name: filepath.Base(path)}
	for {
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read row %d: %w", rep.Rows+1, err)
		}
		rep.Rows++
		for j := 0; j < ncol; j++ {
			var v string
			if j < len(rec) {
				v = strings.TrimSpace(rec[j])
			}
			if v == "" || strings.EqualFold(v, "nan") {
				missing[j]++
				vals[j] = append(vals[j], math.NaN())
				continue
			}
			if x, err := strconv.ParseFloat(v, 64); err == nil {
				vals[j] = append(vals[j], x)
			} else {
				textCnt[j]++
				vals[j] = append(vals[j], math.NaN())
			}
		}
	}

	for j := 0; j < ncol; j++ {
		cs := ColumnSummary{
			Name:    names[j],
			Missing: missing[j],
		}
		finite := compact(vals[j])
		cs.NonNull = rep.Rows - missing[j]
		// A column is numeric when every present value parsed.
		cs.Numeric = len(finite) > 0 && textCnt[j] == 0
		if cs.Numeric {
			cs.Min = floats.Min(finite)
			cs.Max = floats.Max(finite)
			cs.Mean = stat.Mean(finite, nil)
			if len(finite) > 1 {
				cs.Std = stat.StdDev(finite, nil)
			}
		}
		rep.Cols = append(rep.Cols, cs)
	}

	if opt.Correlations {
		rep.Corr = correlate(names, vals, rep.Cols)
	}
	return rep, nil
}

// correlate builds the Pearson matrix over numeric columns, pairwise over
// rows where both values are present.
func correlate(names []string, vals [][]float64, cols []ColumnSummary) *CorrMatrix {
	var numIdx []int
	for j, c := range cols {
		if c.Numeric {
			numIdx = append(numIdx, j)
		}
	}
	if len(numIdx) < 2 {
		return nil
	}
	cm := &CorrMatrix{Columns: make([]string, len(numIdx))}
	for i, j := range numIdx {
		cm.Columns[i] = names[j]
	}
	cm.Values = make([][]float64, len(numIdx))
	for i := range cm.Values {
		cm.Values[i] = make([]float64, len(numIdx))
		cm.Values[i][i] = 1
	}
	for a := 0; a < len(numIdx); a++ {
		for b := a + 1; b < len(numIdx); b++ {
			var xs, ys []float64
			va, vb := vals[numIdx[a]], vals[numIdx[b]]
			for k := range va {
				if !math.IsNaN(va[k]) && !math.IsNaN(vb[k]) {
					xs = append(xs, va[k])
					ys = append(ys, vb[k])
				}
			}
			r := math.NaN()
			if len(xs) > 1 {
				r = stat.Correlation(xs, ys, nil)
			}
			cm.Values[a][b] = r
			cm.Values[b][a] = r
		}
	}
	return cm
}

func compact(xs []float64) []float64 {
	out := make([]float64, 0, len(xs))
	for _, x := range xs {
		if !math.IsNaN(x) {
			out = append(out, x)
		}
	}
	return out
}

// Text renders a compact profile for the console.
func (r *Report) Text() string {
	var b strings.Builder
	b.WriteString("[TABLE PROFILE]\n")
	if r.Name != "" {
		fmt.Fprintf(&b, "File: %s\n", r.Name)
	}
	fmt.Fprintf(&b, "Rows: %d\n", r.Rows)
	fmt.Fprintf(&b, "Columns: %d\n\n", len(r.Cols))

	b.WriteString("[SCHEMA]\n")
	for _, c := range r.Cols {
		if c.Numeric {
			fmt.Fprintf(&b, "%s: numeric (min %.4g, max %.4g, mean %.4g, std %.4g, missing %d)\n",
				c.Name, c.Min, c.Max, c.Mean, c.Std, c.Missing)
		} else {
			fmt.Fprintf(&b, "%s: text (non-null %d, missing %d)\n", c.Name, c.NonNull, c.Missing)
		}
	}

	if r.Corr != nil {
		b.WriteString("\n[CORRELATIONS]\n")
		for i, a := range r.Corr.Columns {
			for j, cb := range r.Corr.Columns {
				if j <= i {
					continue
				}
				v := r.Corr.Values[i][j]
				if math.IsNaN(v) {
					continue
				}
				fmt.Fprintf(&b, "%s ~ %s: %+.3f\n", a, cb, v)
			}
		}
	}
	return b.String()
}

// sniffDelimiter inspects the header line for the delimiter that splits it
// into the most fields. Comma wins ties.
func sniffDelimiter(content string) rune {
	head := content
	if i := strings.IndexByte(head, '\n'); i >= 0 {
		head = head[:i]
	}
	best, bestCount := ',', strings.Count(head, ",")
	if n := strings.Count(head, ";"); n > bestCount {
		best, bestCount = ';', n
	}
	if n := strings.Count(head, "\t"); n > bestCount {
		best = '\t'
	}
	return best
}
