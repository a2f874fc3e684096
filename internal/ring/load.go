package ring

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// LoadError reports a missing or malformed metrics table.
// Row is 1-based over data rows; 0 means a file-level problem.
type LoadError struct {
	Path string
	Row  int
	Err  error
}

func (e *LoadError) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf("load %s: row %d: %v", e.Path, e.Row, e.Err)
	}
	return fmt.Sprintf("load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Header aliases accepted for each required column. The scan pipeline has
// written both "id" and "id_anillo" over time.
var requiredCols = map[string][]string{
	"id":      {"id", "id_anillo", "ring_id"},
	"theta":   {"theta"},
	"phi":     {"phi"},
	"hurst_I": {"hurst_I"},
	"corr_IP": {"corr_IP"},
}

// Load reads a metrics table from a CSV/TSV file. The delimiter is
// auto-detected among ',', ';' and tab from the header line. Metric values
// may be empty or "nan" (upstream emits those for degenerate rings); they
// load as NaN and never pass a threshold. Theta and phi must be finite.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	defer f.Close()
	t, err := Read(f)
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			le.Path = path
			return nil, le
		}
		return nil, &LoadError{Path: path, Err: err}
	}
	return t, nil
}

// Read parses a metrics table from r. Exposed separately from Load so tests
// and future pipes can feed tables without touching disk.
func Read(r io.Reader) (*Table, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, &LoadError{Err: fmt.Errorf("read: %w", err)}
	}
	cr := csv.NewReader(strings.NewReader(string(b)))
	cr.Comma = sniffDelimiter(string(b))
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &LoadError{Err: errors.New("empty table")}
		}
		return nil, &LoadError{Err: fmt.Errorf("read header: %w", err)}
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	idx, extraCols, err := resolveColumns(header)
	if err != nil {
		return nil, &LoadError{Err: err}
	}

	var recs []Record
	row := 0
	for {
		rec, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, &LoadError{Row: row + 1, Err: err}
		}
		row++
		if len(rec) < len(header) {
			tmp := make([]string, len(header))
			copy(tmp, rec)
			rec = tmp
		}

		theta, err := parseFinite(rec[idx["theta"]], "theta")
		if err != nil {
			return nil, &LoadError{Row: row, Err: err}
		}
		phi, err := parseFinite(rec[idx["phi"]], "phi")
		if err != nil {
			return nil, &LoadError{Row: row, Err: err}
		}
		hurst, err := parseMetric(rec[idx["hurst_I"]], "hurst_I")
		if err != nil {
			return nil, &LoadError{Row: row, Err: err}
		}
		corr, err := parseMetric(rec[idx["corr_IP"]], "corr_IP")
		if err != nil {
			return nil, &LoadError{Row: row, Err: err}
		}

		lat, lon := LatLon(theta, phi)
		out := Record{
			ID:     strings.TrimSpace(rec[idx["id"]]),
			Theta:  theta,
			Phi:    phi,
			HurstI: hurst,
			CorrIP: corr,
			Lat:    lat,
			Lon:    lon,
		}
		if len(extraCols) > 0 {
			out.Extra = make(map[string]string, len(extraCols))
			for _, c := range extraCols {
				out.Extra[c.name] = strings.TrimSpace(rec[c.index])
			}
		}
		recs = append(recs, out)
	}
	if len(recs) == 0 {
		return nil, &LoadError{Err: errors.New("table has no data rows")}
	}

	names := make([]string, len(extraCols))
	for i, c := range extraCols {
		names[i] = c.name
	}
	return &Table{Records: recs, ExtraCols: names}, nil
}

type extraCol struct {
	name  string
	index int
}

func resolveColumns(header []string) (map[string]int, []extraCol, error) {
	idx := make(map[string]int, len(requiredCols))
	claimed := make(map[int]bool)
	for canonical, aliases := range requiredCols {
		found := -1
		for i, h := range header {
			for _, a := range aliases {
				if strings.EqualFold(h, a) {
					found = i
					break
				}
			}
			if found >= 0 {
				break
			}
		}
		if found < 0 {
			return nil, nil, fmt.Errorf("missing required column %q", canonical)
		}
		idx[canonical] = found
		claimed[found] = true
	}
	var extras []extraCol
	for i, h := range header {
		if !claimed[i] && h != "" {
			extras = append(extras, extraCol{name: h, index: i})
		}
	}
	return idx, extras, nil
}

// parseFinite parses a coordinate value that must be a finite number.
func parseFinite(s, col string) (float64, error) {
	v := strings.TrimSpace(s)
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("column %s: not numeric: %q", col, v)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("column %s: not finite: %q", col, v)
	}
	return f, nil
}

// parseMetric parses a score value; empty and "nan" become NaN.
func parseMetric(s, col string) (float64, error) {
	v := strings.TrimSpace(s)
	if v == "" || strings.EqualFold(v, "nan") {
		return math.NaN(), nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("column %s: not numeric: %q", col, v)
	}
	return f, nil
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
