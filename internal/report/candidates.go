package report

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/AstraForge/skyhound-cli/internal/ring"
)

// loadFlat parses a candidates CSV, which carries lat/lon directly instead
// of scan angles. Shares the LoadError taxonomy with the metrics loader.
func loadFlat(path string) ([]ring.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &ring.LoadError{Path: path, Err: err}
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &ring.LoadError{Path: path, Err: errors.New("empty table")}
		}
		return nil, &ring.LoadError{Path: path, Err: fmt.Errorf("read header: %w", err)}
	}
	col := map[string]int{}
	for i, h := range header {
		col[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, need := range []string{"id", "lat", "lon", "corr_ip"} {
		if _, ok := col[need]; !ok {
			return nil, &ring.LoadError{Path: path, Err: fmt.Errorf("missing required column %q", need)}
		}
	}

	var recs []ring.Record
	row := 0
	for {
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, &ring.LoadError{Path: path, Row: row + 1, Err: err}
		}
		row++
		get := func(name string) string {
			i, ok := col[name]
			if !ok || i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}
		lat, err := parseFlat(get("lat"), "lat", row, path)
		if err != nil {
			return nil, err
		}
		lon, err := parseFlat(get("lon"), "lon", row, path)
		if err != nil {
			return nil, err
		}
		corr, err := parseFlat(get("corr_ip"), "corr_IP", row, path)
		if err != nil {
			return nil, err
		}
		hurst := math.NaN()
		if v := get("hurst_i"); v != "" {
			hurst, err = parseFlat(v, "hurst_I", row, path)
			if err != nil {
				return nil, err
			}
		}
		recs = append(recs, ring.Record{
			ID:     get("id"),
			Lat:    lat,
			Lon:    lon,
			HurstI: hurst,
			CorrIP: corr,
		})
	}
	return recs, nil
}

func parseFlat(s, name string, row int, path string) (float64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, &ring.LoadError{Path: path, Row: row, Err: fmt.Errorf("column %s: not numeric: %q", name, s)}
	}
	return f, nil
}
