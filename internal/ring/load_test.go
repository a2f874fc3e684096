package ring_test

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/AstraForge/skyhound-cli/internal/ring"
)

func writeTable(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "metrics.csv")
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return p
}

func TestLoadMetricsTable(t *testing.T) {
	content := "id_anillo,theta,phi,radio,hurst_I,entropy_I,corr_IP\n" +
		"647,0.7853981633974483,3.141592653589793,12.5,0.87,1.92,0.291\n" +
		"648,1.5707963267948966,0,8.0,0.55,2.10,-0.12\n"
	tbl, err := ring.Load(writeTable(t, content))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(tbl.Records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(tbl.Records))
	}
	r := tbl.Records[0]
	if r.ID != "647" {
		t.Errorf("id_anillo alias not honored: got %q", r.ID)
	}
	if math.Abs(r.Lat-45) > 1e-9 {
		t.Errorf("lat: got %v, want 45", r.Lat)
	}
	if math.Abs(r.Lon-0) > 1e-9 {
		t.Errorf("lon: got %v, want 0", r.Lon)
	}
	if got := tbl.ExtraCols; len(got) != 2 || got[0] != "radio" || got[1] != "entropy_I" {
		t.Errorf("passthrough columns: got %v", got)
	}
	if r.Extra["radio"] != "12.5" {
		t.Errorf("passthrough value: got %q", r.Extra["radio"])
	}
	if tbl.Records[1].Lat != 0 {
		t.Errorf("equator lat: got %v", tbl.Records[1].Lat)
	}
	if math.Abs(tbl.Records[1].Lon+180) > 1e-9 {
		t.Errorf("phi=0 lon: got %v, want -180", tbl.Records[1].Lon)
	}
}

func TestLoadSemicolonDelimiter(t *testing.T) {
	content := "id;theta;phi;hurst_I;corr_IP\n" +
		"a;1.0;1.0;0.9;0.3\n"
	tbl, err := ring.Load(writeTable(t, content))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(tbl.Records) != 1 || tbl.Records[0].CorrIP != 0.3 {
		t.Fatalf("semicolon table not parsed: %+v", tbl.Records)
	}
}

func TestLoadMissingColumn(t *testing.T) {
	content := "id,theta,phi,corr_IP\na,1,1,0.3\n"
	_, err := ring.Load(writeTable(t, content))
	var le *ring.LoadError
	if !errors.As(err, &le) {
		t.Fatalf("expected LoadError, got %v", err)
	}
	if !strings.Contains(le.Error(), "hurst_I") {
		t.Errorf("error should name the missing column: %v", le)
	}
}

func TestLoadBadCoordinate(t *testing.T) {
	content := "id,theta,phi,hurst_I,corr_IP\na,not-a-number,1,0.9,0.3\n"
	_, err := ring.Load(writeTable(t, content))
	var le *ring.LoadError
	if !errors.As(err, &le) {
		t.Fatalf("expected LoadError, got %v", err)
	}
	if le.Row != 1 {
		t.Errorf("row: got %d, want 1", le.Row)
	}
}

func TestLoadEmptyTable(t *testing.T) {
	for _, content := range []string{"", "id,theta,phi,hurst_I,corr_IP\n"} {
		if _, err := ring.Load(writeTable(t, content)); err == nil {
			t.Errorf("expected error for content %q", content)
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := ring.Load(filepath.Join(t.TempDir(), "nope.csv"))
	var le *ring.LoadError
	if !errors.As(err, &le) {
		t.Fatalf("expected LoadError, got %v", err)
	}
}

func TestMetricNaNValues(t *testing.T) {
	// Degenerate rings come out of the scan with empty or "nan" scores.
	content := "id,theta,phi,hurst_I,corr_IP\n" +
		"a,1.0,1.0,,0.3\n" +
		"b,1.0,1.0,nan,0.3\n"
	tbl, err := ring.Load(writeTable(t, content))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	for _, r := range tbl.Records {
		if !math.IsNaN(r.HurstI) {
			t.Errorf("ring %s: hurst should be NaN, got %v", r.ID, r.HurstI)
		}
	}
}

func TestLatLon(t *testing.T) {
	cases := []struct {
		theta, phi float64
		lat, lon   float64
	}{
		{0, 0, 90, -180},
		{math.Pi / 2, math.Pi, 0, 0},
		{math.Pi, math.Pi, -90, 0},
		{math.Pi / 4, 3 * math.Pi / 2, 45, 90},
		{2 * math.Pi / 3, math.Pi / 2, -30, -90},
	}
	for _, c := range cases {
		lat, lon := ring.LatLon(c.theta, c.phi)
		if math.Abs(lat-c.lat) > 1e-9 || math.Abs(lon-c.lon) > 1e-9 {
			t.Errorf("LatLon(%v, %v) = (%v, %v), want (%v, %v)", c.theta, c.phi, lat, lon, c.lat, c.lon)
		}
	}
}
