package skymap_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/AstraForge/skyhound-cli/internal/ring"
	"github.com/AstraForge/skyhound-cli/internal/skymap"
)

func sampleRecords() []ring.Record {
	return []ring.Record{
		{ID: "647", Lat: -57.3, Lon: 123.4, HurstI: 0.87, CorrIP: 0.29},
		{ID: "648", Lat: 41.0, Lon: -15.0, HurstI: 0.82, CorrIP: -0.21},
		{ID: "649", Lat: 5.0, Lon: 60.0, HurstI: 0.40, CorrIP: 0.05},
	}
}

func TestRenderWritesPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sky_map.png")
	all := sampleRecords()
	err := skymap.Render(path, all, all[:2], skymap.Options{
		Title:       "test map",
		GalacticCut: 20,
		LabelTop:    2,
	})
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Greater(t, info.Size(), int64(0))
}

func TestRenderEmptyHighlight(t *testing.T) {
	// A null result still produces a chart, just with no highlighted rings.
	path := filepath.Join(t.TempDir(), "empty.png")
	err := skymap.Render(path, sampleRecords(), nil, skymap.Options{Title: "no candidates"})
	require.NoError(t, err)

	_, err = os.Stat(path)
	require.NoError(t, err)
}

func TestRenderBadPath(t *testing.T) {
	err := skymap.Render(filepath.Join(t.TempDir(), "missing", "dir", "x.png"), sampleRecords(), nil, skymap.Options{})
	require.Error(t, err)
}
