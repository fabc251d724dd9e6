package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/geodist/pkg/geodesic"
)

func TestParsePoint(t *testing.T) {
	tests := []struct {
		name    string
		arg     string
		want    geodesic.Point
		wantErr bool
	}{
		{"simple", "40.7128,-74.0060", geodesic.Point{Lat: 40.7128, Lon: -74.0060}, false},
		{"spaces", " 51.5074 , -0.1278 ", geodesic.Point{Lat: 51.5074, Lon: -0.1278}, false},
		{"missing field", "40.7128", geodesic.Point{}, true},
		{"too many fields", "1,2,3", geodesic.Point{}, true},
		{"non-numeric", "abc,def", geodesic.Point{}, true},
		{"out of range", "91,0", geodesic.Point{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parsePoint(tt.arg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseBBox(t *testing.T) {
	box, err := parseBBox("-10,10,-20,20")
	require.NoError(t, err)
	assert.True(t, box.Contains(geodesic.Point{Lat: 0, Lon: 0}))
	assert.False(t, box.Contains(geodesic.Point{Lat: 15, Lon: 0}))

	_, err = parseBBox("-10,10,-20")
	assert.Error(t, err)

	// Inverted ordering is rejected by the box constructor.
	_, err = parseBBox("10,-10,-20,20")
	assert.Error(t, err)
}

func TestReadPairsCSV(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pairs.csv")
	content := "0,0,0,1\n51.5074,-0.1278,40.7128,-74.0060\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	pairs, err := readPairsCSV(path)
	require.NoError(t, err)
	require.Len(t, pairs, 2)
	assert.Equal(t, geodesic.Point{Lat: 51.5074, Lon: -0.1278}, pairs[1].From)
}

func TestReadPairsCSV_RejectsShortRow(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pairs.csv")
	require.NoError(t, os.WriteFile(path, []byte("0,0,0\n"), 0o644))

	_, err := readPairsCSV(path)
	assert.Error(t, err)
}

func TestReadPairsCSV_RejectsInvalidCoordinates(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pairs.csv")
	require.NoError(t, os.WriteFile(path, []byte("95,0,0,1\n"), 0o644))

	_, err := readPairsCSV(path)
	assert.Error(t, err)
}
