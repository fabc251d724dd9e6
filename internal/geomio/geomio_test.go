package geomio

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	shp "github.com/jonas-p/go-shp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	geom "github.com/twpayne/go-geom"

	"github.com/sells-group/geodist/pkg/densify"
	"github.com/sells-group/geodist/pkg/geodesic"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadParts_GeoJSONGeometry(t *testing.T) {
	path := writeTemp(t, "line.geojson",
		`{"type":"LineString","coordinates":[[0,0],[1,0.5],[2,1]]}`)

	parts, err := ReadParts(path)
	require.NoError(t, err)
	require.Len(t, parts, 1)
	require.Len(t, parts[0], 3)

	// GeoJSON coordinates are (lon, lat).
	assert.Equal(t, geodesic.Point{Lat: 0.5, Lon: 1}, parts[0][1])
}

func TestReadParts_GeoJSONFeature(t *testing.T) {
	path := writeTemp(t, "feature.geojson",
		`{"type":"Feature","properties":{},"geometry":{"type":"MultiLineString","coordinates":[[[0,0],[1,1]],[[2,2],[3,3]]]}}`)

	parts, err := ReadParts(path)
	require.NoError(t, err)
	require.Len(t, parts, 2)
	assert.Equal(t, geodesic.Point{Lat: 3, Lon: 3}, parts[1][1])
}

func TestReadParts_GeoJSONFeatureCollection(t *testing.T) {
	path := writeTemp(t, "collection.json",
		`{"type":"FeatureCollection","features":[`+
			`{"type":"Feature","properties":{},"geometry":{"type":"LineString","coordinates":[[0,0],[1,1]]}},`+
			`{"type":"Feature","properties":{},"geometry":{"type":"LineString","coordinates":[[5,5],[6,6]]}}]}`)

	parts, err := ReadParts(path)
	require.NoError(t, err)
	require.Len(t, parts, 2)
	assert.Equal(t, geodesic.Point{Lat: 5, Lon: 5}, parts[1][0])
}

func TestReadParts_WKT(t *testing.T) {
	path := writeTemp(t, "lines.wkt",
		"MULTILINESTRING ((0 0, 1 1), (2 2, 3 3))\n")

	parts, err := ReadParts(path)
	require.NoError(t, err)
	require.Len(t, parts, 2)
	assert.Equal(t, geodesic.Point{Lat: 1, Lon: 1}, parts[0][1])
}

func TestReadParts_RejectsUnknownExtension(t *testing.T) {
	path := writeTemp(t, "points.csv", "0,0\n1,1\n")

	_, err := ReadParts(path)
	var formatErr *UnsupportedFormatError
	require.ErrorAs(t, err, &formatErr)
	assert.Equal(t, ".csv", formatErr.Extension)
}

func TestPartsFromGeom_PolygonRingsBecomeParts(t *testing.T) {
	poly := geom.NewPolygon(geom.XY)
	exterior := geom.NewLinearRingFlat(geom.XY, []float64{0, 0, 1, 0, 1, 1, 0, 1, 0, 0})
	hole := geom.NewLinearRingFlat(geom.XY, []float64{0.2, 0.2, 0.2, 0.8, 0.8, 0.8, 0.8, 0.2, 0.2, 0.2})
	require.NoError(t, poly.Push(exterior))
	require.NoError(t, poly.Push(hole))

	parts, err := PartsFromGeom(poly)
	require.NoError(t, err)
	require.Len(t, parts, 2)
	assert.Len(t, parts[0], 5)
	assert.Len(t, parts[1], 5)
}

func TestPartsFromGeom_RejectsPoint(t *testing.T) {
	point := geom.NewPointFlat(geom.XY, []float64{1, 2})

	_, err := PartsFromGeom(point)
	var geomErr *UnsupportedGeometryError
	require.ErrorAs(t, err, &geomErr)
	assert.Contains(t, geomErr.Type, "Point")
}

func TestSplitShapeParts_MultiPart(t *testing.T) {
	points := []shp.Point{
		{X: -80.0, Y: 25.0},
		{X: -80.1, Y: 25.1},
		{X: -80.2, Y: 25.2},
		{X: 10.0, Y: 50.0},
		{X: 10.1, Y: 50.1},
	}

	parts := splitShapeParts(2, []int32{0, 3}, points)
	require.Len(t, parts, 2)
	assert.Len(t, parts[0], 3)
	assert.Len(t, parts[1], 2)

	// Shapefile points are (X=lon, Y=lat).
	assert.Equal(t, geodesic.Point{Lat: 25.1, Lon: -80.1}, parts[0][1])
	assert.Equal(t, geodesic.Point{Lat: 50.0, Lon: 10.0}, parts[1][0])
}

func TestPolylineRoundTrip(t *testing.T) {
	original := []geodesic.Point{
		{Lat: 38.5, Lon: -120.2},
		{Lat: 40.7, Lon: -120.95},
		{Lat: 43.252, Lon: -126.453},
	}

	decoded, err := DecodePolyline(EncodePolyline(original))
	require.NoError(t, err)
	require.Len(t, decoded, len(original))
	for i := range original {
		assert.InDelta(t, original[i].Lat, decoded[i].Lat, 1e-5)
		assert.InDelta(t, original[i].Lon, decoded[i].Lon, 1e-5)
	}
}

func TestDecodePolyline_KnownEncoding(t *testing.T) {
	// Reference encoding from the polyline algorithm documentation.
	points, err := DecodePolyline("_p~iF~ps|U_ulLnnqC_mqNvxq`@")
	require.NoError(t, err)
	require.Len(t, points, 3)
	assert.InDelta(t, 38.5, points[0].Lat, 1e-5)
	assert.InDelta(t, -120.2, points[0].Lon, 1e-5)
}

func TestWriteGeoJSON_SkipsEmptyParts(t *testing.T) {
	flat, err := densify.DensifyMulti([][]geodesic.Point{
		{{Lat: 0, Lon: 0}, {Lat: 0, Lon: 0.001}},
		{{Lat: 10, Lon: 0}, {Lat: 10, Lon: 0.001}},
	}, densify.Options{MaxSegmentLengthMeters: 1_000, SampleCap: 10_000})
	require.NoError(t, err)

	box, err := geodesic.NewBoundingBox(-1, 1, -1, 1)
	require.NoError(t, err)
	clipped, err := flat.Clip(box)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteGeoJSON(&buf, clipped))

	assert.Contains(t, buf.String(), `"MultiLineString"`)

	// Round-trip through the reader: only the surviving part remains.
	path := writeTemp(t, "out.geojson", buf.String())
	parts, err := ReadParts(path)
	require.NoError(t, err)
	assert.Len(t, parts, 1)
}
