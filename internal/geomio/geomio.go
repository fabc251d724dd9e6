// Package geomio loads multi-part polyline geometry from GeoJSON, WKT,
// shapefile, and encoded-polyline inputs, and writes densified results back
// out as GeoJSON. Coordinate validation happens downstream; readers only
// reshape into part lists.
package geomio

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	shp "github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"
	geom "github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
	"github.com/twpayne/go-geom/encoding/wkt"
	"github.com/twpayne/go-polyline"
	"go.uber.org/zap"

	"github.com/sells-group/geodist/pkg/densify"
	"github.com/sells-group/geodist/pkg/geodesic"
)

// UnsupportedGeometryError reports a geometry type that has no polyline
// interpretation.
type UnsupportedGeometryError struct {
	Type string
}

func (e *UnsupportedGeometryError) Error() string {
	return fmt.Sprintf("geomio: unsupported geometry type %q", e.Type)
}

// UnsupportedFormatError reports an input file whose extension maps to no
// known reader.
type UnsupportedFormatError struct {
	Extension string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("geomio: unsupported input format %q", e.Extension)
}

// ReadParts loads a geometry file and returns its parts as vertex lists.
// The reader is selected by extension: .geojson/.json, .wkt, or .shp.
func ReadParts(path string) ([][]geodesic.Point, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".geojson", ".json":
		return readGeoJSON(path)
	case ".wkt":
		return readWKT(path)
	case ".shp":
		return readShapefile(path)
	default:
		return nil, &UnsupportedFormatError{Extension: ext}
	}
}

func readGeoJSON(path string) ([][]geodesic.Point, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "geomio: read %s", path)
	}

	var envelope struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, eris.Wrapf(err, "geomio: parse %s", path)
	}

	switch envelope.Type {
	case "Feature":
		var feature geojson.Feature
		if err := json.Unmarshal(data, &feature); err != nil {
			return nil, eris.Wrapf(err, "geomio: parse feature %s", path)
		}
		return PartsFromGeom(feature.Geometry)

	case "FeatureCollection":
		var collection geojson.FeatureCollection
		if err := json.Unmarshal(data, &collection); err != nil {
			return nil, eris.Wrapf(err, "geomio: parse collection %s", path)
		}
		var parts [][]geodesic.Point
		for _, feature := range collection.Features {
			p, err := PartsFromGeom(feature.Geometry)
			if err != nil {
				return nil, err
			}
			parts = append(parts, p...)
		}
		return parts, nil

	default:
		var g geom.T
		if err := geojson.Unmarshal(data, &g); err != nil {
			return nil, eris.Wrapf(err, "geomio: parse geometry %s", path)
		}
		return PartsFromGeom(g)
	}
}

func readWKT(path string) ([][]geodesic.Point, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "geomio: read %s", path)
	}
	g, err := wkt.Unmarshal(strings.TrimSpace(string(data)))
	if err != nil {
		return nil, eris.Wrapf(err, "geomio: parse WKT %s", path)
	}
	return PartsFromGeom(g)
}

// readShapefile walks every record, splitting PolyLine and Polygon shapes
// into their native parts. Records without a usable shape are skipped.
func readShapefile(path string) ([][]geodesic.Point, error) {
	reader, err := shp.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "geomio: open shapefile %s", path)
	}
	defer func() { _ = reader.Close() }()

	var parts [][]geodesic.Point
	var skipped int

	for reader.Next() {
		_, shape := reader.Shape()

		switch s := shape.(type) {
		case *shp.PolyLine:
			parts = append(parts, splitShapeParts(s.NumParts, s.Parts, s.Points)...)
		case *shp.Polygon:
			parts = append(parts, splitShapeParts(s.NumParts, s.Parts, s.Points)...)
		default:
			skipped++
		}
	}

	if skipped > 0 {
		zap.L().Debug("geomio: skipped shapefile records",
			zap.String("path", path),
			zap.Int("skipped", skipped),
		)
	}

	return parts, nil
}

func splitShapeParts(numParts int32, offsets []int32, points []shp.Point) [][]geodesic.Point {
	parts := make([][]geodesic.Point, 0, numParts)
	for i := int32(0); i < numParts; i++ {
		start := offsets[i]
		end := int32(len(points))
		if i+1 < numParts {
			end = offsets[i+1]
		}

		vertices := make([]geodesic.Point, 0, end-start)
		for j := start; j < end; j++ {
			vertices = append(vertices, geodesic.Point{Lat: points[j].Y, Lon: points[j].X})
		}
		parts = append(parts, vertices)
	}
	return parts
}

// PartsFromGeom flattens a go-geom geometry into polyline parts. Polygons
// contribute each ring as a part; points are rejected.
func PartsFromGeom(g geom.T) ([][]geodesic.Point, error) {
	switch g := g.(type) {
	case *geom.LineString:
		return [][]geodesic.Point{coordsToPoints(g.Coords())}, nil

	case *geom.MultiLineString:
		parts := make([][]geodesic.Point, 0, g.NumLineStrings())
		for i := 0; i < g.NumLineStrings(); i++ {
			parts = append(parts, coordsToPoints(g.LineString(i).Coords()))
		}
		return parts, nil

	case *geom.Polygon:
		parts := make([][]geodesic.Point, 0, g.NumLinearRings())
		for i := 0; i < g.NumLinearRings(); i++ {
			parts = append(parts, coordsToPoints(g.LinearRing(i).Coords()))
		}
		return parts, nil

	case *geom.MultiPolygon:
		var parts [][]geodesic.Point
		for i := 0; i < g.NumPolygons(); i++ {
			poly := g.Polygon(i)
			for j := 0; j < poly.NumLinearRings(); j++ {
				parts = append(parts, coordsToPoints(poly.LinearRing(j).Coords()))
			}
		}
		return parts, nil

	default:
		typeName := "nil"
		if g != nil {
			typeName = fmt.Sprintf("%T", g)
		}
		return nil, &UnsupportedGeometryError{Type: typeName}
	}
}

func coordsToPoints(coords []geom.Coord) []geodesic.Point {
	points := make([]geodesic.Point, 0, len(coords))
	for _, c := range coords {
		points = append(points, geodesic.Point{Lat: c.Y(), Lon: c.X()})
	}
	return points
}

// DecodePolyline decodes a Google encoded polyline string into one part.
func DecodePolyline(encoded string) ([]geodesic.Point, error) {
	coords, _, err := polyline.DecodeCoords([]byte(encoded))
	if err != nil {
		return nil, eris.Wrap(err, "geomio: decode polyline")
	}
	points := make([]geodesic.Point, 0, len(coords))
	for _, c := range coords {
		points = append(points, geodesic.Point{Lat: c[0], Lon: c[1]})
	}
	return points, nil
}

// EncodePolyline encodes one part as a Google encoded polyline string.
func EncodePolyline(points []geodesic.Point) string {
	coords := make([][]float64, 0, len(points))
	for _, p := range points {
		coords = append(coords, []float64{p.Lat, p.Lon})
	}
	return string(polyline.EncodeCoords(coords))
}

// WriteGeoJSON writes a flattened polyline as a MultiLineString geometry,
// skipping parts the clip emptied.
func WriteGeoJSON(w io.Writer, flat *densify.FlattenedPolyline) error {
	mls := geom.NewMultiLineString(geom.XY)

	for part := 0; part < flat.Parts(); part++ {
		points := flat.Part(part)
		if len(points) == 0 {
			continue
		}
		coords := make([]float64, 0, len(points)*2)
		for _, p := range points {
			coords = append(coords, p.Lon, p.Lat)
		}
		if err := mls.Push(geom.NewLineStringFlat(geom.XY, coords)); err != nil {
			return eris.Wrap(err, "geomio: assemble multilinestring")
		}
	}

	data, err := geojson.Marshal(mls)
	if err != nil {
		return eris.Wrap(err, "geomio: encode GeoJSON")
	}
	if _, err := w.Write(data); err != nil {
		return eris.Wrap(err, "geomio: write GeoJSON")
	}
	return nil
}
