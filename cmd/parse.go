package main

import (
	"strconv"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/geodist/pkg/densify"
	"github.com/sells-group/geodist/pkg/geodesic"
)

// parsePoint parses "lat,lon" into a validated point.
func parsePoint(arg string) (geodesic.Point, error) {
	fields := strings.Split(arg, ",")
	if len(fields) != 2 {
		return geodesic.Point{}, eris.Errorf("expected lat,lon but got %q", arg)
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(fields[0]), 64)
	if err != nil {
		return geodesic.Point{}, eris.Wrapf(err, "parse latitude %q", fields[0])
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(fields[1]), 64)
	if err != nil {
		return geodesic.Point{}, eris.Wrapf(err, "parse longitude %q", fields[1])
	}

	return geodesic.NewPoint(lat, lon)
}

// parseBBox parses "minLat,maxLat,minLon,maxLon" into a validated box.
func parseBBox(arg string) (geodesic.BoundingBox, error) {
	fields := strings.Split(arg, ",")
	if len(fields) != 4 {
		return geodesic.BoundingBox{}, eris.Errorf("expected minLat,maxLat,minLon,maxLon but got %q", arg)
	}

	values := make([]float64, 4)
	for i, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return geodesic.BoundingBox{}, eris.Wrapf(err, "parse bounding box field %q", f)
		}
		values[i] = v
	}

	return geodesic.NewBoundingBox(values[0], values[1], values[2], values[3])
}

// densifyOptionsFromConfig maps the loaded configuration to sampler options.
func densifyOptionsFromConfig() densify.Options {
	return densify.Options{
		MaxSegmentLengthMeters: cfg.Densify.MaxSegmentLengthMeters,
		MaxSegmentAngleDegrees: cfg.Densify.MaxSegmentAngleDegrees,
		SampleCap:              cfg.Densify.SampleCap,
	}
}
