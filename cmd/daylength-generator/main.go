package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"
	"time"

	"go.ngs.io/suntimes-api/internal/adapter/store/grid"
	"go.ngs.io/suntimes-api/internal/domain"
)

func main() {
	// Command line flags
	outPath := flag.String("out", "./data/daylength.nc", "Output NetCDF file")
	year := flag.Int("year", time.Now().UTC().Year(), "Year to sample")
	event := flag.String("event", domain.EventSunrise, "Event: sunrise, civil, nautical, or astronomical")
	region := flag.String("region", "global", "Region: global, arctic, antarctic, or custom")
	latMin := flag.Float64("lat-min", -60.0, "Minimum latitude (custom region)")
	latMax := flag.Float64("lat-max", 60.0, "Maximum latitude (custom region)")
	latStep := flag.Float64("lat-step", 1.0, "Latitude resolution in degrees")
	dayStep := flag.Int("day-step", 1, "Day-of-year resolution in days")

	flag.Parse()

	depression, ok := domain.DepressionForEvent(*event)
	if !ok {
		log.Fatalf("Unknown event: %s (use sunrise, civil, nautical, or astronomical)", *event)
	}

	spec := grid.BuildSpec{
		Year:          *year,
		DepressionDeg: depression,
		LatStep:       *latStep,
		DayStep:       *dayStep,
	}
	switch *region {
	case "global":
		spec.LatMin, spec.LatMax = -90, 90
	case "arctic":
		spec.LatMin, spec.LatMax = 60, 90
	case "antarctic":
		spec.LatMin, spec.LatMax = -90, -60
	case "custom":
		spec.LatMin, spec.LatMax = *latMin, *latMax
	default:
		log.Fatalf("Unknown region: %s (use global, arctic, antarctic, or custom)", *region)
	}

	log.Printf("Generating day-length grid for %d (%s, depression %.3f°)", spec.Year, *event, depression)
	log.Printf("Latitudes: %.1f° to %.1f°, step %.2f°; day step %d", spec.LatMin, spec.LatMax, spec.LatStep, spec.DayStep)

	start := time.Now()
	g, err := grid.Build(spec)
	if err != nil {
		log.Fatalf("Failed to build grid: %v", err)
	}
	log.Printf("Computed %d × %d points in %s", len(g.Lat), len(g.DayOfYear), time.Since(start).Round(time.Millisecond))

	if err := os.MkdirAll(filepath.Dir(*outPath), 0755); err != nil {
		log.Fatalf("Failed to create output directory: %v", err)
	}
	if err := grid.Write(*outPath, g); err != nil {
		log.Fatalf("Failed to write NetCDF: %v", err)
	}

	totalKB := float64(len(g.Minutes)*8) / 1024
	log.Printf("=== Generation Complete ===")
	log.Printf("File: %s (~%.1f KB of data)", *outPath, totalKB)
}
