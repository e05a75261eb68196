// Command suntimes prints sunrise, solar noon and sunset for one day.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/mooncaker816/learnmeeus/v3/julian"
	"github.com/mooncaker816/learnmeeus/v3/solstice"

	"go.ngs.io/suntimes-api/internal/domain"
)

func main() {
	lat := flag.Float64("lat", 0, "Latitude in degrees, north positive")
	lon := flag.Float64("lon", 0, "Longitude in degrees, east positive")
	dateStr := flag.String("date", "", "Date (YYYY-MM-DD, default: today UTC)")
	tz := flag.Float64("tz", 0, "Timezone offset in hours east of UTC")
	event := flag.String("event", domain.EventSunrise, "Event: sunrise, civil, nautical, or astronomical")
	equinox := flag.String("equinox", "", "Use the march or september equinox of -year instead of -date")
	year := flag.Int("year", time.Now().UTC().Year(), "Year for -equinox")
	flag.Parse()

	depression, ok := domain.DepressionForEvent(*event)
	if !ok {
		log.Fatalf("Unknown event: %s (use sunrise, civil, nautical, or astronomical)", *event)
	}

	var date time.Time
	switch {
	case *equinox != "":
		d, err := equinoxDate(*equinox, *year)
		if err != nil {
			log.Fatal(err)
		}
		date = d
	case *dateStr != "":
		d, err := time.Parse("2006-01-02", *dateStr)
		if err != nil {
			log.Fatalf("Invalid date (expected YYYY-MM-DD): %v", err)
		}
		date = d
	default:
		date = time.Now().UTC()
	}

	ctx := domain.NewContext(date, *tz, *lat, *lon).WithDepression(depression)
	st, err := domain.Compute(ctx)
	if err != nil {
		log.Fatalf("Failed to compute: %v", err)
	}

	fmt.Fprintf(os.Stdout, "Date:       %s (UTC%s)\n", ctx.Moment.Date(), st.SolarNoon.Format("-07:00"))
	fmt.Fprintf(os.Stdout, "Location:   %.4f, %.4f\n", *lat, *lon)
	fmt.Fprintf(os.Stdout, "Event:      %s (%.3f°)\n", *event, depression)
	fmt.Fprintf(os.Stdout, "Rise:       %s\n", formatEvent(st.Sunrise))
	fmt.Fprintf(os.Stdout, "Solar noon: %s\n", st.SolarNoon.Format(time.DateTime))
	fmt.Fprintf(os.Stdout, "Set:        %s\n", formatEvent(st.Sunset))
	fmt.Fprintf(os.Stdout, "Day length: %s\n", st.DayLength().Round(time.Second))
}

func formatEvent(e domain.Event) string {
	t, ok := e.Get()
	if !ok {
		return "none (" + e.Condition.String() + ")"
	}
	return t.Format(time.DateTime)
}

// equinoxDate returns the UTC calendar date of an equinox.
func equinoxDate(which string, year int) (time.Time, error) {
	var jde float64
	switch strings.ToLower(which) {
	case "march":
		jde = solstice.March(year)
	case "september":
		jde = solstice.September(year)
	default:
		return time.Time{}, fmt.Errorf("unknown equinox %q (use march or september)", which)
	}
	y, m, d := julian.JDToCalendar(jde)
	return time.Date(y, time.Month(m), int(d), 0, 0, 0, 0, time.UTC), nil
}
