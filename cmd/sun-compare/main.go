// Command sun-compare fetches sunrise/sunset from a running API and compares
// it against an independent implementation (github.com/nathan-osman/go-sunrise)
// for the same days, reporting the mean offset and the RMSE around it.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/nathan-osman/go-sunrise"
)

type apiDay struct {
	Date    string  `json:"date"`
	Sunrise *string `json:"sunrise"`
	Sunset  *string `json:"sunset"`
}

type apiResponse struct {
	Location struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	} `json:"location"`
	Days []apiDay `json:"days"`
}

func fetch(ctx context.Context, target string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, http.NoBody)
	if err != nil {
		return nil, err
	}
	client := &http.Client{Timeout: 15 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return nil, fmt.Errorf("HTTP %d (failed to read body: %v)", resp.StatusCode, readErr)
		}
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(b))
	}
	return io.ReadAll(resp.Body)
}

// buildURL builds the /v1/sun/times query for the comparison window.
func buildURL(base string, lat, lon float64, date string, days int) string {
	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	q.Set("tz", "0")
	q.Set("date", date)
	q.Set("days", strconv.Itoa(days))
	return base + "/v1/sun/times?" + q.Encode()
}

// compareDays pairs every API event with the reference and returns the
// differences (API minus reference) in seconds. Days where either side has
// no event are skipped.
func compareDays(resp *apiResponse) (rise, set []float64, err error) {
	lat, lon := resp.Location.Lat, resp.Location.Lon
	for _, d := range resp.Days {
		date, err := time.Parse("2006-01-02", d.Date)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid date %q: %v", d.Date, err)
		}
		refRise, refSet := sunrise.SunriseSunset(lat, lon, date.Year(), date.Month(), date.Day())

		if diff, ok, err := diffSeconds(d.Sunrise, refRise); err != nil {
			return nil, nil, err
		} else if ok {
			rise = append(rise, diff)
		}
		if diff, ok, err := diffSeconds(d.Sunset, refSet); err != nil {
			return nil, nil, err
		} else if ok {
			set = append(set, diff)
		}
	}
	return rise, set, nil
}

func diffSeconds(api *string, ref time.Time) (float64, bool, error) {
	if api == nil || ref.IsZero() {
		return 0, false, nil
	}
	t, err := time.Parse(time.RFC3339, *api)
	if err != nil {
		return 0, false, fmt.Errorf("invalid API time %q: %v", *api, err)
	}
	return t.Sub(ref).Seconds(), true, nil
}

// calculateStats calculates mean and RMSE around mean.
func calculateStats(diffs []float64) (mean, rmse float64) {
	if len(diffs) == 0 {
		return 0, 0
	}
	var sum float64
	for _, d := range diffs {
		sum += d
	}
	mean = sum / float64(len(diffs))

	var sse float64
	for _, d := range diffs {
		dd := d - mean
		sse += dd * dd
	}
	return mean, math.Sqrt(sse / float64(len(diffs)))
}

func main() {
	var (
		apiBase string
		lat     float64
		lon     float64
		dateStr string
		days    int
	)
	flag.StringVar(&apiBase, "api", "http://localhost:8080", "Base URL of the sun times API")
	flag.Float64Var(&lat, "lat", 35.6762, "Latitude in degrees")
	flag.Float64Var(&lon, "lon", 139.6503, "Longitude in degrees")
	flag.StringVar(&dateStr, "date", time.Now().UTC().Format("2006-01-02"), "First date (YYYY-MM-DD)")
	flag.IntVar(&days, "days", 30, "Number of days to compare (1-366)")
	flag.Parse()

	body, err := fetch(context.Background(), buildURL(apiBase, lat, lon, dateStr, days))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to fetch API: %v\n", err)
		os.Exit(1)
	}
	var resp apiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		fmt.Fprintf(os.Stderr, "invalid API JSON: %v\n", err)
		os.Exit(1)
	}

	rise, set, err := compareDays(&resp)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	for _, s := range []struct {
		name  string
		diffs []float64
	}{{"sunrise", rise}, {"sunset", set}} {
		mean, rmse := calculateStats(s.diffs)
		fmt.Printf("%s: paired days %d, mean(API-ref) %.1f s, RMSE around mean %.1f s\n", s.name, len(s.diffs), mean, rmse)
	}
}
