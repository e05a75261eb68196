package main

import (
	"context"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestCalculateStats(t *testing.T) {
	tests := []struct {
		diffs    []float64
		wantMean float64
		wantRMSE float64
	}{
		{nil, 0, 0},
		{[]float64{5, 5, 5}, 5, 0},
		{[]float64{-1, 1}, 0, 1},
		{[]float64{10, 20, 30, 40}, 25, math.Sqrt(125)},
	}
	for _, tt := range tests {
		mean, rmse := calculateStats(tt.diffs)
		if math.Abs(mean-tt.wantMean) > 1e-12 || math.Abs(rmse-tt.wantRMSE) > 1e-12 {
			t.Errorf("calculateStats(%v) = (%v, %v), want (%v, %v)", tt.diffs, mean, rmse, tt.wantMean, tt.wantRMSE)
		}
	}
}

func TestCompareDays(t *testing.T) {
	rise := "2024-06-21T03:43:00Z"
	resp := &apiResponse{Days: []apiDay{
		{Date: "2024-06-21", Sunrise: &rise},
		{Date: "2024-06-22"},
	}}
	resp.Location.Lat = 51.5074
	resp.Location.Lon = -0.1278

	r, s, err := compareDays(resp)
	if err != nil {
		t.Fatalf("compareDays() error = %v", err)
	}
	if len(r) != 1 || len(s) != 0 {
		t.Fatalf("paired = (%d, %d), want (1, 0)", len(r), len(s))
	}
	if math.Abs(r[0]) > 120 {
		t.Errorf("London midsummer sunrise differs by %v s", r[0])
	}
}

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("days") != "3" {
			http.Error(w, "bad days", http.StatusBadRequest)
			return
		}
		_, _ = w.Write([]byte(`{"days":[]}`))
	}))
	defer srv.Close()

	body, err := fetch(context.Background(), buildURL(srv.URL, 1.5, -2, "2024-01-01", 3))
	if err != nil {
		t.Fatalf("fetch() error = %v", err)
	}
	if !strings.Contains(string(body), "days") {
		t.Errorf("body = %s", body)
	}

	if _, err := fetch(context.Background(), buildURL(srv.URL, 1.5, -2, "2024-01-01", 4)); err == nil {
		t.Error("expected error for non-200 response")
	}
}
