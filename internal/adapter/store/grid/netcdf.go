// Package grid stores precomputed day-length grids in NetCDF files and
// interpolates them.
package grid

import (
	"fmt"
	"sync"

	"github.com/fhs/go-netcdf/netcdf"

	"go.ngs.io/suntimes-api/internal/adapter/interp"
)

// Names used inside the NetCDF file.
const (
	LatVarName       = "lat"
	DayOfYearVarName = "doy"
	DayLengthVarName = "day_length_min"
)

// Store lazily loads a day-length grid from a NetCDF file.
type Store struct {
	path string

	mu   sync.RWMutex // Protects grid.
	grid *interp.Grid2D
	meta Metadata
}

// Metadata describes how a stored grid was generated.
type Metadata struct {
	Year          int
	DepressionDeg float64
}

// NewStore creates a store reading the NetCDF file at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// DayLengthAt returns the day length in minutes at latitude lat and the
// 1-based dayOfYear, bilinearly interpolated from the grid.
func (s *Store) DayLengthAt(lat float64, dayOfYear int) (float64, error) {
	g, _, err := s.load()
	if err != nil {
		return 0, err
	}

	// Day 366 maps onto the last column of a non-leap grid.
	doy := float64(dayOfYear)
	if last := g.X[len(g.X)-1]; doy > last && doy <= last+1 {
		doy = last
	}

	minutes, err := g.InterpolateAt(doy, lat)
	if err != nil {
		return 0, fmt.Errorf("failed to interpolate day length at (%.4f, day %d): %w", lat, dayOfYear, err)
	}
	return minutes, nil
}

// Metadata returns the generation parameters stored in the file.
func (s *Store) Metadata() (Metadata, error) {
	_, meta, err := s.load()
	return meta, err
}

// GridYear returns the year the stored grid was generated for.
func (s *Store) GridYear() (int, error) {
	meta, err := s.Metadata()
	return meta.Year, err
}

func (s *Store) load() (*interp.Grid2D, Metadata, error) {
	s.mu.RLock()
	g, meta := s.grid, s.meta
	s.mu.RUnlock()
	if g != nil {
		return g, meta, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.grid != nil {
		return s.grid, s.meta, nil
	}

	g, meta, err := readGrid(s.path)
	if err != nil {
		return nil, Metadata{}, err
	}
	s.grid, s.meta = g, meta
	return g, meta, nil
}

func readGrid(path string) (*interp.Grid2D, Metadata, error) {
	nc, err := netcdf.OpenFile(path, netcdf.NOWRITE)
	if err != nil {
		return nil, Metadata{}, fmt.Errorf("failed to open NetCDF file: %w", err)
	}
	defer func() { _ = nc.Close() }()

	lats, err := readAxis(nc, LatVarName)
	if err != nil {
		return nil, Metadata{}, err
	}
	doys, err := readAxis(nc, DayOfYearVarName)
	if err != nil {
		return nil, Metadata{}, err
	}

	v, err := nc.Var(DayLengthVarName)
	if err != nil {
		return nil, Metadata{}, fmt.Errorf("variable %s not found: %w", DayLengthVarName, err)
	}
	flat := make([]float64, len(lats)*len(doys))
	if err := v.ReadFloat64s(flat); err != nil {
		return nil, Metadata{}, fmt.Errorf("failed to read %s: %w", DayLengthVarName, err)
	}

	g, err := interp.NewGrid2D(doys, lats, flat)
	if err != nil {
		return nil, Metadata{}, fmt.Errorf("invalid day-length grid: %w", err)
	}

	var meta Metadata
	if year, ok := readScalarAttr(v, "year"); ok {
		meta.Year = int(year)
	}
	if dep, ok := readScalarAttr(v, "depression_deg"); ok {
		meta.DepressionDeg = dep
	}
	return g, meta, nil
}

func readAxis(nc netcdf.Dataset, name string) ([]float64, error) {
	v, err := nc.Var(name)
	if err != nil {
		return nil, fmt.Errorf("variable %s not found: %w", name, err)
	}
	dims, err := v.Dims()
	if err != nil {
		return nil, fmt.Errorf("failed to get dimensions of %s: %w", name, err)
	}
	if len(dims) != 1 {
		return nil, fmt.Errorf("expected 1D variable %s, got %dD", name, len(dims))
	}
	n, err := dims[0].Len()
	if err != nil {
		return nil, err
	}
	data := make([]float64, n)
	if err := v.ReadFloat64s(data); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return data, nil
}

func readScalarAttr(v netcdf.Var, name string) (float64, bool) {
	a := v.Attr(name)
	if n, err := a.Len(); err != nil || n != 1 {
		return 0, false
	}
	buf := make([]float64, 1)
	if err := a.ReadFloat64s(buf); err != nil {
		return 0, false
	}
	return buf[0], true
}

// Write stores g as a NetCDF-4 file at path, replacing any existing file.
func Write(path string, g *DayLengthGrid) error {
	if len(g.Minutes) != len(g.Lat)*len(g.DayOfYear) {
		return fmt.Errorf("grid has %d values, expected %d", len(g.Minutes), len(g.Lat)*len(g.DayOfYear))
	}

	ds, err := netcdf.CreateFile(path, netcdf.CLOBBER|netcdf.NETCDF4)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() { _ = ds.Close() }()

	latDim, err := ds.AddDim(LatVarName, uint64(len(g.Lat)))
	if err != nil {
		return err
	}
	doyDim, err := ds.AddDim(DayOfYearVarName, uint64(len(g.DayOfYear)))
	if err != nil {
		return err
	}

	latVar, err := ds.AddVar(LatVarName, netcdf.DOUBLE, []netcdf.Dim{latDim})
	if err != nil {
		return err
	}
	doyVar, err := ds.AddVar(DayOfYearVarName, netcdf.DOUBLE, []netcdf.Dim{doyDim})
	if err != nil {
		return err
	}
	dataVar, err := ds.AddVar(DayLengthVarName, netcdf.DOUBLE, []netcdf.Dim{latDim, doyDim})
	if err != nil {
		return err
	}

	if err := latVar.Attr("units").WriteBytes([]byte("degrees_north")); err != nil {
		return err
	}
	if err := dataVar.Attr("units").WriteBytes([]byte("minutes")); err != nil {
		return err
	}
	if err := dataVar.Attr("year").WriteFloat64s([]float64{float64(g.Year)}); err != nil {
		return err
	}
	if err := dataVar.Attr("depression_deg").WriteFloat64s([]float64{g.DepressionDeg}); err != nil {
		return err
	}

	if err := ds.EndDef(); err != nil {
		return err
	}

	if err := latVar.WriteFloat64s(g.Lat); err != nil {
		return fmt.Errorf("failed to write %s: %w", LatVarName, err)
	}
	if err := doyVar.WriteFloat64s(g.DayOfYear); err != nil {
		return fmt.Errorf("failed to write %s: %w", DayOfYearVarName, err)
	}
	if err := dataVar.WriteFloat64s(g.Minutes); err != nil {
		return fmt.Errorf("failed to write %s: %w", DayLengthVarName, err)
	}
	return nil
}
