package usecase

import (
	"sync"
	"sync/atomic"
	"time"

	"go.ngs.io/suntimes-api/internal/domain"
	"go.ngs.io/suntimes-api/internal/metrics"
)

// DefaultMemoSize bounds the number of cached days.
const DefaultMemoSize = 4096

// memoKey holds every input of a computation. The effective depression is
// used so that zero and DepressionStandard share an entry.
type memoKey struct {
	year       int
	month      time.Month
	day        int
	tz         float64
	lat        float64
	lon        float64
	depression float64
}

func keyFor(ctx domain.CalculationContext) memoKey {
	return memoKey{
		year:       ctx.Moment.Year,
		month:      ctx.Moment.Month,
		day:        ctx.Moment.Day,
		tz:         ctx.Moment.TZOffsetHours,
		lat:        ctx.Location.Latitude,
		lon:        ctx.Location.Longitude,
		depression: ctx.Depression(),
	}
}

// Memo caches domain.Compute results keyed on the full calculation context.
// It is safe for concurrent use. When full it is cleared rather than
// evicting entries one by one.
type Memo struct {
	mu      sync.RWMutex // Protects entries.
	entries map[memoKey]domain.SolarTimes
	max     int

	hits   atomic.Int64
	misses atomic.Int64
}

// NewMemo creates a memo holding at most size entries. A size of zero or
// less selects DefaultMemoSize.
func NewMemo(size int) *Memo {
	if size <= 0 {
		size = DefaultMemoSize
	}
	return &Memo{
		entries: make(map[memoKey]domain.SolarTimes),
		max:     size,
	}
}

// Compute returns the cached result for ctx, computing it on a miss. A nil
// Memo computes directly. Invalid contexts are never cached.
func (m *Memo) Compute(ctx domain.CalculationContext) (domain.SolarTimes, error) {
	if m == nil {
		return domain.Compute(ctx)
	}

	key := keyFor(ctx)

	m.mu.RLock()
	st, ok := m.entries[key]
	m.mu.RUnlock()
	if ok {
		m.hits.Add(1)
		metrics.ObserveMemoLookup(true)
		st.Context = ctx
		return st, nil
	}

	m.misses.Add(1)
	metrics.ObserveMemoLookup(false)

	st, err := domain.Compute(ctx)
	if err != nil {
		return domain.SolarTimes{}, err
	}

	m.mu.Lock()
	if len(m.entries) >= m.max {
		clear(m.entries)
	}
	m.entries[key] = st
	m.mu.Unlock()

	return st, nil
}

// Len returns the number of cached entries.
func (m *Memo) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// Stats returns the hit and miss counts since creation.
func (m *Memo) Stats() (hits, misses int64) {
	return m.hits.Load(), m.misses.Load()
}
