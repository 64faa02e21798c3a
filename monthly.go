package stockdata

import (
	"context"
	"iter"
	"runtime"
	"strings"
	"sync"

	"github.com/etnz/stockdata/date"
	"golang.org/x/sync/errgroup"
)

// Pick returns whichever of a and b is the close of the later day.
//
// When both are on the same day, the greater close wins, and if closes are equal
// in value the one with the greater textual form wins ("1.10" over "1.1"), then
// the one with the greater exponent.
// This makes Pick a maximum over a total order: it is associative and
// commutative, and always returns one of its operands untouched.
func Pick(a, b DailyClose) DailyClose {
	if c := a.Date.Compare(b.Date); c != 0 {
		if c > 0 {
			return a
		}
		return b
	}
	if c := a.Close.Cmp(b.Close); c != 0 {
		if c > 0 {
			return a
		}
		return b
	}
	if c := strings.Compare(FormatClose(a.Close), FormatClose(b.Close)); c != 0 {
		if c > 0 {
			return a
		}
		return b
	}
	// same text, e.g. "1e2" and "100".
	if a.Close.Exponent() >= b.Close.Exponent() {
		return a
	}
	return b
}

// Accumulator is a partial aggregation: the best close seen so far for each month.
//
// An Accumulator is not safe for concurrent use. Parallel aggregations give
// each worker its own, and Merge them once the workers are done.
// The zero value is ready to use.
type Accumulator struct {
	months map[date.Month]DailyClose
}

// NewAccumulator returns an empty Accumulator.
func NewAccumulator() *Accumulator {
	return &Accumulator{months: make(map[date.Month]DailyClose)}
}

// Add folds c into the accumulator.
func (a *Accumulator) Add(c DailyClose) {
	if a.months == nil {
		a.months = make(map[date.Month]DailyClose)
	}
	m := c.Month()
	if prev, exists := a.months[m]; exists {
		c = Pick(prev, c)
	}
	a.months[m] = c
}

// AddAll folds every close of seq into the accumulator.
func (a *Accumulator) AddAll(seq iter.Seq[DailyClose]) {
	for c := range seq {
		a.Add(c)
	}
}

// Merge folds the partial result o into a. o is left unchanged.
func (a *Accumulator) Merge(o *Accumulator) {
	for _, c := range o.months {
		a.Add(c)
	}
}

// Len returns the number of months in the accumulator.
func (a *Accumulator) Len() int { return len(a.months) }

// Get returns the close elected for month m so far.
func (a *Accumulator) Get(m date.Month) (DailyClose, bool) {
	c, ok := a.months[m]
	return c, ok
}

// Closes returns one close per month, in no particular order.
//
// The returned slice is never nil and belongs to the caller.
func (a *Accumulator) Closes() []DailyClose {
	closes := make([]DailyClose, 0, len(a.months))
	for _, c := range a.months {
		closes = append(closes, c)
	}
	return closes
}

// MonthlyCloses returns the close of the last day of each month present in seq.
//
// The result is unordered, and empty if seq is.
func MonthlyCloses(seq iter.Seq[DailyClose]) []DailyClose {
	acc := NewAccumulator()
	acc.AddAll(seq)
	return acc.Closes()
}

// DefaultChunkSize is the number of closes dispatched at once to a worker.
const DefaultChunkSize = 4096

// ParallelOptions configures a parallel aggregation.
type ParallelOptions struct {
	Workers   int // number of workers, defaults to runtime.GOMAXPROCS(0)
	ChunkSize int // closes per chunk, defaults to DefaultChunkSize
}

func (o ParallelOptions) workers() int {
	if o.Workers > 0 {
		return o.Workers
	}
	return runtime.GOMAXPROCS(0)
}

func (o ParallelOptions) chunkSize() int {
	if o.ChunkSize > 0 {
		return o.ChunkSize
	}
	return DefaultChunkSize
}

// ParallelMonthlyCloses is MonthlyCloses computed by a pool of workers.
//
// seq is consumed by a single goroutine and cut into chunks, so it can be a
// lazy stream that is never held in memory. Each worker folds the chunks it
// receives into its own Accumulator; the partial results are merged at the end.
//
// The only possible error is the cancellation of ctx.
func ParallelMonthlyCloses(ctx context.Context, seq iter.Seq[DailyClose], opts ParallelOptions) ([]DailyClose, error) {
	workers, size := opts.workers(), opts.chunkSize()

	g, ctx := errgroup.WithContext(ctx)
	chunks := make(chan []DailyClose, workers)

	partials := make([]*Accumulator, workers)
	for i := range partials {
		acc := NewAccumulator()
		partials[i] = acc
		g.Go(func() error {
			for chunk := range chunks {
				for _, c := range chunk {
					acc.Add(c)
				}
			}
			return nil
		})
	}

	g.Go(func() error {
		defer close(chunks)
		send := func(chunk []DailyClose) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			select {
			case chunks <- chunk:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		chunk := make([]DailyClose, 0, size)
		for c := range seq {
			chunk = append(chunk, c)
			if len(chunk) < size {
				continue
			}
			if err := send(chunk); err != nil {
				return err
			}
			chunk = make([]DailyClose, 0, size)
		}
		if len(chunk) == 0 {
			return ctx.Err()
		}
		return send(chunk)
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := NewAccumulator()
	for _, p := range partials {
		total.Merge(p)
	}
	return total.Closes(), nil
}

// MonthlyClosesOf is MonthlyCloses over a slice, split in contiguous
// partitions aggregated concurrently by at most workers goroutines.
//
// workers <= 0 means runtime.GOMAXPROCS(0).
func MonthlyClosesOf(records []DailyClose, workers int) []DailyClose {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	workers = max(1, min(workers, len(records)))
	size := (len(records) + workers - 1) / workers

	partials := make([]*Accumulator, workers)
	var wg sync.WaitGroup
	for i := range partials {
		acc := NewAccumulator()
		partials[i] = acc
		lo, hi := min(i*size, len(records)), min((i+1)*size, len(records))
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, c := range records[lo:hi] {
				acc.Add(c)
			}
		}()
	}
	wg.Wait()

	total := NewAccumulator()
	for _, p := range partials {
		total.Merge(p)
	}
	return total.Closes()
}
