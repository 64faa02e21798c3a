package stockdata

import (
	"iter"
	"os"
	"slices"
	"testing"
)

// readCloses reads all the closes of a testdata file.
func readCloses(t *testing.T, name string) []DailyClose {
	t.Helper()
	f, err := os.Open(name)
	if err != nil {
		t.Fatalf("cannot open %s: %v", name, err)
	}
	defer f.Close()

	r := NewReader(f)
	closes := slices.Collect(r.All())
	if err := r.Err(); err != nil {
		t.Fatalf("cannot read %s: %v", name, err)
	}
	return closes
}

// dailyCloses returns the daily series of testdata/daily.csv.
func dailyCloses(t *testing.T) []DailyClose { return readCloses(t, "testdata/daily.csv") }

// expectedMonthlyCloses returns the monthly closes expected from testdata/daily.csv, sorted.
func expectedMonthlyCloses(t *testing.T) []DailyClose { return readCloses(t, "testdata/monthly.csv") }

// cycle returns a sequence repeating closes until n values are produced.
func cycle(closes []DailyClose, n int) iter.Seq[DailyClose] {
	return func(yield func(DailyClose) bool) {
		for i := 0; i < n && len(closes) > 0; i++ {
			if !yield(closes[i%len(closes)]) {
				return
			}
		}
	}
}

// repeat returns a sequence of closes concatenated n times.
func repeat(closes []DailyClose, n int) iter.Seq[DailyClose] { return cycle(closes, n*len(closes)) }

// assertSameCloses fails if got, once sorted, is not exactly want.
func assertSameCloses(t *testing.T, got, want []DailyClose) {
	t.Helper()
	got = slices.Clone(got)
	SortByDate(got)
	if len(got) != len(want) {
		t.Fatalf("got %d monthly closes, want %d", len(got), len(want))
	}
	for i := range want {
		if !got[i].Equal(want[i]) {
			t.Errorf("monthly close #%d = %v, want %v", i, got[i], want[i])
		}
	}
}
