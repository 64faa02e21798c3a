package stockdata

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"iter"
	"log"
	"strings"
)

// Reader reads daily closes from text lines, one close per line.
//
// By default the first non blank line is a header: it is skipped, and used to
// find the date and close columns (see LayoutFromHeader). If it has no such
// columns, the DefaultLayout is used. Blank lines are ignored.
type Reader struct {
	scanner   *bufio.Scanner
	layout    Layout
	layoutSet bool // layout was forced by WithLayout
	header    bool // the next non blank line is a header
	skip      bool // skip malformed lines instead of failing

	line     int
	err      error
	skipped  []error // the first MaxSkippedErrors only
	nskipped int
}

// MaxSkippedErrors is the number of skipped line errors a Reader keeps.
const MaxSkippedErrors = 100

// ReaderOption configures a Reader.
type ReaderOption func(*Reader)

// WithHeader tells whether the input starts with a header line. Default is true.
func WithHeader(header bool) ReaderOption { return func(r *Reader) { r.header = header } }

// WithLayout forces the layout of lines, a header line is then skipped but not interpreted.
func WithLayout(l Layout) ReaderOption {
	return func(r *Reader) { r.layout, r.layoutSet = l, true }
}

// SkipMalformed tells the reader to log and skip malformed lines instead of
// stopping at the first one. Default is false.
func SkipMalformed(skip bool) ReaderOption { return func(r *Reader) { r.skip = skip } }

// NewReader returns a Reader reading lines from r.
func NewReader(r io.Reader, opts ...ReaderOption) *Reader {
	rd := &Reader{
		scanner: bufio.NewScanner(r),
		layout:  DefaultLayout,
		header:  true,
	}
	for _, opt := range opts {
		opt(rd)
	}
	return rd
}

// All returns the sequence of daily closes read.
//
// The sequence is lazy and can be iterated only once. It stops at the first
// error, available from Err once the iteration is over.
func (r *Reader) All() iter.Seq[DailyClose] {
	return func(yield func(DailyClose) bool) {
		for r.scanner.Scan() {
			r.line++
			text := r.scanner.Text()
			if strings.TrimSpace(text) == "" {
				continue
			}
			if r.header {
				r.header = false
				r.readHeader(text)
				continue
			}

			c, err := r.layout.Parse(text)
			if err != nil {
				var mle *MalformedLineError
				if errors.As(err, &mle) {
					mle.Number = r.line
				}
				if r.skip {
					log.Printf("skipping %v", err)
					r.nskipped++
					if len(r.skipped) < MaxSkippedErrors {
						r.skipped = append(r.skipped, err)
					}
					continue
				}
				r.err = err
				return
			}
			if !yield(c) {
				return
			}
		}
		if err := r.scanner.Err(); err != nil {
			r.err = fmt.Errorf("cannot read line %d: %w", r.line+1, err)
		}
	}
}

func (r *Reader) readHeader(text string) {
	if r.layoutSet {
		return
	}
	l, err := LayoutFromHeader(text)
	if err != nil {
		log.Printf("using default layout: %v", err)
		return
	}
	r.layout = l
}

// Err returns the error that stopped the iteration, if any.
func (r *Reader) Err() error { return r.err }

// Skipped returns the errors of the first malformed lines skipped so far, at
// most MaxSkippedErrors. See SkippedCount for the total.
func (r *Reader) Skipped() []error { return r.skipped }

// SkippedCount returns the number of malformed lines skipped so far.
func (r *Reader) SkippedCount() int { return r.nskipped }
