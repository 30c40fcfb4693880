// Package enumerator turns an enumeration request into the record numbers it
// covers, walking up or down from a start value and stopping at the bounds of
// the 8-digit record-number space.
package enumerator

import (
	"fmt"
	"iter"

	"github.com/weiawesome/wes-io-live/sfid-tool/internal/sfid"
)

// Request describes one enumeration run.
type Request struct {
	// Template supplies the prefix, instance and reserved segments reused by
	// every generated id.
	Template sfid.ID
	// Start is the first record number emitted.
	Start uint64
	// Steps is signed: the sign picks the direction and the magnitude the
	// number of ids. Ignored for magnitude when Unbounded is set.
	Steps int64
	// Unbounded keeps enumerating until the range bound or cancellation.
	Unbounded bool
	// Workers is the number of concurrent workers, at least 1.
	Workers int
	// As18 selects the checksummed 18-character output form.
	As18 bool
}

// FromValue builds a request that enumerates from an explicit start value,
// reusing template's fixed segments.
func FromValue(template sfid.ID, start uint64, steps int64) (Request, error) {
	if err := sfid.CheckRecordNumber(start); err != nil {
		return Request{}, &sfid.FieldError{
			Field:  "start",
			Value:  fmt.Sprint(start),
			Err:    sfid.ErrRange,
			Detail: fmt.Sprintf("must be between 0 and %d", sfid.MaxRecordNumber),
		}
	}
	return Request{Template: template, Start: start, Steps: steps, Workers: 1}, nil
}

// FromCurrent builds a request that enumerates from template's own record number.
func FromCurrent(template sfid.ID, steps int64) Request {
	return Request{Template: template, Start: template.RecordNumber(), Steps: steps, Workers: 1}
}

// Descending reports whether the request walks toward zero.
func (r Request) Descending() bool {
	return r.Steps < 0
}

// Count returns how many values the request asks for, before clamping.
// It is zero for unbounded requests.
func (r Request) Count() uint64 {
	if r.Unbounded {
		return 0
	}
	if r.Steps < 0 {
		// -(MinInt64) overflows; the unsigned negation does not.
		return uint64(-(r.Steps + 1)) + 1
	}
	return uint64(r.Steps)
}

// Expected returns the number of values the sequence will actually yield
// once clamped, or false for unbounded requests.
func (r Request) Expected() (uint64, bool) {
	if r.Unbounded {
		return 0, false
	}
	var room uint64
	if r.Descending() {
		room = r.Start + 1
	} else {
		room = sfid.MaxRecordNumber - r.Start + 1
	}
	return min(room, r.Count()), true
}

// Cursor walks a request's record numbers. A cursor is owned by one
// goroutine; call Request.Cursor again for an independent restart.
type Cursor struct {
	next      uint64
	remaining uint64
	unbounded bool
	down      bool
	done      bool
}

// Cursor returns a fresh cursor positioned at the start of the sequence.
func (r Request) Cursor() *Cursor {
	c := &Cursor{
		next:      r.Start,
		remaining: r.Count(),
		unbounded: r.Unbounded,
		down:      r.Descending(),
	}
	if r.Start > sfid.MaxRecordNumber || (!r.Unbounded && c.remaining == 0) {
		c.done = true
	}
	return c
}

// Next returns the next record number, or false once the sequence has ended
// either by count or by reaching 0 or MaxRecordNumber.
func (c *Cursor) Next() (uint64, bool) {
	if c.done {
		return 0, false
	}
	n := c.next

	if !c.unbounded {
		c.remaining--
		if c.remaining == 0 {
			c.done = true
		}
	}
	switch {
	case c.down && n == 0:
		c.done = true
	case !c.down && n == sfid.MaxRecordNumber:
		c.done = true
	case c.down:
		c.next = n - 1
	default:
		c.next = n + 1
	}
	return n, true
}

// Values returns the request's record numbers as a lazy sequence. Each call
// to the returned function starts over from Start.
func (r Request) Values() iter.Seq[uint64] {
	return func(yield func(uint64) bool) {
		c := r.Cursor()
		for {
			n, ok := c.Next()
			if !ok || !yield(n) {
				return
			}
		}
	}
}
