// Package timebitmap implements a compact weekly time-occupation set with
// O(1) conflict detection via bitwise AND. It is the inner loop of the
// solver, called O(n^2 * m^2) times in the worst case for n courses and m
// options per course, so the representation is a fixed-width value type
// with the minimal possible per-step work.
package timebitmap

import (
	"strings"

	schederrors "github.com/oshawa-scheduler/core/pkg/errors"
)

// Slot is a canonical half-open-on-neither-side 20-minute time slot,
// identified by its begin and end HHMM boundary strings.
type Slot struct {
	Begin string
	End   string
}

// Slots is the canonical slot table: 20-minute cells from 08:10 to 22:00.
// Ported in meaning from the course-alerts TimeBitmap.SLOTS table.
var Slots = [...]Slot{
	{"0810", "0830"}, {"0840", "0900"}, {"0910", "0930"}, {"0940", "1000"},
	{"1010", "1030"}, {"1040", "1100"}, {"1110", "1130"}, {"1140", "1200"},
	{"1210", "1230"}, {"1240", "1300"}, {"1310", "1330"}, {"1340", "1400"},
	{"1410", "1430"}, {"1440", "1500"}, {"1510", "1530"}, {"1540", "1600"},
	{"1610", "1630"}, {"1640", "1700"}, {"1710", "1730"}, {"1740", "1800"},
	{"1810", "1830"}, {"1840", "1900"}, {"1910", "1930"}, {"1940", "2000"},
	{"2010", "2030"}, {"2040", "2100"}, {"2110", "2130"}, {"2140", "2200"},
}

// Days is the canonical weekday ordering used to derive bit offsets.
var Days = [...]string{
	"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
}

const (
	// W is the number of half-hour-aligned slots per day.
	W = len(Slots)
	// D is the number of weekdays.
	D = len(Days)
	// totalBits is W*D, the external contract's fixed width.
	totalBits = W * D
	wordBits  = 64
	wordCount = (totalBits + wordBits - 1) / wordBits
)

// TimeBitmap is a fixed-width weekly occupation set. The zero value is the
// empty bitmap ("asynchronous / no weekly footprint"). It is comparable and
// usable directly as a map key: equality is equality of the underlying bits,
// and Go's map implementation hashes it as such.
type TimeBitmap [wordCount]uint64

// Empty returns the empty bitmap.
func Empty() TimeBitmap {
	return TimeBitmap{}
}

// IsEmpty reports whether a has no set bits.
func IsEmpty(a TimeBitmap) bool {
	return a == TimeBitmap{}
}

// Union returns the bitwise OR of a and b.
func Union(a, b TimeBitmap) TimeBitmap {
	var out TimeBitmap
	for i := range out {
		out[i] = a[i] | b[i]
	}
	return out
}

// Intersect returns the bitwise AND of a and b.
func Intersect(a, b TimeBitmap) TimeBitmap {
	var out TimeBitmap
	for i := range out {
		out[i] = a[i] & b[i]
	}
	return out
}

func (a TimeBitmap) set(bit int) TimeBitmap {
	a[bit/wordBits] |= 1 << uint(bit%wordBits)
	return a
}

func (a TimeBitmap) test(bit int) bool {
	return a[bit/wordBits]&(1<<uint(bit%wordBits)) != 0
}

func dayIndex(day string) (int, bool) {
	day = strings.ToLower(strings.TrimSpace(day))
	for i, d := range Days {
		if d == day {
			return i, true
		}
	}
	return 0, false
}

func slotIndices(begin, end string) (int, int, bool, bool) {
	beginIdx, endIdx := -1, -1
	for i, s := range Slots {
		if s.Begin == begin {
			beginIdx = i
		}
		if s.End == end {
			endIdx = i
		}
	}
	return beginIdx, endIdx, beginIdx != -1, endIdx != -1
}

// FromSpan returns the bitmap with every cell in [begin, end] inclusive, on
// the given day, set. begin and end must each match a known slot boundary
// from the canonical table (the begin of some slot, and the end of some
// slot respectively); day must be one of the seven canonical weekday names
// (case-insensitive). Returns ErrUnknownTimeBoundary or ErrUnknownDay
// otherwise.
func FromSpan(begin, end, day string) (TimeBitmap, error) {
	dayIdx, ok := dayIndex(day)
	if !ok {
		return TimeBitmap{}, schederrors.Clone(schederrors.ErrUnknownDay, "unrecognized day: "+day)
	}

	beginIdx, endIdx, beginOK, endOK := slotIndices(begin, end)
	if !beginOK {
		return TimeBitmap{}, schederrors.Clone(schederrors.ErrUnknownTimeBoundary, "unrecognized start time: "+begin)
	}
	if !endOK {
		return TimeBitmap{}, schederrors.Clone(schederrors.ErrUnknownTimeBoundary, "unrecognized end time: "+end)
	}
	if endIdx < beginIdx {
		return TimeBitmap{}, schederrors.Clone(schederrors.ErrUnknownTimeBoundary, "end time precedes start time")
	}

	out := TimeBitmap{}
	first := beginIdx + dayIdx*W
	last := endIdx + dayIdx*W
	for bit := first; bit <= last; bit++ {
		out = out.set(bit)
	}
	return out, nil
}

// Overlaps performs a streaming conflict check: it maintains a running
// union u; for each input x it returns true as soon as u&x is non-zero,
// else folds u |= x. It returns false if every input was disjoint from the
// union of all inputs seen before it. O(k) in the number of inputs.
func Overlaps(bitmaps ...TimeBitmap) bool {
	var u TimeBitmap
	for _, x := range bitmaps {
		if !IsEmpty(Intersect(u, x)) {
			return true
		}
		u = Union(u, x)
	}
	return false
}

// CountIdleGapsPerDay returns, for each of the seven canonical days, the
// number of unset cells strictly between the first and last set cell of
// that day's W-bit slice. A day with no set bits contributes zero.
func CountIdleGapsPerDay(a TimeBitmap) map[string]int {
	result := make(map[string]int, D)
	for dayIdx, day := range Days {
		base := dayIdx * W
		first, last := -1, -1
		for i := 0; i < W; i++ {
			if a.test(base + i) {
				if first == -1 {
					first = i
				}
				last = i
			}
		}
		if first == -1 {
			result[day] = 0
			continue
		}
		idle := 0
		for i := first + 1; i < last; i++ {
			if !a.test(base + i) {
				idle++
			}
		}
		result[day] = idle
	}
	return result
}

// DaySpan returns the bitmap covering every slot of the given day, useful
// as a mask for "does this schedule have any class on this day" checks.
func DaySpan(day string) (TimeBitmap, error) {
	return FromSpan(Slots[0].Begin, Slots[W-1].End, day)
}

// MaskBefore returns the union, across all seven days, of every cell from
// the start of the day up to t (a known slot-end boundary). Used by the
// remove_classes_before filter.
func MaskBefore(t string) (TimeBitmap, error) {
	out := Empty()
	for _, day := range Days {
		span, err := FromSpan(Slots[0].Begin, t, day)
		if err != nil {
			return Empty(), err
		}
		out = Union(out, span)
	}
	return out, nil
}

// MaskAfter returns the union, across all seven days, of every cell from t
// (a known slot-begin boundary) to the end of the day. Used by the
// remove_classes_after filter.
func MaskAfter(t string) (TimeBitmap, error) {
	out := Empty()
	for _, day := range Days {
		span, err := FromSpan(t, Slots[W-1].End, day)
		if err != nil {
			return Empty(), err
		}
		out = Union(out, span)
	}
	return out, nil
}
