// Package timeframe parses bar timeframe expressions such as "15m" or "500t".
package timeframe

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"
)

var (
	ErrInvalidUnit  = errors.New("timeframe: invalid unit")
	ErrInvalidCount = errors.New("timeframe: invalid count")
)

// Kind selects how ticks are partitioned into bars.
type Kind int

const (
	// Ticks partitions by a fixed number of ticks.
	Ticks Kind = iota
	// Duration partitions by fixed wall-clock buckets.
	Duration
)

// Unit is the single-letter unit code of an expression. Codes are case-sensitive.
type Unit byte

const (
	UnitTick   Unit = 't'
	UnitSecond Unit = 's'
	UnitMinute Unit = 'm'
	UnitHour   Unit = 'h'
	UnitDay    Unit = 'D'
	UnitWeek   Unit = 'W'
)

var unitWidth = map[Unit]time.Duration{
	UnitSecond: time.Second,
	UnitMinute: time.Minute,
	UnitHour:   time.Hour,
	UnitDay:    24 * time.Hour,
	UnitWeek:   7 * 24 * time.Hour,
}

// Spec is a parsed timeframe. It is immutable once built.
type Spec struct {
	Kind  Kind
	Count int
	Unit  Unit
}

// TickCount builds a tick-count spec.
func TickCount(n int) Spec { return Spec{Kind: Ticks, Count: n, Unit: UnitTick} }

// Parse reads "<positive integer><unit>" where unit is one of t, s, m, h, D, W.
// The unit is validated before the count.
func Parse(expr string) (Spec, error) {
	if expr == "" {
		return Spec{}, fmt.Errorf("%w: empty expression", ErrInvalidUnit)
	}
	unit := Unit(expr[len(expr)-1])
	if _, ok := unitWidth[unit]; !ok && unit != UnitTick {
		return Spec{}, fmt.Errorf("%w: %q in %q (use t, s, m, h, D or W)", ErrInvalidUnit, string(unit), expr)
	}
	digits := expr[:len(expr)-1]
	if digits == "" {
		return Spec{}, fmt.Errorf("%w: missing count in %q", ErrInvalidCount, expr)
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return Spec{}, fmt.Errorf("%w: %q is not a positive integer", ErrInvalidCount, digits)
		}
	}
	n, err := strconv.Atoi(digits)
	if err != nil || n <= 0 {
		return Spec{}, fmt.Errorf("%w: %q is not a positive integer", ErrInvalidCount, digits)
	}
	if unit == UnitTick {
		return TickCount(n), nil
	}
	if int64(n) > math.MaxInt64/int64(unitWidth[unit]) {
		return Spec{}, fmt.Errorf("%w: %q overflows", ErrInvalidCount, expr)
	}
	return Spec{Kind: Duration, Count: n, Unit: unit}, nil
}

// MustParse is like Parse but panics on error.
func MustParse(expr string) Spec {
	s, err := Parse(expr)
	if err != nil {
		panic(err)
	}
	return s
}

// Width is the bucket width of a Duration spec, zero for tick specs.
func (s Spec) Width() time.Duration {
	if s.Kind != Duration {
		return 0
	}
	return time.Duration(s.Count) * unitWidth[s.Unit]
}

func (s Spec) String() string {
	return strconv.Itoa(s.Count) + string(s.Unit)
}
