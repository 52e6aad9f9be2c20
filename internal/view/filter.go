package view

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
)

// All is the select sentinel meaning "do not constrain".
const All = "all"

const dayLayout = "2006-01-02"

var (
	ErrInvalidFilter  = errors.New("invalid filter value")
	ErrUnknownSortKey = errors.New("unknown sort key")
)

// FilterState maps filter keys to the raw values the user selected.
// Select, range and date inputs all arrive as strings.
type FilterState map[string]string

func (f FilterState) Get(key string) string {
	return strings.TrimSpace(f[key])
}

// Clone returns an independent copy of f.
func (f FilterState) Clone() FilterState {
	out := make(FilterState, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// canonical is a stable encoding of the non-empty entries, used as a memo key.
func (f FilterState) canonical() string {
	keys := make([]string, 0, len(f))
	for k, v := range f {
		if strings.TrimSpace(v) != "" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	var b strings.Builder
	for _, k := range keys {
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(f.Get(k))
		b.WriteByte(0)
	}
	return b.String()
}

// Predicate reports whether a record passes one filter.
type Predicate[T any] func(T) bool

// Filter is one named entry of a predicate catalog. Build returns a nil
// predicate when the filter is inactive for the given state.
type Filter[T any] struct {
	Name  string
	Keys  []string
	Build func(FilterState) (Predicate[T], error)
}

func inactive(v string) bool {
	return v == "" || strings.EqualFold(v, All)
}

func invalid(key, value, reason string) error {
	return fmt.Errorf("%w: %s=%q %s", ErrInvalidFilter, key, value, reason)
}

// Equal matches a field against the selected value, compared as strings.
func Equal[T any](key string, field func(T) string) Filter[T] {
	return Filter[T]{
		Name: key,
		Keys: []string{key},
		Build: func(fs FilterState) (Predicate[T], error) {
			want := fs.Get(key)
			if inactive(want) {
				return nil, nil
			}
			return func(r T) bool { return field(r) == want }, nil
		},
	}
}

// Choice is a three-way boolean filter: "all", the yes value, or the no value.
func Choice[T any](key, yes, no string, field func(T) bool) Filter[T] {
	return Filter[T]{
		Name: key,
		Keys: []string{key},
		Build: func(fs FilterState) (Predicate[T], error) {
			v := fs.Get(key)
			switch {
			case inactive(v):
				return nil, nil
			case v == yes:
				return func(r T) bool { return field(r) }, nil
			case v == no:
				return func(r T) bool { return !field(r) }, nil
			}
			return nil, invalid(key, v, "must be one of all, "+yes+", "+no)
		},
	}
}

// Flag constrains only while its toggle is on; a record must then have the flag set.
func Flag[T any](key string, field func(T) bool) Filter[T] {
	return Filter[T]{
		Name: key,
		Keys: []string{key},
		Build: func(fs FilterState) (Predicate[T], error) {
			v := fs.Get(key)
			if v == "" {
				return nil, nil
			}
			on, err := strconv.ParseBool(v)
			if err != nil {
				return nil, invalid(key, v, "must be a boolean")
			}
			if !on {
				return nil, nil
			}
			return func(r T) bool { return field(r) }, nil
		},
	}
}

type bounds struct {
	min, max       float64
	hasMin, hasMax bool
}

func (b bounds) set() bool { return b.hasMin || b.hasMax }

func (b bounds) contains(n float64) bool {
	if b.hasMin && n < b.min {
		return false
	}
	if b.hasMax && n > b.max {
		return false
	}
	return true
}

func parseBound(fs FilterState, key string) (float64, bool, error) {
	v := fs.Get(key)
	if v == "" {
		return 0, false, nil
	}
	n, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false, invalid(key, v, "must be a number")
	}
	return n, true, nil
}

func parseBounds(fs FilterState, minKey, maxKey string) (bounds, error) {
	var (
		b   bounds
		err error
	)
	if b.min, b.hasMin, err = parseBound(fs, minKey); err != nil {
		return b, err
	}
	if b.max, b.hasMax, err = parseBound(fs, maxKey); err != nil {
		return b, err
	}
	return b, nil
}

// Range is an inclusive numeric range; either bound may be absent.
func Range[T any](name, minKey, maxKey string, field func(T) float64) Filter[T] {
	return Filter[T]{
		Name: name,
		Keys: []string{minKey, maxKey},
		Build: func(fs FilterState) (Predicate[T], error) {
			b, err := parseBounds(fs, minKey, maxKey)
			if err != nil || !b.set() {
				return nil, err
			}
			return func(r T) bool { return b.contains(field(r)) }, nil
		},
	}
}

// OptionalRange is Range over a field a record may lack. Once any bound is
// set, records without the field are excluded.
func OptionalRange[T any](name, minKey, maxKey string, field func(T) (float64, bool)) Filter[T] {
	return Filter[T]{
		Name: name,
		Keys: []string{minKey, maxKey},
		Build: func(fs FilterState) (Predicate[T], error) {
			b, err := parseBounds(fs, minKey, maxKey)
			if err != nil || !b.set() {
				return nil, err
			}
			return func(r T) bool {
				n, ok := field(r)
				return ok && b.contains(n)
			}, nil
		},
	}
}

// DateRange keeps records whose timestamp falls within [start of from day,
// end of to day] in loc. Records without a timestamp fail once a bound is set.
func DateRange[T any](name, fromKey, toKey string, loc *time.Location, field func(T) (time.Time, bool)) Filter[T] {
	if loc == nil {
		loc = time.Local
	}
	return Filter[T]{
		Name: name,
		Keys: []string{fromKey, toKey},
		Build: func(fs FilterState) (Predicate[T], error) {
			from, hasFrom, err := parseDay(fs, fromKey, loc)
			if err != nil {
				return nil, err
			}
			to, hasTo, err := parseDay(fs, toKey, loc)
			if err != nil {
				return nil, err
			}
			if !hasFrom && !hasTo {
				return nil, nil
			}
			// last millisecond of the "to" day
			to = to.AddDate(0, 0, 1).Add(-time.Millisecond)
			return func(r T) bool {
				ts, ok := field(r)
				if !ok {
					return false
				}
				if hasFrom && ts.Before(from) {
					return false
				}
				if hasTo && ts.After(to) {
					return false
				}
				return true
			}, nil
		},
	}
}

func parseDay(fs FilterState, key string, loc *time.Location) (time.Time, bool, error) {
	v := fs.Get(key)
	if v == "" {
		return time.Time{}, false, nil
	}
	day, err := time.ParseInLocation(dayLayout, v, loc)
	if err != nil {
		return time.Time{}, false, invalid(key, v, "must be a YYYY-MM-DD date")
	}
	return day, true, nil
}

// matchesText reports whether the joined, lowercased fields contain term.
// term must already be trimmed and lowercased.
func matchesText(fields []string, term string) bool {
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(strings.Join(fields, " ")), term)
}

// NormalizeTerm trims and lowercases a search term.
func NormalizeTerm(term string) string {
	return strings.ToLower(strings.TrimSpace(term))
}
