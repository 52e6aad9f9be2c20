package view

import (
	"cmp"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

func ParseDirection(s string) (Direction, error) {
	switch Direction(strings.ToLower(strings.TrimSpace(s))) {
	case "", Asc:
		return Asc, nil
	case Desc:
		return Desc, nil
	}
	return "", fmt.Errorf("%w: direction %q must be asc or desc", ErrInvalidFilter, s)
}

type SortKey string

type SortState struct {
	Key       SortKey   `json:"key"`
	Direction Direction `json:"direction"`
}

// Toggle flips the direction and keeps the key.
func (s SortState) Toggle() SortState {
	if s.Direction == Desc {
		s.Direction = Asc
	} else {
		s.Direction = Desc
	}
	return s
}

// Comparator orders two records: negative, zero or positive.
type Comparator[T any] func(a, b T) int

// Collators keep internal buffers and are not safe for concurrent use.
var collators = sync.Pool{
	New: func() any { return collate.New(language.English) },
}

func compareStrings(a, b string) int {
	c := collators.Get().(*collate.Collator)
	defer collators.Put(c)
	return c.CompareString(a, b)
}

// Strings compares a text field with locale-aware collation.
func Strings[T any](field func(T) string) Comparator[T] {
	return func(a, b T) int { return compareStrings(field(a), field(b)) }
}

func Numbers[T any](field func(T) float64) Comparator[T] {
	return func(a, b T) int { return cmp.Compare(field(a), field(b)) }
}

// OptionalNumbers sorts records lacking the field as +Inf.
func OptionalNumbers[T any](field func(T) (float64, bool)) Comparator[T] {
	value := func(r T) float64 {
		if n, ok := field(r); ok {
			return n
		}
		return math.Inf(1)
	}
	return func(a, b T) int { return cmp.Compare(value(a), value(b)) }
}

// Bools puts true before false.
func Bools[T any](field func(T) bool) Comparator[T] {
	return func(a, b T) int {
		av, bv := field(a), field(b)
		switch {
		case av == bv:
			return 0
		case av:
			return -1
		}
		return 1
	}
}

// Times compares millisecond timestamps; a missing time counts as the epoch.
func Times[T any](field func(T) (time.Time, bool)) Comparator[T] {
	millis := func(r T) int64 {
		if t, ok := field(r); ok {
			return t.UnixMilli()
		}
		return 0
	}
	return func(a, b T) int { return cmp.Compare(millis(a), millis(b)) }
}

func (c Comparator[T]) direction(d Direction) Comparator[T] {
	if d != Desc {
		return c
	}
	return func(a, b T) int { return -c(a, b) }
}
