package view

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	id    int
	name  string
	kind  string
	price float64
	prep  *float64
	open  bool
	at    time.Time
	note  string
}

func ptr(f float64) *float64 { return &f }

func itemCatalog() *Catalog[item] {
	return &Catalog[item]{
		Name: "items",
		Filters: []Filter[item]{
			Equal("kind", func(i item) string { return i.kind }),
			Choice("state", "open", "closed", func(i item) bool { return i.open }),
			Flag("only_open", func(i item) bool { return i.open }),
			Range("price", "min_price", "max_price", func(i item) float64 { return i.price }),
			OptionalRange("prep", "min_prep", "max_prep", func(i item) (float64, bool) {
				if i.prep == nil {
					return 0, false
				}
				return *i.prep, true
			}),
			DateRange("date", "date_from", "date_to", time.UTC, func(i item) (time.Time, bool) {
				return i.at, !i.at.IsZero()
			}),
		},
		Search: func(i item) []string { return []string{i.name, i.note} },
		Sorts: map[SortKey]Comparator[item]{
			"name":  Strings(func(i item) string { return i.name }),
			"price": Numbers(func(i item) float64 { return i.price }),
			"prep": OptionalNumbers(func(i item) (float64, bool) {
				if i.prep == nil {
					return 0, false
				}
				return *i.prep, true
			}),
			"open": Bools(func(i item) bool { return i.open }),
			"date": Times(func(i item) (time.Time, bool) { return i.at, !i.at.IsZero() }),
		},
		DefaultSort: SortState{Key: "name", Direction: Asc},
	}
}

func ids(items []item) []int {
	out := make([]int, len(items))
	for i, it := range items {
		out[i] = it.id
	}
	return out
}

func TestComputeRangeFilter(t *testing.T) {
	raw := []item{{id: 1, name: "a", price: 5}, {id: 2, name: "b", price: 15}, {id: 3, name: "c", price: 25}}

	got, err := Compute(raw, itemCatalog(), FilterState{"min_price": "10", "max_price": "20"}, "", SortState{})
	require.NoError(t, err)
	assert.Equal(t, []int{2}, ids(got))

	got, err = Compute(raw, itemCatalog(), FilterState{"min_price": "15"}, "", SortState{})
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3}, ids(got), "bounds are inclusive")
}

func TestComputeFiltersAreConjunctive(t *testing.T) {
	raw := []item{
		{id: 1, name: "a", kind: "x", open: true, price: 10},
		{id: 2, name: "b", kind: "x", open: false, price: 10},
		{id: 3, name: "c", kind: "y", open: true, price: 10},
	}
	got, err := Compute(raw, itemCatalog(), FilterState{"kind": "x", "state": "open"}, "", SortState{})
	require.NoError(t, err)
	assert.Equal(t, []int{1}, ids(got))

	got, err = Compute(raw, itemCatalog(), FilterState{"kind": "all", "state": "all", "only_open": "false"}, "", SortState{})
	require.NoError(t, err)
	assert.Len(t, got, 3)

	got, err = Compute(raw, itemCatalog(), FilterState{"only_open": "true"}, "", SortState{})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3}, ids(got))
}

func TestOptionalRangeExcludesMissingOnlyWhenBounded(t *testing.T) {
	raw := []item{{id: 1, name: "a", prep: ptr(10)}, {id: 2, name: "b"}, {id: 3, name: "c", prep: ptr(40)}}

	got, err := Compute(raw, itemCatalog(), FilterState{}, "", SortState{})
	require.NoError(t, err)
	assert.Len(t, got, 3)

	got, err = Compute(raw, itemCatalog(), FilterState{"max_prep": "30"}, "", SortState{})
	require.NoError(t, err)
	assert.Equal(t, []int{1}, ids(got))
}

func TestDateRangeCoversWholeDays(t *testing.T) {
	raw := []item{
		{id: 1, name: "a", at: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		{id: 2, name: "b", at: time.Date(2024, 3, 2, 23, 59, 59, 0, time.UTC)},
		{id: 3, name: "c", at: time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC)},
		{id: 4, name: "d"},
	}
	got, err := Compute(raw, itemCatalog(), FilterState{"date_from": "2024-03-01", "date_to": "2024-03-02"}, "", SortState{})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, ids(got))
}

func TestInvalidFilterValues(t *testing.T) {
	cases := []FilterState{
		{"min_price": "cheap"},
		{"date_from": "03/01/2024"},
		{"state": "maybe"},
		{"only_open": "sometimes"},
		{"min_price": "NaN"},
		{"max_price": "Inf"},
		{"min_prep": "-infinity"},
	}
	for _, fs := range cases {
		_, err := Compute(nil, itemCatalog(), fs, "", SortState{})
		assert.ErrorIs(t, err, ErrInvalidFilter, "%v", fs)
	}

	_, err := Compute(nil, itemCatalog(), nil, "", SortState{Key: "weight"})
	assert.ErrorIs(t, err, ErrUnknownSortKey)
}

func TestSearchMatchesAnyField(t *testing.T) {
	raw := []item{
		{id: 1, name: "Alice", note: "RUSH delivery"},
		{id: 2, name: "Bob", note: ""},
		{id: 3, name: "Rusher", note: ""},
	}
	got, err := Compute(raw, itemCatalog(), nil, "  rush ", SortState{})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3}, ids(got))

	got, err = Compute(raw, itemCatalog(), nil, "   ", SortState{})
	require.NoError(t, err)
	assert.Len(t, got, 3, "blank term matches everything")
}

func TestSortIsStableAndDirectional(t *testing.T) {
	raw := []item{
		{id: 1, name: "b", price: 10},
		{id: 2, name: "a", price: 5},
		{id: 3, name: "c", price: 10},
		{id: 4, name: "d", price: 5},
	}
	got, err := Compute(raw, itemCatalog(), nil, "", SortState{Key: "price", Direction: Asc})
	require.NoError(t, err)
	assert.Equal(t, []int{2, 4, 1, 3}, ids(got))

	got, err = Compute(raw, itemCatalog(), nil, "", SortState{Key: "price", Direction: Desc})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3, 2, 4}, ids(got), "ties keep input order in both directions")

	assert.Equal(t, []int{1, 2, 3, 4}, ids(raw), "raw input is untouched")
}

func TestSortMissingValues(t *testing.T) {
	raw := []item{
		{id: 1, name: "a"},
		{id: 2, name: "b", prep: ptr(20), at: time.Unix(100, 0)},
		{id: 3, name: "c", prep: ptr(5), at: time.Unix(50, 0)},
	}
	got, err := Compute(raw, itemCatalog(), nil, "", SortState{Key: "prep"})
	require.NoError(t, err)
	assert.Equal(t, []int{3, 2, 1}, ids(got), "missing numbers sort last ascending")

	got, err = Compute(raw, itemCatalog(), nil, "", SortState{Key: "date"})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3, 2}, ids(got), "missing dates sort as the epoch")
}

func TestSortStringsAndBools(t *testing.T) {
	raw := []item{{id: 1, name: "banana"}, {id: 2, name: "Apple", open: true}, {id: 3, name: "cherry"}}
	got, err := Compute(raw, itemCatalog(), nil, "", SortState{Key: "name"})
	require.NoError(t, err)
	assert.Equal(t, []int{2, 1, 3}, ids(got))

	got, err = Compute(raw, itemCatalog(), nil, "", SortState{Key: "open"})
	require.NoError(t, err)
	assert.Equal(t, []int{2, 1, 3}, ids(got))
}

func TestToggle(t *testing.T) {
	s := SortState{Key: "date", Direction: Desc}
	s = s.Toggle()
	assert.Equal(t, SortState{Key: "date", Direction: Asc}, s)
	assert.Equal(t, Desc, s.Toggle().Direction)
}

func TestEngineMemoizes(t *testing.T) {
	raw := []item{{id: 1, name: "b"}, {id: 2, name: "a"}}
	e := NewEngine(itemCatalog())

	first, err := e.Derive(1, raw, FilterState{"kind": ""}, "", SortState{})
	require.NoError(t, err)
	assert.Equal(t, SortState{Key: "name", Direction: Asc}, first.Sort)
	assert.Equal(t, []int{2, 1}, ids(first.Rows))
	assert.False(t, first.Memoized)

	again, err := e.Derive(1, raw, FilterState{}, "", SortState{})
	require.NoError(t, err)
	assert.Equal(t, ids(first.Rows), ids(again.Rows))
	assert.True(t, again.Memoized)
	assert.Equal(t, 1, e.Hits())

	first.Rows[0].name = "mutated"
	again, _ = e.Derive(1, raw, nil, "", SortState{})
	assert.Equal(t, "a", again.Rows[0].name, "callers get their own copy")

	raw = append(raw, item{id: 3, name: "0"})
	next, err := e.Derive(2, raw, nil, "", SortState{})
	require.NoError(t, err)
	assert.False(t, next.Memoized)
	assert.Equal(t, []int{3, 2, 1}, ids(next.Rows))

	e.Reset()
	next, err = e.Derive(2, raw, nil, "", SortState{})
	require.NoError(t, err)
	assert.False(t, next.Memoized)
}
