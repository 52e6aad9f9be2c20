package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/jwalitptl/restaurant-admin/internal/catalog"
	"github.com/jwalitptl/restaurant-admin/internal/client"
	"github.com/jwalitptl/restaurant-admin/internal/menu"
	"github.com/jwalitptl/restaurant-admin/internal/model"
	"github.com/jwalitptl/restaurant-admin/internal/screen"
	"github.com/jwalitptl/restaurant-admin/internal/service/audit"
	dishService "github.com/jwalitptl/restaurant-admin/internal/service/dish"
	orderService "github.com/jwalitptl/restaurant-admin/internal/service/order"
	reservationService "github.com/jwalitptl/restaurant-admin/internal/service/reservation"
	tableService "github.com/jwalitptl/restaurant-admin/internal/service/table"
	userService "github.com/jwalitptl/restaurant-admin/internal/service/user"
	"github.com/jwalitptl/restaurant-admin/internal/view"
	"github.com/jwalitptl/restaurant-admin/pkg/validator"
)

var errNoToken = errors.New("no token: pass --token or set CONSOLE_TOKEN")

type listOptions struct {
	filters []string
	search  string
	sort    string
	dir     string
	output  string
	zone    string
}

func (o listOptions) state() (view.FilterState, view.SortState, error) {
	fs := view.FilterState{}
	for _, f := range o.filters {
		k, v, ok := strings.Cut(f, "=")
		if !ok || strings.TrimSpace(k) == "" {
			return nil, view.SortState{}, fmt.Errorf("invalid filter %q, want key=value", f)
		}
		fs[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}
	return fs, view.SortState{Key: view.SortKey(o.sort), Direction: view.Direction(strings.ToLower(o.dir))}, nil
}

// lister fetches and prints one screen.
type lister func(ctx context.Context, api *client.API, loc *time.Location, o listOptions, w io.Writer) error

type column[T any] struct {
	title string
	value func(T) string
}

func listOf[T model.Record](load func(*client.API) screen.Loader[T], cat func(*time.Location) *view.Catalog[T], cols []column[T]) lister {
	return func(ctx context.Context, api *client.API, loc *time.Location, o listOptions, w io.Writer) error {
		fs, st, err := o.state()
		if err != nil {
			return err
		}
		raw, err := load(api)(ctx)
		if err != nil {
			return err
		}
		rows, err := view.Compute(raw, cat(loc), fs, o.search, st)
		if err != nil {
			return err
		}
		if o.output == "json" {
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			return enc.Encode(rows)
		}
		return printTable(w, rows, cols)
	}
}

func printTable[T any](w io.Writer, rows []T, cols []column[T]) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	titles := make([]string, len(cols))
	for i, c := range cols {
		titles[i] = c.title
	}
	fmt.Fprintln(tw, strings.Join(titles, "\t"))
	for _, r := range rows {
		cells := make([]string, len(cols))
		for i, c := range cols {
			cells[i] = c.value(r)
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	return tw.Flush()
}

func listers() map[string]lister {
	v := validator.New()
	auditor := audit.NewService(nil, nil)
	return map[string]lister{
		menu.Dishes: listOf(dishService.NewService(v, auditor).Loader, func(*time.Location) *view.Catalog[model.Dish] { return catalog.Dishes() }, []column[model.Dish]{
			{"ID", func(d model.Dish) string { return itoa(d.ID) }},
			{"NAME", func(d model.Dish) string { return d.Name }},
			{"CATEGORY", model.Dish.CategoryName},
			{"PRICE", func(d model.Dish) string { return d.Price.StringFixed(2) }},
			{"AVAILABLE", func(d model.Dish) string { return strconv.FormatBool(bool(d.IsAvailable)) }},
		}),
		menu.Orders: listOf(orderService.NewService(auditor).Loader, catalog.Orders, []column[model.Order]{
			{"ID", func(o model.Order) string { return itoa(o.ID) }},
			{"CUSTOMER", func(o model.Order) string { return o.CustomerName }},
			{"TABLE", model.Order.TableLabel},
			{"STATUS", func(o model.Order) string { return o.Status }},
			{"TOTAL", func(o model.Order) string { return optional(o.Total()) }},
			{"CREATED", func(o model.Order) string { return date(o.CreatedAt) }},
		}),
		menu.Reservations: listOf(reservationService.NewService(auditor).Loader, catalog.Reservations, []column[model.Reservation]{
			{"ID", func(r model.Reservation) string { return itoa(r.ID) }},
			{"GUEST", func(r model.Reservation) string { return r.Guest().Name }},
			{"TABLE", model.Reservation.TableName},
			{"GUESTS", func(r model.Reservation) string { return strconv.Itoa(r.NumberOfGuests) }},
			{"STATUS", func(r model.Reservation) string { return r.Status }},
			{"START", func(r model.Reservation) string { return date(r.StartDate) }},
		}),
		menu.Tables: listOf(tableService.NewService(v, auditor).Loader, func(*time.Location) *view.Catalog[model.Table] { return catalog.Tables() }, []column[model.Table]{
			{"ID", func(t model.Table) string { return itoa(t.ID) }},
			{"NAME", func(t model.Table) string { return t.Name }},
			{"CAPACITY", func(t model.Table) string { return strconv.Itoa(t.Capacity) }},
			{"TYPE", func(t model.Table) string { return t.Type }},
			{"STATUS", func(t model.Table) string { return t.Status }},
		}),
		menu.Users: listOf(userService.NewService(v, auditor).Loader, func(*time.Location) *view.Catalog[model.User] { return catalog.Users() }, []column[model.User]{
			{"ID", func(u model.User) string { return itoa(u.ID) }},
			{"NAME", func(u model.User) string { return u.Name }},
			{"EMAIL", func(u model.User) string { return u.Email }},
			{"ROLE", model.User.RoleName},
		}),
	}
}

func newListCommand(opts *globalOptions) *cobra.Command {
	all := listers()
	names := make([]string, 0, len(all))
	for k := range all {
		names = append(names, k)
	}
	sort.Strings(names)

	o := listOptions{}
	cmd := &cobra.Command{
		Use:       "list <" + strings.Join(names, "|") + ">",
		Short:     "Print a screen with filters, search and sort applied",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: names,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.token == "" {
				return errNoToken
			}
			if o.output != "table" && o.output != "json" {
				return fmt.Errorf("unknown output %q", o.output)
			}
			loc := time.Local
			if o.zone != "" {
				l, err := time.LoadLocation(o.zone)
				if err != nil {
					return err
				}
				loc = l
			}
			return all[args[0]](cmd.Context(), opts.client().WithToken(opts.token), loc, o, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringArrayVarP(&o.filters, "filter", "f", nil, "Filter as key=value, repeatable")
	cmd.Flags().StringVarP(&o.search, "search", "s", "", "Search term")
	cmd.Flags().StringVar(&o.sort, "sort", "", "Sort key (default: the screen's default)")
	cmd.Flags().StringVar(&o.dir, "dir", "", "Sort direction: asc or desc")
	cmd.Flags().StringVarP(&o.output, "output", "o", "table", "Output format: table or json")
	cmd.Flags().StringVar(&o.zone, "tz", "", "Time zone for date filters")
	return cmd
}

func itoa(n int64) string { return strconv.FormatInt(n, 10) }

func optional(v float64, ok bool) string {
	if !ok {
		return "-"
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func date(t model.Timestamp) string {
	if v, ok := t.Get(); ok {
		return v.Format("2006-01-02 15:04")
	}
	return "-"
}
