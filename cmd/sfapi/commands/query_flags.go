package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/sfapi/pkg/sfapi"
)

var periodNames = map[string]sfapi.TimePeriodType{
	"all":          sfapi.PeriodAll,
	"today":        sfapi.PeriodToday,
	"yesterday":    sfapi.PeriodYesterday,
	"range":        sfapi.PeriodFromTo,
	"this-month":   sfapi.PeriodThisMonth,
	"last-month":   sfapi.PeriodLastMonth,
	"this-year":    sfapi.PeriodThisYear,
	"last-year":    sfapi.PeriodLastYear,
	"this-quarter": sfapi.PeriodThisQuarter,
	"last-quarter": sfapi.PeriodLastQuarter,
	"this-week":    sfapi.PeriodThisWeek,
	"last-week":    sfapi.PeriodLastWeek,
}

// listFlags holds the paging and sorting flags shared by list commands.
type listFlags struct {
	page      int
	perPage   int
	sort      string
	direction string
}

func (f *listFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.page, "page", sfapi.DefaultPage, "page number")
	cmd.Flags().IntVar(&f.perPage, "per-page", sfapi.DefaultItemsPerPage, "results per page (max 100)")
	cmd.Flags().StringVar(&f.sort, "sort", sfapi.DefaultSortAttribute, "attribute to sort by")
	cmd.Flags().StringVar(&f.direction, "direction", string(sfapi.DefaultSortDirection), "sort direction (ASC, DESC)")
}

func (f *listFlags) build() (sfapi.Pagination, sfapi.Sort, error) {
	pagination, err := sfapi.NewPagination(f.page, f.perPage, sfapi.MaxItemsPerPage)
	if err != nil {
		return sfapi.Pagination{}, sfapi.Sort{}, err
	}

	sort, err := sfapi.NewSort(f.sort, sfapi.SortDirection(strings.ToUpper(f.direction)))
	if err != nil {
		return sfapi.Pagination{}, sfapi.Sort{}, err
	}

	return pagination, sort, nil
}

// periodFlags is a named period with optional range bounds, e.g.
// --created this-month or --created range --created-from 2024-01-01.
type periodFlags struct {
	name   string
	period string
	from   string
	to     string
}

func newPeriodFlags(name string) *periodFlags {
	return &periodFlags{name: name}
}

func (f *periodFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.period, f.name, "", fmt.Sprintf("%s period (today, this-month, range, ...)", f.name))
	cmd.Flags().StringVar(&f.from, f.name+"-from", "", fmt.Sprintf("start of the %s range (YYYY-MM-DD)", f.name))
	cmd.Flags().StringVar(&f.to, f.name+"-to", "", fmt.Sprintf("end of the %s range (YYYY-MM-DD)", f.name))
}

// build returns nil when no period was requested.
func (f *periodFlags) build() (*sfapi.TimePeriod, error) {
	if f.period == "" && f.from == "" && f.to == "" {
		return nil, nil //nolint:nilnil // no filter
	}

	periodName := f.period
	if periodName == "" {
		periodName = "range"
	}

	periodType, ok := periodNames[strings.ToLower(periodName)]
	if !ok {
		return nil, fmt.Errorf("%w: unknown %s period %q", sfapi.ErrInvalidArgument, f.name, f.period)
	}

	from, err := parseDate(f.from)
	if err != nil {
		return nil, fmt.Errorf("--%s-from: %w", f.name, err)
	}

	to, err := parseDate(f.to)
	if err != nil {
		return nil, fmt.Errorf("--%s-to: %w", f.name, err)
	}

	period, err := sfapi.NewTimePeriod(periodType, from, to)
	if err != nil {
		return nil, err
	}

	return &period, nil
}

func parseDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil //nolint:nilnil // optional bound
	}

	date, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return nil, fmt.Errorf("%w: %q is not a YYYY-MM-DD date", sfapi.ErrInvalidArgument, value)
	}

	return &date, nil
}

func parseDecimal(value string) (*decimal.Decimal, error) {
	if value == "" {
		return nil, nil //nolint:nilnil // optional bound
	}

	amount, err := decimal.NewFromString(value)
	if err != nil {
		return nil, fmt.Errorf("%w: %q is not a number", sfapi.ErrInvalidArgument, value)
	}

	return &amount, nil
}

// optionalID returns nil unless the flag was set.
func optionalID(cmd *cobra.Command, name string, value int) *int {
	if !cmd.Flags().Changed(name) {
		return nil
	}

	return &value
}
