package client

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/fivetwenty-io/sfapi/internal/query"
	"github.com/fivetwenty-io/sfapi/pkg/sfapi"
)

// namedPath appends named params to prefix, e.g. "/invoices/index.json/listinfo%3A1/...".
func namedPath(prefix string, params query.Params) string {
	encoded := query.NamedParams{}.Convert(params)
	if encoded == "" {
		return prefix
	}

	return prefix + "/" + encoded
}

// queryStringPath appends a standard query string to prefix.
func queryStringPath(prefix string, params query.Params) string {
	encoded := query.QueryString{}.Convert(params)
	if encoded == "" {
		return prefix
	}

	return prefix + "?" + encoded
}

// listParams starts every list query with listinfo, paging and sorting.
func listParams(pagination sfapi.Pagination, sort sfapi.Sort, maxItemsPerPage int) (query.Params, error) {
	params, err := pagingParams(pagination, sort, maxItemsPerPage)
	if err != nil {
		return nil, err
	}

	return append(query.Params{}.Add("listinfo", 1), params...), nil
}

func pagingParams(pagination sfapi.Pagination, sort sfapi.Sort, maxItemsPerPage int) (query.Params, error) {
	err := pagination.Validate(maxItemsPerPage)
	if err != nil {
		return nil, err
	}

	direction := sort.DirectionOrDefault()
	if !direction.IsValid() {
		return nil, fmt.Errorf("%w: unknown sort direction %q", sfapi.ErrInvalidArgument, direction)
	}

	return query.Params{}.
		Add("page", pagination.PageOrDefault()).
		Add("per_page", pagination.ItemsPerPageOrDefault()).
		Add("sort", sort.AttributeOrDefault()).
		Add("direction", string(direction)), nil
}

// addPeriod renders a period as "{field}", "{field}_since" and "{field}_to".
func addPeriod(params query.Params, field string, period *sfapi.TimePeriod) (query.Params, error) {
	if period == nil {
		return params, nil
	}

	if !period.Period.IsValid() {
		return nil, fmt.Errorf("%w: unknown time period %d for %s", sfapi.ErrInvalidArgument, period.Period, field)
	}

	params = params.Add(field, int(period.Period))

	if period.From != nil {
		params = params.Add(field+"_since", period.From.Format(sfapi.DateFormat))
	}

	if period.To != nil {
		params = params.Add(field+"_to", period.To.Format(sfapi.DateFormat))
	}

	return params, nil
}

func addPeriods(params query.Params, periods ...namedPeriod) (query.Params, error) {
	var err error

	for _, period := range periods {
		params, err = addPeriod(params, period.field, period.period)
		if err != nil {
			return nil, err
		}
	}

	return params, nil
}

type namedPeriod struct {
	field  string
	period *sfapi.TimePeriod
}

// joined renders multi-valued filters as "a|b|c", or nil when empty.
func joined[T any](values []T) any {
	if len(values) == 0 {
		return nil
	}

	parts := make([]string, 0, len(values))
	for _, value := range values {
		parts = append(parts, fmt.Sprint(value))
	}

	return strings.Join(parts, "|")
}

// encoded base64 encodes free text so the API accepts non-ASCII input.
func encoded(value string) any {
	if value == "" {
		return nil
	}

	return base64.StdEncoding.EncodeToString([]byte(value))
}

func optional(value string) any {
	if value == "" {
		return nil
	}

	return value
}

func invoiceListParams(q *sfapi.InvoiceQuery) (query.Params, error) {
	if q == nil {
		q = &sfapi.InvoiceQuery{}
	}

	params, err := listParams(q.Pagination, q.Sort, sfapi.MaxItemsPerPage)
	if err != nil {
		return nil, err
	}

	params = params.
		Add("amount_from", q.AmountFrom).
		Add("amount_to", q.AmountTo).
		Add("client_id", q.ClientID)

	params, err = addPeriod(params, "created", q.Created)
	if err != nil {
		return nil, err
	}

	params, err = addPeriod(params, "delivery", q.Delivery)
	if err != nil {
		return nil, err
	}

	params = params.
		Add("delivery_type", joined(q.DeliveryTypes)).
		Add("document_number", optional(q.DocumentNumber)).
		Add("ignore", joined(q.Ignore)).
		Add("invoice_no_formatted", optional(q.InvoiceNoFormatted))

	params, err = addPeriod(params, "modified", q.Modified)
	if err != nil {
		return nil, err
	}

	params = params.Add("order_no", optional(q.OrderNo))

	params, err = addPeriod(params, "paydate", q.PayDate)
	if err != nil {
		return nil, err
	}

	return params.
		Add("payment_type", joined(q.PaymentTypes)).
		Add("search", encoded(q.Search)).
		Add("status", joined(q.Statuses)).
		Add("tag", q.Tag).
		Add("type", optional(string(q.Type))).
		Add("variable", optional(q.Variable)), nil
}

func expenseListParams(q *sfapi.ExpenseQuery) (query.Params, error) {
	if q == nil {
		q = &sfapi.ExpenseQuery{}
	}

	params, err := listParams(q.Pagination, q.Sort, sfapi.MaxItemsPerPage)
	if err != nil {
		return nil, err
	}

	params = params.
		Add("amount_from", q.AmountFrom).
		Add("amount_to", q.AmountTo).
		Add("category", q.Category).
		Add("client_id", q.ClientID)

	params, err = addPeriods(params,
		namedPeriod{"created", q.Created},
		namedPeriod{"delivery", q.Delivery},
		namedPeriod{"due", q.Due},
		namedPeriod{"modified", q.Modified},
	)
	if err != nil {
		return nil, err
	}

	return params.
		Add("search", encoded(q.Search)).
		Add("status", joined(q.Statuses)).
		Add("type", optional(string(q.Type))), nil
}

func clientListParams(q *sfapi.ClientQuery) (query.Params, error) {
	if q == nil {
		q = &sfapi.ClientQuery{}
	}

	params, err := listParams(q.Pagination, q.Sort, sfapi.MaxItemsPerPage)
	if err != nil {
		return nil, err
	}

	params = params.Add("char_filter", optional(q.CharFilter))

	params, err = addPeriods(params,
		namedPeriod{"created", q.Created},
		namedPeriod{"modified", q.Modified},
	)
	if err != nil {
		return nil, err
	}

	return params.
		Add("search", encoded(q.Search)).
		Add("tag", q.Tag).
		Add("uuid", optional(q.UUID)), nil
}

func stockItemListParams(q *sfapi.StockItemQuery) (query.Params, error) {
	if q == nil {
		q = &sfapi.StockItemQuery{}
	}

	params, err := listParams(q.Pagination, q.Sort, sfapi.MaxItemsPerPage)
	if err != nil {
		return nil, err
	}

	return params.
		Add("price_from", q.PriceFrom).
		Add("price_to", q.PriceTo).
		Add("search", encoded(q.Search)).
		Add("sku", encoded(q.SKU)).
		Add("status", q.Status), nil
}

// createdPageParams serves the query string listings of stock movements and
// cash register items.
func createdPageParams(pagination sfapi.Pagination, sort sfapi.Sort, created *sfapi.TimePeriod) (query.Params, error) {
	params, err := pagingParams(pagination, sort, sfapi.MaxItemsPerPage)
	if err != nil {
		return nil, err
	}

	return addPeriod(params, "created", created)
}
