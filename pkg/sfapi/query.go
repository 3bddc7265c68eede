package sfapi

import (
	"time"

	"github.com/shopspring/decimal"
)

// List defaults applied when a query leaves a field at its zero value.
const (
	DefaultPage          = 1
	DefaultItemsPerPage  = 100
	MaxItemsPerPage      = 100
	DefaultSortAttribute = "id"
	DefaultSortDirection = SortDescending
)

// Pagination selects one page of a list. The zero value means page 1 with
// DefaultItemsPerPage items.
type Pagination struct {
	Page         int `json:"page"     yaml:"page"`
	ItemsPerPage int `json:"per_page" yaml:"per_page"`
}

// NewPagination validates page >= 1 and 1 <= itemsPerPage <= maxItemsPerPage.
func NewPagination(page, itemsPerPage, maxItemsPerPage int) (Pagination, error) {
	if page < 1 {
		return Pagination{}, invalidArgument("page must be at least 1, got %d", page)
	}

	if itemsPerPage < 1 {
		return Pagination{}, invalidArgument("items per page must be between 1 and %d, got %d", maxItemsPerPage, itemsPerPage)
	}

	p := Pagination{Page: page, ItemsPerPage: itemsPerPage}

	err := p.Validate(maxItemsPerPage)
	if err != nil {
		return Pagination{}, err
	}

	return p, nil
}

// Validate checks explicitly set values against maxItemsPerPage. Zero values
// are accepted since they resolve to defaults.
func (p Pagination) Validate(maxItemsPerPage int) error {
	if p.Page < 0 {
		return invalidArgument("page must be at least 1, got %d", p.Page)
	}

	if p.ItemsPerPage < 0 || p.ItemsPerPage > maxItemsPerPage {
		return invalidArgument("items per page must be between 1 and %d, got %d", maxItemsPerPage, p.ItemsPerPage)
	}

	return nil
}

// PageOrDefault returns Page or DefaultPage when unset.
func (p Pagination) PageOrDefault() int {
	if p.Page == 0 {
		return DefaultPage
	}

	return p.Page
}

// ItemsPerPageOrDefault returns ItemsPerPage or DefaultItemsPerPage when unset.
func (p Pagination) ItemsPerPageOrDefault() int {
	if p.ItemsPerPage == 0 {
		return DefaultItemsPerPage
	}

	return p.ItemsPerPage
}

// Sort orders a list by one attribute. The zero value means "id DESC".
type Sort struct {
	Attribute string        `json:"sort"      yaml:"sort"`
	Direction SortDirection `json:"direction" yaml:"direction"`
}

// NewSort validates a non-empty attribute and a known direction.
func NewSort(attribute string, direction SortDirection) (Sort, error) {
	if attribute == "" {
		return Sort{}, invalidArgument("sort attribute is required")
	}

	if !direction.IsValid() {
		return Sort{}, invalidArgument("unknown sort direction %q", direction)
	}

	return Sort{Attribute: attribute, Direction: direction}, nil
}

// AttributeOrDefault returns Attribute or DefaultSortAttribute.
func (s Sort) AttributeOrDefault() string {
	if s.Attribute == "" {
		return DefaultSortAttribute
	}

	return s.Attribute
}

// DirectionOrDefault returns Direction or DefaultSortDirection.
func (s Sort) DirectionOrDefault() SortDirection {
	if s.Direction == "" {
		return DefaultSortDirection
	}

	return s.Direction
}

// TimePeriod filters by a date range. From and To are only meaningful with
// PeriodFromTo.
type TimePeriod struct {
	Period TimePeriodType `json:"period"         yaml:"period"`
	From   *time.Time     `json:"from,omitempty" yaml:"from,omitempty"`
	To     *time.Time     `json:"to,omitempty"   yaml:"to,omitempty"`
}

// NewTimePeriod validates the period and its bounds.
func NewTimePeriod(period TimePeriodType, from, to *time.Time) (TimePeriod, error) {
	if !period.IsValid() {
		return TimePeriod{}, invalidArgument("unknown time period %d", period)
	}

	if period != PeriodFromTo && (from != nil || to != nil) {
		return TimePeriod{}, invalidArgument("from and to require the from-to period")
	}

	if from != nil && to != nil && from.After(*to) {
		return TimePeriod{}, invalidArgument("period start %s is after its end %s",
			from.Format(time.DateOnly), to.Format(time.DateOnly))
	}

	return TimePeriod{Period: period, From: from, To: to}, nil
}

// InvoiceQuery filters the invoice list. Unset fields are not sent.
type InvoiceQuery struct {
	Pagination Pagination
	Sort       Sort

	AmountFrom         *decimal.Decimal
	AmountTo           *decimal.Decimal
	ClientID           *int
	Created            *TimePeriod
	Delivery           *TimePeriod
	DeliveryTypes      []DeliveryType
	DocumentNumber     string
	Ignore             []int
	InvoiceNoFormatted string
	Modified           *TimePeriod
	OrderNo            string
	PayDate            *TimePeriod
	PaymentTypes       []PaymentType
	Search             string
	Statuses           []InvoiceStatus
	Tag                *int
	Type               InvoiceType
	Variable           string
}

// ExpenseQuery filters the expense list.
type ExpenseQuery struct {
	Pagination Pagination
	Sort       Sort

	AmountFrom *decimal.Decimal
	AmountTo   *decimal.Decimal
	Category   *int
	ClientID   *int
	Created    *TimePeriod
	Delivery   *TimePeriod
	Due        *TimePeriod
	Modified   *TimePeriod
	Search     string
	Statuses   []ExpenseStatus
	Type       ExpenseType
}

// ClientQuery filters the client list.
type ClientQuery struct {
	Pagination Pagination
	Sort       Sort

	CharFilter string
	Created    *TimePeriod
	Modified   *TimePeriod
	Search     string
	Tag        *int
	UUID       string
}

// StockItemQuery filters the stock item list.
type StockItemQuery struct {
	Pagination Pagination
	Sort       Sort

	PriceFrom *decimal.Decimal
	PriceTo   *decimal.Decimal
	Search    string
	SKU       string
	Status    *int
}

// StockMovementQuery pages through the movements of one stock item.
type StockMovementQuery struct {
	Pagination Pagination
	Sort       Sort
	Created    *TimePeriod
}

// CashRegisterItemQuery pages through the items of one cash register.
type CashRegisterItemQuery struct {
	Pagination Pagination
	Sort       Sort
	Created    *TimePeriod
}
