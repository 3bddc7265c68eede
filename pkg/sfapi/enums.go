package sfapi

import "strings"

// Currency is an ISO 4217 currency code accepted by the API.
type Currency string

// Supported currencies.
const (
	CurrencyEUR Currency = "EUR"
	CurrencyCZK Currency = "CZK"
	CurrencyUSD Currency = "USD"
	CurrencyGBP Currency = "GBP"
	CurrencyHUF Currency = "HUF"
	CurrencyPLN Currency = "PLN"
	CurrencyCHF Currency = "CHF"
	CurrencyRON Currency = "RON"
	CurrencyUAH Currency = "UAH"
)

var currencies = []Currency{
	CurrencyEUR, CurrencyCZK, CurrencyUSD, CurrencyGBP, CurrencyHUF,
	CurrencyPLN, CurrencyCHF, CurrencyRON, CurrencyUAH,
}

// IsValid reports whether c is a known currency.
func (c Currency) IsValid() bool { return contains(currencies, c) }

// ParseCurrency converts a case-insensitive code into a Currency.
func ParseCurrency(value string) (Currency, error) {
	return parse(currencies, Currency(strings.ToUpper(value)), "currency", value)
}

// Language is a three letter document language code.
type Language string

// Supported document languages.
const (
	LanguageSlovak    Language = "slo"
	LanguageCzech     Language = "cze"
	LanguageEnglish   Language = "eng"
	LanguageGerman    Language = "deu"
	LanguageHungarian Language = "hun"
	LanguagePolish    Language = "pol"
	LanguageRomanian  Language = "rom"
	LanguageRussian   Language = "rus"
	LanguageUkrainian Language = "ukr"
	LanguageCroatian  Language = "hrv"
	LanguageItalian   Language = "ita"
	LanguageSpanish   Language = "spa"
	LanguageFrench    Language = "fra"
	LanguageSlovenian Language = "slv"
)

var languages = []Language{
	LanguageSlovak, LanguageCzech, LanguageEnglish, LanguageGerman, LanguageHungarian,
	LanguagePolish, LanguageRomanian, LanguageRussian, LanguageUkrainian, LanguageCroatian,
	LanguageItalian, LanguageSpanish, LanguageFrench, LanguageSlovenian,
}

// IsValid reports whether l is a known language.
func (l Language) IsValid() bool { return contains(languages, l) }

// ParseLanguage converts a language code into a Language.
func ParseLanguage(value string) (Language, error) {
	return parse(languages, Language(strings.ToLower(value)), "language", value)
}

// PaymentType is the method an invoice is paid with.
type PaymentType string

// Supported payment types.
const (
	PaymentTypeTransfer       PaymentType = "transfer"
	PaymentTypeCash           PaymentType = "cash"
	PaymentTypeCard           PaymentType = "card"
	PaymentTypeCashOnDelivery PaymentType = "cod"
	PaymentTypePayPal         PaymentType = "paypal"
	PaymentTypeCredit         PaymentType = "credit"
	PaymentTypeDebit          PaymentType = "debit"
	PaymentTypeInkaso         PaymentType = "inkaso"
	PaymentTypeBarion         PaymentType = "barion"
	PaymentTypeBesteron       PaymentType = "besteron"
	PaymentTypeGoPay          PaymentType = "gopay"
	PaymentTypeAccreditation  PaymentType = "accreditation"
	PaymentTypePostalOrder    PaymentType = "postal_order"
	PaymentTypeOther          PaymentType = "other"
)

var paymentTypes = []PaymentType{
	PaymentTypeTransfer, PaymentTypeCash, PaymentTypeCard, PaymentTypeCashOnDelivery,
	PaymentTypePayPal, PaymentTypeCredit, PaymentTypeDebit, PaymentTypeInkaso,
	PaymentTypeBarion, PaymentTypeBesteron, PaymentTypeGoPay, PaymentTypeAccreditation,
	PaymentTypePostalOrder, PaymentTypeOther,
}

// IsValid reports whether p is a known payment type.
func (p PaymentType) IsValid() bool { return contains(paymentTypes, p) }

// ParsePaymentType converts a wire value into a PaymentType.
func ParsePaymentType(value string) (PaymentType, error) {
	return parse(paymentTypes, PaymentType(strings.ToLower(value)), "payment type", value)
}

// DeliveryType is how a document is delivered.
type DeliveryType string

// Supported delivery types.
const (
	DeliveryTypeMail        DeliveryType = "mail"
	DeliveryTypeCourier     DeliveryType = "courier"
	DeliveryTypePersonal    DeliveryType = "personal"
	DeliveryTypeHaulage     DeliveryType = "haulage"
	DeliveryTypePickupPoint DeliveryType = "pickup_point"
)

var deliveryTypes = []DeliveryType{
	DeliveryTypeMail, DeliveryTypeCourier, DeliveryTypePersonal, DeliveryTypeHaulage,
	DeliveryTypePickupPoint,
}

// IsValid reports whether d is a known delivery type.
func (d DeliveryType) IsValid() bool { return contains(deliveryTypes, d) }

// ParseDeliveryType converts a wire value into a DeliveryType.
func ParseDeliveryType(value string) (DeliveryType, error) {
	return parse(deliveryTypes, DeliveryType(strings.ToLower(value)), "delivery type", value)
}

// InvoiceStatus is the payment state of an invoice.
type InvoiceStatus int

// Invoice statuses.
const (
	InvoiceStatusNew           InvoiceStatus = 1
	InvoiceStatusPartiallyPaid InvoiceStatus = 2
	InvoiceStatusPaid          InvoiceStatus = 3
	InvoiceStatusOverdue       InvoiceStatus = 99
)

var invoiceStatuses = []InvoiceStatus{
	InvoiceStatusNew, InvoiceStatusPartiallyPaid, InvoiceStatusPaid, InvoiceStatusOverdue,
}

// IsValid reports whether s is a known invoice status.
func (s InvoiceStatus) IsValid() bool { return contains(invoiceStatuses, s) }

// InvoiceType is the kind of sales document.
type InvoiceType string

// Invoice types.
const (
	InvoiceTypeRegular  InvoiceType = "regular"
	InvoiceTypeProforma InvoiceType = "proforma"
	InvoiceTypeCancel   InvoiceType = "cancel"
	InvoiceTypeEstimate InvoiceType = "estimate"
	InvoiceTypeOrder    InvoiceType = "order"
	InvoiceTypeDelivery InvoiceType = "delivery"
)

var invoiceTypes = []InvoiceType{
	InvoiceTypeRegular, InvoiceTypeProforma, InvoiceTypeCancel, InvoiceTypeEstimate,
	InvoiceTypeOrder, InvoiceTypeDelivery,
}

// IsValid reports whether t is a known invoice type.
func (t InvoiceType) IsValid() bool { return contains(invoiceTypes, t) }

// ParseInvoiceType converts a wire value into an InvoiceType.
func ParseInvoiceType(value string) (InvoiceType, error) {
	return parse(invoiceTypes, InvoiceType(strings.ToLower(value)), "invoice type", value)
}

// ExpenseStatus is the payment state of an expense.
type ExpenseStatus int

// Expense statuses.
const (
	ExpenseStatusNew           ExpenseStatus = 1
	ExpenseStatusPartiallyPaid ExpenseStatus = 2
	ExpenseStatusPaid          ExpenseStatus = 3
	ExpenseStatusOverdue       ExpenseStatus = 99
)

var expenseStatuses = []ExpenseStatus{
	ExpenseStatusNew, ExpenseStatusPartiallyPaid, ExpenseStatusPaid, ExpenseStatusOverdue,
}

// IsValid reports whether s is a known expense status.
func (s ExpenseStatus) IsValid() bool { return contains(expenseStatuses, s) }

// ExpenseType is the kind of purchase document.
type ExpenseType string

// Expense types.
const (
	ExpenseTypeInvoice      ExpenseType = "invoice"
	ExpenseTypeBill         ExpenseType = "bill"
	ExpenseTypeInternal     ExpenseType = "internal"
	ExpenseTypeContribution ExpenseType = "contribution"
)

var expenseTypes = []ExpenseType{
	ExpenseTypeInvoice, ExpenseTypeBill, ExpenseTypeInternal, ExpenseTypeContribution,
}

// IsValid reports whether t is a known expense type.
func (t ExpenseType) IsValid() bool { return contains(expenseTypes, t) }

// SortDirection orders list results.
type SortDirection string

// Sort directions.
const (
	SortAscending  SortDirection = "ASC"
	SortDescending SortDirection = "DESC"
)

// IsValid reports whether d is ASC or DESC.
func (d SortDirection) IsValid() bool {
	return d == SortAscending || d == SortDescending
}

// TimePeriodType selects a relative or custom date range in list filters.
type TimePeriodType int

// Time periods understood by list filters.
const (
	PeriodAll         TimePeriodType = 0
	PeriodToday       TimePeriodType = 1
	PeriodYesterday   TimePeriodType = 2
	PeriodFromTo      TimePeriodType = 3
	PeriodThisMonth   TimePeriodType = 4
	PeriodLastMonth   TimePeriodType = 5
	PeriodThisYear    TimePeriodType = 6
	PeriodLastYear    TimePeriodType = 7
	PeriodThisQuarter TimePeriodType = 8
	PeriodLastQuarter TimePeriodType = 9
	PeriodThisWeek    TimePeriodType = 10
	PeriodLastWeek    TimePeriodType = 11
)

// IsValid reports whether p is a known period.
func (p TimePeriodType) IsValid() bool {
	return p >= PeriodAll && p <= PeriodLastWeek
}

// ExportFormat is the file format of a bulk export.
type ExportFormat string

// Export formats.
const (
	ExportFormatPDF  ExportFormat = "pdf"
	ExportFormatXLSX ExportFormat = "xlsx"
)

// IsValid reports whether f is a known export format.
func (f ExportFormat) IsValid() bool {
	return f == ExportFormatPDF || f == ExportFormatXLSX
}

// ParseExportFormat converts a wire value into an ExportFormat.
func ParseExportFormat(value string) (ExportFormat, error) {
	return parse([]ExportFormat{ExportFormatPDF, ExportFormatXLSX}, ExportFormat(strings.ToLower(value)), "export format", value)
}

// DocumentType identifies a document in a related-documents link.
type DocumentType string

// Linkable document types.
const (
	DocumentTypeInvoice DocumentType = "invoice"
	DocumentTypeExpense DocumentType = "expense"
)

// IsValid reports whether t is a linkable document type.
func (t DocumentType) IsValid() bool {
	return t == DocumentTypeInvoice || t == DocumentTypeExpense
}

// CashRegisterItemType is the direction of a cash register movement.
type CashRegisterItemType string

// Cash register item types.
const (
	CashRegisterIncome  CashRegisterItemType = "income"
	CashRegisterExpense CashRegisterItemType = "expense"
)

// IsValid reports whether t is income or expense.
func (t CashRegisterItemType) IsValid() bool {
	return t == CashRegisterIncome || t == CashRegisterExpense
}

func contains[T comparable](values []T, value T) bool {
	for _, candidate := range values {
		if candidate == value {
			return true
		}
	}

	return false
}

func parse[T comparable](values []T, value T, name, raw string) (T, error) {
	if contains(values, value) {
		return value, nil
	}

	var zero T

	return zero, invalidArgument("unknown %s %q", name, raw)
}
