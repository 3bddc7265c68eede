package client

import (
	"context"
	"io"
	"math"
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/sfapi/pkg/sfapi"
)

func TestInvoicesClient_Create(t *testing.T) {
	t.Parallel()

	server := newTestServer(t)
	server.Router.Post("/invoices/create", jsonHandler(http.StatusOK,
		`{"error":0,"data":{"Invoice":{"id":123,"name":"Invoice 2024001"}}}`))

	client := newTestClient(t, server)

	resp, err := client.Invoices().Create(context.Background(), sfapi.InvoiceData{
		Invoice: sfapi.Fields{"name": "Invoice 2024001"},
		Items: []sfapi.Fields{
			{"name": "Consulting", "unit_price": 100, "tax": 21},
		},
		Client: sfapi.Fields{"name": "Acme s.r.o.", "ico": "12345678"},
		Tags:   []int{4, 9},
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	id, ok := resp.ID()
	require.True(t, ok)
	assert.Equal(t, 123, id)

	request := server.LastRequest(t)
	assert.Equal(t, http.MethodPost, request.Method)
	assert.Equal(t, "application/x-www-form-urlencoded", request.Header.Get("Content-Type"))
	assert.JSONEq(t, `{
		"Invoice": {"name": "Invoice 2024001"},
		"InvoiceItem": [{"name": "Consulting", "unit_price": 100, "tax": 21}],
		"Client": {"name": "Acme s.r.o.", "ico": "12345678"},
		"Tag": {"Tag": [4, 9]}
	}`, request.FormData(t))
}

func TestInvoicesClient_CreateOmitsEmptySections(t *testing.T) {
	t.Parallel()

	server := newTestServer(t)
	server.Router.Post("/invoices/create", jsonHandler(http.StatusOK, `{"error":0}`))

	client := newTestClient(t, server)

	_, err := client.Invoices().Create(context.Background(), sfapi.InvoiceData{
		Invoice: sfapi.Fields{"name": "Draft"},
		Client:  sfapi.Fields{},
	})
	require.NoError(t, err)

	assert.Equal(t, `{"Invoice":{"name":"Draft"}}`, server.LastRequest(t).FormData(t))
}

func TestInvoicesClient_Update(t *testing.T) {
	t.Parallel()

	server := newTestServer(t)
	server.Router.Post("/invoices/edit", jsonHandler(http.StatusOK, `{"error":0}`))

	client := newTestClient(t, server)

	invoice := sfapi.Fields{"name": "Renamed"}

	_, err := client.Invoices().Update(context.Background(), 55, sfapi.InvoiceData{
		Invoice:  invoice,
		Settings: sfapi.Fields{"language": "eng"},
	})
	require.NoError(t, err)

	assert.JSONEq(t, `{"Invoice":{"id":55,"name":"Renamed"},"InvoiceSetting":{"language":"eng"}}`,
		server.LastRequest(t).FormData(t))
	assert.NotContains(t, invoice, "id", "caller's map must not be modified")
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestInvoicesClient_GetAll(t *testing.T) {
	t.Parallel()

	from := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC)
	clientID := 12
	amountFrom := decimal.RequireFromString("10.50")

	tests := []struct {
		name         string
		query        *sfapi.InvoiceQuery
		expectedPath string
	}{
		{
			name:         "nil query lists the first page",
			query:        nil,
			expectedPath: "/invoices/index.json/listinfo%3A1/page%3A1/per_page%3A100/sort%3Aid/direction%3ADESC",
		},
		{
			name: "filters in canonical order",
			query: &sfapi.InvoiceQuery{
				Pagination: sfapi.Pagination{Page: 2, ItemsPerPage: 50},
				Sort:       sfapi.Sort{Attribute: "created", Direction: sfapi.SortAscending},
				AmountFrom: &amountFrom,
				ClientID:   &clientID,
				Created:    &sfapi.TimePeriod{Period: sfapi.PeriodFromTo, From: &from, To: &to},
				Search:     "Acme",
				Statuses:   []sfapi.InvoiceStatus{sfapi.InvoiceStatusNew, sfapi.InvoiceStatusPartiallyPaid},
				Type:       sfapi.InvoiceTypeRegular,
			},
			expectedPath: "/invoices/index.json/listinfo%3A1/page%3A2/per_page%3A50/sort%3Acreated/direction%3AASC" +
				"/amount_from%3A10.5/client_id%3A12/created%3A3/created_since%3A2024-01-01/created_to%3A2024-01-31" +
				"/search%3AQWNtZQ%3D%3D/status%3A1%7C2/type%3Aregular",
		},
		{
			name: "multi-valued payment types",
			query: &sfapi.InvoiceQuery{
				PaymentTypes: []sfapi.PaymentType{sfapi.PaymentTypeCash, sfapi.PaymentTypeCard},
				PayDate:      &sfapi.TimePeriod{Period: sfapi.PeriodThisMonth},
			},
			expectedPath: "/invoices/index.json/listinfo%3A1/page%3A1/per_page%3A100/sort%3Aid/direction%3ADESC" +
				"/paydate%3A4/payment_type%3Acash%7Ccard",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			server := newTestServer(t)
			server.Router.Get("/invoices/index.json/*", jsonHandler(http.StatusOK,
				`{"itemCount":0,"pageCount":1,"page":1,"perPage":100,"items":[]}`))

			client := newTestClient(t, server)

			resp, err := client.Invoices().GetAll(context.Background(), tt.query)
			require.NoError(t, err)
			assert.InDelta(t, 1, resp.Data["pageCount"], 0)

			assert.Equal(t, tt.expectedPath, server.LastRequest(t).EscapedPath)
		})
	}
}

func TestInvoicesClient_GetAllRejectsBadQuery(t *testing.T) {
	t.Parallel()

	server := newTestServer(t)
	client := newTestClient(t, server)

	tests := []struct {
		name  string
		query *sfapi.InvoiceQuery
	}{
		{"too many per page", &sfapi.InvoiceQuery{Pagination: sfapi.Pagination{ItemsPerPage: 101}}},
		{"negative page", &sfapi.InvoiceQuery{Pagination: sfapi.Pagination{Page: -1}}},
		{"unknown direction", &sfapi.InvoiceQuery{Sort: sfapi.Sort{Direction: "UP"}}},
		{"unknown period", &sfapi.InvoiceQuery{Created: &sfapi.TimePeriod{Period: 42}}},
	}

	for _, tt := range tests {
		_, err := client.Invoices().GetAll(context.Background(), tt.query)
		require.ErrorIs(t, err, sfapi.ErrCannotCreateRequest, tt.name)
		require.ErrorIs(t, err, sfapi.ErrInvalidArgument, tt.name)
	}

	assert.Empty(t, server.Requests())
}

func TestInvoicesClient_GetByID(t *testing.T) {
	t.Parallel()

	t.Run("found", func(t *testing.T) {
		t.Parallel()

		server := newTestServer(t)
		server.Router.Get("/invoices/view/{id}", jsonHandler(http.StatusOK,
			`{"Invoice":{"id":1,"invoice_no_formatted":"2024001"},"InvoiceItem":[]}`))

		client := newTestClient(t, server)

		resp, err := client.Invoices().GetByID(context.Background(), 1)
		require.NoError(t, err)

		var invoice struct {
			Invoice struct {
				ID     int    `json:"id"`
				Number string `json:"invoice_no_formatted"`
			} `json:"Invoice"`
		}

		require.NoError(t, resp.Decode(&invoice))
		assert.Equal(t, "2024001", invoice.Invoice.Number)
		assert.Equal(t, "/invoices/view/1.json", server.LastRequest(t).EscapedPath)
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()

		server := newTestServer(t)
		server.NotFoundAnything(http.StatusNotFound, `{"error":1,"message":"Not found"}`)

		client := newTestClient(t, server)

		_, err := client.Invoices().GetByID(context.Background(), 999)
		require.ErrorIs(t, err, sfapi.ErrNotFound)
		assert.True(t, sfapi.IsNotFound(err))
		assert.False(t, sfapi.IsValidationFailed(err))
		assert.Equal(t, "cannot get invoice: not found", err.Error())

		reqErr, ok := sfapi.AsRequestError(err)
		require.True(t, ok)
		assert.Equal(t, http.StatusNotFound, reqErr.StatusCode)
		require.NotNil(t, reqErr.Request)
		assert.Equal(t, http.MethodGet, reqErr.Request.Method)
	})

	t.Run("error flag on HTTP 200", func(t *testing.T) {
		t.Parallel()

		server := newTestServer(t)
		server.Router.Get("/invoices/view/{id}", jsonHandler(http.StatusOK, `{"error":1,"error_message":"x"}`))

		client := newTestClient(t, server)

		_, err := client.Invoices().GetByID(context.Background(), 1)
		require.ErrorIs(t, err, sfapi.ErrRequestFailed)
		require.ErrorIs(t, err, sfapi.ErrValidationFailed)

		reqErr, ok := sfapi.AsRequestError(err)
		require.True(t, ok)
		assert.Equal(t, "x", reqErr.Message)
		assert.Equal(t, sfapi.KindValidationFailed, reqErr.Kind)
		assert.Equal(t, "cannot get invoice: x", err.Error())
	})
}

func TestInvoicesClient_GetByIDs(t *testing.T) {
	t.Parallel()

	server := newTestServer(t)
	server.Router.Get("/invoices/getInvoiceDetails/{ids}", jsonHandler(http.StatusOK, `{"1":{},"2":{}}`))

	client := newTestClient(t, server)

	_, err := client.Invoices().GetByIDs(context.Background(), []int{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, "/invoices/getInvoiceDetails/1,2,3", server.LastRequest(t).EscapedPath)

	_, err = client.Invoices().GetByIDs(context.Background(), nil)
	require.ErrorIs(t, err, sfapi.ErrCannotCreateRequest)
	assert.Len(t, server.Requests(), 1)
}

func TestInvoicesClient_NonFiniteAmount(t *testing.T) {
	t.Parallel()

	server := newTestServer(t)
	client := newTestClient(t, server)

	_, err := client.Invoices().Create(context.Background(), sfapi.InvoiceData{
		Invoice: sfapi.Fields{"name": "Broken"},
		Items:   []sfapi.Fields{{"unit_price": math.NaN()}},
	})
	require.ErrorIs(t, err, sfapi.ErrCannotCreateRequest)
	assert.False(t, sfapi.IsNotFound(err))
	assert.Contains(t, err.Error(), "cannot create invoice: encoding payload")
	assert.Empty(t, server.Requests(), "nothing may be dispatched")
}

func TestInvoicesClient_SmallOperations(t *testing.T) {
	t.Parallel()

	server := newTestServer(t)
	server.NotFoundAnything(http.StatusOK, `{"error":0}`)

	client := newTestClient(t, server)
	invoices := client.Invoices()
	ctx := context.Background()

	tests := []struct {
		name           string
		run            func() error
		expectedMethod string
		expectedPath   string
	}{
		{
			name:           "delete",
			run:            func() error { _, err := invoices.Delete(ctx, 3); return err },
			expectedMethod: http.MethodDelete,
			expectedPath:   "/invoices/delete/3",
		},
		{
			name:           "delete items",
			run:            func() error { _, err := invoices.DeleteItems(ctx, 3, []int{10, 11}); return err },
			expectedMethod: http.MethodDelete,
			expectedPath:   "/invoice_items/delete/10,11/invoice_id:3",
		},
		{
			name:           "change language keeps the literal colon",
			run:            func() error { _, err := invoices.ChangeLanguage(ctx, 3, sfapi.LanguageEnglish); return err },
			expectedMethod: http.MethodGet,
			expectedPath:   "/invoices/setinvoicelanguage/3/lang:eng",
		},
		{
			name:           "mark as sent",
			run:            func() error { _, err := invoices.MarkAsSent(ctx, 3); return err },
			expectedMethod: http.MethodGet,
			expectedPath:   "/invoices/mark_sent/3",
		},
	}

	for _, tt := range tests {
		require.NoError(t, tt.run(), tt.name)

		request := server.LastRequest(t)
		assert.Equal(t, tt.expectedMethod, request.Method, tt.name)
		assert.Equal(t, tt.expectedPath, request.EscapedPath, tt.name)
	}

	_, err := invoices.ChangeLanguage(ctx, 3, "klingon")
	require.ErrorIs(t, err, sfapi.ErrInvalidArgument)

	_, err = invoices.DeleteItems(ctx, 3, nil)
	require.ErrorIs(t, err, sfapi.ErrInvalidArgument)

	assert.Len(t, server.Requests(), len(tests))
}

func TestInvoicesClient_Email(t *testing.T) {
	t.Parallel()

	server := newTestServer(t)
	server.Router.Post("/invoices/send", jsonHandler(http.StatusOK, `{"error":0}`))
	server.Router.Post("/invoices/mark_as_sent", jsonHandler(http.StatusOK, `{"error":0}`))
	server.Router.Post("/invoices/post", jsonHandler(http.StatusOK, `{"error":0}`))

	client := newTestClient(t, server)
	ctx := context.Background()

	_, err := client.Invoices().SendViaEmail(ctx, 8, sfapi.InvoiceEmail{
		To:          "buyer@example.com",
		CC:          []string{"boss@example.com"},
		Subject:     "Invoice",
		PDFLanguage: sfapi.LanguageSlovak,
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"Email":{"invoice_id":8,"to":"buyer@example.com","cc":["boss@example.com"],"subject":"Invoice","pdf_language":"slo"}}`,
		server.LastRequest(t).FormData(t))

	_, err = client.Invoices().MarkAsSentViaEmail(ctx, 8, sfapi.InvoiceEmail{To: "buyer@example.com", Subject: "s", Body: "b"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"InvoiceEmail":{"invoice_id":8,"email":"buyer@example.com","subject":"s","message":"b"}}`,
		server.LastRequest(t).FormData(t))

	_, err = client.Invoices().SendViaPostOffice(ctx, 8, sfapi.PostalAddress{Name: "Acme", City: "Bratislava", CountryID: 191})
	require.NoError(t, err)
	assert.JSONEq(t, `{"Post":{"invoice_id":8,"delivery_name":"Acme","delivery_city":"Bratislava","delivery_country_id":191}}`,
		server.LastRequest(t).FormData(t))

	_, err = client.Invoices().SendViaEmail(ctx, 8, sfapi.InvoiceEmail{})
	require.ErrorIs(t, err, sfapi.ErrInvalidArgument)
	assert.Len(t, server.Requests(), 3)
}

func TestInvoicesClient_DownloadPDF(t *testing.T) {
	t.Parallel()

	fixture := pdfFixture(t)

	server := newTestServer(t)
	server.Router.Get("/{language}/invoices/pdf/1", pdfHandler(fixture))
	server.NotFoundAnything(http.StatusNotFound, "")

	client := newTestClient(t, server)

	t.Run("streams the document", func(t *testing.T) {
		resp, err := client.Invoices().DownloadPDF(context.Background(), 1, sfapi.LanguageSlovak)
		require.NoError(t, err)

		defer func() { _ = resp.Close() }()

		assert.Equal(t, "application/pdf", resp.ContentType)

		content, err := io.ReadAll(resp.Data)
		require.NoError(t, err)
		assert.Equal(t, fixture, content)
		assert.Equal(t, "/slo/invoices/pdf/1", server.LastRequest(t).EscapedPath)
	})

	t.Run("missing invoice", func(t *testing.T) {
		_, err := client.Invoices().DownloadPDF(context.Background(), 2, sfapi.LanguageSlovak)
		require.ErrorIs(t, err, sfapi.ErrNotFound)
	})

	t.Run("unknown language", func(t *testing.T) {
		_, err := client.Invoices().DownloadPDF(context.Background(), 1, "xx")
		require.ErrorIs(t, err, sfapi.ErrCannotCreateRequest)
	})
}
