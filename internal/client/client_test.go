package client

import (
	"bytes"
	"context"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/sfapi/pkg/sfapi"
)

type recordingObserver struct {
	mu      sync.Mutex
	daily   []*sfapi.RateLimit
	monthly []*sfapi.RateLimit
}

func (o *recordingObserver) ObserveRateLimits(_ context.Context, daily, monthly *sfapi.RateLimit) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.daily = append(o.daily, daily)
	o.monthly = append(o.monthly, monthly)
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("requires config", func(t *testing.T) {
		t.Parallel()

		_, err := New(nil)
		require.ErrorIs(t, err, sfapi.ErrConfigRequired)
	})

	t.Run("requires email", func(t *testing.T) {
		t.Parallel()

		_, err := New(&sfapi.Config{Authorization: sfapi.Authorization{Key: "k"}})
		require.ErrorIs(t, err, sfapi.ErrEmailRequired)
	})

	t.Run("requires API key", func(t *testing.T) {
		t.Parallel()

		_, err := New(&sfapi.Config{Authorization: sfapi.Authorization{Email: "a@example.com"}})
		require.ErrorIs(t, err, sfapi.ErrAPIKeyRequired)
	})

	t.Run("rejects malformed base URL", func(t *testing.T) {
		t.Parallel()

		_, err := New(&sfapi.Config{Authorization: testAuthorization, BaseURL: "moja.superfaktura.sk"})
		require.ErrorIs(t, err, sfapi.ErrBaseURLRequired)
	})

	t.Run("defaults to the Slovak endpoint", func(t *testing.T) {
		t.Parallel()

		client, err := New(&sfapi.Config{Authorization: testAuthorization})
		require.NoError(t, err)
		assert.Equal(t, sfapi.BaseURLSlovakia, client.requester.baseURL)
		assert.NotEmpty(t, client.requester.authHeader)
		assert.True(t, strings.HasPrefix(client.requester.userAgent, "sfapi-go/"))
	})

	t.Run("trims trailing slash", func(t *testing.T) {
		t.Parallel()

		client, err := New(&sfapi.Config{Authorization: testAuthorization, BaseURL: sfapi.BaseURLCzechia + "/"})
		require.NoError(t, err)
		assert.Equal(t, sfapi.BaseURLCzechia, client.requester.baseURL)
	})

	t.Run("keeps a custom transport", func(t *testing.T) {
		t.Parallel()

		custom := &http.Client{Timeout: time.Second}

		client, err := New(&sfapi.Config{Authorization: testAuthorization, HTTPClient: custom, UserAgent: "shop/1.0"})
		require.NoError(t, err)
		assert.Same(t, custom, client.requester.doer)
		assert.Equal(t, "shop/1.0", client.requester.userAgent)
	})
}

func TestClient_ResourceAccessors(t *testing.T) {
	t.Parallel()

	client, err := New(&sfapi.Config{Authorization: testAuthorization})
	require.NoError(t, err)

	assert.NotNil(t, client.Invoices())
	assert.NotNil(t, client.InvoicePayments())
	assert.NotNil(t, client.Expenses())
	assert.NotNil(t, client.ExpensePayments())
	assert.NotNil(t, client.RelatedDocuments())
	assert.NotNil(t, client.Exports())
	assert.NotNil(t, client.Clients())
	assert.NotNil(t, client.Contacts())
	assert.NotNil(t, client.Tags())
	assert.NotNil(t, client.StockItems())
	assert.NotNil(t, client.StockMovements())
	assert.NotNil(t, client.BankAccounts())
	assert.NotNil(t, client.CashRegisters())
	assert.NotNil(t, client.CashRegisterItems())
	assert.NotNil(t, client.Companies())
	assert.NotNil(t, client.Countries())
}

func TestClient_Headers(t *testing.T) {
	t.Parallel()

	server := newTestServer(t)
	server.Router.Get("/countries", jsonHandler(http.StatusOK, `{"1":"Slovensko"}`))

	client := newTestClient(t, server, func(config *sfapi.Config) {
		config.UserAgent = "shop/2.0"
	})

	_, err := client.Countries().GetAll(context.Background())
	require.NoError(t, err)

	request := server.LastRequest(t)
	assert.Equal(t, http.MethodGet, request.Method)
	assert.Equal(t, client.requester.authHeader, request.Header.Get("Authorization"))
	assert.True(t, strings.HasPrefix(request.Header.Get("Authorization"), "SFAPI email=api%40example.com&apikey=test-key&company_id=7&module="))
	assert.Equal(t, "application/json", request.Header.Get("Accept"))
	assert.Equal(t, "shop/2.0", request.Header.Get("User-Agent"))
	assert.Empty(t, request.Header.Get("Content-Type"))
	assert.Empty(t, request.Body)
}

func TestClient_RateLimitObserver(t *testing.T) {
	t.Parallel()

	server := newTestServer(t)
	server.Router.Get("/tags/index.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-RateLimit-DailyLimit", "1000")
		w.Header().Set("X-RateLimit-DailyRemaining", "998")
		w.Header().Set("X-RateLimit-DailyReset", "02.01.2024 00:00:00")
		jsonHandler(http.StatusOK, `[{"id":1,"name":"vip"}]`)(w, r)
	})

	server.Router.Get("/countries", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-RateLimit-DailyLimit", "1000")
		w.Header().Set("X-RateLimit-DailyRemaining", "997")
		w.Header().Set("X-RateLimit-DailyReset", "02.01.2024 00:00:00")
		jsonHandler(http.StatusOK, `{"1":"Slovensko"}`)(w, r)
	})

	observer := &recordingObserver{}
	client := newTestClient(t, server, func(config *sfapi.Config) {
		config.RateLimitObserver = observer
	})

	_, err := client.Tags().GetAll(context.Background())
	// a JSON array is not an object
	require.ErrorIs(t, err, sfapi.ErrRequestFailed)
	require.ErrorIs(t, err, sfapi.ErrUnexpectedValue)
	assert.Empty(t, observer.daily)

	resp, err := client.Countries().GetAll(context.Background())
	require.NoError(t, err)
	require.NotNil(t, resp.RateLimitDaily)
	assert.Equal(t, 997, resp.RateLimitDaily.Remaining)
	assert.Nil(t, resp.RateLimitMonthly)

	require.Len(t, observer.daily, 1)
	assert.Equal(t, 1000, observer.daily[0].Limit)
	assert.Equal(t, time.Date(2024, time.January, 1, 23, 0, 0, 0, time.UTC), observer.daily[0].ResetsAt)
	assert.Nil(t, observer.monthly[0])
}

func TestClient_RateLimitObserver_ErrorResponse(t *testing.T) {
	t.Parallel()

	server := newTestServer(t)
	server.Router.Post("/clients/create", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-RateLimit-MonthlyLimit", "5000")
		w.Header().Set("X-RateLimit-MonthlyRemaining", "4321")
		w.Header().Set("X-RateLimit-MonthlyReset", "01.02.2024 00:00:00")
		jsonHandler(http.StatusOK, `{"error":1,"error_message":"Wrong data"}`)(w, r)
	})

	observer := &recordingObserver{}
	client := newTestClient(t, server, func(config *sfapi.Config) {
		config.RateLimitObserver = observer
	})

	_, err := client.Clients().Create(context.Background(), sfapi.Fields{"name": "Joe Doe"})
	require.ErrorIs(t, err, sfapi.ErrValidationFailed)

	require.Len(t, observer.monthly, 1)
	assert.Nil(t, observer.daily[0])
	assert.Equal(t, 4321, observer.monthly[0].Remaining)
}

func TestTestServer_RecordsUnroutedRequests(t *testing.T) {
	t.Parallel()

	server := newTestServer(t)
	server.NotFoundAnything(http.StatusOK, `{"error":0}`)

	client := newTestClient(t, server)

	_, err := client.Countries().GetAll(context.Background())
	require.NoError(t, err)

	request := server.LastRequest(t)
	assert.Equal(t, http.MethodGet, request.Method)
	assert.Equal(t, "/countries", request.EscapedPath)
	assert.Len(t, server.Requests(), 1)
}

func TestClient_DebugLogging(t *testing.T) {
	t.Parallel()

	server := newTestServer(t)
	server.Router.Delete("/tags/delete/{id}", jsonHandler(http.StatusOK, `{"error":0,"message":"deleted"}`))

	var buf bytes.Buffer

	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)
	client := newTestClient(t, server, func(config *sfapi.Config) {
		config.Logger = &logger
	})

	_, err := client.Tags().Delete(context.Background(), 5)
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, `"message":"SuperFaktura request"`)
	assert.Contains(t, output, `"path":"/tags/delete/5"`)
	assert.Contains(t, output, `"operation":"delete tag"`)
	assert.NotContains(t, output, "test-key")
}
