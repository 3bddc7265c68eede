package client

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/phpdave11/gofpdf"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/sfapi/pkg/sfapi"
)

// testAuthorization is used by every client built through newTestClient.
var testAuthorization = sfapi.Authorization{
	Email:     "api@example.com",
	Key:       "test-key",
	CompanyID: 7,
	Module:    "Tests",
}

// recordedRequest is a copy of what reached the test server.
type recordedRequest struct {
	Method      string
	EscapedPath string
	RawQuery    string
	Header      http.Header
	Body        []byte
}

// FormData returns the JSON document of a "data=<json>" body.
func (r recordedRequest) FormData(t *testing.T) string {
	t.Helper()

	body := string(r.Body)
	require.True(t, strings.HasPrefix(body, "data="), "body %q has no data= prefix", body)

	return strings.TrimPrefix(body, "data=")
}

// testServer records every request before handing it to a chi router.
type testServer struct {
	*httptest.Server

	Router chi.Router

	mu       sync.Mutex
	requests []recordedRequest
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	server := &testServer{Router: chi.NewRouter()}

	server.Server = httptest.NewServer(server.record(server.Router))
	t.Cleanup(server.Close)

	return server
}

// record stores a copy of every request before next sees it. It wraps the
// router rather than being registered as router middleware, so requests are
// recorded even when no route matches.
func (s *testServer) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)

			return
		}

		s.mu.Lock()
		s.requests = append(s.requests, recordedRequest{
			Method:      r.Method,
			EscapedPath: r.URL.EscapedPath(),
			RawQuery:    r.URL.RawQuery,
			Header:      r.Header.Clone(),
			Body:        body,
		})
		s.mu.Unlock()

		r.Body = io.NopCloser(bytes.NewReader(body))

		next.ServeHTTP(w, r)
	})
}

// Requests returns the recorded requests in arrival order.
func (s *testServer) Requests() []recordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]recordedRequest(nil), s.requests...)
}

// LastRequest returns the most recent request and fails if there is none.
func (s *testServer) LastRequest(t *testing.T) recordedRequest {
	t.Helper()

	requests := s.Requests()
	require.NotEmpty(t, requests, "no request reached the server")

	return requests[len(requests)-1]
}

// NotFoundAnything answers every unrouted request with status and body.
func (s *testServer) NotFoundAnything(status int, body any) {
	s.Router.NotFound(jsonHandler(status, body))
	s.Router.MethodNotAllowed(jsonHandler(status, body))
}

// newTestClient builds a facade pointed at server.
func newTestClient(t *testing.T, server *testServer, configure ...func(*sfapi.Config)) *Client {
	t.Helper()

	config := &sfapi.Config{
		Authorization: testAuthorization,
		BaseURL:       server.URL,
	}

	for _, apply := range configure {
		apply(config)
	}

	client, err := New(config)
	require.NoError(t, err)

	return client
}

// jsonHandler writes body as JSON with status.
func jsonHandler(status int, body any) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)

		switch raw := body.(type) {
		case string:
			_, _ = w.Write([]byte(raw))
		default:
			_ = json.NewEncoder(w).Encode(body)
		}
	}
}

// pdfFixture renders a one page document to serve as a downloaded invoice.
func pdfFixture(t *testing.T) []byte {
	t.Helper()

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Invoice 2024001")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(40, 8, "Total: 121.00 EUR")

	var buf bytes.Buffer

	err := pdf.Output(&buf)
	require.NoError(t, err)

	return buf.Bytes()
}

// pdfHandler serves content as a PDF attachment.
func pdfHandler(content []byte) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", `attachment; filename="invoice.pdf"`)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(content)
	}
}
