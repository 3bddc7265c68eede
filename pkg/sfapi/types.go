package sfapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// Static errors for err113 compliance.
var (
	ErrEmailRequired  = errors.New("authorization email is required")
	ErrAPIKeyRequired = errors.New("authorization API key is required")
	ErrNoResponseBody = errors.New("response has no decodable body")
)

// Authorization holds the credentials and client identification sent with
// every request.
type Authorization struct {
	Email     string `json:"email"      yaml:"email"`
	Key       string `json:"key"        yaml:"key"`
	Module    string `json:"module"     yaml:"module"`
	AppTitle  string `json:"app_title"  yaml:"app_title"`
	CompanyID int    `json:"company_id" yaml:"company_id"`
}

// Validate reports whether the authorization can be used to sign requests.
func (a Authorization) Validate() error {
	if strings.TrimSpace(a.Email) == "" {
		return ErrEmailRequired
	}

	if strings.TrimSpace(a.Key) == "" {
		return ErrAPIKeyRequired
	}

	return nil
}

// RateLimit describes one rate limit window reported by the API.
type RateLimit struct {
	Limit     int       `json:"limit"      yaml:"limit"`
	Remaining int       `json:"remaining"  yaml:"remaining"`
	ResetsAt  time.Time `json:"resets_at"  yaml:"resets_at"`
}

// Fields is an entity payload such as an invoice, an invoice item or a client.
type Fields map[string]any

// Request is a snapshot of an outbound request, kept for diagnostics.
type Request struct {
	Method string
	URL    string
	Header http.Header
	Body   []byte
}

// String returns "METHOD URL".
func (r *Request) String() string {
	if r == nil {
		return "<nil request>"
	}

	return r.Method + " " + r.URL
}

// Response is a decoded JSON response.
//
// The API signals business errors with a top level "error" flag even on
// HTTP 200, so StatusCode and IsError are independent error channels.
type Response struct {
	StatusCode       int
	Data             map[string]any
	RateLimitDaily   *RateLimit
	RateLimitMonthly *RateLimit

	body []byte
}

// NewResponse creates a Response. body is the raw JSON the data was decoded from
// and is used by Decode.
func NewResponse(statusCode int, data map[string]any, body []byte, daily, monthly *RateLimit) *Response {
	return &Response{
		StatusCode:       statusCode,
		Data:             data,
		RateLimitDaily:   daily,
		RateLimitMonthly: monthly,
		body:             body,
	}
}

// IsError interprets data["error"] loosely: 1, "1", true and any other truthy
// value count as an error; 0, "0", false, "" and an absent key do not.
func (r *Response) IsError() bool {
	if r == nil || r.Data == nil {
		return false
	}

	value, ok := r.Data["error"]
	if !ok {
		return false
	}

	return truthy(value)
}

// Decode unmarshals the raw response body into target.
func (r *Response) Decode(target any) error {
	if r == nil || len(r.body) == 0 {
		return ErrNoResponseBody
	}

	err := json.Unmarshal(r.body, target)
	if err != nil {
		return fmt.Errorf("decoding response body: %w", err)
	}

	return nil
}

// ID returns the id of the primary entity in the response, looking at a top
// level "id" first and then at the "id" of any top level object.
func (r *Response) ID() (int, bool) {
	if r == nil {
		return 0, false
	}

	if id, ok := toInt(r.Data["id"]); ok {
		return id, true
	}

	if data, ok := r.Data["data"].(map[string]any); ok {
		for _, entity := range data {
			if fields, ok := entity.(map[string]any); ok {
				if id, ok := toInt(fields["id"]); ok {
					return id, true
				}
			}
		}
	}

	return 0, false
}

// BinaryResponse is a streamed non-JSON response such as a PDF or an export
// archive. The caller owns Data and must close it.
type BinaryResponse struct {
	StatusCode       int
	ContentType      string
	Data             io.ReadCloser
	RateLimitDaily   *RateLimit
	RateLimitMonthly *RateLimit
}

// Close releases the underlying stream.
func (r *BinaryResponse) Close() error {
	if r == nil || r.Data == nil {
		return nil
	}

	return r.Data.Close()
}

// truthy mirrors the loose boolean rules of the API's legacy error flag.
func truthy(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != "" && v != "0"
	case float64:
		return v != 0
	case json.Number:
		f, err := v.Float64()

		return err != nil || f != 0
	case int:
		return v != 0
	case int64:
		return v != 0
	case []any:
		return len(v) > 0
	case map[string]any:
		return len(v) > 0
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map, reflect.Array:
		return rv.Len() > 0
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint() != 0
	case reflect.Float32, reflect.Float64:
		return rv.Float() != 0
	default:
		return true
	}
}

func toInt(value any) (int, bool) {
	switch v := value.(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	case json.Number:
		i, err := v.Int64()

		return int(i), err == nil
	case string:
		i, err := strconv.Atoi(v)

		return i, err == nil
	default:
		return 0, false
	}
}

// snapshotBody reads and restores a request body so the request can still be
// sent after the snapshot was taken.
func snapshotBody(req *http.Request) []byte {
	if req.GetBody != nil {
		body, err := req.GetBody()
		if err == nil {
			defer body.Close()

			data, err := io.ReadAll(body)
			if err == nil {
				return data
			}
		}
	}

	if req.Body == nil || req.Body == http.NoBody {
		return nil
	}

	data, err := io.ReadAll(req.Body)
	if err != nil {
		return nil
	}

	req.Body = io.NopCloser(bytes.NewReader(data))

	return data
}

// NewRequestSnapshot copies method, URL, headers and body of req.
func NewRequestSnapshot(req *http.Request) *Request {
	if req == nil {
		return nil
	}

	return &Request{
		Method: req.Method,
		URL:    req.URL.String(),
		Header: req.Header.Clone(),
		Body:   snapshotBody(req),
	}
}
