package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/fivetwenty-io/sfapi/internal/constants"
	"github.com/fivetwenty-io/sfapi/internal/response"
	"github.com/fivetwenty-io/sfapi/pkg/sfapi"
	"github.com/rs/zerolog"
)

// bodyEncoding selects how a payload is put on the wire. The choice is fixed
// per endpoint.
type bodyEncoding int

const (
	noBody bodyEncoding = iota
	// formEncoding sends "data=<json>" as application/x-www-form-urlencoded.
	formEncoding
	// jsonEncoding sends the JSON document as application/json.
	jsonEncoding
)

// call describes one operation of a resource client.
type call struct {
	resource  string
	operation string
	method    string
	path      string
	encoding  bodyEncoding
	payload   any
	// conflict maps HTTP 409 to sfapi.KindConflict.
	conflict bool
}

// requester runs the shared request pipeline. It is immutable after
// construction and shared by all resource clients of a facade.
type requester struct {
	doer           sfapi.Doer
	requestFactory sfapi.RequestFactory
	responses      *response.Factory
	baseURL        string
	authHeader     string
	userAgent      string
	logger         zerolog.Logger
	observer       sfapi.RateLimitObserver
}

// do sends c and decodes a JSON response.
func (r *requester) do(ctx context.Context, c call) (*sfapi.Response, error) {
	req, snapshot, err := r.build(ctx, c)
	if err != nil {
		return nil, err
	}

	start := time.Now()

	resp, err := r.doer.Do(req)
	if err != nil {
		return nil, r.fail(c, sfapi.KindRequestFailed, snapshot, 0, err)
	}

	err = r.checkStatus(c, snapshot, resp)
	if err != nil {
		return nil, err
	}

	result, err := r.responses.FromJSON(resp)
	if err != nil {
		return nil, r.fail(c, sfapi.KindRequestFailed, snapshot, resp.StatusCode, fmt.Errorf("decoding response: %w", err))
	}

	r.logExchange(c, req, result.StatusCode, start, result.RateLimitDaily)
	r.observe(ctx, result.RateLimitDaily, result.RateLimitMonthly)

	if result.IsError() {
		return nil, r.apiError(c, snapshot, result)
	}

	return result, nil
}

// doBinary sends c and hands the response stream to the caller.
func (r *requester) doBinary(ctx context.Context, c call) (*sfapi.BinaryResponse, error) {
	req, snapshot, err := r.build(ctx, c)
	if err != nil {
		return nil, err
	}

	start := time.Now()

	resp, err := r.doer.Do(req)
	if err != nil {
		return nil, r.fail(c, sfapi.KindRequestFailed, snapshot, 0, err)
	}

	err = r.checkStatus(c, snapshot, resp)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= http.StatusBadRequest {
		drain(resp)

		return nil, r.fail(c, sfapi.KindRequestFailed, snapshot, resp.StatusCode,
			fmt.Errorf("%w: HTTP %d", sfapi.ErrRequestFailed, resp.StatusCode))
	}

	result, err := r.responses.FromBinary(resp)
	if err != nil {
		drain(resp)

		return nil, r.fail(c, sfapi.KindRequestFailed, snapshot, resp.StatusCode, fmt.Errorf("decoding response: %w", err))
	}

	r.logExchange(c, req, result.StatusCode, start, result.RateLimitDaily)
	r.observe(ctx, result.RateLimitDaily, result.RateLimitMonthly)

	return result, nil
}

// build creates the outbound request. Failures here never reach the transport.
func (r *requester) build(ctx context.Context, c call) (*http.Request, *sfapi.Request, error) {
	var (
		body        io.Reader
		contentType string
	)

	if c.encoding != noBody {
		payload, err := json.Marshal(c.payload)
		if err != nil {
			return nil, nil, r.fail(c, sfapi.KindConstructionFailed, nil, 0, fmt.Errorf("encoding payload: %w", err))
		}

		switch c.encoding {
		case formEncoding:
			contentType = constants.ContentTypeForm
			payload = append([]byte(constants.FormDataPrefix), payload...)
		case jsonEncoding:
			contentType = constants.ContentTypeJSON
		}

		body = bytes.NewReader(payload)
	}

	req, err := r.requestFactory.NewRequest(ctx, c.method, r.baseURL+c.path, body)
	if err != nil {
		return nil, nil, r.fail(c, sfapi.KindConstructionFailed, nil, 0, err)
	}

	req.Header.Set(constants.HeaderAuthorization, r.authHeader)
	req.Header.Set(constants.HeaderAccept, constants.ContentTypeJSON)
	req.Header.Set(constants.HeaderUserAgent, r.userAgent)

	if contentType != "" {
		req.Header.Set(constants.HeaderContentType, contentType)
	}

	return req, sfapi.NewRequestSnapshot(req), nil
}

// checkStatus handles the status codes that are reported before any body is
// decoded. The body is drained and closed on failure.
func (r *requester) checkStatus(c call, snapshot *sfapi.Request, resp *http.Response) error {
	switch {
	case resp.StatusCode == http.StatusNotFound:
		drain(resp)

		return r.fail(c, sfapi.KindNotFound, snapshot, resp.StatusCode, nil)
	case c.conflict && resp.StatusCode == http.StatusConflict:
		drain(resp)

		return r.fail(c, sfapi.KindConflict, snapshot, resp.StatusCode, nil)
	default:
		return nil
	}
}

func (r *requester) apiError(c call, snapshot *sfapi.Request, result *sfapi.Response) error {
	validation := extractValidation(result.Data)

	reqErr := &sfapi.RequestError{
		Resource:   c.resource,
		Operation:  c.operation,
		Kind:       sfapi.KindValidationFailed,
		Request:    snapshot,
		StatusCode: result.StatusCode,
		Message:    validation.message,
	}

	if !validation.errors.Empty() {
		reqErr.Validation = validation.errors
	}

	if reqErr.Message == "" {
		reqErr.Err = sfapi.ErrValidationFailed
	}

	r.logger.Debug().
		Str("resource", c.resource).
		Str("operation", c.operation).
		Str("error_message", reqErr.Message).
		Msg("API reported an error")

	return reqErr
}

func (r *requester) fail(c call, kind sfapi.ErrorKind, snapshot *sfapi.Request, status int, cause error) error {
	return &sfapi.RequestError{
		Resource:   c.resource,
		Operation:  c.operation,
		Kind:       kind,
		Request:    snapshot,
		StatusCode: status,
		Err:        cause,
	}
}

// invalid reports a rejected argument. Nothing is sent.
func (r *requester) invalid(c call, format string, args ...any) error {
	return r.fail(c, sfapi.KindConstructionFailed, nil, 0,
		fmt.Errorf("%w: %s", sfapi.ErrInvalidArgument, fmt.Sprintf(format, args...)))
}

func (r *requester) observe(ctx context.Context, daily, monthly *sfapi.RateLimit) {
	if r.observer == nil || (daily == nil && monthly == nil) {
		return
	}

	r.observer.ObserveRateLimits(ctx, daily, monthly)
}

func (r *requester) logExchange(c call, req *http.Request, status int, start time.Time, daily *sfapi.RateLimit) {
	event := r.logger.Debug()
	if !event.Enabled() {
		return
	}

	event = event.
		Str("method", req.Method).
		Str("path", req.URL.EscapedPath()).
		Str("operation", c.operation+" "+c.resource).
		Int("status", status).
		Dur("duration", time.Since(start))

	if daily != nil {
		event = event.Int("daily_remaining", daily.Remaining)
	}

	event.Msg("SuperFaktura request")
}

func drain(resp *http.Response) {
	if resp == nil || resp.Body == nil {
		return
	}

	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}

type validationDetail struct {
	message string
	errors  *sfapi.ValidationErrors
}

// extractValidation reads "error_message", falling back to "message". Both
// may be a string, a list of strings or a field to messages mapping.
func extractValidation(data map[string]any) validationDetail {
	raw, ok := data["error_message"]
	if !ok || raw == nil || raw == "" {
		raw = data["message"]
	}

	detail := validationDetail{errors: &sfapi.ValidationErrors{}}

	switch value := raw.(type) {
	case string:
		detail.message = value
	case []any:
		detail.errors.Messages = toStrings(value)
		detail.message = strings.Join(detail.errors.Messages, "; ")
	case map[string]any:
		detail.errors.Fields = make(map[string][]string, len(value))

		fields := make([]string, 0, len(value))
		for field := range value {
			fields = append(fields, field)
		}

		sort.Strings(fields)

		parts := make([]string, 0, len(fields))

		for _, field := range fields {
			var messages []string

			switch fieldValue := value[field].(type) {
			case []any:
				messages = toStrings(fieldValue)
			case map[string]any:
				for _, nested := range fieldValue {
					messages = append(messages, fmt.Sprint(nested))
				}

				sort.Strings(messages)
			default:
				messages = []string{fmt.Sprint(fieldValue)}
			}

			detail.errors.Fields[field] = messages
			parts = append(parts, field+": "+strings.Join(messages, ", "))
		}

		detail.message = strings.Join(parts, "; ")
	}

	return detail
}

func toStrings(values []any) []string {
	result := make([]string, 0, len(values))
	for _, value := range values {
		result = append(result, fmt.Sprint(value))
	}

	return result
}
