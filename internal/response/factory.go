// Package response decodes raw HTTP responses of the SuperFaktura API.
package response

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"
	_ "time/tzdata" // rate limit resets are reported in the service's local time

	"github.com/fivetwenty-io/sfapi/internal/constants"
	"github.com/fivetwenty-io/sfapi/pkg/sfapi"
)

// Factory decodes responses. The zero value is not usable, use NewFactory.
type Factory struct {
	location *time.Location
}

// NewFactory loads the service time zone.
func NewFactory() (*Factory, error) {
	location, err := time.LoadLocation(constants.ServiceTimeZone)
	if err != nil {
		return nil, fmt.Errorf("loading time zone %s: %w", constants.ServiceTimeZone, err)
	}

	return &Factory{location: location}, nil
}

// FromJSON reads and closes the body and decodes it as a JSON object.
func (f *Factory) FromJSON(resp *http.Response) (*sfapi.Response, error) {
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	var data map[string]any

	err = json.Unmarshal(body, &data)
	if err != nil {
		return nil, fmt.Errorf("%w: response body is not a JSON object: %w", sfapi.ErrUnexpectedValue, err)
	}

	if data == nil {
		return nil, fmt.Errorf("%w: response body is null", sfapi.ErrUnexpectedValue)
	}

	daily, monthly, err := f.rateLimits(resp.Header)
	if err != nil {
		return nil, err
	}

	return sfapi.NewResponse(resp.StatusCode, data, body, daily, monthly), nil
}

// FromBinary hands the body over to the returned BinaryResponse without
// reading it.
func (f *Factory) FromBinary(resp *http.Response) (*sfapi.BinaryResponse, error) {
	contentType := resp.Header.Get(constants.HeaderContentType)
	if contentType == "" {
		return nil, sfapi.ErrMissingContentType
	}

	daily, monthly, err := f.rateLimits(resp.Header)
	if err != nil {
		return nil, err
	}

	return &sfapi.BinaryResponse{
		StatusCode:       resp.StatusCode,
		ContentType:      contentType,
		Data:             resp.Body,
		RateLimitDaily:   daily,
		RateLimitMonthly: monthly,
	}, nil
}

func (f *Factory) rateLimits(header http.Header) (*sfapi.RateLimit, *sfapi.RateLimit, error) {
	daily, err := f.rateLimit(header, constants.RateLimitDaily)
	if err != nil {
		return nil, nil, err
	}

	monthly, err := f.rateLimit(header, constants.RateLimitMonthly)
	if err != nil {
		return nil, nil, err
	}

	return daily, monthly, nil
}

// rateLimit reads the "<prefix>Limit", "<prefix>Remaining" and "<prefix>Reset"
// triple. The window is absent when the Limit header is.
func (f *Factory) rateLimit(header http.Header, prefix string) (*sfapi.RateLimit, error) {
	limitValue := header.Get(prefix + "Limit")
	if limitValue == "" {
		return nil, nil //nolint:nilnil // absent window
	}

	limit, err := strconv.Atoi(limitValue)
	if err != nil {
		return nil, fmt.Errorf("%w: %sLimit %q", sfapi.ErrUnexpectedValue, prefix, limitValue)
	}

	remainingValue := header.Get(prefix + "Remaining")

	remaining, err := strconv.Atoi(remainingValue)
	if err != nil {
		return nil, fmt.Errorf("%w: %sRemaining %q", sfapi.ErrUnexpectedValue, prefix, remainingValue)
	}

	resetValue := header.Get(prefix + "Reset")

	resetsAt, err := time.ParseInLocation(constants.RateLimitResetFormat, resetValue, f.location)
	if err != nil {
		return nil, fmt.Errorf("%w: %sReset %q", sfapi.ErrUnexpectedValue, prefix, resetValue)
	}

	return &sfapi.RateLimit{
		Limit:     limit,
		Remaining: remaining,
		ResetsAt:  resetsAt.UTC(),
	}, nil
}
