package client

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/sfapi/internal/query"
	"github.com/fivetwenty-io/sfapi/pkg/sfapi"
)

func TestAddPeriod(t *testing.T) {
	t.Parallel()

	from := time.Date(2024, time.February, 1, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		name     string
		period   *sfapi.TimePeriod
		expected string
		wantErr  bool
	}{
		{name: "nil period", period: nil, expected: ""},
		{name: "all", period: &sfapi.TimePeriod{Period: sfapi.PeriodAll}, expected: "modified%3A0"},
		{name: "open range", period: &sfapi.TimePeriod{Period: sfapi.PeriodFromTo, From: &from}, expected: "modified%3A3/modified_since%3A2024-02-01"},
		{name: "unknown", period: &sfapi.TimePeriod{Period: -1}, wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			params, err := addPeriod(query.Params{}, "modified", tt.period)
			if tt.wantErr {
				require.ErrorIs(t, err, sfapi.ErrInvalidArgument)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, query.NamedParams{}.Convert(params))
		})
	}
}

func TestJoinedAndEncoded(t *testing.T) {
	t.Parallel()

	assert.Nil(t, joined([]int(nil)))
	assert.Equal(t, "1|2|99", joined([]sfapi.InvoiceStatus{1, 2, 99}))
	assert.Equal(t, "mail|courier", joined([]sfapi.DeliveryType{sfapi.DeliveryTypeMail, sfapi.DeliveryTypeCourier}))

	assert.Nil(t, encoded(""))
	assert.Equal(t, "QWNtZQ==", encoded("Acme"))

	assert.Nil(t, optional(""))
	assert.Equal(t, "x", optional("x"))
}

func TestPaths(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "/tags/index.json", namedPath("/tags/index.json", nil))
	assert.Equal(t, "/stock_items/movements/1", queryStringPath("/stock_items/movements/1", query.Params{}.Add("x", nil)))
	assert.Equal(t, "/a?q=a+b&n=1", queryStringPath("/a", query.Params{}.Add("q", "a b").Add("n", 1)))
}
