// Package telemetry publishes rate limit snapshots observed by the client.
package telemetry

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"

	"github.com/fivetwenty-io/sfapi/internal/constants"
	"github.com/fivetwenty-io/sfapi/pkg/sfapi"
)

// Publisher is the part of *nats.Conn used for publishing.
type Publisher interface {
	Publish(subject string, data []byte) error
}

// Snapshot is the message published for every observed response.
type Snapshot struct {
	CompanyID  int              `json:"company_id"`
	Daily      *sfapi.RateLimit `json:"daily,omitempty"`
	Monthly    *sfapi.RateLimit `json:"monthly,omitempty"`
	ObservedAt time.Time        `json:"observed_at"`
}

// RateLimitPublisher implements sfapi.RateLimitObserver on top of NATS.
// Publish failures are logged and never fail the API call.
type RateLimitPublisher struct {
	publisher Publisher
	subject   string
	companyID int
	logger    zerolog.Logger
	now       func() time.Time
}

var _ sfapi.RateLimitObserver = (*RateLimitPublisher)(nil)

// NewRateLimitPublisher creates a publisher. An empty subject selects
// constants.RateLimitSubject.
func NewRateLimitPublisher(publisher Publisher, subject string, companyID int, logger zerolog.Logger) *RateLimitPublisher {
	if subject == "" {
		subject = constants.RateLimitSubject
	}

	return &RateLimitPublisher{
		publisher: publisher,
		subject:   subject,
		companyID: companyID,
		logger:    logger,
		now:       time.Now,
	}
}

// Connect dials the NATS server at url and returns a publisher using the
// connection. The returned close function drains the connection.
func Connect(url, subject string, companyID int, logger zerolog.Logger) (*RateLimitPublisher, func(), error) {
	conn, err := nats.Connect(url,
		nats.Name(constants.DefaultUserAgent),
		nats.Timeout(constants.NATSConnectTimeout),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn().Err(err).Msg("NATS disconnected")
			}
		}),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("connecting to NATS at %s: %w", url, err)
	}

	closeFn := func() {
		err := conn.Drain()
		if err != nil {
			logger.Debug().Err(err).Msg("draining NATS connection")
		}
	}

	return NewRateLimitPublisher(conn, subject, companyID, logger), closeFn, nil
}

// ObserveRateLimits implements sfapi.RateLimitObserver.
func (p *RateLimitPublisher) ObserveRateLimits(ctx context.Context, daily, monthly *sfapi.RateLimit) {
	if ctx.Err() != nil {
		return
	}

	payload, err := json.Marshal(Snapshot{
		CompanyID:  p.companyID,
		Daily:      daily,
		Monthly:    monthly,
		ObservedAt: p.now().UTC(),
	})
	if err != nil {
		p.logger.Warn().Err(err).Msg("encoding rate limit snapshot")

		return
	}

	err = p.publisher.Publish(p.subject, payload)
	if err != nil {
		p.logger.Warn().Err(err).Str("subject", p.subject).Msg("publishing rate limit snapshot")

		return
	}

	p.logger.Debug().Str("subject", p.subject).Msg("published rate limit snapshot")
}
