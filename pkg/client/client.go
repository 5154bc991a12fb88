package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/saleslv/premium-api/pkg/apierr"
	"github.com/saleslv/premium-api/pkg/log"
	"github.com/saleslv/premium-api/pkg/transport"
	"github.com/saleslv/premium-api/pkg/wire"
)

const msgNoBackend = "No means to make a HTTP request are available (native, socket or stream transport)"

// Client calls the Premium API for one campaign.
type Client struct {
	config    Config
	baseURL   string
	userAgent string
	tier      transport.Tier
	backend   transport.Backend

	logger     log.Logger
	remoteAddr func() string

	state apierr.State
	debug *DebugRecord
}

// New creates a Client. The transport tier is selected here and kept for the
// life of the Client. When no tier is available New still succeeds, and every
// call fails with CannotMakeRequest without touching the network.
func New(cfg Config, opts ...Option) (*Client, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	caps := o.caps
	if caps == nil {
		caps = cfg.capabilities()
	}

	c := &Client{
		config:     cfg,
		baseURL:    cfg.baseURL(),
		logger:     o.logger,
		remoteAddr: o.remoteAddr,
	}

	tier, ok := transport.Select(caps)
	if !ok {
		c.userAgent = transport.UserAgent(Version, transport.TierNone)
		c.logger.Warn("no transport tier available")
		return c, nil
	}

	topts := cfg.transportOptions()
	topts.HTTPClient = o.httpClient
	backend, err := o.factory(tier, topts)
	if err != nil {
		return nil, fmt.Errorf("create %s backend: %w", tier, err)
	}

	c.tier = tier
	c.backend = backend
	c.userAgent = transport.UserAgent(Version, tier)

	if cfg.InsecureSkipVerify {
		c.logger.Warn("TLS certificate verification is disabled", log.String("endpoint", cfg.Endpoint))
	}
	c.logger.Debug("client ready",
		log.String("tier", tier.String()),
		log.String("user_agent", c.userAgent),
	)
	return c, nil
}

// call is one round trip: attachment checks, encoding, exchange and
// interpretation. The returned error is nil or an *apierr.Error equal to the
// recorded state, except for ErrNoResult.
func (c *Client) call(ctx context.Context, path string, params *wire.Params, files []wire.Attachment) (Payload, error) {
	c.state.Reset()

	method := http.MethodGet
	if params.Len() > 0 || len(files) > 0 {
		method = http.MethodPost
	}
	rec := &DebugRecord{
		ID:     uuid.NewString(),
		URL:    c.baseURL + path,
		Method: method,
		Tier:   c.tier,
		Params: params.Map(),
	}
	c.debug = rec

	if c.backend == nil {
		return nil, c.fail(rec, apierr.New(apierr.CannotMakeRequest, msgNoBackend))
	}

	if len(files) > 0 {
		if !c.backend.SupportsUpload() {
			return nil, c.fail(rec, apierr.Newf(apierr.AttachmentsNotSupportedWithMethod,
				"Attachments are not supported by the %s transport", c.tier))
		}
		if err := wire.ValidateAttachments(files); err != nil {
			return nil, c.fail(rec, asAPIError(err, apierr.MalformedAttachmentList))
		}
	}

	req, err := wire.Encode(wire.RequestSpec{URL: rec.URL, Params: params, Files: files}, c.userAgent)
	if err != nil {
		return nil, c.fail(rec, asAPIError(err, apierr.RequestFailed))
	}
	rec.Method = req.Method
	rec.Body = req.Body

	c.logger.Debug("sending request",
		log.String("request_id", rec.ID),
		log.String("method", rec.Method),
		log.String("url", rec.URL),
		log.String("tier", c.tier.String()),
	)

	start := time.Now()
	res, err := c.backend.Do(ctx, req)
	rec.Duration = time.Since(start)
	if err != nil {
		return nil, c.fail(rec, apierr.New(apierr.RequestFailed, err.Error()))
	}

	resp := res.Response()
	if resp == nil {
		c.logger.Warn("no response record", log.String("request_id", rec.ID))
		return nil, ErrNoResult
	}
	rec.Response = resp

	payload, apiErr := interpret(resp)
	if apiErr != nil {
		c.state.SetErr(apiErr)
		c.logger.Warn("request returned an error",
			log.String("request_id", rec.ID),
			log.Int("status", resp.StatusCode),
			log.Int("code", int(apiErr.Code)),
			log.String("error", apiErr.Message),
		)
		return payload, apiErr
	}

	c.logger.Debug("request complete",
		log.String("request_id", rec.ID),
		log.Int("status", resp.StatusCode),
		log.Duration("duration", rec.Duration),
	)
	return payload, nil
}

func (c *Client) fail(rec *DebugRecord, e *apierr.Error) *apierr.Error {
	c.state.SetErr(e)
	c.logger.Warn("request failed",
		log.String("request_id", rec.ID),
		log.String("url", rec.URL),
		log.Int("code", int(e.Code)),
		log.String("error", e.Message),
	)
	return e
}

func asAPIError(err error, fallback apierr.Code) *apierr.Error {
	var e *apierr.Error
	if errors.As(err, &e) {
		return e
	}
	return apierr.New(fallback, err.Error())
}

// LastError returns the message of the last call's outcome, "" on success.
func (c *Client) LastError() string { return c.state.Message() }

// LastErrorCode returns the code of the last call's outcome.
func (c *Client) LastErrorCode() apierr.Code { return c.state.Code() }

// LastErr returns the last call's outcome as an error, nil on success.
func (c *Client) LastErr() error { return c.state.Err() }

// LastDebugRecord returns a copy of the record of the last call, or nil
// before the first call.
func (c *Client) LastDebugRecord() *DebugRecord {
	if c.debug == nil {
		return nil
	}
	rec := *c.debug
	return &rec
}

// Tier returns the transport tier selected at construction.
func (c *Client) Tier() transport.Tier { return c.tier }

// UserAgent returns the User-Agent sent with every request.
func (c *Client) UserAgent() string { return c.userAgent }

// BaseURL returns the URL prefix every endpoint path is appended to.
func (c *Client) BaseURL() string { return c.baseURL }
