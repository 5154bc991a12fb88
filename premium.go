// Package premium is a client for the SalesLV Premium campaign API.
//
// Example usage:
//
//	cfg := premium.DefaultConfig()
//	cfg.APIKey = "your-api-key"
//	cfg.CampaignCode = "your-campaign"
//	c, err := premium.New(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	info, err := c.InfoGet(context.Background())
//	if err != nil {
//	    log.Fatalf("error #%d: %s", c.LastErrorCode(), c.LastError())
//	}
//	fmt.Println(info.String("Name"))
package premium

import (
	"github.com/saleslv/premium-api/pkg/apierr"
	"github.com/saleslv/premium-api/pkg/client"
	"github.com/saleslv/premium-api/pkg/wire"
)

// Client calls the API for one campaign. See client.Client.
type Client = client.Client

// Config holds the connection settings for a Client.
type Config = client.Config

// Option customizes a Client.
type Option = client.Option

// Payload is a decoded response object.
type Payload = client.Payload

// Filter selects messages for MessagesList.
type Filter = client.Filter

// Attachment is a local file uploaded with MessagesCreate.
type Attachment = wire.Attachment

// Error is the error type returned by Client calls.
type Error = apierr.Error

// Code identifies the outcome of a call.
type Code = apierr.Code

// DebugRecord describes the last request a Client made.
type DebugRecord = client.DebugRecord

// Version is the library version sent in the User-Agent.
const Version = client.Version

// ErrNoResult is returned when the transport produced no response at all.
var ErrNoResult = client.ErrNoResult

// New creates a Client.
func New(cfg Config, opts ...Option) (*Client, error) {
	return client.New(cfg, opts...)
}

// DefaultConfig returns a Config with default endpoint, version and timeouts.
// APIKey and CampaignCode must be set before calling New.
func DefaultConfig() Config {
	return client.DefaultConfig()
}

// Re-exported options.
var (
	WithLogger         = client.WithLogger
	WithCapabilities   = client.WithCapabilities
	WithBackendFactory = client.WithBackendFactory
	WithHTTPClient     = client.WithHTTPClient
	WithRemoteAddr     = client.WithRemoteAddr
	WithCallerIP       = client.WithCallerIP
	RemoteIP           = client.RemoteIP
)
