package client

import (
	"time"

	"github.com/saleslv/premium-api/pkg/transport"
	"github.com/saleslv/premium-api/pkg/wire"
)

// DebugRecord describes the last call a Client made. It exists for
// diagnostics only.
type DebugRecord struct {
	// ID identifies the call in log output.
	ID     string
	URL    string
	Method string
	Tier   transport.Tier
	// Params are the request parameters as passed to the encoder.
	Params map[string]interface{}
	// Body is the encoded request body.
	Body []byte
	// Response is the decomposed raw response. It is nil when the call
	// failed before or during the exchange.
	Response *wire.Response
	Duration time.Duration
}
