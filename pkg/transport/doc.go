// Package transport executes one encoded Premium API request per call over
// one of three interchangeable backends ("tiers").
//
// # Tiers
//
// In order of preference:
//
//   - [TierNative]: a full net/http client. Supports file uploads and
//     returns an already structured response.
//   - [TierSocket]: a raw TCP/TLS HTTP/1.0 exchange. Supports file uploads and
//     returns the combined header and body block, redirect hops included.
//   - [TierStream]: a minimal opener limited to GET and URL-encoded forms. It
//     must be explicitly permitted and returns raw header lines plus the body.
//
// [Select] picks the first tier a [Capabilities] value reports as available.
// The choice is made once per client.
//
// # Common contract
//
// Every backend sends exactly one request (following at most
// [Options.MaxRedirects] redirects), asks for gzip and decodes it, applies the
// connect and total timeouts from [Options], and reports transport failures as
// errors instead of panicking. TLS certificates are verified unless
// [Options.VerifyTLS] is false.
package transport
