package client

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/saleslv/premium-api/pkg/apierr"
	"github.com/saleslv/premium-api/pkg/wire"
)

// Messages recorded by the interpreter.
const (
	msgEmptyResponse   = "Empty response from Premium"
	msgCannotParse     = "Invalid response from Premium, cannot parse"
	msgJSONParsePrefix = "JSON parsing error: "
)

// ErrNoResult is returned when a backend produced no response record at all.
// The error state is left at None in that case.
var ErrNoResult = errors.New("premium: transport returned no response")

// Payload is a decoded response object. Numbers are json.Number.
type Payload map[string]interface{}

// ErrNo returns the service error code carried by the payload, or zero.
func (p Payload) ErrNo() int {
	n, _ := parseErrNo(p["ErrNo"])
	return n
}

// String returns the named field as text, or "" when it is absent.
func (p Payload) String(key string) string {
	v, ok := p[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// interpret classifies a decomposed response. A nil *apierr.Error means the
// payload can be trusted as is.
func interpret(resp *wire.Response) (Payload, *apierr.Error) {
	if len(resp.Body) == 0 {
		return nil, apierr.New(apierr.EmptyResponse, msgEmptyResponse)
	}

	v, err := decodeJSON(resp.Body)
	if err != nil {
		return nil, apierr.New(apierr.InvalidResponse, msgJSONParsePrefix+err.Error())
	}

	obj, ok := v.(map[string]interface{})
	if !ok || len(obj) == 0 {
		return nil, apierr.New(apierr.InvalidResponse, msgCannotParse)
	}
	payload := Payload(obj)

	raw, present := obj["ErrNo"]
	if !present {
		return payload, nil
	}
	code, ok := parseErrNo(raw)
	if !ok {
		return payload, apierr.Newf(apierr.InvalidResponse, "%s: ErrNo %v is not a number", msgCannotParse, raw)
	}
	if code == 0 {
		return payload, nil
	}
	return payload, apierr.New(apierr.Code(code), payload.String("Error"))
}

func decodeJSON(body []byte) (interface{}, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after top-level value")
	}
	return v, nil
}

// parseErrNo accepts a JSON number, a numeric string, a boolean or null.
func parseErrNo(v interface{}) (int, bool) {
	switch x := v.(type) {
	case nil:
		return 0, true
	case bool:
		if x {
			return 1, true
		}
		return 0, true
	case json.Number:
		n, err := strconv.Atoi(x.String())
		if err != nil {
			f, ferr := x.Float64()
			if ferr != nil {
				return 0, false
			}
			return int(f), true
		}
		return n, true
	case float64:
		return int(x), true
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return 0, true
		}
		n, err := strconv.Atoi(s)
		return n, err == nil
	}
	return 0, false
}
