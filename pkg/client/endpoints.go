package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strconv"

	"github.com/saleslv/premium-api/pkg/apierr"
	"github.com/saleslv/premium-api/pkg/log"
	"github.com/saleslv/premium-api/pkg/wire"
)

// JSONEncodedFields are MessagesCreate fields whose list values are sent as
// one JSON string instead of repeated name[] pairs.
var JSONEncodedFields = map[string]bool{
	"UniqueCode":  true,
	"UniqueCodes": true,
}

// Filter selects messages by field. A value may be a scalar or a list.
type Filter map[string]interface{}

// InfoGet retrieves general information about the campaign.
func (c *Client) InfoGet(ctx context.Context) (Payload, error) {
	return c.call(ctx, "Info:Get", nil, nil)
}

// StatisticsGeneral retrieves aggregate counts for the campaign.
func (c *Client) StatisticsGeneral(ctx context.Context) (Payload, error) {
	return c.call(ctx, "Statistics:General", nil, nil)
}

// MessagesGet retrieves one message.
func (c *Client) MessagesGet(ctx context.Context, id int64) (Payload, error) {
	return c.call(ctx, "Messages:Get/ID:"+strconv.FormatInt(id, 10), nil, nil)
}

// MessagesList lists messages matching from. When to is set, each field
// present in both filters selects the range between the two values. The
// number of messages per reply is limited by the service; offset pages
// through the rest.
func (c *Client) MessagesList(ctx context.Context, from, to Filter, offset int) (Payload, error) {
	params := wire.NewParams()

	f1, err := marshalJSON(from)
	if err != nil {
		return nil, c.rejectParams(fmt.Errorf("encode Filter1: %w", err))
	}
	params.Set("Filter1", f1)

	if len(to) > 0 {
		f2, err := marshalJSON(to)
		if err != nil {
			return nil, c.rejectParams(fmt.Errorf("encode Filter2: %w", err))
		}
		params.Set("Filter2", f2)
	}
	params.Set("Offset", strconv.Itoa(offset))

	return c.call(ctx, "Messages:List", params, nil)
}

// MessagesCreate submits a new message. When fields has no IP entry, the
// address from WithCallerIP, or else from the WithRemoteAddr option, is
// used. Attachments are uploaded as multipart parts.
func (c *Client) MessagesCreate(ctx context.Context, fields map[string]interface{}, attachments []wire.Attachment) (Payload, error) {
	params, err := c.messageParams(ctx, fields)
	if err != nil {
		return nil, c.rejectParams(err)
	}
	return c.call(ctx, "Messages:Create", params, attachments)
}

func (c *Client) messageParams(ctx context.Context, fields map[string]interface{}) (*wire.Params, error) {
	names := make([]string, 0, len(fields)+1)
	for name := range fields {
		names = append(names, name)
	}
	if _, ok := fields["IP"]; !ok {
		names = append(names, "IP")
	}
	sort.Strings(names)

	params := wire.NewParams()
	for _, name := range names {
		v := fields[name]
		if name == "IP" {
			if ip, _ := wire.FormatScalar(v); ip == "" {
				v = c.callerIP(ctx)
			}
		}
		if err := setField(params, name, v); err != nil {
			return nil, err
		}
	}
	return params, nil
}

func (c *Client) callerIP(ctx context.Context) string {
	if ip, ok := CallerIP(ctx); ok {
		return ip
	}
	if c.remoteAddr != nil {
		return c.remoteAddr()
	}
	return ""
}

// setField stores one message field. Lists of allow-listed fields, maps and
// anything the form encoding cannot express go out as JSON.
func setField(params *wire.Params, name string, v interface{}) error {
	kind := reflect.Invalid
	if v != nil {
		kind = reflect.TypeOf(v).Kind()
	}

	listLike := kind == reflect.Slice || kind == reflect.Array
	if _, isBytes := v.([]byte); isBytes {
		listLike = false
	}

	if (listLike && JSONEncodedFields[name]) || kind == reflect.Map {
		return setJSON(params, name, v)
	}
	if err := params.SetValue(name, v); err != nil {
		return setJSON(params, name, v)
	}
	return nil
}

func setJSON(params *wire.Params, name string, v interface{}) error {
	s, err := marshalJSON(v)
	if err != nil {
		return fmt.Errorf("encode field %q: %w", name, err)
	}
	params.Set(name, s)
	return nil
}

// marshalJSON encodes v without HTML escaping and without the trailing
// newline json.Encoder adds.
func marshalJSON(v interface{}) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return string(bytes.TrimSuffix(buf.Bytes(), []byte("\n"))), nil
}

// rejectParams records a request that could not be built from the caller's
// arguments.
func (c *Client) rejectParams(err error) error {
	c.state.Reset()
	c.debug = nil
	e := apierr.New(apierr.CannotMakeRequest, err.Error())
	c.state.SetErr(e)
	c.logger.Warn("cannot build request", log.Err(err))
	return e
}
