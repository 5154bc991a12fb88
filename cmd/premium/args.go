package main

import (
	"fmt"
	"strings"

	"github.com/saleslv/premium-api/pkg/client"
	"github.com/saleslv/premium-api/pkg/wire"
)

// parsePairs turns repeated key=value arguments into a field map. A key given
// more than once becomes a list in argument order.
func parsePairs(args []string) (map[string]interface{}, error) {
	out := make(map[string]interface{}, len(args))
	for _, arg := range args {
		k, v, ok := strings.Cut(arg, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid field %q: want key=value", arg)
		}
		switch prev := out[k].(type) {
		case nil:
			out[k] = v
		case string:
			out[k] = []string{prev, v}
		case []string:
			out[k] = append(prev, v)
		}
	}
	return out, nil
}

func parseFilter(args []string) (client.Filter, error) {
	m, err := parsePairs(args)
	if err != nil {
		return nil, err
	}
	return client.Filter(m), nil
}

// parseAttachment reads path:type:name. The path is everything before the
// last two colons so drive letters survive.
func parseAttachment(arg string) (wire.Attachment, error) {
	i := strings.LastIndex(arg, ":")
	if i < 0 {
		return wire.Attachment{}, fmt.Errorf("invalid attachment %q: want path:type:name", arg)
	}
	j := strings.LastIndex(arg[:i], ":")
	if j < 0 {
		return wire.Attachment{}, fmt.Errorf("invalid attachment %q: want path:type:name", arg)
	}
	return wire.Attachment{Path: arg[:j], Type: arg[j+1 : i], Name: arg[i+1:]}, nil
}

func parseAttachments(args []string) ([]wire.Attachment, error) {
	out := make([]wire.Attachment, 0, len(args))
	for _, arg := range args {
		a, err := parseAttachment(arg)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}
