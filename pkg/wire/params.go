package wire

import (
	"encoding/json"
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"
)

// listSuffix marks list parameters on the wire: name[]=a&name[]=b.
const listSuffix = "[]"

// Params is an ordered set of request parameters. Each value is either a
// scalar or a list of scalars. The zero value is ready to use.
type Params struct {
	names  []string
	values map[string]param
}

type param struct {
	list   bool
	values []string
}

// NewParams returns an empty parameter set.
func NewParams() *Params {
	return &Params{}
}

func (p *Params) put(name string, v param) {
	if p.values == nil {
		p.values = make(map[string]param)
	}
	if _, ok := p.values[name]; !ok {
		p.names = append(p.names, name)
	}
	p.values[name] = v
}

// Set stores a scalar value.
func (p *Params) Set(name, value string) *Params {
	p.put(name, param{values: []string{value}})
	return p
}

// SetList stores a list value. An empty list is kept and encodes to nothing.
func (p *Params) SetList(name string, values []string) *Params {
	vs := make([]string, len(values))
	copy(vs, values)
	p.put(name, param{list: true, values: vs})
	return p
}

// SetValue stores v, formatting it with FormatScalar. Slices and arrays of
// scalars become lists. Other kinds are rejected.
func (p *Params) SetValue(name string, v interface{}) error {
	if s, ok := FormatScalar(v); ok {
		p.Set(name, s)
		return nil
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return fmt.Errorf("parameter %q: unsupported type %T", name, v)
	}

	list := make([]string, rv.Len())
	for i := range list {
		s, ok := FormatScalar(rv.Index(i).Interface())
		if !ok {
			return fmt.Errorf("parameter %q[%d]: unsupported type %T", name, i, rv.Index(i).Interface())
		}
		list[i] = s
	}
	p.SetList(name, list)
	return nil
}

// Get returns the values stored under name, whether they form a list, and
// whether name exists.
func (p *Params) Get(name string) (values []string, list bool, ok bool) {
	if p == nil {
		return nil, false, false
	}
	v, ok := p.values[name]
	return v.values, v.list, ok
}

// Del removes name.
func (p *Params) Del(name string) {
	if p == nil {
		return
	}
	if _, ok := p.values[name]; !ok {
		return
	}
	delete(p.values, name)
	for i, n := range p.names {
		if n == name {
			p.names = append(p.names[:i], p.names[i+1:]...)
			break
		}
	}
}

// Len returns the number of parameters.
func (p *Params) Len() int {
	if p == nil {
		return 0
	}
	return len(p.names)
}

// Names returns parameter names in insertion order.
func (p *Params) Names() []string {
	if p == nil {
		return nil
	}
	out := make([]string, len(p.names))
	copy(out, p.names)
	return out
}

// Clone returns a deep copy. Cloning nil yields nil.
func (p *Params) Clone() *Params {
	if p == nil {
		return nil
	}
	c := NewParams()
	for _, n := range p.names {
		v := p.values[n]
		if v.list {
			c.SetList(n, v.values)
		} else {
			c.Set(n, v.values[0])
		}
	}
	return c
}

// Map flattens the set for display: scalars map to strings, lists to []string.
func (p *Params) Map() map[string]interface{} {
	out := make(map[string]interface{}, p.Len())
	for _, n := range p.Names() {
		v := p.values[n]
		if v.list {
			out[n] = append([]string(nil), v.values...)
		} else {
			out[n] = v.values[0]
		}
	}
	return out
}

// EncodeForm renders p as an application/x-www-form-urlencoded body.
// Names and values are percent-encoded; list entries repeat name[].
func EncodeForm(p *Params) string {
	var b strings.Builder
	pair := func(key, value string) {
		if b.Len() > 0 {
			b.WriteByte('&')
		}
		b.WriteString(key)
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(value))
	}

	for _, n := range p.Names() {
		v := p.values[n]
		key := url.QueryEscape(n)
		if !v.list {
			pair(key, v.values[0])
			continue
		}
		for _, item := range v.values {
			pair(key+listSuffix, item)
		}
	}
	return b.String()
}

// DecodeForm parses a body produced by EncodeForm.
func DecodeForm(body string) (*Params, error) {
	p := NewParams()
	for _, pair := range strings.Split(body, "&") {
		if pair == "" {
			continue
		}
		rawKey, rawValue, _ := strings.Cut(pair, "=")
		key, err := url.QueryUnescape(rawKey)
		if err != nil {
			return nil, fmt.Errorf("decode name %q: %w", rawKey, err)
		}
		value, err := url.QueryUnescape(rawValue)
		if err != nil {
			return nil, fmt.Errorf("decode value of %q: %w", key, err)
		}

		if name, ok := strings.CutSuffix(key, listSuffix); ok {
			existing, _, _ := p.Get(name)
			p.SetList(name, append(existing, value))
			continue
		}
		p.Set(key, value)
	}
	return p, nil
}

// FormatScalar renders a scalar the way the service expects to receive it.
// Booleans become "1" or "", nil becomes "". The second result is false for
// values that are not scalars.
func FormatScalar(v interface{}) (string, bool) {
	switch x := v.(type) {
	case nil:
		return "", true
	case string:
		return x, true
	case []byte:
		return string(x), true
	case bool:
		if x {
			return "1", true
		}
		return "", true
	case int:
		return strconv.Itoa(x), true
	case int8:
		return strconv.FormatInt(int64(x), 10), true
	case int16:
		return strconv.FormatInt(int64(x), 10), true
	case int32:
		return strconv.FormatInt(int64(x), 10), true
	case int64:
		return strconv.FormatInt(x, 10), true
	case uint:
		return strconv.FormatUint(uint64(x), 10), true
	case uint8:
		return strconv.FormatUint(uint64(x), 10), true
	case uint16:
		return strconv.FormatUint(uint64(x), 10), true
	case uint32:
		return strconv.FormatUint(uint64(x), 10), true
	case uint64:
		return strconv.FormatUint(x, 10), true
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32), true
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), true
	case json.Number:
		return x.String(), true
	case fmt.Stringer:
		return x.String(), true
	}
	return "", false
}
