package wire

import "strings"

// Headers is an ordered name to value mapping. Names compare
// case-insensitively; the spelling of the first Set is kept.
// The zero value is ready to use and a nil *Headers reads as empty.
type Headers struct {
	names  []string
	values map[string]string
}

// NewHeaders returns an empty Headers.
func NewHeaders() *Headers {
	return &Headers{}
}

// HeadersFromLines builds Headers from "Name: value" strings, skipping lines
// without a colon.
func HeadersFromLines(lines ...string) *Headers {
	h := NewHeaders()
	for _, line := range lines {
		if name, value, ok := strings.Cut(line, ":"); ok {
			h.Set(strings.TrimSpace(name), strings.TrimSpace(value))
		}
	}
	return h
}

func headerKey(name string) string { return strings.ToLower(name) }

// Set stores value under name. An existing entry keeps its position.
func (h *Headers) Set(name, value string) {
	if h.values == nil {
		h.values = make(map[string]string)
	}
	k := headerKey(name)
	if _, ok := h.values[k]; !ok {
		h.names = append(h.names, name)
	}
	h.values[k] = value
}

// Append adds suffix to the value stored under name. It does nothing when
// name is absent.
func (h *Headers) Append(name, suffix string) {
	k := headerKey(name)
	if v, ok := h.values[k]; ok {
		h.values[k] = v + suffix
	}
}

// Get returns the value stored under name, or "".
func (h *Headers) Get(name string) string {
	v, _ := h.Lookup(name)
	return v
}

// Lookup returns the value stored under name and whether it was present.
func (h *Headers) Lookup(name string) (string, bool) {
	if h == nil {
		return "", false
	}
	v, ok := h.values[headerKey(name)]
	return v, ok
}

// Del removes name.
func (h *Headers) Del(name string) {
	if h == nil {
		return
	}
	k := headerKey(name)
	if _, ok := h.values[k]; !ok {
		return
	}
	delete(h.values, k)
	for i, n := range h.names {
		if headerKey(n) == k {
			h.names = append(h.names[:i], h.names[i+1:]...)
			break
		}
	}
}

// Len returns the number of entries.
func (h *Headers) Len() int {
	if h == nil {
		return 0
	}
	return len(h.names)
}

// Names returns the header names in order.
func (h *Headers) Names() []string {
	if h == nil {
		return nil
	}
	out := make([]string, len(h.names))
	copy(out, h.names)
	return out
}

// Each calls fn for every entry in order.
func (h *Headers) Each(fn func(name, value string)) {
	if h == nil {
		return
	}
	for _, n := range h.names {
		fn(n, h.values[headerKey(n)])
	}
}

// Merge sets every entry of other on h, in other's order.
func (h *Headers) Merge(other *Headers) {
	other.Each(h.Set)
}

// Lines renders the entries as "Name: value" strings.
func (h *Headers) Lines() []string {
	out := make([]string, 0, h.Len())
	h.Each(func(name, value string) {
		out = append(out, name+": "+value)
	})
	return out
}

// Clone returns a deep copy.
func (h *Headers) Clone() *Headers {
	c := NewHeaders()
	c.Merge(h)
	return c
}

// Map returns the entries as a plain map keyed by the stored spelling.
func (h *Headers) Map() map[string]string {
	out := make(map[string]string, h.Len())
	h.Each(func(name, value string) { out[name] = value })
	return out
}
