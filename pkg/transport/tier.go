package transport

import (
	"fmt"
	"strings"
)

// Tier identifies a backend implementation.
type Tier int

const (
	// TierNone means no backend is usable.
	TierNone Tier = iota
	TierNative
	TierSocket
	TierStream
)

// Preference lists the tiers in the order Select tries them.
var Preference = []Tier{TierNative, TierSocket, TierStream}

func (t Tier) String() string {
	switch t {
	case TierNative:
		return "native"
	case TierSocket:
		return "socket"
	case TierStream:
		return "stream"
	}
	return "none"
}

// ParseTier parses a tier name as printed by String.
func ParseTier(s string) (Tier, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "native":
		return TierNative, nil
	case "socket":
		return TierSocket, nil
	case "stream":
		return TierStream, nil
	}
	return TierNone, fmt.Errorf("unknown transport tier %q", s)
}

// Capabilities reports which tiers can be used in this process.
type Capabilities interface {
	Available(t Tier) bool
}

// CapabilityFunc adapts a function to Capabilities.
type CapabilityFunc func(t Tier) bool

// Available calls f.
func (f CapabilityFunc) Available(t Tier) bool { return f(t) }

// StaticCapabilities is the configuration-driven Capabilities used by
// default. The native and socket tiers are available unless disabled; the
// stream tier additionally requires AllowStreamOpen.
type StaticCapabilities struct {
	Disabled        []Tier
	AllowStreamOpen bool
}

// Available implements Capabilities.
func (c StaticCapabilities) Available(t Tier) bool {
	for _, d := range c.Disabled {
		if d == t {
			return false
		}
	}
	switch t {
	case TierNative, TierSocket:
		return true
	case TierStream:
		return c.AllowStreamOpen
	}
	return false
}

// Select returns the first available tier in Preference order. The second
// result is false when no tier is available.
func Select(caps Capabilities) (Tier, bool) {
	if caps == nil {
		return TierNone, false
	}
	for _, t := range Preference {
		if caps.Available(t) {
			return t, true
		}
	}
	return TierNone, false
}
