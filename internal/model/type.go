package model

import (
	"fmt"
	"net/netip"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// A Type is the data type of the values held by a list.
type Type string

const (
	// TypeIP is a list of IPv4 or IPv6 addresses.
	TypeIP Type = "ip"
	// TypeIPRange is a list of CIDR prefixes or "start-end" address ranges.
	TypeIPRange Type = "ip_range"
	// TypeKeyword is a list of exact strings.
	TypeKeyword Type = "keyword"
	// TypeDate is a list of dates, stored as RFC3339 UTC strings.
	TypeDate Type = "date"
)

// Types returns all the supported types.
func Types() []Type {
	return []Type{TypeIP, TypeIPRange, TypeKeyword, TypeDate}
}

// ParseType returns the Type named by s.
func ParseType(s string) (Type, error) {
	for _, t := range Types() {
		if string(t) == s {
			return t, nil
		}
	}
	return "", &ValueError{Value: s, Reason: "unsupported list type"}
}

// Valid returns true if t is a supported type.
func (t Type) Valid() bool {
	_, err := ParseType(string(t))
	return err == nil
}

// ParseValue validates the raw value against t and returns its normalized form.
func (t Type) ParseValue(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", &ValueError{Type: t, Value: raw, Reason: "value can't be blank"}
	}

	switch t {
	case TypeIP:
		addr, err := netip.ParseAddr(raw)
		if err != nil {
			return "", &ValueError{Type: t, Value: raw, Reason: "invalid ip address"}
		}
		return addr.String(), nil
	case TypeIPRange:
		return parseIPRange(raw)
	case TypeKeyword:
		return raw, nil
	case TypeDate:
		d, err := dateparse.ParseIn(raw, time.UTC)
		if err != nil {
			return "", &ValueError{Type: t, Value: raw, Reason: "invalid date"}
		}
		return d.UTC().Format(time.RFC3339), nil
	default:
		return "", &ValueError{Type: t, Value: raw, Reason: "unsupported list type"}
	}
}

func parseIPRange(raw string) (string, error) {
	if strings.Contains(raw, "/") {
		prefix, err := netip.ParsePrefix(raw)
		if err != nil {
			return "", &ValueError{Type: TypeIPRange, Value: raw, Reason: "invalid cidr"}
		}
		return prefix.Masked().String(), nil
	}

	parts := strings.Split(raw, "-")
	if len(parts) != 2 {
		return "", &ValueError{Type: TypeIPRange, Value: raw, Reason: "expected a cidr or a start-end range"}
	}

	start, err := netip.ParseAddr(strings.TrimSpace(parts[0]))
	if err != nil {
		return "", &ValueError{Type: TypeIPRange, Value: raw, Reason: "invalid range start"}
	}
	end, err := netip.ParseAddr(strings.TrimSpace(parts[1]))
	if err != nil {
		return "", &ValueError{Type: TypeIPRange, Value: raw, Reason: "invalid range end"}
	}
	if start.Is4() != end.Is4() {
		return "", &ValueError{Type: TypeIPRange, Value: raw, Reason: "range bounds must be of the same family"}
	}
	if end.Less(start) {
		return "", &ValueError{Type: TypeIPRange, Value: raw, Reason: "range start is greater than range end"}
	}

	return start.String() + "-" + end.String(), nil
}

// A ValueError is returned when a value does not match its list type.
type ValueError struct {
	Type   Type
	Value  string
	Reason string
}

func (e *ValueError) Error() string {
	if e.Type == "" {
		return fmt.Sprintf("%s: %q", e.Reason, e.Value)
	}
	return fmt.Sprintf("%s for type %s: %q", e.Reason, e.Type, e.Value)
}
