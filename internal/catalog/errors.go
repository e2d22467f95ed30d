package catalog

import (
	"errors"
	"fmt"
)

// Kind classifies a catalog failure so callers can branch without
// inspecting message text.
type Kind int

const (
	KindUnknown Kind = iota
	// KindNotConfigured means no credential was supplied.
	KindNotConfigured
	// KindUnauthorized means the catalog rejected the credential (401/403).
	KindUnauthorized
	// KindTransport covers dial failures, timeouts and cancellation.
	KindTransport
	// KindUpstream is any other non-2xx response.
	KindUpstream
	// KindDecode means the response body could not be parsed.
	KindDecode
	// KindUnsupportedLabel means no genre is mapped for the label.
	KindUnsupportedLabel
)

func (k Kind) String() string {
	switch k {
	case KindNotConfigured:
		return "not_configured"
	case KindUnauthorized:
		return "unauthorized"
	case KindTransport:
		return "transport"
	case KindUpstream:
		return "upstream"
	case KindDecode:
		return "decode"
	case KindUnsupportedLabel:
		return "unsupported_label"
	default:
		return "unknown"
	}
}

// Error is the tagged failure returned by Fetcher implementations.
type Error struct {
	Kind       Kind
	StatusCode int
	Err        error
}

func (e *Error) Error() string {
	msg := "catalog " + e.Kind.String()
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" (status %d)", e.StatusCode)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of a catalog error anywhere in err's chain, or
// KindUnknown.
func KindOf(err error) Kind {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return KindUnknown
}

// StatusOf returns the HTTP status carried by a catalog error, or 0.
func StatusOf(err error) int {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.StatusCode
	}
	return 0
}
