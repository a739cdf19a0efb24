package gateway

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"localwear-storefront/internal/domain"
)

// Error is a failed gateway call. Kind is one of the domain sentinels, so callers classify
// with errors.Is(err, domain.ErrValidation) and friends.
type Error struct {
	Kind    error
	Op      string
	Status  int
	Message string
	cause   error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("gateway: ")
	b.WriteString(e.Op)
	if e.Status != 0 {
		fmt.Fprintf(&b, ": status %d", e.Status)
	}
	b.WriteString(": ")
	b.WriteString(e.UserMessage())
	if e.cause != nil {
		b.WriteString(": ")
		b.WriteString(e.cause.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() []error {
	if e.cause == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.cause}
}

// UserMessage is the text shown in the blocking notification.
func (e *Error) UserMessage() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Kind != nil {
		return e.Kind.Error()
	}
	return "request failed"
}

// Kind reports which taxonomy sentinel err carries. Unknown errors count as network failures.
func Kind(err error) error {
	for _, k := range []error{domain.ErrAuth, domain.ErrValidation, domain.ErrNotFound, domain.ErrNetwork} {
		if errors.Is(err, k) {
			return k
		}
	}
	return domain.ErrNetwork
}

// classify maps an HTTP status to the taxonomy. Auth routes answer bad credentials with 400.
func classify(status int, authRoute bool) error {
	switch {
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		return domain.ErrAuth
	case status == http.StatusBadRequest && authRoute:
		return domain.ErrAuth
	case status == http.StatusNotFound:
		return domain.ErrNotFound
	case status >= 400 && status < 500:
		return domain.ErrValidation
	default:
		return domain.ErrNetwork
	}
}
