package nfterrors

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindUnsupportedPlatform Kind = "unsupported_platform"
	KindMalformedReference  Kind = "malformed_reference"
	KindSaleNotFound        Kind = "sale_not_found"
	KindSaleInvalid         Kind = "sale_invalid"
	KindMetadataFetchFailed Kind = "metadata_fetch_failed"
	KindMetadataIncomplete  Kind = "metadata_incomplete"
	KindChainReadFailed     Kind = "chain_read_failed"
)

// Sentinels for errors.Is checks; only the kind is compared.
var (
	ErrUnsupportedPlatform = &Error{Kind: KindUnsupportedPlatform}
	ErrMalformedReference  = &Error{Kind: KindMalformedReference}
	ErrSaleNotFound        = &Error{Kind: KindSaleNotFound}
	ErrSaleInvalid         = &Error{Kind: KindSaleInvalid}
	ErrMetadataFetchFailed = &Error{Kind: KindMetadataFetchFailed}
	ErrMetadataIncomplete  = &Error{Kind: KindMetadataIncomplete}
	ErrChainReadFailed     = &Error{Kind: KindChainReadFailed}
)

// Error is a resolution failure tagged with its kind.
type Error struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

func New(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func Wrap(kind Kind, err error, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}

// KindOf returns the kind of the first *Error in err's chain, or "" if there is none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
