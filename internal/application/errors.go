package application

import (
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("not found")
var ErrConflict = errors.New("conflict")
var ErrDuplicate = errors.New("duplicate key")

// Kind classifies a gateway failure by cause.
type Kind string

const (
	KindUpstreamUnavailable Kind = "upstream_unavailable"
	KindUnsupportedTarget   Kind = "unsupported_target"
	KindInvalidInput        Kind = "invalid_input"
	KindQuoteUnavailable    Kind = "quote_unavailable"
	KindAssetNotFound       Kind = "asset_not_found"
	KindDuplicateAsset      Kind = "duplicate_asset"
	KindInsertFailed        Kind = "insert_failed"
	KindStoreUnavailable    Kind = "store_unavailable"
)

// Error is a tagged gateway failure. Detail is safe to show to API clients;
// Err carries the underlying cause for logs.
type Error struct {
	Kind   Kind
	Detail string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Detail, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same kind, so the sentinels below work with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

var (
	ErrUpstreamUnavailable = &Error{Kind: KindUpstreamUnavailable}
	ErrUnsupportedTarget   = &Error{Kind: KindUnsupportedTarget}
	ErrInvalidInput        = &Error{Kind: KindInvalidInput}
	ErrQuoteUnavailable    = &Error{Kind: KindQuoteUnavailable}
	ErrAssetNotFound       = &Error{Kind: KindAssetNotFound}
	ErrDuplicateAsset      = &Error{Kind: KindDuplicateAsset}
	ErrInsertFailed        = &Error{Kind: KindInsertFailed}
	ErrStoreUnavailable    = &Error{Kind: KindStoreUnavailable}
)

func newError(kind Kind, detail string, cause error) *Error {
	return &Error{Kind: kind, Detail: detail, Err: cause}
}
