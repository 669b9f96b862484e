package apperr

import "errors"

var (
	// ErrNotFound is a generic sentinel for missing resources.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized marks a rejected credential; the session store is
	// cleared when the backend answers 401.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInvalidQuantity marks a quantity below 1 on a cart mutation.
	ErrInvalidQuantity = errors.New("invalid quantity")
	// ErrInsufficientStock marks a request exceeding the advisory ledger.
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrRemoteUnavailable marks an operation that requires the backend
	// while the session is not backend-authenticated.
	ErrRemoteUnavailable = errors.New("remote cart service unavailable")
	// ErrNoCartPayload marks a successful response that carried no cart
	// body; the caller must treat the remote state as inconclusive.
	ErrNoCartPayload = errors.New("response carried no cart payload")
)
