package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Grant errors
	ErrMsgSelfGrant          = "cannot grant candy to yourself"
	ErrMsgDuplicateGrant     = "candy already granted for this message"
	ErrMsgDailyCapExceeded   = "daily grant limit reached"
	ErrMsgMonthlyCapExceeded = "monthly super grant already used"

	// Ledger errors
	ErrMsgInsufficientBalance = "not enough candy"

	// Exchange errors
	// A missing holding and an undersized holding are reported identically.
	ErrMsgInsufficientHolding = "not enough of that item"

	// Catalog errors
	ErrMsgItemNotFound   = "item not found"
	ErrMsgInvalidCatalog = "invalid item catalog"

	// Validation errors
	ErrMsgInvalidTier  = "invalid candy tier"
	ErrMsgInvalidInput = "invalid input"

	// Database/System errors
	ErrMsgStorageConflict = "storage conflict"
	ErrMsgTxClosed        = "tx is closed"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// Grant errors
	ErrSelfGrant          = errors.New(ErrMsgSelfGrant)
	ErrDuplicateGrant     = errors.New(ErrMsgDuplicateGrant)
	ErrDailyCapExceeded   = errors.New(ErrMsgDailyCapExceeded)
	ErrMonthlyCapExceeded = errors.New(ErrMsgMonthlyCapExceeded)

	// Ledger errors
	ErrInsufficientBalance = errors.New(ErrMsgInsufficientBalance)

	// Exchange errors
	ErrInsufficientHolding = errors.New(ErrMsgInsufficientHolding)

	// Catalog errors
	ErrItemNotFound   = errors.New(ErrMsgItemNotFound)
	ErrInvalidCatalog = errors.New(ErrMsgInvalidCatalog)

	// Validation errors
	ErrInvalidTier  = errors.New(ErrMsgInvalidTier)
	ErrInvalidInput = errors.New(ErrMsgInvalidInput)

	// Database/System errors
	// ErrStorageConflict marks transient serialization/deadlock failures.
	// Repositories retry these a bounded number of times before giving up.
	ErrStorageConflict = errors.New(ErrMsgStorageConflict)
)
