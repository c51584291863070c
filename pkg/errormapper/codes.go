package errormapper

const (
	// Request & validation failures
	ErrorCodeValidationFailure = "VALIDATION_FAIL" // Generic validation failure
	ErrorCodeNotFound          = "NOT_FOUND"
	ErrorCodeUnauthorized      = "UNAUTHORIZED"
	ErrorCodeRateLimited       = "RATE_LIMITED"
	ErrorCodeUnknownCountry    = "UNKNOWN_COUNTRY"
	ErrorCodeConflict          = "CONFLICT"

	// Checkout failures
	ErrorCodeEmptyCart         = "EMPTY_CART"
	ErrorCodeOutOfStock        = "OUT_OF_STOCK"
	ErrorCodeProductInactive   = "PRODUCT_INACTIVE"
	ErrorCodeSessionNotFound   = "NO_SESSION"
	ErrorCodeInvalidTransition = "INVALID_TRANSITION"

	// Payment provider failures
	ErrorCodePaymentFailure   = "PAYMENT_FAIL"
	ErrorCodeInvalidSignature = "INVALID_SIGNATURE"

	// System errors
	ErrorCodeSystemError   = "SYS_ERR" // General internal error
	ErrorCodeDatabaseError = "DB_ERR"
	ErrorCodeConfigError   = "CONFIG_ERR"
)
