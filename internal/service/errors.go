package service

import "errors"

// Failure classes for the webhook flow. Handlers map these to response
// codes: verification failures must not trigger Stripe redelivery of a
// forged event (400), while persistence/resolution/fulfillment failures
// should (500).
var (
	ErrConfiguration = errors.New("configuration incomplete")
	ErrVerification  = errors.New("event verification failed")
	ErrPersistence   = errors.New("order store write failed")
	ErrValidation    = errors.New("validation failed")
	ErrResolution    = errors.New("product resolution failed")
	ErrFulfillment   = errors.New("fulfillment submission failed")
)
