package reconciler

import "errors"

// ErrMalformedPayload marks a pull_request merge event whose payload is
// missing required nested fields. It fails the job so the queue retries
// and the delivery surfaces for investigation instead of being swallowed.
var ErrMalformedPayload = errors.New("malformed pull_request payload")
