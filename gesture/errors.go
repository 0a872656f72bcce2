package gesture

import "errors"

// ErrSubscriptionFailed is returned by AddTokens when the sensor's Subscribe
// call fails for a ground-term node. The node's held-token set is left
// unmodified on this error.
var ErrSubscriptionFailed = errors.New("gesture: sensor subscription failed")
