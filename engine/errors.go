package engine

import "errors"

// ErrRetryExhausted is returned when edge routing still fails after
// every reshuffle-and-retry attempt has been used up.
var ErrRetryExhausted = errors.New("engine: exhausted edge routing retry attempts")
