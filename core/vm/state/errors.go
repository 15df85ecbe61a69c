package state

import "errors"

// ErrNonceOverflow is returned by SetNonce when the requested nonce would
// exceed params.MaxNonce.
var ErrNonceOverflow = errors.New("state: nonce overflow")
