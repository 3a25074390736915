package ais

import "errors"

// Decode failures fall into three classes. All are local to a single
// message: callers are expected to skip the message and continue the
// stream.
var (
	// ErrWrongLength means the declared bit length does not match the
	// mandated length for the message type.
	ErrWrongLength = errors.New("ais: wrong message length")

	// ErrUnknownType means the type discriminant is outside 1-27.
	ErrUnknownType = errors.New("ais: unknown message type")

	// ErrMalformedField means a payload character fell outside the armor
	// alphabet or a field read ran past the end of the buffer.
	ErrMalformedField = errors.New("ais: malformed field")
)
