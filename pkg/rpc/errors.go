package rpc

import "errors"

var (
	// ErrInvalidResponse is returned when a response cannot be decoded
	// into the expected shape.
	ErrInvalidResponse = errors.New("invalid rpc response")

	// ErrInvalidData is returned when a response decodes but fails
	// local validation (broken hash chain, bad signature, work below
	// difficulty, mismatching hashes).
	ErrInvalidData = errors.New("rpc response failed validation")

	// ErrNodeError is returned when the node answers with an error
	// field instead of a result.
	ErrNodeError = errors.New("node returned error")

	// ErrLegacyBlock is returned when publishing a legacy block, which
	// the process command does not accept.
	ErrLegacyBlock = errors.New("cannot publish legacy block")
)
