package param

import "errors"

var (
	// ErrKind reports a node of the wrong kind.
	ErrKind = errors.New("invalid kind")
	// ErrRange reports an integer that does not fit its kind.
	ErrRange = errors.New("integer out of range")
	// ErrSyntax reports malformed codec input.
	ErrSyntax = errors.New("malformed param tree")
)
