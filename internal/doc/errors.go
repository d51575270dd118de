package doc

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedIdentifier reports an identifier that is not in the
	// 8-4-4-4-12 grouped-hex form.
	ErrMalformedIdentifier = errors.New("malformed identifier")
	// ErrUnknownNodeType reports a node_type tag outside the known variant set.
	ErrUnknownNodeType = errors.New("unknown node type")
	// ErrIntegrity reports a required field that is missing or has the wrong shape.
	ErrIntegrity = errors.New("integrity error")
	// ErrTooDeep reports a tree nested deeper than MaxDepth. It matches ErrIntegrity.
	ErrTooDeep = fmt.Errorf("%w: tree exceeds maximum depth of %d", ErrIntegrity, MaxDepth)
)

// DecodeError locates a decode failure within the input document.
// Path uses dotted field names and [i] indices, e.g. "root.children[0].id".
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	if e.Path == "" {
		return e.Err.Error()
	}
	return e.Path + ": " + e.Err.Error()
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func decodeErr(path string, err error) error {
	var de *DecodeError
	if errors.As(err, &de) {
		return err
	}
	return &DecodeError{Path: path, Err: err}
}

func integrityErr(path, format string, args ...any) error {
	return &DecodeError{Path: path, Err: fmt.Errorf("%w: %s", ErrIntegrity, fmt.Sprintf(format, args...))}
}
