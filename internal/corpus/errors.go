package corpus

import "fmt"

// ParseError reports a corpus file whose content is not a segment array.
// Callers skip the file and keep going.
type ParseError struct {
	File string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse corpus file %s: %v", e.File, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// FSError reports a failure to list the corpus directory or read one of its
// files. It is fatal for the request that hit it.
type FSError struct {
	Op   string
	Path string
	Err  error
}

func (e *FSError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FSError) Unwrap() error { return e.Err }
