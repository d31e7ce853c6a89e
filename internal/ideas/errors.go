// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ideas

import "fmt"

// GenerationError reports that the generation backend could not produce
// output. Op names the backend operation, e.g. "generate keywords".
type GenerationError struct {
	Op  string
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation: %s: %v", e.Op, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// PersistenceError reports a failed read or write against the store.
// Op names the store operation, e.g. "insert tag".
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence: %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
