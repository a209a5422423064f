// Package fileproc provides concurrent payload processing utilities.
package fileproc

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/sourcegraph/conc/pool"
)

// ProcessingError represents an error that occurred while processing a payload.
type ProcessingError struct {
	Path string
	Err  error
}

func (e ProcessingError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

// ProcessingErrors collects multiple payload processing errors.
type ProcessingErrors struct {
	Errors []ProcessingError
	mu     sync.Mutex
}

// Add appends an error to the collection (thread-safe).
func (e *ProcessingErrors) Add(path string, err error) {
	e.mu.Lock()
	e.Errors = append(e.Errors, ProcessingError{Path: path, Err: err})
	e.mu.Unlock()
}

// HasErrors returns true if any errors were collected.
func (e *ProcessingErrors) HasErrors() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.Errors) > 0
}

// Error implements the error interface.
func (e *ProcessingErrors) Error() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.Errors) == 0 {
		return "no errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	return fmt.Sprintf("%d payloads failed to process (first: %v)", len(e.Errors), e.Errors[0])
}

// ProgressFunc is called after each payload is processed.
type ProgressFunc func()

// MapPayloads transforms payload paths in parallel and collects the results
// in input order. Failed paths are reported through errs and leave a zero
// value at their position; callers filter on the error collection.
func MapPayloads[T any](paths []string, fn func(path string) (T, error), progress ProgressFunc) ([]T, *ProcessingErrors) {
	results := make([]T, len(paths))
	errs := &ProcessingErrors{}

	p := pool.New().WithMaxGoroutines(runtime.NumCPU())
	for i, path := range paths {
		p.Go(func() {
			out, err := fn(path)
			if err != nil {
				errs.Add(path, err)
			} else {
				results[i] = out
			}
			if progress != nil {
				progress()
			}
		})
	}
	p.Wait()

	return results, errs
}
