package sealed

import (
	"errors"
	"fmt"
	"strings"

	"sealscan/internal/ast"
)

var (
	// ErrInvariantViolated marks an internal inconsistency in the tree or
	// in the pass itself. It is never caused by user code.
	ErrInvariantViolated = errors.New("sealed inheritors: invariant violated")
	// ErrAliasCycle marks a type alias chain that never reaches a classifier.
	ErrAliasCycle = errors.New("sealed inheritors: alias cycle")
)

// InvariantError reports an unexpected node kind or a non-empty inheritor
// map after injection.
type InvariantError struct {
	Unit   ast.FileID
	Detail string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("%v in unit %d: %s", ErrInvariantViolated, e.Unit, e.Detail)
}

func (e *InvariantError) Unwrap() error { return ErrInvariantViolated }

func invariantf(unit ast.FileID, format string, args ...any) error {
	return &InvariantError{Unit: unit, Detail: fmt.Sprintf(format, args...)}
}

// AliasCycleError carries the alias chain that was being expanded.
// Limit is non-zero when expansion stopped at the depth bound rather than
// on a repeated alias.
type AliasCycleError struct {
	Chain []ast.ClassID
	Limit int
}

func (e *AliasCycleError) Error() string {
	parts := make([]string, len(e.Chain))
	for i, id := range e.Chain {
		parts[i] = id.String()
	}
	if e.Limit > 0 {
		return fmt.Sprintf("%v: expansion exceeded depth %d: %s", ErrAliasCycle, e.Limit, strings.Join(parts, " -> "))
	}
	return fmt.Sprintf("%v: %s", ErrAliasCycle, strings.Join(parts, " -> "))
}

func (e *AliasCycleError) Unwrap() error { return ErrAliasCycle }
