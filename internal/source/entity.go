// pattern: Functional Core

package source

import "fmt"

// Status is the outcome of a create or remove on one entity.
type Status int

const (
	Created Status = iota
	Removed
	Skipped
	Failed
)

func (s Status) String() string {
	switch s {
	case Created:
		return "created"
	case Removed:
		return "removed"
	case Skipped:
		return "skipped"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Action is the operation that produced a Result.
type Action int

const (
	Create Action = iota
	Remove
)

// Entity is a source file or package that can be created and removed.
type Entity interface {
	// Path returns the filesystem location of the entity.
	Path() string
	// Exists reports whether the entity is present on disk.
	Exists() bool
	// Create makes the entity, returning Skipped if it already exists.
	Create() (Status, error)
	// Remove deletes the entity, returning Skipped if it does not exist.
	Remove() (Status, error)
	// Describe returns a short human-readable label for reports.
	Describe() string
}

// Result records the outcome of one entity in a batch.
type Result struct {
	Entity Entity
	Action Action
	Status Status
	Err    error
}

// CreateAll creates each entity in order. Every entity is attempted
// regardless of earlier failures; outcomes are returned in input order.
func CreateAll[E Entity](entities []E) []Result {
	results := make([]Result, 0, len(entities))
	for _, e := range entities {
		status, err := e.Create()
		results = append(results, Result{Entity: e, Action: Create, Status: status, Err: err})
	}
	return results
}

// RemoveAll removes each entity in order, with the same per-entity
// independence as CreateAll.
func RemoveAll[E Entity](entities []E) []Result {
	results := make([]Result, 0, len(entities))
	for _, e := range entities {
		status, err := e.Remove()
		results = append(results, Result{Entity: e, Action: Remove, Status: status, Err: err})
	}
	return results
}

// AnyFailed reports whether any result carries an unexpected error.
func AnyFailed(results []Result) bool {
	for _, r := range results {
		if r.Status == Failed {
			return true
		}
	}
	return false
}
