// internal/domain/errors.go
package domain

import "fmt"

// ValidationError rejects an item before any persistence call is made.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Reason)
}

// ConflictError signals a duplicate record for (store, sku, week window).
type ConflictError struct {
	Store  string
	SKU    string
	Window WeekWindow
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("report for sku %s already exists for store %s in week %d/%d",
		e.SKU, e.Store, e.Window.WeekNumber, e.Window.Year)
}

// ConnectivityError covers transport failures and a backend schema that is not
// ready yet. The operation is safe to retry later; no cache was mutated.
type ConnectivityError struct {
	Op  string
	Err error
}

func (e *ConnectivityError) Error() string {
	return fmt.Sprintf("persistence unavailable during %s: %v", e.Op, e.Err)
}

func (e *ConnectivityError) Unwrap() error { return e.Err }

// NotFoundError signals a delete or update referencing a record that is no
// longer present.
type NotFoundError struct {
	ID int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("report item %d not found", e.ID)
}
