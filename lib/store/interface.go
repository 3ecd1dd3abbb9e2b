package store

import (
	"errors"
	"fmt"
	"io"
	"iter"

	"github.com/ValentinKolb/hmap/lib/db"
)

// --------------------------------------------------------------------------
// Interface Definition
// --------------------------------------------------------------------------

// DBFactory is a function type that creates a new table used by the store.
// This is used to abstract the creation of the table from the store implementation.
type DBFactory func() (db.HashTable, error)

// IStore is the interface the command layer uses to talk to a hash table.
// Every operation returns a *Error (nil on success) so that callers can map
// outcomes to a return code instead of inspecting table specific results.
type IStore interface {
	// Create inserts a key–value pair. If the key already exists its value is kept
	// and the existing entry is returned. This is not an error.
	Create(key, value string) (entry db.Entry, err error)
	// Read returns the entry for a key or an error with code RetCNotFound.
	Read(key string) (entry db.Entry, err error)
	// Update changes the value of an existing key. A missing key yields RetCNotFound
	// and is not created.
	Update(key, value string) (entry db.Entry, err error)
	// Delete removes a key. Deleting a missing key succeeds (best effort).
	Delete(key string) (err error)
	// List returns a lazy sequence over all entries in bucket order.
	List() (entries iter.Seq[db.Entry], err error)
	// GetDBInfo returns metadata about the table underlying the store.
	GetDBInfo() (info db.DatabaseInfo, err error)
	// WriteMetrics writes the operation counters of the store in Prometheus text format.
	WriteMetrics(w io.Writer) (err error)
	// Close destroys the underlying table.
	Close() (err error)
}

// --------------------------------------------------------------------------
// Custom Error Type
// --------------------------------------------------------------------------

// Error is a custom error type that wraps a return code (of type RetCode)
// and an error message.
type Error struct {
	Code RetCode // The return code
	Msg  string  // The error message.
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("StoreError (code %s): %s", e.Code, e.Msg)
}

// NewError creates a new store error with the given code and message.
func NewError(code RetCode, msg string) *Error {
	return &Error{
		Code: code,
		Msg:  msg,
	}
}

// CodeOf returns the return code carried by err.
// nil maps to RetCSuccess, errors that are not a *Error map to RetCInternalError.
func CodeOf(err error) RetCode {
	if err == nil {
		return RetCSuccess
	}

	var storeErr *Error
	if errors.As(err, &storeErr) {
		return storeErr.Code
	}
	return RetCInternalError
}

// --------------------------------------------------------------------------
// Return Codes
// --------------------------------------------------------------------------

type RetCode uint64

const (
	RetCSuccess              RetCode = iota // 0: Command executed successfully.
	RetCInternalError                       // 1: Command failed due to an internal error.
	RetCUnsupportedOperation                // 2: Operation is not supported by underlying table.
	RetCInvalidOperation                    // 3: Invalid operation (e.g. empty key).
	RetCNotFound                            // 4: The key does not exist.
)

func (c RetCode) String() string {
	switch c {
	case RetCSuccess:
		return "Success"
	case RetCInternalError:
		return "InternalError"
	case RetCUnsupportedOperation:
		return "UnsupportedOperation"
	case RetCInvalidOperation:
		return "InvalidOperation"
	case RetCNotFound:
		return "NotFound"
	default:
		return "Unknown"
	}
}
