package core

import "fmt"

// ValidationError blocks an action because an identifying field is missing or
// malformed. Nothing is written when it is returned.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Reason)
}

// StorageWriteError reports a failed step of the save pipeline. Steps already
// committed before the failure stay committed; Step names the one that failed.
type StorageWriteError struct {
	Step string // "daily", "monthly" or "roster"
	Key  string
	Err  error
}

func (e *StorageWriteError) Error() string {
	return fmt.Sprintf("%s write failed for %q: %v", e.Step, e.Key, e.Err)
}

func (e *StorageWriteError) Unwrap() error {
	return e.Err
}
