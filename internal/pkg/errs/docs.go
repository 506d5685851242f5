// Package errs defines the error vocabulary shared by the domain and
// application layers.
//
// Every error here comes in two halves: a sentinel (ErrValueIsRequired,
// ErrObjectNotFound, ...) for classification with errors.Is, and a struct
// type carrying the parameter name and an optional cause. The struct's
// Unwrap returns the sentinel, so callers match on the sentinel while log
// lines keep the detail.
//
// HTTP and job-runner code rely on these sentinels to decide whether a
// failure is a client mistake (reject, do not retry) or transient.
package errs
