// Package errs defines the HTTP-aware error types returned by services
// and rendered by the global error handler.
package errs
