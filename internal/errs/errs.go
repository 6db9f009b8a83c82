// Package errs defines the error types the API returns to clients.
//
// Every failure that reaches the HTTP boundary is expressed as an
// HTTPError so clients receive one consistent JSON shape: a stable
// machine code, a human message, the HTTP status, and optionally
// field-level validation errors or a follow-up action.
package errs
