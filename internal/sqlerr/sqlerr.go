// Package sqlerr classifies database driver errors.
//
// It parses SQLSTATE codes from the Postgres driver and converts them
// into the application's error taxonomy, e.g. a unique violation
// becomes a 409 Conflict and a missing row becomes a 404 Not Found.
package sqlerr
