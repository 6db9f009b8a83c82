package sqlerr

import "fmt"

// Code classifies a database error into a category the application can
// switch on without knowing SQLSTATE values.
type Code int

const (
	// Other covers every error the package does not classify.
	Other Code = iota
	UniqueViolation
	ForeignKeyViolation
	NotNullViolation
	CheckViolation
)

func (c Code) String() string {
	switch c {
	case UniqueViolation:
		return "unique_violation"
	case ForeignKeyViolation:
		return "foreign_key_violation"
	case NotNullViolation:
		return "not_null_violation"
	case CheckViolation:
		return "check_violation"
	default:
		return "other"
	}
}

// SQLSTATE values for the constraint violations we care about.
// See https://www.postgresql.org/docs/current/errcodes-appendix.html.
const (
	stateNotNullViolation    = "23502"
	stateForeignKeyViolation = "23503"
	stateUniqueViolation     = "23505"
	stateCheckViolation      = "23514"
)

// MapCode maps a raw SQLSTATE string to a Code.
func MapCode(sqlstate string) Code {
	switch sqlstate {
	case stateUniqueViolation:
		return UniqueViolation
	case stateForeignKeyViolation:
		return ForeignKeyViolation
	case stateNotNullViolation:
		return NotNullViolation
	case stateCheckViolation:
		return CheckViolation
	default:
		return Other
	}
}

// Severity mirrors the severity field reported by the Postgres server.
type Severity int

const (
	SeverityOther Severity = iota
	SeverityError
	SeverityFatal
	SeverityPanic
	SeverityWarning
)

// MapSeverity maps the server's severity string to a Severity.
func MapSeverity(severity string) Severity {
	switch severity {
	case "ERROR":
		return SeverityError
	case "FATAL":
		return SeverityFatal
	case "PANIC":
		return SeverityPanic
	case "WARNING":
		return SeverityWarning
	default:
		return SeverityOther
	}
}

// Error is a structured view over a Postgres server error. It keeps the
// schema metadata the driver reports so callers can build precise
// messages, and wraps the original driver error for errors.As chains.
type Error struct {
	Code           Code
	Severity       Severity
	DatabaseCode   string // original SQLSTATE
	Message        string
	SchemaName     string
	TableName      string
	ColumnName     string
	DataTypeName   string
	ConstraintName string

	driverErr error
}

func (e *Error) Error() string {
	return fmt.Sprintf("sqlstate %s: %s", e.DatabaseCode, e.Message)
}

// Unwrap exposes the underlying driver error.
func (e *Error) Unwrap() error {
	return e.driverErr
}
