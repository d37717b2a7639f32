// Package redact scrubs sensitive fragments from strings before they are
// logged. Error chains in this service can carry database connection URLs,
// bearer tokens, and raw SQL; none of those belong in log output.
package redact

import "regexp"

var (
	// Database connection strings with embedded credentials.
	dbConnRegex = regexp.MustCompile(`(?i)(postgres(?:ql)?|mysql)://[^@\s]+@`)

	// Three-part base64url JWT tokens.
	jwtTokenRegex = regexp.MustCompile(`eyJ[a-zA-Z0-9_-]+\.eyJ[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]+`)

	// Secrets assigned inline (key=..., secret: ..., token '...').
	secretRegex = regexp.MustCompile(`(?i)(secret|token|password|key)(['"\s:=]+)[A-Za-z0-9_\-.~+/]{8,}`)

	// SQL statement fragments surfaced by driver errors.
	sqlRegex = regexp.MustCompile(`(?i)(SELECT|INSERT|UPDATE|DELETE|TRUNCATE)[\s\w,*()="']+(?:FROM|INTO|SET|TABLE)[\s\w,*()="']*`)
)

// String returns s with sensitive fragments replaced by placeholders.
func String(s string) string {
	s = dbConnRegex.ReplaceAllString(s, "[REDACTED_CREDENTIAL]@")
	s = jwtTokenRegex.ReplaceAllString(s, "[REDACTED_JWT]")
	s = secretRegex.ReplaceAllString(s, "$1$2[REDACTED]")
	s = sqlRegex.ReplaceAllString(s, "[REDACTED_SQL]")
	return s
}

// Error returns the redacted message of err, or "" for a nil error.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
