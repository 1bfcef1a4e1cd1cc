package validation

import "errors"

// schemaURLPrefix gives bundled schemas a stable absolute id for the compiler
const schemaURLPrefix = "mem:///schemas/"

// Error messages
const (
	ErrMsgReadDataFile    = "failed to read data file"
	ErrMsgLoadSchema      = "failed to load schema"
	ErrMsgParseData       = "failed to parse JSON data"
	ErrMsgSchemaViolation = "schema validation failed"
)

// ErrSchemaViolation wraps every document that parsed but did not match its schema
var ErrSchemaViolation = errors.New(ErrMsgSchemaViolation)
