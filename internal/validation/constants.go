package validation

import "errors"

var (
	// ErrSchemaViolation is returned when a document does not match its schema
	ErrSchemaViolation = errors.New("schema validation failed")
	// ErrSchemaNotFound is returned when the schema file cannot be located
	ErrSchemaNotFound = errors.New("schema file not found")
)

const (
	ErrMsgReadDataFailed      = "failed to read data file"
	ErrMsgLoadSchemaFailed    = "failed to load schema"
	ErrMsgParseSchemaFailed   = "failed to parse schema"
	ErrMsgCompileSchemaFailed = "failed to compile schema"
	ErrMsgParseDataFailed     = "failed to parse JSON data"
)
