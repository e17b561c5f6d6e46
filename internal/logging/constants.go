package logging

// Field names shared by every log line that mentions them.
const (
	FieldTransactionID = "transaction_id"
	FieldBudgetID      = "budget_id"
	FieldCategory      = "category"
	FieldMonth         = "month"
	FieldKey           = "key"
	FieldPreservedAs   = "preserved_as"
	FieldBackend       = "backend"
	FieldPath          = "path"
	FieldOperation     = "operation"
	FieldReason        = "reason"
	FieldCount         = "count"
	FieldFormat        = "format"
	FieldDelimiter     = "delimiter"
	FieldInputFile     = "input_file"
	FieldOutputFile    = "output_file"
)

// Level names recorded by MockLogger.
const (
	LevelDebug = "DEBUG"
	LevelInfo  = "INFO"
	LevelWarn  = "WARN"
	LevelError = "ERROR"
	LevelFatal = "FATAL"
)
