package log

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldError      = "error"
	FieldOperation  = "operation"
	FieldGroupID    = "group_id"
	FieldUserID     = "user_id"
	FieldCommand    = "command"
	FieldCategory   = "category"
	FieldAmount     = "amount"
	FieldBalance    = "balance"
	FieldRangeKey   = "range_key"
	FieldSheet      = "sheet"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentHTTP    = "http"
	ComponentBot     = "bot"
	ComponentLedger  = "ledger"
	ComponentSheets  = "sheets"
	ComponentAMQP    = "amqp"
	ComponentWorker  = "worker"
	ComponentArchive = "archive"
	ComponentBackend = "backend"
)
