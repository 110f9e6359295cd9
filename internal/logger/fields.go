package logger

// Fields is an alias for map[string]interface{} for convenience.
type Fields map[string]interface{}

// Tracing fields, propagated through the call chain via context.
const (
	// FieldRequestID is the HTTP request ID (UUID)
	FieldRequestID = "request_id"

	// FieldUploadID is the bulk upload ID
	FieldUploadID = "upload_id"

	// FieldTenantID is the company the request acts for
	FieldTenantID = "tenant_id"

	// FieldEntityKind is the upload kind (car, customer)
	FieldEntityKind = "entity_kind"

	// FieldComponent is the component/module name
	FieldComponent = "component"

	// FieldStage is the pipeline stage
	FieldStage = "stage"
)

// Metric fields, attached per log line for aggregation.
const (
	// FieldDurationMs is the execution duration in milliseconds
	FieldDurationMs = "duration_ms"

	// FieldCount is a generic count field
	FieldCount = "count"

	// FieldRows is the number of data rows in an upload
	FieldRows = "rows"

	// FieldBatches is the number of committed batches
	FieldBatches = "batches"

	// FieldSize is the data size in bytes
	FieldSize = "size"

	// FieldStatus is the operation status
	FieldStatus = "status"
)
