package logging

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldTaskID is the standardized structured logging key for import task identifiers.
	FieldTaskID = "task_id"
	// FieldDictionaryID is the standardized structured logging key for dictionary identifiers.
	FieldDictionaryID = "dictionary_id"
	// FieldWordID is the standardized structured logging key for word identifiers.
	FieldWordID = "word_id"
	// FieldCorrelationID is the standardized structured logging key for request correlation identifiers.
	FieldCorrelationID = "correlation_id"
)
