package event

// EventSchemaVersion is the current version of the event schema
const EventSchemaVersion = "1.0"

// Log/error format strings
const (
	LogMsgHandlerErrorFormat = "%d handler error(s) for event %s: %v"
)
