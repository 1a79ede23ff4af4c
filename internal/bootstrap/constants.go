package bootstrap

// Log messages for application startup
const (
	LogMsgEventSystemInitialized     = "Event system initialized"
	LogMsgMetricsCollectorRegistered = "Metrics collector registered"
	LogMsgCatalogLoaded              = "Item catalog loaded"
)

// Error message prefixes for startup failures
const (
	ErrMsgFailedLoadCatalog = "failed to load item catalog"
)

// Log messages for shutdown
const (
	LogMsgShuttingDownServer   = "Shutting down server..."
	LogMsgServerStopped        = "Server stopped"
	LogMsgServerForcedShutdown = "Server forced to shutdown"
)
