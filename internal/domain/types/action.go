package types

const (
	ActionRabbitMQConnected       = "rabbitmq_connected"
	ActionRabbitConnectionClosed  = "rabbitmq_connection_closed"
	ActionRabbitConnectionClosing = "rabbitmq_connection_closing"
	ActionRabbitReconnected       = "rabbitmq_reconnection_success"

	ActionSheetsCallFailed      = "sheets_call_failed"
	ActionExternalServiceFailed = "external_service_failed"
	ActionSessionSweep          = "session_sweep"
)
