package outbox

// Event is the domain event envelope written to the outbox table. The Kafka
// topic equals EventType, one event type per topic.
type Event struct {
	AggregateType string
	AggregateID   string
	EventType     string
	Payload       []byte
}

// Event types emitted by the scheduling engine. The notification system
// consumes these; this service never sends messages itself.
const (
	EventAppointmentReserved  = "scheduling.appointment.reserved.v1"
	EventAppointmentRequested = "scheduling.appointment.requested.v1"
	EventAppointmentConfirmed = "scheduling.appointment.confirmed.v1"
	EventAppointmentCancelled = "scheduling.appointment.cancelled.v1"
	EventAppointmentCompleted = "scheduling.appointment.completed.v1"
	EventAppointmentNoShow    = "scheduling.appointment.no_show.v1"
	EventDepositRefunded      = "scheduling.deposit.refunded.v1"
	EventDepositForfeited     = "scheduling.deposit.forfeited.v1"
)
