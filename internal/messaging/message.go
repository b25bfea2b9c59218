package messaging

// EmailType tags what kind of notification a queued message carries.
type EmailType string

const (
	EmailVerification EmailType = "VERIFICATION"
	EmailBatch        EmailType = "BATCH_NOTIFICATION"
)

// EmailMessage is the JSON payload carried on the RabbitMQ queue.
// RetryCount travels with the payload so the redelivery ceiling check is a
// function of the message's own history, never of shared state; it starts at
// 0 and is only ever incremented by the consumer.
type EmailMessage struct {
	To         string    `json:"to"`
	Subject    string    `json:"subject"`
	Body       string    `json:"body"`
	Type       EmailType `json:"type"`
	RetryCount int       `json:"retry_count"`
}
