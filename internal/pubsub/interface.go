package pubsub

// PubSubClient publishes domain events onto the message bus. Consumers are
// external services; this side only ever produces.
type PubSubClient interface {
	SendMessage(topic EventType, data any) error
}
