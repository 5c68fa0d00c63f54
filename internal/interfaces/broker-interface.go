package interfaces

// ConsumerHandler processes one event keyed by its topic key. The key routes
// the payload to the right handler (user.invited, user.registered, ...).
type ConsumerHandler interface {
	HandleMessage(key, value []byte) error
}

// ProducerHandler publishes one event. Implementations must tolerate a
// broker that is down; publishing is best-effort and never fails a request.
type ProducerHandler interface {
	PublishMessage(key, value []byte) error
}
