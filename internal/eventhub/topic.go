package eventhub

// Topic names an event and fixes its payload type.
type Topic[T any] struct {
	Name string
}

// NewTopic declares a typed event.
func NewTopic[T any](name string) Topic[T] {
	return Topic[T]{Name: name}
}

// Subscribe registers a typed listener for topic.
func Subscribe[T any](h *Hub, topic Topic[T], fn func(T)) *Subscription {
	return h.On(topic.Name, func(payload interface{}) {
		value, _ := payload.(T)
		fn(value)
	})
}

// Publish emits payload to every listener of topic.
func Publish[T any](h *Hub, topic Topic[T], payload T) {
	h.Emit(topic.Name, payload)
}
