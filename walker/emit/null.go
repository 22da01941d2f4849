package emit

// NullEmitter implements Emitter by discarding every event. It is the
// default sink a ModelWalker uses when no emitter is configured.
type NullEmitter struct{}

// NewNullEmitter returns an Emitter that discards all events.
func NewNullEmitter() *NullEmitter { return &NullEmitter{} }

// Emit discards event.
func (n *NullEmitter) Emit(event Event) {}
