package mqtt

// outboundMsg stores a serialized MQTT message for replay after reconnection.
type outboundMsg struct {
	topic    string
	payload  []byte
	qos      byte
	retained bool
}

// outbox is a fixed-capacity FIFO holding messages while the broker is
// unreachable. When full, the oldest message is overwritten.
// Not safe for concurrent use — caller must synchronize.
type outbox struct {
	items   []outboundMsg
	next    int // next write position
	size    int
	dropped int // messages overwritten since the last drain
}

func newOutbox(capacity int) *outbox {
	return &outbox{items: make([]outboundMsg, capacity)}
}

func (o *outbox) enqueue(msg outboundMsg) {
	if o.size == len(o.items) {
		// next points at the oldest entry; overwrite it.
		o.dropped++
		o.items[o.next] = msg
		o.next = (o.next + 1) % len(o.items)
		return
	}
	o.items[o.next] = msg
	o.next = (o.next + 1) % len(o.items)
	o.size++
}

// drain returns the buffered messages oldest-first and the number dropped
// to overflow, resetting the buffer.
func (o *outbox) drain() ([]outboundMsg, int) {
	dropped := o.dropped
	if o.size == 0 {
		o.dropped = 0
		return nil, dropped
	}

	out := make([]outboundMsg, o.size)
	oldest := (o.next - o.size + len(o.items)) % len(o.items)
	for i := range out {
		out[i] = o.items[(oldest+i)%len(o.items)]
	}

	o.next = 0
	o.size = 0
	o.dropped = 0
	return out, dropped
}

func (o *outbox) len() int {
	return o.size
}
