package mqtt

import (
	"fmt"
	"log"
	"sync"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/sweeney/bin-monitor/internal/logic"
)

const publishTimeout = 5 * time.Second

// bufferCapacity bounds how many events are held while the broker is
// unreachable. At the default 10 s loop interval this covers several
// minutes of outage.
const bufferCapacity = 64

// RealPublisher publishes to an actual MQTT broker. While the broker is
// unreachable, messages are held in a fixed-capacity buffer and replayed on
// reconnect; the connection itself retries in the background.
type RealPublisher struct {
	client   paho.Client
	location string

	mu  sync.Mutex
	buf *outbox
}

// NewRealPublisher creates a publisher for the given broker. The initial
// connection is attempted in the background so a down broker never blocks
// monitor startup.
func NewRealPublisher(broker, location string) *RealPublisher {
	p := &RealPublisher{
		location: location,
		buf:      newOutbox(bufferCapacity),
	}

	opts := paho.NewClientOptions().
		AddBroker(broker).
		SetClientID("bin-monitor").
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5 * time.Second).
		SetOnConnectHandler(func(paho.Client) {
			log.Printf("mqtt: connected to %s", broker)
			p.replay()
		})

	p.client = paho.NewClient(opts)
	p.client.Connect()
	return p
}

// Publish sends a fill-state event at QoS 0.
func (p *RealPublisher) Publish(event logic.Event) error {
	payload, err := FormatPayload(event, p.location)
	if err != nil {
		return fmt.Errorf("format payload: %w", err)
	}
	return p.publish(outboundMsg{topic: Topic, payload: payload, qos: 0})
}

// PublishSystem sends a system lifecycle event at QoS 1.
func (p *RealPublisher) PublishSystem(event SystemEvent) error {
	payload, err := FormatSystemPayload(event)
	if err != nil {
		return fmt.Errorf("format system payload: %w", err)
	}
	return p.publish(outboundMsg{topic: TopicSystem, payload: payload, qos: 1, retained: event.Retained})
}

// publish delivers the message now if connected, otherwise buffers it for
// replay. Both paths report the delivery outcome to the caller.
func (p *RealPublisher) publish(msg outboundMsg) error {
	if !p.client.IsConnected() {
		p.bufferMsg(msg)
		return fmt.Errorf("broker not connected; message buffered")
	}

	token := p.client.Publish(msg.topic, msg.qos, msg.retained, msg.payload)
	if !token.WaitTimeout(publishTimeout) {
		p.bufferMsg(msg)
		return fmt.Errorf("publish timeout; message buffered")
	}
	if err := token.Error(); err != nil {
		p.bufferMsg(msg)
		return fmt.Errorf("publish: %w", err)
	}
	return nil
}

func (p *RealPublisher) bufferMsg(msg outboundMsg) {
	p.mu.Lock()
	p.buf.enqueue(msg)
	n := p.buf.len()
	p.mu.Unlock()
	log.Printf("mqtt: buffered message for %s (%d pending)", msg.topic, n)
}

// replay flushes buffered messages after a reconnect. Runs on the paho
// connection goroutine.
func (p *RealPublisher) replay() {
	p.mu.Lock()
	msgs, dropped := p.buf.drain()
	p.mu.Unlock()

	if dropped > 0 {
		log.Printf("mqtt: %d buffered messages dropped to overflow", dropped)
	}
	for i, msg := range msgs {
		token := p.client.Publish(msg.topic, msg.qos, msg.retained, msg.payload)
		if !token.WaitTimeout(publishTimeout) || token.Error() != nil {
			// Connection went away again; keep the rest for next time.
			p.mu.Lock()
			for _, rest := range msgs[i:] {
				p.buf.enqueue(rest)
			}
			p.mu.Unlock()
			log.Printf("mqtt: replay interrupted, %d messages re-buffered", len(msgs)-i)
			return
		}
	}
	if len(msgs) > 0 {
		log.Printf("mqtt: replayed %d buffered messages", len(msgs))
	}
}

// IsConnected reports the broker connection state.
func (p *RealPublisher) IsConnected() bool {
	return p.client.IsConnected()
}

// Close disconnects from the broker.
func (p *RealPublisher) Close() error {
	p.client.Disconnect(1000) // milliseconds to flush
	return nil
}
