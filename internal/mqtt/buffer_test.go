package mqtt

import "testing"

func TestOutboxEmptyDrain(t *testing.T) {
	o := newOutbox(10)
	msgs, dropped := o.drain()
	if msgs != nil {
		t.Errorf("expected nil from empty drain, got %d items", len(msgs))
	}
	if dropped != 0 {
		t.Errorf("expected 0 dropped, got %d", dropped)
	}
}

func TestOutboxEnqueueAndDrain(t *testing.T) {
	o := newOutbox(10)
	for i := 0; i < 5; i++ {
		o.enqueue(outboundMsg{topic: "t", payload: []byte{byte(i)}})
	}

	msgs, dropped := o.drain()
	if len(msgs) != 5 {
		t.Fatalf("expected 5 items, got %d", len(msgs))
	}
	if dropped != 0 {
		t.Errorf("expected 0 dropped, got %d", dropped)
	}
	for i := range msgs {
		if msgs[i].payload[0] != byte(i) {
			t.Errorf("item %d: expected payload %d, got %d", i, i, msgs[i].payload[0])
		}
	}

	if again, _ := o.drain(); again != nil {
		t.Errorf("expected nil from second drain, got %d items", len(again))
	}
}

func TestOutboxOverflowKeepsNewest(t *testing.T) {
	o := newOutbox(5)

	// Enqueue 8 items (0..7); the oldest 3 are overwritten.
	for i := 0; i < 8; i++ {
		o.enqueue(outboundMsg{topic: "t", payload: []byte{byte(i)}})
	}

	msgs, dropped := o.drain()
	if len(msgs) != 5 {
		t.Fatalf("expected 5 items, got %d", len(msgs))
	}
	if dropped != 3 {
		t.Errorf("expected 3 dropped, got %d", dropped)
	}
	for i := range msgs {
		want := byte(i + 3)
		if msgs[i].payload[0] != want {
			t.Errorf("item %d: expected payload %d, got %d", i, want, msgs[i].payload[0])
		}
	}
}

func TestOutboxMultipleCycles(t *testing.T) {
	o := newOutbox(5)

	for i := 0; i < 3; i++ {
		o.enqueue(outboundMsg{topic: "t", payload: []byte{byte(i)}})
	}
	if msgs, _ := o.drain(); len(msgs) != 3 {
		t.Fatalf("cycle 1: expected 3 items, got %d", len(msgs))
	}

	for i := 10; i < 14; i++ {
		o.enqueue(outboundMsg{topic: "t", payload: []byte{byte(i)}})
	}
	msgs, _ := o.drain()
	if len(msgs) != 4 {
		t.Fatalf("cycle 2: expected 4 items, got %d", len(msgs))
	}
	for i, msg := range msgs {
		if msg.payload[0] != byte(10+i) {
			t.Errorf("cycle 2 item %d: expected %d, got %d", i, 10+i, msg.payload[0])
		}
	}
}

func TestOutboxLen(t *testing.T) {
	o := newOutbox(10)
	if o.len() != 0 {
		t.Errorf("expected len 0, got %d", o.len())
	}
	o.enqueue(outboundMsg{topic: "t"})
	o.enqueue(outboundMsg{topic: "t"})
	if o.len() != 2 {
		t.Errorf("expected len 2, got %d", o.len())
	}
	o.drain()
	if o.len() != 0 {
		t.Errorf("expected len 0 after drain, got %d", o.len())
	}
}

func TestOutboxPreservesFields(t *testing.T) {
	o := newOutbox(10)
	o.enqueue(outboundMsg{
		topic:    "waste/test",
		payload:  []byte(`{"test":true}`),
		qos:      1,
		retained: true,
	})

	msgs, _ := o.drain()
	if len(msgs) != 1 {
		t.Fatalf("expected 1 item, got %d", len(msgs))
	}
	got := msgs[0]
	if got.topic != "waste/test" {
		t.Errorf("topic: got %s", got.topic)
	}
	if string(got.payload) != `{"test":true}` {
		t.Errorf("payload: got %s", got.payload)
	}
	if got.qos != 1 {
		t.Errorf("qos: got %d, want 1", got.qos)
	}
	if !got.retained {
		t.Error("retained: got false, want true")
	}
}
