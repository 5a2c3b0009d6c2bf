package mqtt

import "testing"

func TestRingBufferEmpty(t *testing.T) {
	rb := newRingBuffer(10)
	got := rb.drainAll()
	if got != nil {
		t.Errorf("expected nil from empty buffer, got %v", got)
	}
	if rb.len() != 0 {
		t.Errorf("expected len 0, got %d", rb.len())
	}
}

func TestRingBufferPushDrain(t *testing.T) {
	rb := newRingBuffer(10)

	rb.push(bufferedMsg{topic: "a", payload: []byte("1")})
	rb.push(bufferedMsg{topic: "b", payload: []byte("2")})
	rb.push(bufferedMsg{topic: "c", payload: []byte("3")})

	got := rb.drainAll()
	if len(got) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(got))
	}
	for i, want := range []string{"a", "b", "c"} {
		if got[i].topic != want {
			t.Errorf("message %d: expected topic %q, got %q", i, want, got[i].topic)
		}
	}

	// Drain again: buffer is empty.
	if got2 := rb.drainAll(); got2 != nil {
		t.Errorf("expected nil after drain, got %v", got2)
	}
}

func TestRingBufferOverflowDropsOldest(t *testing.T) {
	rb := newRingBuffer(3)

	rb.push(bufferedMsg{topic: "a"})
	rb.push(bufferedMsg{topic: "b"})
	rb.push(bufferedMsg{topic: "c"})
	rb.push(bufferedMsg{topic: "d"}) // drops "a"
	rb.push(bufferedMsg{topic: "e"}) // drops "b"

	got := rb.drainAll()
	if len(got) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(got))
	}
	for i, want := range []string{"c", "d", "e"} {
		if got[i].topic != want {
			t.Errorf("message %d: expected topic %q, got %q", i, want, got[i].topic)
		}
	}
}

func TestRingBufferReusableAfterOverflow(t *testing.T) {
	rb := newRingBuffer(2)

	rb.push(bufferedMsg{topic: "a"})
	rb.push(bufferedMsg{topic: "b"})
	rb.push(bufferedMsg{topic: "c"})
	rb.drainAll()

	rb.push(bufferedMsg{topic: "d"})
	got := rb.drainAll()
	if len(got) != 1 || got[0].topic != "d" {
		t.Errorf("expected [d] after reuse, got %v", got)
	}
	if rb.overflow {
		t.Error("overflow flag should reset on drain")
	}
}

func TestRingBufferPreservesFields(t *testing.T) {
	rb := newRingBuffer(10)

	rb.push(bufferedMsg{topic: "t", payload: []byte("p"), qos: 1, retained: true})

	got := rb.drainAll()
	if len(got) != 1 {
		t.Fatalf("expected 1 message, got %d", len(got))
	}
	m := got[0]
	if m.topic != "t" || string(m.payload) != "p" || m.qos != 1 || !m.retained {
		t.Errorf("fields not preserved: %+v", m)
	}
}
