package databus

import "testing"

// TestEventOrder is Testable Property 9 / scenario E6: a single writer's
// messages are observed by a reader in enqueue order.
func TestEventOrder(t *testing.T) {
	bus := New[int]("test")
	writer := bus.GetWriter()
	reader := bus.GetReader()

	for i := 1; i <= 100; i++ {
		if err := writer.Write(i); err != nil {
			t.Fatalf("Write(%d): %v", i, err)
		}
	}
	if err := bus.Update(); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, err := reader.GetMessages()
	if err != nil {
		t.Fatalf("GetMessages: %v", err)
	}
	if len(got) != 100 {
		t.Fatalf("GetMessages returned %d messages, want 100", len(got))
	}
	for i, v := range got {
		if v != i+1 {
			t.Fatalf("GetMessages[%d] = %d, want %d", i, v, i+1)
		}
	}
}

func TestIndependentReaders(t *testing.T) {
	bus := New[string]("test")
	readerA := bus.GetReader()
	writer := bus.GetWriter()
	writer.Write("first")
	bus.Update()
	readerB := bus.GetReader()
	writer.Write("second")
	bus.Update()

	a, _ := readerA.GetMessages()
	b, _ := readerB.GetMessages()

	if len(a) != 2 || a[0] != "first" || a[1] != "second" {
		t.Fatalf("readerA got %v, want [first second]", a)
	}
	if len(b) != 1 || b[0] != "second" {
		t.Fatalf("readerB got %v, want [second] (registered after the first write)", b)
	}
}

// TestWriteFailsAfterAllReadersDisconnect exercises spec §4.6's
// writer-disconnect failure mode: Write succeeds while no reader has ever
// registered, and again while at least one reader remains, but fails once
// every registered reader has closed.
func TestWriteFailsAfterAllReadersDisconnect(t *testing.T) {
	bus := New[int]("test")
	writer := bus.GetWriter()

	if err := writer.Write(1); err != nil {
		t.Fatalf("Write before any reader registered: %v", err)
	}

	readerA := bus.GetReader()
	readerB := bus.GetReader()
	if err := writer.Write(2); err != nil {
		t.Fatalf("Write with readers present: %v", err)
	}

	readerA.Close()
	if err := writer.Write(3); err != nil {
		t.Fatalf("Write with one of two readers still present: %v", err)
	}

	readerB.Close()
	if err := writer.Write(4); err == nil {
		t.Fatal("Write after every reader disconnected: got nil error, want writer-disconnect error")
	}
}

func TestGetMessagesEmptyIsNotError(t *testing.T) {
	bus := New[int]("test")
	reader := bus.GetReader()
	got, err := reader.GetMessages()
	if err != nil {
		t.Fatalf("GetMessages: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("GetMessages = %v, want empty", got)
	}
}
