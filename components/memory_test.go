package components

import (
	"testing"

	"github.com/voyagekit/cruisedesk/schema"
)

func TestMemoryOverflow(t *testing.T) {
	mem := NewMemory(3)
	mem.NewTurn()
	for _, txt := range []string{"one", "two", "three", "four"} {
		mem.NewMessage(UserRole, schema.String(txt))
	}
	if got := mem.MessageCount(); got != 3 {
		t.Fatalf("expected 3 messages after overflow, got %d", got)
	}
	history := mem.History()
	if got := schema.Stringify(history[0].Content()); got != "two" {
		t.Errorf("expected oldest message to be dropped, head is %q", got)
	}
}

func TestMemoryDeleteTurn(t *testing.T) {
	mem := NewMemory(0)
	mem.NewTurn()
	first := mem.TurnID()
	mem.NewMessage(UserRole, schema.String("hello"))
	mem.NewTurn()
	mem.NewMessage(UserRole, schema.String("world"))
	if err := mem.DeleteTurn(first); err != nil {
		t.Fatal(err)
	}
	if got := mem.MessageCount(); got != 1 {
		t.Fatalf("expected 1 message, got %d", got)
	}
	if err := mem.DeleteTurn("missing"); err == nil {
		t.Error("expected error deleting unknown turn")
	}
}

func TestMemoryCopyAndReset(t *testing.T) {
	mem := NewMemory(5)
	mem.NewTurn()
	mem.NewMessage(AssistantRole, schema.String("hi"))
	clone := NewMemory(0)
	clone.Copy(mem)
	if clone.MessageCount() != 1 || clone.TurnID() != mem.TurnID() {
		t.Fatal("copy should carry history and turn id")
	}
	mem.Reset()
	if mem.MessageCount() != 0 {
		t.Fatal("reset should clear history")
	}
}
