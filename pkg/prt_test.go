package pkg

import (
	"bytes"
	"strings"
	"testing"
)

func TestPrint(t *testing.T) {
	var buf bytes.Buffer
	if err := Print(&buf, map[string]int{"char_count": 5}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := buf.String(); got != "{\n  \"char_count\": 5\n}\n" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestPrint_Unmarshalable(t *testing.T) {
	var buf bytes.Buffer
	err := Print(&buf, map[string]any{"ch": make(chan int)})
	if err == nil || !strings.Contains(err.Error(), "marshal json") {
		t.Fatalf("expected marshal error, got %v", err)
	}
	if buf.Len() != 0 {
		t.Fatal("nothing should be written on error")
	}
}
