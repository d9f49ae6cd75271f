package audit

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestLoggerWritesOneJSONLinePerEvent(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf)

	logger.Log(Event{
		Timestamp: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Adapter:   "vpc",
		Tool:      "create_vpc",
		Outcome:   "error",
		Kind:      "Conflict",
		Error:     "vpc has dependencies",
	})
	logger.Log(Event{Adapter: "vpc", Tool: "list_vpcs", Outcome: "ok"})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	var first Event
	if err := json.Unmarshal([]byte(lines[0]), &first); err != nil {
		t.Fatalf("decode first line: %v", err)
	}
	if first.Tool != "create_vpc" || first.Kind != "Conflict" {
		t.Fatalf("unexpected event %+v", first)
	}
	if strings.Contains(lines[1], "kind") {
		t.Fatalf("ok event must omit empty fields, got %q", lines[1])
	}
}

func TestLoggerNilWriterDiscards(t *testing.T) {
	logger := NewLogger(nil)
	logger.Log(Event{Tool: "list_vpcs", Outcome: "ok"})
}
