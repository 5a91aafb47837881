package logger

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestRedaction(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	log := &Logger{SugaredLogger: zap.New(core).Sugar()}

	log.Info("sending briefing", "to_email", "dana@example.com", "SENDGRID_API_KEY", "SG.abc", "cards", 3)

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["to_email"] != redacted {
		t.Errorf("to_email = %v, want %s", fields["to_email"], redacted)
	}
	if fields["SENDGRID_API_KEY"] != redacted {
		t.Errorf("SENDGRID_API_KEY = %v, want %s", fields["SENDGRID_API_KEY"], redacted)
	}
	if fields["cards"] != int64(3) {
		t.Errorf("cards = %v (%T), want 3", fields["cards"], fields["cards"])
	}
}

func TestWithRedactsToo(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	log := (&Logger{SugaredLogger: zap.New(core).Sugar()}).With("password", "hunter2")

	log.Warn("archive unavailable")

	if got := logs.All()[0].ContextMap()["password"]; got != redacted {
		t.Fatalf("expected password redacted, got %v", got)
	}
}

func TestNew(t *testing.T) {
	for _, mode := range []string{"development", "production", ""} {
		log, err := New(mode)
		if err != nil {
			t.Fatalf("New(%q): %v", mode, err)
		}
		log.Debug("ok")
	}
	NewNop().Error("discarded", "k")
}
