package activity

import (
	"context"
	"testing"
)

type recordingHook struct {
	events []Event
}

func (h *recordingHook) Notify(_ context.Context, evt Event) error {
	h.events = append(h.events, evt)
	return nil
}

func TestEmitterDefaultsChannelAndEmits(t *testing.T) {
	hook := &recordingHook{}
	em := NewEmitter(Hooks{hook}, Config{Enabled: true})
	if !em.Enabled() {
		t.Fatalf("expected emitter enabled")
	}
	err := em.Emit(context.Background(), Event{
		Verb:       "upload",
		ObjectType: "dataset",
		ObjectID:   "id",
	})
	if err != nil {
		t.Fatalf("emit returned error: %v", err)
	}
	if len(hook.events) != 1 {
		t.Fatalf("expected event emitted, got %d", len(hook.events))
	}
	if hook.events[0].Channel != "dashboard" {
		t.Fatalf("expected default channel dashboard, got %q", hook.events[0].Channel)
	}
}

func TestEmitterDisabledWithoutHooks(t *testing.T) {
	em := NewEmitter(nil, Config{Enabled: true})
	if em.Enabled() {
		t.Fatalf("expected emitter disabled without hooks")
	}
	hook := &recordingHook{}
	em = NewEmitter(Hooks{hook}, Config{})
	if err := em.Emit(context.Background(), Event{Verb: "upload", ObjectType: "dataset"}); err != nil {
		t.Fatalf("emit returned error: %v", err)
	}
	if len(hook.events) != 0 {
		t.Fatalf("expected disabled emitter to drop events")
	}
}

func TestTelemetryAdapterRecords(t *testing.T) {
	hook := &recordingHook{}
	adapter := TelemetryAdapter{Emitter: NewEmitter(Hooks{hook}, Config{Enabled: true, Channel: "calcdash"})}
	adapter.Record(context.Background(), "dashboard.upload", map[string]any{"upload_id": "u1", "bytes": 42})
	adapter.Record(context.Background(), "calculator.calculate", map[string]any{"operation": "Add"})

	if len(hook.events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(hook.events))
	}
	first := hook.events[0]
	if first.ObjectType != "dashboard" || first.Verb != "upload" || first.ObjectID != "u1" {
		t.Fatalf("unexpected event %+v", first)
	}
	if first.Channel != "calcdash" {
		t.Fatalf("expected configured channel, got %q", first.Channel)
	}
	if hook.events[1].ObjectType != "calculator" || hook.events[1].Verb != "calculate" {
		t.Fatalf("unexpected event %+v", hook.events[1])
	}
}

func TestTelemetryAdapterWithoutEmitter(t *testing.T) {
	TelemetryAdapter{}.Record(context.Background(), "dashboard.render", nil)
}

func TestSplitEventName(t *testing.T) {
	cases := map[string][2]string{
		"dashboard.render": {"dashboard", "render"},
		"a.b.c":            {"a.b", "c"},
		"ping":             {"app", "ping"},
		"trailing.":        {"app", "trailing."},
	}
	for in, want := range cases {
		obj, verb := splitEventName(in)
		if obj != want[0] || verb != want[1] {
			t.Fatalf("splitEventName(%q) = %q, %q", in, obj, verb)
		}
	}
}
