package activity

import (
	"context"
	"fmt"
	"strings"
)

// TelemetryAdapter turns dashboard and command telemetry into activity
// events. Event names are "<object>.<verb>", e.g. "dashboard.upload".
type TelemetryAdapter struct {
	Emitter *Emitter
	// OnError receives hook failures. Telemetry never fails the caller.
	OnError func(error)
}

// Record emits the event. The object id comes from payload["upload_id"].
func (a TelemetryAdapter) Record(ctx context.Context, event string, payload map[string]any) {
	if !a.Emitter.Enabled() {
		return
	}
	objectType, verb := splitEventName(event)
	evt := Event{
		Verb:       verb,
		ObjectType: objectType,
		Metadata:   payload,
	}
	if id, ok := payload["upload_id"]; ok {
		evt.ObjectID = fmt.Sprint(id)
	}
	if err := a.Emitter.Emit(ctx, evt); err != nil && a.OnError != nil {
		a.OnError(err)
	}
}

func splitEventName(event string) (string, string) {
	event = strings.TrimSpace(event)
	idx := strings.LastIndex(event, ".")
	if idx <= 0 || idx == len(event)-1 {
		return "app", event
	}
	return event[:idx], event[idx+1:]
}
