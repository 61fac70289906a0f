package authz

import (
	"testing"
	"time"
)

func TestSeverityFor(t *testing.T) {
	tests := []struct {
		eventType EventType
		action    Action
		want      Severity
	}{
		{EventRouteAccess, ActionView, SeverityLow},
		{EventRouteAccess, ActionDelete, SeverityLow},
		{EventAPIAccess, ActionView, SeverityMedium},
		{EventAPIAccess, ActionCreate, SeverityHigh},
		{EventAPIAccess, ActionEdit, SeverityHigh},
		{EventAPIAccess, ActionDelete, SeverityHigh},
	}
	for _, tt := range tests {
		if got := SeverityFor(tt.eventType, tt.action); got != tt.want {
			t.Errorf("SeverityFor(%s, %s) = %s, want %s", tt.eventType, tt.action, got, tt.want)
		}
	}
}

func TestNewEvent(t *testing.T) {
	actor := &Actor{RoleID: RoleDriver, SubjectID: 10, VehicleID: 42}
	before := time.Now().UTC()
	ev := NewEvent(EventAPIAccess, actor, ActionEdit, ResourceShipments, "blocked at gateway")

	if ev.ID == "" {
		t.Error("event should carry a generated id")
	}
	if ev.Role != RoleDriver || ev.SubjectID != 10 {
		t.Errorf("event actor fields = (%s, %d)", ev.Role, ev.SubjectID)
	}
	if ev.Severity != SeverityHigh {
		t.Errorf("severity = %s, want HIGH for a write API denial", ev.Severity)
	}
	if ev.CreatedAt.Before(before) {
		t.Error("event timestamp should not predate creation")
	}

	anon := NewEvent(EventRouteAccess, nil, ActionView, ResourceOrders, "")
	if anon.Role != "" || anon.SubjectID != 0 {
		t.Errorf("nil actor should leave actor fields zero, got (%s, %d)", anon.Role, anon.SubjectID)
	}
	if anon.Severity != SeverityLow {
		t.Errorf("route denial severity = %s, want LOW", anon.Severity)
	}
}

func TestLogSinkNilLogger(t *testing.T) {
	// A sink without a logger must stay a no-op, not panic: audit is
	// fire-and-forget and can never fail a decision.
	sink := NewLogSink(nil)
	sink.Record(NewEvent(EventRouteAccess, nil, ActionView, ResourceOrders, ""))
}
