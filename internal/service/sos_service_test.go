package service

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/google/uuid"

	"go-safecity-ws/internal/model"
	"go-safecity-ws/internal/repository"
	"go-safecity-ws/internal/ws"
)

func TestDistance(t *testing.T) {
	// One degree of latitude is roughly 111.2 km.
	if d := Distance(0, 0, 1, 0); math.Abs(d-111.2) > 0.5 {
		t.Errorf("Distance(0,0,1,0) = %f, want ~111.2", d)
	}

	// Delhi to Mumbai is roughly 1150 km.
	if d := Distance(28.6139, 77.2090, 19.0760, 72.8777); math.Abs(d-1150) > 20 {
		t.Errorf("Delhi-Mumbai distance = %f, want ~1150", d)
	}

	if d := Distance(12.9716, 77.5946, 12.9716, 77.5946); d != 0 {
		t.Errorf("distance to self = %f, want 0", d)
	}
}

func TestTriggerSOS(t *testing.T) {
	repo := newFakeSOSRepo()
	hub := &fakeBroadcaster{}
	officer := uuid.New()
	locations := &fakeLocationStore{
		positions: []repository.OfficerPosition{
			{OfficerID: officer, Latitude: 28.61, Longitude: 77.21, Distance: 1.2},
		},
	}

	svc := NewSOSService(repo, locations, hub)

	alert, err := svc.Trigger(context.Background(), uuid.New(), 28.6139, 77.2090, "Being followed")
	if err != nil {
		t.Fatalf("Trigger failed: %v", err)
	}
	if alert.Status != model.SOSActive {
		t.Errorf("Status = %q, want %q", alert.Status, model.SOSActive)
	}

	last, ok := hub.last()
	if !ok || last.Type != ws.TypeSOSAlert {
		t.Fatalf("broadcast = %+v, want SOS_ALERT", last)
	}
	payload, ok := last.Payload.(map[string]any)
	if !ok {
		t.Fatalf("payload type %T, want map", last.Payload)
	}
	nearby, ok := payload["nearbyOfficers"].([]repository.OfficerPosition)
	if !ok || len(nearby) != 1 || nearby[0].OfficerID != officer {
		t.Errorf("nearbyOfficers = %v, want one position for %s", payload["nearbyOfficers"], officer)
	}
}

func TestTriggerSOSRejectsBadCoordinates(t *testing.T) {
	svc := NewSOSService(newFakeSOSRepo(), &fakeLocationStore{}, &fakeBroadcaster{})

	cases := [][2]float64{{91, 0}, {-91, 0}, {0, 181}, {0, -181}}
	for _, c := range cases {
		if _, err := svc.Trigger(context.Background(), uuid.New(), c[0], c[1], ""); !errors.Is(err, ErrInvalidLatLng) {
			t.Errorf("Trigger(%v) err = %v, want ErrInvalidLatLng", c, err)
		}
	}
}

func TestRespondSOS(t *testing.T) {
	repo := newFakeSOSRepo()
	hub := &fakeBroadcaster{}
	svc := NewSOSService(repo, &fakeLocationStore{}, hub)

	alert, err := svc.Trigger(context.Background(), uuid.New(), 28.6, 77.2, "")
	if err != nil {
		t.Fatalf("Trigger failed: %v", err)
	}

	officer := uuid.New()
	responded, err := svc.Respond(alert.ID, officer)
	if err != nil {
		t.Fatalf("Respond failed: %v", err)
	}
	if responded.Status != model.SOSAcknowledged {
		t.Errorf("Status = %q, want %q", responded.Status, model.SOSAcknowledged)
	}
	if responded.RespondingOfficerID == nil || *responded.RespondingOfficerID != officer {
		t.Error("responding officer not recorded")
	}
	if responded.AcknowledgedAt == nil {
		t.Error("AcknowledgedAt not set")
	}

	// A second responder is too late.
	if _, err := svc.Respond(alert.ID, uuid.New()); !errors.Is(err, ErrSOSNotActive) {
		t.Errorf("second Respond err = %v, want ErrSOSNotActive", err)
	}
}

func TestResolveSOS(t *testing.T) {
	repo := newFakeSOSRepo()
	svc := NewSOSService(repo, &fakeLocationStore{}, &fakeBroadcaster{})

	alert, err := svc.Trigger(context.Background(), uuid.New(), 28.6, 77.2, "")
	if err != nil {
		t.Fatalf("Trigger failed: %v", err)
	}

	resolved, err := svc.Resolve(alert.ID)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if resolved.Status != model.SOSResolved {
		t.Errorf("Status = %q, want %q", resolved.Status, model.SOSResolved)
	}
	if resolved.ResolvedAt == nil {
		t.Error("ResolvedAt not set")
	}

	active, err := svc.GetActive()
	if err != nil {
		t.Fatalf("GetActive failed: %v", err)
	}
	if len(active) != 0 {
		t.Errorf("GetActive returned %d alerts after resolve, want 0", len(active))
	}
}

func TestRespondSOSNotFound(t *testing.T) {
	svc := NewSOSService(newFakeSOSRepo(), &fakeLocationStore{}, &fakeBroadcaster{})

	if _, err := svc.Respond(uuid.New(), uuid.New()); !errors.Is(err, ErrSOSNotFound) {
		t.Errorf("err = %v, want ErrSOSNotFound", err)
	}
}
