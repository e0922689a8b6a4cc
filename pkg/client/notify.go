package client

import (
	"encoding/json"

	"go-safecity-ws/internal/ws"
)

// CueFor maps a message type to its sound cue. Map-only updates
// (incident pins, officer positions) are silent.
func CueFor(t ws.MessageType) (Cue, bool) {
	switch t {
	case ws.TypeSOSAlert, ws.TypeEmergency:
		return CueEmergency, true
	case ws.TypeIncidentReport, ws.TypeCaseUpdate, ws.TypeAlertStatusUpdate, ws.TypeNearbyIncident:
		return CueNotification, true
	}
	return "", false
}

// Toast is one user-facing notification.
type Toast struct {
	Type  ws.MessageType
	Title string
	Body  string
	Cue   Cue
}

// Bridge turns realtime frames into user notifications: a sound cue plus
// a toast callback. Frames with no cue pass through silently.
type Bridge struct {
	Sounds  *SoundManager
	OnToast func(Toast)
}

func NewBridge(sounds *SoundManager, onToast func(Toast)) *Bridge {
	return &Bridge{Sounds: sounds, OnToast: onToast}
}

// Attach subscribes the bridge to every message type that produces a
// notification.
func (b *Bridge) Attach(rt *Realtime) {
	for _, t := range []ws.MessageType{
		ws.TypeSOSAlert,
		ws.TypeEmergency,
		ws.TypeIncidentReport,
		ws.TypeCaseUpdate,
		ws.TypeAlertStatusUpdate,
		ws.TypeNearbyIncident,
	} {
		t := t
		rt.On(t, func(payload json.RawMessage) {
			b.Handle(t, payload)
		})
	}
}

// Handle processes one frame.
func (b *Bridge) Handle(t ws.MessageType, payload json.RawMessage) {
	cue, ok := CueFor(t)
	if !ok {
		return
	}

	if b.Sounds != nil {
		b.Sounds.Play(cue)
	}

	if b.OnToast != nil {
		b.OnToast(Toast{
			Type:  t,
			Title: titleFor(t),
			Body:  bodyFrom(payload),
			Cue:   cue,
		})
	}
}

func titleFor(t ws.MessageType) string {
	switch t {
	case ws.TypeSOSAlert:
		return "SOS Alert"
	case ws.TypeEmergency:
		return "Emergency"
	case ws.TypeIncidentReport:
		return "New Incident Report"
	case ws.TypeCaseUpdate:
		return "Case Update"
	case ws.TypeAlertStatusUpdate:
		return "Alert Update"
	case ws.TypeNearbyIncident:
		return "Incident Nearby"
	}
	return string(t)
}

// bodyFrom pulls the most descriptive field the payload offers.
func bodyFrom(payload json.RawMessage) string {
	var body struct {
		Details     string `json:"details"`
		Message     string `json:"message"`
		Title       string `json:"title"`
		Description string `json:"description"`
	}
	if err := json.Unmarshal(payload, &body); err != nil {
		return ""
	}
	for _, s := range []string{body.Details, body.Message, body.Title, body.Description} {
		if s != "" {
			return s
		}
	}
	return ""
}
