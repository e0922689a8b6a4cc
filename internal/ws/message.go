package ws

// MessageType is the closed set of realtime frame tags. Adding a kind here
// forces every switch over the set to be revisited; unknown tags received
// from the wire are ignored by consumers, not errors.
type MessageType string

const (
	TypeNewIncident           MessageType = "NEW_INCIDENT"
	TypeOfficerLocationUpdate MessageType = "OFFICER_LOCATION_UPDATE"
	TypeSOSAlert              MessageType = "SOS_ALERT"
	TypeAlertStatusUpdate     MessageType = "ALERT_STATUS_UPDATE"
	TypeNearbyIncident        MessageType = "NEARBY_INCIDENT"
	TypeCaseUpdate            MessageType = "CASE_UPDATE"
	TypeIncidentReport        MessageType = "INCIDENT_REPORT"
	TypeEmergency             MessageType = "EMERGENCY"
)

// Known reports whether t is part of the fixed tag set.
func (t MessageType) Known() bool {
	switch t {
	case TypeNewIncident, TypeOfficerLocationUpdate, TypeSOSAlert,
		TypeAlertStatusUpdate, TypeNearbyIncident, TypeCaseUpdate,
		TypeIncidentReport, TypeEmergency:
		return true
	}
	return false
}

// Message is the JSON envelope exchanged over the realtime channel.
type Message struct {
	Type    MessageType `json:"type"`
	Payload any         `json:"payload"`
}

// Broadcaster pushes a tagged message to every connected client. Services
// depend on this instead of the concrete hub so they can be tested without
// live sockets.
type Broadcaster interface {
	BroadcastMessage(t MessageType, payload any)
}
