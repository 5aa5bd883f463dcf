package audit

import (
	"time"

	"github.com/google/uuid"
)

// Action names a venue mutation worth recording.
type Action string

const (
	ActionVenueCreated          Action = "venue_created"
	ActionVenueUpdated          Action = "venue_updated"
	ActionVenueStatusChanged    Action = "venue_status_changed"
	ActionVenueDeleted          Action = "venue_deleted"
	ActionImageAdded            Action = "venue_image_added"
	ActionImageUpdated          Action = "venue_image_updated"
	ActionImageDeleted          Action = "venue_image_deleted"
	ActionImagesReordered       Action = "venue_images_reordered"
	ActionUnavailabilityAdded   Action = "venue_unavailability_added"
	ActionUnavailabilityUpdated Action = "venue_unavailability_updated"
	ActionUnavailabilityDeleted Action = "venue_unavailability_deleted"
)

// Event is emitted by the venue service after a successful mutation. It is
// transport-agnostic so sinks can fan out.
type Event struct {
	Timestamp time.Time
	Action    Action
	// ActorID is the principal that performed the action.
	ActorID uuid.UUID
	// OwnerID is the venue owner; it differs from ActorID for admin actions.
	OwnerID   uuid.UUID
	VenueID   uuid.UUID
	TargetID  uuid.UUID
	Detail    string
	RequestID string
}

// Fields flattens the event for log and stream sinks.
func (e Event) Fields() map[string]string {
	fields := map[string]string{
		"timestamp": e.Timestamp.UTC().Format(time.RFC3339Nano),
		"action":    string(e.Action),
		"actor_id":  e.ActorID.String(),
		"venue_id":  e.VenueID.String(),
	}
	if e.OwnerID != uuid.Nil {
		fields["owner_id"] = e.OwnerID.String()
	}
	if e.TargetID != uuid.Nil {
		fields["target_id"] = e.TargetID.String()
	}
	if e.Detail != "" {
		fields["detail"] = e.Detail
	}
	if e.RequestID != "" {
		fields["request_id"] = e.RequestID
	}
	return fields
}
