package entities

import (
	"time"

	"github.com/google/uuid"
)

// DirectoryResource names a catalog resource whose public views can go stale
type DirectoryResource string

const (
	ResourceCategory DirectoryResource = "category"
	ResourceLocation DirectoryResource = "location"
	ResourceAmenity  DirectoryResource = "amenity"
	ResourcePlace    DirectoryResource = "place"
	ResourceReview   DirectoryResource = "review"
)

// Valid reports whether r names a known resource
func (r DirectoryResource) Valid() bool {
	switch r {
	case ResourceCategory, ResourceLocation, ResourceAmenity, ResourcePlace, ResourceReview:
		return true
	}
	return false
}

// DirectoryEventType represents the kind of write that happened
type DirectoryEventType string

const (
	DirectoryEventCreated DirectoryEventType = "created"
	DirectoryEventUpdated DirectoryEventType = "updated"
	DirectoryEventDeleted DirectoryEventType = "deleted"
)

// DirectoryEvent is published after a committed catalog write
type DirectoryEvent struct {
	ID         string             `json:"id"`
	Resource   DirectoryResource  `json:"resource"`
	ResourceID string             `json:"resourceId"`
	EventType  DirectoryEventType `json:"eventType"`
	Timestamp  time.Time          `json:"timestamp"`
}

// NewDirectoryEvent creates a new directory event
func NewDirectoryEvent(resource DirectoryResource, resourceID string, eventType DirectoryEventType) *DirectoryEvent {
	return &DirectoryEvent{
		ID:         uuid.New().String(),
		Resource:   resource,
		ResourceID: resourceID,
		EventType:  eventType,
		Timestamp:  time.Now().UTC(),
	}
}
