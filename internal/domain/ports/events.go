package ports

import "context"

// EventType identifica o tipo de evento de anúncio
type EventType string

const (
	EventAdvertCreated      EventType = "advert.created"
	EventAdvertUpdated      EventType = "advert.updated"
	EventAdvertImageUpdated EventType = "advert.image_updated"
	EventAdvertDeleted      EventType = "advert.deleted"
)

// AdvertEvent é publicado após mudanças em anúncios
type AdvertEvent struct {
	Type     EventType `json:"type"`
	AdvertID int64     `json:"advertId"`
	Author   string    `json:"author"`
	Title    string    `json:"title,omitempty"`
}

// EventPublisher entrega eventos a assinantes
type EventPublisher interface {
	Publish(ctx context.Context, event AdvertEvent)
}
