package domain

import "time"

// ContentItem is a single published note as delivered by the content feed
type ContentItem struct {
	Title string `json:"title"`
	Link  string `json:"link"`
}

// ContentFeed maps a department or topic key to its published notes,
// preserving the feed's ordering within each key.
type ContentFeed map[string][]ContentItem

// FactOfDay is the optional daily data snippet scoped to one department
type FactOfDay struct {
	Department string `json:"departamento"`
	Text       string `json:"texto"`
}

// SpecialMessagePosition says where an operator override goes in a digest
type SpecialMessagePosition string

// special message placements
const (
	PositionStart SpecialMessagePosition = "inicio"
	PositionEnd   SpecialMessagePosition = "final"
)

// SpecialMessage is an operator-scheduled override injected into a digest run
type SpecialMessage struct {
	ID       int64
	Date     string // YYYY-MM-DD
	Text     string
	Position SpecialMessagePosition
	Active   bool
}

// InboundMessage is a message received from the chat transport
type InboundMessage struct {
	From string `json:"from"`
	Body string `json:"body"`
}

// DeliveryOutcome tags an audit log entry
type DeliveryOutcome string

// audit outcomes written by the engine and the digest runs
const (
	OutcomeSubscribed   DeliveryOutcome = "suscripcion"
	OutcomeReactivated  DeliveryOutcome = "reactivacion"
	OutcomeUpdated      DeliveryOutcome = "actualizacion"
	OutcomeUnsubscribed DeliveryOutcome = "desuscripcion"
	OutcomeReplied      DeliveryOutcome = "mensaje_enviado"
	OutcomeReceived     DeliveryOutcome = "recibido"
	OutcomeDailySent    DeliveryOutcome = "envio_diario"
	OutcomeWeeklySent   DeliveryOutcome = "envio_semanal"
	OutcomeError        DeliveryOutcome = "error"
	OutcomeRunSummary   DeliveryOutcome = "resumen_envio"
)

// DeliveryAttempt is an append-only audit record of one outbound attempt
type DeliveryAttempt struct {
	ID        int64
	Phone     string
	Message   string
	Outcome   DeliveryOutcome
	CreatedAt time.Time
}
