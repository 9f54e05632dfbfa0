package domain

// DragKind tells whether a gesture moved a whole column or a single card.
type DragKind string

const (
	DragColumn DragKind = "column"
	DragCard   DragKind = "card"
)

// DragLocation addresses a slot in a list. For card gestures ListID is a column id.
type DragLocation struct {
	ListID string `json:"list_id"`
	Index  int    `json:"index"`
}

// Gesture is a completed drag as reported by the UI. A nil Destination means the
// drop landed outside any valid target.
type Gesture struct {
	Kind        DragKind      `json:"kind"`
	Source      DragLocation  `json:"source"`
	Destination *DragLocation `json:"destination"`
}
