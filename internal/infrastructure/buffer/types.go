package buffer

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Item is a board snapshot waiting to be written to primary storage.
type Item struct {
	ID        string          `json:"id"`
	Namespace string          `json:"namespace"`
	Data      json.RawMessage `json:"data"`
	Retries   int             `json:"retries"`
	Timestamp time.Time       `json:"timestamp"`

	bucketKey []byte
}

func (i *Item) normalize() {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	if i.Timestamp.IsZero() {
		i.Timestamp = time.Now()
	}
}
