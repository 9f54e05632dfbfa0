package monitor

import "time"

type Status struct {
	Driver     string    `json:"driver"`
	Storage    bool      `json:"storage"`
	Buffer     bool      `json:"buffer"`
	BufferSize int       `json:"buffer_size"`
	LastCheck  time.Time `json:"last_check"`
}
