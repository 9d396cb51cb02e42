package models

// Analysis wraps generated text for display. It is not persisted.
type Analysis struct {
	Timestamp  string `json:"timestamp"`
	Analysis   string `json:"analysis"`
	Disclaimer string `json:"disclaimer"`
}
