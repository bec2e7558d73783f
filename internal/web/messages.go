package web

import "encoding/json"

// Message types exchanged over the WebSocket.
const (
	TypeStart       = "start"
	TypeInput       = "input"
	TypeRender      = "render"
	TypeStatus      = "status"
	TypeResults     = "results"
	TypeHideResults = "hideResults"
	TypeLabel       = "label"
	TypeError       = "error"
)

// Message is the envelope for every frame sent to the browser.
type Message struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

// inbound is the envelope for frames sent by the browser.
type inbound struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// InputData carries the full current value of the input surface.
type InputData struct {
	Value string `json:"value"`
}

// RenderData carries the sentence to display.
type RenderData struct {
	Sentence string `json:"sentence"`
}

// StatusData carries one per-character status update.
type StatusData struct {
	Index  int    `json:"index"`
	Status string `json:"status"`
}

// InputStateData enables or disables the input surface.
type InputStateData struct {
	Enabled bool `json:"enabled"`
}

// ResultsData carries the metrics of a completed session.
type ResultsData struct {
	WPM       int   `json:"wpm"`
	Accuracy  int   `json:"accuracy"`
	ElapsedMs int64 `json:"elapsedMs"`
}

// LabelData carries the start button text.
type LabelData struct {
	Text string `json:"text"`
}

// ErrorData reports a rejected client frame.
type ErrorData struct {
	Message string `json:"message"`
}
