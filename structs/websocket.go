package structs

// GenerateSocketRequest is the first client frame on the generation socket.
// Kind selects the source: "text" or "topic".
type GenerateSocketRequest struct {
	Kind       string `json:"kind"`
	Content    string `json:"content"`
	Title      string `json:"title,omitempty"`
	SlideCount int    `json:"slideCount"`
}

// GenerateEvent is the envelope for progress events pushed to the client
// while a deck is being generated.
type GenerateEvent struct {
	Type      string      `json:"type"`
	Payload   interface{} `json:"payload,omitempty"`
	Timestamp int64       `json:"timestamp"`
}
