package domain

// Button is a suggest chip shown alongside a reply.
type Button struct {
	Title string
	Hide  bool
}

// Gallery is an ordered set of opaque image identifiers. The engine passes
// them through; rendering belongs to the transport layer.
type Gallery struct {
	ImageIDs []string
}

// Reply is the semantic payload a scene produces for one turn.
// Serialization to the host protocol is the transport layer's job.
type Reply struct {
	Text    string
	TTS     string
	Buttons []Button
	Gallery *Gallery

	// State is the partial session-state update to merge into the
	// carried-over blob. A nil value removes the key.
	State Delta
}

// NewButton returns a hidden suggest button, the default kind.
func NewButton(title string) Button {
	return Button{Title: title, Hide: true}
}
