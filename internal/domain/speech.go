package domain

// Transcript is the normalized speech-to-text outcome. Text is empty when no
// segment survived confidence filtering or when the chunk was too small to
// transcribe; neither case is an error.
type Transcript struct {
	Text   string `json:"text"`
	Engine string `json:"engine"`
}

// Speech is synthesized audio plus the content type implied by the requested
// output format.
type Speech struct {
	Audio       []byte `json:"-"`
	ContentType string `json:"content_type"`
	Engine      string `json:"engine"`
}
