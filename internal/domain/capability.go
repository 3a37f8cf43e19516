package domain

// Capability names a routable operation kind. Values double as the
// endpoint_type discriminator for custom endpoints.
type Capability string

const (
	CapabilityTranslation  Capability = "translation"
	CapabilitySpeechToText Capability = "speech2text"
	CapabilityTextToSpeech Capability = "text2speech"
)

func (c Capability) Valid() bool {
	switch c {
	case CapabilityTranslation, CapabilitySpeechToText, CapabilityTextToSpeech:
		return true
	}
	return false
}

// Built-in engine identifiers.
const (
	EngineGoogle     = "google"
	EngineOpenAI     = "openai"
	EngineGroq       = "groq"
	EngineElevenLabs = "elevenlabs"
	EngineLingua     = "lingua"
)
