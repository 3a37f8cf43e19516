package api

import (
	"encoding/base64"
	"io"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/longduongbao29/Translator-app/internal/usecase/speech"
)

const maxAudioBytes = 25 << 20

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

func (s *Server) handleTranscribe(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxAudioBytes); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "invalid multipart body")
		return
	}
	file, header, err := r.FormFile("audio")
	if err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "audio field is required")
		return
	}
	defer file.Close()

	audio, err := io.ReadAll(io.LimitReader(file, maxAudioBytes))
	if err != nil {
		writeError(w, err)
		return
	}

	t, err := s.speech.Transcribe(r.Context(), speech.TranscribeArgs{
		Audio:    audio,
		Filename: header.Filename,
		Language: r.FormValue("language"),
		UserID:   userIDFrom(r.Context()),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

type streamFrame struct {
	Audio    string `json:"audio"` // base64 chunk
	Language string `json:"language,omitempty"`
	Final    bool   `json:"final,omitempty"`
}

type streamResult struct {
	Type string `json:"type"` // realtime | fullSentence
	Text string `json:"text"`
}

// handleSpeechStream transcribes base64 audio chunks over a websocket.
// Interim chunks come back as "realtime" results; a frame marked final
// flushes the accumulated audio as one "fullSentence" result.
func (s *Server) handleSpeechStream(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	userID := userIDFrom(r.Context())
	var buffered []byte
	for {
		var frame streamFrame
		if err := conn.ReadJSON(&frame); err != nil {
			return
		}
		chunk, err := base64.StdEncoding.DecodeString(frame.Audio)
		if err != nil {
			_ = conn.WriteJSON(map[string]string{"error": "invalid base64 audio"})
			continue
		}
		buffered = append(buffered, chunk...)
		if len(buffered) > maxAudioBytes {
			_ = conn.WriteJSON(map[string]string{"error": "audio stream too large"})
			return
		}

		t, err := s.speech.Transcribe(r.Context(), speech.TranscribeArgs{
			Audio:    buffered,
			Filename: "stream.wav",
			Language: frame.Language,
			UserID:   userID,
		})
		if err != nil {
			_ = conn.WriteJSON(map[string]string{"error": err.Error()})
			continue
		}

		kind := "realtime"
		if frame.Final {
			kind = "fullSentence"
			buffered = nil
		}
		if err := conn.WriteJSON(streamResult{Type: kind, Text: t.Text}); err != nil {
			return
		}
	}
}
