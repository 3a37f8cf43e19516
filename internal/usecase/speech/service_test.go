package speech

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/longduongbao29/Translator-app/internal/domain"
	"github.com/longduongbao29/Translator-app/internal/ports"
)

type fakeTranscriber struct {
	calls  int
	result *domain.Transcript
	err    error
}

func (f *fakeTranscriber) Transcribe(context.Context, ports.TranscribeRequest) (*domain.Transcript, error) {
	f.calls++
	return f.result, f.err
}

type staticResolver struct {
	ep *domain.CustomEndpoint
}

func (r staticResolver) Resolve(context.Context, *int64, domain.Capability) *domain.CustomEndpoint {
	return r.ep
}

func TestTranscribeSkipsSmallChunks(t *testing.T) {
	builtin := &fakeTranscriber{result: &domain.Transcript{Text: "should not appear"}}
	svc := New(Deps{
		Builtin:  builtin,
		Resolver: staticResolver{},
		Log:      log.New(io.Discard),
	})

	tr, err := svc.Transcribe(context.Background(), TranscribeArgs{
		Audio:    bytes.Repeat([]byte{0x01}, minChunkBytes-1),
		Filename: "tiny.wav",
	})
	if err != nil {
		t.Fatalf("transcribe: %v", err)
	}
	if tr.Text != "" {
		t.Fatalf("expected empty transcript, got %q", tr.Text)
	}
	if builtin.calls != 0 {
		t.Fatalf("provider called for an undersized chunk")
	}
}

func TestTranscribeEmptyAudioRejected(t *testing.T) {
	svc := New(Deps{
		Builtin:  &fakeTranscriber{},
		Resolver: staticResolver{},
		Log:      log.New(io.Discard),
	})
	_, err := svc.Transcribe(context.Background(), TranscribeArgs{})
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestTranscribeCustomFallsBackToBuiltin(t *testing.T) {
	builtin := &fakeTranscriber{result: &domain.Transcript{Text: "hello world", Engine: domain.EngineGroq}}
	broken := &fakeTranscriber{err: errors.New("timeout")}
	uid := int64(5)

	svc := New(Deps{
		Builtin:  builtin,
		Resolver: staticResolver{ep: &domain.CustomEndpoint{ID: 9, Capability: domain.CapabilitySpeechToText}},
		CustomTranscriber: func(*domain.CustomEndpoint) ports.Transcriber {
			return broken
		},
		Log: log.New(io.Discard),
	})

	tr, err := svc.Transcribe(context.Background(), TranscribeArgs{
		Audio:  bytes.Repeat([]byte{0x02}, minChunkBytes),
		UserID: &uid,
	})
	if err != nil {
		t.Fatalf("transcribe: %v", err)
	}
	if broken.calls != 1 || builtin.calls != 1 {
		t.Fatalf("expected custom then builtin, got custom=%d builtin=%d", broken.calls, builtin.calls)
	}
	if tr.Text != "hello world" {
		t.Fatalf("unexpected transcript %q", tr.Text)
	}
}

func TestTranscribeBuiltinErrorPropagates(t *testing.T) {
	builtin := &fakeTranscriber{err: &domain.ProviderError{Provider: "groq", Status: 500, Message: "server error"}}
	svc := New(Deps{
		Builtin:  builtin,
		Resolver: staticResolver{},
		Log:      log.New(io.Discard),
	})

	_, err := svc.Transcribe(context.Background(), TranscribeArgs{
		Audio: bytes.Repeat([]byte{0x03}, minChunkBytes),
	})
	var pe *domain.ProviderError
	if !errors.As(err, &pe) {
		t.Fatalf("expected ProviderError, got %v", err)
	}
}
