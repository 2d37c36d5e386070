package voice

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// GenaiDialer opens Gemini Live sessions with audio responses.
type GenaiDialer struct {
	client *genai.Client
	model  string
	voice  string
}

// NewGenaiDialer returns a dialer for the given live model and prebuilt voice.
func NewGenaiDialer(client *genai.Client, model, voice string) *GenaiDialer {
	return &GenaiDialer{client: client, model: model, voice: voice}
}

// Dial connects to the Live API.
func (d *GenaiDialer) Dial(ctx context.Context, systemInstruction string) (Conn, error) {
	cfg := &genai.LiveConnectConfig{
		ResponseModalities: []genai.Modality{genai.ModalityAudio},
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: systemInstruction}},
		},
	}
	if d.voice != "" {
		cfg.SpeechConfig = &genai.SpeechConfig{
			VoiceConfig: &genai.VoiceConfig{
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{VoiceName: d.voice},
			},
		}
	}
	session, err := d.client.Live.Connect(ctx, d.model, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect live model %s: %w", d.model, err)
	}
	return &genaiConn{session: session}, nil
}

type genaiConn struct {
	session *genai.Session
}

func (c *genaiConn) SendAudio(pcm []byte) error {
	return c.session.SendRealtimeInput(genai.LiveRealtimeInput{
		Audio: &genai.Blob{Data: pcm, MIMEType: InputMIMEType},
	})
}

func (c *genaiConn) Receive() (Message, error) {
	msg, err := c.session.Receive()
	if err != nil {
		return Message{}, err
	}
	return toMessage(msg), nil
}

func (c *genaiConn) Close() error {
	return c.session.Close()
}

func toMessage(msg *genai.LiveServerMessage) Message {
	var out Message
	if msg == nil || msg.ServerContent == nil {
		return out
	}
	sc := msg.ServerContent
	out.Interrupted = sc.Interrupted
	if sc.ModelTurn == nil {
		return out
	}
	for _, p := range sc.ModelTurn.Parts {
		if p != nil && p.InlineData != nil && len(p.InlineData.Data) > 0 {
			out.Audio = append(out.Audio, p.InlineData.Data)
		}
	}
	return out
}
