package gateway

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/schema"

	"github.com/josephgoksu/kai/internal/locale"
)

// ErrChatUnavailable is returned when no chat model is configured.
var ErrChatUnavailable = errors.New("chat coach is not configured")

// SendChatMessage asks the career coach a question in the context of the
// earlier conversation.
func (g *Gemini) SendChatMessage(ctx context.Context, history []ChatMessage, message string, loc locale.Locale) (string, error) {
	if g.chat == nil {
		return "", ErrChatUnavailable
	}

	msgs := make([]*schema.Message, 0, len(history)+2)
	msgs = append(msgs, schema.SystemMessage(buildCoachInstruction(loc)))
	for _, m := range history {
		switch m.Role {
		case RoleModel:
			msgs = append(msgs, schema.AssistantMessage(m.Text, nil))
		default:
			msgs = append(msgs, schema.UserMessage(m.Text))
		}
	}
	msgs = append(msgs, schema.UserMessage(message))

	resp, err := g.chat.Generate(ctx, msgs)
	if err != nil {
		return "", fmt.Errorf("chat: %w", err)
	}
	if resp == nil || strings.TrimSpace(resp.Content) == "" {
		return "", fmt.Errorf("chat: %w", ErrEmptyResponse)
	}
	return resp.Content, nil
}
