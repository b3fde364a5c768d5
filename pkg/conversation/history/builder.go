package history

import (
	"buddyai-be/internal/entity"
	"buddyai-be/pkg/llm"
)

type Builder struct{}

func NewBuilder() *Builder {
	return &Builder{}
}

// BuildPrior returns every message except the newest one, in provider-agnostic form.
// The newest message is sent to the provider separately as the prompt.
func (b *Builder) BuildPrior(session *entity.ChatSession) []llm.Message {
	if len(session.Messages) <= 1 {
		return []llm.Message{}
	}
	prior := session.Messages[:len(session.Messages)-1]

	out := make([]llm.Message, 0, len(prior))
	for _, msg := range prior {
		role := llm.RoleUser
		if msg.Role == entity.MessageRoleModel {
			role = llm.RoleModel
		}
		out = append(out, llm.Message{Role: role, Content: msg.Content})
	}
	return out
}
