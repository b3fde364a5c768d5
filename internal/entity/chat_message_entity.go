package entity

import (
	"encoding/json"
	"fmt"
	"time"

	"buddyai-be/internal/constant"
)

type MessageRole string

const (
	MessageRoleUser  MessageRole = constant.ChatMessageRoleUser
	MessageRoleModel MessageRole = constant.ChatMessageRoleModel
)

func (r MessageRole) Valid() bool {
	return r == MessageRoleUser || r == MessageRoleModel
}

// ParseMessageRole accepts only the closed set of roles a conversation can carry.
func ParseMessageRole(s string) (MessageRole, error) {
	r := MessageRole(s)
	if !r.Valid() {
		return "", fmt.Errorf("unknown message role %q", s)
	}
	return r, nil
}

func (r *MessageRole) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseMessageRole(s)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// ChatMessage is one turn inside a ChatSession. It has no identity of its own.
type ChatMessage struct {
	Role      MessageRole
	Content   string
	Timestamp time.Time
}
