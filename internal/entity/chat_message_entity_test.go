package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMessageRole(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    MessageRole
		wantErr bool
	}{
		{name: "user", input: "user", want: MessageRoleUser},
		{name: "model", input: "model", want: MessageRoleModel},
		{name: "assistant is not a stored role", input: "assistant", wantErr: true},
		{name: "system", input: "system", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "case sensitive", input: "User", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseMessageRole(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				assert.False(t, MessageRole(tt.input).Valid())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMessageRole_UnmarshalJSON(t *testing.T) {
	var msg struct {
		Role MessageRole `json:"role"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"role":"model"}`), &msg))
	assert.Equal(t, MessageRoleModel, msg.Role)

	assert.Error(t, json.Unmarshal([]byte(`{"role":"assistant"}`), &msg))
	assert.Error(t, json.Unmarshal([]byte(`{"role":7}`), &msg))
}
