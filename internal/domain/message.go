package domain

import (
	"bytes"
	"encoding/json"
	"errors"
)

type Message struct {
	Text Text `json:"message"`
}

// Text is a chat message body. Any JSON scalar is accepted and kept in its
// literal form, so 42 becomes "42" and null becomes "".
type Text struct {
	Value string
	Set   bool
}

func (t *Text) UnmarshalJSON(data []byte) error {
	t.Set = true
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		t.Value = ""
		return nil
	case len(data) > 0 && data[0] == '"':
		return json.Unmarshal(data, &t.Value)
	case len(data) > 0 && (data[0] == '{' || data[0] == '['):
		return errors.New("message must be a string or scalar")
	default:
		t.Value = string(data)
		return nil
	}
}

func (t Text) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Value)
}

func (t Text) String() string {
	return t.Value
}
