package upstream

import (
	"bytes"
	"encoding/json"
)

// Body é o corpo JSON devolvido pelo upstream, repassado sem alteração
type Body []byte

// JSON serializa um valor sintetizado localmente (ack, lista vazia)
func JSON(v any) Body {
	b, err := json.Marshal(v)
	if err != nil {
		return Body("null")
	}
	return Body(b)
}

// IsEmpty trata corpo ausente, só espaços ou `null` como vazio
func (b Body) IsEmpty() bool {
	t := bytes.TrimSpace(b)
	return len(t) == 0 || bytes.Equal(t, []byte("null"))
}

func (b Body) Decode(v any) error {
	return json.Unmarshal(b, v)
}

func (b Body) String() string { return string(b) }

func (b Body) MarshalJSON() ([]byte, error) {
	if b.IsEmpty() {
		return []byte("null"), nil
	}
	return b, nil
}
