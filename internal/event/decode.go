package event

import (
	"encoding/json"
	"fmt"
)

// DecodePayload returns the payload as T.
// In-process events carry T (or *T) directly; payloads read back from the
// dead-letter file arrive as raw JSON or generic maps and are re-decoded.
func DecodePayload[T any](payload any) (T, error) {
	var out T
	switch v := payload.(type) {
	case T:
		return v, nil
	case *T:
		if v == nil {
			return out, fmt.Errorf("%w: nil %T", ErrPayloadType, payload)
		}
		return *v, nil
	case json.RawMessage:
		return out, decodeJSON(v, &out)
	case []byte:
		return out, decodeJSON(v, &out)
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return out, fmt.Errorf("%w: %w", ErrPayloadType, err)
	}
	return out, decodeJSON(data, &out)
}

func decodeJSON(data []byte, out any) error {
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: %w", ErrPayloadType, err)
	}
	return nil
}
