package backend

import (
	"bytes"
	"encoding/json"

	"github.com/go-faster/errors"
)

// Envelope is the backend response wrapper.
type Envelope struct {
	Data    json.RawMessage `json:"data"`
	Success *bool           `json:"success,omitempty"`
	Message string          `json:"message,omitempty"`
}

func newDecoder(raw []byte) *json.Decoder {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	return dec
}

// unwrapData peels "data" envelopes until it reaches a value that is not an
// object holding a "data" key. Both {data: X} and {data: {data: X}} yield X.
func unwrapData(raw []byte) (json.RawMessage, error) {
	current := json.RawMessage(raw)
	for i := 0; i < 2; i++ {
		trimmed := bytes.TrimSpace(current)
		if len(trimmed) == 0 || trimmed[0] != '{' {
			return current, nil
		}
		var env map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &env); err != nil {
			return nil, errors.Wrap(err, "decode envelope")
		}
		data, ok := env["data"]
		if !ok {
			return current, nil
		}
		current = data
	}
	return current, nil
}

// DecodeCollection decodes an enveloped JSON array into generic records.
// Numbers keep their textual form as json.Number.
func DecodeCollection(raw []byte) ([]map[string]any, error) {
	data, err := unwrapData(raw)
	if err != nil {
		return nil, err
	}
	if isNull(data) {
		return []map[string]any{}, nil
	}
	var out []map[string]any
	if err := newDecoder(data).Decode(&out); err != nil {
		return nil, errors.Wrap(err, "decode collection")
	}
	if out == nil {
		out = []map[string]any{}
	}
	return out, nil
}

// DecodeItem decodes an enveloped JSON object into a generic record.
func DecodeItem(raw []byte) (map[string]any, error) {
	data, err := unwrapData(raw)
	if err != nil {
		return nil, err
	}
	if isNull(data) {
		return nil, ErrNotFound
	}
	var out map[string]any
	if err := newDecoder(data).Decode(&out); err != nil {
		return nil, errors.Wrap(err, "decode item")
	}
	return out, nil
}

// Ack checks the mutation acknowledgement. Only an explicit success=true
// (at the top level or inside the data envelope) counts.
func Ack(raw []byte) error {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return errors.Wrap(err, "decode acknowledgement")
	}
	if env.Success != nil {
		if *env.Success {
			return nil
		}
		return ackError(env.Message)
	}
	if len(env.Data) > 0 {
		var inner Envelope
		if err := json.Unmarshal(env.Data, &inner); err == nil && inner.Success != nil {
			if *inner.Success {
				return nil
			}
			return ackError(inner.Message)
		}
	}
	return ErrNotAcknowledged
}

func ackError(message string) error {
	if message == "" {
		return ErrNotAcknowledged
	}
	return errors.Wrap(ErrNotAcknowledged, message)
}

func isNull(raw []byte) bool {
	t := bytes.TrimSpace(raw)
	return len(t) == 0 || bytes.Equal(t, []byte("null"))
}
