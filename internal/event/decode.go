package event

import "encoding/json"

// DecodePayload converts an event payload into T. Payloads published
// in-process are already the concrete struct and pass straight through;
// payloads that crossed a serialization boundary arrive as maps and take
// the JSON round trip.
func DecodePayload[T any](input interface{}) (T, error) {
	if typed, ok := input.(T); ok {
		return typed, nil
	}

	var decoded T
	raw, err := json.Marshal(input)
	if err != nil {
		return decoded, err
	}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return decoded, err
	}
	return decoded, nil
}
