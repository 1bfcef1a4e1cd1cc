package event

import "encoding/json"

// DecodePayload returns the payload as T. In-process publishers hand over the
// struct itself; anything else (a map from a dead-letter replay, say) is
// re-encoded through JSON.
func DecodePayload[T any](payload any) (T, error) {
	if v, ok := payload.(T); ok {
		return v, nil
	}
	var out T
	raw, err := json.Marshal(payload)
	if err != nil {
		return out, err
	}
	err = json.Unmarshal(raw, &out)
	return out, err
}
