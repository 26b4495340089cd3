package preference

import (
	"encoding/json"
	"fmt"

	"pizza-orders-be/internal/order"
)

// envelope is the persisted shape: {"state": {...}, "version": N}. Only the
// sort and filter configuration are ever written.
type envelope struct {
	State   order.Preferences `json:"state"`
	Version int               `json:"version"`
}

const currentVersion = 0

func encode(p order.Preferences) ([]byte, error) {
	return json.Marshal(envelope{State: p, Version: currentVersion})
}

func decode(data []byte) (*order.Preferences, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptPayload, err)
	}
	if env.Version != currentVersion {
		return nil, fmt.Errorf("%w: version %d", ErrUnsupportedVersion, env.Version)
	}
	return &env.State, nil
}
