package store

import (
	"encoding/json"
	"fmt"
	"log/slog"
)

func encode(key string, v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", key, err)
	}
	return data, nil
}

// decode treats corrupted values as absent. The dataset is not repaired.
func decode(key string, data []byte, v any) bool {
	if err := json.Unmarshal(data, v); err != nil {
		slog.Warn("Corrupted dataset ignored", "key", key, "error", err)
		return false
	}
	return true
}
