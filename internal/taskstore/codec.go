package taskstore

import (
	"encoding/json"
	"fmt"

	"timemgr/internal/service"
)

// Encode serializes the collection to its stored form, a JSON array.
// A nil collection encodes as an empty array.
func Encode(tasks []service.Task) (string, error) {
	if tasks == nil {
		tasks = []service.Task{}
	}
	data, err := json.Marshal(tasks)
	if err != nil {
		return "", fmt.Errorf("encode tasks: %w", err)
	}
	return string(data), nil
}

// Decode parses the stored form produced by Encode.
func Decode(value string) ([]service.Task, error) {
	var tasks []service.Task
	if err := json.Unmarshal([]byte(value), &tasks); err != nil {
		return nil, fmt.Errorf("decode tasks: %w", err)
	}
	return tasks, nil
}
