package util

import (
	"encoding/json"
	"fmt"
	"os"

	"localscoop-server/models"
)

// ReadPlaceRecordFromJSON loads a PlaceRecord from JSON on disk.
func ReadPlaceRecordFromJSON(filePath string) (*models.PlaceRecord, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", filePath, err)
	}
	var record models.PlaceRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal PlaceRecord: %w", err)
	}
	return &record, nil
}

// ReadPlaceIDs loads a slice of place IDs from JSON on disk.
func ReadPlaceIDs(filePath string) ([]string, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", filePath, err)
	}
	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, fmt.Errorf("failed to unmarshal place IDs: %w", err)
	}
	return ids, nil
}
