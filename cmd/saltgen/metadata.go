package main

import (
	"encoding/json"
	"os"
	"time"

	"checker/internal/errors"
)

const (
	metadataVersion = "1.0"
	metadataSuffix  = ".meta.json"
)

// Metadata is written next to a generated salt store so operators can tell
// later whether the file was altered.
type Metadata struct {
	Version     string    `json:"version"`
	Count       int       `json:"count"`
	ByteLength  int       `json:"byte_length"`
	SizeBytes   int64     `json:"size_bytes"`
	SHA256      string    `json:"sha256"`
	GeneratedAt time.Time `json:"generated_at"`
}

func metadataPath(saltPath string) string {
	return saltPath + metadataSuffix
}

func writeMetadata(path string, m *Metadata) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to encode metadata")
	}

	return errors.Wrap(os.WriteFile(path, data, 0o600), "failed to write metadata")
}

// loadMetadata returns nil without error when no metadata file exists.
func loadMetadata(path string) (*Metadata, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to read metadata")
	}

	var m Metadata
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrap(err, "failed to decode metadata")
	}
	if m.Version != metadataVersion {
		return nil, errors.Errorf("unsupported metadata version: %s", m.Version)
	}

	return &m, nil
}
