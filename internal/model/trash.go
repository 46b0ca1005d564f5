package model

import "time"

const TrashManifestName = ".metadata.json"

// TrashManifest is written into every trash slot next to the items it holds.
type TrashManifest struct {
	BatchID   string    `json:"batch_id"`
	Timestamp time.Time `json:"timestamp"`
	Items     []string  `json:"items"`
}

type TrashSlot struct {
	ID       string         `json:"id"`
	Path     string         `json:"path"`
	Manifest *TrashManifest `json:"manifest,omitempty"`
}
