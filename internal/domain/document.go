package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Document is the export artifact. Tracks round-trips through Import.
type Document struct {
	Tracks        map[Kind][]Track `json:"tracks"`
	TotalDuration float64          `json:"totalDuration"`
}

// Export snapshots the track structure into a Document.
func (t Timeline) Export() Document {
	return Document{
		Tracks:        CloneTracks(t.Tracks),
		TotalDuration: t.TotalDuration(),
	}
}

// Marshal renders the document as indented JSON.
func (d Document) Marshal() ([]byte, error) {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal timeline document: %w", err)
	}
	return data, nil
}

// ParseDocument decodes and validates an exported document.
func ParseDocument(data []byte) (Document, error) {
	var doc Document
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&doc); err != nil {
		return Document{}, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	if err := doc.Validate(); err != nil {
		return Document{}, err
	}
	return doc, nil
}

// Validate checks the shape Import relies on: every kind present with at
// least one track, unique non-empty track ids, and sane clip times. Missing
// kind fields are accepted; Import fills them from the enclosing key. The
// document is not modified.
func (d Document) Validate() error {
	if d.Tracks == nil {
		return fmt.Errorf("%w: missing tracks", ErrMalformedDocument)
	}
	for k := range d.Tracks {
		if !k.Valid() {
			return fmt.Errorf("%w: unknown kind %q", ErrMalformedDocument, k)
		}
	}
	seen := make(map[string]bool)
	for _, k := range Kinds() {
		tracks := d.Tracks[k]
		if len(tracks) == 0 {
			return fmt.Errorf("%w: kind %q has no tracks", ErrMalformedDocument, k)
		}
		for i, tr := range tracks {
			if tr.ID == "" || seen[tr.ID] {
				return fmt.Errorf("%w: %s track %d has a missing or duplicate id", ErrMalformedDocument, k, i)
			}
			seen[tr.ID] = true
			if tr.Kind != "" && tr.Kind != k {
				return fmt.Errorf("%w: track %s has kind %q under %q", ErrMalformedDocument, tr.ID, tr.Kind, k)
			}
			for j, c := range tr.Clips {
				if err := validateClip(c); err != nil {
					return fmt.Errorf("%w: track %s clip %d: %v", ErrMalformedDocument, tr.ID, j, err)
				}
			}
		}
	}
	return nil
}

func validateClip(c Clip) error {
	if c.ID == "" {
		return fmt.Errorf("missing id")
	}
	if !finite(c.Duration) || c.Duration <= 0 {
		return fmt.Errorf("duration must be > 0")
	}
	if !finite(c.StartTime) || c.StartTime < 0 {
		return fmt.Errorf("startTime must be >= 0")
	}
	if !finite(c.MediaOffset) || c.MediaOffset < 0 {
		return fmt.Errorf("mediaOffset must be >= 0")
	}
	return nil
}

// Import replaces the track structure with the document's. Cursor and zoom
// are kept. On error the receiver is returned unchanged.
func (t Timeline) Import(doc Document) (Timeline, error) {
	if err := doc.Validate(); err != nil {
		return t, err
	}
	next := t
	next.Tracks = CloneTracks(doc.Tracks)
	for k, tracks := range next.Tracks {
		for i := range tracks {
			tr := &tracks[i]
			tr.Kind = k
			if tr.Clips == nil {
				tr.Clips = []Clip{}
			}
			for j := range tr.Clips {
				tr.Clips[j].Kind = k
			}
			tr.sortClips()
		}
	}
	return next, nil
}
