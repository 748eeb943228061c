package domain

import (
	"fmt"
	"strings"
)

// Kind is the media kind a track, clip or asset belongs to.
type Kind string

const (
	KindVideo Kind = "video"
	KindAudio Kind = "audio"
)

// Kinds lists every kind in the order tracks are laid out.
func Kinds() []Kind {
	return []Kind{KindVideo, KindAudio}
}

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	return k == KindVideo || k == KindAudio
}

// ParseKind normalizes s (case and surrounding spaces) into a Kind.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if !k.Valid() {
		return "", fmt.Errorf("unknown media kind %q", s)
	}
	return k, nil
}
