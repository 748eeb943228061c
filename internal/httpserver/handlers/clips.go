package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/splice/internal/domain"
	"github.com/MrSnakeDoc/splice/internal/httpserver/deps"
)

// addClipRequest places either a registered asset (AssetID) or a free-form
// clip described inline.
type addClipRequest struct {
	AssetID     string   `json:"assetId,omitempty"`
	AssetRef    string   `json:"assetRef,omitempty"`
	Name        string   `json:"name,omitempty"`
	SourceRef   string   `json:"sourceRef,omitempty"`
	Duration    float64  `json:"duration,omitempty"`
	MediaOffset float64  `json:"mediaOffset,omitempty"`
	StartTime   *float64 `json:"startTime,omitempty"`
}

type moveClipRequest struct {
	Kind      domain.Kind `json:"kind,omitempty"`
	TrackID   string      `json:"trackId"`
	StartTime float64     `json:"startTime"`
}

func AddClip(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind, trackID, ok := trackTarget(w, r)
		if !ok {
			return
		}
		var req addClipRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}

		if req.AssetID != "" {
			s, changed := d.Editor.PlaceAsset(kind, trackID, req.AssetID, req.StartTime, req.Duration)
			writeMutation(w, s, changed)
			return
		}

		s, changed := d.Editor.AddClip(kind, trackID, domain.ClipInput{
			AssetRef:    req.AssetRef,
			Name:        req.Name,
			SourceRef:   req.SourceRef,
			Duration:    req.Duration,
			MediaOffset: req.MediaOffset,
			StartTime:   req.StartTime,
		})
		writeMutation(w, s, changed)
	}
}

func UpdateClip(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind, trackID, i, ok := clipTarget(w, r)
		if !ok {
			return
		}
		var patch domain.ClipPatch
		if err := decodeJSON(w, r, &patch); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		s, changed := d.Editor.UpdateClip(kind, trackID, i, patch)
		writeMutation(w, s, changed)
	}
}

func DeleteClip(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind, trackID, i, ok := clipTarget(w, r)
		if !ok {
			return
		}
		s, changed := d.Editor.DeleteClip(kind, trackID, i)
		writeMutation(w, s, changed)
	}
}

// SplitClip cuts at the current time cursor.
func SplitClip(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind, trackID, i, ok := clipTarget(w, r)
		if !ok {
			return
		}
		s, changed := d.Editor.SplitClip(kind, trackID, i)
		writeMutation(w, s, changed)
	}
}

// JoinClips merges the clip with the one after it.
func JoinClips(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind, trackID, i, ok := clipTarget(w, r)
		if !ok {
			return
		}
		s, changed := d.Editor.JoinClips(kind, trackID, i)
		writeMutation(w, s, changed)
	}
}

// MoveClip moves to another track. An empty destination kind means the
// source kind; an empty destination track means the source track.
func MoveClip(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind, trackID, i, ok := clipTarget(w, r)
		if !ok {
			return
		}
		var req moveClipRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		dstKind := req.Kind
		if dstKind == "" {
			dstKind = kind
		}
		dstTrack := req.TrackID
		if dstTrack == "" {
			dstTrack = trackID
		}
		s, changed := d.Editor.MoveClip(kind, trackID, i, dstKind, dstTrack, req.StartTime)
		writeMutation(w, s, changed)
	}
}
