package manifest

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MrSnakeDoc/splice/internal/domain"
)

// assetNamespace scopes deterministic asset ids.
var assetNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("splice:asset"))

// Mapper converts manifest entries to domain assets
type Mapper struct {
	now func() time.Time
}

// NewMapper creates a new mapper instance
func NewMapper() *Mapper {
	return &Mapper{now: time.Now}
}

// MapAssets converts a manifest into assets. Entries with an unknown kind,
// no source or an unresolvable duration are skipped and counted. An empty
// manifest maps to no assets; a manifest whose every entry is invalid is an
// error.
func (m *Mapper) MapAssets(file File) ([]domain.Asset, int, error) {
	assets := make([]domain.Asset, 0, len(file.Assets))
	skipped := 0
	now := m.now()

	for i, e := range file.Assets {
		kind, err := domain.ParseKind(e.Kind)
		if err != nil || e.Src == "" {
			skipped++
			continue
		}

		name := e.Name
		if name == "" {
			name = e.Src
		}

		asset := domain.Asset{
			ID:           AssetID(kind, e.Src),
			Name:         name,
			Kind:         kind,
			SourceRef:    e.Src,
			Duration:     e.Duration,
			ThumbnailRef: e.Thumbnail,
			// Keep manifest order when several entries land in one reload
			AddedAt: now.Add(time.Duration(i) * time.Microsecond),
		}
		if asset.Validate() != nil {
			skipped++
			continue
		}

		assets = append(assets, asset)
	}

	if len(file.Assets) > 0 && len(assets) == 0 {
		return nil, skipped, fmt.Errorf("no valid assets found in manifest")
	}

	return assets, skipped, nil
}

// AssetID derives a stable id from kind and source so the same media
// always maps to the same asset across reloads.
func AssetID(kind domain.Kind, src string) string {
	return uuid.NewSHA1(assetNamespace, []byte(string(kind)+"|"+src)).String()
}
