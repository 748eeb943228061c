package redis

import "fmt"

const (
	// KeyPrefixAsset is the prefix for asset keys
	KeyPrefixAsset = "splice:asset:"
	// KeyAllAssets is the key for the set of all asset IDs
	KeyAllAssets = "splice:assets:all"
	// KeyTimeline holds the exported timeline document
	KeyTimeline = "splice:timeline"
	// KeyTimelineMeta holds bookkeeping about the last saved snapshot
	KeyTimelineMeta = "splice:timeline:meta"
)

// AssetKey returns the Redis key for an asset by ID
func AssetKey(id string) string {
	return KeyPrefixAsset + id
}

// AllAssetsKey returns the key for the set of all asset IDs
func AllAssetsKey() string {
	return KeyAllAssets
}

// ExtractAssetID extracts the asset ID from a Redis key
func ExtractAssetID(key string) (string, error) {
	if len(key) <= len(KeyPrefixAsset) || key[:len(KeyPrefixAsset)] != KeyPrefixAsset {
		return "", fmt.Errorf("invalid asset key: %s", key)
	}
	return key[len(KeyPrefixAsset):], nil
}
