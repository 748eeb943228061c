package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/splice/internal/domain"
)

// SaveAsset stores an asset in Redis
func (s *Store) SaveAsset(ctx context.Context, asset domain.Asset) error {
	data, err := json.Marshal(asset)
	if err != nil {
		return fmt.Errorf("failed to marshal asset: %w", err)
	}

	key := AssetKey(asset.ID)

	// Store asset data
	if err := s.client.Set(ctx, key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save asset: %w", err)
	}

	// Add to set of all assets
	if err := s.client.SAdd(ctx, AllAssetsKey(), asset.ID).Err(); err != nil {
		return fmt.Errorf("failed to add asset to set: %w", err)
	}

	return nil
}

// GetAsset retrieves an asset from Redis by ID
func (s *Store) GetAsset(ctx context.Context, id string) (domain.Asset, error) {
	data, err := s.client.Get(ctx, AssetKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.Asset{}, fmt.Errorf("asset not found: %s", id)
		}
		return domain.Asset{}, fmt.Errorf("failed to get asset: %w", err)
	}

	var asset domain.Asset
	if err := json.Unmarshal(data, &asset); err != nil {
		return domain.Asset{}, fmt.Errorf("failed to unmarshal asset: %w", err)
	}

	return asset, nil
}

// GetAllAssets retrieves all assets, oldest registration first
func (s *Store) GetAllAssets(ctx context.Context) ([]domain.Asset, error) {
	ids, err := s.client.SMembers(ctx, AllAssetsKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get asset IDs: %w", err)
	}

	if len(ids) == 0 {
		return []domain.Asset{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = AssetKey(id)
	}
	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get assets: %w", err)
	}

	assets := make([]domain.Asset, 0, len(values))
	for _, v := range values {
		raw, ok := v.(string)
		if !ok {
			// Skip ids whose payload vanished
			continue
		}
		var asset domain.Asset
		if err := json.Unmarshal([]byte(raw), &asset); err != nil {
			continue
		}
		assets = append(assets, asset)
	}

	sort.SliceStable(assets, func(i, j int) bool {
		if assets[i].AddedAt.Equal(assets[j].AddedAt) {
			return assets[i].ID < assets[j].ID
		}
		return assets[i].AddedAt.Before(assets[j].AddedAt)
	})

	return assets, nil
}

// SaveAssetsMany stores multiple assets in Redis (bulk operation)
func (s *Store) SaveAssetsMany(ctx context.Context, assets []domain.Asset) error {
	if len(assets) == 0 {
		return nil
	}

	pipe := s.client.Pipeline()

	for _, asset := range assets {
		data, err := json.Marshal(asset)
		if err != nil {
			return fmt.Errorf("failed to marshal asset %s: %w", asset.ID, err)
		}

		pipe.Set(ctx, AssetKey(asset.ID), data, 0)
		pipe.SAdd(ctx, AllAssetsKey(), asset.ID)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save assets: %w", err)
	}

	return nil
}
