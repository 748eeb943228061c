package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/splice/internal/domain"
)

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewStore(client), mr
}

func testAsset(id string, added time.Time) domain.Asset {
	return domain.Asset{
		ID:        id,
		Name:      "asset " + id,
		Kind:      domain.KindVideo,
		SourceRef: "/media/" + id + ".mp4",
		Duration:  4,
		AddedAt:   added,
	}
}

func TestAssetKeys(t *testing.T) {
	if got := AssetKey("abc"); got != "splice:asset:abc" {
		t.Errorf("AssetKey() = %q", got)
	}

	tests := []struct {
		key     string
		want    string
		wantErr bool
	}{
		{key: "splice:asset:abc", want: "abc"},
		{key: "splice:asset:", wantErr: true},
		{key: "splice:timeline", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, err := ExtractAssetID(tt.key)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ExtractAssetID() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ExtractAssetID() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSaveAndGetAsset(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	a := testAsset("a1", time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC))

	if err := s.SaveAsset(ctx, a); err != nil {
		t.Fatalf("SaveAsset() error = %v", err)
	}
	got, err := s.GetAsset(ctx, "a1")
	if err != nil {
		t.Fatalf("GetAsset() error = %v", err)
	}
	if got.Name != a.Name || got.SourceRef != a.SourceRef || !got.AddedAt.Equal(a.AddedAt) {
		t.Errorf("GetAsset() = %+v, want %+v", got, a)
	}

	if _, err := s.GetAsset(ctx, "missing"); err == nil {
		t.Error("GetAsset(missing) should fail")
	}
}

func TestGetAllAssetsOrdersByAddedAt(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

	err := s.SaveAssetsMany(ctx, []domain.Asset{
		testAsset("late", base.Add(2*time.Minute)),
		testAsset("early", base),
		testAsset("middle", base.Add(time.Minute)),
	})
	if err != nil {
		t.Fatalf("SaveAssetsMany() error = %v", err)
	}

	assets, err := s.GetAllAssets(ctx)
	if err != nil {
		t.Fatalf("GetAllAssets() error = %v", err)
	}
	want := []string{"early", "middle", "late"}
	if len(assets) != len(want) {
		t.Fatalf("len(GetAllAssets()) = %d, want %d", len(assets), len(want))
	}
	for i, id := range want {
		if assets[i].ID != id {
			t.Errorf("assets[%d] = %s, want %s", i, assets[i].ID, id)
		}
	}
}

func TestGetAllAssetsSkipsDanglingIDs(t *testing.T) {
	s, mr := newTestStore(t)
	ctx := context.Background()

	if err := s.SaveAsset(ctx, testAsset("kept", time.Now())); err != nil {
		t.Fatalf("SaveAsset() error = %v", err)
	}
	if _, err := mr.SAdd(KeyAllAssets, "ghost"); err != nil {
		t.Fatalf("SAdd() error = %v", err)
	}

	assets, err := s.GetAllAssets(ctx)
	if err != nil {
		t.Fatalf("GetAllAssets() error = %v", err)
	}
	if len(assets) != 1 || assets[0].ID != "kept" {
		t.Errorf("GetAllAssets() = %+v, want only kept", assets)
	}
}

func TestTimelineSnapshot(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	if _, err := s.LoadTimeline(ctx); !errors.Is(err, ErrSnapshotNotFound) {
		t.Fatalf("LoadTimeline() on empty store err = %v, want ErrSnapshotNotFound", err)
	}
	if _, err := s.TimelineMeta(ctx); !errors.Is(err, ErrSnapshotNotFound) {
		t.Fatalf("TimelineMeta() on empty store err = %v, want ErrSnapshotNotFound", err)
	}

	doc := []byte(`{"tracks":{},"totalDuration":0}`)
	at := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	if err := s.SaveTimeline(ctx, doc, 7, at); err != nil {
		t.Fatalf("SaveTimeline() error = %v", err)
	}

	got, err := s.LoadTimeline(ctx)
	if err != nil {
		t.Fatalf("LoadTimeline() error = %v", err)
	}
	if string(got) != string(doc) {
		t.Errorf("LoadTimeline() = %s, want %s", got, doc)
	}

	meta, err := s.TimelineMeta(ctx)
	if err != nil {
		t.Fatalf("TimelineMeta() error = %v", err)
	}
	if meta.Revision != 7 || !meta.SavedAt.Equal(at) || meta.Size != len(doc) {
		t.Errorf("TimelineMeta() = %+v", meta)
	}
}

func TestPing(t *testing.T) {
	s, mr := newTestStore(t)
	if err := s.Ping(context.Background()); err != nil {
		t.Fatalf("Ping() error = %v", err)
	}
	mr.Close()
	if err := s.Ping(context.Background()); err == nil {
		t.Error("Ping() after close should fail")
	}
}
