package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/helioworks/artvault/internal/infra/blob"
	"github.com/helioworks/artvault/internal/modules/model"
	"github.com/helioworks/artvault/internal/modules/repo"
	"github.com/helioworks/artvault/internal/pkg/apperr"
	"github.com/helioworks/artvault/internal/pkg/media"
	"github.com/helioworks/artvault/internal/pkg/paging"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type AssetService interface {
	Ingest(ctx context.Context, path string) (*IngestResult, error)
	BatchIngest(ctx context.Context, paths []string) (*BatchIngestResult, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Asset, error)
	Update(ctx context.Context, id uuid.UUID, in UpdateAssetInput) (*model.Asset, error)
	ExistsByDigest(ctx context.Context, digest string) (bool, error)
	GetByDigests(ctx context.Context, digests []string) ([]*model.Asset, error)
	List(ctx context.Context, page, pageSize int) ([]*model.Asset, error)
	Feed(ctx context.Context, cursor string, limit int) (*FeedOutput, error)
	Count(ctx context.Context) (int64, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

type IngestResult struct {
	AssetID uuid.UUID `json:"asset_id"`
	IsNew   bool      `json:"is_new"`
}

type IngestError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// BatchIngestResult reports a best-effort bulk ingest: each path commits
// independently and per-path failures never abort the batch.
type BatchIngestResult struct {
	Total       int           `json:"total"`
	New         int           `json:"new"`
	Duplicates  int           `json:"duplicates"`
	Failures    int           `json:"failures"`
	NewAssetIDs []uuid.UUID   `json:"new_asset_ids"`
	Errors      []IngestError `json:"errors"`
}

type assetService struct {
	r         repo.AssetRepo
	hasher    media.Hasher
	extractor media.Extractor
	log       *zap.Logger
	rdb       *redis.Client
	mq        *amqp.Connection
	blob      *blob.S3Deps
	queue     string
	workers   int
}

func NewAssetService(
	r repo.AssetRepo,
	hasher media.Hasher,
	extractor media.Extractor,
	log *zap.Logger,
	rdb *redis.Client,
	mqConn *amqp.Connection,
	s3 *blob.S3Deps,
	queue string,
	workers int,
) AssetService {
	if workers <= 0 {
		workers = 8
	}
	return &assetService{
		r:         r,
		hasher:    hasher,
		extractor: extractor,
		log:       log,
		rdb:       rdb,
		mq:        mqConn,
		blob:      s3,
		queue:     queue,
		workers:   workers,
	}
}

const digestCacheTTL = 12 * time.Hour

func digestCacheKey(digest string) string { return "asset:digest:" + digest }

// Ingest turns a file path into a deduplicated asset record. Idempotent: a
// digest already known returns the existing asset with IsNew=false, and a
// lost insert race resolves the same way by re-reading the winner.
func (s *assetService) Ingest(ctx context.Context, path string) (*IngestResult, error) {
	if path == "" {
		return nil, apperr.Invalidf("file path is empty")
	}

	digest, err := s.hasher.ComputeDigest(path)
	if err != nil {
		return nil, err
	}

	existing, err := s.r.GetByDigest(ctx, digest)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return &IngestResult{AssetID: existing.ID, IsNew: false}, nil
	}

	meta, err := s.extractor.Extract(path)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, err
		}
		// Extraction trouble is recorded on the asset, not fatal.
		meta = media.FallbackMetadata(path, err)
	}

	asset := &model.Asset{
		ID:            uuid.New(),
		Name:          meta.Name,
		FilePath:      meta.FilePath,
		FileType:      meta.FileType,
		SizeB:         meta.SizeB,
		ContentDigest: digest,
		Width:         meta.Width,
		Height:        meta.Height,
		DurationMS:    meta.DurationMS,
	}
	if meta.Extra != nil {
		asset.Meta = datatypes.JSONMap(meta.Extra)
	}

	if err := s.r.Create(ctx, asset); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost the race; the winner's record is authoritative.
			winner, rerr := s.r.GetByDigest(ctx, digest)
			if rerr != nil {
				return nil, rerr
			}
			if winner != nil {
				return &IngestResult{AssetID: winner.ID, IsNew: false}, nil
			}
		}
		return nil, err
	}

	s.cacheDigest(ctx, digest, asset.ID)
	s.archive(ctx, path, digest)
	s.publish(ctx, "asset.ingested", map[string]any{
		"asset_id": asset.ID,
		"digest":   digest,
		"name":     asset.Name,
	})

	return &IngestResult{AssetID: asset.ID, IsNew: true}, nil
}

// BatchIngest fans paths out over a bounded worker pool. Context cancellation
// stops scheduling new paths; in-flight ones finish.
func (s *assetService) BatchIngest(ctx context.Context, paths []string) (*BatchIngestResult, error) {
	result := &BatchIngestResult{
		Total:       len(paths),
		NewAssetIDs: []uuid.UUID{},
		Errors:      []IngestError{},
	}

	var mu sync.Mutex
	g := &errgroup.Group{}
	g.SetLimit(s.workers)

	for _, path := range paths {
		if ctx.Err() != nil {
			break
		}
		p := path
		g.Go(func() error {
			res, err := s.Ingest(ctx, p)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result.Failures++
				result.Errors = append(result.Errors, IngestError{Path: p, Message: err.Error()})
				return nil
			}
			if res.IsNew {
				result.New++
				result.NewAssetIDs = append(result.NewAssetIDs, res.AssetID)
			} else {
				result.Duplicates++
			}
			return nil
		})
	}

	_ = g.Wait()
	return result, nil
}

func (s *assetService) Get(ctx context.Context, id uuid.UUID) (*model.Asset, error) {
	a, err := s.r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, apperr.NotFoundf("asset %s", id)
	}
	return a, nil
}

type UpdateAssetInput struct {
	Name       *string `json:"name"`
	FilePath   *string `json:"file_path"`
	Width      *int    `json:"width"`
	Height     *int    `json:"height"`
	DurationMS *int    `json:"duration_ms"`
	SizeB      *int64  `json:"size_b"`
}

// Update corrects descriptive fields; the content digest is immutable.
func (s *assetService) Update(ctx context.Context, id uuid.UUID, in UpdateAssetInput) (*model.Asset, error) {
	a, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, apperr.Invalidf("asset name is empty")
		}
		a.Name = *in.Name
	}
	if in.FilePath != nil {
		a.FilePath = *in.FilePath
	}
	if in.Width != nil {
		a.Width = in.Width
	}
	if in.Height != nil {
		a.Height = in.Height
	}
	if in.DurationMS != nil {
		a.DurationMS = in.DurationMS
	}
	if in.SizeB != nil {
		a.SizeB = *in.SizeB
	}
	if err := s.r.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *assetService) ExistsByDigest(ctx context.Context, digest string) (bool, error) {
	if digest == "" {
		return false, apperr.Invalidf("digest is empty")
	}

	if s.rdb != nil {
		if _, err := s.rdb.Get(ctx, digestCacheKey(digest)).Result(); err == nil {
			return true, nil
		}
	}

	a, err := s.r.GetByDigest(ctx, digest)
	if err != nil {
		return false, err
	}
	if a == nil {
		return false, nil
	}
	s.cacheDigest(ctx, digest, a.ID)
	return true, nil
}

// GetByDigests answers bulk "which of these do we already have" probes from
// import tooling; unknown digests are simply absent from the result.
func (s *assetService) GetByDigests(ctx context.Context, digests []string) ([]*model.Asset, error) {
	if len(digests) == 0 {
		return []*model.Asset{}, nil
	}
	return s.r.GetByDigests(ctx, digests)
}

func (s *assetService) List(ctx context.Context, page, pageSize int) ([]*model.Asset, error) {
	return s.r.List(ctx, page, pageSize)
}

type FeedOutput struct {
	Items      []*model.Asset `json:"items"`
	NextCursor string         `json:"next_cursor,omitempty"`
}

// Feed pages through live assets by keyset cursor, stable under concurrent
// ingests where offset paging would skip or repeat rows.
func (s *assetService) Feed(ctx context.Context, cursor string, limit int) (*FeedOutput, error) {
	if limit <= 0 {
		limit = 20
	}

	var before time.Time
	var beforeID uuid.UUID
	if cursor != "" {
		var err error
		before, beforeID, err = paging.DecodeCursor(cursor)
		if err != nil {
			return nil, apperr.Invalidf("bad cursor: %v", err)
		}
	}

	items, err := s.r.ListBefore(ctx, before, beforeID, limit)
	if err != nil {
		return nil, err
	}

	out := &FeedOutput{Items: items}
	if len(items) == limit {
		last := items[len(items)-1]
		out.NextCursor = paging.EncodeCursor(last.CreatedAt, last.ID)
	}
	return out, nil
}

func (s *assetService) Count(ctx context.Context) (int64, error) {
	return s.r.Count(ctx)
}

func (s *assetService) SoftDelete(ctx context.Context, id uuid.UUID) error {
	a, err := s.r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if a == nil {
		return apperr.NotFoundf("asset %s", id)
	}
	if err := s.r.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFoundf("asset %s", id)
		}
		return err
	}
	if s.rdb != nil {
		if err := s.rdb.Del(ctx, digestCacheKey(a.ContentDigest)).Err(); err != nil {
			s.log.Sugar().Debugw("evict digest cache", "digest", a.ContentDigest, "err", err)
		}
	}
	return nil
}

// cacheDigest records a digest -> asset id mapping; best effort.
func (s *assetService) cacheDigest(ctx context.Context, digest string, id uuid.UUID) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Set(ctx, digestCacheKey(digest), id.String(), digestCacheTTL).Err(); err != nil {
		s.log.Sugar().Debugw("cache digest", "digest", digest, "err", err)
	}
}

// archive mirrors the file bytes into blob storage; best effort.
func (s *assetService) archive(ctx context.Context, path, digest string) {
	if s.blob == nil {
		return
	}
	key, err := s.blob.ArchiveFile(ctx, path, digest)
	if err != nil {
		s.log.Sugar().Warnw("archive asset", "path", path, "err", err)
		return
	}
	s.log.Sugar().Debugw("archived asset", "path", path, "key", key)
}

func (s *assetService) publish(ctx context.Context, event string, payload map[string]any) {
	publishEvent(ctx, s.mq, s.queue, s.log, event, payload)
}
