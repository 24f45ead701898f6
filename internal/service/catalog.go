package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	pgvector "github.com/pgvector/pgvector-go"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pageza/smartcanteen/backend/internal/logging"
	"github.com/pageza/smartcanteen/backend/internal/models"
	"github.com/pageza/smartcanteen/backend/internal/types"
)

var (
	ErrItemNotFound   = errors.New("menu item not found")
	ErrInvalidCatalog = errors.New("invalid catalog")
)

// maxCatalogBytes bounds the size of an imported catalog object.
const maxCatalogBytes = 8 << 20

// ObjectStore is the subset of the S3 client used for catalog import/export.
type ObjectStore interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// CatalogService reads and maintains the shared food catalog.
type CatalogService struct {
	db     *gorm.DB
	logger zerolog.Logger
}

// Ensure CatalogService implements ICatalogService
var _ ICatalogService = (*CatalogService)(nil)

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db, logger: logging.Component("catalog")}
}

// Catalog returns every item in id order.
func (s *CatalogService) Catalog(ctx context.Context) ([]types.FoodItem, error) {
	var rows []models.FoodItem
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	items := make([]types.FoodItem, 0, len(rows))
	for i := range rows {
		items = append(items, rows[i].ToDomain())
	}
	return items, nil
}

// Item returns a single catalog entry.
func (s *CatalogService) Item(ctx context.Context, id uint) (*types.FoodItem, error) {
	var row models.FoodItem
	if err := s.db.WithContext(ctx).First(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to load menu item: %w", err)
	}
	item := row.ToDomain()
	return &item, nil
}

// Import upserts items by id and returns how many were written.
func (s *CatalogService) Import(ctx context.Context, items []types.FoodItem) (int, error) {
	if err := ValidateCatalog(items); err != nil {
		return 0, err
	}
	if len(items) == 0 {
		return 0, nil
	}

	rows := make([]models.FoodItem, 0, len(items))
	for _, item := range items {
		rows = append(rows, models.FoodItemFromDomain(item))
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(&rows).Error
	if err != nil {
		return 0, fmt.Errorf("failed to import catalog: %w", err)
	}

	s.logger.Info().Int("items", len(rows)).Msg("catalog imported")
	return len(rows), nil
}

// ImportFromS3 loads a JSON array of items from bucket/key and imports it.
func (s *CatalogService) ImportFromS3(ctx context.Context, store ObjectStore, bucket, key string) (int, error) {
	out, err := store.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return 0, fmt.Errorf("failed to download catalog from S3: %w", err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(io.LimitReader(out.Body, maxCatalogBytes+1))
	if err != nil {
		return 0, fmt.Errorf("failed to read catalog object: %w", err)
	}
	if len(data) > maxCatalogBytes {
		return 0, fmt.Errorf("%w: object exceeds %d bytes", ErrInvalidCatalog, maxCatalogBytes)
	}

	var items []types.FoodItem
	if err := json.Unmarshal(data, &items); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}
	s.logger.Info().Str("bucket", bucket).Str("key", key).Int("items", len(items)).Msg("catalog downloaded")
	return s.Import(ctx, items)
}

// ExportToS3 writes the current catalog to bucket/key as JSON.
func (s *CatalogService) ExportToS3(ctx context.Context, store ObjectStore, bucket, key string) error {
	items, err := s.Catalog(ctx)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode catalog: %w", err)
	}
	_, err = store.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("failed to upload catalog to S3: %w", err)
	}
	return nil
}

// Nearest returns up to limit items closest to id in nutrition space,
// excluding id itself.
func (s *CatalogService) Nearest(ctx context.Context, id uint, limit int) ([]types.FoodItem, error) {
	ref, err := s.Item(ctx, id)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 5
	}

	if s.db.Dialector.Name() == "postgres" {
		var rows []models.FoodItem
		err := s.db.WithContext(ctx).
			Where("id <> ?", id).
			Clauses(clause.OrderBy{
				Expression: clause.Expr{SQL: "embedding <-> ?", Vars: []interface{}{pgvector.NewVector(ref.Nutrition())}},
			}).
			Limit(limit).
			Find(&rows).Error
		if err != nil {
			return nil, fmt.Errorf("failed to query nearest items: %w", err)
		}
		out := make([]types.FoodItem, 0, len(rows))
		for i := range rows {
			out = append(out, rows[i].ToDomain())
		}
		return out, nil
	}

	catalog, err := s.Catalog(ctx)
	if err != nil {
		return nil, err
	}
	target := ref.Nutrition()
	candidates := make([]types.FoodItem, 0, len(catalog))
	for _, item := range catalog {
		if item.ID != id {
			candidates = append(candidates, item)
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return distance(candidates[i].Nutrition(), target) < distance(candidates[j].Nutrition(), target)
	})
	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	return candidates, nil
}

func distance(a, b []float32) float64 {
	var sum float64
	for i := range a {
		d := float64(a[i] - b[i])
		sum += d * d
	}
	return math.Sqrt(sum)
}

// ValidateCatalog checks imported items before they reach the database.
func ValidateCatalog(items []types.FoodItem) error {
	seen := make(map[uint]bool, len(items))
	for i, item := range items {
		switch {
		case item.ID == 0:
			return fmt.Errorf("%w: item %d has no id", ErrInvalidCatalog, i)
		case seen[item.ID]:
			return fmt.Errorf("%w: duplicate id %d", ErrInvalidCatalog, item.ID)
		case strings.TrimSpace(item.Name) == "":
			return fmt.Errorf("%w: item %d has no name", ErrInvalidCatalog, item.ID)
		case item.Price < 0 || item.Calories < 0 || item.Sugar < 0 || item.Protein < 0 || item.Sodium < 0 || item.Carbs < 0:
			return fmt.Errorf("%w: item %d has negative values", ErrInvalidCatalog, item.ID)
		case item.StockQuantity != nil && *item.StockQuantity < 0:
			return fmt.Errorf("%w: item %d has negative stock", ErrInvalidCatalog, item.ID)
		}
		seen[item.ID] = true
	}
	return nil
}
