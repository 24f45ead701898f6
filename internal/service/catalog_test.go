package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pageza/smartcanteen/backend/internal/testhelpers"
	"github.com/pageza/smartcanteen/backend/internal/types"
)

type mockObjectStore struct {
	mock.Mock
}

func (m *mockObjectStore) GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	args := m.Called(ctx, params)
	if out := args.Get(0); out != nil {
		return out.(*s3.GetObjectOutput), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockObjectStore) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	args := m.Called(ctx, params)
	if out := args.Get(0); out != nil {
		return out.(*s3.PutObjectOutput), args.Error(1)
	}
	return nil, args.Error(1)
}

func objectBody(s string) *s3.GetObjectOutput {
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(s))}
}

func TestCatalogReturnsItemsInIDOrder(t *testing.T) {
	db := testhelpers.SetupSQLiteDB(t)
	testhelpers.SeedItems(t, db,
		types.FoodItem{ID: 7, Name: "Upma", Calories: 200},
		types.FoodItem{ID: 3, Name: "Dosa", Calories: 180},
	)
	svc := NewCatalogService(db)

	items, err := svc.Catalog(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Dosa", items[0].Name)
	assert.Equal(t, "Upma", items[1].Name)

	item, err := svc.Item(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 200.0, item.Calories)

	_, err = svc.Item(context.Background(), 99)
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestImportUpsertsByID(t *testing.T) {
	svc := NewCatalogService(testhelpers.SetupSQLiteDB(t))
	ctx := context.Background()

	n, err := svc.Import(ctx, []types.FoodItem{
		{ID: 1, Name: "Idli", Price: 40},
		{ID: 2, Name: "Vada", Price: 30},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = svc.Import(ctx, []types.FoodItem{{ID: 2, Name: "Medu Vada", Price: 35, StockQuantity: types.IntPtr(10)}})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	items, err := svc.Catalog(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Medu Vada", items[1].Name)
	assert.Equal(t, 35.0, items[1].Price)
	require.NotNil(t, items[1].StockQuantity)
	assert.Equal(t, 10, *items[1].StockQuantity)
}

func TestValidateCatalog(t *testing.T) {
	tests := []struct {
		name  string
		items []types.FoodItem
		want  string
	}{
		{"missing id", []types.FoodItem{{Name: "Idli"}}, "has no id"},
		{"duplicate id", []types.FoodItem{{ID: 1, Name: "Idli"}, {ID: 1, Name: "Vada"}}, "duplicate id 1"},
		{"blank name", []types.FoodItem{{ID: 1, Name: "  "}}, "has no name"},
		{"negative sodium", []types.FoodItem{{ID: 1, Name: "Idli", Sodium: -1}}, "negative values"},
		{"negative stock", []types.FoodItem{{ID: 1, Name: "Idli", StockQuantity: types.IntPtr(-2)}}, "negative stock"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCatalog(tt.items)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidCatalog)
			assert.Contains(t, err.Error(), tt.want)
		})
	}

	assert.NoError(t, ValidateCatalog(nil))
}

func TestImportFromS3(t *testing.T) {
	svc := NewCatalogService(testhelpers.SetupSQLiteDB(t))
	ctx := context.Background()

	store := new(mockObjectStore)
	store.On("GetObject", ctx, mock.MatchedBy(func(in *s3.GetObjectInput) bool {
		return aws.ToString(in.Bucket) == "menus" && aws.ToString(in.Key) == "canteen.json"
	})).Return(objectBody(`[{"id":1,"name":"Idli","price":40,"sodium":200},{"id":2,"name":"Poha","price":35}]`), nil)

	n, err := svc.ImportFromS3(ctx, store, "menus", "canteen.json")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	store.AssertExpectations(t)

	item, err := svc.Item(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 200.0, item.Sodium)
}

func TestImportFromS3Failures(t *testing.T) {
	ctx := context.Background()

	t.Run("download error", func(t *testing.T) {
		store := new(mockObjectStore)
		store.On("GetObject", ctx, mock.Anything).Return(nil, errors.New("access denied"))

		_, err := NewCatalogService(testhelpers.SetupSQLiteDB(t)).ImportFromS3(ctx, store, "b", "k")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "access denied")
	})

	t.Run("malformed json", func(t *testing.T) {
		store := new(mockObjectStore)
		store.On("GetObject", ctx, mock.Anything).Return(objectBody(`{"id":1}`), nil)

		_, err := NewCatalogService(testhelpers.SetupSQLiteDB(t)).ImportFromS3(ctx, store, "b", "k")
		assert.ErrorIs(t, err, ErrInvalidCatalog)
	})

	t.Run("invalid item", func(t *testing.T) {
		store := new(mockObjectStore)
		store.On("GetObject", ctx, mock.Anything).Return(objectBody(`[{"id":1,"name":""}]`), nil)

		_, err := NewCatalogService(testhelpers.SetupSQLiteDB(t)).ImportFromS3(ctx, store, "b", "k")
		assert.ErrorIs(t, err, ErrInvalidCatalog)
	})
}

func TestExportToS3(t *testing.T) {
	db := testhelpers.SetupSQLiteDB(t)
	testhelpers.SeedItems(t, db, types.FoodItem{ID: 1, Name: "Idli", Price: 40})
	svc := NewCatalogService(db)
	ctx := context.Background()

	var body string
	store := new(mockObjectStore)
	store.On("PutObject", ctx, mock.MatchedBy(func(in *s3.PutObjectInput) bool {
		data, err := io.ReadAll(in.Body)
		if err != nil {
			return false
		}
		if len(data) > 0 {
			body = string(data)
		}
		return aws.ToString(in.Bucket) == "menus" && aws.ToString(in.ContentType) == "application/json"
	})).Return(&s3.PutObjectOutput{}, nil)

	require.NoError(t, svc.ExportToS3(ctx, store, "menus", "export.json"))
	store.AssertExpectations(t)
	assert.Contains(t, body, `"name": "Idli"`)
}

func TestNearestOrdersByNutritionDistance(t *testing.T) {
	db := testhelpers.SetupSQLiteDB(t)
	testhelpers.SeedItems(t, db,
		types.FoodItem{ID: 1, Name: "Reference", Calories: 100, Sodium: 100},
		types.FoodItem{ID: 2, Name: "Ten Away", Calories: 110, Sodium: 100},
		types.FoodItem{ID: 3, Name: "Far", Calories: 500, Sodium: 900},
		types.FoodItem{ID: 4, Name: "Five Away", Calories: 105, Sodium: 100},
	)
	svc := NewCatalogService(db)

	near, err := svc.Nearest(context.Background(), 1, 2)
	require.NoError(t, err)
	require.Len(t, near, 2)
	assert.Equal(t, uint(4), near[0].ID)
	assert.Equal(t, uint(2), near[1].ID)

	_, err = svc.Nearest(context.Background(), 42, 2)
	assert.ErrorIs(t, err, ErrItemNotFound)
}
