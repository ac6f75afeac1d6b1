package service_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/campusbay/backend/internal/assets"
	"github.com/campusbay/backend/internal/domain"
	"github.com/campusbay/backend/internal/repository/postgres"
	"github.com/campusbay/backend/internal/service"
	"github.com/campusbay/backend/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProductService(t *testing.T) (*service.ProductService, *testutil.TestDB, *assets.Manager) {
	t.Helper()

	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	assetManager, err := assets.NewManager(t.TempDir())
	require.NoError(t, err)
	return service.NewProductService(repos.Product, assetManager), testDB, assetManager
}

func pngUpload(name string, payload []byte) *assets.Upload {
	return &assets.Upload{
		File:        bytes.NewReader(payload),
		Filename:    name,
		ContentType: "image/png",
		Size:        int64(len(payload)),
	}
}

func TestProductService_Create(t *testing.T) {
	productService, testDB, _ := newProductService(t)
	ctx := context.Background()

	owner, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

	tests := []struct {
		name       string
		input      service.ProductInput
		wantFields []string
	}{
		{
			name: "valid listing",
			input: service.ProductInput{
				Title:      "Kalkulus jilid 1",
				Price:      45000,
				PriceValid: true,
				Category:   "Buku",
				Campus:     owner.Campus,
			},
		},
		{
			name: "missing title and category",
			input: service.ProductInput{
				Price:      45000,
				PriceValid: true,
				Campus:     owner.Campus,
			},
			wantFields: []string{"title", "category"},
		},
		{
			name: "unparseable price",
			input: service.ProductInput{
				Title:    "Kalkulus jilid 1",
				Category: "Buku",
				Campus:   owner.Campus,
			},
			wantFields: []string{"price"},
		},
		{
			name: "negative price",
			input: service.ProductInput{
				Title:      "Kalkulus jilid 1",
				Price:      -1,
				PriceValid: true,
				Category:   "Buku",
				Campus:     owner.Campus,
			},
			wantFields: []string{"price"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			product, err := productService.Create(ctx, owner.ID, tt.input, nil)

			if tt.wantFields != nil {
				var validation *domain.ValidationError
				require.ErrorAs(t, err, &validation)
				assert.ElementsMatch(t, tt.wantFields, validation.Fields)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, owner.ID, product.UserID)
			assert.False(t, product.IsSold)
			assert.Nil(t, product.ImageURL)
		})
	}
}

func TestProductService_CreateStoresImage(t *testing.T) {
	productService, testDB, assetManager := newProductService(t)
	ctx := context.Background()

	owner, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

	product, err := productService.Create(ctx, owner.ID, service.ProductInput{
		Title:      "Sepeda lipat",
		Price:      900000,
		PriceValid: true,
		Category:   "Olahraga",
		Campus:     owner.Campus,
	}, pngUpload("sepeda.png", []byte("fake png bytes")))
	require.NoError(t, err)

	require.NotNil(t, product.ImageURL)
	_, err = os.Stat(filepath.Join(assetManager.Dir(), filepath.Base(*product.ImageURL)))
	assert.NoError(t, err, "accepted image must exist on disk")
}

func TestProductService_CreateRejectedImageWritesNoRow(t *testing.T) {
	productService, testDB, _ := newProductService(t)
	ctx := context.Background()

	owner, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

	bad := &assets.Upload{
		File:        bytes.NewReader([]byte("not an image")),
		Filename:    "malware.exe",
		ContentType: "application/octet-stream",
		Size:        12,
	}
	_, err := productService.Create(ctx, owner.ID, service.ProductInput{
		Title:      "Sepeda lipat",
		Price:      900000,
		PriceValid: true,
		Category:   "Olahraga",
		Campus:     owner.Campus,
	}, bad)
	require.ErrorIs(t, err, assets.ErrUnsupportedMedia)

	listings, err := productService.ListMine(ctx, owner.ID)
	require.NoError(t, err)
	assert.Empty(t, listings, "a rejected upload must not leave a product behind")
}

func TestProductService_ListFilters(t *testing.T) {
	productService, testDB, _ := newProductService(t)
	ctx := context.Background()

	seller, _ := testutil.NewUserBuilder().WithCampus("Universitas Indonesia").Build(t, testDB.DB)

	testutil.NewProductBuilder(seller).
		WithTitle("Kalkulus jilid 1").
		WithCategory("Buku").
		WithCampus("Universitas Indonesia").
		Build(t, testDB.DB)
	testutil.NewProductBuilder(seller).
		WithTitle("Sepeda lipat").
		WithCategory("Olahraga").
		WithCampus("Universitas Indonesia").
		Build(t, testDB.DB)
	testutil.NewProductBuilder(seller).
		WithTitle("Kamus sudah laku").
		WithCategory("Buku").
		Sold().
		Build(t, testDB.DB)

	tests := []struct {
		name       string
		filter     domain.ProductFilter
		wantTitles []string
	}{
		{
			name:       "no filter excludes sold",
			filter:     domain.ProductFilter{},
			wantTitles: []string{"Kalkulus jilid 1", "Sepeda lipat"},
		},
		{
			name:       "wildcard category means no filter",
			filter:     domain.ProductFilter{Category: domain.CategoryAll},
			wantTitles: []string{"Kalkulus jilid 1", "Sepeda lipat"},
		},
		{
			name:       "category filter",
			filter:     domain.ProductFilter{Category: "Buku"},
			wantTitles: []string{"Kalkulus jilid 1"},
		},
		{
			name:       "case-insensitive title search",
			filter:     domain.ProductFilter{Search: "kalkulus"},
			wantTitles: []string{"Kalkulus jilid 1"},
		},
		{
			name:       "no matches",
			filter:     domain.ProductFilter{Search: "laptop"},
			wantTitles: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			products, err := productService.List(ctx, tt.filter)
			require.NoError(t, err)

			titles := make([]string, 0, len(products))
			for _, p := range products {
				titles = append(titles, p.Title)
			}
			assert.ElementsMatch(t, tt.wantTitles, titles)
		})
	}
}

func TestProductService_OwnershipOrdering(t *testing.T) {
	productService, testDB, _ := newProductService(t)
	ctx := context.Background()

	owner, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	stranger, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	product := testutil.NewProductBuilder(owner).Build(t, testDB.DB)

	input := service.ProductInput{
		Title: "Hijacked", Price: 1, PriceValid: true, Category: "Buku",
	}

	t.Run("missing product reported before ownership", func(t *testing.T) {
		_, err := productService.Update(ctx, stranger.ID, uuid.New(), input, nil)
		assert.ErrorIs(t, err, service.ErrProductNotFound)
	})

	t.Run("update by non-owner", func(t *testing.T) {
		_, err := productService.Update(ctx, stranger.ID, product.ID, input, nil)
		assert.ErrorIs(t, err, service.ErrNotOwner)

		got, getErr := productService.Get(ctx, product.ID)
		require.NoError(t, getErr)
		assert.Equal(t, product.Title, got.Title, "failed update must leave the record untouched")
	})

	t.Run("delete by non-owner", func(t *testing.T) {
		err := productService.Delete(ctx, stranger.ID, product.ID)
		assert.ErrorIs(t, err, service.ErrNotOwner)

		_, getErr := productService.Get(ctx, product.ID)
		assert.NoError(t, getErr)
	})

	t.Run("mark sold by non-owner", func(t *testing.T) {
		err := productService.MarkSold(ctx, stranger.ID, product.ID)
		assert.ErrorIs(t, err, service.ErrNotOwner)

		got, getErr := productService.Get(ctx, product.ID)
		require.NoError(t, getErr)
		assert.False(t, got.IsSold)
	})
}

func TestProductService_UpdateReplacesImage(t *testing.T) {
	productService, testDB, assetManager := newProductService(t)
	ctx := context.Background()

	owner, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

	product, err := productService.Create(ctx, owner.ID, service.ProductInput{
		Title: "Rak buku", Price: 120000, PriceValid: true, Category: "Perabotan", Campus: owner.Campus,
	}, pngUpload("old.png", []byte("old image")))
	require.NoError(t, err)
	oldRef := *product.ImageURL

	updated, err := productService.Update(ctx, owner.ID, product.ID, service.ProductInput{
		Title: "Rak buku kayu", Price: 100000, PriceValid: true, Category: "Perabotan",
	}, pngUpload("new.png", []byte("new image")))
	require.NoError(t, err)

	require.NotNil(t, updated.ImageURL)
	assert.NotEqual(t, oldRef, *updated.ImageURL)

	_, err = os.Stat(filepath.Join(assetManager.Dir(), filepath.Base(*updated.ImageURL)))
	assert.NoError(t, err, "replacement image must exist on disk")
	_, err = os.Stat(filepath.Join(assetManager.Dir(), filepath.Base(oldRef)))
	assert.True(t, os.IsNotExist(err), "replaced image must be removed from disk")
}

func TestProductService_UpdateWithoutImageKeepsOld(t *testing.T) {
	productService, testDB, assetManager := newProductService(t)
	ctx := context.Background()

	owner, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

	product, err := productService.Create(ctx, owner.ID, service.ProductInput{
		Title: "Rak buku", Price: 120000, PriceValid: true, Category: "Perabotan", Campus: owner.Campus,
	}, pngUpload("keep.png", []byte("image")))
	require.NoError(t, err)
	oldRef := *product.ImageURL

	updated, err := productService.Update(ctx, owner.ID, product.ID, service.ProductInput{
		Title: "Rak buku kayu", Price: 100000, PriceValid: true, Category: "Perabotan",
	}, nil)
	require.NoError(t, err)

	require.NotNil(t, updated.ImageURL)
	assert.Equal(t, oldRef, *updated.ImageURL)
	_, err = os.Stat(filepath.Join(assetManager.Dir(), filepath.Base(oldRef)))
	assert.NoError(t, err)
}

func TestProductService_DeleteRemovesImage(t *testing.T) {
	productService, testDB, assetManager := newProductService(t)
	ctx := context.Background()

	owner, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

	product, err := productService.Create(ctx, owner.ID, service.ProductInput{
		Title: "Meja lipat", Price: 75000, PriceValid: true, Category: "Perabotan", Campus: owner.Campus,
	}, pngUpload("meja.png", []byte("image")))
	require.NoError(t, err)
	ref := *product.ImageURL

	require.NoError(t, productService.Delete(ctx, owner.ID, product.ID))

	_, err = productService.Get(ctx, product.ID)
	assert.ErrorIs(t, err, service.ErrProductNotFound)
	_, err = os.Stat(filepath.Join(assetManager.Dir(), filepath.Base(ref)))
	assert.True(t, os.IsNotExist(err))
}

func TestProductService_MarkSoldHidesFromListings(t *testing.T) {
	productService, testDB, _ := newProductService(t)
	ctx := context.Background()

	owner, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	product := testutil.NewProductBuilder(owner).Build(t, testDB.DB)

	require.NoError(t, productService.MarkSold(ctx, owner.ID, product.ID))

	listings, err := productService.List(ctx, domain.ProductFilter{})
	require.NoError(t, err)
	assert.Empty(t, listings)

	// The owner still sees the sold listing, and the detail view reports it.
	mine, err := productService.ListMine(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.True(t, mine[0].IsSold)

	got, err := productService.Get(ctx, product.ID)
	require.NoError(t, err)
	assert.True(t, got.IsSold)
}
