package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/Dawar13/firefly-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) *Repository {
	t.Helper()

	repo, err := New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	return repo
}

func seedProduct(t *testing.T, repo *Repository, name string, price float64, category string) *domain.Product {
	t.Helper()

	product := &domain.Product{Name: name, FireflyPrice: price, Category: category}
	require.NoError(t, repo.CreateProduct(context.Background(), product))
	return product
}

func TestCreateAndGetProduct(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	created := seedProduct(t, repo, "Aurora Ring", 39000, "rings")
	require.NotEmpty(t, created.ID)

	got, err := repo.GetProduct(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Aurora Ring", got.Name)
	assert.Equal(t, 39000.0, got.FireflyPrice)
	assert.Empty(t, got.Competitors)
}

func TestGetProduct_NotFound(t *testing.T) {
	repo := newTestRepo(t)

	product, err := repo.GetProduct(context.Background(), "missing")

	assert.Nil(t, product)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestListProducts_Filters(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	seedProduct(t, repo, "Budget Band", 12000, "rings")
	seedProduct(t, repo, "Aurora Ring", 39000, "rings")
	seedProduct(t, repo, "Celeste Pendant", 85000, "pendants")

	min := 20000.0
	products, err := repo.ListProducts(ctx, domain.ProductFilter{MinPrice: &min})
	require.NoError(t, err)
	require.Len(t, products, 2)

	max := 50000.0
	products, err = repo.ListProducts(ctx, domain.ProductFilter{MinPrice: &min, MaxPrice: &max})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Aurora Ring", products[0].Name)

	products, err = repo.ListProducts(ctx, domain.ProductFilter{Category: "pendants"})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Celeste Pendant", products[0].Name)
}

func TestUpsertCompetitorProduct(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	product := seedProduct(t, repo, "Aurora Ring", 39000, "rings")

	listing := &domain.CompetitorListing{
		Offer: domain.Offer{
			Name:         "Aurora Solitaire",
			Price:        41000,
			URL:          "https://x.example.com/p/1",
			CompetitorID: "truecarat",
		},
		IsAvailable: true,
	}
	require.NoError(t, repo.UpsertCompetitorProduct(ctx, product.ID, listing))

	// Same competitor URL again: the row is updated, not duplicated
	listing.Price = 39500
	require.NoError(t, repo.UpsertCompetitorProduct(ctx, product.ID, listing))

	got, err := repo.GetProduct(ctx, product.ID)
	require.NoError(t, err)
	require.Len(t, got.Competitors, 1)
	assert.Equal(t, 39500.0, got.Competitors[0].Price)
	assert.Equal(t, "truecarat", got.Competitors[0].CompetitorName)
}

func TestRefreshTargetsAndApplyUpdates(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	product := seedProduct(t, repo, "Aurora Ring", 39000, "rings")

	for _, competitor := range []string{"truecarat", "emori"} {
		listing := &domain.CompetitorListing{
			Offer: domain.Offer{
				Name:         "Aurora " + competitor,
				Price:        40000,
				URL:          "https://" + competitor + ".example.com/p/1",
				CompetitorID: competitor,
			},
			IsAvailable: true,
		}
		require.NoError(t, repo.UpsertCompetitorProduct(ctx, product.ID, listing))
	}

	targets, err := repo.RefreshTargets(ctx, product.ID)
	require.NoError(t, err)
	require.Len(t, targets, 2)
	assert.Equal(t, "emori", targets[0].CompetitorID)
	assert.Equal(t, "https://emori.example.com/p/1", targets[0].URL)

	checkedAt := time.Now().UTC()
	err = repo.ApplyRefreshUpdates(ctx, product.ID, []domain.RefreshUpdate{
		{CompetitorID: "emori", URL: "https://emori.example.com/p/1", Price: 37500, IsAvailable: true, CheckedAt: checkedAt},
		{CompetitorID: "truecarat", URL: "https://truecarat.example.com/p/1", Price: 0, IsAvailable: false, CheckedAt: checkedAt},
	})
	require.NoError(t, err)

	got, err := repo.GetProduct(ctx, product.ID)
	require.NoError(t, err)
	require.Len(t, got.Competitors, 2)

	byName := map[string]domain.CompetitorProduct{}
	for _, c := range got.Competitors {
		byName[c.CompetitorName] = c
	}
	assert.Equal(t, 37500.0, byName["emori"].Price)
	assert.True(t, byName["emori"].IsAvailable)
	assert.Equal(t, 0.0, byName["truecarat"].Price)
	assert.False(t, byName["truecarat"].IsAvailable)
}

func TestApplyRefreshUpdates_SameCompetitorTwoURLs(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	product := seedProduct(t, repo, "Aurora Ring", 39000, "rings")

	for _, path := range []string{"/p/a", "/p/b"} {
		listing := &domain.CompetitorListing{
			Offer: domain.Offer{
				Name:         "Aurora " + path,
				Price:        10000,
				URL:          "https://emori.example.com" + path,
				CompetitorID: "emori",
			},
			IsAvailable: true,
		}
		require.NoError(t, repo.UpsertCompetitorProduct(ctx, product.ID, listing))
	}

	checkedAt := time.Now().UTC()
	err := repo.ApplyRefreshUpdates(ctx, product.ID, []domain.RefreshUpdate{
		{CompetitorID: "emori", URL: "https://emori.example.com/p/a", Price: 1000, IsAvailable: true, CheckedAt: checkedAt},
		{CompetitorID: "emori", URL: "https://emori.example.com/p/b", Price: 2000, IsAvailable: true, CheckedAt: checkedAt},
	})
	require.NoError(t, err)

	got, err := repo.GetProduct(ctx, product.ID)
	require.NoError(t, err)
	require.Len(t, got.Competitors, 2)

	// Each listing keeps its own price; an update must never bleed into
	// the competitor's other rows
	byURL := map[string]float64{}
	for _, c := range got.Competitors {
		byURL[c.URL] = c.Price
	}
	assert.Equal(t, 1000.0, byURL["https://emori.example.com/p/a"])
	assert.Equal(t, 2000.0, byURL["https://emori.example.com/p/b"])
}
