package handlers_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/campusbay/backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddToCartEndpoint(t *testing.T) {
	ts := testutil.NewTestServer(t)

	buyer, _ := testutil.NewUserBuilder().Build(t, ts.DB.DB)
	seller, _ := testutil.NewUserBuilder().Build(t, ts.DB.DB)
	product := testutil.NewProductBuilder(seller).Build(t, ts.DB.DB)

	t.Run("add without a session", func(t *testing.T) {
		// The cart API trusts the caller-supplied user id and needs no cookie.
		resp := postJSON(t, ts.APIURL("/cart"), map[string]string{
			"user_id":    buyer.ID.String(),
			"product_id": product.ID.String(),
		}, nil)
		testutil.AssertStatusCode(t, resp, http.StatusOK)

		var body struct {
			Success bool   `json:"success"`
			ID      string `json:"id"`
		}
		testutil.AssertJSONResponse(t, resp, &body)
		assert.True(t, body.Success)
		assert.NotEmpty(t, body.ID)
	})

	t.Run("same product twice makes two entries", func(t *testing.T) {
		resp := postJSON(t, ts.APIURL("/cart"), map[string]string{
			"user_id":    buyer.ID.String(),
			"product_id": product.ID.String(),
		}, nil)
		testutil.AssertStatusCode(t, resp, http.StatusOK)

		list := getWithCookie(t, ts.APIURL("/cart/"+buyer.ID.String()), nil)
		var lines []struct {
			Title string `json:"title"`
		}
		testutil.AssertJSONResponse(t, list, &lines)
		assert.Len(t, lines, 2)
	})

	t.Run("malformed ids", func(t *testing.T) {
		resp := postJSON(t, ts.APIURL("/cart"), map[string]string{
			"user_id":    "not-a-uuid",
			"product_id": product.ID.String(),
		}, nil)
		testutil.AssertStatusCode(t, resp, http.StatusBadRequest)
	})
}

func TestListCartEndpoint(t *testing.T) {
	ts := testutil.NewTestServer(t)

	buyer, _ := testutil.NewUserBuilder().Build(t, ts.DB.DB)
	seller, _ := testutil.NewUserBuilder().Build(t, ts.DB.DB)
	kept := testutil.NewProductBuilder(seller).
		WithTitle("Sepeda lipat").
		WithPrice(900000).
		Build(t, ts.DB.DB)
	doomed := testutil.NewProductBuilder(seller).
		WithTitle("Meja belajar").
		Build(t, ts.DB.DB)

	ctx := context.Background()
	_, err := ts.Services.Cart.Add(ctx, buyer.ID, kept.ID)
	require.NoError(t, err)
	_, err = ts.Services.Cart.Add(ctx, buyer.ID, doomed.ID)
	require.NoError(t, err)

	// Deleting the listing orphans its cart entry.
	require.NoError(t, ts.Services.Product.Delete(ctx, seller.ID, doomed.ID))

	resp := getWithCookie(t, ts.APIURL("/cart/"+buyer.ID.String()), nil)
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	var lines []struct {
		Title    string `json:"title"`
		Price    int64  `json:"price"`
		Quantity int    `json:"quantity"`
	}
	testutil.AssertJSONResponse(t, resp, &lines)
	require.Len(t, lines, 1, "entries for deleted products are dropped")
	assert.Equal(t, "Sepeda lipat", lines[0].Title)
	assert.Equal(t, int64(900000), lines[0].Price)
	assert.Equal(t, 1, lines[0].Quantity)
}

func TestRemoveFromCartEndpoint(t *testing.T) {
	ts := testutil.NewTestServer(t)

	buyer, _ := testutil.NewUserBuilder().Build(t, ts.DB.DB)
	seller, _ := testutil.NewUserBuilder().Build(t, ts.DB.DB)
	product := testutil.NewProductBuilder(seller).Build(t, ts.DB.DB)

	entry, err := ts.Services.Cart.Add(context.Background(), buyer.ID, product.ID)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodDelete, ts.APIURL("/cart/"+entry.ID.String()), nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	list := getWithCookie(t, ts.APIURL("/cart/"+buyer.ID.String()), nil)
	var lines []struct {
		ID string `json:"id"`
	}
	testutil.AssertJSONResponse(t, list, &lines)
	assert.Empty(t, lines)
}
