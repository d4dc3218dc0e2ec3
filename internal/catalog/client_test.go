package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Pools(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/get_pools", r.URL.Path)
		w.Write([]byte(`[
			{"pool_id":"0xp1","pool_name":"SUI_USDC","base_asset_id":"0xsui","quote_asset_id":"0xusdc","base_asset_decimals":9,"quote_asset_decimals":6},
			{"pool_id":"","pool_name":"BROKEN","base_asset_id":"0xa","quote_asset_id":"0xb","base_asset_decimals":9,"quote_asset_decimals":6},
			{"pool_id":"0xp2","pool_name":"DEEP_SUI","base_asset_id":"0xdeep","quote_asset_id":"0xsui","base_asset_decimals":6,"quote_asset_decimals":-2}
		]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil)

	pools, err := c.Pools(context.Background())
	require.NoError(t, err)

	// Malformed entries (empty id, negative decimals) are dropped.
	require.Len(t, pools, 1)
	assert.Equal(t, "0xp1", pools[0].PoolID)
	assert.Equal(t, 9, pools[0].BaseAssetDecimals)
}

func TestClient_PoolsRejectsNonArray(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error":"maintenance"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil)

	_, err := c.Pools(context.Background())
	assert.Error(t, err)
}

func TestClient_FindPool(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"pool_id":"0xp1","pool_name":"SUI_USDC","base_asset_id":"0xsui","quote_asset_id":"0xusdc","base_asset_decimals":9,"quote_asset_decimals":6}]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil)

	p, err := c.FindPool(context.Background(), "0xp1")
	require.NoError(t, err)
	assert.Equal(t, "SUI_USDC", p.PoolName)

	_, err = c.FindPool(context.Background(), "0xmissing")
	assert.Error(t, err)
}
