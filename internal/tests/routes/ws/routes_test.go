package ws_test

import (
	"net/http"
	"testing"

	"github.com/lk16/cco/internal/tests"
	"github.com/stretchr/testify/require"
)

func TestWsRequiresUpgrade(t *testing.T) {
	app, _ := tests.NewTestApp(tests.NewTestConfig())

	req, err := http.NewRequest(http.MethodGet, "/ws", nil)
	require.NoError(t, err)

	resp, err := app.Test(req)
	require.NoError(t, err)

	defer resp.Body.Close()

	require.Equal(t, http.StatusUpgradeRequired, resp.StatusCode)
}
