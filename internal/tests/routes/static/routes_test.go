package static_test

import (
	"io"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/lk16/cco/internal/tests"
	"github.com/stretchr/testify/require"
)

func TestStaticFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<h1>cco</h1>"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "board.js"), []byte("// board"), 0o600))

	cfg := tests.NewTestConfig()
	cfg.StaticDir = dir
	app, _ := tests.NewTestApp(cfg)

	testCases := []struct {
		path       string
		wantStatus int
		wantBody   string
	}{
		{"/static/", http.StatusOK, "<h1>cco</h1>"},
		{"/static/board.js", http.StatusOK, "// board"},
		{"/static/missing.js", http.StatusNotFound, ""},
	}

	for _, tt := range testCases {
		t.Run(tt.path, func(t *testing.T) {
			req, err := http.NewRequest(http.MethodGet, tt.path, nil)
			require.NoError(t, err)

			resp, err := app.Test(req)
			require.NoError(t, err)

			defer resp.Body.Close()

			require.Equal(t, tt.wantStatus, resp.StatusCode)
			if tt.wantBody != "" {
				body, err := io.ReadAll(resp.Body)
				require.NoError(t, err)
				require.Equal(t, tt.wantBody, string(body))
			}
		})
	}
}

func TestStaticFilesDisabled(t *testing.T) {
	app, _ := tests.NewTestApp(tests.NewTestConfig())

	req, err := http.NewRequest(http.MethodGet, "/static/index.html", nil)
	require.NoError(t, err)

	resp, err := app.Test(req)
	require.NoError(t, err)

	defer resp.Body.Close()

	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}
