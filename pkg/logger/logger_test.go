package logger

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

func readLogs(t *testing.T, dir string) string {
	t.Helper()
	files, err := filepath.Glob(filepath.Join(dir, appName+"-*.log"))
	require.NoError(t, err)
	var all []byte
	for _, f := range files {
		data, err := os.ReadFile(f)
		require.NoError(t, err)
		all = append(all, data...)
	}
	return string(all)
}

func TestCloseDrainsQueue(t *testing.T) {
	dir := t.TempDir()
	l, err := NewLogger(WithOutputDir(dir))
	require.NoError(t, err)

	ctx := context.Background()
	for i := 0; i < 100; i++ {
		l.Info(ctx).WithFields(i).Logs("drain entry %d")
	}
	l.Close()

	logs := readLogs(t, dir)
	require.Contains(t, logs, "drain entry 0")
	require.Contains(t, logs, "drain entry 99")
}

func TestMiddlewareFollowsRotation(t *testing.T) {
	dir := t.TempDir()
	// A zero size limit makes every rotation check open a fresh file.
	l, err := NewLogger(WithOutputDir(dir), WithMaxFileSize(0))
	require.NoError(t, err)
	defer l.Close()

	app := fiber.New()
	app.Use(l.Middleware())
	handler := func(c *fiber.Ctx) error { return c.SendString("ok") }
	app.Get("/before-rotate", handler)
	app.Get("/after-rotate", handler)

	_, err = app.Test(httptest.NewRequest(http.MethodGet, "/before-rotate", nil), -1)
	require.NoError(t, err)

	require.NoError(t, l.Rotate())

	// The mounted middleware must pick up the post-rotation handler, not
	// keep writing to the file that was closed.
	_, err = app.Test(httptest.NewRequest(http.MethodGet, "/after-rotate", nil), -1)
	require.NoError(t, err)

	logs := readLogs(t, dir)
	require.Contains(t, logs, "/before-rotate")
	require.Contains(t, logs, "/after-rotate")
}
