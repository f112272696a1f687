package static

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
)

// SetupRoutes serves the files in dir under /static. Nothing is served when dir is empty.
func SetupRoutes(app *fiber.App, dir string) {
	if dir == "" {
		return
	}

	app.Use("/static", filesystem.New(filesystem.Config{
		Root:   http.Dir(dir),
		Browse: false,
		Index:  "index.html",
	}))
}
