package middleware

import (
	"fmt"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

// Logging middleware that logs route, status code and response time. Websocket
// sessions are logged once, when they end.
func Logging() fiber.Handler {
	return logger.New(logger.Config{
		Format:     "${time} | ${status} | ${latency} | ${method} | ${path} | ${error}\n",
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "Local",
		Output:     os.Stderr,
		CustomTags: map[string]logger.LogFunc{
			"latency": func(output logger.Buffer, _ *fiber.Ctx, data *logger.Data, _ string) (int, error) {
				latency := data.Stop.Sub(data.Start)
				if latency >= time.Second {
					return fmt.Fprintf(output, "%6.1fs ", latency.Seconds())
				}
				return fmt.Fprintf(output, "%6.1fms", float64(latency.Nanoseconds())/float64(time.Millisecond))
			},
		},
	})
}
