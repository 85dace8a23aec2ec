package middleware

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gofiber/fiber/v2"
	fibercors "github.com/gofiber/fiber/v2/middleware/cors"
)

var (
	corsHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", RequestIDHeader}
	corsMethods = []string{"GET", "POST", "OPTIONS"}
)

func allowAll(origins []string) bool {
	return len(origins) == 0 || (len(origins) == 1 && origins[0] == "*")
}

// GinCORS applies the configured allowed origins.
func GinCORS(origins []string) gin.HandlerFunc {
	corsConfig := cors.DefaultConfig()
	if allowAll(origins) {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = origins
	}
	corsConfig.AllowHeaders = corsHeaders
	corsConfig.AllowMethods = corsMethods
	corsConfig.ExposeHeaders = []string{RequestIDHeader}
	return cors.New(corsConfig)
}

// FiberCORS applies the configured allowed origins.
func FiberCORS(origins []string) fiber.Handler {
	allowOrigins := "*"
	if !allowAll(origins) {
		allowOrigins = strings.Join(origins, ",")
	}
	return fibercors.New(fibercors.Config{
		AllowOrigins:  allowOrigins,
		AllowHeaders:  strings.Join(corsHeaders, ", "),
		AllowMethods:  strings.Join(corsMethods, ", "),
		ExposeHeaders: RequestIDHeader,
	})
}
