package api

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
)

// NewServer creates a new HTTP server with all routes configured
func NewServer(handler *Handler) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		Formatter: func(param gin.LogFormatterParams) string {
			return fmt.Sprintf("%s - [%s] \"%s %s %s %d %s \"%s\" %s\"\n",
				param.ClientIP,
				param.TimeStamp.Format(time.RFC3339),
				param.Method,
				param.Path,
				param.Request.Proto,
				param.StatusCode,
				param.Latency,
				param.Request.UserAgent(),
				param.ErrorMessage,
			)
		},
	}))

	r.Use(gin.Recovery())

	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	setupRoutes(r, handler)

	return r
}

func setupRoutes(r *gin.Engine, handler *Handler) {
	r.GET("/map.geojson", handler.GetMap)

	r.GET("/markers", handler.ListMarkers)
	r.POST("/markers/:id/click", handler.ClickMarker)

	r.GET("/location", handler.GetLocation)
	r.PUT("/location", handler.PutLocation)

	r.GET("/health", handler.GetHealth)

	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"service":     "Tumblr PostMap",
			"version":     handler.version,
			"description": "Map of geotagged Tumblr posts joined by a track in posting order",
			"endpoints": map[string]string{
				"map":      "/map.geojson",
				"markers":  "/markers",
				"click":    "/markers/<id>/click (POST)",
				"location": "/location (GET, PUT)",
				"health":   "/health",
			},
		})
	})

	r.GET("/favicon.ico", func(c *gin.Context) {
		c.Status(204)
	})
}
