package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/paulmach/orb/geojson"

	"github.com/lysyi3m/tumblr-postmap/app/mapview"
)

func NewHandler(l Doer, session *mapview.Session, renderer MapRenderer,
	location Navigator, version string) *Handler {
	return &Handler{
		loop:     l,
		session:  session,
		renderer: renderer,
		location: location,
		version:  version,
	}
}

func (h *Handler) GetHealth(c *gin.Context) {
	loaded, loadErr := h.session.Loaded()

	health := map[string]interface{}{
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
		"loaded":    loaded,
	}
	if loadErr != nil {
		health["error"] = loadErr.Error()
	}

	var markers int
	if err := h.loop.Do(c.Request.Context(), func() {
		markers = len(h.session.State().Entities)
	}); err == nil {
		health["markers"] = markers
	}

	c.JSON(http.StatusOK, health)
}

func (h *Handler) GetMap(c *gin.Context) {
	var fc *geojson.FeatureCollection
	var data []byte
	var marshalErr error

	err := h.loop.Do(c.Request.Context(), func() {
		fc = h.renderer.FeatureCollection(h.session.State())
		data, marshalErr = fc.MarshalJSON()
	})
	if err != nil {
		slog.Error("Session loop unavailable", "operation", "get_map", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Session unavailable"})
		return
	}
	if marshalErr != nil {
		slog.Error("GeoJSON encoding error", "error", marshalErr)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to encode map"})
		return
	}

	c.Header("X-Map-Features", strconv.Itoa(len(fc.Features)))
	c.Data(http.StatusOK, "application/geo+json; charset=utf-8", data)
}

func (h *Handler) ListMarkers(c *gin.Context) {
	var markers []MarkerInfo

	err := h.loop.Do(c.Request.Context(), func() {
		entities := h.session.State().Entities
		markers = make([]MarkerInfo, 0, len(entities))
		for _, entity := range entities {
			info := MarkerInfo{
				Key:       entity.Key,
				PostID:    entity.Post.PostID,
				Title:     entity.Post.PlainTitle,
				Summary:   entity.Post.PlainBody,
				Icon:      entity.Post.Icon,
				Latitude:  entity.Post.Geo.Lat(),
				Longitude: entity.Post.Geo.Lon(),
				Open:      entity.Info.IsOpen(),
			}
			if !entity.Post.Date.IsZero() {
				info.Date = entity.Post.Date.In(time.Local).Format(time.RFC3339)
			}
			markers = append(markers, info)
		}
	})
	if err != nil {
		slog.Error("Session loop unavailable", "operation", "list_markers", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Session unavailable"})
		return
	}

	c.JSON(http.StatusOK, map[string]interface{}{
		"markers": markers,
		"total":   len(markers),
	})
}

func (h *Handler) ClickMarker(c *gin.Context) {
	key := markerKey(c.Param("id"))
	if key == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing marker id parameter"})
		return
	}

	var found bool
	var open int
	err := h.loop.Do(c.Request.Context(), func() {
		found = h.session.Click(key)
		open = h.session.State().OpenCount()
	})
	if err != nil {
		slog.Error("Session loop unavailable", "operation", "click_marker", "key", key, "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Session unavailable"})
		return
	}

	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Marker not found"})
		return
	}

	slog.Debug("Marker clicked", "key", key)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"key":     key,
		"open":    open,
	})
}

func (h *Handler) GetLocation(c *gin.Context) {
	c.JSON(http.StatusOK, LocationRequest{Hash: h.location.Hash()})
}

func (h *Handler) PutLocation(c *gin.Context) {
	var req LocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	h.location.SetHash(req.Hash)
	slog.Debug("Location changed", "hash", h.location.Hash())

	c.JSON(http.StatusOK, LocationRequest{Hash: h.location.Hash()})
}

// markerKey accepts "p42", "#p42" or "42".
func markerKey(id string) string {
	id = strings.TrimPrefix(strings.TrimSpace(id), "#")
	if id == "" {
		return ""
	}
	if !strings.HasPrefix(id, "p") {
		id = "p" + id
	}
	return "#" + id
}
