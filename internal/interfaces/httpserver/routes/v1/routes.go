package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/janhq/imagine-api/internal/interfaces/httpserver/handlers"
)

// Routes encapsulates versioned route registration.
type Routes struct {
	handlers *handlers.Provider
}

func NewRoutes(provider *handlers.Provider) *Routes {
	return &Routes{handlers: provider}
}

// Register attaches the generation routes at the root and under /v1.
func (r *Routes) Register(router gin.IRouter, middleware ...gin.HandlerFunc) {
	r.register(router.Group("/", middleware...))
	r.register(router.Group("/v1", middleware...))
}

func (r *Routes) register(group *gin.RouterGroup) {
	h := r.handlers.Imagine
	group.POST("/imagine", h.Imagine)
	group.POST("/variation", h.Variation)
	group.POST("/upscale", h.Upscale)
	group.POST("/simpleimage", h.SimpleImage)
	group.POST("/zoomout", h.ZoomOut)
}
