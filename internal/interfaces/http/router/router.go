package router

import (
	"github.com/gin-gonic/gin"
)

// RouteRegistrar is implemented by handlers that mount routes on a group
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Router collects resource handlers and mounts them under /api/<version>
type Router struct {
	engine  *gin.Engine
	version string
	pending []RouteRegistrar
}

// RouterOption configures a Router
type RouterOption func(*Router)

// WithAPIVersion overrides the default "v1" path segment
func WithAPIVersion(version string) RouterOption {
	return func(r *Router) { r.version = version }
}

// NewRouter wraps a gin engine
func NewRouter(engine *gin.Engine, opts ...RouterOption) *Router {
	r := &Router{engine: engine, version: "v1"}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register queues a handler for mounting. Chainable.
func (r *Router) Register(reg RouteRegistrar) *Router {
	r.pending = append(r.pending, reg)
	return r
}

// Setup mounts every queued handler on the versioned group
func (r *Router) Setup() {
	group := r.engine.Group("/api/" + r.version)
	for _, reg := range r.pending {
		reg.RegisterRoutes(group)
	}
}
