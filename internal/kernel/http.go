// Package kernel assembles the HTTP stack: global middleware, the route
// table, and the operational endpoints.
package kernel

import (
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/tillpoint/app/routes"
	"github.com/shashiranjanraj/tillpoint/pkg/metrics"
	"github.com/shashiranjanraj/tillpoint/pkg/middleware"
	"github.com/shashiranjanraj/tillpoint/pkg/reqid"
	"github.com/shashiranjanraj/tillpoint/pkg/router"
	"github.com/shashiranjanraj/tillpoint/pkg/session"
)

// HTTPKernel owns the router and exposes the final http.Handler.
type HTTPKernel struct {
	router *router.Router
}

// NewHTTPKernel builds the middleware stack and mounts every route.
//
// Order matters: metrics wraps everything so recovered panics still count;
// recovery runs before the request logger so a panic is logged once, with
// the request id already in context.
func NewHTTPKernel(db *gorm.DB) *HTTPKernel {
	r := router.New()

	r.Use(
		metrics.Middleware(),
		middleware.Recovery,
		reqid.Middleware(),
		middleware.Logger,
		session.Middleware(session.DefaultOptions()),
		middleware.CORS(middleware.DefaultCORSOptions()),
		middleware.RateLimit(300, time.Minute),
	)

	r.HandleFunc("/metrics", metrics.Handler())
	r.Get("/healthz", "healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok")) //nolint:errcheck
	})

	routes.RegisterAPI(r, db)

	return &HTTPKernel{router: r}
}

func (k *HTTPKernel) Handler() http.Handler {
	return k.router.Handler()
}

// Router exposes the underlying router for route listing.
func (k *HTTPKernel) Router() *router.Router {
	return k.router
}
