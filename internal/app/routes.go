package app

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kegliz/qreduce/internal/server/router"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (a *appServer) routes() []*router.Route {
	return []*router.Route{
		{
			Name:        "healthz",
			Method:      http.MethodGet,
			Pattern:     "/healthz",
			HandlerFunc: a.HealthHandler,
		},
		{
			Name:        "metrics",
			Method:      http.MethodGet,
			Pattern:     "/metrics",
			HandlerFunc: gin.WrapH(promhttp.Handler()),
		},
		{
			Name:        "compile",
			Method:      http.MethodPost,
			Pattern:     "/compile",
			HandlerFunc: a.CompileHandler,
		},
		{
			Name:        "run",
			Method:      http.MethodPost,
			Pattern:     "/run",
			HandlerFunc: a.RunHandler,
		},
	}
}
