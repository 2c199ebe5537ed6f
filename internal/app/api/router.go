package api

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	eligibilityhttp "github.com/Ngole71/eligibility-checker/internal/domains/eligibility/adapters/http"
	"github.com/Ngole71/eligibility-checker/internal/domains/eligibility/ports"
	platformmetrics "github.com/Ngole71/eligibility-checker/internal/platform/metrics"
	apierrors "github.com/Ngole71/eligibility-checker/internal/shared/errors"
)

// RouteMetrics serves the Prometheus registry.
const RouteMetrics = "/metrics"

// RouterDeps are the collaborators mounted on the HTTP router.
type RouterDeps struct {
	ServiceName string
	Service     ports.Service
	Workflows   ports.WorkflowOrchestrator
	Pinger      ports.Pinger
	Metrics     *platformmetrics.Metrics
	Logger      *slog.Logger
}

// NewRouter builds the gin engine with middleware, eligibility routes, probes and metrics.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()
	router.Use(
		gin.Recovery(),
		eligibilityhttp.RequestID(),
		otelgin.Middleware(deps.ServiceName),
		deps.Metrics.Middleware(),
		eligibilityhttp.AccessLog(deps.Logger),
	)
	router.HandleMethodNotAllowed = true
	router.NoRoute(func(c *gin.Context) {
		apierrors.Respond(c, apierrors.ErrNotFound.WithDetail("No route matches the request."))
	})
	router.NoMethod(func(c *gin.Context) {
		apierrors.Respond(c, apierrors.ProblemDetail{
			Type:   apierrors.TypeBadRequest,
			Title:  "Method Not Allowed",
			Status: 405,
		})
	})

	eligibilityhttp.Register(router,
		eligibilityhttp.NewEligibilityAPI(deps.Service, deps.Workflows),
		eligibilityhttp.NewHealthAPI(deps.Pinger),
	)
	router.GET(RouteMetrics, gin.WrapH(deps.Metrics.Handler()))
	return router
}
