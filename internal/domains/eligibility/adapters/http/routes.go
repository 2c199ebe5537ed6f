package http

import "github.com/gin-gonic/gin"

// Routes lists the endpoints served by this adapter.
const (
	RouteCheckEligibility = "/api/v1/eligibility"
	RouteStatistics       = "/api/v1/statistics"
	RouteLiveness         = "/healthz"
	RouteReadiness        = "/readyz"
)

// Register mounts the eligibility and probe routes.
func Register(r gin.IRouter, api *EligibilityAPI, health *HealthAPI) {
	r.POST(RouteCheckEligibility, api.CheckEligibility)
	r.GET(RouteStatistics, api.GetStatistics)
	r.GET(RouteLiveness, health.Liveness)
	r.GET(RouteReadiness, health.Readiness)
}
