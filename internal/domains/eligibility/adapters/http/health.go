package http

import (
	"context"
	nethttp "net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Ngole71/eligibility-checker/internal/domains/eligibility/ports"
	apierrors "github.com/Ngole71/eligibility-checker/internal/shared/errors"
)

const readinessTimeout = 2 * time.Second

// HealthAPI serves liveness and readiness probes.
type HealthAPI struct {
	pinger ports.Pinger
}

// NewHealthAPI creates probes; a nil pinger means the process is always ready.
func NewHealthAPI(pinger ports.Pinger) *HealthAPI {
	return &HealthAPI{pinger: pinger}
}

// Get /healthz
func (h *HealthAPI) Liveness(c *gin.Context) {
	c.JSON(nethttp.StatusOK, gin.H{"status": "ok"})
}

// Get /readyz
func (h *HealthAPI) Readiness(c *gin.Context) {
	if h.pinger != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), readinessTimeout)
		defer cancel()
		if err := h.pinger.Ping(ctx); err != nil {
			apierrors.Respond(c, apierrors.ErrServiceUnavailable.WithDetail("Eligibility storage is not reachable."))
			return
		}
	}
	c.JSON(nethttp.StatusOK, gin.H{"status": "ready"})
}
