// Package http exposes the eligibility service over gin.
package http

import (
	"context"
	nethttp "net/http"

	"github.com/gin-gonic/gin"

	"github.com/Ngole71/eligibility-checker/internal/domains/eligibility/adapters/http/mapper"
	"github.com/Ngole71/eligibility-checker/internal/domains/eligibility/domain"
	"github.com/Ngole71/eligibility-checker/internal/domains/eligibility/ports"
	"github.com/Ngole71/eligibility-checker/internal/domains/eligibility/validation"
	apierrors "github.com/Ngole71/eligibility-checker/internal/shared/errors"
)

// EligibilityAPI wires HTTP transport with the eligibility service and workflows.
type EligibilityAPI struct {
	service   ports.Service
	workflows ports.WorkflowOrchestrator
	responder *apierrors.ChainedResponder
}

// NewEligibilityAPI creates handlers backed by the service. workflows may be nil.
func NewEligibilityAPI(service ports.Service, workflows ports.WorkflowOrchestrator) *EligibilityAPI {
	return &EligibilityAPI{service: service, workflows: workflows, responder: NewResponder()}
}

// Post /api/v1/eligibility
// Determine and record eligibility for one person
func (api *EligibilityAPI) CheckEligibility(c *gin.Context) {
	var payload mapper.EligibilityRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		api.responder.BadRequest(c, "Request body must be a JSON object with string fields firstName, lastName and dateOfBirth.")
		return
	}
	record, err := api.check(c.Request.Context(), mapper.ToInput(payload))
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(nethttp.StatusCreated, mapper.FromRecord(record))
}

func (api *EligibilityAPI) check(ctx context.Context, input validation.Input) (*domain.DeterminationRecord, error) {
	if api.workflows != nil {
		return api.workflows.CheckEligibility(ctx, input)
	}
	return api.service.CheckEligibility(ctx, input)
}

// Get /api/v1/statistics
// Aggregate statistics over every recorded determination
func (api *EligibilityAPI) GetStatistics(c *gin.Context) {
	snap, err := api.service.GetStatistics(c.Request.Context())
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(nethttp.StatusOK, mapper.FromSnapshot(snap))
}
