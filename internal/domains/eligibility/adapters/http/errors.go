package http

import (
	"errors"

	"github.com/Ngole71/eligibility-checker/internal/domains/eligibility/domain"
	"github.com/Ngole71/eligibility-checker/internal/domains/eligibility/ports"
	apierrors "github.com/Ngole71/eligibility-checker/internal/shared/errors"
)

// MapError translates eligibility failures into problem details. Storage detail never reaches the client.
func MapError(err error) (apierrors.ProblemDetail, bool) {
	if verr, ok := domain.AsValidationError(err); ok {
		violations := make([]apierrors.FieldViolation, 0, len(verr.Fields))
		for _, f := range verr.Fields {
			violations = append(violations, apierrors.FieldViolation{Field: f.Field, Message: f.Message})
		}
		return apierrors.NewValidationProblem(violations), true
	}
	switch {
	case errors.Is(err, ports.ErrConstraintViolation):
		return apierrors.ErrInternal.WithDetail("The determination could not be recorded."), true
	case errors.Is(err, ports.ErrStorageUnavailable):
		return apierrors.ErrServiceUnavailable.WithDetail("Eligibility storage is temporarily unavailable."), true
	}
	return apierrors.ProblemDetail{}, false
}

// NewResponder builds the problem responder used by every eligibility handler.
func NewResponder() *apierrors.ChainedResponder {
	return apierrors.NewChainedResponder("", MapError)
}
