package application

import (
	"errors"
	"fmt"

	"github.com/Ngole71/eligibility-checker/internal/domains/eligibility/domain"
	"github.com/Ngole71/eligibility-checker/internal/domains/eligibility/ports"
)

// ErrInvalidInput signals the request was rejected before anything was stored.
var ErrInvalidInput = errors.New("invalid eligibility input")

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := domain.AsValidationError(err); ok {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if errors.Is(err, ports.ErrStorageUnavailable) || errors.Is(err, ports.ErrConstraintViolation) {
		return err
	}
	return fmt.Errorf("%w: %w", ports.ErrStorageUnavailable, err)
}
