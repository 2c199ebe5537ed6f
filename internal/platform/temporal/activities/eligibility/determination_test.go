package eligibility

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/testsuite"

	"github.com/Ngole71/eligibility-checker/internal/domains/eligibility/adapters/memory"
	"github.com/Ngole71/eligibility-checker/internal/domains/eligibility/application"
	"github.com/Ngole71/eligibility-checker/internal/domains/eligibility/domain"
	"github.com/Ngole71/eligibility-checker/internal/domains/eligibility/ports"
	"github.com/Ngole71/eligibility-checker/internal/domains/eligibility/validation"
)

func TestRecordDetermination_StoresRecord(t *testing.T) {
	var ts testsuite.WorkflowTestSuite
	env := ts.NewTestActivityEnvironment()
	acts := NewActivities(application.NewService(memory.NewStore()))
	env.RegisterActivity(acts.RecordDetermination)

	val, err := env.ExecuteActivity(acts.RecordDetermination, validation.Input{
		FirstName: "Grace", LastName: "Hopper", DateOfBirth: "1980-12-09",
	})
	require.NoError(t, err)
	var record domain.DeterminationRecord
	require.NoError(t, val.Get(&record))
	assert.Equal(t, int64(1), record.ID)
	assert.True(t, record.Eligible)
}

func TestRecordDetermination_NotInitialized(t *testing.T) {
	var ts testsuite.WorkflowTestSuite
	env := ts.NewTestActivityEnvironment()
	acts := NewActivities(nil)
	env.RegisterActivity(acts.RecordDetermination)

	_, err := env.ExecuteActivity(acts.RecordDetermination, validation.Input{})
	require.Error(t, err)
	var appErr *temporal.ApplicationError
	require.True(t, errors.As(err, &appErr))
	assert.True(t, appErr.NonRetryable())
}

func TestClassify(t *testing.T) {
	verr := domain.NewValidationError([]domain.FieldError{{Field: "lastName", Rule: "required"}}, nil)
	assert.Equal(t, ErrTypeInvalidInput, classify(fmt.Errorf("%w: %w", application.ErrInvalidInput, verr)))
	assert.Equal(t, ErrTypeConstraintViolation, classify(fmt.Errorf("%w: age", ports.ErrConstraintViolation)))
	assert.Equal(t, ErrTypeStorageUnavailable, classify(ports.ErrStorageUnavailable))
	assert.Equal(t, ErrTypeStorageUnavailable, classify(errors.New("boom")))
	assert.Nil(t, detailsOf(errors.New("boom")))
	assert.Len(t, detailsOf(verr), 1)
}

type levelLogger struct {
	mu     sync.Mutex
	levels map[string][]string
}

func (l *levelLogger) record(level, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.levels == nil {
		l.levels = map[string][]string{}
	}
	l.levels[level] = append(l.levels[level], msg)
}

func (l *levelLogger) messages(level string) []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.levels[level]...)
}

func (l *levelLogger) Debug(msg string, _ ...interface{}) { l.record("debug", msg) }
func (l *levelLogger) Info(msg string, _ ...interface{})  { l.record("info", msg) }
func (l *levelLogger) Warn(msg string, _ ...interface{})  { l.record("warn", msg) }
func (l *levelLogger) Error(msg string, _ ...interface{}) { l.record("error", msg) }

func TestRecordDetermination_RejectedInputIsNotLoggedAsError(t *testing.T) {
	var ts testsuite.WorkflowTestSuite
	logs := &levelLogger{}
	ts.SetLogger(logs)
	env := ts.NewTestActivityEnvironment()
	acts := NewActivities(application.NewService(memory.NewStore()))
	env.RegisterActivity(acts.RecordDetermination)

	_, err := env.ExecuteActivity(acts.RecordDetermination, validation.Input{LastName: "Hopper", DateOfBirth: "1980-12-09"})
	require.Error(t, err)
	assert.True(t, IsInvalidInput(err))
	assert.NotContains(t, logs.messages("error"), "RecordDetermination activity failed")
	assert.Contains(t, logs.messages("info"), "RecordDetermination activity rejected input")
}

func TestIsInvalidInput(t *testing.T) {
	assert.True(t, IsInvalidInput(temporal.NewNonRetryableApplicationError("bad", ErrTypeInvalidInput, nil)))
	assert.False(t, IsInvalidInput(temporal.NewNonRetryableApplicationError("down", ErrTypeStorageUnavailable, nil)))
	assert.False(t, IsInvalidInput(errors.New("boom")))
}
