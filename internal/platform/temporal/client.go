// Package temporal dials the Temporal cluster shared by the API and the worker.
package temporal

import (
	"errors"
	"log/slog"
	"os"

	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"

	platformobservability "github.com/Ngole71/eligibility-checker/internal/platform/observability"
)

// ErrDisabled is returned by Dial when Temporal is switched off by configuration.
var ErrDisabled = errors.New("temporal disabled via TEMPORAL_DISABLED")

// DialOptions locates the cluster.
type DialOptions struct {
	Address   string
	Namespace string
	Disabled  bool
	// TracerName names the tracer attached to the client interceptor.
	TracerName string
}

// Dial connects a Temporal client with slog logging and OpenTelemetry tracing.
func Dial(opts DialOptions, instruments *platformobservability.Instruments) (client.Client, error) {
	if opts.Disabled {
		return nil, ErrDisabled
	}
	address := opts.Address
	if address == "" {
		address = client.DefaultHostPort
	}
	namespace := opts.Namespace
	if namespace == "" {
		namespace = client.DefaultNamespace
	}
	tracerOptions := temporalotel.TracerOptions{}
	if instruments != nil && opts.TracerName != "" {
		tracerOptions.Tracer = instruments.Tracer(opts.TracerName)
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		return nil, err
	}
	options := client.Options{
		HostPort:  address,
		Namespace: namespace,
		Logger:    workerlog.NewStructuredLogger(effectiveLogger(instruments)),
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}

func effectiveLogger(instruments *platformobservability.Instruments) *slog.Logger {
	if instruments != nil && instruments.Logger != nil {
		return instruments.Logger
	}
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}
