package telemetry

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func TestSetup_NoopWhenEndpointEmpty(t *testing.T) {
	shutdown, err := Setup(context.Background(), "gophauth-test", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := shutdown(ctx); err != nil {
		t.Fatalf("noop shutdown should not error: %v", err)
	}
}

func TestSetup_CreatesProviderWhenEndpointSet(t *testing.T) {
	// Non-routable address: nothing is exported because no spans are started.
	shutdown, err := Setup(context.Background(), "gophauth-test", "http://192.0.2.1:4318")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown error: %v", err)
	}
}

type fakeExporter struct {
	shutdownCalls int
}

func (f *fakeExporter) ExportSpans(context.Context, []sdktrace.ReadOnlySpan) error { return nil }
func (f *fakeExporter) Shutdown(context.Context) error {
	f.shutdownCalls++
	return nil
}

func TestSetup_ResourceErrorShutsDownExporter(t *testing.T) {
	origExporter, origResource := newExporter, newResource
	t.Cleanup(func() { newExporter, newResource = origExporter, origResource })

	exp := &fakeExporter{}
	newExporter = func(context.Context, string) (sdktrace.SpanExporter, error) { return exp, nil }
	newResource = func(context.Context, ...resource.Option) (*resource.Resource, error) {
		return nil, errors.New("resource detection failed")
	}

	shutdown, err := Setup(context.Background(), "gophauth-test", "http://192.0.2.1:4318")
	require.Error(t, err)
	assert.Equal(t, 1, exp.shutdownCalls)
	assert.NoError(t, shutdown(context.Background()))
}

func TestSetup_ExporterErrorReturned(t *testing.T) {
	origExporter := newExporter
	t.Cleanup(func() { newExporter = origExporter })

	newExporter = func(context.Context, string) (sdktrace.SpanExporter, error) {
		return nil, errors.New("bad endpoint")
	}

	_, err := Setup(context.Background(), "gophauth-test", "http://192.0.2.1:4318")
	assert.EqualError(t, err, "bad endpoint")
}
