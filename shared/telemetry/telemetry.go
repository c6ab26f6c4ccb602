package telemetry

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	metricSDK "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	traceSDK "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	"go.opentelemetry.io/otel/trace"
)

const (
	unknownService = "unknown"
	shutdownGrace  = 5 * time.Second
	pushInterval   = 30 * time.Second
)

// Config names the process being observed. OTLPEndpoint is optional; without
// it spans stay in process and metrics are only scraped through Prometheus.
type Config struct {
	ServiceName    string
	ServiceVersion string
	OTLPEndpoint   string
}

// Telemetry bundles the tracer and meter a process reports through.
type Telemetry struct {
	service string
	tracer  trace.Tracer
	meter   metric.Meter
}

// NewTelemetry binds config to whatever providers are installed globally
func NewTelemetry(config Config) *Telemetry {
	return NewTelemetryWithProviders(config, otel.GetTracerProvider(), otel.GetMeterProvider())
}

// NewTelemetryWithProviders binds config to the given providers
func NewTelemetryWithProviders(config Config, tp trace.TracerProvider, mp metric.MeterProvider) *Telemetry {
	return &Telemetry{
		service: config.ServiceName,
		tracer:  tp.Tracer(config.ServiceName),
		meter:   mp.Meter(config.ServiceName),
	}
}

// InitTelemetry builds the SDK providers for config, installs them as the
// global ones and returns a function that flushes and stops them.
func InitTelemetry(ctx context.Context, config Config) (*Telemetry, func(), error) {
	res, err := resource.New(ctx, resource.WithAttributes(
		semconv.ServiceNameKey.String(config.ServiceName),
		semconv.ServiceVersionKey.String(config.ServiceVersion),
	))
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to describe service resource")
	}

	tp, err := newTracerProvider(ctx, res, config.OTLPEndpoint)
	if err != nil {
		return nil, nil, err
	}

	mp, err := newMeterProvider(ctx, res, config.OTLPEndpoint)
	if err != nil {
		stop(tp.Shutdown)
		return nil, nil, err
	}

	otel.SetTracerProvider(tp)
	otel.SetMeterProvider(mp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	shutdown := func() {
		stop(tp.Shutdown)
		stop(mp.Shutdown)
	}
	return NewTelemetryWithProviders(config, tp, mp), shutdown, nil
}

func newTracerProvider(ctx context.Context, res *resource.Resource, endpoint string) (*traceSDK.TracerProvider, error) {
	opts := []traceSDK.TracerProviderOption{
		traceSDK.WithResource(res),
		traceSDK.WithSampler(traceSDK.AlwaysSample()),
	}
	if endpoint != "" {
		exporter, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpoint(endpoint), otlptracehttp.WithInsecure())
		if err != nil {
			return nil, errors.Wrap(err, "failed to create OTLP trace exporter")
		}
		opts = append(opts, traceSDK.WithBatcher(exporter))
	}
	return traceSDK.NewTracerProvider(opts...), nil
}

func newMeterProvider(ctx context.Context, res *resource.Resource, endpoint string) (*metricSDK.MeterProvider, error) {
	scrape, err := prometheus.New()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create prometheus exporter")
	}

	opts := []metricSDK.Option{metricSDK.WithResource(res), metricSDK.WithReader(scrape)}
	if endpoint != "" {
		push, err := otlpmetrichttp.New(ctx, otlpmetrichttp.WithEndpoint(endpoint), otlpmetrichttp.WithInsecure())
		if err != nil {
			return nil, errors.Wrap(err, "failed to create OTLP metric exporter")
		}
		opts = append(opts, metricSDK.WithReader(
			metricSDK.NewPeriodicReader(push, metricSDK.WithInterval(pushInterval)),
		))
	}
	return metricSDK.NewMeterProvider(opts...), nil
}

func stop(shutdown func(context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	_ = shutdown(ctx)
}

// StartSpan opens a span on this instance's tracer
func (t *Telemetry) StartSpan(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, name, opts...)
}

// GetMeter returns the meter instruments are created on
func (t *Telemetry) GetMeter() metric.Meter {
	return t.meter
}

// GetServiceName returns the service name every measurement is tagged with
func (t *Telemetry) GetServiceName() string {
	return t.service
}

type telemetryKey struct{}

// WithTelemetry stores tel in ctx for the package level helpers below
func WithTelemetry(ctx context.Context, tel *Telemetry) context.Context {
	return context.WithValue(ctx, telemetryKey{}, tel)
}

// FromContext returns the Telemetry stored in ctx, or nil
func FromContext(ctx context.Context) *Telemetry {
	tel, _ := ctx.Value(telemetryKey{}).(*Telemetry)
	return tel
}

// orGlobal falls back to the global providers so that code running outside
// an instrumented request still records somewhere.
func orGlobal(ctx context.Context) *Telemetry {
	if tel := FromContext(ctx); tel != nil {
		return tel
	}
	return NewTelemetry(Config{ServiceName: unknownService})
}

// StartSpan opens a span with the Telemetry carried by ctx
func StartSpan(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	return orGlobal(ctx).StartSpan(ctx, name, opts...)
}

// GetMeter returns the meter carried by ctx
func GetMeter(ctx context.Context) metric.Meter {
	return orGlobal(ctx).GetMeter()
}

// GetServiceName returns the service name carried by ctx
func GetServiceName(ctx context.Context) string {
	return orGlobal(ctx).GetServiceName()
}

func measurement(ctx context.Context, attrs []attribute.KeyValue) metric.MeasurementOption {
	return metric.WithAttributes(append(attrs, attribute.String("service", GetServiceName(ctx)))...)
}

// RecordCounter adds value to the named counter. Instrument errors are dropped.
func RecordCounter(ctx context.Context, name, description string, value int64, attrs ...attribute.KeyValue) {
	counter, err := GetMeter(ctx).Int64Counter(name, metric.WithDescription(description))
	if err != nil {
		return
	}
	counter.Add(ctx, value, measurement(ctx, attrs))
}

// RecordHistogram records value on the named histogram. Instrument errors are dropped.
func RecordHistogram(ctx context.Context, name, description string, value float64, attrs ...attribute.KeyValue) {
	histogram, err := GetMeter(ctx).Float64Histogram(name, metric.WithDescription(description))
	if err != nil {
		return
	}
	histogram.Record(ctx, value, measurement(ctx, attrs))
}
