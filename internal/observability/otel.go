package observability

import (
	"context"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.27.0"

	"github.com/yungbote/studydeck-backend/internal/logger"
)

type OtelConfig struct {
	ServiceName string
	Environment string
	Version     string
}

var (
	otelOnce     sync.Once
	otelShutdown func(context.Context) error
)

// InitOTel sets up tracing when OTEL_ENABLED is on. It never fails the
// process: exporter problems degrade to a no-op shutdown with a warning.
func InitOTel(ctx context.Context, log *logger.Logger, cfg OtelConfig) func(context.Context) error {
	otelOnce.Do(func() {
		otelShutdown = func(context.Context) error { return nil }
		if !otelEnabled() {
			return
		}
		serviceName := cfg.ServiceName
		if serviceName == "" {
			serviceName = "studydeck"
		}
		res, err := resource.New(ctx,
			resource.WithAttributes(
				semconv.ServiceNameKey.String(serviceName),
				attribute.String("deployment.environment", cfg.Environment),
				semconv.ServiceVersionKey.String(cfg.Version),
			),
		)
		if err != nil {
			log.Warn("Failed to build otel resource", "error", err.Error())
			return
		}
		exporter := buildTraceExporter(ctx, log)
		opts := []sdktrace.TracerProviderOption{
			sdktrace.WithResource(res),
			sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(otelSampleRatio()))),
		}
		if exporter != nil {
			opts = append(opts, sdktrace.WithBatcher(exporter, sdktrace.WithBatchTimeout(5*time.Second)))
		}
		tp := sdktrace.NewTracerProvider(opts...)
		otel.SetTracerProvider(tp)
		otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{},
			propagation.Baggage{},
		))
		otelShutdown = tp.Shutdown
		log.Info("OTel tracing enabled", "service", serviceName)
	})
	return otelShutdown
}

func buildTraceExporter(ctx context.Context, log *logger.Logger) sdktrace.SpanExporter {
	if endpoint := otelEndpoint(); endpoint != "" {
		opts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(endpoint)}
		if otelInsecure() {
			opts = append(opts, otlptracehttp.WithInsecure())
		}
		exporter, err := otlptracehttp.New(ctx, opts...)
		if err != nil {
			log.Warn("Failed to create OTLP exporter", "error", err.Error())
			return nil
		}
		return exporter
	}
	exporter, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
	if err != nil {
		log.Warn("Failed to create stdout exporter", "error", err.Error())
		return nil
	}
	log.Warn("OTEL_EXPORTER_OTLP_ENDPOINT not set, tracing to stdout")
	return exporter
}

func otelEnabled() bool {
	v := strings.ToLower(os.Getenv("OTEL_ENABLED"))
	return v == "1" || v == "true" || v == "yes"
}

func otelSampleRatio() float64 {
	raw := os.Getenv("OTEL_SAMPLE_RATIO")
	if raw == "" {
		return 0.1
	}
	ratio, err := strconv.ParseFloat(raw, 64)
	if err != nil || ratio < 0 {
		return 0.1
	}
	if ratio > 1 {
		return 1
	}
	return ratio
}

func otelEndpoint() string {
	return os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
}

func otelInsecure() bool {
	v := strings.ToLower(os.Getenv("OTEL_EXPORTER_OTLP_INSECURE"))
	return v == "1" || v == "true" || v == "yes"
}
