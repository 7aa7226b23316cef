package config

import (
	"github.com/satriadwi28/kabarproject/internal/observability"

	"github.com/knadh/koanf/v2"
)

func LoadObservabilityConfig(config *koanf.Koanf) observability.Config {
	return observability.Config{
		OtelEndpoint: config.String("OTEL_EXPORTER_OTLP_ENDPOINT"),
		ServiceName:  config.String("OTEL_SERVICE_NAME"),
		Environment:  config.String("ENVIRONMENT"),
		OtelHeaders:  config.String("OTEL_EXPORTER_OTLP_HEADERS"),
	}
}
