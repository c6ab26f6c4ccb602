package telemetry

var (
	// ShowcaseServiceConfig is the telemetry configuration for the showcase HTTP service
	ShowcaseServiceConfig = Config{
		ServiceName:    "showcase-service",
		ServiceVersion: "1.0.0",
	}

	// ShowcaseCLIConfig is the telemetry configuration for the demo harness
	ShowcaseCLIConfig = Config{
		ServiceName:    "showcase-cli",
		ServiceVersion: "1.0.0",
	}
)

// WithOTLPEndpoint sets the OTLP endpoint for a config
func (c Config) WithOTLPEndpoint(endpoint string) Config {
	c.OTLPEndpoint = endpoint
	return c
}
