// Package otel wires OpenTelemetry tracing into govproof commands. Tracing
// is off unless the --otel flag enables it.
package otel

import "fmt"

// OTLP exporter protocols.
const (
	ProtocolHTTP = "otlphttp"
	ProtocolGRPC = "otlpgrpc"
)

// Config holds exporter settings gathered from the CLI flags.
type Config struct {
	Enabled     bool
	Endpoint    string // "http://localhost:4318" for HTTP, "localhost:4317" for gRPC
	Protocol    string // ProtocolHTTP or ProtocolGRPC
	Insecure    bool   // skip TLS on the exporter connection
	ServiceName string
	SampleRatio float64 // 0..1
}

// DefaultConfig disables tracing and samples everything once enabled.
func DefaultConfig() Config {
	return Config{
		Protocol:    ProtocolHTTP,
		ServiceName: "govproof",
		SampleRatio: 1.0,
	}
}

// Validate rejects settings Init cannot honor. A disabled config is always
// valid.
func (c Config) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.Protocol != ProtocolHTTP && c.Protocol != ProtocolGRPC {
		return fmt.Errorf("otel: unknown protocol %q (want %q or %q)", c.Protocol, ProtocolHTTP, ProtocolGRPC)
	}
	if c.SampleRatio < 0 || c.SampleRatio > 1 {
		return fmt.Errorf("otel: sample-ratio %v outside [0, 1]", c.SampleRatio)
	}
	return nil
}
