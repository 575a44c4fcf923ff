package telemetry

import (
	"context"
	"testing"
)

func TestSetup(t *testing.T) {
	tests := []struct {
		name     string
		endpoint string
		enabled  bool
	}{
		{name: "No endpoint", endpoint: "", enabled: true},
		{name: "Disabled", endpoint: "http://localhost:4318", enabled: false},
		// Non-routable address so nothing is exported.
		{name: "Enabled", endpoint: "http://192.0.2.1:4318", enabled: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shutdown, err := Setup(context.Background(), "worldcup-test", tt.endpoint, tt.enabled)
			if err != nil {
				t.Fatalf("Setup() error = %v", err)
			}
			if err := shutdown(context.Background()); err != nil {
				t.Fatalf("shutdown error = %v", err)
			}
		})
	}
}
