//go:build !gpu

package main

import (
	"errors"
	"testing"
)

func TestOpenBackend(t *testing.T) {
	tests := []struct {
		name     string
		wantName string
		wantErr  error
	}{
		{"", "software", nil},
		{"software", "software", nil},
		{"gpu", "", errNoGPU},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, closeBackend, err := openBackend(tt.name)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			defer closeBackend()
			if b.Name() != tt.wantName {
				t.Errorf("Name() = %q, want %q", b.Name(), tt.wantName)
			}
		})
	}

	if _, _, err := openBackend("metal"); err == nil {
		t.Error("unknown backend accepted")
	}
}
