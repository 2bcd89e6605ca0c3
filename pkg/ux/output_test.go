// Copyright (C) 2025 Planvet Authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package ux

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"
)

// Helper to capture stdout
func captureStdout(f func()) string {
	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	f()

	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	io.Copy(&buf, r)
	return buf.String()
}

// Helper to capture stderr
func captureStderr(f func()) string {
	old := os.Stderr
	r, w, _ := os.Pipe()
	os.Stderr = w

	f()

	w.Close()
	os.Stderr = old

	var buf bytes.Buffer
	io.Copy(&buf, r)
	return buf.String()
}

func TestIcon_Render_NonEmpty(t *testing.T) {
	icons := []Icon{IconSuccess, IconWarning, IconError, IconInfo, IconArrow, IconBullet}
	for _, icon := range icons {
		if icon.Render() == "" {
			t.Errorf("expected non-empty render for icon %q", string(icon))
		}
	}
}

func TestSuccess_PrintsText(t *testing.T) {
	out := captureStdout(func() {
		Success("analysis complete")
	})
	if !strings.Contains(out, "analysis complete") {
		t.Errorf("expected output to contain message, got %q", out)
	}
}

func TestError_WritesToStderr(t *testing.T) {
	out := captureStderr(func() {
		Error("analysis failed")
	})
	if !strings.Contains(out, "analysis failed") {
		t.Errorf("expected stderr to contain message, got %q", out)
	}
}

func TestBox_ContainsTitleAndContent(t *testing.T) {
	out := captureStdout(func() {
		Box("Critical Path", "A -> B -> C")
	})
	if !strings.Contains(out, "Critical Path") {
		t.Errorf("expected box to contain title, got %q", out)
	}
	if !strings.Contains(out, "A -> B -> C") {
		t.Errorf("expected box to contain content, got %q", out)
	}
}

func TestSeverityIcon(t *testing.T) {
	tests := []struct {
		severity string
		want     Icon
	}{
		{"error", IconError},
		{"warning", IconWarning},
		{"info", IconInfo},
		{"unknown", IconBullet},
	}
	for _, tt := range tests {
		t.Run(tt.severity, func(t *testing.T) {
			if got := SeverityIcon(tt.severity); got != tt.want {
				t.Errorf("SeverityIcon(%q) = %q, want %q", tt.severity, got, tt.want)
			}
		})
	}
}
