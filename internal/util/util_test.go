package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMaskEmail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		email    string
		expected string
	}{
		{name: "regular address", email: "ada@example.com", expected: "a***@example.com"},
		{name: "single character local part", email: "a@x.com", expected: "a***@x.com"},
		{name: "missing at sign", email: "nobody", expected: "***"},
		{name: "empty local part", email: "@x.com", expected: "***"},
		{name: "empty", email: "", expected: "***"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, MaskEmail(tt.email))
		})
	}
}

func TestFormatSize(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "0 B", FormatSize(0))
	assert.Equal(t, "512 B", FormatSize(512))
	assert.Equal(t, "1 KiB", FormatSize(1024))
	assert.Equal(t, "1.5 KiB", FormatSize(1536))
	assert.Equal(t, "4 MiB", FormatSize(4<<20))
	assert.Equal(t, "2048 GiB", FormatSize(2<<40))
}

func TestFormatTTL(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "0s", FormatTTL(0))
	assert.Equal(t, "45s", FormatTTL(45*time.Second))
	assert.Equal(t, "1m", FormatTTL(59*time.Second+500*time.Millisecond))
	assert.Equal(t, "1h30m", FormatTTL(90*time.Minute))
	assert.Equal(t, "24h", FormatTTL(24*time.Hour))
	assert.Equal(t, "1h1s", FormatTTL(time.Hour+time.Second))
}
