// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package browser

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/pdiddy/scholar-digest/pkg/types"
)

func TestWaitError(t *testing.T) {
	live := context.Background()
	done, cancel := context.WithCancel(context.Background())
	cancel()

	tests := []struct {
		name   string
		ctx    context.Context
		err    error
		target error
	}{
		{"deadline becomes timeout", live, context.DeadlineExceeded, ErrTimeout},
		{"wrapped deadline becomes timeout", live, fmt.Errorf("run: %w", context.DeadlineExceeded), ErrTimeout},
		{"caller cancellation wins", done, context.DeadlineExceeded, context.Canceled},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := waitError(tt.ctx, tt.err, "#gsc_a_b", 10*time.Second)
			assert.ErrorIs(t, err, tt.target)
		})
	}
}

func TestWaitErrorPassesThrough(t *testing.T) {
	assert.NoError(t, waitError(context.Background(), nil, "x", time.Second))

	cause := errors.New("node not found")
	err := waitError(context.Background(), cause, "#gsc_oci_title", time.Second)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrTimeout)
	assert.Contains(t, err.Error(), "#gsc_oci_title")
}

func TestWaitErrorMessage(t *testing.T) {
	err := waitError(context.Background(), context.DeadlineExceeded, "#gsc_a_b", 20*time.Second)
	assert.EqualError(t, err, "timed out after 20s waiting for #gsc_a_b")
}

func TestAllocatorOptions(t *testing.T) {
	base := AllocatorOptions(types.BrowserConfig{})
	full := AllocatorOptions(types.BrowserConfig{
		Headless:     true,
		UserAgent:    "scholar-digest/test",
		ProxyServer:  "socks5://127.0.0.1:9050",
		WindowWidth:  800,
		WindowHeight: 600,
	})

	assert.NotEmpty(t, base)
	assert.Len(t, full, len(base)+3)
}
