package tui

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPrompter_RoundTrip(t *testing.T) {
	p := NewPrompter()

	go func() {
		req := <-p.Requests()
		req.Respond("figure 3", true)
	}()

	got, ok := p.PromptDescription(context.Background())
	assert.True(t, ok)
	assert.Equal(t, "figure 3", got)
}

func TestPrompter_ContextCancelWhileWaiting(t *testing.T) {
	p := NewPrompter()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	// Nobody drains the request channel; the capture flow must not hang.
	_, ok := p.PromptDescription(ctx)
	assert.False(t, ok)
}
