package tgbotapisfm

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLimiter_PerChatBurst(t *testing.T) {
	l := NewLimiterWithRates(100, 0.001, 2)

	assert.True(t, l.Allow(1))
	assert.True(t, l.Allow(1))
	assert.False(t, l.Allow(1), "third message to the same chat must wait")
	assert.True(t, l.Allow(2), "other chats have their own budget")
}

func TestLimiter_GlobalBudget(t *testing.T) {
	l := NewLimiterWithRates(2, 100, 100)

	assert.True(t, l.Allow(1))
	assert.True(t, l.Allow(2))
	assert.False(t, l.Allow(3))
}

func TestLimiter_WaitHonoursContext(t *testing.T) {
	l := NewLimiterWithRates(100, 0.001, 1)
	assert.True(t, l.Allow(1))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.Error(t, l.Wait(ctx, 1))
}
