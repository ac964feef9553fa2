package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestBackoffIsCapped(t *testing.T) {
	b := backoff{maxRetries: 5, delay: 500 * time.Millisecond, maxDelay: 5 * time.Second}

	require.Equal(t, 500*time.Millisecond, b.nextDelay(0))
	require.Equal(t, time.Second, b.nextDelay(1))
	require.Equal(t, 4*time.Second, b.nextDelay(3))
	require.Equal(t, 5*time.Second, b.nextDelay(4))
	require.Equal(t, 5*time.Second, b.nextDelay(10))
}
