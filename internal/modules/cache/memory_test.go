package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDeadURLCache(t *testing.T) {
	m := DeadURLCacheManager()

	reason, err := m.GetValue("https://example.com/missing.png")
	require.NoError(t, err)
	require.Empty(t, reason)

	require.NoError(t, m.SetWithExpiration("https://example.com/gone.png", "status code: 404", time.Minute))
	reason, err = m.GetValue("https://example.com/gone.png")
	require.NoError(t, err)
	require.Equal(t, "status code: 404", reason)
}
