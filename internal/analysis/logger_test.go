package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCloseLoggerIsIdempotent(t *testing.T) {
	require.NotNil(t, logger)

	assert.NoError(t, CloseLogger())
	// second close is a no-op, not a double-close error
	assert.NoError(t, CloseLogger())
}
