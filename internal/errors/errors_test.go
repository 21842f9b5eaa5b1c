package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorBuilder(t *testing.T) {
	t.Parallel()

	err := Newf("probe failed for %s", "bark_recording_20240101_120000.wav").
		Component("correlation").
		Category(CategoryAudio).
		Context("fallback_seconds", 300.0).
		Build()

	assert.Equal(t, CategoryAudio, err.Category)
	assert.Equal(t, "correlation", err.Component)
	assert.Contains(t, err.Error(), "bark_recording_20240101_120000.wav")
	assert.InEpsilon(t, 300.0, err.GetContext()["fallback_seconds"], 1e-9)
}

func TestCategoryDefaultsToGeneric(t *testing.T) {
	t.Parallel()

	err := New(NewStd("boom")).Build()
	assert.Equal(t, CategoryGeneric, err.Category)
}

func TestIsCategoryMatching(t *testing.T) {
	t.Parallel()

	notFound := NotFoundError("profile %q not found", "night-shift")
	require.Error(t, notFound)

	assert.True(t, IsNotFound(notFound))
	assert.False(t, IsNotFound(ValidationError("start after end")))
	assert.True(t, IsCategory(ValidationError("start after end"), CategoryValidation))
}

func TestTimeFormatErrorNamesInput(t *testing.T) {
	t.Parallel()

	err := TimeFormatError("99:99:99", "minutes and seconds must be <= 59")
	assert.True(t, IsTimeFormat(err))
	assert.Contains(t, err.Error(), "99:99:99")
	assert.Equal(t, "99:99:99", err.GetContext()["input"])
}

func TestUnwrapPreservesCause(t *testing.T) {
	t.Parallel()

	cause := NewStd("disk on fire")
	wrapped := New(cause).Category(CategoryFileIO).Build()

	assert.True(t, Is(wrapped, cause))
	assert.Equal(t, cause, Unwrap(wrapped))
}
