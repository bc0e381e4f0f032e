package s3

import (
	"context"
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beetracked/fleet-ops/internal/domain/types"
)

func TestParseDataURL(t *testing.T) {
	payload := base64.StdEncoding.EncodeToString([]byte("fake-image-bytes"))

	body, contentType, ext, err := ParseDataURL("data:image/jpeg;base64," + payload)
	require.NoError(t, err)
	assert.Equal(t, []byte("fake-image-bytes"), body)
	assert.Equal(t, "image/jpeg", contentType)
	assert.Equal(t, "jpg", ext)

	_, contentType, ext, err = ParseDataURL("data:image/png;base64," + payload)
	require.NoError(t, err)
	assert.Equal(t, "image/png", contentType)
	assert.Equal(t, "png", ext)

	_, _, _, err = ParseDataURL("")
	assert.ErrorIs(t, err, types.ErrInvalidImage)

	_, _, _, err = ParseDataURL("data:text/plain;base64," + payload)
	assert.ErrorIs(t, err, types.ErrUnsupportedFormat)

	_, _, _, err = ParseDataURL("not a data url")
	assert.ErrorIs(t, err, types.ErrUnsupportedFormat)
}

func TestSanitizeUsername(t *testing.T) {
	assert.Equal(t, "juan_perez", SanitizeUsername("juan perez"))
	assert.Equal(t, "mar_a", SanitizeUsername("maría"))
	assert.Equal(t, "biker", SanitizeUsername(""))
	assert.Len(t, SanitizeUsername(strings.Repeat("a", 100)), 64)
}

func TestPutDeadline(t *testing.T) {
	ctx, cancel := putCtx(context.Background())
	defer cancel()

	deadline, ok := ctx.Deadline()
	require.True(t, ok)
	assert.WithinDuration(t, time.Now().Add(putTimeout), deadline, time.Second)
}

func TestUploaderNotConfigured(t *testing.T) {
	u, err := New(context.Background(), Config{})
	require.NoError(t, err)
	assert.False(t, u.Configured())

	payload := base64.StdEncoding.EncodeToString([]byte("x"))
	_, err = u.UploadEcoDeliveryPhoto(context.Background(), "data:image/png;base64,"+payload, "ana")
	assert.ErrorIs(t, err, types.ErrS3NotConfigured)
}
