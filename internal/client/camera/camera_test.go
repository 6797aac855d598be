package camera

import (
	"bytes"
	"context"
	"image/jpeg"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rajanimaurya/internship-recommender/internal/common"
)

func TestDenied(t *testing.T) {
	_, err := Denied{}.Open(context.Background())
	assert.ErrorIs(t, err, common.ErrMediaAccess)
}

func TestTestPattern_SnapshotIsJPEG(t *testing.T) {
	sess, err := TestPattern{Width: 32, Height: 24}.Open(context.Background())
	require.NoError(t, err)
	defer sess.Close()

	frame, err := sess.Snapshot(context.Background())
	require.NoError(t, err)

	img, err := jpeg.Decode(bytes.NewReader(frame))
	require.NoError(t, err)
	assert.Equal(t, 32, img.Bounds().Dx())
	assert.Equal(t, 24, img.Bounds().Dy())
}

func TestTestPattern_SnapshotAfterClose(t *testing.T) {
	sess, err := TestPattern{}.Open(context.Background())
	require.NoError(t, err)
	require.NoError(t, sess.Close())
	require.NoError(t, sess.Close())

	_, err = sess.Snapshot(context.Background())
	assert.ErrorIs(t, err, ErrSessionClosed)
}

func TestTestPattern_OpenHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := TestPattern{}.Open(ctx)
	assert.Error(t, err)
}
