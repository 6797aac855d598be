package acquire

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rajanimaurya/internship-recommender/internal/client/camera"
	"github.com/rajanimaurya/internship-recommender/internal/common"
)

// fakeDevice hands out fakeSessions and records how many were opened.
type fakeDevice struct {
	mu      sync.Mutex
	opened  []*fakeSession
	openErr error
	// gate, when set, blocks Open until released, simulating a pending
	// permission prompt; entered is closed once Open starts waiting
	gate    chan struct{}
	entered chan struct{}
}

func (d *fakeDevice) Open(ctx context.Context) (camera.Session, error) {
	if d.gate != nil {
		if d.entered != nil {
			close(d.entered)
		}
		select {
		case <-d.gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if d.openErr != nil {
		return nil, d.openErr
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	s := &fakeSession{frame: []byte("jpeg-bytes")}
	d.opened = append(d.opened, s)
	return s, nil
}

type fakeSession struct {
	mu       sync.Mutex
	frame    []byte
	snapErr  error
	closed   bool
	closedCt int
}

func (s *fakeSession) Snapshot(context.Context) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snapErr != nil {
		return nil, s.snapErr
	}
	return s.frame, nil
}

func (s *fakeSession) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.closedCt++
	return nil
}

func TestAccept_AllowedTypes(t *testing.T) {
	sources := map[string]func(c *Controller, name, mime string, data []byte) error{
		"drop": func(c *Controller, name, mime string, data []byte) error { return c.Drop(name, mime, data) },
		"pick": func(c *Controller, name, mime string, data []byte) error { return c.Pick(name, mime, data) },
	}
	allowed := []string{
		common.MIMEPDF, common.MIMEDocx, common.MIMEDoc,
		common.MIMEText, common.MIMEJPEG, common.MIMEPNG,
	}

	for label, acquire := range sources {
		for _, mime := range allowed {
			c := New(&fakeDevice{})
			require.NoError(t, acquire(c, "resume", mime, []byte("payload")), "%s %s", label, mime)
			assert.Equal(t, FileSelected, c.State())

			f, err := c.Selected()
			require.NoError(t, err)
			assert.Equal(t, mime, f.MimeType)
			assert.Equal(t, []byte("payload"), f.Data)
		}
	}
}

func TestAccept_RejectedTypeClearsSelection(t *testing.T) {
	c := New(&fakeDevice{})
	require.NoError(t, c.Drop("resume.pdf", common.MIMEPDF, []byte("pdf")))
	require.Equal(t, FileSelected, c.State())

	err := c.Pick("app.exe", "application/x-msdownload", []byte("MZ"))
	assert.ErrorIs(t, err, common.ErrUnsupportedFileType)
	assert.Equal(t, Idle, c.State())

	_, err = c.Selected()
	assert.ErrorIs(t, err, common.ErrNoFileSelected)
}

func TestAccept_ReplacesAtomically(t *testing.T) {
	c := New(&fakeDevice{})
	require.NoError(t, c.Drop("first.pdf", common.MIMEPDF, []byte("one")))
	require.NoError(t, c.Drop("second.txt", common.MIMEText, []byte("two")))

	f, err := c.Selected()
	require.NoError(t, err)
	assert.Equal(t, "second.txt", f.Name)
	assert.Equal(t, []byte("two"), f.Data)
}

func TestSelected_NothingSelected(t *testing.T) {
	c := New(&fakeDevice{})
	_, err := c.Selected()
	assert.ErrorIs(t, err, common.ErrNoFileSelected)
	assert.Equal(t, Idle, c.State())
}

func TestOpenCamera_Denied(t *testing.T) {
	c := New(camera.Denied{})
	err := c.OpenCamera(context.Background())
	assert.ErrorIs(t, err, common.ErrMediaAccess)
	assert.Equal(t, Idle, c.State())
}

func TestCapture_SynthesizesJPEGAndReleases(t *testing.T) {
	dev := &fakeDevice{}
	c := New(dev)

	require.NoError(t, c.OpenCamera(context.Background()))
	assert.Equal(t, CameraOpen, c.State())

	require.NoError(t, c.Capture(context.Background()))
	assert.Equal(t, FileSelected, c.State())

	f, err := c.Selected()
	require.NoError(t, err)
	assert.Equal(t, "capture.jpg", f.Name)
	assert.Equal(t, common.MIMEJPEG, f.MimeType)
	assert.Equal(t, []byte("jpeg-bytes"), f.Data)

	require.Len(t, dev.opened, 1)
	assert.True(t, dev.opened[0].closed)
}

func TestCapture_ReleasesOnSnapshotFailure(t *testing.T) {
	dev := &fakeDevice{}
	c := New(dev)
	require.NoError(t, c.OpenCamera(context.Background()))
	dev.opened[0].snapErr = errors.New("encoder failure")

	err := c.Capture(context.Background())
	assert.Error(t, err)
	assert.True(t, dev.opened[0].closed)
	assert.NotEqual(t, CameraOpen, c.State())
}

func TestCapture_WithoutSession(t *testing.T) {
	c := New(&fakeDevice{})
	err := c.Capture(context.Background())
	assert.ErrorIs(t, err, common.ErrMediaAccess)
}

func TestOpenCamera_SecondOpenForceClosesFirst(t *testing.T) {
	dev := &fakeDevice{}
	c := New(dev)

	require.NoError(t, c.OpenCamera(context.Background()))
	require.NoError(t, c.OpenCamera(context.Background()))

	require.Len(t, dev.opened, 2)
	assert.True(t, dev.opened[0].closed)
	assert.False(t, dev.opened[1].closed)
	assert.Equal(t, CameraOpen, c.State())
}

func TestOpenCamera_LateGrantIsReleased(t *testing.T) {
	gate := make(chan struct{})
	entered := make(chan struct{})
	dev := &fakeDevice{gate: gate, entered: entered}
	c := New(dev)

	done := make(chan error, 1)
	go func() { done <- c.OpenCamera(context.Background()) }()

	// close the camera while the permission request is still pending
	<-entered
	c.CloseCamera()
	close(gate)

	err := <-done
	assert.ErrorIs(t, err, common.ErrMediaAccess)
	assert.Equal(t, Idle, c.State())
	require.Len(t, dev.opened, 1)
	assert.True(t, dev.opened[0].closed)
}

func TestCloseCamera_NoSessionIsNoop(t *testing.T) {
	c := New(&fakeDevice{})
	c.CloseCamera()
	assert.Equal(t, Idle, c.State())
}

func TestClear(t *testing.T) {
	c := New(&fakeDevice{})
	require.NoError(t, c.Drop("resume.pdf", common.MIMEPDF, []byte("pdf")))
	c.Clear()
	assert.Equal(t, Idle, c.State())
	_, err := c.Selected()
	assert.ErrorIs(t, err, common.ErrNoFileSelected)
}
