// Package acquire unifies the three ways a resume enters the client — a
// dropped file, a picked file, and a camera capture — into a single validated
// selection with a defined lifecycle.
package acquire

import (
	"context"
	"fmt"
	"sync"

	"github.com/rajanimaurya/internship-recommender/internal/client/camera"
	"github.com/rajanimaurya/internship-recommender/internal/common"
)

// State of the controller.
type State int

const (
	// Idle: nothing selected, no camera session open.
	Idle State = iota
	// CameraOpen: a live capture session is held.
	CameraOpen
	// FileSelected: exactly one validated file is held.
	FileSelected
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case CameraOpen:
		return "camera open"
	case FileSelected:
		return "file selected"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// SelectedFile is the one validated file the user intends to submit.
type SelectedFile struct {
	Name     string
	MimeType string
	Data     []byte
}

// Name given to files synthesized from a camera frame.
const captureFileName = "capture.jpg"

// Controller owns the selection and the camera session. At most one selected
// file and at most one camera session exist at any time. Opening the camera
// while a session is already held force-closes the prior session; a grant
// that arrives after the camera was closed is released and ignored.
type Controller struct {
	device camera.Device

	mu       sync.Mutex
	selected *SelectedFile
	session  camera.Session
	// generation of the camera slot; bumped on every open and close so a
	// stale pending open can tell its grant arrived too late
	gen uint64
}

func New(device camera.Device) *Controller {
	return &Controller{device: device}
}

// State reports the current state. A held selection wins over Idle; an open
// camera session wins over both.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch {
	case c.session != nil:
		return CameraOpen
	case c.selected != nil:
		return FileSelected
	default:
		return Idle
	}
}

// Selected returns the current selection, or common.ErrNoFileSelected.
func (c *Controller) Selected() (*SelectedFile, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.selected == nil {
		return nil, common.ErrNoFileSelected
	}
	return c.selected, nil
}

// Drop accepts a file handed over by drag-and-drop.
func (c *Controller) Drop(name, mimeType string, data []byte) error {
	return c.accept(name, mimeType, data)
}

// Pick accepts a file chosen through the file picker.
func (c *Controller) Pick(name, mimeType string, data []byte) error {
	return c.accept(name, mimeType, data)
}

// accept validates a candidate and installs it as the selection. A rejected
// candidate clears any previously selected file: selection never survives a
// failed attempt.
func (c *Controller) accept(name, mimeType string, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !common.IsAllowedMIME(mimeType) {
		c.selected = nil
		return fmt.Errorf("%q: %w", mimeType, common.ErrUnsupportedFileType)
	}
	c.selected = &SelectedFile{Name: name, MimeType: mimeType, Data: data}
	return nil
}

// OpenCamera acquires a capture session. Denial or absence of a camera
// surfaces as common.ErrMediaAccess and leaves the controller where it was.
// If a session is already open it is force-closed first. If the camera was
// closed while the permission request was pending, the late grant is
// released immediately and reported as a media access failure.
func (c *Controller) OpenCamera(ctx context.Context) error {
	c.mu.Lock()
	if c.session != nil {
		_ = c.session.Close()
		c.session = nil
		c.gen++
	}
	pendingGen := c.gen
	c.mu.Unlock()

	// Open may suspend on a permission prompt; the lock is not held here.
	session, err := c.device.Open(ctx)
	if err != nil {
		return fmt.Errorf("open camera: %w", common.ErrMediaAccess)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gen != pendingGen || c.session != nil {
		// the camera slot moved on while we waited for the grant
		_ = session.Close()
		return fmt.Errorf("open camera: %w", common.ErrMediaAccess)
	}
	c.session = session
	c.gen++
	return nil
}

// Capture snapshots the current frame into a JPEG selection. The camera
// session is released unconditionally, even when frame synthesis or
// validation fails.
func (c *Controller) Capture(ctx context.Context) error {
	c.mu.Lock()
	session := c.session
	c.mu.Unlock()
	if session == nil {
		return fmt.Errorf("capture: %w", common.ErrMediaAccess)
	}

	defer c.CloseCamera()

	frame, err := session.Snapshot(ctx)
	if err != nil {
		return fmt.Errorf("capture frame: %w", err)
	}
	return c.accept(captureFileName, common.MIMEJPEG, frame)
}

// CloseCamera releases the session if one is open. The generation always
// advances so a permission grant still pending at close time is invalidated.
func (c *Controller) CloseCamera() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session != nil {
		_ = c.session.Close()
		c.session = nil
	}
	c.gen++
}

// Clear discards the selection and returns the controller to Idle.
func (c *Controller) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selected = nil
}
