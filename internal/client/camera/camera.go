// Package camera abstracts the live video-capture resource behind Device and
// Session interfaces so the acquisition controller can treat hardware access,
// permission denial, and frame capture uniformly.
package camera

import (
	"context"
	"errors"

	"github.com/rajanimaurya/internship-recommender/internal/common"
)

// ErrSessionClosed is returned by Snapshot after the session was released.
var ErrSessionClosed = errors.New("camera session closed")

// Device grants access to a capture stream. Open suspends until the platform
// grants or denies access.
type Device interface {
	Open(ctx context.Context) (Session, error)
}

// Session is one live capture stream. Close releases the underlying hardware
// and is safe to call more than once.
type Session interface {
	// Snapshot encodes the current frame as a JPEG payload.
	Snapshot(ctx context.Context) ([]byte, error)
	Close() error
}

// Denied is a Device for platforms without camera capability. Open always
// fails with common.ErrMediaAccess.
type Denied struct{}

func (Denied) Open(context.Context) (Session, error) {
	return nil, common.ErrMediaAccess
}
