package biometric

import (
	"context"
	"errors"
)

// ErrNoCamera means the station has no usable capture device. Presence
// checks treat this as "cannot verify" rather than "user absent".
var ErrNoCamera = errors.New("no camera available")

// Camera is the capture boundary. Capture returns the feature vector of
// one face found in the current frame, or a nil sample when no face is
// visible. Implementations wrap whatever capture stack the deployment
// uses; this repository ships only the disabled variant.
type Camera interface {
	Capture(ctx context.Context) ([]float64, error)
	Release()
}

// DisabledCamera is the stand-in for stations without capture hardware.
// Every capture fails with ErrNoCamera, which routes logins through
// credentials and makes presence checks a no-op.
type DisabledCamera struct{}

func (DisabledCamera) Capture(ctx context.Context) ([]float64, error) {
	return nil, ErrNoCamera
}

func (DisabledCamera) Release() {}
