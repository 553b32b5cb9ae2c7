package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/yonatanalfandary-ops/Cyber-final-project-2026/internal/protocol"
)

var capturePoses = []string{"straight at the camera", "left", "right", "up", "down"}

// captureGallery records one feature vector per pose. A multi-angle
// gallery keeps presence checks stable when the user is not facing the
// camera head-on.
func (a *App) captureGallery(ctx context.Context) (protocol.Gallery, error) {
	gallery := make(protocol.Gallery, 0, len(capturePoses))

	for _, pose := range capturePoses {
		prompt := fmt.Sprintf("Look %s and press Enter.", pose)
		if _, err := getSimpleText(a.reader, prompt, a.out); err != nil {
			return nil, err
		}

		sample, err := a.camera.Capture(ctx)
		if err != nil {
			return nil, err
		}
		if sample == nil {
			return nil, errors.New("no face detected, adjust your position and retry")
		}
		gallery = append(gallery, sample)
	}

	return gallery, nil
}
