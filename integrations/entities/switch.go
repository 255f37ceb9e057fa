package entities

import (
	"context"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/edgehive/motioneye-bridge/integrations/cameras"
	"github.com/edgehive/motioneye-bridge/pkg/motioneye"
)

// SwitchKeys are the camera config flags exposed as toggles.
var SwitchKeys = []string{
	motioneye.KeyMotionDetection,
	motioneye.KeyVideoStreaming,
	motioneye.KeyStillImages,
	motioneye.KeyMovies,
	motioneye.KeyTextOverlay,
	motioneye.KeyUploadEnabled,
}

// Switch exposes one boolean camera config flag. Reads come from the
// coordinator snapshot; writes go through the config read-modify-write cycle
// and then request a refresh so the snapshot catches up.
type Switch struct {
	flagKey  string
	cameraID int
	instance *cameras.Instance
}

func NewSwitch(instance *cameras.Instance, cameraID int, flagKey string) *Switch {
	return &Switch{flagKey: flagKey, cameraID: cameraID, instance: instance}
}

func (s *Switch) Key() string { return s.flagKey }

// IsOn reads the flag from the latest snapshot. An unknown camera reads off.
func (s *Switch) IsOn() bool {
	camera := s.instance.Camera(s.cameraID)
	if camera == nil {
		return false
	}
	return camera.Flag(s.flagKey)
}

// Set writes the flag to the remote camera config. The full current config is
// refetched first so the write does not clobber concurrent edits made in the
// motionEye UI.
func (s *Switch) Set(ctx context.Context, on bool) error {
	camera, err := s.instance.Client.GetCamera(ctx, s.cameraID)
	if err != nil {
		return errors.Wrapf(err, "failed to fetch camera %d config", s.cameraID)
	}
	camera.SetFlag(s.flagKey, on)
	if err := s.instance.Client.SetCamera(ctx, s.cameraID, camera); err != nil {
		return errors.Wrapf(err, "failed to write camera %d config", s.cameraID)
	}
	log.Infof("Set %s=%t on camera %d", s.flagKey, on, s.cameraID)
	s.instance.Coordinator.RequestRefresh()
	return nil
}
