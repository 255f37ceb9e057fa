package entities

import (
	"context"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/edgehive/motioneye-bridge/integrations/cameras"
	"github.com/edgehive/motioneye-bridge/pkg/motioneye"
)

// TextOverlay describes a change to the text rendered onto a camera's video.
// LeftText/RightText select the overlay mode per side; the custom fields
// carry the string shown when the mode is custom-text. Empty fields are left
// untouched on the camera.
type TextOverlay struct {
	LeftText        string `json:"left_text,omitempty"`
	RightText       string `json:"right_text,omitempty"`
	CustomLeftText  string `json:"custom_left_text,omitempty"`
	CustomRightText string `json:"custom_right_text,omitempty"`
}

func validOverlayMode(mode string) bool {
	switch mode {
	case motioneye.TextOverlayTimestamp, motioneye.TextOverlayCameraName,
		motioneye.TextOverlayCustomText, motioneye.TextOverlayDisabled:
		return true
	}
	return false
}

// Validate checks the request the same way the service schema does: at least
// one side must be set, modes must be known, and custom-text needs its text.
func (o TextOverlay) Validate() error {
	if o.LeftText == "" && o.RightText == "" {
		return errors.New("at least one of left_text or right_text is required")
	}
	if o.LeftText != "" && !validOverlayMode(o.LeftText) {
		return errors.Errorf("invalid left_text mode %q", o.LeftText)
	}
	if o.RightText != "" && !validOverlayMode(o.RightText) {
		return errors.Errorf("invalid right_text mode %q", o.RightText)
	}
	if o.LeftText == motioneye.TextOverlayCustomText && o.CustomLeftText == "" {
		return errors.New("custom_left_text is required for custom-text")
	}
	if o.RightText == motioneye.TextOverlayCustomText && o.CustomRightText == "" {
		return errors.New("custom_right_text is required for custom-text")
	}
	return nil
}

// SetTextOverlay writes the overlay settings to the remote camera config via
// the same read-modify-write cycle the switches use.
func SetTextOverlay(ctx context.Context, instance *cameras.Instance, cameraID int, overlay TextOverlay) error {
	if err := overlay.Validate(); err != nil {
		return err
	}
	camera, err := instance.Client.GetCamera(ctx, cameraID)
	if err != nil {
		return errors.Wrapf(err, "failed to fetch camera %d config", cameraID)
	}
	if overlay.LeftText != "" {
		camera.SetStr(motioneye.KeyLeftText, overlay.LeftText)
	}
	if overlay.CustomLeftText != "" {
		camera.SetStr(motioneye.KeyCustomLeftText, overlay.CustomLeftText)
	}
	if overlay.RightText != "" {
		camera.SetStr(motioneye.KeyRightText, overlay.RightText)
	}
	if overlay.CustomRightText != "" {
		camera.SetStr(motioneye.KeyCustomRightText, overlay.CustomRightText)
	}
	if err := instance.Client.SetCamera(ctx, cameraID, camera); err != nil {
		return errors.Wrapf(err, "failed to write camera %d config", cameraID)
	}
	log.Infof("Set text overlay on camera %d", cameraID)
	instance.Coordinator.RequestRefresh()
	return nil
}
