package entities

import (
	"github.com/edgehive/motioneye-bridge/integrations/cameras"
)

// ActionsSensor reports the actions (snapshot, preset moves, custom buttons)
// the camera currently offers.
type ActionsSensor struct {
	cameraID int
	instance *cameras.Instance
}

func NewActionsSensor(instance *cameras.Instance, cameraID int) *ActionsSensor {
	return &ActionsSensor{cameraID: cameraID, instance: instance}
}

// Actions lists the available action names from the latest snapshot.
func (s *ActionsSensor) Actions() []string {
	camera := s.instance.Camera(s.cameraID)
	if camera == nil {
		return nil
	}
	return camera.Actions
}

// Count is the sensor's state value.
func (s *ActionsSensor) Count() int {
	return len(s.Actions())
}
