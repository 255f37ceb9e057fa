package entities

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/edgehive/motioneye-bridge/integrations/cameras"
)

// CameraEntity exposes the camera's MJPEG stream location. motionEye serves
// each camera's stream on its own port directly off the server host, unless
// the user supplies a template override.
type CameraEntity struct {
	cameraID int
	instance *cameras.Instance
}

func NewCameraEntity(instance *cameras.Instance, cameraID int) *CameraEntity {
	return &CameraEntity{cameraID: cameraID, instance: instance}
}

// StreamURL derives the MJPEG stream URL for the camera. Empty when streaming
// is disabled or the camera is not in the current snapshot.
func (c *CameraEntity) StreamURL() string {
	camera := c.instance.Camera(c.cameraID)
	if camera == nil {
		return ""
	}
	if tmpl := c.instance.StreamURLTemplate; tmpl != "" {
		out := strings.ReplaceAll(tmpl, "{id}", strconv.Itoa(c.cameraID))
		return strings.ReplaceAll(out, "{port}", strconv.Itoa(camera.StreamingPort))
	}
	if !camera.VideoStreaming || camera.StreamingPort == 0 {
		return ""
	}
	parsed, err := url.Parse(c.instance.URL)
	if err != nil || parsed.Hostname() == "" {
		return ""
	}
	return fmt.Sprintf("http://%s:%d/", parsed.Hostname(), camera.StreamingPort)
}
