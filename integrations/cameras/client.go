package cameras

import (
	"context"

	"github.com/edgehive/motioneye-bridge/pkg/motioneye"
)

// Client is the surface of the motionEye API the bridge consumes. Satisfied
// by *motioneye.Client; tests substitute fakes.
type Client interface {
	Login(ctx context.Context) error
	GetCameras(ctx context.Context) ([]*motioneye.Camera, error)
	GetCamera(ctx context.Context, cameraID int) (*motioneye.Camera, error)
	SetCamera(ctx context.Context, cameraID int, camera *motioneye.Camera) error
	Action(ctx context.Context, cameraID int, action string) error
	GetMovies(ctx context.Context, cameraID int) ([]motioneye.MediaItem, error)
	GetImages(ctx context.Context, cameraID int) ([]motioneye.MediaItem, error)
	MovieURL(cameraID int, path string) (string, error)
	ImageURL(cameraID int, path string) (string, error)
}
