package cameras

import (
	"context"
	"sync"

	"github.com/edgehive/motioneye-bridge/pkg/motioneye"
)

// fakeClient records writes and serves canned responses.
type fakeClient struct {
	mux     sync.Mutex
	cameras []*motioneye.Camera
	movies  []motioneye.MediaItem
	images  []motioneye.MediaItem
	writes  []*motioneye.Camera
}

func (f *fakeClient) Login(context.Context) error { return nil }

func (f *fakeClient) GetCameras(context.Context) ([]*motioneye.Camera, error) {
	f.mux.Lock()
	defer f.mux.Unlock()
	return f.cameras, nil
}

func (f *fakeClient) GetCamera(_ context.Context, cameraID int) (*motioneye.Camera, error) {
	f.mux.Lock()
	defer f.mux.Unlock()
	for _, cam := range f.cameras {
		if cam.ID == cameraID {
			return cam.Clone(), nil
		}
	}
	return nil, motioneye.ErrPath
}

func (f *fakeClient) SetCamera(_ context.Context, _ int, camera *motioneye.Camera) error {
	f.mux.Lock()
	defer f.mux.Unlock()
	f.writes = append(f.writes, camera)
	return nil
}

func (f *fakeClient) Action(context.Context, int, string) error { return nil }

func (f *fakeClient) GetMovies(context.Context, int) ([]motioneye.MediaItem, error) {
	return f.movies, nil
}

func (f *fakeClient) GetImages(context.Context, int) ([]motioneye.MediaItem, error) {
	return f.images, nil
}

func (f *fakeClient) MovieURL(cameraID int, path string) (string, error) {
	if path == "" || path[0] != '/' {
		return "", motioneye.ErrPath
	}
	return "http://movie-url" + path, nil
}

func (f *fakeClient) ImageURL(cameraID int, path string) (string, error) {
	if path == "" || path[0] != '/' {
		return "", motioneye.ErrPath
	}
	return "http://image-url" + path, nil
}

func (f *fakeClient) writeCount() int {
	f.mux.Lock()
	defer f.mux.Unlock()
	return len(f.writes)
}
