package motioneye

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetCameras(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/config/list", r.URL.Path)
		_, _ = w.Write([]byte(`{"cameras":[{"id":1,"name":"one"},{"id":2,"name":"two"}]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "", "", "user", "pass")
	cams, err := client.GetCameras(context.Background())
	require.NoError(t, err)
	require.Len(t, cams, 2)
	assert.Equal(t, "one", cams[0].Name)
	assert.Equal(t, 2, cams[1].ID)
}

func TestSetCameraPreservesUnknownKeys(t *testing.T) {
	var posted map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/config/3/get":
			_, _ = w.Write([]byte(`{"id":3,"name":"cam","obscure_tuning_knob":42}`))
		case "/config/3/set":
			require.NoError(t, json.NewDecoder(r.Body).Decode(&posted))
			_, _ = w.Write([]byte(`{}`))
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "", "", "", "")
	cam, err := client.GetCamera(context.Background(), 3)
	require.NoError(t, err)
	cam.SetFlag(KeyMotionDetection, true)
	require.NoError(t, client.SetCamera(context.Background(), 3, cam))

	assert.Equal(t, float64(42), posted["obscure_tuning_knob"])
	assert.Equal(t, true, posted[KeyMotionDetection])
}

func TestInvalidAuth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "", "", "", "")
	err := client.Login(context.Background())
	assert.True(t, errors.Is(err, ErrInvalidAuth))
}

func TestMovieURLSignature(t *testing.T) {
	client := NewClient("http://host:8765", "", "", "viewer", "secret")
	got, err := client.MovieURL(4, "/2021-04-25/00-26-22.mp4")
	require.NoError(t, err)

	uri := "/movie/4/playback/2021-04-25/00-26-22.mp4?_username=viewer"
	sum := sha1.Sum([]byte("GET:" + uri + "::secret"))
	assert.Equal(t, "http://host:8765"+uri+"&_signature="+hex.EncodeToString(sum[:]), got)
}

func TestMediaURLRequiresAbsolutePath(t *testing.T) {
	client := NewClient("http://host", "", "", "", "")
	_, err := client.MovieURL(1, "relative/path.mp4")
	assert.True(t, errors.Is(err, ErrPath))
	_, err = client.ImageURL(1, "")
	assert.True(t, errors.Is(err, ErrPath))
}
