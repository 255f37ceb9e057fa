package motioneye

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	dac "github.com/xinsnake/go-http-digest-auth-client"
)

var (
	// ErrInvalidAuth is returned when motionEye rejects the configured credentials.
	ErrInvalidAuth = errors.New("invalid motioneye credentials")
	// ErrPath is returned for media paths that are not absolute. motionEye only
	// serves playback for paths rooted at the camera media directory.
	ErrPath = errors.New("media path must be absolute")
)

// Client talks to one motionEye server. Admin endpoints (config read/write,
// actions) use digest auth when an admin password is set; media playback URLs
// are signed with the surveillance credentials so they can be fetched by a
// player without a session.
type Client struct {
	baseURL       string
	adminUsername string
	adminPassword string
	survUsername  string
	survPassword  string

	httpClient      *http.Client
	digestTransport *dac.DigestTransport
}

func NewClient(baseURL, adminUsername, adminPassword, survUsername, survPassword string) *Client {
	return &Client{
		baseURL:       strings.TrimSuffix(baseURL, "/"),
		adminUsername: adminUsername,
		adminPassword: adminPassword,
		survUsername:  survUsername,
		survPassword:  survPassword,
		httpClient:    &http.Client{Timeout: 15 * time.Second},
	}
}

// URL returns the base URL of the motionEye server.
func (c *Client) URL() string {
	return c.baseURL
}

func (c *Client) do(ctx context.Context, method, path string, body []byte) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	var resp *http.Response
	if c.adminPassword != "" {
		if c.digestTransport == nil {
			t := dac.NewTransport(c.adminUsername, c.adminPassword)
			c.digestTransport = &t
			c.digestTransport.HTTPClient = c.httpClient
		}
		resp, err = c.digestTransport.RoundTrip(req)
	} else {
		resp, err = c.httpClient.Do(req)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "request to %s failed", path)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, ErrInvalidAuth
	}
	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "reading response from %s", path)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("motioneye api returned %s for %s", resp.Status, path)
	}
	return payload, nil
}

// Login verifies connectivity and credentials. motionEye has no session
// endpoint for API clients, so the cheapest authenticated request is used.
func (c *Client) Login(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodGet, "/config/list", nil)
	return err
}

// GetCameras fetches the full camera directory.
func (c *Client) GetCameras(ctx context.Context) ([]*Camera, error) {
	payload, err := c.do(ctx, http.MethodGet, "/config/list", nil)
	if err != nil {
		return nil, err
	}
	var resp struct {
		Cameras []*Camera `json:"cameras"`
	}
	if err := json.Unmarshal(payload, &resp); err != nil {
		return nil, errors.Wrap(err, "decoding camera list")
	}
	return resp.Cameras, nil
}

// GetCamera fetches a single camera config.
func (c *Client) GetCamera(ctx context.Context, cameraID int) (*Camera, error) {
	payload, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/config/%d/get", cameraID), nil)
	if err != nil {
		return nil, err
	}
	var cam Camera
	if err := json.Unmarshal(payload, &cam); err != nil {
		return nil, errors.Wrap(err, "decoding camera config")
	}
	return &cam, nil
}

// SetCamera writes a full camera config back to motionEye.
func (c *Client) SetCamera(ctx context.Context, cameraID int, camera *Camera) error {
	body, err := json.Marshal(camera)
	if err != nil {
		return errors.Wrap(err, "encoding camera config")
	}
	log.Debugf("Writing config for camera %d to %s", cameraID, c.baseURL)
	_, err = c.do(ctx, http.MethodPost, fmt.Sprintf("/config/%d/set", cameraID), body)
	return err
}

// Action triggers a motionEye camera action, e.g. "snapshot".
func (c *Client) Action(ctx context.Context, cameraID int, action string) error {
	_, err := c.do(ctx, http.MethodPost, fmt.Sprintf("/action/%d/%s", cameraID, action), []byte("{}"))
	return err
}

// GetMovies lists the stored movies of a camera.
func (c *Client) GetMovies(ctx context.Context, cameraID int) ([]MediaItem, error) {
	return c.mediaList(ctx, fmt.Sprintf("/movie/%d/list", cameraID))
}

// GetImages lists the stored images of a camera.
func (c *Client) GetImages(ctx context.Context, cameraID int) ([]MediaItem, error) {
	return c.mediaList(ctx, fmt.Sprintf("/picture/%d/list", cameraID))
}

func (c *Client) mediaList(ctx context.Context, path string) ([]MediaItem, error) {
	payload, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	var resp mediaListResponse
	if err := json.Unmarshal(payload, &resp); err != nil {
		return nil, errors.Wrap(err, "decoding media list")
	}
	return resp.MediaList, nil
}

// MovieURL returns a signed playback URL for a stored movie.
func (c *Client) MovieURL(cameraID int, path string) (string, error) {
	return c.mediaURL(fmt.Sprintf("/movie/%d/playback", cameraID), path)
}

// ImageURL returns a signed preview URL for a stored image.
func (c *Client) ImageURL(cameraID int, path string) (string, error) {
	return c.mediaURL(fmt.Sprintf("/picture/%d/preview", cameraID), path)
}

func (c *Client) mediaURL(prefix, path string) (string, error) {
	if !strings.HasPrefix(path, "/") {
		return "", ErrPath
	}
	uri := prefix + path + "?_username=" + c.survUsername
	return c.baseURL + uri + "&_signature=" + c.signature(http.MethodGet, uri), nil
}

// signature computes the motionEye request signature over method, uri and the
// surveillance password. motionEye validates this server-side for media URLs.
func (c *Client) signature(method, uri string) string {
	sum := sha1.Sum([]byte(method + ":" + uri + "::" + c.survPassword))
	return hex.EncodeToString(sum[:])
}
