package motioneye

import (
	"encoding/json"
)

// Config keys used by the bridge. A motionEye camera config carries ~60 keys,
// most of which the bridge never touches; unknown keys are preserved verbatim
// in Camera.extra so a read-modify-write cycle does not destroy them.
const (
	KeyID              = "id"
	KeyName            = "name"
	KeyRootDirectory   = "root_directory"
	KeyMotionDetection = "motion_detection"
	KeyVideoStreaming  = "video_streaming"
	KeyStillImages     = "still_images"
	KeyMovies          = "movies"
	KeyTextOverlay     = "text_overlay"
	KeyUploadEnabled   = "upload_enabled"
	KeyStreamingPort   = "streaming_port"
	KeyActions         = "actions"

	KeyLeftText        = "left_text"
	KeyRightText       = "right_text"
	KeyCustomLeftText  = "custom_left_text"
	KeyCustomRightText = "custom_right_text"

	KeyWebhookNotificationsEnabled = "web_hook_notifications_enabled"
	KeyWebhookNotificationsMethod  = "web_hook_notifications_http_method"
	KeyWebhookNotificationsURL     = "web_hook_notifications_url"
	KeyWebhookStorageEnabled       = "web_hook_storage_enabled"
	KeyWebhookStorageMethod        = "web_hook_storage_http_method"
	KeyWebhookStorageURL           = "web_hook_storage_url"
)

// Values accepted by the left_text/right_text overlay keys.
const (
	TextOverlayTimestamp  = "timestamp"
	TextOverlayCameraName = "camera-name"
	TextOverlayCustomText = "custom-text"
	TextOverlayDisabled   = "disabled"
)

// Webhook is one of the two webhook blocks of a camera config
// (motion notifications and file storage).
type Webhook struct {
	Enabled    bool
	HTTPMethod string
	URL        string
}

// Camera is a typed view over a motionEye camera config. Only the fields the
// bridge reads or writes are promoted to struct fields; everything else stays
// in extra and is round-tripped untouched by SetCamera.
type Camera struct {
	ID              int
	Name            string
	RootDirectory   string
	MotionDetection bool
	VideoStreaming  bool
	StillImages     bool
	Movies          bool
	TextOverlay     bool
	UploadEnabled   bool
	StreamingPort   int
	Actions         []string

	Notifications Webhook
	Storage       Webhook

	hasID            bool
	hasName          bool
	hasRootDirectory bool
	hasStreamingPort bool
	extra            map[string]json.RawMessage
}

// NewCamera builds a camera with id and name set, as used by tests and by
// code paths that synthesize descriptors.
func NewCamera(id int, name string) *Camera {
	return &Camera{ID: id, Name: name, hasID: true, hasName: true}
}

// Acceptable reports whether the descriptor is usable by the bridge. motionEye
// occasionally returns half-populated camera records during server restarts;
// a record without an id and a name cannot be correlated to anything.
func (c *Camera) Acceptable() bool {
	return c != nil && c.hasID && c.hasName
}

func (c *Camera) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	pickInt := func(key string, dst *int) bool {
		v, ok := raw[key]
		if !ok {
			return false
		}
		delete(raw, key)
		return json.Unmarshal(v, dst) == nil
	}
	pickString := func(key string, dst *string) bool {
		v, ok := raw[key]
		if !ok {
			return false
		}
		delete(raw, key)
		return json.Unmarshal(v, dst) == nil
	}
	pickBool := func(key string, dst *bool) {
		if v, ok := raw[key]; ok {
			delete(raw, key)
			_ = json.Unmarshal(v, dst)
		}
	}

	c.hasID = pickInt(KeyID, &c.ID)
	c.hasName = pickString(KeyName, &c.Name)
	c.hasRootDirectory = pickString(KeyRootDirectory, &c.RootDirectory)
	pickBool(KeyMotionDetection, &c.MotionDetection)
	pickBool(KeyVideoStreaming, &c.VideoStreaming)
	pickBool(KeyStillImages, &c.StillImages)
	pickBool(KeyMovies, &c.Movies)
	pickBool(KeyTextOverlay, &c.TextOverlay)
	pickBool(KeyUploadEnabled, &c.UploadEnabled)
	c.hasStreamingPort = pickInt(KeyStreamingPort, &c.StreamingPort)
	if v, ok := raw[KeyActions]; ok {
		delete(raw, KeyActions)
		_ = json.Unmarshal(v, &c.Actions)
	}

	pickBool(KeyWebhookNotificationsEnabled, &c.Notifications.Enabled)
	pickString(KeyWebhookNotificationsMethod, &c.Notifications.HTTPMethod)
	pickString(KeyWebhookNotificationsURL, &c.Notifications.URL)
	pickBool(KeyWebhookStorageEnabled, &c.Storage.Enabled)
	pickString(KeyWebhookStorageMethod, &c.Storage.HTTPMethod)
	pickString(KeyWebhookStorageURL, &c.Storage.URL)

	c.extra = raw
	return nil
}

func (c *Camera) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(c.extra)+16)
	for k, v := range c.extra {
		out[k] = v
	}
	if c.hasID {
		out[KeyID] = c.ID
	}
	if c.hasName {
		out[KeyName] = c.Name
	}
	// presence is tracked so a read-modify-write cannot drop keys the
	// server sent with zero values
	if c.hasRootDirectory || c.RootDirectory != "" {
		out[KeyRootDirectory] = c.RootDirectory
	}
	out[KeyMotionDetection] = c.MotionDetection
	out[KeyVideoStreaming] = c.VideoStreaming
	out[KeyStillImages] = c.StillImages
	out[KeyMovies] = c.Movies
	out[KeyTextOverlay] = c.TextOverlay
	out[KeyUploadEnabled] = c.UploadEnabled
	if c.hasStreamingPort || c.StreamingPort != 0 {
		out[KeyStreamingPort] = c.StreamingPort
	}
	if c.Actions != nil {
		out[KeyActions] = c.Actions
	}
	out[KeyWebhookNotificationsEnabled] = c.Notifications.Enabled
	out[KeyWebhookNotificationsMethod] = c.Notifications.HTTPMethod
	out[KeyWebhookNotificationsURL] = c.Notifications.URL
	out[KeyWebhookStorageEnabled] = c.Storage.Enabled
	out[KeyWebhookStorageMethod] = c.Storage.HTTPMethod
	out[KeyWebhookStorageURL] = c.Storage.URL
	return json.Marshal(out)
}

// Flag reads a boolean config key by name. Promoted fields are served from the
// struct, anything else from the preserved raw config.
func (c *Camera) Flag(key string) bool {
	switch key {
	case KeyMotionDetection:
		return c.MotionDetection
	case KeyVideoStreaming:
		return c.VideoStreaming
	case KeyStillImages:
		return c.StillImages
	case KeyMovies:
		return c.Movies
	case KeyTextOverlay:
		return c.TextOverlay
	case KeyUploadEnabled:
		return c.UploadEnabled
	}
	var v bool
	if raw, ok := c.extra[key]; ok {
		_ = json.Unmarshal(raw, &v)
	}
	return v
}

// SetFlag writes a boolean config key by name.
func (c *Camera) SetFlag(key string, value bool) {
	switch key {
	case KeyMotionDetection:
		c.MotionDetection = value
	case KeyVideoStreaming:
		c.VideoStreaming = value
	case KeyStillImages:
		c.StillImages = value
	case KeyMovies:
		c.Movies = value
	case KeyTextOverlay:
		c.TextOverlay = value
	case KeyUploadEnabled:
		c.UploadEnabled = value
	default:
		if c.extra == nil {
			c.extra = map[string]json.RawMessage{}
		}
		b, _ := json.Marshal(value)
		c.extra[key] = b
	}
}

// Str reads a string config key from the preserved raw config. Only keys the
// bridge never promoted to struct fields are served, e.g. the text overlay
// settings.
func (c *Camera) Str(key string) string {
	var v string
	if raw, ok := c.extra[key]; ok {
		_ = json.Unmarshal(raw, &v)
	}
	return v
}

// SetStr writes a string config key into the preserved raw config.
func (c *Camera) SetStr(key, value string) {
	if c.extra == nil {
		c.extra = map[string]json.RawMessage{}
	}
	b, _ := json.Marshal(value)
	c.extra[key] = b
}

// Clone returns a deep copy, used before mutating a camera that is shared with
// the coordinator snapshot.
func (c *Camera) Clone() *Camera {
	dup := *c
	if c.Actions != nil {
		dup.Actions = append([]string(nil), c.Actions...)
	}
	if c.extra != nil {
		dup.extra = make(map[string]json.RawMessage, len(c.extra))
		for k, v := range c.extra {
			dup.extra[k] = v
		}
	}
	return &dup
}
