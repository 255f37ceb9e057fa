package mediasource

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/edgehive/motioneye-bridge/internal/hub"
)

// Media classes of browse tree nodes.
const (
	ClassDirectory = "directory"
	ClassImage     = "image"
	ClassVideo     = "video"
)

// Media kinds exposed per camera.
const (
	KindMovies = "movies"
	KindImages = "images"
)

// Scheme is the URI prefix of content identifiers handed out by the browser.
const Scheme = "media-source://" + hub.Domain + "/"

var (
	// ErrUnresolvable marks identifiers that are structurally unusable:
	// missing components or a path the server cannot parse.
	ErrUnresolvable = errors.New("unresolvable media identifier")
	// ErrNotFound marks identifiers referencing an unknown config entry or
	// device.
	ErrNotFound = errors.New("media target not found")
	// ErrBadKind marks identifiers with a media kind other than movies or
	// images.
	ErrBadKind = errors.New("unknown media kind")
)

// Media is one node of the transient browse tree.
type Media struct {
	Title     string   `json:"title"`
	Class     string   `json:"media_class"`
	ContentID string   `json:"media_content_id"`
	MimeType  string   `json:"media_content_type,omitempty"`
	CanPlay   bool     `json:"can_play"`
	CanExpand bool     `json:"can_expand"`
	Children  []*Media `json:"children,omitempty"`
}

// PlayMedia is the result of resolving a leaf node.
type PlayMedia struct {
	URL      string `json:"url"`
	MimeType string `json:"mime_type"`
}

// identifier is the decoded form of the "#"-joined content id
// "{configEntryID}#{deviceID}#{kind}#{path}". Later components may be empty
// while browsing; resolution requires all four.
type identifier struct {
	ConfigEntryID string
	DeviceID      string
	Kind          string
	Path          string
}

// ContentID renders an identifier back into its URI form.
func ContentID(configEntryID, deviceID, kind, path string) string {
	return Scheme + strings.Join([]string{configEntryID, deviceID, kind, path}, "#")
}

func (i identifier) contentID() string {
	return ContentID(i.ConfigEntryID, i.DeviceID, i.Kind, i.Path)
}

// parseIdentifier decodes a content id, tolerating both the full URI form and
// the bare "#"-joined form. Missing trailing components come back empty.
func parseIdentifier(contentID string) identifier {
	raw := strings.TrimPrefix(contentID, Scheme)
	parts := strings.SplitN(raw, "#", 4)
	var id identifier
	if len(parts) > 0 {
		id.ConfigEntryID = parts[0]
	}
	if len(parts) > 1 {
		id.DeviceID = parts[1]
	}
	if len(parts) > 2 {
		id.Kind = parts[2]
	}
	if len(parts) > 3 {
		id.Path = parts[3]
	}
	return id
}

func validKind(kind string) bool {
	return kind == KindMovies || kind == KindImages
}
