package mediasource

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/edgehive/motioneye-bridge/integrations/cameras"
	"github.com/edgehive/motioneye-bridge/internal/hub"
	"github.com/edgehive/motioneye-bridge/internal/metrics"
	"github.com/edgehive/motioneye-bridge/pkg/motioneye"
)

// Source presents the flat per-camera media lists of every configured
// motionEye server as one browsable tree. Trees are built per request from
// the live listings, nothing is cached or persisted.
type Source struct {
	instances *cameras.InstanceRegistry
	devices   *hub.DeviceRegistry
}

func NewSource(instances *cameras.InstanceRegistry, devices *hub.DeviceRegistry) *Source {
	return &Source{instances: instances, devices: devices}
}

// Browse returns the node addressed by contentID together with its direct
// children. An empty contentID addresses the root (the list of configured
// servers).
func (s *Source) Browse(ctx context.Context, contentID string) (*Media, error) {
	metrics.RecordMediaRequest("browse")
	id := parseIdentifier(contentID)

	switch {
	case id.ConfigEntryID == "":
		return s.browseRoot(), nil
	case id.DeviceID == "":
		return s.browseInstance(id)
	case id.Kind == "":
		return s.browseDevice(id)
	default:
		return s.browsePath(ctx, id)
	}
}

func (s *Source) browseRoot() *Media {
	root := &Media{
		Title:     "motionEye Media",
		Class:     ClassDirectory,
		ContentID: Scheme,
		CanExpand: true,
	}
	for _, instance := range s.instances.List() {
		root.Children = append(root.Children, &Media{
			Title:     instance.Title,
			Class:     ClassDirectory,
			ContentID: ContentID(instance.ID, "", "", ""),
			CanExpand: true,
		})
	}
	return root
}

func (s *Source) browseInstance(id identifier) (*Media, error) {
	instance := s.instances.Get(id.ConfigEntryID)
	if instance == nil {
		return nil, errors.Wrapf(ErrNotFound, "config entry %s", id.ConfigEntryID)
	}
	node := &Media{
		Title:     instance.Title,
		Class:     ClassDirectory,
		ContentID: id.contentID(),
		CanExpand: true,
	}
	for _, device := range s.devices.EntriesForConfigEntry(id.ConfigEntryID) {
		node.Children = append(node.Children, &Media{
			Title:     device.Name,
			Class:     ClassDirectory,
			ContentID: ContentID(id.ConfigEntryID, device.ID, "", ""),
			CanExpand: true,
		})
	}
	return node, nil
}

func (s *Source) browseDevice(id identifier) (*Media, error) {
	device, _, err := s.target(id)
	if err != nil {
		return nil, err
	}
	node := &Media{
		Title:     device.Name,
		Class:     ClassDirectory,
		ContentID: id.contentID(),
		CanExpand: true,
	}
	for _, kind := range []struct{ kind, title string }{{KindMovies, "Movies"}, {KindImages, "Images"}} {
		node.Children = append(node.Children, &Media{
			Title:     kind.title,
			Class:     ClassDirectory,
			ContentID: ContentID(id.ConfigEntryID, id.DeviceID, kind.kind, ""),
			CanExpand: true,
		})
	}
	return node, nil
}

func (s *Source) browsePath(ctx context.Context, id identifier) (*Media, error) {
	device, cameraID, err := s.target(id)
	if err != nil {
		return nil, err
	}
	if !validKind(id.Kind) {
		return nil, errors.Wrapf(ErrBadKind, "%q", id.Kind)
	}
	instance := s.instances.Get(id.ConfigEntryID)

	var items []motioneye.MediaItem
	if id.Kind == KindMovies {
		items, err = instance.Client.GetMovies(ctx, cameraID)
	} else {
		items, err = instance.Client.GetImages(ctx, cameraID)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list %s for camera %d", id.Kind, cameraID)
	}

	title := device.Name
	if segs := pathSegments(id.Path); len(segs) > 0 {
		title = segs[len(segs)-1]
	}
	node := &Media{
		Title:     title,
		Class:     ClassDirectory,
		ContentID: id.contentID(),
		CanExpand: true,
		Children:  buildChildren(id, items),
	}
	return node, nil
}

func pathSegments(path string) []string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}

func classForMime(mimeType string) string {
	switch {
	case strings.HasPrefix(mimeType, "video/"):
		return ClassVideo
	case strings.HasPrefix(mimeType, "image/"):
		return ClassImage
	default:
		return ""
	}
}

// buildChildren projects the flat media list onto one directory level.
// Entries one segment deeper than the target path become playable leaves;
// deeper entries contribute a single (deduplicated) subdirectory node for
// their next segment. Malformed entries are skipped, a corrupt listing must
// not break browsing.
func buildChildren(id identifier, items []motioneye.MediaItem) []*Media {
	target := pathSegments(id.Path)
	n := len(target)

	var children []*Media
	seenDirs := map[string]bool{}
	for _, item := range items {
		if item.Path == "" || item.MimeType == "" {
			continue
		}
		class := classForMime(item.MimeType)
		if class == "" {
			log.Debugf("Skipping media entry with unexpected mime type %q", item.MimeType)
			continue
		}
		segs := pathSegments(item.Path)
		if len(segs) <= n || !hasPrefix(segs, target) {
			continue
		}
		if len(segs) == n+1 {
			children = append(children, &Media{
				Title:     segs[n],
				Class:     class,
				ContentID: ContentID(id.ConfigEntryID, id.DeviceID, id.Kind, item.Path),
				MimeType:  item.MimeType,
				CanPlay:   true,
			})
			continue
		}
		dir := "/" + strings.Join(segs[:n+1], "/")
		if seenDirs[dir] {
			continue
		}
		seenDirs[dir] = true
		children = append(children, &Media{
			Title:     segs[n],
			Class:     ClassDirectory,
			ContentID: ContentID(id.ConfigEntryID, id.DeviceID, id.Kind, dir),
			CanExpand: true,
		})
	}
	return children
}

func hasPrefix(segs, prefix []string) bool {
	for i, p := range prefix {
		if segs[i] != p {
			return false
		}
	}
	return true
}

// Resolve translates a fully populated leaf identifier into a direct playback
// URL. Error taxonomy: missing identifier components are unresolvable,
// unknown config entries and devices are not found, an unknown kind is its
// own condition, and a path the server cannot parse is unresolvable again.
func (s *Source) Resolve(contentID string) (PlayMedia, error) {
	metrics.RecordMediaRequest("resolve")
	id := parseIdentifier(contentID)
	if id.ConfigEntryID == "" || id.DeviceID == "" || id.Kind == "" || id.Path == "" {
		return PlayMedia{}, errors.Wrapf(ErrUnresolvable, "incomplete identifier %q", contentID)
	}
	_, cameraID, err := s.target(id)
	if err != nil {
		return PlayMedia{}, err
	}
	if !validKind(id.Kind) {
		return PlayMedia{}, errors.Wrapf(ErrBadKind, "%q", id.Kind)
	}
	instance := s.instances.Get(id.ConfigEntryID)

	var url, mimeType string
	if id.Kind == KindMovies {
		url, err = instance.Client.MovieURL(cameraID, id.Path)
		mimeType = "video/mp4"
	} else {
		url, err = instance.Client.ImageURL(cameraID, id.Path)
		mimeType = "image/jpeg"
	}
	if err != nil {
		if errors.Is(err, motioneye.ErrPath) {
			return PlayMedia{}, errors.Wrapf(ErrUnresolvable, "path %q", id.Path)
		}
		return PlayMedia{}, err
	}
	return PlayMedia{URL: url, MimeType: mimeType}, nil
}

// target validates the entry/device pair of an identifier and decodes the
// camera id the device was minted for.
func (s *Source) target(id identifier) (*hub.Device, int, error) {
	if s.instances.Get(id.ConfigEntryID) == nil {
		return nil, 0, errors.Wrapf(ErrNotFound, "config entry %s", id.ConfigEntryID)
	}
	device := s.devices.Get(id.DeviceID)
	if device == nil || device.ConfigEntryID != id.ConfigEntryID {
		return nil, 0, errors.Wrapf(ErrNotFound, "device %s", id.DeviceID)
	}
	_, cameraID, ok := hub.SplitIdentifier(device.Identifier)
	if !ok {
		return nil, 0, errors.Wrapf(ErrNotFound, "device %s has no camera identifier", id.DeviceID)
	}
	return device, cameraID, nil
}
