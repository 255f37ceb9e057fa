package cameras

import (
	"sort"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/edgehive/motioneye-bridge/internal/hub"
	"github.com/edgehive/motioneye-bridge/pkg/motioneye"
)

// Webhook URLs written into motionEye are marked with a sentinel query pair
// so the bridge can recognize (and safely regenerate) its own URLs without
// clobbering hooks configured by hand.
const (
	WebhookSentinelKey   = "src"
	WebhookSentinelValue = "motioneye-bridge"

	// motion fetches webhook URLs with a plain GET.
	WebhookMethodGET = "GET"
)

// Payload keys requested per event type. The storage hook additionally
// carries the stored file path and type so events can be enriched with a
// media identifier.
var (
	MotionDetectedKeys = []string{
		"camera_id", "changed_pixels", "despeckle_labels", "event", "fps",
		"frame_number", "height", "host", "motion_center_x", "motion_center_y",
		"motion_height", "motion_version", "motion_width", "noise_level",
		"threshold", "width",
	}
	FileStoredKeys = []string{
		"camera_id", "fps", "frame_number", "height", "host",
		"motion_version", "width", motioneye.KeyFilePath, motioneye.KeyFileType,
	}
)

// Provisioner decides whether a camera's webhook config needs to be rewritten
// and computes the replacement URLs.
type Provisioner struct {
	entryID     string
	externalURL func() string
	enabled     bool
	overwrite   bool
}

// NewProvisioner builds a provisioner for one config entry. externalURL is
// resolved on every pass; an empty result skips provisioning for that pass
// (it is re-attempted on the next poll, never treated as a hard error).
func NewProvisioner(entryID string, externalURL func() string, enabled, overwrite bool) *Provisioner {
	return &Provisioner{entryID: entryID, externalURL: externalURL, enabled: enabled, overwrite: overwrite}
}

// BuildURL computes the callback URL motionEye is told to fetch. The query
// string is assembled by hand: motion substitutes the %-specifiers into the
// URL before fetching it and cannot cope with them arriving url-encoded.
// Keys are sorted so regeneration is byte-stable.
func BuildURL(base, deviceID, eventType string, keys []string) string {
	sorted := append([]string(nil), keys...)
	sort.Strings(sorted)
	pairs := make([]string, 0, len(sorted)+1)
	for _, key := range sorted {
		pairs = append(pairs, key+"="+motioneye.ConversionSpecifiers[key])
	}
	pairs = append(pairs, WebhookSentinelKey+"="+WebhookSentinelValue)
	return strings.TrimSuffix(base, "/") +
		"/api/" + hub.Domain + "/device/" + deviceID + "/" + eventType +
		"?" + strings.Join(pairs, "&")
}

func isRecognizedWebhook(url string) bool {
	return strings.Contains(url, WebhookSentinelKey+"="+WebhookSentinelValue)
}

// setWebhook updates one webhook block in place when it is both safe to touch
// (overwrite enabled, unset, or carrying our sentinel) and actually different
// from the target. Returns whether anything changed.
func (p *Provisioner) setWebhook(hook *motioneye.Webhook, target string) bool {
	if (p.overwrite || hook.URL == "" || isRecognizedWebhook(hook.URL)) &&
		(!hook.Enabled || hook.HTTPMethod != WebhookMethodGET || hook.URL != target) {
		hook.Enabled = true
		hook.HTTPMethod = WebhookMethodGET
		hook.URL = target
		return true
	}
	return false
}

// Provision evaluates both webhooks of a camera. When either needs a rewrite
// it returns a cloned camera carrying both mutations, so the caller can apply
// them with a single remote write. Returns (nil, false) when nothing needs to
// change, when provisioning is disabled, or when no external URL is known yet.
func (p *Provisioner) Provision(device *hub.Device, camera *motioneye.Camera) (*motioneye.Camera, bool) {
	if !p.enabled {
		return nil, false
	}
	base := p.externalURL()
	if base == "" {
		log.Debugf("No external URL configured, skipping webhook provisioning for camera %q", camera.Name)
		return nil, false
	}

	dup := camera.Clone()
	motionChanged := p.setWebhook(&dup.Notifications,
		BuildURL(base, device.ID, hub.EventMotionDetected, MotionDetectedKeys))
	storageChanged := p.setWebhook(&dup.Storage,
		BuildURL(base, device.ID, hub.EventFileStored, FileStoredKeys))
	if !motionChanged && !storageChanged {
		return nil, false
	}
	return dup, true
}
