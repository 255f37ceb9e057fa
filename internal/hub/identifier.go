package hub

import (
	"fmt"
	"strconv"
	"strings"
)

// Domain is the integration domain. It prefixes emitted event names, the
// media-source URI scheme and all device identifiers.
const Domain = "motioneye"

// Manufacturer recorded on every device materialized by the bridge.
const Manufacturer = "motionEye"

// Identifier is the stable composite key correlating a motionEye camera with
// a hub device: the integration domain plus "{configEntryID}_{cameraID}".
type Identifier struct {
	Domain string
	ID     string
}

// DeviceIdentifier builds the identifier for a camera within a config entry.
func DeviceIdentifier(configEntryID string, cameraID int) Identifier {
	return Identifier{Domain: Domain, ID: fmt.Sprintf("%s_%d", configEntryID, cameraID)}
}

// SplitIdentifier parses an identifier back into its config entry id and
// camera id. Returns ok=false for identifiers not minted by this integration.
func SplitIdentifier(identifier Identifier) (configEntryID string, cameraID int, ok bool) {
	if identifier.Domain != Domain || !strings.Contains(identifier.ID, "_") {
		return "", 0, false
	}
	parts := strings.SplitN(identifier.ID, "_", 2)
	cameraID, err := strconv.Atoi(parts[1])
	if err != nil {
		return "", 0, false
	}
	return parts[0], cameraID, true
}
