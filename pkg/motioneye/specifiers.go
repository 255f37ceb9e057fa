package motioneye

// Event payload keys delivered by motion through webhook conversion
// specifiers. The two used directly by the bridge get named constants.
const (
	KeyFilePath = "file_path"
	KeyFileType = "file_type"
)

// ConversionSpecifiers maps payload key names to the motion conversion
// specifier that produces them. The specifier values are substituted by
// motion itself before the webhook is fetched, so they must reach the
// camera config un-escaped.
var ConversionSpecifiers = map[string]string{
	"camera_id":        "%t",
	"changed_pixels":   "%D",
	"despeckle_labels": "%Q",
	"event":            "%v",
	"fps":              "%{fps}",
	"frame_number":     "%q",
	"height":           "%h",
	"host":             "%{host}",
	"motion_center_x":  "%K",
	"motion_center_y":  "%L",
	"motion_height":    "%J",
	"motion_version":   "%{ver}",
	"motion_width":     "%i",
	"noise_level":      "%N",
	"threshold":        "%o",
	"width":            "%w",
	KeyFilePath:        "%f",
	KeyFileType:        "%n",
}
