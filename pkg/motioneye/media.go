package motioneye

// MediaItem is one entry of a camera media list (movie or picture list).
// Paths are motionEye-relative and always start with a slash,
// e.g. "/2021-04-25/00-26-22.mp4".
type MediaItem struct {
	Path     string `json:"path"`
	MimeType string `json:"mimeType"`
}

type mediaListResponse struct {
	MediaList []MediaItem `json:"mediaList"`
}

// File type codes reported by motion in the %n conversion specifier.
// 1 = stored picture, 2 = snapshot, 8 = stored movie.
const (
	FileTypeImage    = 1
	FileTypeSnapshot = 2
	FileTypeMovie    = 8
)

// IsFileTypeImage reports whether a file-stored event carries an image
// rather than a movie.
func IsFileTypeImage(fileType int) bool {
	return fileType == FileTypeImage || fileType == FileTypeSnapshot
}
