package constants

import "strings"

// Source formats handled by the text source adapter.
const (
	PDF   = "PDF"
	IMAGE = "IMAGE"
	TXT   = "TXT"
)

// FileTypes holds the allowed source formats for a scan run.
var FileTypes = []string{PDF, IMAGE, TXT}

// AllowedExtensions holds the default file extensions picked up when
// walking a certificate directory.
var AllowedExtensions = map[string]struct{}{
	"pdf":  {},
	"png":  {},
	"jpg":  {},
	"jpeg": {},
	"tif":  {},
	"tiff": {},
	"txt":  {},
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// MapExtToFormat maps a file extension to a source format.
// Unknown extensions map to "".
func MapExtToFormat(ext string) string {
	switch NormalizeExt(ext) {
	case "pdf":
		return PDF
	case "png", "jpg", "jpeg", "tif", "tiff":
		return IMAGE
	case "txt":
		return TXT
	default:
		return ""
	}
}
