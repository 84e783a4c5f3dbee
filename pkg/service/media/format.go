package media

import (
	"net/http"

	"github.com/m-mizutani/goerr/v2"
)

// Format names accepted by the media store. DefaultFormats mirrors the
// fixed allow list; a media policy may restrict it further but never extend
// it.
const (
	FormatJPG  = "jpg"
	FormatJPEG = "jpeg"
	FormatPNG  = "png"
	FormatGIF  = "gif"
)

func DefaultFormats() []string {
	return []string{FormatJPG, FormatJPEG, FormatPNG, FormatGIF}
}

// contentTypes maps a sniffed MIME type to its canonical format name and
// object-name extension.
var contentTypes = map[string]string{
	"image/jpeg": FormatJPEG,
	"image/png":  FormatPNG,
	"image/gif":  FormatGIF,
}

// extensions maps a format name to the extension used in object names.
// jpg and jpeg are the same wire format.
var extensions = map[string]string{
	FormatJPG:  "jpg",
	FormatJPEG: "jpg",
	FormatPNG:  "png",
	FormatGIF:  "gif",
}

// ValidFormat reports whether name is one of the supported format names.
func ValidFormat(name string) bool {
	_, ok := extensions[name]
	return ok
}

// detectFormat sniffs the blob content and returns its format name and
// content type, or ErrUnsupportedFormat when the blob is not an allowed
// image. The allowed set maps jpg and jpeg to the same sniffed type.
func detectFormat(blob []byte, allowed []string) (format, contentType string, err error) {
	contentType = http.DetectContentType(blob)
	format, ok := contentTypes[contentType]
	if !ok {
		return "", "", goerr.Wrap(ErrUnsupportedFormat, "blob is not a supported image",
			goerr.V("contentType", contentType))
	}

	for _, name := range allowed {
		if extensions[name] == extensions[format] {
			return format, contentType, nil
		}
	}
	return "", "", goerr.Wrap(ErrUnsupportedFormat, "format not in allowed set",
		goerr.V("format", format), goerr.V("allowed", allowed))
}
