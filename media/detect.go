package media

import (
	"mime"
	"net/url"
	"path"
	"strings"
)

// defaultMIMEType is the safe fallback when detection fails. Unknown input
// degrades to a default rather than failing.
const defaultMIMEType = "image/png"

// imageExts maps file extensions to MIME types for supported image formats.
var imageExts = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
}

// extByMIME is the inverse mapping used when naming generated image files.
var extByMIME = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/gif":  "gif",
	"image/webp": "webp",
}

// DetectFromURL infers an image MIME type from the URL's path extension.
// Non-image and unknown extensions degrade to image/png.
func DetectFromURL(rawURL string) string {
	p := rawURL
	if u, err := url.Parse(rawURL); err == nil && u.Path != "" {
		p = u.Path
	}
	ext := strings.ToLower(path.Ext(p))
	if mt, ok := imageExts[ext]; ok {
		return mt
	}
	if mt := mime.TypeByExtension(ext); strings.HasPrefix(mt, "image/") {
		return mt
	}
	return defaultMIMEType
}

// DetectFromBytes inspects leading magic bytes to identify common image
// formats, checking PNG, JPEG, WebP and GIF in that order. Buffers shorter
// than 8 bytes and unknown signatures return image/png; this function never
// fails.
func DetectFromBytes(buf []byte) string {
	if len(buf) < 8 {
		return defaultMIMEType
	}
	switch {
	case buf[0] == 0x89 && buf[1] == 0x50 && buf[2] == 0x4E && buf[3] == 0x47:
		return "image/png"
	case buf[0] == 0xFF && buf[1] == 0xD8 && buf[2] == 0xFF:
		return "image/jpeg"
	case len(buf) >= 12 && buf[8] == 'W' && buf[9] == 'E' && buf[10] == 'B' && buf[11] == 'P':
		return "image/webp"
	case buf[0] == 'G' && buf[1] == 'I' && buf[2] == 'F':
		return "image/gif"
	}
	return defaultMIMEType
}

// ExtensionByMIME returns the file extension (without dot) for an image MIME
// type, falling back to "bin" for unrecognized types.
func ExtensionByMIME(mimeType string) string {
	if ext, ok := extByMIME[strings.ToLower(mimeType)]; ok {
		return ext
	}
	if exts, err := mime.ExtensionsByType(mimeType); err == nil && len(exts) > 0 {
		return strings.TrimPrefix(exts[0], ".")
	}
	return "bin"
}
