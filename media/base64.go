package media

import (
	"encoding/base64"
	"regexp"

	"github.com/hupe1980/geminimesh/core"
)

var (
	// dataURLPrefix matches a leading data-URL header such as
	// "data:image/png;base64,".
	dataURLPrefix = regexp.MustCompile(`^data:image/[a-zA-Z0-9.+-]+;base64,`)
	// base64Shape matches the standard alphabet plus up to two trailing
	// padding characters.
	base64Shape = regexp.MustCompile(`^[A-Za-z0-9+/]*={0,2}$`)
)

// NormalizeBase64 strips an optional data-URL prefix and validates that the
// remaining payload is decodable base64. An actual decode is attempted to
// catch strings that pass the alphabet check but carry broken padding. The
// cleaned string is returned unchanged in content.
func NormalizeBase64(raw string) (string, error) {
	clean := dataURLPrefix.ReplaceAllString(raw, "")
	if !base64Shape.MatchString(clean) {
		return "", core.NewValidationError("invalid base64 format")
	}
	if _, err := base64.StdEncoding.DecodeString(clean); err != nil {
		return "", core.NewValidationError("base64 validation failed")
	}
	return clean, nil
}
