package extract

import (
	"encoding/base64"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// DecodeBase64URL decodes the URL-safe base64 content the Gmail API uses
// for message bodies. Malformed input yields an empty string rather than an
// error so that one bad part cannot abort extraction of the rest of the
// message. Payloads that are not valid UTF-8 are reinterpreted as Latin-1.
func DecodeBase64URL(encoded string) string {
	if encoded == "" {
		return ""
	}

	decoded, err := base64.URLEncoding.DecodeString(encoded)
	if err != nil {
		// Gmail omits padding on some parts.
		decoded, err = base64.RawURLEncoding.DecodeString(encoded)
		if err != nil {
			return ""
		}
	}

	if utf8.Valid(decoded) {
		return string(decoded)
	}

	text, err := charmap.ISO8859_1.NewDecoder().Bytes(decoded)
	if err != nil {
		return ""
	}
	return string(text)
}
