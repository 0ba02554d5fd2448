package codec

import (
	"encoding/base64"
	"strings"
)

var whitespaceStripper = strings.NewReplacer("\t", "", "\n", "", " ", "", "\r", "")

// DecodeData decodes the base64 body of a <data> element. Line breaks and
// indentation inside the element are ignored.
func DecodeData(s string) ([]byte, error) {
	return base64.StdEncoding.DecodeString(whitespaceStripper.Replace(s))
}

// EncodeData renders b as standard base64 without line breaks.
func EncodeData(b []byte) string { return base64.StdEncoding.EncodeToString(b) }
