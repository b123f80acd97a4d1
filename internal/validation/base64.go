package validation

import (
	"encoding/base64"

	validation "github.com/jellydator/validation"
)

var strictBase64 = base64.StdEncoding.Strict()

// Base64 validates that a string is canonical standard base64 with padding.
var Base64 = validation.By(func(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return validation.NewError("validation_base64_type", "must be a string")
	}
	if s == "" {
		return nil // Let Required handle empty strings
	}
	if _, err := strictBase64.DecodeString(s); err != nil {
		return validation.NewError("validation_base64", "must be valid base64-encoded data")
	}
	return nil
})

// MaxDecodedBytes validates that a base64 string decodes to at most limit bytes.
// Values that are not valid base64 are left to the Base64 rule.
func MaxDecodedBytes(limit int) validation.Rule {
	return validation.By(func(value interface{}) error {
		s, ok := value.(string)
		if !ok || s == "" {
			return nil
		}
		if strictBase64.DecodedLen(len(s)) <= limit {
			return nil
		}
		decoded, err := strictBase64.DecodeString(s)
		if err != nil {
			return nil
		}
		if len(decoded) > limit {
			return validation.NewError("validation_max_decoded_bytes", "decoded data exceeds the size limit").
				SetParams(map[string]interface{}{"limit": limit})
		}
		return nil
	})
}
