// Package statuscode turns HTTP status codes into human readable descriptions.
//
// Two tables are available: Describe uses the short reason phrases, DescribeDetailed
// explains what the server meant. Both are pure lookups and never fail: codes they
// do not know map to Unknown.
package statuscode

import (
	"fmt"
	"net/http"
)

// Unknown describes any code missing from the tables.
const Unknown = "Unknown error"

// Describer maps a status code to a description.
type Describer func(code int) string

// Describe returns the reason phrase of code, e.g. "Not Found" for 404.
func Describe(code int) string {
	if text := http.StatusText(code); text != "" {
		return text
	}

	return Unknown
}

// DescribeDetailed returns a sentence explaining code.
func DescribeDetailed(code int) string {
	if text, ok := detailed[code]; ok {
		return text
	}

	return Unknown
}

// IsSuccess reports whether code is in the 2xx range.
func IsSuccess(code int) bool {
	return code >= 200 && code < 300
}

// Message formats the error message reported for a failed response.
func Message(code int, describe Describer) string {
	if describe == nil {
		describe = Describe
	}

	return fmt.Sprintf("Invalid server response. Error %d: %s", code, describe(code))
}
