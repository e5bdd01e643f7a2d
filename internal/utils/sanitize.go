package utils

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strictPolicy = bluemonday.StrictPolicy()

// Sanitize strips any markup from user-supplied free-text fields before
// they are persisted or echoed back.
func Sanitize(input string) string {
	return strings.TrimSpace(strictPolicy.Sanitize(input))
}
