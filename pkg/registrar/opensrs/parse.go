package opensrs

import (
	"html"
	"regexp"
	"strings"
)

// itemPattern matches the first <item key="NAME">VALUE</item>, tolerating
// single or double quotes and whitespace around the key and value.
func itemPattern(key string) *regexp.Regexp {
	return regexp.MustCompile(`<item\s+key\s*=\s*["']` + regexp.QuoteMeta(key) + `["']\s*>([^<]*)</item>`)
}

var (
	statusItem       = itemPattern("status")        //nolint: gochecknoglobals
	isSuccessItem    = itemPattern("is_success")    //nolint: gochecknoglobals
	errorItem        = itemPattern("error")         //nolint: gochecknoglobals
	responseTextItem = itemPattern("response_text") //nolint: gochecknoglobals
)

func firstItem(re *regexp.Regexp, reply string) (string, bool) {
	m := re.FindStringSubmatch(reply)
	if m == nil {
		return "", false
	}

	return html.UnescapeString(strings.TrimSpace(m[1])), true
}

// StatusToken returns the value of the first "status" item in reply.
func StatusToken(reply string) (string, bool) {
	return firstItem(statusItem, reply)
}

// IsSuccess reports whether the first "is_success" item in reply is 1.
func IsSuccess(reply string) bool {
	v, ok := firstItem(isSuccessItem, reply)

	return ok && v == "1"
}

// ErrorToken returns the value of the first "error" item in reply, falling
// back to "response_text" when the reply carries no error item.
func ErrorToken(reply string) (string, bool) {
	if v, ok := firstItem(errorItem, reply); ok && v != "" {
		return v, true
	}
	if v, ok := firstItem(responseTextItem, reply); ok && v != "" {
		return v, true
	}

	return "", false
}
