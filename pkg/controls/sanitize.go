package controls

import (
	"html"
	"regexp"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html/atom"
)

var (
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy

	tagPattern = regexp.MustCompile(`</?([A-Za-z][A-Za-z0-9-]*)[^<>]*>`)
)

// plainText strips HTML markup from banner text. Messages may come straight
// from a server response. Bracketed words that are not HTML elements, such as
// "<email>", are kept as literal text.
func plainText(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	return strings.TrimSpace(html.UnescapeString(textPolicy.Sanitize(escapeNonElements(trimmed))))
}

func escapeNonElements(s string) string {
	return tagPattern.ReplaceAllStringFunc(s, func(tag string) string {
		name := tagPattern.FindStringSubmatch(tag)[1]
		if atom.Lookup([]byte(strings.ToLower(name))) != 0 {
			return tag
		}
		return html.EscapeString(tag)
	})
}
