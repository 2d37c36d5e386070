package ui

import (
	"fmt"
	"html"
	"net/url"
	"strings"
)

// EmbedSnippet returns the iframe code for embedding the assessment on a
// web page served from origin.
func EmbedSnippet(origin string) (string, error) {
	origin = strings.TrimSpace(origin)
	u, err := url.Parse(origin)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("invalid origin %q: want an absolute URL such as https://example.com", origin)
	}
	return fmt.Sprintf(`<iframe src="%s" width="100%%" height="800" frameborder="0" title="KAI Career Assessment"></iframe>`,
		html.EscapeString(u.String())), nil
}
