package m3uparser

import (
	"net/url"
	"regexp"
	"strings"
)

func compileRegex(regex string) *regexp.Regexp {
	return regexp.MustCompile(regex)
}

func isValidURL(toTest string) bool {
	_, err := url.ParseRequestURI(toTest)
	if err != nil {
		return false
	}

	u, err := url.Parse(toTest)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return false
	}

	return true
}

func isHTTPURL(toTest string) bool {
	if !isValidURL(toTest) {
		return false
	}
	scheme := strings.ToLower(toTest[:strings.Index(toTest, ":")])
	return scheme == "http" || scheme == "https"
}

// splitLines - Non-empty trimmed lines of content.
func splitLines(content string) []string {
	var lines []string
	for _, line := range strings.Split(content, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
