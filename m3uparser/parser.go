package m3uparser

import (
	"io"
	"strings"
)

const (
	extinfMarker = "#EXTINF"
	headerMarker = "#EXTM3U"
)

var attrRegex = compileRegex(`(\w[\w-]*)="([^"]*)"`)

// Parse - Parses playlist text into entries, in source order.
// An #EXTINF line without a URL line right after it is dropped.
func Parse(content string) []Entry {
	lines := splitLines(content)
	var entries []Entry
	for i := 0; i < len(lines); i++ {
		line := lines[i]
		if !strings.HasPrefix(line, extinfMarker) {
			continue
		}
		if i+1 >= len(lines) || strings.HasPrefix(lines[i+1], "#") {
			continue
		}
		i++
		entries = append(entries, Entry{
			Name:      extinfName(line),
			URL:       lines[i],
			Attrs:     extinfAttrs(line),
			RawExtinf: line,
		})
	}
	return entries
}

// ParseReader - Reads r fully and parses it.
func ParseReader(r io.Reader) ([]Entry, error) {
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Parse(string(body)), nil
}

func extinfName(line string) string {
	i := strings.Index(line, ",")
	if i < 0 {
		return UnknownName
	}
	return strings.TrimSpace(line[i+1:])
}

func extinfAttrs(line string) map[string]string {
	attrs := make(map[string]string)
	for _, m := range attrRegex.FindAllStringSubmatch(line, -1) {
		attrs[m[1]] = m[2]
	}
	return attrs
}
