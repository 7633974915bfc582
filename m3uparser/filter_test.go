package m3uparser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func named(names ...string) []Entry {
	entries := make([]Entry, 0, len(names))
	for i, n := range names {
		entries = append(entries, Entry{Name: n, URL: "http://x/" + string(rune('a'+i))})
	}
	return entries
}

func names(entries []Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Name)
	}
	return out
}

func TestFilterChinaChannels(t *testing.T) {
	input := named("CCTV1", "ESPN", "湖南卫视", "cctv2", "CGTN", "CCTV-5+", "浙江卫视 HD", "卫", "BTV北京")

	kept := Filter(input, ChinaChannels)
	assert.Equal(t, []string{"CCTV1", "湖南卫视", "CCTV-5+", "浙江卫视 HD"}, names(kept))

	keptSet := make(map[string]bool)
	for _, e := range kept {
		keptSet[e.Name] = true
		assert.True(t, strings.HasPrefix(e.Name, "CCTV") || strings.Contains(e.Name, "卫视"))
	}
	for _, e := range input {
		if !keptSet[e.Name] {
			assert.False(t, strings.HasPrefix(e.Name, "CCTV") || strings.Contains(e.Name, "卫视"), e.Name)
		}
	}
}

func TestFilterNilPredicateKeepsAll(t *testing.T) {
	input := named("a", "b")
	assert.Equal(t, input, Filter(input, nil))
	assert.Empty(t, Filter(nil, ChinaChannels))
}

func TestPredicates(t *testing.T) {
	e := Entry{
		Name:  "BBC One",
		URL:   "http://bbc/one/index.M3U8?token=abc",
		Attrs: map[string]string{"group-title": "General;News"},
	}

	assert.True(t, NameHasPrefix("BBC")(e))
	assert.False(t, NameHasPrefix("One")(e))
	assert.True(t, NameContains("One")(e))
	assert.True(t, GroupContains("news")(e))
	assert.False(t, GroupContains("sports")(e))
	assert.True(t, URLHasExtension("m3u8")(e))
	assert.True(t, URLHasExtension(".ts", ".m3u8")(e))
	assert.False(t, URLHasExtension("ts")(e))
	assert.False(t, URLHasExtension("m3u8")(Entry{URL: "http://x/live"}))

	assert.True(t, Any(NameHasPrefix("x"), NameContains("BBC"))(e))
	assert.False(t, Any()(e))
	assert.True(t, All()(e))
	assert.False(t, All(NameHasPrefix("BBC"), NameContains("Two"))(e))
	assert.True(t, Not(NameContains("Two"))(e))
}
