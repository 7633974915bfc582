package m3uparser

// UnknownName is used when an #EXTINF line carries no display name.
const UnknownName = "Unknown"

// Entry - One playlist record: a channel name, its stream URL and the
// metadata read from its #EXTINF line.
type Entry struct {
	Name      string
	URL       string
	Attrs     map[string]string
	RawExtinf string
}

func (e Entry) attr(key string) string {
	return e.Attrs[key]
}

// TvgID - tvg-id attribute.
func (e Entry) TvgID() string { return e.attr("tvg-id") }

// TvgName - tvg-name attribute.
func (e Entry) TvgName() string { return e.attr("tvg-name") }

// TvgURL - tvg-url attribute.
func (e Entry) TvgURL() string { return e.attr("tvg-url") }

// Logo - tvg-logo attribute.
func (e Entry) Logo() string { return e.attr("tvg-logo") }

// Group - group-title attribute.
func (e Entry) Group() string { return e.attr("group-title") }

// Country - tvg-country attribute.
func (e Entry) Country() string { return e.attr("tvg-country") }

// Language - tvg-language attribute.
func (e Entry) Language() string { return e.attr("tvg-language") }
