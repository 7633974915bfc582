// Package m3uparser parses M3U playlists into entries, filters and
// deduplicates them, probes stream liveness and writes the result back as
// M3U, name|url text or JSON.
package m3uparser

import (
	"context"
	"net/http"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

// Stream statuses used in the JSON output.
const (
	StatusGood       = "GOOD"
	StatusBad        = "BAD"
	StatusNotChecked = "NOT CHECKED"
)

// M3uParser - A stateful parser: a parsed list plus the operations applied
// to it. ResetOperations goes back to the list as parsed.
type M3uParser struct {
	streamsInfo       []Entry
	streamsInfoBackup []Entry
	status            map[string]bool
	Client            *http.Client
	Timeout           time.Duration
	UserAgent         string
	Countries         CountryResolver
}

func (p *M3uParser) isEmpty() bool {
	return len(p.streamsInfo) == 0
}

// ParseM3u - Parses the content of a local file or URL.
func (p *M3uParser) ParseM3u(ctx context.Context, path string) error {
	if p.Timeout == 0 {
		p.Timeout = DefaultTimeout
	}
	if p.UserAgent == "" {
		p.UserAgent = DefaultUserAgent
	}
	if isHTTPURL(path) {
		log.Infof("Fetching m3u URL: %s", path)
	} else {
		log.Infof("Reading m3u file: %s", path)
	}
	content, err := Fetch(ctx, p.Client, path, p.UserAgent, p.Timeout)
	if err != nil {
		return err
	}
	p.ParseContent(content)
	return nil
}

// ParseContent - Replaces the current list with the entries in content.
func (p *M3uParser) ParseContent(content string) {
	p.streamsInfo = Parse(content)
	p.streamsInfoBackup = p.streamsInfo
	p.status = nil
	if p.isEmpty() {
		log.Infoln("No streams parsed.")
	}
}

// FilterBy - Keeps only the entries matching keep.
func (p *M3uParser) FilterBy(keep Predicate) {
	if p.isEmpty() {
		log.Infof("No streams info to filter.")
		return
	}
	p.streamsInfo = Filter(p.streamsInfo, keep)
}

// RetrieveByCategory - Keeps entries whose group-title contains one of the filter words.
func (p *M3uParser) RetrieveByCategory(filters ...string) {
	p.FilterBy(groupAny(filters))
}

// RemoveByCategory - Drops entries whose group-title contains one of the filter words.
func (p *M3uParser) RemoveByCategory(filters ...string) {
	p.FilterBy(Not(groupAny(filters)))
}

// RetrieveByExtension - Keeps entries whose URL has one of the extensions.
func (p *M3uParser) RetrieveByExtension(extensions ...string) {
	p.FilterBy(URLHasExtension(extensions...))
}

// RemoveByExtension - Drops entries whose URL has one of the extensions.
func (p *M3uParser) RemoveByExtension(extensions ...string) {
	p.FilterBy(Not(URLHasExtension(extensions...)))
}

func groupAny(filters []string) Predicate {
	preds := make([]Predicate, 0, len(filters))
	for _, f := range filters {
		if strings.TrimSpace(f) != "" {
			preds = append(preds, GroupContains(f))
		}
	}
	if len(preds) == 0 {
		log.Warnln("Filter word/s missing!!!")
		return func(Entry) bool { return true }
	}
	return Any(preds...)
}

// Dedupe - Drops entries whose URL was already seen.
func (p *M3uParser) Dedupe() {
	p.streamsInfo = Dedupe(p.streamsInfo)
}

// ResetOperations - Reset the stream information list to initial state before various operations.
func (p *M3uParser) ResetOperations() {
	p.streamsInfo = p.streamsInfoBackup
}

// GetStreamsSlice - Get the current entries.
func (p *M3uParser) GetStreamsSlice() []Entry {
	return p.streamsInfo
}

// CheckLive - Probes the current entries and returns the alive ones.
// Verdicts are remembered for the JSON status field.
func (p *M3uParser) CheckLive(ctx context.Context, prober *Prober) []Entry {
	if prober == nil {
		prober = &Prober{}
	}
	if prober.Client == nil {
		prober.Client = p.Client
	}
	if prober.UserAgent == "" {
		prober.UserAgent = p.UserAgent
	}
	results := prober.ProbeAll(ctx, p.streamsInfo)
	p.status = make(map[string]bool, len(results))
	alive := make([]Entry, 0, len(results))
	for _, r := range results {
		p.status[r.Entry.URL] = r.Alive
		if r.Alive {
			alive = append(alive, r.Entry)
		}
	}
	return alive
}

// GetStreamsInfo - JSON view of the current entries.
func (p *M3uParser) GetStreamsInfo() []StreamInfo {
	streams := make([]StreamInfo, 0, len(p.streamsInfo))
	for _, e := range p.streamsInfo {
		status := StatusNotChecked
		if alive, ok := p.status[e.URL]; ok {
			status = StatusBad
			if alive {
				status = StatusGood
			}
		}
		streams = append(streams, NewStreamInfo(e, status, p.Countries))
	}
	return streams
}

// GetStreamsJSON - Get the streams information as json.
func (p *M3uParser) GetStreamsJSON() string {
	var b strings.Builder
	if err := WriteJSON(&b, p.GetStreamsInfo()); err != nil {
		log.Warnln(err)
		return ""
	}
	return b.String()
}

// SaveJSONToFile - Save to JSON file.
func (p *M3uParser) SaveJSONToFile(filename string) error {
	if !strings.HasSuffix(filename, ".json") {
		filename = filename + ".json"
	}
	log.Infof("Saving to file: %s", filename)
	return SaveJSON(filename, p.GetStreamsInfo())
}
