package m3uparser

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// WriteM3U - #EXTM3U header, then each entry's raw #EXTINF line and URL.
func WriteM3U(w io.Writer, entries []Entry) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintln(bw, headerMarker); err != nil {
		return err
	}
	for _, e := range entries {
		if _, err := fmt.Fprintf(bw, "%s\n%s\n", e.RawExtinf, e.URL); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteTXT - One "name|url" line per entry.
func WriteTXT(w io.Writer, entries []Entry) error {
	bw := bufio.NewWriter(w)
	for _, e := range entries {
		if _, err := fmt.Fprintf(bw, "%s|%s\n", e.Name, e.URL); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// StreamInfo is the JSON shape of an entry.
type StreamInfo struct {
	Name     string            `json:"name"`
	Logo     string            `json:"logo"`
	URL      string            `json:"url"`
	Category string            `json:"category"`
	Language string            `json:"language"`
	Country  map[string]string `json:"country"`
	Tvg      map[string]string `json:"tvg"`
	Status   string            `json:"status"`
}

// NewStreamInfo - JSON view of e. status is "GOOD", "BAD" or "NOT CHECKED".
func NewStreamInfo(e Entry, status string, countries CountryResolver) StreamInfo {
	code := e.Country()
	name := ""
	if countries != nil && code != "" {
		name = countries.Name(code)
	}
	return StreamInfo{
		Name:     e.Name,
		Logo:     e.Logo(),
		URL:      e.URL,
		Category: e.Group(),
		Language: e.Language(),
		Country:  map[string]string{"code": code, "name": name},
		Tvg:      map[string]string{"id": e.TvgID(), "name": e.TvgName(), "url": e.TvgURL()},
		Status:   status,
	}
}

// WriteJSON - Indented JSON array of results.
func WriteJSON(w io.Writer, streams []StreamInfo) error {
	if streams == nil {
		streams = []StreamInfo{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	enc.SetEscapeHTML(false)
	return enc.Encode(streams)
}

// SaveFile - Writes path through write, all or nothing: the content goes
// to a temporary file in the same directory which then replaces path.
func SaveFile(path string, write func(io.Writer) error) (err error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if err = write(tmp); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	if err = tmp.Chmod(0644); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

// SaveM3U - Saves entries as an M3U playlist.
func SaveM3U(path string, entries []Entry) error {
	return SaveFile(path, func(w io.Writer) error { return WriteM3U(w, entries) })
}

// SaveTXT - Saves entries as name|url lines.
func SaveTXT(path string, entries []Entry) error {
	return SaveFile(path, func(w io.Writer) error { return WriteTXT(w, entries) })
}

// SaveJSON - Saves streams as indented JSON.
func SaveJSON(path string, streams []StreamInfo) error {
	return SaveFile(path, func(w io.Writer) error { return WriteJSON(w, streams) })
}
