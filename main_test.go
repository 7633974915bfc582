package main

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPlaylistServer(t *testing.T) *httptest.Server {
	t.Helper()
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/cn.m3u":
			fmt.Fprintf(w, "#EXTM3U\n"+
				"#EXTINF:-1 tvg-id=\"cctv1\",CCTV1\n%[1]s/live/1\n"+
				"#EXTINF:-1,ESPN\n%[1]s/live/espn\n"+
				"#EXTINF:-1,湖南卫视\n%[1]s/dead/hunan\n"+
				"#EXTINF:-1,CCTV1 HD\n%[1]s/live/1\n", server.URL)
		case "/live/1", "/live/espn":
			w.WriteHeader(http.StatusOK)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(b)
}

func TestRunWithoutProbe(t *testing.T) {
	server := newPlaylistServer(t)
	dir := t.TempDir()

	cmd := newRootCmd()
	cmd.SetArgs([]string{"--source", server.URL + "/cn.m3u", "--out-dir", dir})
	require.NoError(t, cmd.ExecuteContext(context.Background()))

	assert.Equal(t, "#EXTM3U\n"+
		"#EXTINF:-1 tvg-id=\"cctv1\",CCTV1\n"+server.URL+"/live/1\n"+
		"#EXTINF:-1,湖南卫视\n"+server.URL+"/dead/hunan\n",
		readFile(t, filepath.Join(dir, "china_tv_raw.m3u")))
	assert.Equal(t, "CCTV1|"+server.URL+"/live/1\n湖南卫视|"+server.URL+"/dead/hunan\n",
		readFile(t, filepath.Join(dir, "china_tv_raw.txt")))

	_, err := os.Stat(filepath.Join(dir, "china_tv_alive.m3u"))
	assert.True(t, os.IsNotExist(err))
}

func TestRunWithProbe(t *testing.T) {
	server := newPlaylistServer(t)
	dir := t.TempDir()

	cfg := &Config{
		Probe:        true,
		Source:       server.URL + "/cn.m3u",
		OutDir:       dir,
		NamePrefix:   []string{"CCTV"},
		NameContains: []string{"卫视"},
		Delay:        -1,
		Timeout:      time.Second,
	}
	require.NoError(t, run(context.Background(), cfg))

	assert.Equal(t, "#EXTM3U\n#EXTINF:-1 tvg-id=\"cctv1\",CCTV1\n"+server.URL+"/live/1\n",
		readFile(t, filepath.Join(dir, "china_tv_alive.m3u")))
	assert.Equal(t, "CCTV1|"+server.URL+"/live/1\n",
		readFile(t, filepath.Join(dir, "china_tv_alive.txt")))
}

func TestRunCustomFilterAndJSON(t *testing.T) {
	server := newPlaylistServer(t)
	dir := t.TempDir()

	cmd := newRootCmd()
	cmd.SetArgs([]string{
		"--source", server.URL + "/cn.m3u",
		"--out-dir", dir,
		"--prefix", "sports",
		"--name-prefix", "ESPN",
		"--name-contains", "",
		"--json",
	})
	require.NoError(t, cmd.ExecuteContext(context.Background()))

	assert.Equal(t, "ESPN|"+server.URL+"/live/espn\n", readFile(t, filepath.Join(dir, "sports_raw.txt")))
	assert.Contains(t, readFile(t, filepath.Join(dir, "sports_raw.json")), `"name": "ESPN"`)
}

func TestRunFetchFailure(t *testing.T) {
	server := newPlaylistServer(t)
	dir := t.TempDir()

	err := run(context.Background(), &Config{Source: server.URL + "/missing.m3u", OutDir: dir})
	assert.Error(t, err)

	files, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestRunEmptyPlaylist(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.m3u")
	require.NoError(t, os.WriteFile(path, nil, 0644))
	dir := t.TempDir()

	require.NoError(t, run(context.Background(), &Config{Source: path, OutDir: dir, Probe: true, Delay: -1}))
	assert.Equal(t, "#EXTM3U\n", readFile(t, filepath.Join(dir, "china_tv_raw.m3u")))
	assert.Equal(t, "", readFile(t, filepath.Join(dir, "china_tv_alive.txt")))
}

func TestRunUnwritableOutDir(t *testing.T) {
	server := newPlaylistServer(t)
	err := run(context.Background(), &Config{
		Source: server.URL + "/cn.m3u",
		OutDir: filepath.Join(t.TempDir(), "does", "not", "exist"),
	})
	assert.Error(t, err)
}

func TestRootCmdRejectsBadLogLevel(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"--log-level", "loud"})
	assert.Error(t, cmd.Execute())
}
