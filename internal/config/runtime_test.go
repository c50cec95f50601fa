package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectUsesDataDirOverride(t *testing.T) {
	t.Setenv("PROJ_DATA_DIR", "/tmp/proj-test-data")
	rc := Detect()
	assert.Equal(t, "/tmp/proj-test-data", rc.DataDir)
	assert.Equal(t, filepath.Join("/tmp/proj-test-data", "run"), rc.RunDir)
}

func TestDetectDefaultProxyPort(t *testing.T) {
	t.Setenv("PROJ_PROXY_PORT", "")
	rc := Detect()
	assert.Equal(t, DefaultProxyPort, rc.ProxyPort)
}

func TestDetectProxyPortOverride(t *testing.T) {
	t.Setenv("PROJ_PROXY_PORT", "9090")
	rc := Detect()
	assert.Equal(t, 9090, rc.ProxyPort)
}

func TestDetectIgnoresInvalidProxyPort(t *testing.T) {
	t.Setenv("PROJ_PROXY_PORT", "not-a-port")
	rc := Detect()
	assert.Equal(t, DefaultProxyPort, rc.ProxyPort)
}

func TestProjectPaths(t *testing.T) {
	rc := &RuntimeConfig{DataDir: "/home/user/.proj", RunDir: "/home/user/.proj/run"}
	assert.Equal(t, "/home/user/.proj/projects", rc.ProjectsDir())
	assert.Equal(t, "/home/user/.proj/projects/myapp", rc.ProjectDir("myapp"))
	assert.Equal(t, "/home/user/.proj/run/daemon.sock", rc.SocketPath())
	assert.Equal(t, "/home/user/.proj/run/daemon.pid", rc.PidPath())
}

func TestParsePort(t *testing.T) {
	cases := []struct {
		in    string
		want  int
		valid bool
	}{
		{"8080", 8080, true},
		{"", 0, false},
		{"0", 0, false},
		{"70000", 0, false},
		{"abc", 0, false},
	}
	for _, c := range cases {
		got, ok := parsePort(c.in)
		assert.Equal(t, c.valid, ok, c.in)
		if ok {
			assert.Equal(t, c.want, got, c.in)
		}
	}
}
