package portprobe

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

const sampleProcNetTCP = `  sl  local_address rem_address   st tx_queue rx_queue tr tm->when retrnsmt   uid  timeout inode
   0: 00000000:1F90 00000000:0000 0A 00000000:00000000 00:00000000 00000000     0        0 12345 1 0000000000000000 100 0 0 10 0
   1: 0100007F:0050 00000000:0000 01 00000000:00000000 00:00000000 00000000     0        0 12346 1 0000000000000000 100 0 0 10 0
`

func TestParseListeningPortsFindsListenRow(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tcp")
	assert.NoError(t, os.WriteFile(path, []byte(sampleProcNetTCP), 0o644))

	listening, err := parseListeningPorts(path)
	assert.NoError(t, err)
	assert.Equal(t, 8080, listening[12345])
	_, hasNonListen := listening[12346]
	assert.False(t, hasNonListen)
}

func TestParseListeningPortsMissingFile(t *testing.T) {
	_, err := parseListeningPorts("/nonexistent/path/tcp")
	assert.Error(t, err)
}

func TestSocketInodesForSelf(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("requires /proc")
	}
	inodes := socketInodesForPID(os.Getpid())
	assert.NotNil(t, inodes)
}
