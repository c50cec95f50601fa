package ipcclient

import (
	"bufio"
	"encoding/json"
	"net"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkyanam/proj/internal/models"
)

// startEchoServer accepts one connection, decodes one request, and
// replies with resp.
func startEchoServer(t *testing.T, resp models.Response) string {
	t.Helper()
	sockPath := filepath.Join(t.TempDir(), "daemon.sock")
	ln, err := net.Listen("unix", sockPath)
	require.NoError(t, err)
	t.Cleanup(func() { ln.Close() })

	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		scanner := bufio.NewScanner(conn)
		if !scanner.Scan() {
			return
		}
		data, _ := json.Marshal(resp)
		conn.Write(append(data, '\n'))
	}()

	return sockPath
}

func TestSendRoundTrip(t *testing.T) {
	sockPath := startEchoServer(t, models.SuccessResponse("ok"))

	resp, err := Send(sockPath, models.Request{Type: models.ReqStatus})
	require.NoError(t, err)
	assert.Equal(t, models.RespSuccess, resp.Type)
	assert.Equal(t, "ok", resp.Message)
}

func TestSendUnreachableSocket(t *testing.T) {
	_, err := Send(filepath.Join(t.TempDir(), "missing.sock"), models.Request{Type: models.ReqStatus})
	require.Error(t, err)
	var unreachable *ErrDaemonUnreachable
	assert.ErrorAs(t, err, &unreachable)
}
