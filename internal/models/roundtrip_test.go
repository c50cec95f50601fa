package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateName(t *testing.T) {
	valid := []string{"a", "my-app", "my_app", "App123", "x123456789012345678901234567890123456789012345678901234567890"}
	invalid := []string{"", "-leading", "_leading", "has space", "has.dot", string(make([]byte, 65))}

	for _, n := range valid {
		assert.True(t, ValidateName(n), n)
	}
	for _, n := range invalid {
		assert.False(t, ValidateName(n), n)
	}
}

func TestProjectJSONRoundTrip(t *testing.T) {
	port := 4242
	p := Project{
		ID:        "abc-123",
		Name:      "alpha",
		RootDir:   "/tmp/alpha",
		CreatedAt: time.Now().UTC().Truncate(time.Second),
		Port:      &port,
	}

	data, err := json.Marshal(p)
	require.NoError(t, err)

	var out Project
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, p, out)
}

func TestRequestJSONRoundTrip(t *testing.T) {
	req := Request{
		Type:        ReqRunCommand,
		ProjectName: "alpha",
		Command:     "npm",
		Args:        []string{"run", "dev"},
	}

	data, err := json.Marshal(req)
	require.NoError(t, err)

	var out Request
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, req, out)
}

func TestResponseJSONRoundTrip(t *testing.T) {
	resp := Response{
		Type:      RespProcessStarted,
		Process:   &ManagedProcess{ProcessID: "p1", ProjectName: "alpha", Status: StatusRunning},
	}

	data, err := json.Marshal(resp)
	require.NoError(t, err)

	var out Response
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, resp, out)
}

func TestHost(t *testing.T) {
	p := Project{Name: "alpha"}
	assert.Equal(t, "alpha.localhost", p.Host())
}
