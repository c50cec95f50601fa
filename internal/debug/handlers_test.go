package debug

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkyanam/proj/internal/models"
	"github.com/pkyanam/proj/internal/routing"
)

type fakeSupervisor struct {
	procs []models.ManagedProcess
}

func (f fakeSupervisor) List() []models.ManagedProcess { return f.procs }

type fakeRegistry struct {
	projects []models.Project
}

func (f fakeRegistry) List() []models.Project { return f.projects }

type fakeRouting struct {
	routes []routing.Route
}

func (f fakeRouting) Snapshot() []routing.Route { return f.routes }

func TestGetRoutesEmpty(t *testing.T) {
	h := New(fakeSupervisor{}, fakeRegistry{}, fakeRouting{})
	app := fiber.New()
	h.Register(app)

	resp, err := app.Test(httptest.NewRequest("GET", "/debug/routes", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, float64(0), body["count"])
}

func TestGetProcessesReturnsCount(t *testing.T) {
	h := New(
		fakeSupervisor{procs: []models.ManagedProcess{{ProcessID: "p1"}, {ProcessID: "p2"}}},
		fakeRegistry{},
		fakeRouting{},
	)
	app := fiber.New()
	h.Register(app)

	resp, err := app.Test(httptest.NewRequest("GET", "/debug/processes", nil))
	require.NoError(t, err)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, float64(2), body["count"])
}

func TestGetProjectsReturnsCount(t *testing.T) {
	h := New(
		fakeSupervisor{},
		fakeRegistry{projects: []models.Project{{Name: "alpha"}}},
		fakeRouting{},
	)
	app := fiber.New()
	h.Register(app)

	resp, err := app.Test(httptest.NewRequest("GET", "/debug/projects", nil))
	require.NoError(t, err)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, float64(1), body["count"])
}
