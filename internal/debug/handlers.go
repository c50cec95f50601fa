// Package debug exposes a small read-only Fiber surface over the
// daemon's live state, for operators diagnosing routing or process
// issues without going through the CLI's IPC round trip.
package debug

import (
	"github.com/gofiber/fiber/v2"
	fiberSwagger "github.com/gofiber/swagger"

	_ "github.com/pkyanam/proj/docs"
	"github.com/pkyanam/proj/internal/models"
	"github.com/pkyanam/proj/internal/routing"
)

// Supervisor is the slice of supervisor.Supervisor the debug surface needs.
type Supervisor interface {
	List() []models.ManagedProcess
}

// Registry is the slice of registry.Registry the debug surface needs.
type Registry interface {
	List() []models.Project
}

// RoutingTable is the slice of routing.Table the debug surface needs.
type RoutingTable interface {
	Snapshot() []routing.Route
}

// Handler serves the /debug/* diagnostic endpoints.
type Handler struct {
	supervisor Supervisor
	registry   Registry
	routing    RoutingTable
}

// New builds a debug Handler wired to live daemon state.
func New(sup Supervisor, reg Registry, routingTable RoutingTable) *Handler {
	return &Handler{supervisor: sup, registry: reg, routing: routingTable}
}

// Register mounts the handler's routes under app's /debug prefix.
func (h *Handler) Register(app fiber.Router) {
	group := app.Group("/debug")
	group.Get("/routes", h.GetRoutes)
	group.Get("/processes", h.GetProcesses)
	group.Get("/projects", h.GetProjects)

	app.Get("/swagger/*", fiberSwagger.WrapHandler)
}

// GetRoutes returns the routing table's current contents.
// @Summary List active routes
// @Description Returns every project currently routed to a backend port
// @Tags debug
// @Produce json
// @Success 200 {object} map[string]interface{} "Active routes"
// @Router /debug/routes [get]
func (h *Handler) GetRoutes(c *fiber.Ctx) error {
	routes := h.routing.Snapshot()
	return c.JSON(fiber.Map{"routes": routes, "count": len(routes)})
}

// GetProcesses returns every managed process the supervisor knows about.
// @Summary List managed processes
// @Description Returns every process the supervisor has spawned, including terminal ones
// @Tags debug
// @Produce json
// @Success 200 {object} map[string]interface{} "Managed processes"
// @Router /debug/processes [get]
func (h *Handler) GetProcesses(c *fiber.Ctx) error {
	procs := h.supervisor.List()
	return c.JSON(fiber.Map{"processes": procs, "count": len(procs)})
}

// GetProjects returns every project known to the registry.
// @Summary List projects
// @Description Returns every project the registry has on file
// @Tags debug
// @Produce json
// @Success 200 {object} map[string]interface{} "Projects"
// @Router /debug/projects [get]
func (h *Handler) GetProjects(c *fiber.Ctx) error {
	projects := h.registry.List()
	return c.JSON(fiber.Map{"projects": projects, "count": len(projects)})
}
