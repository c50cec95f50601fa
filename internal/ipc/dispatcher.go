// Package ipc implements the daemon's control-plane: a Unix domain
// socket that decodes one newline-delimited JSON request per connection,
// dispatches it against the shared daemon state, and encodes one
// response back.
package ipc

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"sync"

	"github.com/pkyanam/proj/internal/logger"
	"github.com/pkyanam/proj/internal/models"
	"github.com/pkyanam/proj/internal/recovery"
	"github.com/pkyanam/proj/internal/registry"
	"github.com/pkyanam/proj/internal/routing"
)

// Supervisor is the slice of supervisor.Supervisor the dispatcher needs.
type Supervisor interface {
	Spawn(project, command string, args []string, workingDir string) (models.ManagedProcess, error)
	Stop(processID string) error
	Get(processID string) (models.ManagedProcess, bool)
	List() []models.ManagedProcess
	ListForProject(name string) []models.ManagedProcess
	RunningCount() int
}

// Registry is the slice of registry.Registry the dispatcher needs.
type Registry interface {
	Create(name, rootDir string) (models.Project, error)
	Get(name string) (models.Project, bool)
	List() []models.Project
	Count() int
}

// Routing is the slice of routing.Table the dispatcher needs, for status.
type Routing interface {
	Snapshot() []routing.Route
}

// Server holds one request's worth of exclusive access to the daemon's
// shared state: the supervisor, registry, and routing table.
type Server struct {
	mu         sync.Mutex
	supervisor Supervisor
	registry   Registry
	routing    Routing

	listener net.Listener
	onStop   func()
}

// New builds a dispatcher wired to the given components. onStop is
// invoked once when a shutdown request is received.
func New(sup Supervisor, reg Registry, routingTable Routing, onStop func()) *Server {
	return &Server{
		supervisor: sup,
		registry:   reg,
		routing:    routingTable,
		onStop:     onStop,
	}
}

// Listen binds the Unix domain socket at path, removing a stale socket
// file first if present.
func (s *Server) Listen(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing stale socket: %w", err)
	}
	ln, err := net.Listen("unix", path)
	if err != nil {
		return fmt.Errorf("binding ipc socket: %w", err)
	}
	s.listener = ln
	return nil
}

// Serve accepts connections until the listener is closed.
func (s *Server) Serve() error {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			return err
		}
		recovery.SafeGo("ipc.connection", func() {
			s.handleConn(conn)
		})
	}
}

// Close stops accepting new connections.
func (s *Server) Close() error {
	if s.listener == nil {
		return nil
	}
	return s.listener.Close()
}

// handleConn decodes exactly one request and writes exactly one response.
func (s *Server) handleConn(conn net.Conn) {
	defer conn.Close()

	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	if !scanner.Scan() {
		return
	}

	var req models.Request
	if err := json.Unmarshal(scanner.Bytes(), &req); err != nil {
		writeResponse(conn, models.ErrorResponse("malformed request: "+err.Error()))
		return
	}

	resp := s.dispatch(req)
	writeResponse(conn, resp)
}

func writeResponse(conn net.Conn, resp models.Response) {
	data, err := json.Marshal(resp)
	if err != nil {
		logger.Errorf("ipc: failed to encode response: %v", err)
		return
	}
	data = append(data, '\n')
	if _, err := conn.Write(data); err != nil {
		logger.Warnf("ipc: failed to write response: %v", err)
	}
}

func (s *Server) dispatch(req models.Request) models.Response {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch req.Type {
	case models.ReqCreateProject:
		return s.createProject(req)
	case models.ReqListProjects:
		return models.Response{Type: models.RespProjects, Projects: s.registry.List()}
	case models.ReqGetProject:
		return s.getProject(req)
	case models.ReqRunCommand:
		return s.runCommand(req)
	case models.ReqStopProcess:
		return s.stopProcess(req)
	case models.ReqListProcesses:
		return s.listProcesses(req)
	case models.ReqStatus:
		return s.status()
	case models.ReqShutdown:
		if s.onStop != nil {
			go s.onStop()
		}
		return models.SuccessResponse("shutting down")
	default:
		return models.ErrorResponse(fmt.Sprintf("unknown request type %q", req.Type))
	}
}

func (s *Server) createProject(req models.Request) models.Response {
	p, err := s.registry.Create(req.Name, req.RootDir)
	if err != nil {
		return models.ErrorResponse(createErrorMessage(req.Name, err))
	}
	return models.Response{Type: models.RespProject, Project: &p}
}

func createErrorMessage(name string, err error) string {
	if errors.Is(err, registry.ErrProjectExists) {
		return fmt.Sprintf("project %q already exists", name)
	}
	return err.Error()
}

func (s *Server) getProject(req models.Request) models.Response {
	p, ok := s.registry.Get(req.Name)
	if !ok {
		return models.ErrorResponse(fmt.Sprintf("project %q not found", req.Name))
	}
	return models.Response{Type: models.RespProject, Project: &p}
}

func (s *Server) runCommand(req models.Request) models.Response {
	p, ok := s.registry.Get(req.ProjectName)
	if !ok {
		return models.ErrorResponse(fmt.Sprintf("project %q not found", req.ProjectName))
	}

	proc, err := s.supervisor.Spawn(p.Name, req.Command, req.Args, p.RootDir)
	if err != nil {
		return models.ErrorResponse(err.Error())
	}
	return models.Response{Type: models.RespProcessStarted, Process: &proc}
}

func (s *Server) stopProcess(req models.Request) models.Response {
	if err := s.supervisor.Stop(req.ProcessID); err != nil {
		return models.ErrorResponse(err.Error())
	}
	return models.SuccessResponse("")
}

func (s *Server) listProcesses(req models.Request) models.Response {
	var procs []models.ManagedProcess
	if req.ProjectName != "" {
		procs = s.supervisor.ListForProject(req.ProjectName)
	} else {
		procs = s.supervisor.List()
	}
	return models.Response{Type: models.RespProcesses, Processes: procs}
}

func (s *Server) status() models.Response {
	return models.Response{
		Type: models.RespStatus,
		Status: &models.StatusPayload{
			Running:      true,
			ProjectCount: s.registry.Count(),
			ProcessCount: s.supervisor.RunningCount(),
		},
	}
}
