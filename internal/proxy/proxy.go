// Package proxy implements the daemon's single-listener, host-routed
// reverse proxy: it derives a project name from the Host header, looks
// the backend port up in the routing table, and forwards the request
// (including HTTP upgrades) to 127.0.0.1:<port>.
package proxy

import (
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"
	"time"

	"github.com/pkyanam/proj/internal/logger"
)

// Lookup resolves a project name to its routed backend port.
type Lookup interface {
	Lookup(name string) (int, bool)
}

const dialTimeout = 5 * time.Second

// Server is the reverse proxy's HTTP handler.
type Server struct {
	routes Lookup
}

// New returns a proxy handler backed by routes.
func New(routes Lookup) *Server {
	return &Server{routes: routes}
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	project := projectFromHost(r.Host)
	if project == "" || project == "localhost" {
		notFound(w, "request the daemon via <project>.localhost:<port>, not the bare host")
		return
	}

	port, ok := s.routes.Lookup(project)
	if !ok {
		notFound(w, fmt.Sprintf("no running backend for project %q", project))
		return
	}

	backend := fmt.Sprintf("127.0.0.1:%d", port)

	if isUpgrade(r) {
		s.serveUpgrade(w, r, backend)
		return
	}

	target, _ := url.Parse("http://" + backend)
	rp := &httputil.ReverseProxy{
		Director: func(req *http.Request) {
			req.URL.Scheme = target.Scheme
			req.URL.Host = target.Host
			// Host is left untouched: the spec forbids rewriting it, and
			// dev servers (e.g. Vite's allowedHosts) validate it against
			// the project's virtual hostname, not the backend address.
		},
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			logger.Warnf("proxy: %s -> %s: %v", project, backend, err)
			http.Error(w, fmt.Sprintf("proj: backend unreachable: %v", err), http.StatusBadGateway)
		},
	}
	rp.ServeHTTP(w, r)
}

// projectFromHost extracts the project name from a Host header: the
// substring before the first '.'. The remainder is expected to start
// with "localhost", optionally followed by ":<port>"; any other suffix
// is accepted but logged at debug. A host with no '.' yields "", except
// a bare "localhost", which is returned as is.
func projectFromHost(host string) string {
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	idx := strings.Index(host, ".")
	if idx < 0 {
		if host == "localhost" {
			return host
		}
		return ""
	}
	name, rest := host[:idx], host[idx+1:]
	if !strings.HasPrefix(rest, "localhost") {
		logger.Debugf("proxy: unexpected host suffix %q for project %q", rest, name)
	}
	return name
}

// isUpgrade reports whether the request is asking to switch protocols,
// per the Connection/Upgrade header pair (RFC 7230 §6.7).
func isUpgrade(r *http.Request) bool {
	if r.Header.Get("Upgrade") == "" {
		return false
	}
	for _, token := range strings.Split(r.Header.Get("Connection"), ",") {
		if strings.EqualFold(strings.TrimSpace(token), "upgrade") {
			return true
		}
	}
	return false
}

func notFound(w http.ResponseWriter, reason string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	fmt.Fprintf(w, "proj: %s\nuse http://<project>.localhost:8080/ to reach a running project\n", reason)
}

// serveUpgrade hijacks the client connection and relays it byte-for-byte
// against the backend, so WebSocket (or any other) upgrade protocol
// passes through unmodified. httputil.ReverseProxy is not used here: its
// HTTP transport can re-chunk or otherwise disturb non-HTTP bytes once
// the connection has switched protocols.
func (s *Server) serveUpgrade(w http.ResponseWriter, r *http.Request, backend string) {
	backendConn, err := net.DialTimeout("tcp", backend, dialTimeout)
	if err != nil {
		http.Error(w, fmt.Sprintf("proj: backend unreachable: %v", err), http.StatusBadGateway)
		return
	}
	defer backendConn.Close()

	hj, ok := w.(http.Hijacker)
	if !ok {
		http.Error(w, "proj: upgrade not supported by this connection", http.StatusInternalServerError)
		return
	}
	clientConn, clientBuf, err := hj.Hijack()
	if err != nil {
		http.Error(w, fmt.Sprintf("proj: hijack failed: %v", err), http.StatusInternalServerError)
		return
	}
	defer clientConn.Close()

	if err := r.Write(backendConn); err != nil {
		logger.Warnf("proxy: failed to replay upgrade request to backend: %v", err)
		return
	}
	if buffered := clientBuf.Reader.Buffered(); buffered > 0 {
		data := make([]byte, buffered)
		if _, err := io.ReadFull(clientBuf, data); err == nil {
			backendConn.Write(data)
		}
	}

	done := make(chan struct{}, 2)
	go func() {
		io.Copy(backendConn, clientConn)
		done <- struct{}{}
	}()
	go func() {
		io.Copy(clientConn, backendConn)
		done <- struct{}{}
	}()
	<-done
}
