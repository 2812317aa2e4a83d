package server

import (
	"net/http"
	"sort"
	"strings"
)

// systemPaths are the endpoints registered by RegisterDefaultEndpoints.
var systemPaths = map[string]bool{
	"/health":  true,
	"/alive":   true,
	"/version": true,
}

// Route describes a registered route for startup logging.
type Route struct {
	Method  string `json:"method" yaml:"method"`
	Path    string `json:"path" yaml:"path"`
	Handler string `json:"handler" yaml:"handler"`
	System  bool   `json:"system" yaml:"system"`
}

// Routes lists registered routes: application routes first ordered by path
// and method, then the system endpoints.
func (s *Server) Routes() []Route {
	infos := s.engine.Routes()
	sort.Slice(infos, func(i, j int) bool {
		iSys, jSys := systemPaths[infos[i].Path], systemPaths[infos[j].Path]
		if iSys != jSys {
			return !iSys
		}
		if infos[i].Path != infos[j].Path {
			return infos[i].Path < infos[j].Path
		}
		return methodOrder(infos[i].Method) < methodOrder(infos[j].Method)
	})

	routes := make([]Route, 0, len(infos))
	for _, r := range infos {
		routes = append(routes, Route{
			Method:  r.Method,
			Path:    r.Path,
			Handler: formatHandlerName(r.Handler),
			System:  systemPaths[r.Path],
		})
	}
	return routes
}

// LogRoutes writes one debug line per registered route.
func (s *Server) LogRoutes() {
	for _, r := range s.Routes() {
		s.log.Debug("Route registered", map[string]interface{}{
			"method":  r.Method,
			"path":    r.Path,
			"handler": r.Handler,
			"system":  r.System,
		})
	}
}

// formatHandlerName shortens Gin's handler names, e.g.
// "github.com/acme/svc/api.(*UserPort).List-fm" becomes "UserPort.List" and
// "github.com/acme/svc/server/endpoint.Health.func1" becomes "endpoint.health".
func formatHandlerName(fullPath string) string {
	name := strings.TrimSuffix(fullPath, "-fm")
	if idx := strings.LastIndex(name, "/"); idx >= 0 {
		name = name[idx+1:]
	}
	name = strings.ReplaceAll(name, "(*", "")
	name = strings.ReplaceAll(name, ")", "")

	parts := strings.Split(name, ".")
	if len(parts) > 2 && strings.HasPrefix(parts[len(parts)-1], "func") {
		for i := len(parts) - 1; i > 0; i-- {
			if !strings.HasPrefix(parts[i], "func") {
				return parts[0] + "." + strings.ToLower(parts[i])
			}
		}
	}

	// Drop a lowercase package prefix in front of a receiver type.
	if len(parts) == 3 && parts[0] == strings.ToLower(parts[0]) {
		return parts[1] + "." + parts[2]
	}
	return name
}

func methodOrder(method string) int {
	switch method {
	case http.MethodGet:
		return 0
	case http.MethodPost:
		return 1
	case http.MethodPut:
		return 2
	case http.MethodPatch:
		return 3
	case http.MethodDelete:
		return 4
	default:
		return 5
	}
}
