package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	apperrors "github.com/kbukum/restsense/errors"
	"github.com/kbukum/restsense/httpclient/rest"
	"github.com/kbukum/restsense/logger"
	"github.com/kbukum/restsense/observability"
	"github.com/kbukum/restsense/server"
	"github.com/kbukum/restsense/server/results"
)

func newServeCmd(a *app) *cobra.Command {
	var port int
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a demo API rendering the named result types",
		Long: `serve starts an HTTP server with:

  GET  /status/:code      the named result for code, as a problem document
  POST /echo              the validated request body
  GET  /upstream/*path    the response of the configured upstream (client.base_url)
  GET  /health, /alive, /version`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if port > 0 {
				a.cfg.Server.Port = port
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx)
		},
	}
	cmd.Flags().IntVarP(&port, "port", "p", 0, "listen port (default from config, 8080)")
	return cmd
}

func (a *app) serve(ctx context.Context) error {
	shutdown, err := a.initTelemetry(ctx)
	if err != nil {
		return err
	}
	defer shutdown()

	srv := server.New(a.cfg.Server, logger.Get("server"))

	var upstream *rest.Client
	var checkers []observability.HealthChecker
	if a.cfg.Client.BaseURL != "" {
		if upstream, err = a.newClient(); err != nil {
			return err
		}
		defer upstream.Close()
		checkers = append(checkers, upstream.HTTP().HealthChecker("/"))
	}

	if err := srv.ApplyDefaults(a.cfg.Name, checkers...); err != nil {
		return err
	}
	registerDemoRoutes(srv.GinEngine(), upstream)
	srv.LogRoutes()

	if err := srv.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()
	return srv.Stop(context.Background())
}

// initTelemetry installs trace propagation and, when enabled, the OTLP
// tracer and meter providers. The returned func flushes them.
func (a *app) initTelemetry(ctx context.Context) (func(), error) {
	observability.InstallPropagator()
	var shutdowns []func(context.Context) error

	if a.cfg.Tracing.Enabled {
		tp, err := observability.InitTracer(ctx, a.cfg.Tracing)
		if err != nil {
			return nil, err
		}
		shutdowns = append(shutdowns, tp.Shutdown)
	}
	if a.cfg.Metrics.Enabled {
		mp, err := observability.InitMeter(ctx, a.cfg.Metrics)
		if err != nil {
			return nil, err
		}
		shutdowns = append(shutdowns, mp.Shutdown)
	}

	return func() {
		for _, fn := range shutdowns {
			if err := fn(context.Background()); err != nil {
				a.log.Warn("Telemetry shutdown failed", logger.MergeWithError(nil, err))
			}
		}
	}, nil
}

type echoRequest struct {
	Name  string   `json:"name" xml:"name" yaml:"name" validate:"required"`
	Email string   `json:"email,omitempty" xml:"email,omitempty" yaml:"email,omitempty" validate:"omitempty,email"`
	Tags  []string `json:"tags,omitempty" xml:"tags,omitempty" yaml:"tags,omitempty"`
}

// registerDemoRoutes mounts the demo API. upstream may be nil.
func registerDemoRoutes(e *gin.Engine, upstream *rest.Client) {
	e.GET("/status/:code", results.Handle(statusResult))
	e.POST("/echo", results.Handle(echo))
	if upstream != nil {
		e.GET("/upstream/*path", results.Handle(relay(upstream)))
	}
}

func statusResult(c *gin.Context) results.Result {
	code, err := strconv.Atoi(c.Param("code"))
	if err != nil || code < 100 || code > 599 {
		return results.Problem(http.StatusBadRequest, "status code must be a number between 100 and 599")
	}

	problem := apperrors.NewProblem(code, "demo result for status "+strconv.Itoa(code))
	if r, ok := results.ForStatus(code, problem); ok {
		if code == http.StatusServiceUnavailable || code == http.StatusTooManyRequests {
			r.WithHeader("Retry-After", "30")
		}
		return r
	}
	return results.Status(code)
}

func echo(c *gin.Context) results.Result {
	var req echoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return results.Problem(http.StatusBadRequest, "body must be a JSON object: "+err.Error())
	}
	if r := results.Validate(req); r != nil {
		return r
	}
	return results.OK(req)
}

func relay(upstream *rest.Client) func(*gin.Context) results.Result {
	return func(c *gin.Context) results.Result {
		query := make(map[string]string, len(c.Request.URL.Query()))
		for k := range c.Request.URL.Query() {
			query[k] = c.Query(k)
		}
		v, err := rest.GetContent[any](c.Request.Context(), upstream, c.Param("path"), rest.WithQuery(query))
		if err != nil {
			return results.FromError(err)
		}
		if v == nil {
			return results.NoContent()
		}
		return results.OK(v)
	}
}
