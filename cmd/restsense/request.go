package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/kbukum/restsense/httpclient"
	"github.com/kbukum/restsense/httpclient/rest"
	"github.com/kbukum/restsense/observability"
)

type requestFlags struct {
	data      string
	headers   map[string]string
	query     map[string]string
	bearer    string
	omitZero  bool
	showError bool
}

func newRequestCmd(a *app, verb string) *cobra.Command {
	var f requestFlags
	method := strings.ToUpper(verb)
	withBody := verb == "post" || verb == "put" || verb == "patch"

	cmd := &cobra.Command{
		Use:   verb + " <path>",
		Short: "Send a " + method + " request and print the decoded response",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runRequest(cmd.Context(), method, args[0], f)
		},
	}

	fl := cmd.Flags()
	fl.StringToStringVarP(&f.headers, "header", "H", nil, "request header, repeatable (name=value)")
	fl.StringToStringVarP(&f.query, "query", "q", nil, "query parameter, repeatable (name=value)")
	fl.StringVar(&f.bearer, "bearer", "", "bearer token")
	fl.BoolVar(&f.showError, "show-error", true, "print the decoded error body of failed requests")
	if withBody {
		fl.StringVarP(&f.data, "data", "d", "", "request body as JSON or YAML, or @file")
		fl.BoolVar(&f.omitZero, "omit-zero", false, "drop zero-valued fields from the body")
	}
	return cmd
}

func (a *app) runRequest(ctx context.Context, method, path string, f requestFlags) error {
	if ctx == nil {
		ctx = context.Background()
	}

	c, err := a.newClient()
	if err != nil {
		return err
	}
	defer c.Close()

	opts := []rest.RequestOption{rest.WithHeaders(f.headers), rest.WithQuery(f.query)}
	if f.bearer != "" {
		opts = append(opts, rest.WithAuth(&httpclient.AuthConfig{Type: httpclient.AuthBearer, Token: f.bearer}))
	}
	if f.omitZero {
		opts = append(opts, rest.WithIgnoreDefaultValues())
	}

	var body any
	if f.data != "" {
		if body, err = readBody(f.data); err != nil {
			return err
		}
	}

	resp, err := a.send(ctx, c, method, path, body, opts)
	if err != nil {
		var herr *httpclient.Error
		if f.showError && errors.As(err, &herr) {
			a.renderError(herr)
		}
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	return render(a.out, a.output, resp)
}

// renderError prints the problem document of a failed call, or its raw
// body when the server sent something else.
func (a *app) renderError(herr *httpclient.Error) {
	switch {
	case herr.Problem != nil:
		_ = render(a.errOut, a.output, herr.Problem)
	case len(herr.Body) > 0:
		_, _ = fmt.Fprintln(a.errOut, string(herr.Body))
	}
}

func (a *app) send(ctx context.Context, c *rest.Client, method, path string, body any, opts []rest.RequestOption) (any, error) {
	if a.output == formatRaw {
		opts = append(opts, rest.WithDeserializer(rawDeserializer{}))
	}

	switch method {
	case "GET":
		if a.output == formatRaw {
			return rest.GetContentString(ctx, c, path, opts...)
		}
		return rest.GetContent[any](ctx, c, path, opts...)
	case "POST":
		return rest.PostContentAs[any, any](ctx, c, path, body, opts...)
	case "PUT":
		return rest.PutContentAs[any, any](ctx, c, path, body, opts...)
	case "PATCH":
		resp, err := rest.Patch[any](ctx, c, path, body, opts...)
		if resp == nil {
			return nil, err
		}
		return resp.Data, err
	case "DELETE":
		return rest.DeleteContentAs[any](ctx, c, path, opts...)
	default:
		return nil, fmt.Errorf("unsupported method %s", method)
	}
}

// newClient builds the rest client from the resolved config, with metrics
// when metric export is enabled.
func (a *app) newClient() (*rest.Client, error) {
	var opts []httpclient.Option
	if a.cfg.Metrics.Enabled {
		m, err := observability.NewMetrics(observability.Meter(serviceName))
		if err != nil {
			return nil, err
		}
		opts = append(opts, httpclient.WithMetrics(m))
	}
	return rest.New(a.cfg.Client, opts...)
}

// readBody parses inline or @file data. YAML is a superset of JSON, so one
// decoder serves both.
func readBody(data string) (any, error) {
	raw := []byte(data)
	if name, ok := strings.CutPrefix(data, "@"); ok {
		var err error
		if raw, err = readSource(name); err != nil {
			return nil, err
		}
	}

	var v any
	if err := yaml.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("parse request body: %w", err)
	}
	return v, nil
}

func readSource(name string) ([]byte, error) {
	if name == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(name)
}

// rawDeserializer keeps response bodies as text for raw output.
type rawDeserializer struct{}

func (rawDeserializer) Deserialize(data []byte, v any) error {
	switch p := v.(type) {
	case *any:
		*p = string(data)
	case *string:
		*p = string(data)
	default:
		return fmt.Errorf("raw output cannot decode into %T", v)
	}
	return nil
}
