package cli

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/truchet/pkg/cache"
	"github.com/matzehuels/truchet/pkg/errors"
	"github.com/matzehuels/truchet/pkg/observability"
	"github.com/matzehuels/truchet/pkg/pipeline"
)

const (
	defaultAddr     = ":8080"
	redisURLEnv     = "TRUCHET_REDIS_URL"
	redisKeyPrefix  = "truchet:"
	shutdownTimeout = 10 * time.Second
	requestTimeout  = 2 * time.Minute

	headerRequestID = "X-Request-ID"
	headerCache     = "X-Cache"
	headerSeed      = "X-Truchet-Seed"
)

// serveOpts holds the flags of the serve command.
type serveOpts struct {
	addr     string
	redisURL string
	noCache  bool
}

// serveCommand creates the serve command, which exposes the pipeline over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve patterns over HTTP",
		Long: `Serve patterns over HTTP.

Endpoints:
  GET /healthz               liveness probe
  GET /pattern.{format}      render a pattern (svg, png, pdf, json)

Query parameters mirror the generate flags: seed, width, height, border,
rotation, fg, bg, min_depth, max_depth, split_chance, min_lines,
line_spacing, stroke, parallel, precision and scale. Values from the config
file act as defaults.

Generated scenes and artifacts are cached in Redis when --redis or
` + redisURLEnv + ` is set, and on disk otherwise.`,
		Example: `  truchet serve
  truchet serve --addr :9000 --redis redis://localhost:6379/0
  curl -o hex.png 'http://localhost:8080/pattern.png?seed=7&max_depth=4'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("redis") {
				opts.redisURL = os.Getenv(redisURLEnv)
			}
			return c.runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", defaultAddr, "listen address")
	cmd.Flags().StringVar(&opts.redisURL, "redis", "", "Redis URL for the shared cache (default $"+redisURLEnv+")")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts serveOpts) error {
	base, path, err := loadConfig(c.configPath)
	if err != nil {
		return err
	}
	if path != "" {
		c.Logger.Info("loaded config", "path", path)
	}

	store, keyer, err := c.serveCache(ctx, opts)
	if err != nil {
		return err
	}
	runner := pipeline.NewRunner(store, keyer, c.Logger)
	defer runner.Close()

	srv := &http.Server{
		Addr:              opts.addr,
		Handler:           newRouter(runner, base, c.Logger),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		printInfo("Serving on %s", StyleLink.Render(listenURL(opts.addr)))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		c.Logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// listenURL turns a listen address into a browsable URL.
func listenURL(addr string) string {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return "http://" + addr
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "localhost"
	}
	return "http://" + net.JoinHostPort(host, port)
}

// serveCache selects the server's cache: Redis with namespaced keys when a
// URL is given, the file cache otherwise.
func (c *CLI) serveCache(ctx context.Context, opts serveOpts) (cache.Cache, cache.Keyer, error) {
	if opts.noCache {
		return cache.NewNullCache(), nil, nil
	}
	if opts.redisURL == "" {
		store, err := newCache(false)
		return store, nil, err
	}
	store, err := cache.NewRedisCache(ctx, opts.redisURL)
	if err != nil {
		return nil, nil, err
	}
	c.Logger.Info("using redis cache", "prefix", redisKeyPrefix)
	return store, cache.NewScopedKeyer(cache.NewDefaultKeyer(), redisKeyPrefix), nil
}

// =============================================================================
// Router
// =============================================================================

// newRouter builds the HTTP handler. base holds the defaults applied before
// the query parameters of each request.
func newRouter(runner *pipeline.Runner, base pipeline.Options, logger *log.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(requestID(logger))
	r.Use(observe)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Get("/pattern.{format}", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
		defer cancel()
		logger := requestLogger(ctx)

		format := chi.URLParam(r, "format")
		if err := pipeline.ValidateFormat(format); err != nil {
			writeError(w, r, err)
			return
		}
		opts, err := optionsFromQuery(base, r.URL.Query())
		if err != nil {
			writeError(w, r, err)
			return
		}
		opts.Formats = []string{format}

		result, err := runner.Execute(ctx, opts)
		if err != nil {
			writeError(w, r, err)
			return
		}

		status := "miss"
		if result.CacheInfo.RenderHit {
			status = "hit"
		}
		logger.Debug("served pattern", "format", format, "seed", result.Params.Seed, "cache", status)

		w.Header().Set("Content-Type", pipeline.ContentTypes[format])
		w.Header().Set(headerCache, status)
		w.Header().Set(headerSeed, strconv.FormatUint(result.Params.Seed, 10))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(result.Artifacts[format])
	})

	return r
}

// requestID tags each request with a UUID, echoed in the response and
// attached to the request logger. A valid incoming X-Request-ID is kept.
func requestID(logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(headerRequestID)
			if _, err := uuid.Parse(id); err != nil {
				id = uuid.NewString()
			}
			w.Header().Set(headerRequestID, id)
			ctx := withRequestLogger(r.Context(), logger, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// observe reports requests and responses to the HTTP hooks.
func observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		hooks := observability.HTTP()
		hooks.OnRequest(r.Context(), r.Method, r.URL.Path)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		hooks.OnResponse(r.Context(), r.Method, r.URL.Path, status, time.Since(start))
	})
}

// =============================================================================
// Query Parsing
// =============================================================================

// optionsFromQuery overlays the query parameters onto base.
func optionsFromQuery(base pipeline.Options, q url.Values) (pipeline.Options, error) {
	opts := base
	p := queryParser{q: q}

	p.uint64("seed", func(v uint64) { opts.Seed = v })
	p.int("width", func(v int) { opts.Width = v })
	p.int("height", func(v int) { opts.Height = v })
	p.float("border", func(v float64) { opts.Border = pipeline.Float(v) })
	p.float("rotation", func(v float64) { opts.Rotation = pipeline.Float(v) })
	p.string("fg", func(v string) { opts.Foreground = v })
	p.string("bg", func(v string) { opts.Background = v })
	p.int("min_depth", func(v int) { opts.MinDepth = pipeline.Int(v) })
	p.int("max_depth", func(v int) { opts.MaxDepth = v })
	p.int("split_chance", func(v int) { opts.SplitChance = pipeline.Int(v) })
	p.int("min_lines", func(v int) { opts.MinLines = v })
	p.float("line_spacing", func(v float64) { opts.LineSpacing = v })
	p.float("stroke", func(v float64) { opts.StrokeWeight = v })
	p.bool("parallel", func(v bool) { opts.Parallel = v })
	p.int("precision", func(v int) { opts.Precision = v })
	p.float("scale", func(v float64) { opts.Scale = v })

	return opts, p.err
}

// queryParser applies query values and keeps the first parse error.
type queryParser struct {
	q   url.Values
	err error
}

func (p *queryParser) value(key string) (string, bool) {
	if p.err != nil || !p.q.Has(key) {
		return "", false
	}
	return p.q.Get(key), true
}

func (p *queryParser) fail(key, raw string, err error) {
	p.err = errors.Wrap(errors.ErrCodeInvalidInput, err, "query parameter %s=%q", key, raw)
}

func (p *queryParser) string(key string, set func(string)) {
	if v, ok := p.value(key); ok {
		set(v)
	}
}

func (p *queryParser) int(key string, set func(int)) {
	if raw, ok := p.value(key); ok {
		v, err := strconv.Atoi(raw)
		if err != nil {
			p.fail(key, raw, err)
			return
		}
		set(v)
	}
}

func (p *queryParser) uint64(key string, set func(uint64)) {
	if raw, ok := p.value(key); ok {
		v, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			p.fail(key, raw, err)
			return
		}
		set(v)
	}
}

func (p *queryParser) float(key string, set func(float64)) {
	if raw, ok := p.value(key); ok {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			p.fail(key, raw, err)
			return
		}
		set(v)
	}
}

func (p *queryParser) bool(key string, set func(bool)) {
	if raw, ok := p.value(key); ok {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			p.fail(key, raw, err)
			return
		}
		set(v)
	}
}

// =============================================================================
// Responses
// =============================================================================

type errorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// writeError maps validation failures to 400 and everything else to 500.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.IsInvalid(err):
		status = http.StatusBadRequest
	case errors.Is(err, errors.ErrCodeUnsupported):
		status = http.StatusNotImplemented
	case r.Context().Err() != nil:
		status = http.StatusServiceUnavailable
	}
	observability.HTTP().OnError(r.Context(), r.Method, r.URL.Path, err)
	requestLogger(r.Context()).Warn("request failed", "path", r.URL.Path, "status", status, "err", err)

	writeJSON(w, status, errorResponse{
		Error:     errors.UserMessage(err),
		Code:      string(errors.GetCode(err)),
		RequestID: w.Header().Get(headerRequestID),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
