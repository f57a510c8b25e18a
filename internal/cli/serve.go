package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/apcamargo/phylodraw/pkg/buildinfo"
	pderrors "github.com/apcamargo/phylodraw/pkg/errors"
	"github.com/apcamargo/phylodraw/pkg/observability"
	"github.com/apcamargo/phylodraw/pkg/pipeline"
)

// serveCommand creates the HTTP service command.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string
	var noCache bool
	var redisAddr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the render pipeline as an HTTP service",
		Long: `Serve exposes the render pipeline over HTTP. POST a request to /render
with a JSON body {"tree": {...}, "options": {...}} to receive the rendered
artifacts; GET /healthz reports liveness.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd, addr, noCache, redisAddr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the pipeline cache")
	cmd.Flags().StringVar(&redisAddr, "redis", "", "use a Redis cache backend (host:port)")

	return cmd
}

func (c *CLI) runServe(cmd *cobra.Command, addr string, noCache bool, redisAddr string) error {
	runner, err := c.newRunner(cmd, noCache, redisAddr)
	if err != nil {
		return err
	}
	defer runner.Close()

	srv := &http.Server{
		Addr:              addr,
		Handler:           c.serveRouter(runner),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Info("Listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-cmd.Context().Done():
		c.Logger.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (c *CLI) serveRouter(runner *pipeline.Runner) http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.Recoverer)
	r.Use(c.requestLogger)

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"status":  "ok",
			"version": buildinfo.Version,
		})
	})

	r.Post("/render", c.handleRender(runner))

	return r
}

// renderRequest is the body of POST /render.
type renderRequest struct {
	Tree    json.RawMessage  `json:"tree"`
	Options pipeline.Options `json:"options"`
}

// renderResponse is the body of a successful POST /render.
type renderResponse struct {
	TreeHash  string            `json:"tree_hash"`
	Stats     pipeline.Stats    `json:"stats"`
	Artifacts map[string]string `json:"artifacts"`
}

// errorResponse is the body of a failed request.
type errorResponse struct {
	Code  string `json:"code"`
	Error string `json:"error"`
}

func (c *CLI) handleRender(runner *pipeline.Runner) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		var body renderRequest
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{
				Code:  string(pderrors.ErrCodeInvalidTree),
				Error: fmt.Sprintf("decode request: %v", err),
			})
			return
		}
		if len(body.Tree) == 0 {
			writeJSON(w, http.StatusBadRequest, errorResponse{
				Code:  string(pderrors.ErrCodeInvalidTree),
				Error: "missing tree document",
			})
			return
		}

		result, err := runner.Execute(req.Context(), body.Tree, body.Options)
		if err != nil {
			writeJSON(w, statusForError(err), errorResponse{
				Code:  string(pderrors.GetCode(err)),
				Error: err.Error(),
			})
			return
		}

		artifacts := make(map[string]string, len(result.Artifacts))
		for format, data := range result.Artifacts {
			artifacts[format] = string(data)
		}
		writeJSON(w, http.StatusOK, renderResponse{
			TreeHash:  result.TreeHash,
			Stats:     result.Stats,
			Artifacts: artifacts,
		})
	}
}

// statusForError maps pipeline error codes to HTTP statuses. Validation
// failures are the client's fault; everything else is a server error.
func statusForError(err error) int {
	switch pderrors.GetCode(err) {
	case pderrors.ErrCodeInvalidTree, pderrors.ErrCodeInvalidConfig, pderrors.ErrCodeInvalidFormat:
		return http.StatusBadRequest
	case pderrors.ErrCodeLayoutInfeasible:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// requestIDKey is the context key for the per-request ID.
type requestIDKey struct{}

// requestID assigns a UUID to each request, echoing a client-provided
// X-Request-ID when present.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		id := req.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		ctx := context.WithValue(req.Context(), requestIDKey{}, id)
		next.ServeHTTP(w, req.WithContext(ctx))
	})
}

// requestLogger logs each request with its ID, method, path, and duration.
func (c *CLI) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		observability.Serve().OnRequest(req.Context(), req.Method, req.URL.Path)
		ww := middleware.NewWrapResponseWriter(w, req.ProtoMajor)
		next.ServeHTTP(ww, req)
		observability.Serve().OnResponse(req.Context(), req.Method, req.URL.Path, ww.Status(), time.Since(start))

		id, _ := req.Context().Value(requestIDKey{}).(string)
		c.Logger.Info("Request",
			"id", id,
			"method", req.Method,
			"path", req.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start).Round(time.Millisecond),
		)
	})
}
