package router

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/lumen-web/lumen/auth"
	"github.com/lumen-web/lumen/config"
	"github.com/lumen-web/lumen/http"
	"github.com/lumen-web/lumen/http/method"
	"github.com/lumen-web/lumen/http/mime"
	"github.com/lumen-web/lumen/http/status"
)

// Router dispatches a parsed request by (method, resource) and produces
// the response. It is state-free per request; the only shared resource
// it touches is the filesystem under the configured root.
type Router struct {
	cfg  *config.Config
	auth auth.Authenticator
	log  zerolog.Logger
}

func New(cfg *config.Config, authenticator auth.Authenticator, log zerolog.Logger) *Router {
	return &Router{
		cfg:  cfg,
		auth: authenticator,
		log:  log,
	}
}

// Route produces exactly one response for the request. Route-level
// failures are converted to statuses locally and never propagate.
func (rt *Router) Route(req *http.Request) *http.Response {
	switch req.Line.Method {
	case method.GET, method.HEAD:
		return rt.get(req)
	case method.POST:
		return rt.post(req)
	case method.OPTIONS:
		return rt.options(req)
	default:
		return rt.ErrorResponse(status.ErrNotImplemented, req.Line.Version)
	}
}

// ErrorResponse maps an error to its wire status and builds an empty
// response carrying it.
func (rt *Router) ErrorResponse(err error, version string) *http.Response {
	return http.NewResponse(status.From(err), version).
		Header("content-length", "0").
		Build()
}

// respond starts a builder for the request, carrying the negotiated
// coding over when there was a negotiation.
func (rt *Router) respond(req *http.Request, code status.Code) *http.ResponseBuilder {
	b := http.NewResponse(code, req.Line.Version)
	if req.Negotiated {
		b.Encoding(req.Encoding)
	}

	return b
}

func (rt *Router) get(req *http.Request) *http.Response {
	resource := req.Line.Resource
	includeBody := req.Line.Method != method.HEAD

	switch {
	case resource == "/":
		return rt.respond(req, status.OK).OptionalBody(nil, includeBody).Build()
	case resource == "/user-agent":
		return rt.userAgent(req, includeBody)
	case strings.HasPrefix(resource, "/echo/"):
		text := strings.TrimPrefix(resource, "/echo/")
		return rt.respond(req, status.OK).
			Header("content-type", mime.Plain).
			OptionalBody([]byte(text), includeBody).
			Build()
	case strings.HasPrefix(resource, "/files/"):
		return rt.getFile(req, includeBody)
	default:
		return rt.ErrorResponse(status.ErrInternalServerError, req.Line.Version)
	}
}

func (rt *Router) userAgent(req *http.Request, includeBody bool) *http.Response {
	agent, found := req.Header("user-agent")
	if !found {
		return rt.ErrorResponse(status.ErrNotFound, req.Line.Version)
	}

	return rt.respond(req, status.OK).
		Header("content-type", mime.Plain).
		OptionalBody([]byte(agent), includeBody).
		Build()
}

func (rt *Router) getFile(req *http.Request, includeBody bool) *http.Response {
	if resp := rt.authorize(req); resp != nil {
		return resp
	}

	path := rt.resolvePath(req.Line.Resource)

	file, err := os.Open(path)
	if err != nil {
		rt.log.Trace().Str("path", path).Err(err).Msg("file not found")
		return rt.ErrorResponse(status.ErrNotFound, req.Line.Version)
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return rt.ErrorResponse(status.ErrInternalServerError, req.Line.Version)
	}
	if stat.IsDir() {
		return rt.ErrorResponse(status.ErrNotFound, req.Line.Version)
	}

	contentType, err := req.Content.ContentType(path)
	if err != nil {
		return rt.ErrorResponse(err, req.Line.Version)
	}

	if req.Ranges != nil {
		return rt.ranged(req, file, stat.Size(), contentType, includeBody)
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return rt.ErrorResponse(status.ErrInternalServerError, req.Line.Version)
	}

	return rt.respond(req, status.OK).
		Header("content-type", contentType).
		OptionalBody(data, includeBody).
		Build()
}

func (rt *Router) post(req *http.Request) *http.Response {
	if !strings.HasPrefix(req.Line.Resource, "/files/") {
		return rt.ErrorResponse(status.ErrInternalServerError, req.Line.Version)
	}

	path := rt.resolvePath(req.Line.Resource)
	if err := os.WriteFile(path, req.Content.Body, 0o644); err != nil {
		rt.log.Error().Str("path", path).Err(err).Msg("file write failed")
		return rt.ErrorResponse(status.ErrInternalServerError, req.Line.Version)
	}

	return rt.respond(req, status.Created).
		Header("content-length", "0").
		Build()
}

func (rt *Router) options(req *http.Request) *http.Response {
	if _, err := req.Content.ContentType(req.Line.Resource); err != nil {
		return rt.ErrorResponse(err, req.Line.Version)
	}

	return rt.respond(req, status.OK).
		Header("allow", method.AllowString()).
		Header("content-length", "0").
		Build()
}

// authorize gates a route when an authorization header is present. It
// returns nil when the request may proceed, or the 401 response.
func (rt *Router) authorize(req *http.Request) *http.Response {
	header, found := req.Header("authorization")
	if !found {
		return nil
	}

	schemeToken, blob, _ := strings.Cut(header, " ")
	scheme, known := auth.ParseScheme(schemeToken)
	// only Basic is wired up; a recognized-but-unimplemented scheme is
	// rejected here rather than invoked
	if known && scheme == auth.Basic && rt.auth.Authenticate([]byte(strings.TrimSpace(blob)), scheme) {
		return nil
	}

	return http.NewResponse(status.Unauthorized, req.Line.Version).
		Header("www-authenticate", auth.Basic.String()).
		Header("content-length", "0").
		Build()
}

// resolvePath confines a /files/ resource to the configured root. The
// raw resource is never trusted: it is rooted and cleaned before being
// joined, so traversal sequences cannot escape.
func (rt *Router) resolvePath(resource string) string {
	rel := strings.TrimPrefix(resource, "/files/")
	return filepath.Join(rt.cfg.FS.Root, filepath.Clean("/"+rel))
}
