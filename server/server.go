package server

import (
	"net"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/lumen-web/lumen/cache"
	"github.com/lumen-web/lumen/config"
	"github.com/lumen-web/lumen/http"
	"github.com/lumen-web/lumen/http/method"
	"github.com/lumen-web/lumen/http/status"
	"github.com/lumen-web/lumen/internal/parser"
	"github.com/lumen-web/lumen/router"
)

// Server is the dispatcher: it accepts connections and hands each duplex
// stream to the message pipeline. Workers are drawn from a bounded pool;
// a connection is handled to completion before its worker frees up, and
// accepted connections beyond capacity queue in the meantime.
type Server struct {
	cfg    *config.Config
	parser *parser.Parser
	router *router.Router
	cache  *cache.Store
	log    zerolog.Logger
}

func New(cfg *config.Config, rt *router.Router, store *cache.Store, log zerolog.Logger) *Server {
	return &Server{
		cfg:    cfg,
		parser: parser.New(cfg),
		router: rt,
		cache:  store,
		log:    log,
	}
}

func (s *Server) ListenAndServe() error {
	sock, err := net.Listen("tcp", s.cfg.NET.Addr)
	if err != nil {
		return err
	}

	return s.Serve(sock)
}

// Serve runs the accept loop until the listener fails or is closed.
func (s *Server) Serve(sock net.Listener) error {
	var pool errgroup.Group
	pool.SetLimit(s.cfg.NET.Workers)

	for {
		conn, err := sock.Accept()
		if err != nil {
			_ = pool.Wait()
			return err
		}

		pool.Go(func() error {
			s.handle(conn)
			return nil
		})
	}
}

func (s *Server) handle(conn net.Conn) {
	defer conn.Close()

	if err := s.serve(conn); err != nil {
		s.log.Error().
			Str("remote", conn.RemoteAddr().String()).
			Err(err).
			Msg("connection failed")
	}
}

// serve runs one request to completion: parse, cache probe, route,
// respond. Exactly one response is written per connection.
func (s *Server) serve(conn net.Conn) error {
	req, err := s.parser.Parse(conn)
	if err != nil {
		s.log.Debug().Err(err).Msg("request rejected")

		resp := s.router.ErrorResponse(err, http.DefaultVersion)
		_, werr := resp.WriteTo(conn)
		return werr
	}

	// the cache key is the resource alone, so responses that vary by
	// request (byte ranges, negotiated codings) never enter the cache
	// and are never answered from it
	resource := req.Line.Resource
	cacheable := req.Line.Method == method.GET &&
		req.CacheControl.StoreAllowed() &&
		req.Ranges == nil &&
		!req.Negotiated

	if cacheable {
		if raw, hit := s.cache.Get(resource); hit {
			s.log.Trace().Str("resource", resource).Msg("serving response from cache")
			_, err := conn.Write(raw)
			return err
		}
	}

	resp := s.router.Route(req)
	raw := resp.Bytes()

	if cacheable && resp.Status.Kind() == status.KindSuccess {
		if err := s.cache.Put(resource, raw); err != nil {
			s.log.Warn().Str("resource", resource).Err(err).Msg("cache store failed")
		}
	}

	s.log.Info().
		Str("method", req.Line.Method.String()).
		Str("resource", resource).
		Int("status", int(resp.Status)).
		Msg("request served")

	_, err = conn.Write(raw)
	return err
}
