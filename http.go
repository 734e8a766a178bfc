package starter

import (
	"net/http"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/gofiber/fiber/v2"
	goerrors "github.com/goliatone/go-errors"
)

// SessionContextKey is where RequireSession stores the resolved session on
// the request context.
const SessionContextKey = "starter:session"

// HTTPServer mounts the authentication surface on a fiber app: the engine
// catch-all, the session guard, and the current-user endpoint.
type HTTPServer struct {
	engine       Engine
	normalizer   *Normalizer
	resolver     *SessionResolver
	repo         RepositoryManager
	logger       Logger
	basePath     string
	globalPrefix string
}

// HTTPServerOption customizes an HTTPServer.
type HTTPServerOption func(*HTTPServer)

// WithHTTPLogger overrides the default logger.
func WithHTTPLogger(l Logger) HTTPServerOption {
	return func(s *HTTPServer) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithBasePath changes the path prefix the engine is mounted under.
func WithBasePath(path string) HTTPServerOption {
	return func(s *HTTPServer) {
		if path != "" {
			s.basePath = path
		}
	}
}

// WithGlobalPrefix prefixes every non-engine route. The engine keeps its
// absolute base path.
func WithGlobalPrefix(prefix string) HTTPServerOption {
	return func(s *HTTPServer) {
		s.globalPrefix = strings.Trim(prefix, "/")
	}
}

// NewHTTPServer wires the engine, normalizer, and session resolver into one
// mountable unit.
func NewHTTPServer(engine Engine, normalizer *Normalizer, resolver *SessionResolver, repo RepositoryManager, opts ...HTTPServerOption) *HTTPServer {
	s := &HTTPServer{
		engine:     engine,
		normalizer: normalizer,
		resolver:   resolver,
		repo:       repo,
		logger:     defLogger{},
		basePath:   "/api/auth",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register mounts all routes on the app.
func (s *HTTPServer) Register(app *fiber.App) {
	app.All(s.basePath+"/*", s.HandleEngine)
	app.Get(s.prefixed("/user/me"), s.RequireSession, s.CurrentUser)
}

func (s *HTTPServer) prefixed(path string) string {
	if s.globalPrefix == "" {
		return path
	}
	return "/" + s.globalPrefix + path
}

// HandleEngine forwards the request to the engine and rewrites its raw
// result into the uniform envelope. Results of non-mutating requests pass
// through untouched.
func (s *HTTPServer) HandleEngine(c *fiber.Ctx) error {
	req := &EngineRequest{
		Method: c.Method(),
		Path:   c.Path(),
		Header: http.Header(c.GetReqHeaders()),
		Body:   c.Body(),
	}

	result, err := s.engine.Handle(c.Context(), req)

	ev := LifecycleEvent{
		Method: c.Method(),
		Path:   c.Path(),
		Result: result,
	}
	if err != nil {
		ev.Result = err
	}

	envelope, normalized := s.normalizer.Normalize(ev)
	if !normalized {
		if err != nil {
			s.logger.Error("engine error on %s %s: %v", c.Method(), c.Path(), err)
			return c.Status(fiber.StatusInternalServerError).
				JSON(InternalServerError("", c.Path()))
		}
		if result == nil {
			return c.SendStatus(fiber.StatusNoContent)
		}
		return c.JSON(result)
	}

	return c.Status(envelope.StatusCode).JSON(envelope)
}

// RequireSession rejects requests without a valid bearer session and stores
// the resolved session for downstream handlers.
func (s *HTTPServer) RequireSession(c *fiber.Ctx) error {
	token := bearerToken(c.Get(fiber.HeaderAuthorization))
	if token == "" {
		return c.Status(fiber.StatusUnauthorized).
			JSON(Unauthorized("", c.Path()))
	}

	session, err := s.resolver.Resolve(c.Context(), token)
	if err != nil {
		s.logger.Debug("session rejected on %s: %v", c.Path(), err)
		return c.Status(fiber.StatusUnauthorized).
			JSON(Unauthorized("", c.Path()))
	}

	c.Locals(SessionContextKey, session)
	c.SetUserContext(WithSession(c.UserContext(), session))
	return c.Next()
}

// CurrentUser returns the profile of the authenticated user.
func (s *HTTPServer) CurrentUser(c *fiber.Ctx) error {
	session := SessionFromContext(c)
	if session == nil {
		return c.Status(fiber.StatusUnauthorized).
			JSON(Unauthorized("", c.Path()))
	}

	user, err := s.repo.Users().GetByIdentifier(c.Context(), session.UserID)
	if err != nil {
		s.logger.Error("current user lookup failed: %v", err)
		return c.Status(fiber.StatusNotFound).
			JSON(NotFound("User not found", c.Path()))
	}

	return c.JSON(Success(user, "Success", fiber.StatusOK, c.Path()))
}

// SessionFromContext retrieves the session stored by RequireSession.
func SessionFromContext(c *fiber.Ctx) *SessionObject {
	session, ok := c.Locals(SessionContextKey).(*SessionObject)
	if !ok {
		return nil
	}
	return session
}

// EnvelopeErrorHandler is a fiber error handler that keeps every error
// response in the envelope shape. Validation failures carry per-field
// details; rich errors keep their own status code.
func EnvelopeErrorHandler(logger Logger) fiber.ErrorHandler {
	if logger == nil {
		logger = defLogger{}
	}

	return func(c *fiber.Ctx, err error) error {
		var verrs validation.Errors
		if goerrors.As(err, &verrs) {
			return c.Status(fiber.StatusBadRequest).
				JSON(ValidationError("Validation failed", validationDetails(verrs), c.Path()))
		}

		var richErr *goerrors.Error
		if goerrors.As(err, &richErr) {
			status := richErr.Code
			if status == 0 {
				status = fiber.StatusInternalServerError
			}
			details := []ErrorDetail{{Message: richErr.Message, Code: richErr.TextCode}}
			return c.Status(status).JSON(Error(richErr.Message, status, details, c.Path()))
		}

		var fiberErr *fiber.Error
		if goerrors.As(err, &fiberErr) {
			details := []ErrorDetail{{Message: fiberErr.Message}}
			return c.Status(fiberErr.Code).JSON(Error(fiberErr.Message, fiberErr.Code, details, c.Path()))
		}

		logger.Error("unhandled error on %s: %v", c.Path(), err)
		return c.Status(fiber.StatusInternalServerError).
			JSON(InternalServerError("", c.Path()))
	}
}

func validationDetails(verrs validation.Errors) []ErrorDetail {
	details := make([]ErrorDetail, 0, len(verrs))
	for field, ferr := range verrs {
		details = append(details, ErrorDetail{
			Path:    field,
			Message: ferr.Error(),
		})
	}
	return details
}

func bearerToken(header string) string {
	header = strings.TrimSpace(header)
	if header == "" {
		return ""
	}

	const scheme = "bearer "
	if len(header) > len(scheme) && strings.EqualFold(header[:len(scheme)], scheme) {
		return strings.TrimSpace(header[len(scheme):])
	}

	return ""
}
