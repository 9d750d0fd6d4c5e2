package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/abhisek/edugen/internal/generation"
	"github.com/abhisek/edugen/internal/tools"
)

// errIncompleteConfig is what every /api route answers while a provider
// credential is missing.
var errIncompleteConfig = errors.New("API configuration is incomplete")

type configError struct{ cause error }

func (e *configError) Error() string { return errIncompleteConfig.Error() }
func (e *configError) Unwrap() error { return e.cause }

func (s *Server) requireCredentials(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := s.credentials(); err != nil {
			return &configError{cause: err}
		}
		return next(c)
	}
}

func (s *Server) handleHealth(c echo.Context) error {
	return ok(c, map[string]string{"status": "ok"})
}

func (s *Server) handleCatalog(c echo.Context) error {
	return ok(c, map[string]any{"tools": s.registry.Catalog()})
}

func (s *Server) handleTool(t tools.Tool) echo.HandlerFunc {
	return func(c echo.Context) error {
		body, err := readBody(c)
		if err != nil {
			return generation.Invalid(t.Name(), err)
		}

		resp, err := t.Run(c.Request().Context(), s.gen, body)
		if err != nil {
			return generation.Classify(t.Name(), err)
		}
		return ok(c, resp)
	}
}

func readBody(c echo.Context) ([]byte, error) {
	req := c.Request()
	defer req.Body.Close()

	body, err := io.ReadAll(http.MaxBytesReader(c.Response(), req.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, fmt.Errorf("request body exceeds %d bytes", tooLarge.Limit)
		}
		return nil, fmt.Errorf("read request body: %w", err)
	}
	return body, nil
}

// ok writes a success body. Generated content is never cacheable.
func ok(c echo.Context, v any) error {
	c.Response().Header().Set(echo.HeaderCacheControl, cacheControl)
	return c.JSON(http.StatusOK, v)
}

func (s *Server) logFailure(c echo.Context, genErr *generation.Error) {
	fields := []zap.Field{
		zap.String("tool", genErr.Tool),
		zap.String("kind", string(genErr.Kind)),
		zap.String("path", c.Path()),
	}
	if len(genErr.Fields) > 0 {
		fields = append(fields, zap.Strings("fields", genErr.Fields))
	}
	if genErr.Err != nil {
		fields = append(fields, zap.Error(genErr.Err))
	}
	if genErr.Kind.Status() >= http.StatusInternalServerError {
		s.log.Error(genErr.Message, fields...)
		return
	}
	s.log.Info(genErr.Message, fields...)
}
