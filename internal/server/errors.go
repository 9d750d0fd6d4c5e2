package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/abhisek/edugen/internal/generation"
)

type errorBody struct {
	Error     string   `json:"error"`
	Details   string   `json:"details,omitempty"`
	Fields    []string `json:"fields,omitempty"`
	Timestamp string   `json:"timestamp"`
}

func writeError(c echo.Context, status int, body errorBody) {
	body.Timestamp = time.Now().UTC().Format(time.RFC3339)
	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(status)
		return
	}
	_ = c.JSON(status, body)
}

func (s *Server) errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var cfgErr *configError
	if errors.As(err, &cfgErr) {
		s.log.Error("provider credentials missing", zap.String("path", c.Request().URL.Path), zap.Error(cfgErr.cause))
		writeError(c, http.StatusInternalServerError, errorBody{Error: cfgErr.Error(), Details: cfgErr.cause.Error()})
		return
	}

	var genErr *generation.Error
	if errors.As(err, &genErr) {
		s.logFailure(c, genErr)
		writeError(c, genErr.Kind.Status(), errorBody{
			Error:   genErr.Message,
			Details: genErr.Details(),
			Fields:  genErr.Fields,
		})
		return
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		msg := http.StatusText(he.Code)
		if m, ok := he.Message.(string); ok {
			msg = m
		}
		writeError(c, he.Code, errorBody{Error: msg})
		return
	}

	s.log.Error("unhandled error", zap.String("path", c.Request().URL.Path), zap.Error(err))
	writeError(c, http.StatusInternalServerError, errorBody{Error: "internal server error"})
}
