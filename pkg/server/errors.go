package server

import (
	"net/http"

	ferrors "github.com/matzehuels/frosting/pkg/errors"
)

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func statusFor(err error) int {
	switch {
	case ferrors.IsInvalid(err):
		return http.StatusBadRequest
	case ferrors.IsNotFound(err):
		return http.StatusNotFound
	case ferrors.Is(err, ferrors.ErrCodeUnsupported):
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	code := string(ferrors.GetCode(err))
	if code == "" {
		code = string(ferrors.ErrCodeInternal)
	}
	msg := ferrors.UserMessage(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "err", err)
		msg = "internal error"
	}
	writeJSON(w, status, errorBody{Code: code, Message: msg})
}
