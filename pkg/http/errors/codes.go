package errors

import "net/http"

// Messages returned in the "message" field of error bodies.
const (
	MsgBadRequest         = "bad request"
	MsgNotFound           = "not found"
	MsgMethodNotAllowed   = "method not allowed"
	MsgUnprocessable      = "unprocessable"
	MsgInternalError      = "internal server error"
	MsgServiceUnavailable = "service unavailable"
)

// MessageFor returns the stable message for a status code.
func MessageFor(status int) string {
	switch status {
	case http.StatusBadRequest:
		return MsgBadRequest
	case http.StatusNotFound:
		return MsgNotFound
	case http.StatusMethodNotAllowed:
		return MsgMethodNotAllowed
	case http.StatusUnprocessableEntity:
		return MsgUnprocessable
	case http.StatusServiceUnavailable:
		return MsgServiceUnavailable
	default:
		return MsgInternalError
	}
}
