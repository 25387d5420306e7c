package message

import "encoding/json"

// Operation types accepted on the request topic.
const (
	OpAdd            = "add"
	OpGetAll         = "get-all"
	OpGetCategory    = "get-Category"
	OpEditCategory   = "edit-Category"
	OpDeleteCategory = "delete-Category"
	OpDeleteUser     = "delete-User"
)

// Response tags. Most mirror the operation; delete reports its outcome
// variant (archived vs removed) through the tag.
const (
	TagAdd              = "add"
	TagGetAll           = "get-all"
	TagGetCategory      = "get-Category"
	TagEditCategory     = "edit-Category"
	TagArchivedCategory = "archived-Category"
	TagDeleteCategory   = "delete-Category"
	TagDeleteUser       = "delete-User"
	TagError            = "error"
)

// Request is an inbound message: an operation type plus its raw payload.
type Request struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Response is the single outbound message produced for every request.
type Response struct {
	Type    string `json:"type"`
	Status  int    `json:"status"`
	Payload any    `json:"payload"`
}

func NewResponse(payload any, tag string, status int) Response {
	return Response{Type: tag, Status: status, Payload: payload}
}

// ErrorPayload is the body of every non-success response.
type ErrorPayload struct {
	Message string `json:"message"`
	Errors  any    `json:"errors,omitempty"`
}

func ErrorResponse(msg string, status int, errs any) Response {
	return Response{
		Type:    TagError,
		Status:  status,
		Payload: ErrorPayload{Message: msg, Errors: errs},
	}
}
