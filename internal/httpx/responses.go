package httpx

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

// ErrorResponse is the body of every error reply. Detail is either a
// message string or a list of ErrorDetail.
type ErrorResponse struct {
	Detail any `json:"detail"`
}

// ErrorDetail names one invalid request field.
type ErrorDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

var errTrailingData = errors.New("body must only contain a single JSON value")

// JSON writes v with the given status code.
func JSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(v)
}

// JSONCreated writes v with 201 Created.
func JSONCreated(w http.ResponseWriter, v any) {
	JSON(w, http.StatusCreated, v)
}

// NoContent writes an empty 204 reply.
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// JSONError writes {"detail": message}.
func JSONError(w http.ResponseWriter, statusCode int, message string) {
	JSON(w, statusCode, ErrorResponse{Detail: message})
}

// ValidationFailed writes a 422 reply listing the invalid fields.
func ValidationFailed(w http.ResponseWriter, details []ErrorDetail) {
	JSON(w, http.StatusUnprocessableEntity, ErrorResponse{Detail: details})
}

// InternalError writes a generic 500 reply. The cause is never exposed.
func InternalError(w http.ResponseWriter) {
	JSONError(w, http.StatusInternalServerError, "Internal server error")
}

// DecodeJSON decodes exactly one JSON value from the request body into dst.
// Unknown fields are ignored.
func DecodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errTrailingData
	}
	return nil
}

// DecodeError writes the reply for an error returned by DecodeJSON.
// Type mismatches are field errors (422); everything else is a 400.
func DecodeError(w http.ResponseWriter, err error) {
	var typeErr *json.UnmarshalTypeError
	var maxErr *http.MaxBytesError
	switch {
	case errors.As(err, &typeErr):
		field := typeErr.Field
		if field == "" {
			field = "body"
		}
		ValidationFailed(w, []ErrorDetail{{Field: field, Message: field + " must be of type " + jsonKind(typeErr.Type.Kind().String())}})
	case errors.As(err, &maxErr):
		JSONError(w, http.StatusRequestEntityTooLarge, "request body too large")
	case errors.Is(err, io.EOF):
		JSONError(w, http.StatusBadRequest, "request body must not be empty")
	case errors.Is(err, errTrailingData):
		JSONError(w, http.StatusBadRequest, err.Error())
	default:
		JSONError(w, http.StatusBadRequest, "malformed JSON body")
	}
}

func jsonKind(kind string) string {
	switch kind {
	case "int", "int8", "int16", "int32", "int64", "uint", "uint8", "uint16", "uint32", "uint64":
		return "integer"
	case "struct", "map":
		return "JSON object"
	default:
		return kind
	}
}
