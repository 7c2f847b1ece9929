package book

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"bookmanager/internal/httpx"
)

const (
	defaultLimit = 100
	notFoundMsg  = "Book not found"
)

// HTTPHandler serves the /books routes. Each request runs in its own
// storage session.
type HTTPHandler struct {
	service   *Service
	store     Store
	validator *Validator
	logger    *slog.Logger
}

func NewHTTPHandler(service *Service, store Store, validator *Validator, logger *slog.Logger) *HTTPHandler {
	return &HTTPHandler{service: service, store: store, validator: validator, logger: logger}
}

// Register mounts the book routes on mux.
func (h *HTTPHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /books", h.List)
	mux.HandleFunc("POST /books", h.Create)
	mux.HandleFunc("GET /books/{id}", h.Get)
	mux.HandleFunc("PUT /books/{id}", h.Update)
	mux.HandleFunc("DELETE /books/{id}", h.Delete)
}

// List handles GET /books
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var details []httpx.ErrorDetail
	offset, detail := parseNonNegative(query, "skip", 0)
	if detail != nil {
		details = append(details, *detail)
	}
	limit, detail := parseNonNegative(query, "limit", defaultLimit)
	if detail != nil {
		details = append(details, *detail)
	}
	if len(details) > 0 {
		httpx.ValidationFailed(w, details)
		return
	}

	params := Query{
		Title:  query.Get("title"),
		Author: query.Get("author"),
		Genre:  query.Get("genre"),
		Limit:  limit,
		Offset: offset,
	}

	var books []Book
	err := h.store.WithSession(r.Context(), func(sess Session) error {
		var err error
		books, err = h.service.List(r.Context(), sess, params)
		if err != nil {
			return err
		}
		for _, b := range books {
			if err := h.output(b); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, books)
}

// Create handles POST /books
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in CreateInput
	if err := httpx.DecodeJSON(r, &in); err != nil {
		httpx.DecodeError(w, err)
		return
	}
	if err := h.validator.Create(in); err != nil {
		h.fail(w, r, err)
		return
	}

	var created Book
	err := h.store.WithSession(r.Context(), func(sess Session) error {
		var err error
		created, err = h.service.Create(r.Context(), sess, in)
		if err != nil {
			return err
		}
		return h.output(created)
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.JSONCreated(w, created)
}

// Get handles GET /books/{id}
func (h *HTTPHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var b Book
	err := h.store.WithSession(r.Context(), func(sess Session) error {
		var err error
		b, err = h.service.Get(r.Context(), sess, id)
		if err != nil {
			return err
		}
		return h.output(b)
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, b)
}

// Update handles PUT /books/{id}. Only the supplied fields change.
func (h *HTTPHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var in UpdateInput
	if err := httpx.DecodeJSON(r, &in); err != nil {
		httpx.DecodeError(w, err)
		return
	}
	if err := h.validator.Update(in); err != nil {
		h.fail(w, r, err)
		return
	}

	var updated Book
	err := h.store.WithSession(r.Context(), func(sess Session) error {
		var err error
		updated, err = h.service.Update(r.Context(), sess, id, in)
		if err != nil {
			return err
		}
		return h.output(updated)
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, updated)
}

// Delete handles DELETE /books/{id}
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var deleted bool
	err := h.store.WithSession(r.Context(), func(sess Session) error {
		var err error
		deleted, err = h.service.Delete(r.Context(), sess, id)
		return err
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if !deleted {
		httpx.JSONError(w, http.StatusNotFound, notFoundMsg)
		return
	}
	httpx.NoContent(w)
}

// output checks a record before it is sent. errInvalidRecord does not
// unwrap, so a bad stored record is reported as a 500.
func (h *HTTPHandler) output(b Book) error {
	if err := h.validator.Book(b); err != nil {
		return errInvalidRecord{err: err}
	}
	return nil
}

type errInvalidRecord struct{ err error }

func (e errInvalidRecord) Error() string { return "invalid stored record: " + e.err.Error() }

func (h *HTTPHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	if verr, ok := AsValidationError(err); ok {
		httpx.ValidationFailed(w, toDetails(verr.Fields))
		return
	}
	if errors.Is(err, ErrNotFound) {
		httpx.JSONError(w, http.StatusNotFound, notFoundMsg)
		return
	}
	h.logger.Error("book request failed",
		"method", r.Method,
		"path", r.URL.Path,
		"request_id", httpx.RequestIDFrom(r),
		"error", err,
	)
	httpx.InternalError(w)
}

func toDetails(fields []FieldError) []httpx.ErrorDetail {
	details := make([]httpx.ErrorDetail, 0, len(fields))
	for _, f := range fields {
		details = append(details, httpx.ErrorDetail{Field: f.Field, Message: f.Message})
	}
	return details
}

func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := r.PathValue("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 0 {
		httpx.ValidationFailed(w, []httpx.ErrorDetail{{Field: "id", Message: "id must be a non-negative integer"}})
		return 0, false
	}
	return id, true
}

func parseNonNegative(query url.Values, name string, fallback int) (int, *httpx.ErrorDetail) {
	values, ok := query[name]
	if !ok || len(values) == 0 {
		return fallback, nil
	}
	n, err := strconv.Atoi(values[0])
	if err != nil || n < 0 {
		return 0, &httpx.ErrorDetail{Field: name, Message: name + " must be a non-negative integer"}
	}
	return n, nil
}
