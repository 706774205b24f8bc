package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/Rrens/scribe-mock/internal/api/response"
	"github.com/Rrens/scribe-mock/internal/service"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// report fields by their wire names
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// decodeJSON reads a JSON body into dst. An empty body leaves dst zeroed so
// that missing fields are reported by validation, not as a parse error.
func decodeJSON(r *http.Request, dst any) error {
	err := json.NewDecoder(r.Body).Decode(dst)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// invalidBodyMessage names the offending field when a value has the wrong
// JSON type, e.g. "chunkNumber must be an integer" for {"chunkNumber":"1"}.
func invalidBodyMessage(err error) string {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return typeErr.Field + " must be " + jsonTypeName(typeErr.Type)
	}
	return "invalid request body"
}

func jsonTypeName(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "an integer"
	case reflect.Float32, reflect.Float64:
		return "a number"
	case reflect.String:
		return "a string"
	case reflect.Bool:
		return "a boolean"
	case reflect.Slice, reflect.Array:
		return "an array"
	default:
		return "an object"
	}
}

// validationMessage turns validator errors into a client message. Any
// missing required field yields requiredMsg, matching what the app expects.
func validationMessage(err error, requiredMsg string) string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err.Error()
	}

	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		field := e.Field()
		switch e.Tag() {
		case "required":
			return requiredMsg
		case "min":
			messages = append(messages, field+" must be at least "+e.Param())
		case "max":
			messages = append(messages, field+" must be at most "+e.Param())
		case "email":
			messages = append(messages, field+" must be a valid email")
		default:
			messages = append(messages, field+" failed validation on "+e.Tag())
		}
	}
	return strings.Join(messages, "; ")
}

// writeServiceError maps a service error to its HTTP status. Internal
// failures are logged with their cause and reported generically.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var svcErr *service.Error
	if !errors.As(err, &svcErr) {
		svcErr = &service.Error{Code: service.ErrorInternal, Err: err}
	}

	switch svcErr.Code {
	case service.ErrorValidation:
		response.BadRequest(w, svcErr.Message)
	case service.ErrorNotFound:
		response.NotFound(w, svcErr.Message)
	default:
		log.Error().
			Err(err).
			Str("request_id", middleware.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg("request failed")
		response.InternalError(w)
	}
}
