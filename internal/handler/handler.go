package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"

	"session-cart/internal/model"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

var validate = newValidator()

// newValidator reports fields by their JSON names and adds the notblank rule.
func newValidator() *validator.Validate {
	v := validator.New()
	// A whitespace-only string counts as missing.
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but don't expose it to the client
		return
	}
}

// writeError writes an error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string, logger zerolog.Logger) {
	event := logger.Warn()
	if status >= http.StatusInternalServerError {
		event = logger.Error()
	}
	event.Str("error", message).Int("status", status).Msg("handler error")
	writeJSON(w, status, model.ErrorResponse{Success: false, Message: message})
}

// writeValidationError writes a 422 response listing the offending fields.
func writeValidationError(w http.ResponseWriter, fields map[string]string, logger zerolog.Logger) {
	logger.Warn().Interface("fields", fields).Msg("request validation failed")
	writeJSON(w, http.StatusUnprocessableEntity, model.ErrorResponse{
		Success: false,
		Message: "validation failed",
		Errors:  fields,
	})
}

// decodeRequest decodes the JSON body into dst and validates it.
// It writes the error response and returns false when the request is unusable.
func decodeRequest(w http.ResponseWriter, r *http.Request, dst interface{}, logger zerolog.Logger) bool {
	// An empty body is validated as an empty object so missing fields get a 422.
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			writeValidationError(w, map[string]string{typeErr.Field: typeReason(typeErr.Type)}, logger)
			return false
		}
		writeError(w, http.StatusBadRequest, "invalid request body", logger)
		return false
	}

	if err := validate.Struct(dst); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			writeError(w, http.StatusBadRequest, "invalid request body", logger)
			return false
		}
		fields := make(map[string]string, len(fieldErrs))
		for _, fe := range fieldErrs {
			fields[fe.Field()] = ruleReason(fe)
		}
		writeValidationError(w, fields, logger)
		return false
	}

	return true
}

func typeReason(t reflect.Type) string {
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return "must be an integer"
	case reflect.Float32, reflect.Float64:
		return "must be a number"
	case reflect.String:
		return "must be a string"
	default:
		return "has an invalid type"
	}
}

func ruleReason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return "is required"
	case "gte":
		return "must be greater than or equal to " + fe.Param()
	default:
		return "is invalid"
	}
}
