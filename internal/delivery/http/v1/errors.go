package v1

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

const (
	kindMalformedInput     = "MALFORMED_INPUT"
	kindNotFound           = "NOT_FOUND"
	kindStorageUnavailable = "STORAGE_UNAVAILABLE"
)

const (
	msgListNotFound = "Todo List not found"
	msgItemNotFound = "Todo Item not found"
)

type fieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
	Param string `json:"param,omitempty"`
}

type apiError struct {
	Code    int          `json:"-"`
	Kind    string       `json:"kind"`
	Message string       `json:"error"`
	Fields  []fieldError `json:"fields,omitempty"`
}

func newAPIError(code int, kind, message string) apiError {
	return apiError{
		Code:    code,
		Kind:    kind,
		Message: message,
	}
}

func (e apiError) Error() string {
	return e.Message
}

func abort(c *gin.Context, err apiError) {
	c.AbortWithStatusJSON(err.Code, err)
}

func newNotFoundError(message string) apiError {
	return newAPIError(http.StatusNotFound, kindNotFound, message)
}

// newInternalError never carries the cause, which is only logged.
func newInternalError() apiError {
	return newAPIError(http.StatusInternalServerError, kindStorageUnavailable,
		http.StatusText(http.StatusInternalServerError))
}

func newMalformedInputError(message string, fields ...fieldError) apiError {
	err := newAPIError(http.StatusBadRequest, kindMalformedInput, message)
	err.Fields = fields
	return err
}

// newBindingError describes why a request body could not be bound.
func newBindingError(err error) apiError {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		fields := make([]fieldError, 0, len(validationErrs))
		for _, fe := range validationErrs {
			fields = append(fields, fieldError{
				Field: fe.Field(),
				Rule:  fe.Tag(),
				Param: fe.Param(),
			})
		}
		return newMalformedInputError("request validation failed", fields...)
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return newMalformedInputError("invalid field type", fieldError{
			Field: typeErr.Field,
			Rule:  "type",
			Param: typeErr.Type.String(),
		})
	}

	var tsErr *timestampError
	if errors.As(err, &tsErr) {
		return newMalformedInputError("invalid timestamp", fieldError{
			Field: tsErr.field,
			Rule:  "datetime",
		})
	}

	if errors.Is(err, io.EOF) {
		return newMalformedInputError("request body is empty")
	}
	return newMalformedInputError("invalid request body")
}

var jsonFieldNamesOnce sync.Once

// useJSONFieldNames makes validation errors report the JSON field name
// instead of the Go struct field name.
func useJSONFieldNames() {
	jsonFieldNamesOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
	})
}
