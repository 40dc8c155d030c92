// Package httpx holds the response envelopes and request binding helpers
// shared by every gin handler.
package httpx

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/gigflow/gigflow-backend/internal/platform/logging"
	"github.com/gigflow/gigflow-backend/internal/platform/pagination"
)

// FieldErrors maps a JSON field name to its validation messages.
type FieldErrors map[string][]string

func (fe FieldErrors) Add(field, msg string) {
	fe[field] = append(fe[field], msg)
}

var priceRe = regexp.MustCompile(`^\d{1,8}(\.\d{1,2})?$`)

func init() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("price", func(fl validator.FieldLevel) bool {
		return validPrice(fl.Field().String())
	})
}

// validPrice reports whether s is a non-negative decimal with at most eight
// integer digits and two decimals.
func validPrice(s string) bool {
	return priceRe.MatchString(s)
}

// Detail writes {"detail": msg}.
func Detail(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"detail": msg})
}

// AbortDetail writes {"detail": msg} and stops the handler chain.
func AbortDetail(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"detail": msg})
}

// Invalid writes a 400 with per-field errors.
func Invalid(c *gin.Context, errs FieldErrors) {
	c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid data", "errors": errs})
}

// Data writes {"detail": msg, "data": data}.
func Data(c *gin.Context, status int, msg string, data any) {
	c.JSON(status, gin.H{"detail": msg, "data": data})
}

// InternalError logs err against op and writes a generic 500.
func InternalError(c *gin.Context, op string, err error) {
	logging.NewLogger(c.Request.Context()).LogError(op, err)
	c.JSON(http.StatusInternalServerError, gin.H{"detail": "internal server error"})
}

// BindJSON decodes the body into dst and runs binding validation. On
// failure it writes the 400 response and returns false.
func BindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		Invalid(c, ToFieldErrors(err))
		return false
	}
	return true
}

// ToFieldErrors converts a binding error into field messages. Errors that
// are not validation errors (malformed JSON, wrong types) are reported
// under "non_field_errors".
func ToFieldErrors(err error) FieldErrors {
	out := FieldErrors{}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			out.Add(fe.Field(), message(fe))
		}
		return out
	}
	out.Add("non_field_errors", "Invalid JSON body.")
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "max":
		return fmt.Sprintf("Ensure this field has no more than %s characters.", fe.Param())
	case "min":
		return fmt.Sprintf("Ensure this field has at least %s characters.", fe.Param())
	case "len":
		return fmt.Sprintf("Ensure this field has exactly %s characters.", fe.Param())
	case "email":
		return "Enter a valid email address."
	case "numeric":
		return "Enter a valid number."
	case "oneof":
		return fmt.Sprintf("%q is not a valid choice.", fmt.Sprint(fe.Value()))
	case "price":
		return "Enter a number with at most 8 digits before and 2 digits after the decimal point."
	case "gt":
		return fmt.Sprintf("Ensure this value is greater than %s.", fe.Param())
	default:
		return "Invalid value."
	}
}

// ParamID parses the integer path parameter name. It writes a 400 and
// returns false when the value is not a positive integer.
func ParamID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		Detail(c, http.StatusBadRequest, "Invalid id.")
		return 0, false
	}
	return id, true
}

// PageRequest parses pagination params. Malformed pages get the same 404
// as out-of-range ones.
func PageRequest(c *gin.Context) (pagination.Request, bool) {
	req, err := pagination.Parse(c.Request.URL.Query())
	if err != nil {
		Detail(c, http.StatusNotFound, "Invalid page.")
		return pagination.Request{}, false
	}
	return req, true
}

// WritePage validates the page against count and writes the envelope.
func WritePage[T any](c *gin.Context, req pagination.Request, count int, results []T) {
	if err := req.Validate(count); err != nil {
		Detail(c, http.StatusNotFound, "Invalid page.")
		return
	}
	c.JSON(http.StatusOK, pagination.NewPage(RequestURL(c), req, count, results))
}

// RequestURL reconstructs the absolute request URL, honoring
// X-Forwarded-Proto behind a proxy.
func RequestURL(c *gin.Context) *url.URL {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if p := c.GetHeader("X-Forwarded-Proto"); p != "" {
		scheme = p
	}
	u := *c.Request.URL
	u.Scheme = scheme
	u.Host = c.Request.Host
	return &u
}
