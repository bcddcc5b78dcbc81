package service

import (
	"errors"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerTagNamesOnce sync.Once

// registerTagNames makes validation errors report the wire name of a field
// (json, form or uri tag) instead of the Go field name.
func registerTagNames() {
	registerTagNamesOnce.Do(func() {
		validate, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}

		validate.RegisterTagNameFunc(func(field reflect.StructField) string {
			for _, tag := range []string{"json", "form", "uri"} {
				name := strings.SplitN(field.Tag.Get(tag), ",", 2)[0]
				if name != "" && name != "-" {
					return name
				}
			}
			return field.Name
		})
	})
}

func (server *Server) abortWithValidationError(c *gin.Context, err error) {
	server.Logger.Warn("validation error",
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"error", err,
	)

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"message": err.Error()})
		return
	}

	fields := make([]gin.H, 0, len(validationErrors))
	for _, fieldError := range validationErrors {
		fields = append(fields, gin.H{
			"field": fieldError.Field(),
			"rule":  fieldError.Tag(),
			"param": fieldError.Param(),
		})
	}

	c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{
		"message": "validation failed",
		"errors":  fields,
	})
}
