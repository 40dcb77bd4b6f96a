package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"playnext/internal/microservices/http-api/models"
)

// RegisterValidators adds the custom binding tags used by the DTOs to gin's
// validator engine. Call it once before serving.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}
	return v.RegisterValidation("backlog_status", validBacklogStatus)
}

func validBacklogStatus(fl validator.FieldLevel) bool {
	switch s := fl.Field().Interface().(type) {
	case models.BacklogStatus:
		return s.Valid()
	case string:
		return models.BacklogStatus(s).Valid()
	}
	return false
}
