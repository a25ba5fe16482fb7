package utils

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/Mallesh-145/job-application-tracker/internal/models"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once

	usernamePattern = regexp.MustCompile("^[a-zA-Z0-9_]+$")
)

// InitValidator 初始化验证器，并把自定义规则注册到gin的binding引擎
func InitValidator() {
	validateOnce.Do(func() {
		validate = validator.New()
		validate.SetTagName("binding")
		registerRules(validate)

		if engine, ok := binding.Validator.Engine().(*validator.Validate); ok {
			registerRules(engine)
		}
	})
}

func registerRules(v *validator.Validate) {
	_ = v.RegisterValidation("username", validateUsername)
	_ = v.RegisterValidation("jobstatus", validateJobStatus)
}

// GetValidator 获取验证器实例
func GetValidator() *validator.Validate {
	InitValidator()
	return validate
}

// validateUsername 验证用户名
func validateUsername(fl validator.FieldLevel) bool {
	username := fl.Field().String()
	if len(username) < 3 || len(username) > 50 {
		return false
	}
	return usernamePattern.MatchString(username)
}

// validateJobStatus 验证投递状态
func validateJobStatus(fl validator.FieldLevel) bool {
	return models.IsValidStatus(fl.Field().String())
}

// ValidateStruct 验证结构体，规则取自 binding 标签，与gin绑定时一致
func ValidateStruct(s interface{}) error {
	if err := GetValidator().Struct(s); err != nil {
		return FormatValidationError(err)
	}
	return nil
}

// FormatValidationError 格式化验证错误，非验证错误原样返回
func FormatValidationError(err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		field := e.Field()
		param := e.Param()

		var message string
		switch e.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", field)
		case "min":
			message = fmt.Sprintf("%s must be at least %s characters", field, param)
		case "max":
			message = fmt.Sprintf("%s must be at most %s characters", field, param)
		case "email":
			message = fmt.Sprintf("%s must be a valid email address", field)
		case "url":
			message = fmt.Sprintf("%s must be a valid URL", field)
		case "oneof":
			message = fmt.Sprintf("%s must be one of: %s", field, param)
		case "username":
			message = fmt.Sprintf("%s may only contain letters, digits and underscores (3-50)", field)
		case "jobstatus":
			message = fmt.Sprintf("%s is not a known application status", field)
		default:
			message = fmt.Sprintf("%s failed on %s", field, e.Tag())
		}
		messages = append(messages, message)
	}

	return errors.New(strings.Join(messages, "; "))
}
