package utils

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FormatBindingError 格式化请求绑定错误，便于客户端阅读
func FormatBindingError(err error) string {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}

	var messages []string
	for _, e := range validationErrors {
		field := e.Field()
		tag := e.Tag()
		param := e.Param()

		var message string
		switch tag {
		case "required":
			message = fmt.Sprintf("%s是必填字段", field)
		case "gte":
			message = fmt.Sprintf("%s不能小于%s", field, param)
		case "lte":
			message = fmt.Sprintf("%s不能大于%s", field, param)
		case "oneof":
			message = fmt.Sprintf("%s必须是以下值之一: %s", field, param)
		default:
			message = fmt.Sprintf("%s验证失败: %s", field, tag)
		}

		messages = append(messages, message)
	}

	return strings.Join(messages, "; ")
}
