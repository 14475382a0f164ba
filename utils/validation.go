package utils

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/kataras/iris/v12"
)

// HandleValidationErrors turns a ReadJSON failure into a 400 response.
// Validator errors are reported per field; anything else surfaces as a
// generic malformed-body message.
func HandleValidationErrors(err error, ctx iris.Context) {
	if errs, ok := err.(validator.ValidationErrors); ok {
		fields := make([]string, 0, len(errs))
		for _, fe := range errs {
			fields = append(fields, fmt.Sprintf("%s failed on '%s'", fe.Field(), fe.Tag()))
		}
		JSONError(ctx, iris.StatusBadRequest, strings.Join(fields, "; "))
		return
	}
	JSONError(ctx, iris.StatusBadRequest, "invalid request body")
}
