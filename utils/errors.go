package utils

import (
	"github.com/go-playground/validator/v10"
	"github.com/kataras/iris/v12"
)

// Every failure response is {"error": <short code>, "message": <detail>}
// so clients can branch on the code. 409 is reserved for booking
// conflicts: the client UI treats it as "re-fetch availability", not
// "fix your input".

func CreateError(statusCode int, code string, message string, ctx iris.Context) {
	ctx.StopWithJSON(statusCode, iris.Map{"error": code, "message": message})
}

func CreateNotFound(ctx iris.Context) {
	CreateError(iris.StatusNotFound, "not_found", "Resource not found", ctx)
}

func CreateInternalServerError(ctx iris.Context) {
	CreateError(iris.StatusInternalServerError, "internal_error", "An unexpected error occurred", ctx)
}

func CreateConflict(ctx iris.Context, message string) {
	CreateError(iris.StatusConflict, "conflict", message, ctx)
}

type validationError struct {
	Field string `json:"field"`
	Tag   string `json:"tag"`
	Value string `json:"value,omitempty"`
}

// HandleValidationErrors turns ctx.ReadJSON failures (malformed JSON
// or validator tag violations) into a 400 with per-field details.
func HandleValidationErrors(err error, ctx iris.Context) {
	if errs, ok := err.(validator.ValidationErrors); ok {
		out := make([]validationError, 0, len(errs))
		for _, fieldErr := range errs {
			out = append(out, validationError{
				Field: fieldErr.Field(),
				Tag:   fieldErr.Tag(),
				Value: fieldErr.Param(),
			})
		}
		ctx.StopWithJSON(iris.StatusBadRequest, iris.Map{
			"error":            "validation_error",
			"message":          "Invalid payload",
			"validationErrors": out,
		})
		return
	}

	CreateError(iris.StatusBadRequest, "validation_error", "Invalid payload", ctx)
}
