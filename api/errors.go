package api

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/gofiber/fiber/v2"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-eventdesk/auth"
	"github.com/goliatone/go-print"
	gorepo "github.com/goliatone/go-repository-bun"
	"go.uber.org/zap"
)

const msgInternal = "An unexpected server error occurred"

// ErrorHandler renders every error as {"detail": ...}. Auth failures are
// collapsed through auth.PublicError, validation errors become 422 with
// per field messages.
func ErrorHandler(logger *zap.Logger, debug bool) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var failure *auth.AuthFailure
		if errors.As(err, &failure) {
			public := auth.PublicError(err)
			logger.Debug("auth_failure",
				zap.String("path", c.Path()),
				zap.String("kind", string(failure.Kind)),
			)
			c.Set(fiber.HeaderWWWAuthenticate, auth.AuthenticateChallenge)
			return c.Status(public.Code).JSON(fiber.Map{"detail": public.Message})
		}

		var verrs validation.Errors
		if errors.As(err, &verrs) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"detail": "Validation failed",
				"errors": fieldErrors(verrs),
			})
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return c.Status(fiberErr.Code).JSON(fiber.Map{"detail": fiberErr.Message})
		}

		var richErr *goerrors.Error
		switch {
		case errors.As(err, &richErr):
		case gorepo.IsRecordNotFound(err):
			richErr = goerrors.Wrap(err, goerrors.CategoryNotFound, "Record not found").
				WithCode(goerrors.CodeNotFound)
		default:
			richErr = goerrors.Wrap(err, goerrors.CategoryInternal, msgInternal).
				WithCode(goerrors.CodeInternal)
		}

		code := statusFor(richErr)
		if code >= fiber.StatusInternalServerError {
			fields := []zap.Field{
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.Any("category", richErr.Category),
				zap.Error(err),
			}
			if debug {
				fields = append(fields, zap.String("details", print.MaybePrettyJSON(richErr.Metadata)))
			}
			logger.Error("request_failed", fields...)
			return c.Status(code).JSON(fiber.Map{"detail": msgInternal})
		}

		return c.Status(code).JSON(fiber.Map{"detail": richErr.Message})
	}
}

func statusFor(richErr *goerrors.Error) int {
	if richErr.Code >= 400 && richErr.Code < 600 {
		return richErr.Code
	}

	switch richErr.Category {
	case goerrors.CategoryNotFound:
		return fiber.StatusNotFound
	case goerrors.CategoryConflict:
		return fiber.StatusConflict
	case goerrors.CategoryValidation:
		return fiber.StatusUnprocessableEntity
	case goerrors.CategoryBadInput:
		return fiber.StatusBadRequest
	case goerrors.CategoryAuth:
		return fiber.StatusUnauthorized
	default:
		return fiber.StatusInternalServerError
	}
}

func fieldErrors(verrs validation.Errors) map[string]string {
	out := make(map[string]string, len(verrs))
	for field, err := range verrs {
		if err != nil {
			out[field] = err.Error()
		}
	}
	return out
}

func unprocessable(message string) *goerrors.Error {
	return goerrors.New(message, goerrors.CategoryValidation).
		WithCode(fiber.StatusUnprocessableEntity)
}
