// FILE: internal/pkg/serverutils/error_handler.go
package serverutils

import (
	"errors"

	"heartgift-be/internal/entity"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware translates domain errors into the API envelope.
// Validation failures carry the full violation list so the client can show
// every problem at once; no raw technical message reaches the user.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var validationErrs *entity.ValidationErrors
		if errors.As(err, &validationErrs) {
			return ctx.Status(fiber.StatusUnprocessableEntity).JSON(
				ErrorResponseWithData(fiber.StatusUnprocessableEntity,
					"gift configuration is not valid", validationErrs.Violations))
		}

		switch {
		case errors.Is(err, entity.ErrGiftNotFound):
			return ctx.Status(fiber.StatusNotFound).JSON(
				ErrorResponse(fiber.StatusNotFound, "gift not found"))
		case errors.Is(err, entity.ErrUnknownPlan):
			return ctx.Status(fiber.StatusNotFound).JSON(
				ErrorResponse(fiber.StatusNotFound, "unknown plan"))
		case errors.Is(err, entity.ErrPaymentRejected):
			return ctx.Status(fiber.StatusPaymentRequired).JSON(
				ErrorResponse(fiber.StatusPaymentRequired, "payment was rejected, please try another payment method"))
		case errors.Is(err, entity.ErrGatewayUnavailable), errors.Is(err, entity.ErrGatewayTimeout):
			return ctx.Status(fiber.StatusServiceUnavailable).JSON(
				ErrorResponse(fiber.StatusServiceUnavailable, "payment service is temporarily unavailable, please retry"))
		case errors.Is(err, entity.ErrPersistenceFailed):
			return ctx.Status(fiber.StatusServiceUnavailable).JSON(
				ErrorResponse(fiber.StatusServiceUnavailable, "could not save your gift, please retry"))
		case errors.Is(err, entity.ErrInvalidTransition):
			return ctx.Status(fiber.StatusConflict).JSON(
				ErrorResponse(fiber.StatusConflict, "payment status can no longer change"))
		case errors.Is(err, entity.ErrInvalidCredentials):
			return ctx.Status(fiber.StatusUnauthorized).JSON(
				ErrorResponse(fiber.StatusUnauthorized, "invalid credentials"))
		case errors.Is(err, entity.ErrUnsupportedQRSize):
			return ctx.Status(fiber.StatusBadRequest).JSON(
				ErrorResponse(fiber.StatusBadRequest, "unsupported qr code size"))
		case errors.Is(err, entity.ErrUnsupportedThemeKind):
			return ctx.Status(fiber.StatusBadRequest).JSON(
				ErrorResponse(fiber.StatusBadRequest, "unsupported theme"))
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
		}

		return ctx.Status(fiber.StatusInternalServerError).JSON(
			ErrorResponse(fiber.StatusInternalServerError, "something went wrong"))
	}
}
