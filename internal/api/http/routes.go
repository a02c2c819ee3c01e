package httpapi

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/runweather/running-advisor/internal/advice"
)

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *advice.Service) {
	v1 := app.Group("/api/v1")

	v1.Get("/advice", func(c *fiber.Ctx) error {
		req, err := parseAdviceQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		result, err := service.Advise(c.UserContext(), req.Location, advice.TimeBlock(req.Block), req.Duration)
		if err != nil {
			var advErr *advice.Error
			if errors.As(err, &advErr) {
				return fiber.NewError(statusFor(advErr.Kind), advErr.Message)
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to produce advice")
		}

		return c.JSON(result)
	})
}

// adviceQuery holds query parameters for the advice endpoint.
type adviceQuery struct {
	Location string `validate:"required"`
	Block    string `validate:"required,oneof=morning afternoon evening night"`
	Duration int    `validate:"oneof=1 3"`
}

func parseAdviceQuery(c *fiber.Ctx) (adviceQuery, error) {
	q := adviceQuery{
		Location: c.Query("location"),
		Block:    c.Query("block"),
		Duration: c.QueryInt("duration", 1),
	}

	if err := validate.Struct(q); err != nil {
		return q, err
	}
	return q, nil
}

// statusFor collapses the engine's error kinds to HTTP statuses. The body
// carries only the human-readable message either way.
func statusFor(kind advice.Kind) int {
	switch kind {
	case advice.KindInputInvalid:
		return fiber.StatusBadRequest
	case advice.KindNotFound, advice.KindNoCandidates:
		return fiber.StatusNotFound
	case advice.KindLookupFailed, advice.KindFetchFailed, advice.KindMalformedResponse:
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}
