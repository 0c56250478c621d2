package httpapi

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/mkhalid12/weather-dashboard/internal/store"
	"github.com/mkhalid12/weather-dashboard/internal/weather"
)

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *weather.Service, history *store.HistoryStore) {
	v1 := app.Group("/api/v1")

	v1.Get("/weather", func(c *fiber.Ctx) error {
		var q weatherQuery
		q.City = c.Query("city")
		if err := validate.Struct(q); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "city query parameter is required")
		}

		report, err := service.GetWeather(c.UserContext(), q.City)
		if err != nil {
			if errors.Is(err, weather.ErrCityNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "city not found")
			}
			return fiber.NewError(fiber.StatusBadGateway, "could not retrieve weather data")
		}

		return c.JSON(report)
	})

	v1.Get("/history", func(c *fiber.Ctx) error {
		limit := 10
		if v := c.Query("limit"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n <= 0 {
				return fiber.NewError(fiber.StatusBadRequest, "limit must be a positive integer")
			}
			limit = n
		}

		rows, err := history.Recent(limit)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to read search history")
		}

		return c.JSON(fiber.Map{
			"count":   len(rows),
			"history": rows,
		})
	})
}

// weatherQuery holds the query parameters for a dashboard weather lookup.
type weatherQuery struct {
	City string `validate:"required"`
}
