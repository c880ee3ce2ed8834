package httpapi

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/weather-lookup/internal/widget"
)

var validate = validator.New()

// Suggester is the stateless suggestion filter.
type Suggester interface {
	Suggest(input string) []string
}

// RegisterRoutes wires the widget handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, w *widget.Widget, suggester Suggester) {
	v1 := app.Group("/api/v1")

	v1.Get("/widget", func(c *fiber.Ctx) error {
		return c.JSON(w.State())
	})

	v1.Put("/widget/input", func(c *fiber.Ctx) error {
		var req inputRequest
		if err := bind(c, &req); err != nil {
			return err
		}
		return c.JSON(w.Input(req.Text))
	})

	v1.Get("/suggestions", func(c *fiber.Ctx) error {
		q := c.Query("q")
		return c.JSON(fiber.Map{
			"query":       q,
			"suggestions": suggester.Suggest(q),
		})
	})

	v1.Post("/suggestions/select", func(c *fiber.Ctx) error {
		var req cityRequest
		if err := bind(c, &req); err != nil {
			return err
		}
		return c.JSON(w.SelectSuggestion(c.UserContext(), req.City))
	})

	// A failed lookup is part of the widget state, not an HTTP error.
	v1.Post("/search", func(c *fiber.Ctx) error {
		var req cityRequest
		if err := bind(c, &req); err != nil {
			return err
		}
		return c.JSON(w.Search(c.UserContext(), req.City))
	})

	v1.Get("/recent", func(c *fiber.Ctx) error {
		st := w.State()
		return c.JSON(fiber.Map{
			"cities":   st.Recent,
			"canClear": st.CanClear,
		})
	})

	v1.Post("/recent/select", func(c *fiber.Ctx) error {
		var req cityRequest
		if err := bind(c, &req); err != nil {
			return err
		}
		st, err := w.Reselect(c.UserContext(), req.City)
		if err != nil {
			if errors.Is(err, widget.ErrUnknownRecentCity) {
				return fiber.NewError(fiber.StatusNotFound, "city is not in the recent list")
			}
			return err
		}
		return c.JSON(st)
	})

	v1.Delete("/recent", func(c *fiber.Ctx) error {
		confirmed := false
		if raw := c.Query("confirm"); raw != "" {
			v, err := strconv.ParseBool(raw)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "confirm must be a boolean")
			}
			confirmed = v
		}

		st, err := w.ClearRecent(confirmed)
		if errors.Is(err, widget.ErrConfirmationRequired) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error":   true,
				"message": w.ConfirmPrompt(),
			})
		}
		if err != nil {
			return err
		}
		return c.JSON(st)
	})

	v1.Get("/map", func(c *fiber.Ctx) error {
		return c.JSON(w.Map())
	})

	v1.Get("/map/geojson", func(c *fiber.Ctx) error {
		return c.JSON(w.Map().FeatureCollection(), "application/geo+json")
	})

	v1.Put("/map/mode", func(c *fiber.Ctx) error {
		var req mapModeRequest
		if err := bind(c, &req); err != nil {
			return err
		}
		if *req.Enabled {
			return c.JSON(w.ShowMap())
		}
		return c.JSON(w.HideMap())
	})
}

// ErrorHandler renders every error as {"error": true, "message": ...}. Only
// *fiber.Error messages reach the client; anything else is a plain 500.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "internal server error"
	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
		message = e.Message
	}
	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}

type cityRequest struct {
	City string `json:"city" validate:"required,max=100"`
}

type inputRequest struct {
	Text string `json:"text" validate:"max=100"`
}

type mapModeRequest struct {
	Enabled *bool `json:"enabled" validate:"required"`
}

func bind(c *fiber.Ctx, req any) error {
	if err := c.BodyParser(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return nil
}
