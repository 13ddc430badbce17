package handlers

import (
	"log"

	"counterapp/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CounterHandler handles HTTP requests for the counter.
type CounterHandler struct {
	service *services.CounterService
}

// NewCounterHandler creates a new CounterHandler.
func NewCounterHandler(service *services.CounterService) *CounterHandler {
	return &CounterHandler{
		service: service,
	}
}

// RegisterRoutes registers the counter routes with the Fiber app.
func (h *CounterHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/count", h.HandleGetCount)
	router.Post("/count", h.HandlePostCount)
}

// CounterRequest represents the request body for counter operations.
// Action is a pointer so a missing field can be told apart from an
// empty string when echoing it back.
type CounterRequest struct {
	Action *string `json:"action"`
}

// HandleGetCount returns the current counter value, creating the row
// on first access.
func (h *CounterHandler) HandleGetCount(c *fiber.Ctx) error {
	value, err := h.service.Get()
	if err != nil {
		log.Printf("Error reading counter: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not read counter",
		})
	}
	return c.JSON(fiber.Map{"data": value})
}

// HandlePostCount applies a counter action: "inc" adds one, "clear"
// resets to zero. Anything else is a 400 echoing the received value.
func (h *CounterHandler) HandlePostCount(c *fiber.Ctx) error {
	var req CounterRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing counter request body: %v", err)
		return invalidActionResponse(c, "null")
	}

	received := "null"
	if req.Action != nil {
		received = *req.Action
	}

	var (
		value int
		err   error
	)
	switch received {
	case "inc":
		value, err = h.service.Increment()
	case "clear":
		value, err = h.service.Reset()
	default:
		return invalidActionResponse(c, received)
	}

	if err != nil {
		log.Printf("Error applying counter action %q: %v", received, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update counter",
		})
	}
	return c.JSON(fiber.Map{"data": value})
}

func invalidActionResponse(c *fiber.Ctx, received string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error":    "invalid action",
		"message":  "supported actions are 'inc' (add one) and 'clear' (reset to zero)",
		"received": received,
	})
}
