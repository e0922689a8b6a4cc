package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"go-safecity-ws/internal/model"
	"go-safecity-ws/internal/repository"
)

// Helpers to pull user info from the JWT context (set by auth middleware)

func getUserID(c *fiber.Ctx) string {
	userID := c.Locals("user_id")
	if userID == nil {
		return ""
	}
	return userID.(string)
}

func getUserName(c *fiber.Ctx) string {
	userName := c.Locals("user_name")
	if userName == nil {
		return "Unknown"
	}
	return userName.(string)
}

func getUserRole(c *fiber.Ctx) model.UserRole {
	role, ok := c.Locals("user_role").(model.UserRole)
	if !ok {
		return ""
	}
	return role
}

func pathID(c *fiber.Ctx) (uuid.UUID, error) {
	return uuid.Parse(c.Params("id"))
}

// pageRequest reads page/size/sortBy/direction query params.
func pageRequest(c *fiber.Ctx) repository.PageRequest {
	page, _ := strconv.Atoi(c.Query("page", "0"))
	size, _ := strconv.Atoi(c.Query("size", "10"))
	return repository.PageRequest{
		Page:      page,
		Size:      size,
		SortBy:    c.Query("sortBy", "created_at"),
		Direction: c.Query("direction", "desc"),
	}
}
