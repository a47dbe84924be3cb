package note

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"gymcore-backend/internal/database"
	"gymcore-backend/internal/models"
)

type NoteRequest struct {
	Content string  `json:"content"`
	StaffID *string `json:"staff_id"`
}

type NoteResponse struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	StaffID   *string   `json:"staff_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toNoteResponse(n *models.Note) NoteResponse {
	res := NoteResponse{
		ID:        n.ID.String(),
		Content:   n.Content,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
	if n.StaffID != nil {
		id := n.StaffID.String()
		res.StaffID = &id
	}
	return res
}

// GET /api/notes
func ListNotesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var rows []models.Note
		if err := database.DB.Order("created_at desc").Find(&rows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list notes")
		}

		res := make([]NoteResponse, 0, len(rows))
		for i := range rows {
			res = append(res, toNoteResponse(&rows[i]))
		}
		return c.JSON(res)
	}
}

// POST /api/notes
func CreateNoteHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body NoteRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.Content = strings.TrimSpace(body.Content)
		if body.Content == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Content is required")
		}

		var staffID *uuid.UUID
		if body.StaffID != nil && *body.StaffID != "" {
			id, err := uuid.Parse(*body.StaffID)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Staff ID is not a valid UUID")
			}
			staffID = &id
		}

		n := models.Note{Content: body.Content, StaffID: staffID}
		if err := database.DB.Create(&n).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create note")
		}

		return c.Status(fiber.StatusCreated).JSON(toNoteResponse(&n))
	}
}

// PUT /api/notes/:id
func UpdateNoteHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var n models.Note
		if err := database.DB.First(&n, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Note not found")
		}

		var body NoteRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.Content = strings.TrimSpace(body.Content)
		if body.Content == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Content is required")
		}
		n.Content = body.Content

		if err := database.DB.Save(&n).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update note")
		}

		return c.JSON(toNoteResponse(&n))
	}
}

// DELETE /api/notes/:id
func DeleteNoteHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		if err := database.DB.Delete(&models.Note{}, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete note")
		}

		return c.JSON(fiber.Map{"success": true})
	}
}
