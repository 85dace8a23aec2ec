package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gofiber/fiber/v2"

	"github.com/aebalz/mindful-journey/internal/model"
	"github.com/aebalz/mindful-journey/internal/service"
)

// ChatHandler serves the assistant endpoints.
type ChatHandler struct {
	Chat service.ChatServiceInterface
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(chat service.ChatServiceInterface) *ChatHandler {
	return &ChatHandler{Chat: chat}
}

func parseText(c *fiber.Ctx) (TextRequest, error) {
	var req TextRequest
	if err := c.BodyParser(&req); err != nil {
		return req, err
	}
	return req, validate.Struct(req)
}

// ChatFiber answers a message and logs the detected mood if today is still empty.
// @Summary Chat with the assistant
// @Description Replies empathetically, suggests a quote and logs the detected mood when nothing was logged today.
// @Tags Assistant
// @Accept json
// @Produce json
// @Param request body TextRequest true "Message"
// @Success 200 {object} service.ChatReply
// @Failure 400 {object} ErrorResponse
// @Router /chat [post]
func (h *ChatHandler) ChatFiber(c *fiber.Ctx) error {
	req, err := parseText(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(validationError(err))
	}
	res, err := h.Chat.Chat(c.UserContext(), req.Text)
	if err != nil {
		status, body := errorStatus(err)
		return c.Status(status).JSON(body)
	}
	return c.JSON(res)
}

// ChatGin answers a message and logs the detected mood if today is still empty.
func (h *ChatHandler) ChatGin(c *gin.Context) {
	var req TextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, validationError(err))
		return
	}
	res, err := h.Chat.Chat(c.Request.Context(), req.Text)
	if err != nil {
		c.JSON(errorStatus(err))
		return
	}
	c.JSON(http.StatusOK, res)
}

// AnalyzeFiber reads the mood of a journal entry without logging it.
// @Summary Analyze journal text
// @Tags Assistant
// @Accept json
// @Produce json
// @Param request body TextRequest true "Journal text"
// @Success 200 {object} model.MoodAnalysisResult
// @Failure 400 {object} ErrorResponse
// @Router /analyze [post]
func (h *ChatHandler) AnalyzeFiber(c *fiber.Ctx) error {
	req, err := parseText(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(validationError(err))
	}
	res, err := h.Chat.Analyze(c.UserContext(), req.Text)
	if err != nil {
		status, body := errorStatus(err)
		return c.Status(status).JSON(body)
	}
	return c.JSON(res)
}

// AnalyzeGin reads the mood of a journal entry without logging it.
func (h *ChatHandler) AnalyzeGin(c *gin.Context) {
	var req TextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, validationError(err))
		return
	}
	res, err := h.Chat.Analyze(c.Request.Context(), req.Text)
	if err != nil {
		c.JSON(errorStatus(err))
		return
	}
	c.JSON(http.StatusOK, res)
}

// AffirmationFiber returns an affirmation, or crisis resources for extremely-low.
// @Summary Get an affirmation
// @Tags Assistant
// @Accept json
// @Produce json
// @Param request body AffirmationRequest true "Mood"
// @Success 200 {object} service.AffirmationResult
// @Failure 400 {object} ErrorResponse
// @Router /affirmations [post]
func (h *ChatHandler) AffirmationFiber(c *fiber.Ctx) error {
	var req AffirmationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(validationError(err))
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(validationError(err))
	}
	res, err := h.Chat.Affirm(c.UserContext(), model.Mood(req.Mood))
	if err != nil {
		status, body := errorStatus(err)
		return c.Status(status).JSON(body)
	}
	return c.JSON(res)
}

// AffirmationGin returns an affirmation, or crisis resources for extremely-low.
func (h *ChatHandler) AffirmationGin(c *gin.Context) {
	var req AffirmationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, validationError(err))
		return
	}
	res, err := h.Chat.Affirm(c.Request.Context(), model.Mood(req.Mood))
	if err != nil {
		c.JSON(errorStatus(err))
		return
	}
	c.JSON(http.StatusOK, res)
}
