package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gofiber/fiber/v2"

	"github.com/aebalz/mindful-journey/internal/model"
	"github.com/aebalz/mindful-journey/internal/service"
)

// MoodHandler serves the mood log, streak and history endpoints.
type MoodHandler struct {
	Moods service.MoodServiceInterface
	Chat  service.ChatServiceInterface
}

// NewMoodHandler creates a new MoodHandler.
func NewMoodHandler(moods service.MoodServiceInterface, chat service.ChatServiceInterface) *MoodHandler {
	return &MoodHandler{Moods: moods, Chat: chat}
}

func exportFilename(format string) string {
	ext := strings.ToLower(format)
	if ext == "" {
		ext = "json"
	}
	return "mindful-journey-export." + ext
}

// ListLogsFiber returns every log entry, newest first.
// @Summary List mood logs
// @Description Every stored entry, newest first.
// @Tags Moods
// @Produce json
// @Success 200 {array} model.MoodLog
// @Router /logs [get]
func (h *MoodHandler) ListLogsFiber(c *fiber.Ctx) error {
	return c.JSON(h.Moods.All())
}

// ListLogsGin returns every log entry, newest first.
func (h *MoodHandler) ListLogsGin(c *gin.Context) {
	c.JSON(http.StatusOK, h.Moods.All())
}

// CheckInFiber records today's mood, replacing anything logged earlier today.
// @Summary Check in today's mood
// @Description Creates or replaces today's entry and answers with an affirmation, or with crisis resources for extremely-low.
// @Tags Moods
// @Accept json
// @Produce json
// @Param request body CheckInRequest true "Mood and optional journal"
// @Success 201 {object} service.CheckInResult
// @Failure 400 {object} ErrorResponse
// @Router /logs [post]
func (h *MoodHandler) CheckInFiber(c *fiber.Ctx) error {
	var req CheckInRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(validationError(err))
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(validationError(err))
	}
	res, err := h.Chat.CheckIn(c.UserContext(), model.Mood(req.Mood), req.Journal)
	if err != nil {
		status, body := errorStatus(err)
		return c.Status(status).JSON(body)
	}
	return c.Status(fiber.StatusCreated).JSON(res)
}

// CheckInGin records today's mood, replacing anything logged earlier today.
func (h *MoodHandler) CheckInGin(c *gin.Context) {
	var req CheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, validationError(err))
		return
	}
	res, err := h.Chat.CheckIn(c.Request.Context(), model.Mood(req.Mood), req.Journal)
	if err != nil {
		c.JSON(errorStatus(err))
		return
	}
	c.JSON(http.StatusCreated, res)
}

// TodayFiber returns today's entry.
// @Summary Today's entry
// @Tags Moods
// @Produce json
// @Success 200 {object} model.MoodLog
// @Failure 404 {object} ErrorResponse "Nothing logged today"
// @Failure 500 {object} ErrorResponse "Stored data is corrupt"
// @Router /logs/today [get]
func (h *MoodHandler) TodayFiber(c *fiber.Ctx) error {
	today, err := h.Moods.TodayLog()
	if err != nil {
		status, body := errorStatus(err)
		return c.Status(status).JSON(body)
	}
	if today == nil {
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: "no mood logged today", Code: CodeNotFound})
	}
	return c.JSON(today)
}

// TodayGin returns today's entry.
func (h *MoodHandler) TodayGin(c *gin.Context) {
	today, err := h.Moods.TodayLog()
	if err != nil {
		c.JSON(errorStatus(err))
		return
	}
	if today == nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "no mood logged today", Code: CodeNotFound})
		return
	}
	c.JSON(http.StatusOK, today)
}

// StreakFiber returns the current streak.
// @Summary Current streak
// @Description Consecutive logged days ending today or yesterday.
// @Tags Moods
// @Produce json
// @Success 200 {object} StreakResponse
// @Failure 500 {object} ErrorResponse "Stored data is corrupt"
// @Router /streak [get]
func (h *MoodHandler) StreakFiber(c *fiber.Ctx) error {
	n, err := h.Moods.Streak()
	if err != nil {
		status, body := errorStatus(err)
		return c.Status(status).JSON(body)
	}
	return c.JSON(StreakResponse{Streak: n})
}

// StreakGin returns the current streak.
func (h *MoodHandler) StreakGin(c *gin.Context) {
	n, err := h.Moods.Streak()
	if err != nil {
		c.JSON(errorStatus(err))
		return
	}
	c.JSON(http.StatusOK, StreakResponse{Streak: n})
}

func (h *MoodHandler) history() (HistoryResponse, error) {
	logs, err := h.Moods.History()
	if err != nil {
		return HistoryResponse{}, err
	}
	chart, err := h.Moods.Chart()
	if err != nil {
		return HistoryResponse{}, err
	}
	return HistoryResponse{Logs: logs, Chart: chart}, nil
}

// HistoryFiber returns the last 30 logged days, oldest first.
// @Summary Mood history
// @Description One entry per day for the newest 30 logged days, oldest first, with chart values.
// @Tags Moods
// @Produce json
// @Success 200 {object} HistoryResponse
// @Failure 500 {object} ErrorResponse "Stored data is corrupt"
// @Router /history [get]
func (h *MoodHandler) HistoryFiber(c *fiber.Ctx) error {
	res, err := h.history()
	if err != nil {
		status, body := errorStatus(err)
		return c.Status(status).JSON(body)
	}
	return c.JSON(res)
}

// HistoryGin returns the last 30 logged days, oldest first.
func (h *MoodHandler) HistoryGin(c *gin.Context) {
	res, err := h.history()
	if err != nil {
		c.JSON(errorStatus(err))
		return
	}
	c.JSON(http.StatusOK, res)
}

// SummaryFiber returns the dashboard summary.
// @Summary Dashboard summary
// @Tags Moods
// @Produce json
// @Success 200 {object} streak.Summary
// @Failure 500 {object} ErrorResponse "Stored data is corrupt"
// @Router /summary [get]
func (h *MoodHandler) SummaryFiber(c *fiber.Ctx) error {
	res, err := h.Moods.Summary()
	if err != nil {
		status, body := errorStatus(err)
		return c.Status(status).JSON(body)
	}
	return c.JSON(res)
}

// SummaryGin returns the dashboard summary.
func (h *MoodHandler) SummaryGin(c *gin.Context) {
	res, err := h.Moods.Summary()
	if err != nil {
		c.JSON(errorStatus(err))
		return
	}
	c.JSON(http.StatusOK, res)
}

// ExportFiber downloads the whole log.
// @Summary Export mood logs
// @Tags Moods
// @Produce json
// @Produce text/csv
// @Param format query string false "csv or json" default(json)
// @Success 200 {file} file
// @Failure 400 {object} ErrorResponse
// @Router /export [get]
func (h *MoodHandler) ExportFiber(c *fiber.Ctx) error {
	format := c.Query("format", "json")
	data, contentType, err := h.Moods.Export(format)
	if err != nil {
		status, body := errorStatus(err)
		return c.Status(status).JSON(body)
	}
	c.Attachment(exportFilename(format))
	c.Set(fiber.HeaderContentType, contentType)
	return c.Send(data)
}

// ExportGin downloads the whole log.
func (h *MoodHandler) ExportGin(c *gin.Context) {
	format := c.DefaultQuery("format", "json")
	data, contentType, err := h.Moods.Export(format)
	if err != nil {
		c.JSON(errorStatus(err))
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+exportFilename(format)+`"`)
	c.Data(http.StatusOK, contentType, data)
}
