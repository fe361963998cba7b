package api

import (
	"errors"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"homeworth/server/internal/auth"
	"homeworth/server/internal/catalog"
	"homeworth/server/internal/database"
	"homeworth/server/internal/fmv"
	"homeworth/server/internal/guessing"
	"homeworth/server/internal/karma"
	"homeworth/server/internal/models"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type Handler struct {
	db         *database.Database
	gate       *guessing.Gate
	aggregator *fmv.Aggregator
	queue      *catalog.ReferenceQueue
	logger     *logrus.Logger
}

func NewHandler(db *database.Database, gate *guessing.Gate, aggregator *fmv.Aggregator, queue *catalog.ReferenceQueue, logger *logrus.Logger) *Handler {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}
	return &Handler{
		db:         db,
		gate:       gate,
		aggregator: aggregator,
		queue:      queue,
		logger:     logger,
	}
}

// SubmitGuess handles POST /api/properties/:id/guesses. Responds 201 for a
// first-time guess and 200 for an accepted edit.
func (h *Handler) SubmitGuess(c *gin.Context) {
	propertyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid property id"})
		return
	}

	userID, ok := auth.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var req models.SubmitGuessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithError(err).Error("Failed to parse guess submission")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	guess, created, err := h.gate.Submit(propertyID, userID, req.GuessedPrice)
	if err != nil {
		h.respondSubmitError(c, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, guess)
}

func (h *Handler) respondSubmitError(c *gin.Context, err error) {
	var cdErr *guessing.CooldownError
	switch {
	case errors.Is(err, guessing.ErrInvalidPrice):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Guessed price must be a positive amount"})
	case errors.Is(err, guessing.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
	case errors.Is(err, guessing.ErrPropertyNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
	case errors.As(err, &cdErr):
		c.JSON(http.StatusTooManyRequests, gin.H{
			"error":            "Guess can only be updated after the cooldown",
			"cooldown_ends_at": cdErr.Until.UTC().Format(time.RFC3339),
		})
	default:
		h.logger.WithError(err).Error("Failed to submit guess")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit guess"})
	}
}

// GetPropertyGuesses handles GET /api/properties/:id/guesses. The page is
// ordered by creation time, oldest first, and carries the FMV snapshot.
func (h *Handler) GetPropertyGuesses(c *gin.Context) {
	propertyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid property id"})
		return
	}

	page, pageSize := parsePageParams(c)

	result, err := h.aggregator.Compute(propertyID)
	if err != nil {
		if errors.Is(err, fmv.ErrPropertyNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
			return
		}
		h.logger.WithError(err).Error("Failed to compute FMV")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute FMV"})
		return
	}

	guesses, total, err := h.db.ListGuesses(propertyID, page, pageSize)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list guesses")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list guesses"})
		return
	}

	views, err := h.decorate(guesses)
	if err != nil {
		h.logger.WithError(err).Error("Failed to decorate guesses")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list guesses"})
		return
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	c.JSON(http.StatusOK, models.GuessListResponse{
		Guesses: views,
		Pagination: models.Pagination{
			Page:       page,
			PageSize:   pageSize,
			TotalItems: total,
			TotalPages: totalPages,
		},
		Fmv: result,
	})
}

// decorate attaches each guess author's identity and karma rank.
func (h *Handler) decorate(guesses []models.Guess) ([]models.GuessView, error) {
	userIDs := make([]uuid.UUID, len(guesses))
	for i, g := range guesses {
		userIDs[i] = g.UserID
	}
	users, err := h.db.UsersByIDs(userIDs)
	if err != nil {
		return nil, err
	}

	views := make([]models.GuessView, len(guesses))
	for i, g := range guesses {
		author := models.GuessAuthor{ID: g.UserID}
		if u, ok := users[g.UserID]; ok {
			author.DisplayName = u.DisplayName
			author.KarmaScore = u.KarmaScore
		}
		author.Rank = karma.Rank(author.KarmaScore)

		views[i] = models.GuessView{
			ID:           g.ID,
			GuessedPrice: g.GuessedPrice,
			IsOutlier:    g.IsOutlier,
			CreatedAt:    g.CreatedAt,
			UpdatedAt:    g.UpdatedAt,
			Author:       author,
		}
	}
	return views, nil
}

// GetFmv handles GET /api/properties/:id/fmv.
func (h *Handler) GetFmv(c *gin.Context) {
	propertyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid property id"})
		return
	}

	result, err := h.aggregator.Compute(propertyID)
	if err != nil {
		if errors.Is(err, fmv.ErrPropertyNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
			return
		}
		h.logger.WithError(err).Error("Failed to compute FMV")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute FMV"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetProperty handles GET /api/properties/:id.
func (h *Handler) GetProperty(c *gin.Context) {
	propertyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid property id"})
		return
	}

	property, err := h.db.GetProperty(propertyID)
	if err != nil {
		h.logger.WithError(err).Error("Failed to get property")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get property"})
		return
	}
	if property == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
		return
	}

	c.JSON(http.StatusOK, property)
}

// ImportProperties handles POST /api/admin/properties/import by queueing
// the batch for the importer workers.
func (h *Handler) ImportProperties(c *gin.Context) {
	var reqs []models.PropertyImportRequest
	if err := c.ShouldBindJSON(&reqs); err != nil {
		h.logger.WithError(err).Error("Failed to parse import batch")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid import batch"})
		return
	}
	if len(reqs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Import batch is empty"})
		return
	}

	batch := make([]*models.Property, len(reqs))
	for i, r := range reqs {
		batch[i] = &models.Property{
			ID:            r.ID,
			Address:       r.Address,
			City:          r.City,
			PostalCode:    r.PostalCode,
			PropertyType:  r.PropertyType,
			LivingArea:    r.LivingArea,
			AskingPrice:   r.AskingPrice,
			AssessedValue: r.AssessedValue,
		}
	}

	if err := h.queue.Push(batch); err != nil {
		h.logger.WithError(err).Error("Failed to queue import batch")
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Import queue unavailable, retry later"})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"status": "queued",
		"count":  len(batch),
	})
}

// ImportUsers handles POST /api/admin/users/import.
func (h *Handler) ImportUsers(c *gin.Context) {
	var reqs []models.UserImportRequest
	if err := c.ShouldBindJSON(&reqs); err != nil {
		h.logger.WithError(err).Error("Failed to parse user batch")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user batch"})
		return
	}
	if len(reqs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User batch is empty"})
		return
	}

	users := make([]*models.User, len(reqs))
	for i, r := range reqs {
		users[i] = &models.User{
			ID:          r.ID,
			DisplayName: r.DisplayName,
			KarmaScore:  r.KarmaScore,
		}
	}

	if err := h.db.UpsertUsers(users); err != nil {
		h.logger.WithError(err).Error("Failed to upsert users")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to import users"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": len(users)})
}

// Health handles GET /api/health.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func parsePageParams(c *gin.Context) (int, int) {
	page := 1
	if v, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil && v > 0 {
		page = v
	}

	pageSize := defaultPageSize
	if v, err := strconv.Atoi(c.DefaultQuery("page_size", "")); err == nil && v > 0 {
		pageSize = v
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize
}
