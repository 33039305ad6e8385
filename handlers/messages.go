package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"notifyhub/database"
	"notifyhub/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func HealthCheck(c *gin.Context) {
	c.JSON(200, gin.H{
		"status": "ok",
	})
}

// Notify is the ingestion endpoint. The notify-key middleware has already
// authorized the caller; this resolves or creates the project and stores the
// message in one transaction.
func Notify(db *database.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.NotifyRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx := c.Request.Context()
		result, err := db.IngestMessage(ctx, req)
		if err != nil {
			log.Printf("IngestMessage database error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store notification"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":       "success",
			"message_id":   result.MessageID,
			"project_name": result.ProjectName,
		})
	}
}

func GetMessages(db *database.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var params models.QueryParams
		if err := c.ShouldBindQuery(&params); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if err := validateQueryParams(params); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx := c.Request.Context()
		messages, total, err := db.QueryMessages(ctx, params)
		if err != nil {
			log.Printf("QueryMessages database error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to query messages"})
			return
		}

		limit := params.Limit
		if limit <= 0 {
			limit = 50
		}
		skip := params.Skip
		if skip < 0 {
			skip = 0
		}

		c.JSON(http.StatusOK, models.MessagesResponse{
			Messages: messages,
			Total:    total,
			Limit:    limit,
			Skip:     skip,
			HasMore:  int64(skip+len(messages)) < total,
		})
	}
}

func DeleteMessage(db *database.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		messageID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid message ID"})
			return
		}

		ctx := c.Request.Context()
		if err := db.SoftDeleteMessage(ctx, messageID); err != nil {
			if errors.Is(err, database.ErrMessageNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "message not found"})
				return
			}
			log.Printf("SoftDeleteMessage database error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete message"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"status": "success", "message": "message soft deleted"})
	}
}

// PurgeMessages permanently removes every soft-deleted message.
func PurgeMessages(db *database.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		deleted, err := db.PurgeDeletedMessages(ctx)
		if err != nil {
			log.Printf("PurgeDeletedMessages database error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to purge messages"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"status": "success", "deleted_count": deleted})
	}
}

// validateQueryParams rejects malformed filters before they reach the
// database layer, so binding problems surface as 400s rather than 500s.
func validateQueryParams(params models.QueryParams) error {
	if params.ProjectID != "" {
		if _, err := uuid.Parse(params.ProjectID); err != nil {
			return errors.New("invalid project_id")
		}
	}
	if params.StartDate != "" {
		if _, err := time.Parse(time.RFC3339, params.StartDate); err != nil {
			return errors.New("invalid start_date (expected RFC3339)")
		}
	}
	if params.EndDate != "" {
		if _, err := time.Parse(time.RFC3339, params.EndDate); err != nil {
			return errors.New("invalid end_date (expected RFC3339)")
		}
	}
	return nil
}
