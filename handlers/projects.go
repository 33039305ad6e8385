package handlers

import (
	"errors"
	"log"
	"net/http"

	"notifyhub/database"
	"notifyhub/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func CreateProject(db *database.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.CreateProjectRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx := c.Request.Context()
		project, err := db.CreateProject(ctx, req.Name)
		if err != nil {
			if errors.Is(err, database.ErrProjectExists) {
				c.JSON(http.StatusConflict, gin.H{"error": "project name already exists"})
				return
			}
			log.Printf("CreateProject database error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create project"})
			return
		}

		c.JSON(http.StatusCreated, project)
	}
}

func ListProjects(db *database.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		projects, err := db.ListProjects(ctx)
		if err != nil {
			log.Printf("ListProjects database error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list projects"})
			return
		}

		c.JSON(http.StatusOK, models.ProjectsResponse{
			Projects: projects,
			Total:    len(projects),
		})
	}
}

func DeleteProject(db *database.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		projectID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project ID"})
			return
		}

		ctx := c.Request.Context()
		if err := db.DeleteProject(ctx, projectID); err != nil {
			if errors.Is(err, database.ErrProjectNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
				return
			}
			log.Printf("DeleteProject database error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete project"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"status": "success", "message": "project deleted"})
	}
}
