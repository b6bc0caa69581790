package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"task-manager/internal/api"
	"task-manager/internal/domain"
)

func writeResponse(c *gin.Context, resp api.Response) {
	c.JSON(resp.Status, resp.Body)
}

func (s *Server) handleList(c *gin.Context) {
	writeResponse(c, s.api.List(c.Request.Context()))
}

func (s *Server) handleCreate(c *gin.Context) {
	var in domain.CreateTaskInput
	if err := c.ShouldBindJSON(&in); err != nil {
		writeResponse(c, s.api.InvalidBody(err))
		return
	}
	writeResponse(c, s.api.Create(c.Request.Context(), in))
}

func (s *Server) handleUpdate(c *gin.Context) {
	var in domain.UpdateTaskInput
	if err := c.ShouldBindJSON(&in); err != nil {
		writeResponse(c, s.api.InvalidBody(err))
		return
	}
	writeResponse(c, s.api.Update(c.Request.Context(), in))
}

func (s *Server) handleDelete(c *gin.Context) {
	writeResponse(c, s.api.Delete(c.Request.Context(), c.Query("id")))
}

func (s *Server) handleHealth(c *gin.Context) {
	writeResponse(c, s.api.Health(c.Request.Context()))
}

func (s *Server) handleBoard(c *gin.Context) {
	board, err := s.tasks.Board(c.Request.Context())
	if err != nil {
		s.logger.ErrorContext(c.Request.Context(), "render board", "error", err)
		c.HTML(http.StatusInternalServerError, "board.html", gin.H{
			"error": "Failed to load tasks. Please refresh and try again.",
		})
		return
	}

	c.HTML(http.StatusOK, "board.html", gin.H{
		"board": board,
	})
}
