package handlers

import (
	"log"
	"net/http"
	"strconv"

	dom "Tracker/internal/domain"
	"Tracker/internal/dto"
	"Tracker/internal/service"

	"github.com/gin-gonic/gin"
)

type IssueHandler struct {
	svc *service.IssueService
}

func NewIssueHandler(svc *service.IssueService) *IssueHandler {
	return &IssueHandler{svc: svc}
}

// Create godoc
// @Summary      Log a new issue
// @Tags         issues
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      dto.CreateIssueRequest  true  "Issue body"
// @Success      200   {object}  dto.CreateIssueResponse
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /issues [post]
func (h *IssueHandler) Create(c *gin.Context) {
	var req dto.CreateIssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	issue, notifications, err := h.svc.Create(c.Request.Context(), req.Issue, req.Category, req.Assignee, dom.Complainant{
		PhoneNumber: req.Complainant.PhoneNumber,
		Email:       req.Complainant.Email,
	})
	if err != nil {
		log.Printf("create issue: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to log issue"})
		return
	}
	c.JSON(http.StatusOK, dto.CreateIssueResponse{
		Message:        "Issue logged successfully",
		TrackingNumber: issue.ID,
		Notifications:  notifications,
	})
}

// List godoc
// @Summary      List all issues
// @Tags         issues
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.ListIssuesResponse
// @Failure      500  {object}  map[string]string
// @Router       /issues [get]
func (h *IssueHandler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context())
	if err != nil {
		log.Printf("list issues: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch issues"})
		return
	}
	c.JSON(http.StatusOK, dto.ListIssuesResponse{Items: issuesToResponses(list)})
}

// Stats godoc
// @Summary      Issue counts per status
// @Tags         issues
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.StatsResponse
// @Failure      500  {object}  map[string]string
// @Router       /issues/stats [get]
func (h *IssueHandler) Stats(c *gin.Context) {
	stats, err := h.svc.Stats(c.Request.Context())
	if err != nil {
		log.Printf("issue stats: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch stats"})
		return
	}
	c.JSON(http.StatusOK, dto.StatsResponse{
		TotalIssues:    stats.TotalIssues,
		ResolvedIssues: stats.ResolvedIssues,
		PendingIssues:  stats.PendingIssues,
	})
}

// Update godoc
// @Summary      Update an issue
// @Tags         issues
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int  true  "Issue ID"
// @Param        body  body      dto.UpdateIssueRequest  true  "Full overwrite"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /issues/{id} [put]
func (h *IssueHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateIssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	// An unknown id is a no-op, reported as success.
	if err := h.svc.Update(c.Request.Context(), id, req.Issue, req.Category, req.Assignee, req.Status); err != nil {
		log.Printf("update issue: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update issue"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Issue updated successfully"})
}

// Delete godoc
// @Summary      Delete an issue
// @Tags         issues
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  int  true  "Issue ID"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /issues/{id} [delete]
func (h *IssueHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		log.Printf("delete issue: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete issue"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Issue deleted successfully"})
}

func parseID(c *gin.Context, name string) (int64, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

func issueToResponse(t dom.Issue) dto.IssueResponse {
	return dto.IssueResponse{
		ID:       t.ID,
		Issue:    t.IssueText,
		Category: t.Category,
		Assignee: t.Assignee,
		Complainant: dto.ComplainantPayload{
			PhoneNumber: t.Complainant.PhoneNumber,
			Email:       t.Complainant.Email,
		},
		Status:    t.Status,
		CreatedAt: t.CreatedAt,
	}
}

func issuesToResponses(list []dom.Issue) []dto.IssueResponse {
	out := make([]dto.IssueResponse, len(list))
	for i := range list {
		out[i] = issueToResponse(list[i])
	}
	return out
}
