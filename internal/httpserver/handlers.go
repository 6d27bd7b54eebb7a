package httpserver

import (
	"net/http"
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/syncapply/syncapply/internal/config"
	"github.com/syncapply/syncapply/internal/core"
)

// EmailResponse is the wire shape of one fetched email.
type EmailResponse struct {
	ID       string `json:"id"`
	Subject  string `json:"subject"`
	Sender   string `json:"sender"`
	Date     string `json:"date"`
	Snippet  string `json:"snippet"`
	BodyText string `json:"body_text"`
}

// SaveResult is the wire shape of a track attempt outcome. Expected skips
// (duplicate, not a job email) are success responses with Success false.
type SaveResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Handlers implements the REST surface over the core services.
type Handlers struct {
	sources  core.MailSourceFactory
	tracker  *core.TrackerService
	gmailCfg config.GmailConfig
	logger   *zap.Logger
}

// NewHandlers creates the handler set.
func NewHandlers(
	sources core.MailSourceFactory,
	tracker *core.TrackerService,
	gmailCfg config.GmailConfig,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		sources:  sources,
		tracker:  tracker,
		gmailCfg: gmailCfg,
		logger:   logger,
	}
}

func (h *Handlers) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "SyncApply API"})
}

// listEmails handles GET /api/emails. Fetch+extract of the listed messages
// fans out across a bounded set of workers; messages are independent, so
// order is restored by index afterwards.
func (h *Handlers) listEmails(c *gin.Context) {
	source, err := h.sources(c.Request.Context(), c.GetString(tokenKey))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	query := c.DefaultQuery("query", h.gmailCfg.DefaultQuery)
	maxResults := int64(h.gmailCfg.MaxResults)
	if raw := c.Query("max_results"); raw != "" {
		if parsed, err := strconv.ParseInt(raw, 10, 64); err == nil && parsed > 0 {
			maxResults = parsed
		}
	}

	refs, err := source.List(c.Request.Context(), query, maxResults)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	emails := make([]*core.ExtractedEmail, len(refs))
	errs := make([]error, len(refs))
	sem := make(chan struct{}, h.fetchConcurrency())
	var wg sync.WaitGroup
	for i, ref := range refs {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			emails[i], errs[i] = source.Fetch(c.Request.Context(), id)
		}(i, ref.ID)
	}
	wg.Wait()

	responses := make([]EmailResponse, 0, len(emails))
	for i, email := range emails {
		if errs[i] != nil {
			h.logger.Error("Failed to fetch message",
				zap.String("message_id", refs[i].ID),
				zap.Error(errs[i]))
			c.JSON(http.StatusInternalServerError, gin.H{"error": errs[i].Error()})
			return
		}
		responses = append(responses, toEmailResponse(email))
	}
	c.JSON(http.StatusOK, responses)
}

// getEmail handles GET /api/emails/:id.
func (h *Handlers) getEmail(c *gin.Context) {
	source, err := h.sources(c.Request.Context(), c.GetString(tokenKey))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	email, err := source.Fetch(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, toEmailResponse(email))
}

// saveApplication handles POST /api/applications/save/:id.
func (h *Handlers) saveApplication(c *gin.Context) {
	source, err := h.sources(c.Request.Context(), c.GetString(tokenKey))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	email, err := source.Fetch(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	h.trackAndRespond(c, email)
}

// processLatest handles POST /api/applications/process-latest.
func (h *Handlers) processLatest(c *gin.Context) {
	source, err := h.sources(c.Request.Context(), c.GetString(tokenKey))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	query := c.DefaultQuery("query", h.gmailCfg.DefaultQuery)
	refs, err := source.List(c.Request.Context(), query, 1)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if len(refs) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": core.ErrNoMessages.Error()})
		return
	}

	email, err := source.Fetch(c.Request.Context(), refs[0].ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	h.trackAndRespond(c, email)
}

// listApplications handles GET /api/applications.
func (h *Handlers) listApplications(c *gin.Context) {
	records, err := h.tracker.ListApplications(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if records == nil {
		records = []core.ApplicationRecord{}
	}
	c.JSON(http.StatusOK, records)
}

// trackAndRespond runs the tracker and maps its outcome: expected skips
// are 200 with a message, only store failures become server errors.
func (h *Handlers) trackAndRespond(c *gin.Context, email *core.ExtractedEmail) {
	saved, err := h.tracker.TrackApplication(c.Request.Context(), email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if saved {
		c.JSON(http.StatusOK, SaveResult{Success: true, Message: "Application saved successfully"})
		return
	}
	c.JSON(http.StatusOK, SaveResult{Success: false, Message: "Email skipped or already tracked"})
}

func (h *Handlers) fetchConcurrency() int {
	if h.gmailCfg.FetchConcurrency > 0 {
		return h.gmailCfg.FetchConcurrency
	}
	return 1
}

func toEmailResponse(email *core.ExtractedEmail) EmailResponse {
	return EmailResponse{
		ID:       email.ID,
		Subject:  email.Headers["Subject"],
		Sender:   email.Headers["From"],
		Date:     email.Headers["Date"],
		Snippet:  email.Snippet,
		BodyText: email.BodyText,
	}
}
