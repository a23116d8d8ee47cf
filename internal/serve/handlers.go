package serve

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/react-three/create/internal/archive"
	"github.com/react-three/create/internal/project"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func (s *server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"time":   time.Now().Format(time.RFC3339),
	})
}

// handleCallback completes the GitHub OAuth flow. The state parameter carries
// the base64 encoded options chosen before the redirect to GitHub.
func (s *server) handleCallback(c *gin.Context) {
	code, state := c.Query("code"), c.Query("state")
	if code == "" || state == "" {
		s.sendError(c, http.StatusBadRequest, "code and state are required", nil)
		return
	}

	opts, err := decodeState(state)
	if err != nil {
		s.sendError(c, http.StatusBadRequest, "invalid request parameters", err)
		return
	}
	if opts.Name == "" {
		opts.Name = s.randomName()
	}

	token, err := s.exchanger.Exchange(c.Request.Context(), code)
	if err != nil {
		s.sendError(c, http.StatusBadGateway, "failed to authenticate with github", err)
		return
	}

	files, err := s.generator.Generate(*opts)
	s.metrics.generation("github", err)
	if err != nil {
		s.sendError(c, http.StatusInternalServerError, "failed to generate project", err)
		return
	}

	repoURL, err := s.publisher.Publish(c.Request.Context(), opts.Name, files, token)
	if err != nil {
		s.sendError(c, http.StatusBadGateway, "failed to publish project", err)
		return
	}
	s.metrics.published.Inc()

	c.Redirect(http.StatusFound, repoURL)
}

func (s *server) handleGenerateZip(c *gin.Context) {
	opts, ok := s.bindOptions(c)
	if !ok {
		return
	}

	files, err := s.generator.Generate(*opts)
	if err != nil {
		s.metrics.generation("zip", err)
		s.sendError(c, http.StatusInternalServerError, "failed to generate project", err)
		return
	}

	var buf bytes.Buffer
	err = archive.WriteZip(c.Request.Context(), &buf, opts.ProjectName(), files, s.fetcher)
	s.metrics.generation("zip", err)
	if err != nil {
		s.sendError(c, http.StatusBadGateway, "failed to build archive", err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", archiveName(opts.ProjectName())))
	c.Data(http.StatusOK, "application/zip", buf.Bytes())
}

func (s *server) handleGenerateFiles(c *gin.Context) {
	opts, ok := s.bindOptions(c)
	if !ok {
		return
	}

	files, err := s.generator.Generate(*opts)
	s.metrics.generation("files", err)
	if err != nil {
		s.sendError(c, http.StatusInternalServerError, "failed to generate project", err)
		return
	}
	c.JSON(http.StatusOK, files)
}

// bindOptions decodes and validates the request body, writing the error
// response itself when it fails.
func (s *server) bindOptions(c *gin.Context) (*project.Options, bool) {
	body, err := c.GetRawData()
	if err != nil {
		s.sendError(c, http.StatusBadRequest, "invalid request body", err)
		return nil, false
	}
	opts, err := project.ParseOptions(body)
	if err != nil {
		s.sendError(c, http.StatusBadRequest, "invalid request body", err)
		return nil, false
	}
	if err := project.Validate(opts); err != nil {
		s.sendError(c, http.StatusBadRequest, "invalid request parameters", err)
		return nil, false
	}
	if err := s.checkFiles(opts.Files); err != nil {
		s.sendError(c, http.StatusBadRequest, "invalid request parameters", err)
		return nil, false
	}
	return opts, true
}

func (s *server) sendError(c *gin.Context, status int, msg string, err error) {
	resp := ErrorResponse{Error: msg}
	if err != nil {
		resp.Details = err.Error()
		if status >= http.StatusInternalServerError {
			s.logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg(msg)
		}
	}
	c.AbortWithStatusJSON(status, resp)
}

// decodeState turns the OAuth state parameter back into validated options.
// Some clients percent-encode the base64 text a second time. Only the form
// choices are accepted, anything that adds content to the repository is not.
func decodeState(state string) (*project.Options, error) {
	if strings.Contains(state, "%") {
		if unescaped, err := url.PathUnescape(state); err == nil {
			state = unescaped
		}
	}

	raw, err := base64.StdEncoding.DecodeString(state)
	if err != nil {
		if raw, err = base64.URLEncoding.DecodeString(state); err != nil {
			return nil, fmt.Errorf("failed to decode state: %w", err)
		}
	}

	opts, err := project.ParseOptions(raw)
	if err != nil {
		return nil, err
	}
	if err := project.Validate(opts); err != nil {
		return nil, err
	}
	if err := checkState(opts); err != nil {
		return nil, err
	}
	return opts, nil
}
