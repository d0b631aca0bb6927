package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/resume-platform/jwtauth/core"
	jwtgin "github.com/resume-platform/jwtauth/framework/gin"
)

// Response DTOs leave out empty fields.

type HealthResponse struct {
	Status string `json:"status"`
	Time   string `json:"time"`
}

type SessionResponse struct {
	Authenticated bool   `json:"authenticated"`
	Subject       string `json:"subject,omitempty"`
	Source        string `json:"source,omitempty"`
	Reason        string `json:"reason,omitempty"`
}

type MeResponse struct {
	Subject   string         `json:"subject,omitempty"`
	Issuer    string         `json:"issuer,omitempty"`
	Audience  []string       `json:"audience,omitempty"`
	ExpiresAt *time.Time     `json:"expires_at,omitempty"`
	Claims    map[string]any `json:"claims"`
}

func health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status: "healthy",
		Time:   time.Now().UTC().Format(time.RFC3339),
	})
}

// session reports the caller's state and never fails.
func session(c *gin.Context) {
	p, err := jwtgin.GetPrincipal(c)
	if err != nil {
		resp := SessionResponse{Reason: core.NoCredential.Code()}
		if value, ok := c.Get(jwtgin.DefaultOutcomeKey); ok {
			if outcome, ok := value.(core.Outcome); ok {
				resp.Reason = outcome.Reason().Code()
			}
		}
		c.JSON(http.StatusOK, resp)
		return
	}

	c.JSON(http.StatusOK, SessionResponse{
		Authenticated: true,
		Subject:       p.Subject(),
		Source:        p.Source.String(),
	})
}

func me(c *gin.Context) {
	p, err := jwtgin.GetPrincipal(c)
	if err != nil {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	resp := MeResponse{
		Subject:  p.Subject(),
		Issuer:   p.Issuer(),
		Audience: p.Audience(),
		Claims:   p.Claims,
	}
	if exp := p.ExpiresAt(); !exp.IsZero() {
		exp = exp.UTC()
		resp.ExpiresAt = &exp
	}
	c.JSON(http.StatusOK, resp)
}
