package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/petshop-storefront/internal/logger"
	"github.com/yungbote/petshop-storefront/internal/session"
	"github.com/yungbote/petshop-storefront/internal/syncer"
	"github.com/yungbote/petshop-storefront/internal/types"
)

// SessionHandler stores the credential the identity provider handed the
// UI and tears the session down on logout. Token issuance itself lives
// outside this service.
type SessionHandler struct {
	log         *logger.Logger
	sessions    *session.Store
	coordinator *syncer.Coordinator
}

func NewSessionHandler(sessions *session.Store, coordinator *syncer.Coordinator, log *logger.Logger) *SessionHandler {
	return &SessionHandler{
		log:         log.With("handler", "SessionHandler"),
		sessions:    sessions,
		coordinator: coordinator,
	}
}

type signInRequest struct {
	Token string `json:"token" binding:"required"`
}

func (h *SessionHandler) SignIn(c *gin.Context) {
	var req signInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	h.sessions.Set(types.Credential{Token: req.Token})
	mode := h.sessions.Resolve()
	h.log.Info("session credential stored", "mode", mode.String())

	// A backend-backed sign-in immediately pulls the authoritative cart.
	result := h.coordinator.Reconcile(c.Request.Context())
	RespondOK(c, gin.H{"mode": mode.String(), "cart": result.State})
}

func (h *SessionHandler) SignOut(c *gin.Context) {
	h.coordinator.Logout(c.Request.Context())
	RespondOK(c, gin.H{"mode": types.Guest.String()})
}

func (h *SessionHandler) GetSession(c *gin.Context) {
	RespondOK(c, gin.H{"mode": h.sessions.Resolve().String()})
}
