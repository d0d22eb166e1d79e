package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/PayAidPayments/PayAid-V3-sub021/internal/domain"
	"github.com/PayAidPayments/PayAid-V3-sub021/internal/gate"
	"github.com/PayAidPayments/PayAid-V3-sub021/internal/http/middleware"
	"github.com/PayAidPayments/PayAid-V3-sub021/internal/modules"
)

// AccessHandler exposes the access-check endpoints the platform's route
// handlers and frontends call.
type AccessHandler struct {
	Gate *gate.Gate
}

// NewAccessHandler creates the handler set.
func NewAccessHandler(g *gate.Gate) *AccessHandler {
	return &AccessHandler{Gate: g}
}

// Health reports liveness.
func (h *AccessHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Registry lists every known module definition. Public: the pricing page
// renders from it.
func (h *AccessHandler) Registry(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"modules": modules.All()})
}

type checkRequest struct {
	ModuleID string `json:"module_id" binding:"required"`
}

// Check decides access for the module named in the request body.
func (h *AccessHandler) Check(c *gin.Context) {
	var req checkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "module_id is required.", "code": "InvalidRequest"})
		return
	}
	h.decide(c, req.ModuleID)
}

// CheckModule decides access for the module named in the path.
func (h *AccessHandler) CheckModule(c *gin.Context) {
	h.decide(c, c.Param("module"))
}

func (h *AccessHandler) decide(c *gin.Context, moduleID string) {
	// The id arrives over the wire here, so an unknown value is client
	// input, not the programming error the in-process gate panics on.
	if !modules.Known(moduleID) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown module identifier.", "code": "UnknownModule"})
		return
	}

	identity, _ := middleware.GetIdentity(c)
	grant, err := h.Gate.Check(c.Request.Context(), identity, moduleID)
	if err != nil {
		status, resp := gate.Translate(err)
		c.JSON(status, resp)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tenant_id": grant.TenantID,
		"user_id":   grant.UserID,
		"module_id": moduleID,
	})
}

// LicensedModules returns the caller's currently usable module set.
func (h *AccessHandler) LicensedModules(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		status, resp := gate.Translate(domain.Denied(domain.DenyUnauthenticated))
		c.JSON(status, resp)
		return
	}

	set, err := h.Gate.LicensedModules(c.Request.Context(), identity.TenantID)
	if err != nil {
		status, resp := gate.Translate(err)
		c.JSON(status, resp)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tenant_id": identity.TenantID,
		"modules":   set.List(),
	})
}
