package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"mockchat/services"
)

type AccountHandler struct {
	Accounts *services.AccountService
}

type CreateAccountRequest struct {
	Name     string `json:"name" binding:"required"`
	Password string `json:"password"`
}

type UpdateAccountRequest struct {
	Name     *string `json:"name"`
	Password *string `json:"password"`
}

type AccountResponse struct {
	Identifier string    `json:"identifier"`
	Name       string    `json:"name"`
	CreatedAt  time.Time `json:"created_at"`
}

// Create - POST /api/v1/accounts
func (h *AccountHandler) Create(c *gin.Context) {
	var req CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "field 'name' is required"})
		return
	}

	acct, err := h.Accounts.Create(c.Request.Context(), req.Name, req.Password)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, AccountResponse{
		Identifier: acct.Identifier,
		Name:       acct.Name,
		CreatedAt:  acct.CreatedAt,
	})
}

// Get - GET /api/v1/accounts/:identifier
func (h *AccountHandler) Get(c *gin.Context) {
	acct, err := h.Accounts.Get(c.Request.Context(), c.Param("identifier"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, AccountResponse{
		Identifier: acct.Identifier,
		Name:       acct.Name,
		CreatedAt:  acct.CreatedAt,
	})
}

// Update - PUT /api/v1/accounts/:identifier
func (h *AccountHandler) Update(c *gin.Context) {
	var req UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid request body"})
		return
	}

	acct, err := h.Accounts.Update(c.Request.Context(), c.Param("identifier"), services.AccountUpdate{
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"identifier": acct.Identifier, "name": acct.Name})
}

// Delete - DELETE /api/v1/accounts/:identifier
func (h *AccountHandler) Delete(c *gin.Context) {
	if err := h.Accounts.Delete(c.Request.Context(), c.Param("identifier")); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
