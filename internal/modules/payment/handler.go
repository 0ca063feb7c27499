package payment

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Handler exposes the three payment endpoints. Their wire formats are a
// contract with the gateway and the existing frontend, so responses are the
// flat shapes those callers expect rather than the site-wide envelope.
type Handler struct {
	service *Service
	loggerf func(format string, args ...interface{})
}

func NewHandler(service *Service, loggerf func(format string, args ...interface{})) *Handler {
	if loggerf == nil {
		loggerf = func(string, ...interface{}) {}
	}
	return &Handler{service: service, loggerf: loggerf}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/payments/transactions", h.CreateTransaction)
	rg.POST("/payments/status", h.CheckStatus)
	rg.POST("/payments/webhook", h.Webhook)
}

func (h *Handler) CreateTransaction(c *gin.Context) {
	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body"})
		return
	}

	resp, err := h.service.CreateTransaction(c.Request.Context(), req, c.GetHeader("Origin"))
	if err != nil {
		h.loggerf("level=error msg=create transaction failed order_id=%s err=%v", req.OrderID, err)
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"token":        resp.Token,
		"redirect_url": resp.RedirectURL,
	})
}

func (h *Handler) CheckStatus(c *gin.Context) {
	var req CheckStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body"})
		return
	}

	payload, err := h.service.CheckStatus(c.Request.Context(), req.OrderID)
	if err != nil {
		h.loggerf("level=error msg=status check failed order_id=%s err=%v", req.OrderID, err)
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	out := gin.H{"success": true}
	for k, v := range payload {
		out[k] = v
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) Webhook(c *gin.Context) {
	var n Notification
	if err := c.ShouldBindJSON(&n); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid notification payload"})
		return
	}

	status, err := h.service.HandleNotification(c.Request.Context(), n)
	if err != nil {
		if errors.Is(err, ErrInvalidSignature) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid signature"})
			return
		}
		h.loggerf("level=error msg=webhook processing failed order_id=%s err=%v", n.OrderID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"order_id": n.OrderID,
		"status":   status,
	})
}
