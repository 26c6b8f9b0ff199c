package sessions

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// StartSession handles POST /api/v1/sessions/start
func (c *Controller) StartSession(ctx *gin.Context) {
	var req StartSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	result := c.service.StartSession(ctx.Request.Context(), req)
	switch r := result.(type) {
	case StartSuccess:
		ctx.JSON(http.StatusCreated, gin.H{
			"message": "Parking session started",
			"data":    r.Session.ToResponse(),
		})
	case StartLotNotFound:
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Parking lot not found"})
	case StartLotFull:
		ctx.JSON(http.StatusConflict, gin.H{"error": "Parking lot is full"})
	case StartAlreadyActive:
		ctx.JSON(http.StatusConflict, gin.H{"error": "An active session already exists for this plate"})
	case StartPreAuthFailed:
		ctx.JSON(http.StatusPaymentRequired, gin.H{
			"error":  "Payment pre-authorization declined",
			"reason": r.Reason,
		})
	case StartError:
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": r.Message})
	}
}

// StopSession handles POST /api/v1/sessions/stop
func (c *Controller) StopSession(ctx *gin.Context) {
	var req StopSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	result := c.service.StopSession(ctx.Request.Context(), req)
	switch r := result.(type) {
	case StopSuccess:
		ctx.JSON(http.StatusOK, gin.H{
			"message": "Parking session stopped",
			"data": gin.H{
				"session":        r.Session.ToResponse(),
				"amount_charged": r.AmountCharged,
			},
		})
	case StopPlateNotFound:
		ctx.JSON(http.StatusNotFound, gin.H{"error": "No session found for this plate"})
	case StopAlreadyStopped:
		ctx.JSON(http.StatusConflict, gin.H{"error": "Session is already stopped"})
	case StopPaymentFailed:
		ctx.JSON(http.StatusPaymentRequired, gin.H{
			"error":  "Payment declined",
			"reason": r.Reason,
		})
	case StopError:
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": r.Message})
	}
}

// UpdateSession handles PATCH /api/v1/sessions/:id
func (c *Controller) UpdateSession(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid session ID"})
		return
	}

	var req UpdateSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	result := c.service.UpdateSession(ctx.Request.Context(), id, req)
	switch r := result.(type) {
	case UpdateSuccess:
		ctx.JSON(http.StatusOK, gin.H{
			"message": "Session updated",
			"data":    r.Session.ToResponse(),
		})
	case UpdateNoChanges:
		ctx.JSON(http.StatusOK, gin.H{
			"message": "No changes",
			"data":    r.Session.ToResponse(),
		})
	case UpdateNotFound:
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
	case UpdateError:
		ctx.JSON(http.StatusBadRequest, gin.H{"error": r.Message})
	}
}

// GetSession handles GET /api/v1/sessions/:id
func (c *Controller) GetSession(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid session ID"})
		return
	}

	session, err := c.service.GetSession(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to get session",
			"details": err.Error(),
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Session retrieved successfully",
		"data":    session.ToResponse(),
	})
}

// ListSessions handles GET /api/v1/sessions with optional filters
func (c *Controller) ListSessions(ctx *gin.Context) {
	var (
		results []ParkingSession
		err     error
	)

	switch {
	case ctx.Query("lot_id") != "":
		var lotID int64
		lotID, err = strconv.ParseInt(ctx.Query("lot_id"), 10, 64)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid lot_id"})
			return
		}
		results, err = c.service.ListByLot(ctx.Request.Context(), lotID)
	case ctx.Query("license_plate") != "":
		results, err = c.service.ListByPlate(ctx.Request.Context(), ctx.Query("license_plate"))
	case ctx.Query("payment_status") != "":
		status := ctx.Query("payment_status")
		if !IsValidPaymentStatus(status) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payment_status"})
			return
		}
		results, err = c.service.ListByStatus(ctx.Request.Context(), PaymentStatus(status))
	default:
		results, err = c.service.ListActive(ctx.Request.Context())
	}

	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to list sessions",
			"details": err.Error(),
		})
		return
	}

	responses := make([]SessionResponse, 0, len(results))
	for i := range results {
		responses = append(responses, results[i].ToResponse())
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Sessions retrieved successfully",
		"data": gin.H{
			"sessions": responses,
			"count":    len(responses),
		},
	})
}
