package lots

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

// CreateLot handles POST /api/v1/lots
func (c *Controller) CreateLot(ctx *gin.Context) {
	var req CreateLotRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	lot, err := c.service.CreateLot(ctx.Request.Context(), req)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Failed to create parking lot",
			"details": err.Error(),
		})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"message": "Parking lot created successfully",
		"data":    lot.ToResponse(),
	})
}

// GetLot handles GET /api/v1/lots/:id
func (c *Controller) GetLot(ctx *gin.Context) {
	id, err := parseLotID(ctx)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid lot ID"})
		return
	}

	lot, err := c.service.GetLot(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Parking lot not found"})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to get parking lot",
			"details": err.Error(),
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Parking lot retrieved successfully",
		"data":    lot.ToResponse(),
	})
}

// GetAllLots handles GET /api/v1/lots
func (c *Controller) GetAllLots(ctx *gin.Context) {
	lots, err := c.service.GetAllLots(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to list parking lots",
			"details": err.Error(),
		})
		return
	}

	responses := make([]LotResponse, 0, len(lots))
	for i := range lots {
		responses = append(responses, lots[i].ToResponse())
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Parking lots retrieved successfully",
		"data": gin.H{
			"lots":  responses,
			"count": len(responses),
		},
	})
}

// UpdateLot handles PATCH /api/v1/lots/:id
func (c *Controller) UpdateLot(ctx *gin.Context) {
	id, err := parseLotID(ctx)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid lot ID"})
		return
	}

	var req UpdateLotRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	lot, err := c.service.UpdateLot(ctx.Request.Context(), id, req)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Parking lot not found"})
			return
		}
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Failed to update parking lot",
			"details": err.Error(),
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Parking lot updated successfully",
		"data":    lot.ToResponse(),
	})
}

// DeleteLot handles DELETE /api/v1/lots/:id
func (c *Controller) DeleteLot(ctx *gin.Context) {
	id, err := parseLotID(ctx)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid lot ID"})
		return
	}

	if err := c.service.DeleteLot(ctx.Request.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Parking lot not found"})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to delete parking lot",
			"details": err.Error(),
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Parking lot deleted successfully",
	})
}

func parseLotID(ctx *gin.Context) (int64, error) {
	return strconv.ParseInt(ctx.Param("id"), 10, 64)
}
