package passes

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

// CreatePass handles POST /api/v1/passes
func (c *Controller) CreatePass(ctx *gin.Context) {
	var req CreatePassRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	pass, err := c.service.CreatePass(ctx.Request.Context(), req)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Failed to create hotel pass",
			"details": err.Error(),
		})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"message": "Hotel pass created successfully",
		"data":    pass.ToResponse(),
	})
}

// GetPass handles GET /api/v1/passes/:id
func (c *Controller) GetPass(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid pass ID"})
		return
	}

	pass, err := c.service.GetPass(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Hotel pass not found"})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to get hotel pass",
			"details": err.Error(),
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Hotel pass retrieved successfully",
		"data":    pass.ToResponse(),
	})
}

// GetAllPasses handles GET /api/v1/passes
func (c *Controller) GetAllPasses(ctx *gin.Context) {
	allPasses, err := c.service.GetAllPasses(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to list hotel passes",
			"details": err.Error(),
		})
		return
	}

	responses := make([]PassResponse, 0, len(allPasses))
	for i := range allPasses {
		responses = append(responses, allPasses[i].ToResponse())
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Hotel passes retrieved successfully",
		"data": gin.H{
			"passes": responses,
			"count":  len(responses),
		},
	})
}

// UpdatePass handles PATCH /api/v1/passes/:id
func (c *Controller) UpdatePass(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid pass ID"})
		return
	}

	var req UpdatePassRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	pass, err := c.service.UpdatePass(ctx.Request.Context(), id, req)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Hotel pass not found"})
			return
		}
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Failed to update hotel pass",
			"details": err.Error(),
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Hotel pass updated successfully",
		"data":    pass.ToResponse(),
	})
}

// DeletePass handles DELETE /api/v1/passes/:id
func (c *Controller) DeletePass(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid pass ID"})
		return
	}

	if err := c.service.DeletePass(ctx.Request.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Hotel pass not found"})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to delete hotel pass",
			"details": err.Error(),
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Hotel pass deleted successfully",
	})
}
