package controllers

import (
	"net/http"

	"generate-briefing-video/application/ports/inbound"
	"generate-briefing-video/application/ports/outbound"
	"generate-briefing-video/domain"
	"generate-briefing-video/infrastructure/gin_interface/dto"

	"github.com/gin-gonic/gin"
)

type BriefingController interface {
	GenerateBriefing(c *gin.Context)
	RegisterRoutes(g *gin.Engine)
}

type briefingController struct {
	logger   outbound.LoggerPort
	pipeline inbound.BriefingPipelinePort
}

func NewBriefingController(logger outbound.LoggerPort, pipeline inbound.BriefingPipelinePort) BriefingController {
	return &briefingController{
		logger:   logger,
		pipeline: pipeline,
	}
}

func (b *briefingController) GenerateBriefing(c *gin.Context) {
	var req dto.GenerateBriefingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := b.pipeline.GenerateBriefing(c.Request.Context(), inbound.GenerateBriefingParams{
		Briefing: req.ToDomain(),
	})
	if err != nil {
		b.logger.Error(err, "briefing generation failed")
		body := gin.H{"error": err.Error()}
		if stage, ok := domain.StageOf(err); ok {
			body["stage"] = string(stage)
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, body)
		return
	}

	c.JSON(http.StatusOK, dto.GenerateBriefingResponse{
		BriefingID:  result.BriefingID,
		VideoFile:   result.VideoFileName,
		VideoKey:    result.VideoKey,
		VideoRegion: result.VideoRegion,
		Duration:    result.Duration,
		SlideCount:  result.SlideCount,
	})
}

func (b *briefingController) RegisterRoutes(g *gin.Engine) {
	g.POST("/briefings", b.GenerateBriefing)
	g.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}
