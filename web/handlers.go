package web

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (b *WebBackend) Health(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

func (b *WebBackend) Device(c *gin.Context) {
	c.JSON(http.StatusOK, b.cfg.Registry.Device())
}

func (b *WebBackend) Sensors(c *gin.Context) {
	c.JSON(http.StatusOK, b.cfg.Registry.Entities())
}

func (b *WebBackend) Sensor(c *gin.Context) {
	e, ok := b.cfg.Registry.Entity(c.Param("key"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no such sensor"})
		return
	}
	c.JSON(http.StatusOK, e)
}

type enabledRequest struct {
	Enabled *bool `json:"enabled" binding:"required"`
}

func (b *WebBackend) SetEnabled(c *gin.Context) {
	var req enabledRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	key := c.Param("key")
	if err := b.cfg.Registry.SetEnabled(key, *req.Enabled); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	b.l.Infof("sensor %s enabled: %t", key, *req.Enabled)
	e, _ := b.cfg.Registry.Entity(key)
	c.JSON(http.StatusOK, e)
}
