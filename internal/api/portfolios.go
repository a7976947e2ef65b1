package api

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"immoinvest/server/internal/export"
	"immoinvest/server/internal/models"
	"immoinvest/server/internal/queue"
)

const (
	userHeader = "X-User-ID"
	userKey    = "userID"
)

// RequireUser reads the caller from the X-User-ID header.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader(userHeader)
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "missing " + userHeader + " header"})
			return
		}
		c.Set(userKey, userID)
		c.Next()
	}
}

func (h *Handler) ListPortfolios(c *gin.Context) {
	portfolios, err := h.portfolios.List(c.Request.Context(), c.GetString(userKey))
	if err != nil {
		h.respondError(c, err, "Failed to list portfolios")
		return
	}
	c.JSON(http.StatusOK, portfolios)
}

func (h *Handler) GetPortfolio(c *gin.Context) {
	p, err := h.portfolios.Get(c.Request.Context(), c.GetString(userKey), c.Param("id"))
	if err != nil {
		h.respondError(c, err, "Failed to get portfolio")
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) CreatePortfolio(c *gin.Context) {
	var req models.PortfolioRequest
	if !h.bind(c, &req) {
		return
	}

	p, err := h.portfolios.Create(c.Request.Context(), c.GetString(userKey), req)
	if err != nil {
		h.respondError(c, err, "Failed to create portfolio")
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *Handler) UpdatePortfolio(c *gin.Context) {
	var req models.PortfolioRequest
	if !h.bind(c, &req) {
		return
	}

	p, err := h.portfolios.Update(c.Request.Context(), c.GetString(userKey), c.Param("id"), req)
	if err != nil {
		h.respondError(c, err, "Failed to update portfolio")
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) DeletePortfolio(c *gin.Context) {
	if err := h.portfolios.Delete(c.Request.Context(), c.GetString(userKey), c.Param("id")); err != nil {
		h.respondError(c, err, "Failed to delete portfolio")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) RecalculatePortfolios(c *gin.Context) {
	userID := c.GetString(userKey)
	queued, err := h.portfolios.Recalculate(c.Request.Context(), userID)
	if errors.Is(err, queue.ErrQueueFull) && queued > 0 {
		h.logger.WithError(err).WithFields(logrus.Fields{
			"user_id": userID,
			"queued":  queued,
		}).Warn("Recalculation partially queued")
		c.JSON(http.StatusAccepted, gin.H{"queued": queued, "complete": false})
		return
	}
	if err != nil {
		h.respondError(c, err, "Failed to recalculate portfolios")
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"queued": queued, "complete": true})
}

func (h *Handler) ExportPortfolio(c *gin.Context) {
	format, err := export.ParseFormat(c.Query("format"))
	if err != nil {
		h.respondError(c, err, "Failed to export portfolio")
		return
	}

	p, err := h.portfolios.Get(c.Request.Context(), c.GetString(userKey), c.Param("id"))
	if err != nil {
		h.respondError(c, err, "Failed to export portfolio")
		return
	}

	var buf bytes.Buffer
	if format == export.FormatCSV {
		err = export.WritePortfolioCSV(&buf, p)
	} else {
		err = export.WritePortfolioJSON(&buf, p)
	}
	if err != nil {
		h.respondError(c, err, "Failed to export portfolio")
		return
	}
	h.attachment(c, format, "portfolio-"+p.ID, buf.Bytes())
}

func (h *Handler) ExportPortfolios(c *gin.Context) {
	format, err := export.ParseFormat(c.Query("format"))
	if err != nil {
		h.respondError(c, err, "Failed to export portfolios")
		return
	}

	portfolios, err := h.portfolios.List(c.Request.Context(), c.GetString(userKey))
	if err != nil {
		h.respondError(c, err, "Failed to export portfolios")
		return
	}

	var buf bytes.Buffer
	if format == export.FormatCSV {
		err = export.WritePortfoliosCSV(&buf, portfolios)
	} else {
		err = export.WritePortfoliosJSON(&buf, portfolios)
	}
	if err != nil {
		h.respondError(c, err, "Failed to export portfolios")
		return
	}
	h.attachment(c, format, "portfolios", buf.Bytes())
}

func (h *Handler) attachment(c *gin.Context, format export.Format, name string, data []byte) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name+"."+string(format)))
	c.Data(http.StatusOK, format.ContentType(), data)
}
