package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jonesrussell/scrapefeed/internal/datefmt"
	"github.com/jonesrussell/scrapefeed/internal/dom"
	"github.com/jonesrussell/scrapefeed/internal/extract"
	"github.com/jonesrussell/scrapefeed/internal/logger"
	"github.com/jonesrussell/scrapefeed/internal/selector"
)

// requestIDHeader is the header carrying the request ID.
const requestIDHeader = "X-Request-ID"

// SetupRouter creates and configures the Gin router with all routes.
func SetupRouter(log logger.Interface, extractor *extract.Extractor) *gin.Engine {
	// Disable Gin's default logging
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestIDMiddleware())
	router.Use(loggingMiddleware(log))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	v1.POST("/extract", handleExtract(extractor))
	v1.POST("/extract/detail", handleExtractDetail(extractor))
	v1.POST("/selectors/test", handleSelectorTest())
	v1.POST("/selectors/validate", handleValidate())
	v1.POST("/selectors/synthesize", handleSynthesize())
	v1.POST("/dates/test", handleDateTest())

	return router
}

// requestIDMiddleware assigns each request an ID, honoring one supplied
// by the client.
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Writer.Header().Set(requestIDHeader, id)
		c.Next()
	}
}

// loggingMiddleware creates a middleware that logs HTTP requests.
func loggingMiddleware(log logger.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		log.Info("HTTP Request",
			"method", c.Request.Method,
			"path", path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
			"request_id", c.GetString("request_id"),
		)
	}
}

// requestNow picks the caller-supplied reference time or the wall clock.
func requestNow(t *time.Time) time.Time {
	if t != nil {
		return *t
	}

	return time.Now()
}

// handleExtract runs list-page extraction over posted HTML.
func handleExtract(extractor *extract.Extractor) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ExtractRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
			return
		}

		cfg := req.Config.Default()
		if err := cfg.Validate(); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		items, diag, err := extractor.Extract(req.HTML, req.BaseURL, cfg, requestNow(req.Now))
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, ExtractResponse{Items: items, Diagnostics: diag})
	}
}

// handleExtractDetail runs detail-page extraction over posted HTML.
func handleExtractDetail(extractor *extract.Extractor) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ExtractRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
			return
		}

		cfg := req.Config
		cfg.Mode = selector.ModeDetail
		cfg = cfg.Default()

		item, diag, err := extractor.ExtractDetail(req.HTML, req.BaseURL, cfg, requestNow(req.Now))
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, DetailResponse{Item: item, Diagnostics: diag})
	}
}

// handleSelectorTest evaluates a selector against posted HTML.
func handleSelectorTest() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SelectorTestRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
			return
		}

		doc, err := dom.Parse(req.HTML)
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}

		result := selector.Evaluate(doc, req.Selector)
		c.JSON(http.StatusOK, SelectorTestResponse{
			Count:   result.Count,
			Samples: result.Samples,
		})
	}
}

// handleValidate checks list selector coherence against posted HTML.
func handleValidate() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ValidateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
			return
		}

		cfg := req.Config.Default()
		if err := cfg.Validate(); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		doc, err := dom.Parse(req.HTML)
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}

		report := selector.ValidateListSelectors(doc, cfg.List.Item, cfg.List.Link, cfg.Mode)
		c.JSON(http.StatusOK, ValidateResponse{Report: report})
	}
}

// handleSynthesize builds selectors for the first element matched by
// the target selector.
func handleSynthesize() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SynthesizeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
			return
		}

		doc, err := dom.Parse(req.HTML)
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}

		matches := doc.QueryAll(req.Target)
		if len(matches) == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "target selector matched no elements"})
			return
		}

		filter := selector.DefaultClassFilter()
		c.JSON(http.StatusOK, SynthesizeResponse{
			Specific: selector.SynthesizeSpecific(matches[0], filter),
			General:  selector.SynthesizeGeneral(matches[0], filter),
		})
	}
}

// handleDateTest tries each format against the posted value.
func handleDateTest() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req DateTestRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
			return
		}

		now := requestNow(req.Now)
		resp := DateTestResponse{Results: make([]DateTestResult, 0, len(req.Formats))}
		for _, format := range req.Formats {
			result := DateTestResult{Format: format}
			m, err := datefmt.Compile(format)
			if err != nil {
				result.Reason = err.Error()
			} else {
				match := m.Match(req.Value, now)
				result.Matched = match.Matched
				result.Value = match.Value
				result.Reason = match.Reason
			}
			if result.Matched {
				resp.Matched = true
			}
			resp.Results = append(resp.Results, result)
		}

		c.JSON(http.StatusOK, resp)
	}
}
