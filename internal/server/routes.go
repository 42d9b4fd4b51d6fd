package server

import (
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/danmuck/eppwire/internal/epp"
	"github.com/danmuck/eppwire/internal/observability"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gopkg.in/yaml.v3"
)

const maxBodyBytes = 8 << 20

func (g *Gateway) RegisterRoutes() {
	g.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"uptime":  time.Since(g.Appeared).String(),
			"gateway": g.Name,
			"version": "0.1.0",
		})
	})

	g.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := g.router.Group("/v1")
	v1.GET("/schema", g.schema)
	v1.POST("/decode", g.decode)
	v1.POST("/encode", g.encode)
}

func (g *Gateway) schema(c *gin.Context) {
	desc := epp.Schema().Describe()
	if c.Query("format") != "yaml" {
		c.JSON(http.StatusOK, desc)
		return
	}
	out, err := yaml.Marshal(desc)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "application/yaml; charset=utf-8", out)
}

func (g *Gateway) decode(c *gin.Context) {
	body, err := readBody(c)
	if err != nil {
		g.reject(c, http.StatusBadRequest, "io", err)
		return
	}
	msg, err := epp.Decode(body)
	if err != nil {
		g.reject(c, http.StatusBadRequest, epp.ErrorClass(err), err)
		return
	}
	out, err := epp.MarshalMessage(msg)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Header(observability.HeaderKind, msg.Detail())
	c.Data(http.StatusOK, "application/json; charset=utf-8", out)
}

func (g *Gateway) encode(c *gin.Context) {
	body, err := readBody(c)
	if err != nil {
		g.reject(c, http.StatusBadRequest, "io", err)
		return
	}
	msg, err := epp.UnmarshalMessage(body)
	if err != nil {
		g.reject(c, http.StatusBadRequest, "json", err)
		return
	}
	if g.shouldValidate(c) {
		if err := epp.Validate(msg); err != nil {
			g.reject(c, http.StatusUnprocessableEntity, "validate", err)
			return
		}
	}
	out, err := epp.Encode(msg)
	if err != nil {
		g.reject(c, http.StatusBadRequest, epp.ErrorClass(err), err)
		return
	}
	c.Header(observability.HeaderKind, msg.Detail())
	c.Data(http.StatusOK, "application/xml; charset=utf-8", out)
}

func (g *Gateway) shouldValidate(c *gin.Context) bool {
	raw, ok := c.GetQuery("validate")
	if !ok {
		return g.Validate
	}
	v, err := strconv.ParseBool(raw)
	return err == nil && v
}

// reject replies with the error and its class; the request logger picks both up.
func (g *Gateway) reject(c *gin.Context, status int, class string, err error) {
	c.Set(observability.ContextClass, class)
	_ = c.Error(err)
	c.JSON(status, gin.H{"error": err.Error(), "class": class})
}

func readBody(c *gin.Context) ([]byte, error) {
	return io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes))
}
