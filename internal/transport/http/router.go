package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"clinica/backend/internal/metrics"
)

type RouterConfig struct {
	RequestTimeout time.Duration
	Location       *time.Location
}

func NewRouter(sched schedulingService, dir directoryService, log *slog.Logger, collector *metrics.Collector, cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestTimeout(cfg.RequestTimeout))
	if collector != nil {
		r.Use(collector.Middleware())
		r.GET("/metrics", gin.WrapH(collector.Handler()))
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	appointments := NewAppointmentsHandler(sched, log, collector, cfg.Location)
	masterData := NewDirectoryHandler(dir, log)

	v1 := r.Group("/api/v1")
	{
		v1.POST("/appointments", appointments.Create)
		v1.GET("/appointments", appointments.Filter)
		v1.POST("/appointments/:id/cancel", appointments.Cancel)
		v1.PUT("/appointments/:id", appointments.Edit)

		v1.POST("/doctors", masterData.CreateDoctor)
		v1.GET("/doctors", masterData.ListDoctors)
		v1.GET("/doctors/:id", masterData.GetDoctor)

		v1.POST("/consulting-rooms", masterData.CreateConsultingRoom)
		v1.GET("/consulting-rooms", masterData.ListConsultingRooms)
		v1.GET("/consulting-rooms/:id", masterData.GetConsultingRoom)
	}

	return r
}

// requestTimeout bounds every request that arrives without its own deadline,
// so an in-flight check-then-write sequence cannot block indefinitely.
func requestTimeout(timeout time.Duration) gin.HandlerFunc {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return func(c *gin.Context) {
		if _, ok := c.Request.Context().Deadline(); ok {
			c.Next()
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
