package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/JosiasEnriquezQ19/iphone-store-management-system/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Health verifica Postgres y Redis con un timeout corto y reporta el tamaño
// de las colas de cartas muertas. Devuelve 503 si la base o Redis no
// responden; el balanceador saca la instancia.
func Health(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		dbStatus := "connected"
		sqlDB, err := db.DB()
		if err != nil || sqlDB.PingContext(ctx) != nil {
			dbStatus = "error"
		}

		redisStatus := "connected"
		if rdb.Ping(ctx).Err() != nil {
			redisStatus = "error"
		}

		status := http.StatusOK
		if dbStatus != "connected" || redisStatus != "connected" {
			status = http.StatusServiceUnavailable
		}

		dlqComprobantes, _ := worker.DLQLength(ctx, rdb, worker.QueueComprobantes)
		dlqEmail, _ := worker.DLQLength(ctx, rdb, worker.QueueEmail)

		c.JSON(status, gin.H{
			"service": "iphone-store-api",
			"ok":      status == http.StatusOK,
			"db":      dbStatus,
			"redis":   redisStatus,
			"dlq": gin.H{
				"comprobantes": dlqComprobantes,
				"email":        dlqEmail,
			},
		})
	}
}
