package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/JosiasEnriquezQ19/iphone-store-management-system/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// Limitadores de ventana fija por IP, en memoria. Válido para una instancia;
// con varias réplicas el límite efectivo se multiplica por réplica, aceptable
// para su propósito antiabuso.

const purgeInterval = 5 * time.Minute

type rateBucket struct {
	mu        sync.Mutex
	count     int
	windowEnd time.Time
}

type rateLimiter struct {
	mu      sync.Mutex
	buckets map[string]*rateBucket
	limit   int
	window  time.Duration
	msg     string
}

func newRateLimiter(limit int, window time.Duration, msg string) *rateLimiter {
	rl := &rateLimiter{
		buckets: make(map[string]*rateBucket),
		limit:   limit,
		window:  window,
		msg:     msg,
	}
	go rl.purge()
	return rl
}

func (rl *rateLimiter) handle(c *gin.Context) {
	ip := c.ClientIP()

	rl.mu.Lock()
	b, ok := rl.buckets[ip]
	if !ok {
		b = &rateBucket{}
		rl.buckets[ip] = b
	}
	rl.mu.Unlock()

	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now()
	if now.After(b.windowEnd) {
		b.count = 0
		b.windowEnd = now.Add(rl.window)
	}

	b.count++
	if b.count > rl.limit {
		c.Header("Retry-After", b.windowEnd.Format(time.RFC1123))
		c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New(rl.msg))
		return
	}
	c.Next()
}

// purge descarta los buckets vencidos para que las IPs que no vuelven no
// acumulen memoria.
func (rl *rateLimiter) purge() {
	ticker := time.NewTicker(purgeInterval)
	defer ticker.Stop()

	for range ticker.C {
		now := time.Now()
		purged := 0

		rl.mu.Lock()
		for ip, b := range rl.buckets {
			b.mu.Lock()
			if now.After(b.windowEnd) {
				delete(rl.buckets, ip)
				purged++
			}
			b.mu.Unlock()
		}
		remaining := len(rl.buckets)
		rl.mu.Unlock()

		if purged > 0 {
			log.Debug().
				Int("purged", purged).
				Int("remaining", remaining).
				Msg("rate limiter: buckets purgados")
		}
	}
}

var loginLimiter = newRateLimiter(20, time.Minute,
	"Demasiados intentos de login. Intente en 1 minuto.")

// LoginRateLimiter limita los intentos de login a 20 por minuto por IP.
func LoginRateLimiter() gin.HandlerFunc {
	return loginLimiter.handle
}

// RateLimiter devuelve un limitador general por IP con el límite y la
// ventana indicados.
func RateLimiter(limit int, window time.Duration) gin.HandlerFunc {
	return newRateLimiter(limit, window,
		"Demasiadas solicitudes. Intente nuevamente en un momento.").handle
}
