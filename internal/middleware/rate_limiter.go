package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/Spartan-876/Acuamont-System-sub000/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// ipWindow cuenta requests de una IP dentro de una ventana fija.
type ipWindow struct {
	mu      sync.Mutex
	count   int
	venceEn time.Time
}

// ipLimiter es un limitador por IP de ventana fija, en memoria. Cada instancia
// mantiene su propio mapa; login y API general no comparten presupuesto.
type ipLimiter struct {
	mu       sync.Mutex
	ventanas map[string]*ipWindow
	limite   int
	ventana  time.Duration
	mensaje  string
}

func newIPLimiter(limite int, ventana time.Duration, mensaje string) *ipLimiter {
	l := &ipLimiter{
		ventanas: make(map[string]*ipWindow),
		limite:   limite,
		ventana:  ventana,
		mensaje:  mensaje,
	}
	go l.purgar()
	return l
}

func (l *ipLimiter) handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()

		l.mu.Lock()
		w, ok := l.ventanas[ip]
		if !ok {
			w = &ipWindow{}
			l.ventanas[ip] = w
		}
		l.mu.Unlock()

		w.mu.Lock()
		defer w.mu.Unlock()

		ahora := time.Now()
		if ahora.After(w.venceEn) {
			w.count = 0
			w.venceEn = ahora.Add(l.ventana)
		}

		w.count++
		if w.count > l.limite {
			c.Header("Retry-After", w.venceEn.Format(time.RFC1123))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New(l.mensaje))
			return
		}
		c.Next()
	}
}

// purgar elimina ventanas vencidas cada 5 minutos. Sin esto el mapa crece con
// cada IP que pasó alguna vez por el servicio.
func (l *ipLimiter) purgar() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		ahora := time.Now()
		purgadas := 0

		l.mu.Lock()
		for ip, w := range l.ventanas {
			w.mu.Lock()
			if ahora.After(w.venceEn) {
				delete(l.ventanas, ip)
				purgadas++
			}
			w.mu.Unlock()
		}
		restantes := len(l.ventanas)
		l.mu.Unlock()

		if purgadas > 0 {
			log.Debug().
				Int("purged", purgadas).
				Int("remaining", restantes).
				Msg("rate limiter window purge")
		}
	}
}

var loginLimiter = newIPLimiter(20, time.Minute,
	"Demasiados intentos de login. Intente en 1 minuto.")

// LoginRateLimiter limita los intentos de login a 20 por minuto por IP.
func LoginRateLimiter() gin.HandlerFunc {
	return loginLimiter.handler()
}

// RateLimiter limita el tráfico general de la API por IP.
func RateLimiter(limite int, ventana time.Duration) gin.HandlerFunc {
	return newIPLimiter(limite, ventana,
		"Demasiadas solicitudes. Intente nuevamente en un momento.").handler()
}
