package infra

import (
	"errors"
	"sync"
	"time"
)

// Circuit breaker para el relay SMTP (Closed → Open → Half-Open). Con el
// relay caído los envíos fallan rápido en vez de bloquear a los workers;
// pasado el timeout se deja pasar una sonda para probar la recuperación.

// CBState es el estado actual del breaker.
type CBState int

const (
	CBClosed   CBState = iota // operación normal
	CBOpen                    // disparado: todo falla de inmediato
	CBHalfOpen                // sondeando la recuperación
)

func (s CBState) String() string {
	switch s {
	case CBClosed:
		return "closed"
	case CBOpen:
		return "open"
	case CBHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// ErrCircuitOpen se devuelve cuando Execute se llama con el breaker abierto.
var ErrCircuitOpen = errors.New("circuit breaker is open")

type CircuitBreakerConfig struct {
	FailureThreshold int           // fallos consecutivos para abrir
	SuccessThreshold int           // éxitos en half-open para cerrar
	OpenTimeout      time.Duration // espera antes de sondear
}

// DefaultCBConfig son los valores con los que opera el mailer.
func DefaultCBConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		FailureThreshold: 5,
		SuccessThreshold: 2,
		OpenTimeout:      60 * time.Second,
	}
}

type CircuitBreaker struct {
	mu              sync.Mutex
	cfg             CircuitBreakerConfig
	state           CBState
	failureCount    int
	successCount    int
	lastFailureTime time.Time
}

func NewCircuitBreaker(cfg CircuitBreakerConfig) *CircuitBreaker {
	if cfg.FailureThreshold <= 0 {
		cfg.FailureThreshold = 5
	}
	if cfg.SuccessThreshold <= 0 {
		cfg.SuccessThreshold = 2
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = 60 * time.Second
	}
	return &CircuitBreaker{cfg: cfg, state: CBClosed}
}

// State devuelve el estado vigente, aplicando la transición automática
// open → half-open cuando venció el timeout.
func (cb *CircuitBreaker) State() CBState {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	if cb.state == CBOpen && time.Since(cb.lastFailureTime) >= cb.cfg.OpenTimeout {
		cb.state = CBHalfOpen
		cb.successCount = 0
	}
	return cb.state
}

// Execute corre fn a través del breaker. Con el breaker abierto devuelve
// ErrCircuitOpen sin invocar fn.
func (cb *CircuitBreaker) Execute(fn func() error) error {
	if cb.State() == CBOpen {
		return ErrCircuitOpen
	}

	err := fn()

	cb.mu.Lock()
	defer cb.mu.Unlock()

	if err != nil {
		cb.onFailure()
		return err
	}
	cb.onSuccess()
	return nil
}

// onFailure y onSuccess se llaman con el lock tomado.
func (cb *CircuitBreaker) onFailure() {
	cb.failureCount++
	cb.lastFailureTime = time.Now()

	switch cb.state {
	case CBClosed:
		if cb.failureCount >= cb.cfg.FailureThreshold {
			cb.state = CBOpen
			cb.successCount = 0
		}
	case CBHalfOpen:
		// La sonda falló, de vuelta a abierto
		cb.state = CBOpen
		cb.failureCount = 0
	}
}

func (cb *CircuitBreaker) onSuccess() {
	switch cb.state {
	case CBClosed:
		cb.failureCount = 0
	case CBHalfOpen:
		cb.successCount++
		if cb.successCount >= cb.cfg.SuccessThreshold {
			cb.state = CBClosed
			cb.failureCount = 0
			cb.successCount = 0
		}
	}
}
