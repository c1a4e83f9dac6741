package pricing

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync"
	"time"
)

// suffixBytes bytes aleatorios del sufijo (6 dígitos hex).
const suffixBytes = 3

// Sequencer genera números de factura legibles: INV-<epoch-millis>-<hex>.
// Dentro del proceso la parte de milisegundos es estrictamente creciente, así que
// dos facturas creadas en el mismo milisegundo nunca comparten número.
type Sequencer struct {
	mu     sync.Mutex
	last   int64
	random func([]byte) error
}

// NewSequencer construye el generador con sufijo de crypto/rand.
func NewSequencer() *Sequencer {
	return &Sequencer{random: func(b []byte) error {
		_, err := rand.Read(b)
		return err
	}}
}

// Next devuelve el siguiente número para una factura creada en now.
func (s *Sequencer) Next(now time.Time) string {
	s.mu.Lock()
	ms := now.UnixMilli()
	if ms <= s.last {
		ms = s.last + 1
	}
	s.last = ms
	s.mu.Unlock()

	buf := make([]byte, suffixBytes)
	if err := s.random(buf); err != nil {
		// Sin entropía el milisegundo monotónico sigue garantizando unicidad local.
		return fmt.Sprintf("INV-%d-%06x", ms, 0)
	}
	return fmt.Sprintf("INV-%d-%s", ms, hex.EncodeToString(buf))
}
