package session

import (
	"sync"

	"pos/src/checkout/domain/entity"
)

// CartSession agrupa el estado volátil de un operador en una terminal:
// carrito en progreso + contadores de turno + guard de checkout en vuelo.
// Un operador, un carrito: sin paralelismo interno para Cart/pricing.
type CartSession struct {
	ID           string
	StoreID      string
	OperatorName string
	Cart         *entity.Cart
	Counters     *entity.ShiftCounters

	mu       sync.Mutex
	inFlight bool
}

// NewCartSession crea una sesión con carrito vacío y contadores en cero
func NewCartSession(id, storeID, operatorName string) *CartSession {
	return &CartSession{
		ID:           id,
		StoreID:      storeID,
		OperatorName: operatorName,
		Cart:         entity.NewCart(),
		Counters:     entity.NewShiftCounters(),
	}
}

// BeginCheckout toma el guard de checkout en vuelo
// Un solo checkout por sesión: intentos reentrantes (double-tap) se
// rechazan con ErrCheckoutInProgress mientras hay uno en curso
func (s *CartSession) BeginCheckout() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.inFlight {
		return entity.ErrCheckoutInProgress
	}
	s.inFlight = true
	return nil
}

// EndCheckout libera el guard
func (s *CartSession) EndCheckout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inFlight = false
}

// Manager mantiene las sesiones activas por terminal
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*CartSession
}

// NewManager crea un manager sin sesiones
func NewManager() *Manager {
	return &Manager{
		sessions: make(map[string]*CartSession),
	}
}

// GetOrCreate retorna la sesión existente o crea una nueva
// store y operator se fijan en la creación; llamadas posteriores con el
// mismo id reutilizan la sesión tal como quedó
func (m *Manager) GetOrCreate(id, storeID, operatorName string) *CartSession {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if ok {
		return s
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// Re-chequear: otro request pudo crearla entre locks
	if s, ok := m.sessions[id]; ok {
		return s
	}

	s = NewCartSession(id, storeID, operatorName)
	m.sessions[id] = s
	return s
}

// Drop elimina una sesión (logout / cierre de turno)
func (m *Manager) Drop(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}
