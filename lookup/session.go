package lookup

import (
	"context"
	"sync"
)

// Session сериализует поиски одного пользователя: побеждает последний запрос.
// Новый поиск отменяет предыдущий, а устаревший результат отбрасывается.
type Session struct {
	client *Client

	mu         sync.Mutex
	generation uint64
	cancel     context.CancelFunc
}

// NewSession создает сессию поверх клиента
func NewSession(client *Client) *Session {
	return &Session{client: client}
}

// Search выполняет поиск в рамках сессии.
// Если во время выполнения стартовал более новый поиск, возвращает nil и состояние SUPERSEDED.
func (s *Session) Search(ctx context.Context, query string, countries []string) (*Result, Trace) {
	ctx, cancel := context.WithCancel(ctx)

	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.generation++
	gen := s.generation
	s.cancel = cancel
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		if s.generation == gen {
			s.cancel = nil
		}
		s.mu.Unlock()
		cancel()
	}()

	tr := newTracer(s.client.observer, s.client.now)
	res, trace := s.client.search(ctx, query, countries, tr.forward)
	tr.trace = trace

	if !s.current(gen) {
		tr.to(StateSuperseded, "newer search started")
		return nil, tr.trace
	}
	return res, tr.trace
}

// Cancel отменяет текущий поиск сессии
func (s *Session) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.generation++
}

func (s *Session) current(gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generation == gen
}
