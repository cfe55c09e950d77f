package lookup

import (
	"sync"
	"time"
)

// EndpointStats статистика обращений к одному пути бэкенда
type EndpointStats struct {
	Path              Path       `json:"path"`
	RequestsTotal     int64      `json:"requests_total"`
	RequestsSuccess   int64      `json:"requests_success"`
	RequestsFailed    int64      `json:"requests_failed"`
	FailureRate       float64    `json:"failure_rate"`
	AvgResponseTimeMs int64      `json:"avg_response_time_ms"`
	LastSuccess       *time.Time `json:"last_success,omitempty"`
	LastFailure       *time.Time `json:"last_failure,omitempty"`
	LastError         string     `json:"last_error,omitempty"`
}

// statsRecorder потокобезопасный учет успехов и отказов по путям
type statsRecorder struct {
	mu    sync.Mutex
	stats map[Path]*EndpointStats
}

func newStatsRecorder() *statsRecorder {
	return &statsRecorder{stats: make(map[Path]*EndpointStats)}
}

func (r *statsRecorder) getOrCreate(path Path) *EndpointStats {
	if s, ok := r.stats[path]; ok {
		return s
	}
	s := &EndpointStats{Path: path}
	r.stats[path] = s
	return s
}

// recordSuccess учитывает успешный запрос и обновляет среднее время ответа
func (r *statsRecorder) recordSuccess(path Path, responseTime time.Duration, at time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := r.getOrCreate(path)
	s.RequestsTotal++
	s.RequestsSuccess++
	s.LastSuccess = &at
	s.AvgResponseTimeMs = (s.AvgResponseTimeMs*(s.RequestsSuccess-1) + responseTime.Milliseconds()) / s.RequestsSuccess
	s.FailureRate = float64(s.RequestsFailed) / float64(s.RequestsTotal)
}

// recordFailure учитывает неуспешный запрос
func (r *statsRecorder) recordFailure(path Path, err error, at time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := r.getOrCreate(path)
	s.RequestsTotal++
	s.RequestsFailed++
	s.LastFailure = &at
	if err != nil {
		s.LastError = err.Error()
	}
	s.FailureRate = float64(s.RequestsFailed) / float64(s.RequestsTotal)
}

func (r *statsRecorder) snapshot() map[Path]EndpointStats {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make(map[Path]EndpointStats, len(r.stats))
	for path, s := range r.stats {
		out[path] = *s
	}
	return out
}
