package errors

import (
	"sync"
	"time"
)

const defaultMaxLastErrors = 50

// ErrorRecord запись об ошибке
type ErrorRecord struct {
	Timestamp   time.Time `json:"timestamp"`
	Type        string    `json:"type"`
	Code        int       `json:"code"`
	Message     string    `json:"message"`
	Endpoint    string    `json:"endpoint"`
	RequestID   string    `json:"request_id,omitempty"`
	UserMessage string    `json:"user_message"`
}

// ErrorMetrics снимок метрик ошибок API
type ErrorMetrics struct {
	TotalErrors      int64            `json:"total_errors"`
	ErrorsByType     map[string]int64 `json:"errors_by_type"`
	ErrorsByCode     map[int]int64    `json:"errors_by_code"`
	ErrorsByEndpoint map[string]int64 `json:"errors_by_endpoint"`
	LastErrors       []ErrorRecord    `json:"last_errors"`
	UptimeSeconds    float64          `json:"uptime_seconds"`
}

// ErrorMetricsCollector собирает метрики ошибок HTTP-слоя
type ErrorMetricsCollector struct {
	mu sync.RWMutex

	totalErrors      int64
	errorsByType     map[string]int64
	errorsByCode     map[int]int64
	errorsByEndpoint map[string]int64
	lastErrors       []ErrorRecord
	maxLastErrors    int

	startTime time.Time
	now       func() time.Time
}

// NewErrorMetricsCollector создает новый сборщик метрик ошибок
func NewErrorMetricsCollector() *ErrorMetricsCollector {
	return &ErrorMetricsCollector{
		errorsByType:     make(map[string]int64),
		errorsByCode:     make(map[int]int64),
		errorsByEndpoint: make(map[string]int64),
		maxLastErrors:    defaultMaxLastErrors,
		startTime:        time.Now(),
		now:              time.Now,
	}
}

// RecordError записывает ошибку в метрики
func (emc *ErrorMetricsCollector) RecordError(err *AppError, endpoint, requestID string) {
	if err == nil {
		return
	}

	emc.mu.Lock()
	defer emc.mu.Unlock()

	errorType := errorType(err.Code)
	emc.totalErrors++
	emc.errorsByType[errorType]++
	emc.errorsByCode[err.Code]++
	if endpoint != "" {
		emc.errorsByEndpoint[endpoint]++
	}

	record := ErrorRecord{
		Timestamp:   emc.now(),
		Type:        errorType,
		Code:        err.Code,
		Message:     err.Error(),
		Endpoint:    endpoint,
		RequestID:   requestID,
		UserMessage: err.UserMessage(),
	}
	emc.lastErrors = append([]ErrorRecord{record}, emc.lastErrors...)
	if len(emc.lastErrors) > emc.maxLastErrors {
		emc.lastErrors = emc.lastErrors[:emc.maxLastErrors]
	}
}

// errorType имя типа ошибки по коду
func errorType(code int) string {
	switch code {
	case 400:
		return "ValidationError"
	case 404:
		return "NotFoundError"
	case 413:
		return "PayloadTooLargeError"
	case 500:
		return "InternalError"
	case 502:
		return "BadGatewayError"
	case 503:
		return "ServiceUnavailableError"
	default:
		return "UnknownError"
	}
}

// Snapshot возвращает копию метрик
func (emc *ErrorMetricsCollector) Snapshot() ErrorMetrics {
	emc.mu.RLock()
	defer emc.mu.RUnlock()

	m := ErrorMetrics{
		TotalErrors:      emc.totalErrors,
		ErrorsByType:     make(map[string]int64, len(emc.errorsByType)),
		ErrorsByCode:     make(map[int]int64, len(emc.errorsByCode)),
		ErrorsByEndpoint: make(map[string]int64, len(emc.errorsByEndpoint)),
		LastErrors:       make([]ErrorRecord, len(emc.lastErrors)),
		UptimeSeconds:    emc.now().Sub(emc.startTime).Seconds(),
	}
	for k, v := range emc.errorsByType {
		m.ErrorsByType[k] = v
	}
	for k, v := range emc.errorsByCode {
		m.ErrorsByCode[k] = v
	}
	for k, v := range emc.errorsByEndpoint {
		m.ErrorsByEndpoint[k] = v
	}
	copy(m.LastErrors, emc.lastErrors)
	return m
}

// Reset сбрасывает все метрики
func (emc *ErrorMetricsCollector) Reset() {
	emc.mu.Lock()
	defer emc.mu.Unlock()

	emc.totalErrors = 0
	emc.errorsByType = make(map[string]int64)
	emc.errorsByCode = make(map[int]int64)
	emc.errorsByEndpoint = make(map[string]int64)
	emc.lastErrors = nil
	emc.startTime = emc.now()
}
