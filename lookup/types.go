package lookup

import (
	"time"

	"iluminati/company"
	"iluminati/graph"
)

// State состояние оркестратора поиска
type State string

const (
	StateIdle           State = "IDLE"
	StateAuthenticating State = "AUTHENTICATING"
	StateQueryingV2     State = "QUERYING_V2"
	StateQueryingLegacy State = "QUERYING_LEGACY"
	StateDone           State = "DONE"
	StateFailed         State = "FAILED"
	StateSuperseded     State = "SUPERSEDED"
)

// Path какой источник дал результат
type Path string

const (
	PathNone   Path = ""
	PathCache  Path = "cache"
	PathV2     Path = "v2"
	PathLegacy Path = "legacy"
)

// Transition один переход конечного автомата
type Transition struct {
	From   State     `json:"from"`
	To     State     `json:"to"`
	At     time.Time `json:"at"`
	Reason string    `json:"reason,omitempty"`
}

// Observer получает переходы по мере их возникновения
type Observer func(Transition)

// Trace журнал переходов одного поиска
type Trace struct {
	Transitions []Transition `json:"transitions"`
}

// States возвращает последовательность состояний, начиная с IDLE
func (t Trace) States() []State {
	states := []State{StateIdle}
	for _, tr := range t.Transitions {
		states = append(states, tr.To)
	}
	return states
}

// Final возвращает конечное состояние
func (t Trace) Final() State {
	if len(t.Transitions) == 0 {
		return StateIdle
	}
	return t.Transitions[len(t.Transitions)-1].To
}

// Visited сообщает, проходил ли поиск через состояние
func (t Trace) Visited(s State) bool {
	for _, st := range t.States() {
		if st == s {
			return true
		}
	}
	return false
}

// tracer накапливает переходы и уведомляет наблюдателя
type tracer struct {
	current  State
	trace    Trace
	observer Observer
	now      func() time.Time
}

func newTracer(observer Observer, now func() time.Time) *tracer {
	return &tracer{current: StateIdle, observer: observer, now: now}
}

func (t *tracer) to(next State, reason string) {
	tr := Transition{From: t.current, To: next, At: t.now(), Reason: reason}
	t.current = next
	t.trace.Transitions = append(t.trace.Transitions, tr)
	if t.observer != nil {
		t.observer(tr)
	}
}

// Result результат поиска компаний
type Result struct {
	Companies []company.Company `json:"companies"`
	Graph     *graph.Graph      `json:"graphData"`
	Facets    map[string]any    `json:"facets"`
	Total     int               `json:"total"`
	Path      Path              `json:"path"`
}

// searchRequest тело запроса POST /api/v2/search
type searchRequest struct {
	Query          string   `json:"query"`
	Countries      []string `json:"countries"`
	IncludeRelated bool     `json:"include_related"`
	RiskThreshold  float64  `json:"risk_threshold"`
	Limit          int      `json:"limit"`
	Format         string   `json:"format"`
}

// forward отслеживает переходы вложенного поиска, чтобы продолжить журнал с его конечного состояния
func (t *tracer) forward(tr Transition) {
	t.current = tr.To
	if t.observer != nil {
		t.observer(tr)
	}
}
