package errors

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_Error(t *testing.T) {
	plain := NewValidationError("chýba dotaz", nil)
	assert.Equal(t, "chýba dotaz", plain.Error())
	assert.Equal(t, http.StatusBadRequest, plain.StatusCode())

	cause := errors.New("boom")
	wrapped := NewBadGatewayError("backend zlyhal", cause)
	assert.Equal(t, "backend zlyhal: boom", wrapped.Error())
	assert.True(t, errors.Is(wrapped, cause))
}

func TestNewInternalError_HidesDetails(t *testing.T) {
	cause := errors.New("disk I/O error")
	err := NewInternalError("ukladanie histórie", cause)

	assert.Equal(t, http.StatusInternalServerError, err.Code)
	assert.NotContains(t, err.UserMessage(), "disk")
	assert.True(t, errors.Is(err, cause))
	assert.Contains(t, err.Error(), "ukladanie histórie")
}

func TestWrapError(t *testing.T) {
	assert.Nil(t, WrapError(nil, "x"))

	inner := NewNotFoundError("firma neexistuje", nil).WithContext("GetCompany")
	outer := WrapError(inner, "vyhľadanie")
	require.NotNil(t, outer)
	assert.Equal(t, http.StatusNotFound, outer.Code)
	assert.Equal(t, "vyhľadanie: firma neexistuje", outer.Message)
	assert.Equal(t, "GetCompany", outer.GetContext())

	other := WrapError(errors.New("raw"), "import")
	assert.Equal(t, http.StatusInternalServerError, other.Code)
}

func TestErrorMetricsCollector(t *testing.T) {
	m := NewErrorMetricsCollector()
	m.RecordError(nil, "/api/search", "")
	m.RecordError(NewValidationError("a", nil), "/api/search", "req-1")
	m.RecordError(NewBadGatewayError("b", nil), "/api/search", "req-2")
	m.RecordError(NewNotFoundError("c", nil), "/api/graph/:id", "req-3")

	s := m.Snapshot()
	assert.EqualValues(t, 3, s.TotalErrors)
	assert.EqualValues(t, 2, s.ErrorsByEndpoint["/api/search"])
	assert.EqualValues(t, 1, s.ErrorsByType["BadGatewayError"])
	assert.EqualValues(t, 1, s.ErrorsByCode[http.StatusNotFound])
	require.Len(t, s.LastErrors, 3)
	assert.Equal(t, "req-3", s.LastErrors[0].RequestID)

	m.Reset()
	assert.Zero(t, m.Snapshot().TotalErrors)
}

func TestErrorMetricsCollector_KeepsLastN(t *testing.T) {
	m := NewErrorMetricsCollector()
	for i := 0; i < defaultMaxLastErrors+10; i++ {
		m.RecordError(NewValidationError("x", nil), "/api/import", "")
	}
	assert.Len(t, m.Snapshot().LastErrors, defaultMaxLastErrors)
}
