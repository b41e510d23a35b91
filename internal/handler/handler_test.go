package handler_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rgehrsitz/itrgo/internal/calculation"
	"github.com/rgehrsitz/itrgo/internal/compare"
	"github.com/rgehrsitz/itrgo/internal/domain"
	"github.com/rgehrsitz/itrgo/internal/handler"
	"github.com/rgehrsitz/itrgo/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func jsonRequest(t *testing.T, method, path string, body interface{}) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

// --- Calculate ---

func TestTaxHandler_Calculate_Success(t *testing.T) {
	profiles := new(mocks.MockProfileService)
	profiles.On("Load", mock.Anything).Return(nil, nil)
	h := handler.NewTaxHandler(compare.NewEngine(calculation.NewEngine()), profiles, zap.NewNop())

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest(t, http.MethodPost, "/api/v1/tax/calculate", domain.RawTaxInputs{
		GrossIncome: "1200000",
		Section80C:  "150000",
		Section80D:  "25000",
	})

	h.Calculate(c)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	assert.Equal(t, true, resp["success"])
	data := resp["data"].(map[string]interface{})
	comparison := data["comparison"].(map[string]interface{})
	assert.Equal(t, "new", comparison["cheaper"])
	assert.Equal(t, "26000", comparison["savings"]) // 1,11,800 old vs 85,800 new
	profiles.AssertExpectations(t)
}

func TestTaxHandler_Calculate_RejectsOversizedBody(t *testing.T) {
	builder := new(mocks.MockReportBuilder)
	h := handler.NewTaxHandler(builder, nil, zap.NewNop())

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest(t, http.MethodPost, "/api/v1/tax/calculate", domain.RawTaxInputs{
		GrossIncome: strings.Repeat("1", 64<<10),
	})

	h.Calculate(c)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	errBody := decode(t, w)["error"].(map[string]interface{})
	assert.Equal(t, "BODY_TOO_LARGE", errBody["code"])
	builder.AssertNotCalled(t, "Build", mock.Anything, mock.Anything, mock.Anything)
}

func TestProfileHandler_Put_RejectsOversizedBody(t *testing.T) {
	svc := new(mocks.MockProfileService)
	h := handler.NewProfileHandler(svc, zap.NewNop())

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest(t, http.MethodPut, "/api/v1/profile", map[string]string{
		"name": strings.Repeat("a", 64<<10),
	})

	h.Put(c)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	svc.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestTaxHandler_Calculate_AttachesProfile(t *testing.T) {
	profiles := new(mocks.MockProfileService)
	stored := &domain.Profile{ID: uuid.New(), Name: "Asha"}
	profiles.On("Load", mock.Anything).Return(stored, nil)

	builder := new(mocks.MockReportBuilder)
	builder.On("Build", mock.Anything, mock.AnythingOfType("domain.RawTaxInputs"), stored).
		Return(&compare.Report{}, nil)

	h := handler.NewTaxHandler(builder, profiles, zap.NewNop())
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest(t, http.MethodPost, "/api/v1/tax/calculate", domain.RawTaxInputs{GrossIncome: "1"})

	h.Calculate(c)

	assert.Equal(t, http.StatusOK, w.Code)
	builder.AssertExpectations(t)
}

func TestTaxHandler_Calculate_ProfileFailureIsNotFatal(t *testing.T) {
	profiles := new(mocks.MockProfileService)
	profiles.On("Load", mock.Anything).Return(nil, domain.ErrStoreNotInitialized)

	builder := new(mocks.MockReportBuilder)
	builder.On("Build", mock.Anything, mock.Anything, (*domain.Profile)(nil)).Return(&compare.Report{}, nil)

	h := handler.NewTaxHandler(builder, profiles, zap.NewNop())
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest(t, http.MethodPost, "/api/v1/tax/calculate", domain.RawTaxInputs{})

	h.Calculate(c)

	assert.Equal(t, http.StatusOK, w.Code)
	builder.AssertExpectations(t)
}

func TestTaxHandler_Calculate_InvalidJSON(t *testing.T) {
	h := handler.NewTaxHandler(new(mocks.MockReportBuilder), nil, zap.NewNop())

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/tax/calculate", bytes.NewBufferString("{not json"))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Calculate(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, false, decode(t, w)["success"])
}

func TestTaxHandler_Calculate_BuildError(t *testing.T) {
	builder := new(mocks.MockReportBuilder)
	builder.On("Build", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("solver exploded"))
	h := handler.NewTaxHandler(builder, nil, zap.NewNop())

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest(t, http.MethodPost, "/api/v1/tax/calculate", domain.RawTaxInputs{})

	h.Calculate(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	errBody := decode(t, w)["error"].(map[string]interface{})
	assert.Equal(t, "INTERNAL_ERROR", errBody["code"])
}

func TestTaxHandler_Calculate_Formats(t *testing.T) {
	h := handler.NewTaxHandler(compare.NewEngine(calculation.NewEngine()), nil, zap.NewNop())

	tests := []struct {
		format      string
		status      int
		contentType string
	}{
		{"csv", http.StatusOK, "text/csv; charset=utf-8"},
		{"console", http.StatusOK, "text/plain; charset=utf-8"},
		{"html", http.StatusOK, "text/html; charset=utf-8"},
		{"nope", http.StatusBadRequest, "application/json; charset=utf-8"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = jsonRequest(t, http.MethodPost, "/api/v1/tax/calculate?format="+tt.format,
				domain.RawTaxInputs{GrossIncome: "900000"})

			h.Calculate(c)

			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.contentType, w.Header().Get("Content-Type"))
		})
	}
}

// --- Profile ---

func TestProfileHandler_Get(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		svc := new(mocks.MockProfileService)
		svc.On("Load", mock.Anything).Return(&domain.Profile{Name: "Asha"}, nil)
		h := handler.NewProfileHandler(svc, zap.NewNop())

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/profile", nil)
		h.Get(c)

		assert.Equal(t, http.StatusOK, w.Code)
		data := decode(t, w)["data"].(map[string]interface{})
		assert.Equal(t, "Asha", data["name"])
	})

	t.Run("absent", func(t *testing.T) {
		svc := new(mocks.MockProfileService)
		svc.On("Load", mock.Anything).Return(nil, nil)
		h := handler.NewProfileHandler(svc, zap.NewNop())

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/profile", nil)
		h.Get(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("store failure", func(t *testing.T) {
		svc := new(mocks.MockProfileService)
		svc.On("Load", mock.Anything).Return(nil, errors.New("disk gone"))
		h := handler.NewProfileHandler(svc, zap.NewNop())

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/profile", nil)
		h.Get(c)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestProfileHandler_Put(t *testing.T) {
	svc := new(mocks.MockProfileService)
	svc.On("Save", mock.Anything, mock.MatchedBy(func(p *domain.Profile) bool {
		return p.Name == "Asha" && p.DateOfBirth != nil && p.DateOfBirth.Year() == 1990 && p.Salaried
	})).Return(&domain.Profile{ID: uuid.New(), Name: "Asha"}, nil)
	h := handler.NewProfileHandler(svc, zap.NewNop())

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest(t, http.MethodPut, "/api/v1/profile", handler.ProfileRequest{
		Name:        "Asha",
		DateOfBirth: "1990-06-15",
		Salaried:    true,
	})

	h.Put(c)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestProfileHandler_Put_ValidationError(t *testing.T) {
	svc := new(mocks.MockProfileService)
	svc.On("Save", mock.Anything, mock.Anything).Return(nil, domain.ErrInvalidProfile)
	h := handler.NewProfileHandler(svc, zap.NewNop())

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest(t, http.MethodPut, "/api/v1/profile", handler.ProfileRequest{})

	h.Put(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	errBody := decode(t, w)["error"].(map[string]interface{})
	assert.Equal(t, "INVALID_PROFILE", errBody["code"])
}

func TestProfileHandler_Put_BadDate(t *testing.T) {
	svc := new(mocks.MockProfileService)
	h := handler.NewProfileHandler(svc, zap.NewNop())

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest(t, http.MethodPut, "/api/v1/profile", handler.ProfileRequest{Name: "A", DateOfBirth: "15/06/1990"})

	h.Put(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestProfileHandler_Delete(t *testing.T) {
	svc := new(mocks.MockProfileService)
	svc.On("Delete", mock.Anything).Return(nil)
	h := handler.NewProfileHandler(svc, zap.NewNop())

	r := gin.New()
	r.DELETE("/api/v1/profile", h.Delete)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/v1/profile", nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
	svc.AssertExpectations(t)
}

func TestProfileHandler_Dump(t *testing.T) {
	svc := new(mocks.MockProfileService)
	svc.On("Dump", mock.Anything).Return(&domain.Snapshot{Profiles: []domain.Profile{{Name: "Asha"}}, TotalProfiles: 1}, nil)
	h := handler.NewProfileHandler(svc, zap.NewNop())

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/profile/dump", nil)
	h.Dump(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decode(t, w)["data"].(map[string]interface{})
	assert.EqualValues(t, 1, data["totalProfiles"])
}

func TestMapDomainError(t *testing.T) {
	status, code, _ := handler.MapDomainError(domain.ErrStoreNotInitialized)
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "STORE_NOT_INITIALIZED", code)

	status, _, _ = handler.MapDomainError(errors.New("x"))
	assert.Equal(t, http.StatusInternalServerError, status)
}
