package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"generate-briefing-video/application/ports/inbound"
	"generate-briefing-video/domain"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/assert/v2"
)

type fakePipeline struct {
	result *inbound.GenerateBriefingResult
	err    error
	got    *inbound.GenerateBriefingParams
}

func (f *fakePipeline) GenerateBriefing(_ context.Context, params inbound.GenerateBriefingParams) (*inbound.GenerateBriefingResult, error) {
	f.got = &params
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

type noopLogger struct{}

func (noopLogger) Info(string)                                           {}
func (noopLogger) InfoWithFields(string, map[string]interface{})         {}
func (noopLogger) Error(error, string)                                   {}
func (noopLogger) ErrorWithFields(error, string, map[string]interface{}) {}
func (noopLogger) Debug(string)                                          {}
func (noopLogger) DebugWithFields(string, map[string]interface{})        {}
func (noopLogger) Warn(string)                                           {}
func (noopLogger) WarnWithFields(string, map[string]interface{})         {}

func newTestRouter(pipeline *fakePipeline) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewBriefingController(noopLogger{}, pipeline).RegisterRoutes(router)
	return router
}

func TestGenerateBriefing(t *testing.T) {
	pipeline := &fakePipeline{result: &inbound.GenerateBriefingResult{
		BriefingID:    "run-1",
		VideoFileName: "/out/run-1/briefing.mp4",
		Duration:      12.5,
		SlideCount:    5,
	}}
	router := newTestRouter(pipeline)

	body := `{"topics":[{"id":"ai","items":[{"title":"GPT-5 Released","source":"TechCrunch"}]}]}`
	req := httptest.NewRequest(http.MethodPost, "/briefings", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()

	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)

	var response map[string]interface{}
	err := json.Unmarshal(recorder.Body.Bytes(), &response)
	assert.Equal(t, err, nil)
	assert.Equal(t, response["briefing_id"], "run-1")
	assert.Equal(t, response["duration"], 12.5)
	assert.Equal(t, response["slide_count"], float64(5))

	assert.NotEqual(t, pipeline.got, nil)
	assert.Equal(t, pipeline.got.Briefing.Topics[0].ID, "ai")
	assert.Equal(t, pipeline.got.Briefing.Topics[0].Items[0].Source, "TechCrunch")
}

func TestGenerateBriefing_MalformedBody(t *testing.T) {
	pipeline := &fakePipeline{}
	router := newTestRouter(pipeline)

	req := httptest.NewRequest(http.MethodPost, "/briefings", strings.NewReader(`{"topics": "nope"`))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()

	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, pipeline.got, (*inbound.GenerateBriefingParams)(nil))
}

func TestGenerateBriefing_PipelineFailure(t *testing.T) {
	pipeline := &fakePipeline{
		err: domain.NewPipelineError(domain.StageSynthesis, errors.New("backend unreachable")),
	}
	router := newTestRouter(pipeline)

	body := `{"topics":[{"id":"ai","items":[]}]}`
	req := httptest.NewRequest(http.MethodPost, "/briefings", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()

	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)

	var response map[string]interface{}
	err := json.Unmarshal(recorder.Body.Bytes(), &response)
	assert.Equal(t, err, nil)
	assert.Equal(t, response["stage"], "synthesis")
}

func TestHealth(t *testing.T) {
	router := newTestRouter(&fakePipeline{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	recorder := httptest.NewRecorder()

	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
}
