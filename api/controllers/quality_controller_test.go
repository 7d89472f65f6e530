/*
 * @module api/controllers/quality_controller_test
 * @description 数据质量控制器HTTP接口测试
 * @architecture 测试层
 * @documentReference ai_docs/esg_service_api.md
 * @stateFlow 请求构建 -> 控制器处理 -> 响应断言
 * @rules 统一响应结构status为0表示成功
 * @dependencies testing, net/http/httptest, github.com/stretchr/testify
 * @refs quality_controller.go, dataset_request.go
 */

package controllers

import (
	"bytes"
	"encoding/json"
	"esg-reporting-service/service/data_quality"
	"esg-reporting-service/service/dataset"
	"esg-reporting-service/testutil"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupQualityRouter(t *testing.T) (*chi.Mux, *testutil.TestDB) {
	t.Helper()
	tdb := testutil.NewTestDB()
	t.Cleanup(tdb.Close)

	engine := data_quality.NewEngine(tdb.DB, nil)
	loader := dataset.NewLoader(nil)
	controller := NewQualityController(engine, loader)

	router := chi.NewRouter()
	router.Post("/quality/validate", controller.ValidateData)
	router.Post("/quality/clean", controller.CleanData)
	router.Get("/quality/reports", controller.GetQualityReports)
	router.Get("/quality/reports/{id}", controller.GetQualityReport)
	return router, tdb
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

// JSON内联数据校验
func TestValidateData_InlineJSON(t *testing.T) {
	router, _ := setupQualityRouter(t)

	payload := DatasetPayload{
		Columns:    []string{"date", "scope", "co2_value"},
		Rows:       [][]any{{"2025-01-01", "Scope1", 1.5}},
		EntityType: "emissions",
	}
	body, _ := json.Marshal(payload)

	req := httptest.NewRequest(http.MethodPost, "/quality/validate", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	assert.Equal(t, float64(0), resp["status"])

	data := resp["data"].(map[string]any)
	report := data["report"].(map[string]any)
	assert.Equal(t, float64(100), report["data_quality_score"])
	assert.Equal(t, "emissions", report["entity_type"])
	assert.NotEmpty(t, data["report_id"])
}

// multipart CSV文件上传校验
func TestValidateData_FileUpload(t *testing.T) {
	router, _ := setupQualityRouter(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "emissions.csv")
	require.NoError(t, err)
	fw.Write([]byte("date,scope,co2_value\n2025-01-01,Scope1,1.5\n2025-01-01,Scope1,1.5\n"))
	mw.WriteField("entity_type", "emissions")
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/quality/validate", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	assert.Equal(t, float64(0), resp["status"])

	data := resp["data"].(map[string]any)
	metadata := data["metadata"].(map[string]any)
	assert.Equal(t, "emissions.csv", metadata["file_name"])

	// 重复行告警
	report := data["report"].(map[string]any)
	warnings := report["warnings"].([]any)
	assert.Contains(t, warnings, "Found 1 duplicate rows (50.0%)")
}

// 清洗接口返回清洗后的数据集与两份报告
func TestCleanData_InlineJSON(t *testing.T) {
	router, _ := setupQualityRouter(t)

	payload := DatasetPayload{
		Columns:    []string{"Date", "Scope", "CO2 Value"},
		Rows:       [][]any{{"2025-01-01", "Scope1", 1.5}, {"2025-01-01", "Scope1", 1.5}},
		EntityType: "emissions",
	}
	body, _ := json.Marshal(payload)

	req := httptest.NewRequest(http.MethodPost, "/quality/clean", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	assert.Equal(t, float64(0), resp["status"])

	data := resp["data"].(map[string]any)
	cleaning := data["cleaning_report"].(map[string]any)
	actions := cleaning["actions_performed"].([]any)
	assert.Contains(t, actions, "Removed 1 duplicate rows")
	assert.Contains(t, actions, "Standardized column names")

	cleaned := data["dataset"].(map[string]any)
	columns := cleaned["columns"].([]any)
	assert.Contains(t, columns, "co2_value")
	assert.Contains(t, columns, "_processed_timestamp")
	assert.Contains(t, columns, "_data_quality_score")
}

// 无效JSON请求返回参数错误
func TestValidateData_InvalidJSON(t *testing.T) {
	router, _ := setupQualityRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/quality/validate", bytes.NewReader([]byte("{invalid")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	resp := decodeResponse(t, w)
	assert.Equal(t, float64(400), resp["status"])
}

// 报告列表分页查询与单条查询
func TestGetQualityReports(t *testing.T) {
	router, tdb := setupQualityRouter(t)

	record := testutil.CreateQualityReport(tdb.DB, "emissions", 85)
	testutil.CreateQualityReport(tdb.DB, "suppliers", 60)

	req := httptest.NewRequest(http.MethodGet, "/quality/reports?entity_type=emissions", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	assert.Equal(t, float64(0), resp["status"])
	assert.Equal(t, float64(1), resp["total"])

	req = httptest.NewRequest(http.MethodGet, "/quality/reports/"+record.ID, nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	resp = decodeResponse(t, w)
	assert.Equal(t, float64(0), resp["status"])
	data := resp["data"].(map[string]any)
	assert.Equal(t, record.ID, data["id"])
}

// 不存在的报告ID返回404状态
func TestGetQualityReport_NotFound(t *testing.T) {
	router, _ := setupQualityRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/quality/reports/nonexistent-id", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	resp := decodeResponse(t, w)
	assert.Equal(t, float64(404), resp["status"])
}
