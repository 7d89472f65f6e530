/*
 * @module testutil/test_helper
 * @description 测试工具和辅助函数
 * @architecture 测试基础设施 - 提供测试通用工具和数据工厂
 * @dependencies gorm, sqlite, testify, time
 * @refs service/models
 */

package testutil

import (
	"bytes"
	"encoding/json"
	"esg-reporting-service/service/models"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// TestDB 测试数据库配置
type TestDB struct {
	DB *gorm.DB
}

// NewTestDB 创建测试数据库
func NewTestDB() *TestDB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic(fmt.Sprintf("failed to connect test database: %v", err))
	}

	// 自动迁移所有模型
	err = db.AutoMigrate(
		&models.QualityReport{},
		&models.ProcessedFileRecord{},
	)
	if err != nil {
		panic(fmt.Sprintf("failed to migrate test database: %v", err))
	}

	return &TestDB{DB: db}
}

// CleanDB 清理数据库
func (tdb *TestDB) CleanDB() {
	tables := []string{
		"quality_reports",
		"processed_file_records",
	}

	for _, table := range tables {
		tdb.DB.Exec(fmt.Sprintf("DELETE FROM %s", table))
	}
}

// Close 关闭数据库连接
func (tdb *TestDB) Close() {
	if db, err := tdb.DB.DB(); err == nil {
		db.Close()
	}
}

// NewEmissionsDataset 创建排放测试数据集
// 包含一对重复行和缺失值,用于覆盖去重与填充逻辑
func NewEmissionsDataset() *models.Dataset {
	ds := models.NewDataset([]string{"Date", "Scope 1", "CO2 Value", "unit"})
	ds.AppendRow([]interface{}{"2025-01-01", float64(10), float64(1.5), "kg"})
	ds.AppendRow([]interface{}{"2025-01-02", float64(12), nil, "kg"})
	ds.AppendRow([]interface{}{"2025-01-03", nil, float64(2.1), "kg"})
	ds.AppendRow([]interface{}{"2025-01-01", float64(10), float64(1.5), "kg"})
	ds.AppendRow([]interface{}{"2025-01-04", float64(9), float64(1.8), ""})
	ds.AppendRow([]interface{}{"2025-01-05", float64(11), float64(2.4), "kg"})
	return ds
}

// NewSuppliersDataset 创建供应商测试数据集
// 不含数值列,且存在空白字符串形式的缺失值
func NewSuppliersDataset() *models.Dataset {
	ds := models.NewDataset([]string{"Supplier Name", "Region"})
	ds.AppendRow([]interface{}{"Acme", "EU"})
	ds.AppendRow([]interface{}{"", "US"})
	ds.AppendRow([]interface{}{"Globex", "  "})
	return ds
}

// NewActivitiesDataset 创建活动测试数据集
func NewActivitiesDataset() *models.Dataset {
	ds := models.NewDataset([]string{"date", "activity type", "value"})
	ds.AppendRow([]interface{}{"2025-02-01", "travel", float64(3.2)})
	ds.AppendRow([]interface{}{"2025-02-02", "energy", float64(7.8)})
	return ds
}

// NewGeneralDataset 创建通用测试数据集
func NewGeneralDataset(rows int) *models.Dataset {
	ds := models.NewDataset([]string{"date", "value", "category"})
	for i := 0; i < rows; i++ {
		ds.AppendRow([]interface{}{
			fmt.Sprintf("2025-03-%02d", i+1),
			float64(i),
			fmt.Sprintf("cat-%d", i%3),
		})
	}
	return ds
}

// CreateQualityReport 创建测试质量报告记录
func CreateQualityReport(db *gorm.DB, entityType string, score float64) *models.QualityReport {
	report := &models.QualityReport{
		SourceName:   "test-source",
		EntityType:   entityType,
		TotalRows:    10,
		QualityScore: score,
		Issues:       models.JSONBStringArray{},
		Warnings:     models.JSONBStringArray{},
	}
	if err := db.Create(report).Error; err != nil {
		panic(fmt.Sprintf("failed to create test quality report: %v", err))
	}
	return report
}

// HTTPTestHelper HTTP测试辅助工具
type HTTPTestHelper struct{}

// NewHTTPTestHelper 创建HTTP测试辅助工具
func NewHTTPTestHelper() *HTTPTestHelper {
	return &HTTPTestHelper{}
}

// CreateJSONRequest 创建JSON请求
func (h *HTTPTestHelper) CreateJSONRequest(method, url string, body interface{}) (*http.Request, error) {
	var reqBody io.Reader

	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return nil, err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return req, nil
}

// DecodeAPIResponse 解码统一API响应
func (h *HTTPTestHelper) DecodeAPIResponse(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	var body map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &body)
	assert.NoError(t, err)
	return body
}
