/*
 * @module service/storage/blob_client_test
 * @description Blob存储路径与元数据构建测试
 * @architecture 测试层
 * @documentReference ai_docs/esg_data_model.md
 * @stateFlow 路径生成 -> 格式验证
 * @rules Blob路径按实体类型与日期分层组织
 * @dependencies testing, github.com/stretchr/testify
 * @refs blob_client.go
 */

package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// Blob路径按 实体类型/年/月/日/文件名 组织，月日补零
func TestGenerateBlobPath(t *testing.T) {
	ts := time.Date(2025, 6, 3, 10, 0, 0, 0, time.UTC)

	assert.Equal(t, "emissions/2025/06/03/data.csv",
		GenerateBlobPath("data.csv", "emissions", ts))
	assert.Equal(t, "suppliers/2025/12/25/vendors.xlsx",
		GenerateBlobPath("vendors.xlsx", "suppliers", time.Date(2025, 12, 25, 0, 0, 0, 0, time.UTC)))
}

// 实体类型为空时回退到general
func TestGenerateBlobPath_DefaultEntityType(t *testing.T) {
	ts := time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "general/2025/06/03/data.csv", GenerateBlobPath("data.csv", "", ts))
}

// 零值时间使用当前UTC日期
func TestGenerateBlobPath_ZeroTime(t *testing.T) {
	now := time.Now().UTC()
	path := GenerateBlobPath("data.csv", "emissions", time.Time{})
	expected := GenerateBlobPath("data.csv", "emissions", now)
	assert.Equal(t, expected, path)
}

// 上传元数据包含来源文件与实体类型
func TestBuildUploadMetadata(t *testing.T) {
	metadata := BuildUploadMetadata("emissions_2025.csv", "emissions")

	assert.Equal(t, "emissions_2025.csv", metadata["source_file"])
	assert.Equal(t, "emissions", metadata["entity_type"])
	assert.Equal(t, "esg-reporting-service", metadata["uploaded_by"])
	assert.NotEmpty(t, metadata["upload_timestamp"])

	_, err := time.Parse(time.RFC3339, metadata["upload_timestamp"])
	assert.NoError(t, err)
}
