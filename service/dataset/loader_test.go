/*
 * @module service/dataset/loader_test
 * @description 数据文件加载器测试，覆盖CSV/Excel解析、BOM处理与单元格类型转换
 * @architecture 测试层
 * @documentReference ai_docs/esg_data_model.md
 * @stateFlow 测试文件准备 -> 加载解析 -> 数据集与元数据验证
 * @rules 空白单元格解析为缺失值nil，可解析数字转为float64
 * @dependencies testing, github.com/stretchr/testify, github.com/xuri/excelize/v2
 * @refs loader.go
 */

package dataset

import (
	"esg-reporting-service/service/config"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeTempFile(t *testing.T, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, content, 0o644))
	return path
}

// CSV解析：首行作为列名，数字转float64，空白单元格为缺失
func TestLoadCSV(t *testing.T) {
	loader := NewLoader(nil)
	csvData := "date,value,unit\n2025-01-01,1.5,kg\n2025-01-02,,kg\n2025-01-03,abc, \n"

	ds, err := loader.LoadCSV(strings.NewReader(csvData))
	require.NoError(t, err)

	assert.Equal(t, []string{"date", "value", "unit"}, ds.Columns)
	require.Equal(t, 3, ds.RowCount())
	assert.Equal(t, "2025-01-01", ds.Rows[0][0])
	assert.Equal(t, 1.5, ds.Rows[0][1])
	assert.Equal(t, "kg", ds.Rows[0][2])
	// 空单元格与纯空白单元格均为缺失
	assert.Nil(t, ds.Rows[1][1])
	assert.Nil(t, ds.Rows[2][2])
	// 非数字字符串保持原样
	assert.Equal(t, "abc", ds.Rows[2][1])
}

// 带UTF-8 BOM的CSV文件列名不包含BOM字符
func TestLoadCSV_StripsBOM(t *testing.T) {
	loader := NewLoader(nil)
	csvData := "\xEF\xBB\xBFdate,value\n2025-01-01,1\n"

	ds, err := loader.LoadCSV(strings.NewReader(csvData))
	require.NoError(t, err)
	assert.Equal(t, []string{"date", "value"}, ds.Columns)
}

// 空CSV返回空数据集而非错误
func TestLoadCSV_EmptyInput(t *testing.T) {
	loader := NewLoader(nil)

	ds, err := loader.LoadCSV(strings.NewReader(""))
	require.NoError(t, err)
	assert.True(t, ds.IsEmpty())
	assert.Equal(t, 0, ds.ColumnCount())
}

// 行长度不一致时短行用缺失值补齐
func TestLoadCSV_ShortRowsPadded(t *testing.T) {
	loader := NewLoader(nil)
	csvData := "a,b,c\n1,2\n"

	ds, err := loader.LoadCSV(strings.NewReader(csvData))
	require.NoError(t, err)
	require.Equal(t, 1, ds.RowCount())
	assert.Equal(t, float64(1), ds.Rows[0][0])
	assert.Equal(t, float64(2), ds.Rows[0][1])
	assert.Nil(t, ds.Rows[0][2])
}

// 按扩展名加载CSV文件并采集元数据
func TestLoad_CSVFile(t *testing.T) {
	loader := NewLoader(nil)
	path := writeTempFile(t, "emissions.csv", []byte("date,co2_value\n2025-01-01,1.5\n"))

	ds, metadata, err := loader.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1, ds.RowCount())
	assert.Equal(t, "emissions.csv", metadata.FileName)
	assert.Equal(t, "csv", metadata.FileType)
	assert.Equal(t, ".csv", metadata.FileExtension)
	assert.Equal(t, 1, metadata.RowCount)
	assert.Equal(t, 2, metadata.ColumnCount)
	assert.NotEmpty(t, metadata.ReadTimestamp)
}

// Excel写出后再加载，数据往返一致
func TestLoad_ExcelFile(t *testing.T) {
	loader := NewLoader(nil)
	path := filepath.Join(t.TempDir(), "emissions.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]any{"date", "value"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]any{"2025-01-01", 1.5}))
	require.NoError(t, f.SaveAs(path))
	f.Close()

	ds, metadata, err := loader.Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"date", "value"}, ds.Columns)
	require.Equal(t, 1, ds.RowCount())
	assert.Equal(t, "2025-01-01", ds.Rows[0][0])
	assert.Equal(t, 1.5, ds.Rows[0][1])
	assert.Equal(t, "excel", metadata.FileType)
}

// 文件不存在返回显式错误
func TestLoad_FileNotFound(t *testing.T) {
	loader := NewLoader(nil)

	_, _, err := loader.Load("/nonexistent/emissions.csv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "文件不存在")
}

// 不支持的文件类型返回显式错误
func TestLoad_UnsupportedExtension(t *testing.T) {
	loader := NewLoader(nil)
	path := writeTempFile(t, "data.json", []byte("{}"))

	_, _, err := loader.Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "不支持的文件类型")
}

// 超过大小限制的文件被拒绝
func TestLoad_FileTooLarge(t *testing.T) {
	loader := NewLoader(&config.Config{MaxFileSizeMB: 1})
	big := make([]byte, 2*1024*1024)
	path := writeTempFile(t, "big.csv", big)

	_, _, err := loader.Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "超过限制")
}
