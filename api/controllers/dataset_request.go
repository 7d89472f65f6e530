/*
 * @module api/controllers/dataset_request
 * @description 数据集请求解析辅助，支持multipart文件上传与JSON内联数据两种提交方式
 * @architecture MVC架构 - 控制器层
 * @documentReference ai_docs/esg_service_api.md
 * @stateFlow 请求解析 -> 临时文件落盘 -> 加载器解析 -> 数据集返回
 * @rules 上传文件写入临时目录并在处理后清理；JSON内联数据直接构建数据集
 * @dependencies esg-reporting-service/service/dataset
 * @refs quality_controller.go, dataset_controller.go
 */

package controllers

import (
	"esg-reporting-service/service/dataset"
	"esg-reporting-service/service/models"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/render"
)

// maxUploadBytes 上传请求内存解析上限
const maxUploadBytes = 64 << 20

// DatasetPayload JSON内联数据集请求体
type DatasetPayload struct {
	Columns    []string `json:"columns"`
	Rows       [][]any  `json:"rows"`
	EntityType string   `json:"entity_type"`
}

// parseDatasetRequest 从请求中解析数据集
// multipart请求走文件上传与加载器；JSON请求直接解析内联数据
// 返回的cleanup在数据集使用完毕后调用，负责删除临时文件
func parseDatasetRequest(r *http.Request, loader *dataset.Loader) (*models.Dataset, *models.FileMetadata, string, func(), error) {
	noop := func() {}

	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			return nil, nil, "", noop, fmt.Errorf("解析上传请求失败: %w", err)
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			return nil, nil, "", noop, fmt.Errorf("读取上传文件失败: %w", err)
		}
		defer file.Close()

		tempPath, err := saveToTemp(file, header.Filename)
		if err != nil {
			return nil, nil, "", noop, err
		}
		cleanup := func() { os.Remove(tempPath) }

		ds, metadata, err := loader.Load(tempPath)
		if err != nil {
			cleanup()
			return nil, nil, "", noop, err
		}
		// 元数据反映上传文件的原始名称而非临时路径
		metadata.FileName = header.Filename
		metadata.FilePath = header.Filename

		return ds, metadata, r.FormValue("entity_type"), cleanup, nil
	}

	var payload DatasetPayload
	if err := render.DecodeJSON(r.Body, &payload); err != nil {
		return nil, nil, "", noop, fmt.Errorf("解析JSON请求体失败: %w", err)
	}

	ds := models.NewDataset(payload.Columns)
	for _, row := range payload.Rows {
		ds.AppendRow(row)
	}

	return ds, nil, payload.EntityType, noop, nil
}

// saveToTemp 将上传内容写入临时文件，保留原始扩展名供加载器识别格式
func saveToTemp(file multipart.File, filename string) (string, error) {
	ext := filepath.Ext(filename)
	tmp, err := os.CreateTemp("", "esg-upload-*"+ext)
	if err != nil {
		return "", fmt.Errorf("创建临时文件失败: %w", err)
	}
	defer tmp.Close()

	if _, err := io.Copy(tmp, file); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("写入临时文件失败: %w", err)
	}
	return tmp.Name(), nil
}
