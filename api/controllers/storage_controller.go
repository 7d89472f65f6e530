/*
 * @module api/controllers/storage_controller
 * @description Blob存储控制器，提供数据文件的上传、下载与列举接口
 * @architecture MVC架构 - 控制器层
 * @documentReference ai_docs/esg_service_api.md
 * @stateFlow HTTP请求处理流程
 * @rules 存储客户端未配置时返回服务不可用；上传文件经临时目录中转
 * @dependencies esg-reporting-service/service/storage, github.com/go-chi/render
 * @refs service/storage/blob_client.go
 */

package controllers

import (
	"esg-reporting-service/service/storage"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/render"
)

// StorageController Blob存储控制器
type StorageController struct {
	blob *storage.BlobClient
}

// NewStorageController 创建Blob存储控制器实例
func NewStorageController(blob *storage.BlobClient) *StorageController {
	return &StorageController{blob: blob}
}

// UploadBlob 上传数据文件到Blob存储
// @Summary 上传数据文件
// @Description 将上传的文件按实体类型与日期组织路径存入Blob存储
// @Tags 存储
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "数据文件"
// @Param entity_type formData string false "实体类型" Enums(emissions,activities,suppliers,general)
// @Success 200 {object} APIResponse{data=models.UploadResult} "上传成功"
// @Failure 400 {object} APIResponse "请求参数错误"
// @Failure 503 {object} APIResponse "存储客户端不可用"
// @Router /storage/upload [post]
func (c *StorageController) UploadBlob(w http.ResponseWriter, r *http.Request) {
	if c.blob == nil {
		render.JSON(w, r, ServiceUnavailableResponse("Blob存储客户端未配置"))
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		render.JSON(w, r, BadRequestResponse("解析上传请求失败", err))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		render.JSON(w, r, BadRequestResponse("读取上传文件失败", err))
		return
	}
	defer file.Close()

	// 落盘临时文件后再上传,保持上传文件原始名称
	tempDir, err := os.MkdirTemp("", "esg-blob-upload-")
	if err != nil {
		render.JSON(w, r, InternalErrorResponse("创建临时目录失败", err))
		return
	}
	defer os.RemoveAll(tempDir)

	tempPath := filepath.Join(tempDir, filepath.Base(header.Filename))
	tmp, err := os.Create(tempPath)
	if err != nil {
		render.JSON(w, r, InternalErrorResponse("创建临时文件失败", err))
		return
	}
	if _, err := io.Copy(tmp, file); err != nil {
		tmp.Close()
		render.JSON(w, r, InternalErrorResponse("写入临时文件失败", err))
		return
	}
	tmp.Close()

	result, err := c.blob.UploadFile(r.Context(), tempPath, r.FormValue("entity_type"), nil)
	if err != nil {
		render.JSON(w, r, InternalErrorResponse("文件上传失败", err))
		return
	}

	render.JSON(w, r, SuccessResponse("上传成功", result))
}

// ListBlobs 列举Blob
// @Summary 列举Blob
// @Description 按前缀列举容器内的Blob
// @Tags 存储
// @Produce json
// @Param prefix query string false "路径前缀"
// @Success 200 {object} APIResponse{data=[]models.BlobInfo} "列举成功"
// @Failure 503 {object} APIResponse "存储客户端不可用"
// @Router /storage/blobs [get]
func (c *StorageController) ListBlobs(w http.ResponseWriter, r *http.Request) {
	if c.blob == nil {
		render.JSON(w, r, ServiceUnavailableResponse("Blob存储客户端未配置"))
		return
	}

	blobs, err := c.blob.ListBlobs(r.Context(), r.URL.Query().Get("prefix"))
	if err != nil {
		render.JSON(w, r, InternalErrorResponse("列举Blob失败", err))
		return
	}

	render.JSON(w, r, SuccessResponse("列举成功", blobs))
}

// DownloadBlob 下载Blob
// @Summary 下载Blob
// @Description 下载指定Blob并返回文件内容
// @Tags 存储
// @Produce application/octet-stream
// @Param blob query string true "Blob路径"
// @Success 200 {file} file "文件内容"
// @Failure 400 {object} APIResponse "请求参数错误"
// @Failure 503 {object} APIResponse "存储客户端不可用"
// @Router /storage/download [get]
func (c *StorageController) DownloadBlob(w http.ResponseWriter, r *http.Request) {
	if c.blob == nil {
		render.JSON(w, r, ServiceUnavailableResponse("Blob存储客户端未配置"))
		return
	}

	blobName := r.URL.Query().Get("blob")
	if blobName == "" {
		render.JSON(w, r, BadRequestResponse("blob参数不能为空", nil))
		return
	}

	tempDir, err := os.MkdirTemp("", "esg-blob-download-")
	if err != nil {
		render.JSON(w, r, InternalErrorResponse("创建临时目录失败", err))
		return
	}
	defer os.RemoveAll(tempDir)

	localPath := filepath.Join(tempDir, filepath.Base(blobName))
	if _, err := c.blob.DownloadFile(r.Context(), blobName, localPath); err != nil {
		render.JSON(w, r, InternalErrorResponse("下载Blob失败", err))
		return
	}

	w.Header().Set("Content-Disposition", "attachment; filename="+filepath.Base(blobName))
	w.Header().Set("Content-Type", "application/octet-stream")
	http.ServeFile(w, r, localPath)
}
