/*
 * @module service/storage/blob_client
 * @description Azure Blob存储客户端，提供ESG数据文件的上传、下载与列举
 * @architecture 适配器模式 - 封装Azure Blob SDK
 * @documentReference ai_docs/esg_storage_req.md
 * @stateFlow 凭据初始化 -> 容器确认 -> Blob读写 -> 结果返回
 * @rules Blob路径按 实体类型/年/月/日/文件名 组织；上传附带处理元数据
 * @dependencies github.com/Azure/azure-sdk-for-go/sdk/storage/azblob, github.com/Azure/azure-sdk-for-go/sdk/azidentity
 * @refs service/scheduler/, api/controllers/storage_controller.go
 */

package storage

import (
	"context"
	"esg-reporting-service/service/config"
	"esg-reporting-service/service/models"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"
)

// BlobClient ESG数据Blob存储客户端
type BlobClient struct {
	accountName   string
	containerName string
	client        *azblob.Client

	containerOnce sync.Once
	containerErr  error
}

// NewBlobClient 创建Blob存储客户端，credential为nil时使用DefaultAzureCredential
func NewBlobClient(cfg *config.Config, credential azcore.TokenCredential) (*BlobClient, error) {
	if cfg == nil || cfg.StorageAccountName == "" {
		return nil, fmt.Errorf("未配置存储账户名称（AZURE_STORAGE_ACCOUNT_NAME）")
	}

	if credential == nil {
		cred, err := azidentity.NewDefaultAzureCredential(nil)
		if err != nil {
			return nil, fmt.Errorf("初始化Azure凭据失败: %w", err)
		}
		credential = cred
	}

	accountURL := fmt.Sprintf("https://%s.blob.core.windows.net", cfg.StorageAccountName)
	client, err := azblob.NewClient(accountURL, credential, nil)
	if err != nil {
		return nil, fmt.Errorf("创建Blob客户端失败: %w", err)
	}

	slog.Info("Blob存储客户端初始化完成",
		"account", cfg.StorageAccountName,
		"container", cfg.ContainerName)

	return &BlobClient{
		accountName:   cfg.StorageAccountName,
		containerName: cfg.ContainerName,
		client:        client,
	}, nil
}

// GenerateBlobPath 生成组织化的Blob路径：{entity_type}/{年}/{月}/{日}/{文件名}
// t为零值时使用当前UTC时间
func GenerateBlobPath(filename, entityType string, t time.Time) string {
	if entityType == "" {
		entityType = models.EntityTypeGeneral
	}
	if t.IsZero() {
		t = time.Now().UTC()
	}
	return fmt.Sprintf("%s/%d/%02d/%02d/%s", entityType, t.Year(), int(t.Month()), t.Day(), filename)
}

// BuildUploadMetadata 构建上传附带的Blob元数据
func BuildUploadMetadata(sourceFile, entityType string) map[string]string {
	return map[string]string{
		"entity_type":      entityType,
		"source_file":      sourceFile,
		"upload_timestamp": time.Now().UTC().Format(time.RFC3339),
		"uploaded_by":      "esg-reporting-service",
	}
}

// ensureContainer 确保容器存在，不存在则创建；进程内只检查一次
func (b *BlobClient) ensureContainer(ctx context.Context) error {
	b.containerOnce.Do(func() {
		_, err := b.client.CreateContainer(ctx, b.containerName, nil)
		if err != nil && !bloberror.HasCode(err, bloberror.ContainerAlreadyExists) {
			b.containerErr = fmt.Errorf("创建容器 %s 失败: %w", b.containerName, err)
			return
		}
		slog.Info("容器就绪", "container", b.containerName)
	})
	return b.containerErr
}

// UploadFile 上传本地文件到Blob存储，按实体类型与日期组织路径
func (b *BlobClient) UploadFile(ctx context.Context, localPath, entityType string, extraMetadata map[string]string) (*models.UploadResult, error) {
	if err := b.ensureContainer(ctx); err != nil {
		return nil, err
	}

	f, err := os.Open(localPath)
	if err != nil {
		return nil, fmt.Errorf("打开本地文件失败: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("读取文件信息失败: %w", err)
	}

	blobPath := GenerateBlobPath(filepath.Base(localPath), entityType, time.Time{})
	metadata := BuildUploadMetadata(filepath.Base(localPath), entityType)
	for k, v := range extraMetadata {
		metadata[k] = v
	}

	blobMetadata := make(map[string]*string, len(metadata))
	for k, v := range metadata {
		blobMetadata[k] = to.Ptr(v)
	}

	_, err = b.client.UploadFile(ctx, b.containerName, blobPath, f, &azblob.UploadFileOptions{
		Metadata: blobMetadata,
	})
	if err != nil {
		return nil, fmt.Errorf("上传Blob %s 失败: %w", blobPath, err)
	}

	result := &models.UploadResult{
		BlobPath:   blobPath,
		BlobURL:    fmt.Sprintf("https://%s.blob.core.windows.net/%s/%s", b.accountName, b.containerName, blobPath),
		FileSizeMB: float64(info.Size()) / (1024 * 1024),
		Metadata:   metadata,
		UploadedAt: time.Now().UTC(),
	}

	slog.Info("Blob上传成功", "blob", blobPath, "size_mb", result.FileSizeMB)
	return result, nil
}

// DownloadFile 下载Blob到本地文件
func (b *BlobClient) DownloadFile(ctx context.Context, blobName, localPath string) (int64, error) {
	if err := os.MkdirAll(filepath.Dir(localPath), 0o755); err != nil {
		return 0, fmt.Errorf("创建下载目录失败: %w", err)
	}

	f, err := os.Create(localPath)
	if err != nil {
		return 0, fmt.Errorf("创建本地文件失败: %w", err)
	}
	defer f.Close()

	size, err := b.client.DownloadFile(ctx, b.containerName, blobName, f, nil)
	if err != nil {
		return 0, fmt.Errorf("下载Blob %s 失败: %w", blobName, err)
	}

	slog.Info("Blob下载成功", "blob", blobName, "bytes", size)
	return size, nil
}

// ListBlobs 按前缀列举容器内的Blob
func (b *BlobClient) ListBlobs(ctx context.Context, prefix string) ([]models.BlobInfo, error) {
	options := &azblob.ListBlobsFlatOptions{}
	if prefix != "" {
		options.Prefix = to.Ptr(prefix)
	}

	blobs := make([]models.BlobInfo, 0)
	pager := b.client.NewListBlobsFlatPager(b.containerName, options)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("列举Blob失败: %w", err)
		}
		for _, item := range page.Segment.BlobItems {
			info := models.BlobInfo{}
			if item.Name != nil {
				info.Name = *item.Name
			}
			if item.Properties != nil {
				if item.Properties.ContentLength != nil {
					info.SizeBytes = *item.Properties.ContentLength
				}
				if item.Properties.LastModified != nil {
					info.LastModified = *item.Properties.LastModified
				}
				if item.Properties.ContentType != nil {
					info.ContentType = *item.Properties.ContentType
				}
			}
			blobs = append(blobs, info)
		}
	}

	return blobs, nil
}
