package storage

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/sasamaylina/responsi-paw/internal/config"
)

var (
	ErrExtNotAllowed = errors.New("不支持的图片格式")
	ErrFileTooLarge  = errors.New("图片大小超过限制")
)

// ImageStore 图片存储适配器，业务逻辑不直接接触文件系统
type ImageStore interface {
	Save(file *multipart.FileHeader) (string, error)
	Delete(name string) error
}

// LocalImageStore 本地文件系统实现
type LocalImageStore struct {
	dir         string
	maxSize     int64
	allowedExts map[string]struct{}
}

// NewLocalImageStore 创建本地图片存储
func NewLocalImageStore(cfg config.UploadConfig) (*LocalImageStore, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("创建上传目录失败: %w", err)
	}

	exts := make(map[string]struct{}, len(cfg.AllowedExts))
	for _, ext := range cfg.AllowedExts {
		exts[strings.ToLower(ext)] = struct{}{}
	}

	return &LocalImageStore{
		dir:         cfg.Dir,
		maxSize:     cfg.MaxSize,
		allowedExts: exts,
	}, nil
}

// Save 校验并保存上传的图片，返回生成的文件名
func (s *LocalImageStore) Save(file *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(file.Filename), "."))
	if _, ok := s.allowedExts[ext]; !ok {
		return "", ErrExtNotAllowed
	}
	if s.maxSize > 0 && file.Size > s.maxSize {
		return "", ErrFileTooLarge
	}

	// 随机文件名，避免覆盖已有文件
	name := uuid.New().String() + "." + ext

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("读取上传文件失败: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("创建图片文件失败: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(dst.Name())
		return "", fmt.Errorf("保存图片失败: %w", err)
	}

	return name, nil
}

// Delete 删除已存储的图片，文件不存在时视为成功
func (s *LocalImageStore) Delete(name string) error {
	if name == "" {
		return nil
	}
	err := os.Remove(filepath.Join(s.dir, filepath.Base(name)))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("删除图片失败: %w", err)
	}
	return nil
}
