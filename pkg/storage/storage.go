package storage

import (
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

// Storage представляет файловое хранилище для сдач заданий,
// обложек курсов и картинок товаров
type Storage struct {
	basePath    string
	maxFileSize int64
}

// NewStorage создает новое файловое хранилище
func NewStorage(basePath string, maxFileSize int64) (*Storage, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &Storage{
		basePath:    basePath,
		maxFileSize: maxFileSize,
	}, nil
}

// SaveFile сохраняет загруженный файл под уникальным именем.
// category задает поддиректорию: homework, course, product, blog, chat.
func (s *Storage) SaveFile(file *multipart.FileHeader, userID uuid.UUID, category string) (string, error) {
	if file.Size > s.maxFileSize {
		return "", fmt.Errorf("file size exceeds maximum allowed size")
	}

	fileExt := filepath.Ext(file.Filename)
	fileName := uuid.New().String() + fileExt
	filePath := filepath.Join(s.basePath, category, userID.String(), fileName)

	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return "", fmt.Errorf("failed to create file directory: %w", err)
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("failed to copy file: %w", err)
	}

	// Для изображений создаем превью
	if strings.HasPrefix(file.Header.Get("Content-Type"), "image/") {
		if err := s.createThumbnail(filePath); err != nil {
			log.Printf("Failed to create thumbnail for %s: %v", filePath, err)
		}
	}

	return filePath, nil
}

// createThumbnail создает миниатюру изображения 300x300
func (s *Storage) createThumbnail(filePath string) error {
	img, err := imaging.Open(filePath)
	if err != nil {
		return err
	}
	thumbnail := imaging.Resize(img, 300, 300, imaging.Lanczos)
	thumbPath := strings.Replace(filePath, filepath.Ext(filePath), "_thumb.jpg", 1)
	return imaging.Save(thumbnail, thumbPath, imaging.JPEGQuality(85))
}

// DeleteFile удаляет файл вместе с миниатюрой
func (s *Storage) DeleteFile(filePath string) error {
	if err := os.Remove(filePath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	thumbPath := s.GetThumbnailPath(filePath)
	if err := os.Remove(thumbPath); err != nil && !os.IsNotExist(err) {
		log.Printf("Failed to delete thumbnail %s: %v", thumbPath, err)
	}
	return nil
}

// GetThumbnailPath возвращает путь к миниатюре файла
func (s *Storage) GetThumbnailPath(filePath string) string {
	return strings.Replace(filePath, filepath.Ext(filePath), "_thumb.jpg", 1)
}
