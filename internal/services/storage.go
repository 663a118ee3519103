package services

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"alfredoptarigan/profile-screener/internal/models"
)

// UploadKind is the multipart field a file arrived in.
type UploadKind string

const (
	UploadResume UploadKind = "resume"
	UploadAudio  UploadKind = "audio"
)

type fileType struct {
	source   models.Source
	mimeType string
}

var resumeTypes = map[string]fileType{
	".pdf":  {models.SourcePDF, "application/pdf"},
	".docx": {models.SourceDOCX, "application/vnd.openxmlformats-officedocument.wordprocessingml.document"},
	".png":  {models.SourceImage, "image/png"},
	".jpg":  {models.SourceImage, "image/jpeg"},
	".jpeg": {models.SourceImage, "image/jpeg"},
	".txt":  {models.SourceText, "text/plain"},
}

var audioTypes = map[string]fileType{
	".wav":  {models.SourceVoice, "audio/wav"},
	".mp3":  {models.SourceVoice, "audio/mpeg"},
	".m4a":  {models.SourceVoice, "audio/mp4"},
	".ogg":  {models.SourceVoice, "audio/ogg"},
	".webm": {models.SourceVoice, "audio/webm"},
}

// DetectFileType maps a filename to its document source and MIME type.
func DetectFileType(kind UploadKind, filename string) (models.Source, string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	table := resumeTypes
	if kind == UploadAudio {
		table = audioTypes
	}
	ft, ok := table[ext]
	if !ok {
		return "", "", fmt.Errorf("invalid file extension for %s: %q", kind, ext)
	}
	return ft.source, ft.mimeType, nil
}

type StoredFile struct {
	Filename string
	Path     string
	Source   models.Source
	MimeType string
}

type StorageService interface {
	SaveFile(file *multipart.FileHeader, kind UploadKind) (*StoredFile, error)
	Save(originalName string, r io.Reader, kind UploadKind) (*StoredFile, error)
	GetFilePath(filename string) string
	DeleteFile(filename string) error
	EnsureUploadDir() error
}

type storageService struct {
	uploadPath string
}

func NewStorageService(uploadPath string) StorageService {
	return &storageService{
		uploadPath: uploadPath,
	}
}

func (s *storageService) EnsureUploadDir() error {
	if err := os.MkdirAll(s.uploadPath, 0755); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}

	return nil
}

func (s *storageService) SaveFile(file *multipart.FileHeader, kind UploadKind) (*StoredFile, error) {
	if _, _, err := DetectFileType(kind, file.Filename); err != nil {
		return nil, err
	}

	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	return s.Save(file.Filename, src, kind)
}

// Save copies r into the upload directory under a unique name derived from
// the original filename's extension.
func (s *storageService) Save(originalName string, r io.Reader, kind UploadKind) (*StoredFile, error) {
	source, mimeType, err := DetectFileType(kind, originalName)
	if err != nil {
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(originalName))
	uniqueFilename := fmt.Sprintf("%s_%s%s", kind, uuid.New().String(), ext)
	filePath := filepath.Join(s.uploadPath, uniqueFilename)

	dst, err := os.Create(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, r); err != nil {
		return nil, fmt.Errorf("failed to save file: %w", err)
	}

	return &StoredFile{
		Filename: uniqueFilename,
		Path:     filePath,
		Source:   source,
		MimeType: mimeType,
	}, nil
}

func (s *storageService) GetFilePath(filename string) string {
	return filepath.Join(s.uploadPath, filepath.Base(filename))
}

func (s *storageService) DeleteFile(filename string) error {
	if err := os.Remove(s.GetFilePath(filename)); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}
