package services

import (
	"bytes"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/profile-screener/internal/models"
)

func TestDetectFileType(t *testing.T) {
	tests := []struct {
		kind     UploadKind
		filename string
		source   models.Source
		mimeType string
	}{
		{UploadResume, "cv.PDF", models.SourcePDF, "application/pdf"},
		{UploadResume, "cv.docx", models.SourceDOCX, "application/vnd.openxmlformats-officedocument.wordprocessingml.document"},
		{UploadResume, "scan.jpeg", models.SourceImage, "image/jpeg"},
		{UploadResume, "notes.txt", models.SourceText, "text/plain"},
		{UploadAudio, "answer.webm", models.SourceVoice, "audio/webm"},
		{UploadAudio, "answer.m4a", models.SourceVoice, "audio/mp4"},
	}
	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			source, mimeType, err := DetectFileType(tt.kind, tt.filename)
			require.NoError(t, err)
			assert.Equal(t, tt.source, source)
			assert.Equal(t, tt.mimeType, mimeType)
		})
	}

	_, _, err := DetectFileType(UploadResume, "answer.mp3")
	assert.Error(t, err)
	_, _, err = DetectFileType(UploadAudio, "cv.pdf")
	assert.Error(t, err)
	_, _, err = DetectFileType(UploadResume, "noextension")
	assert.Error(t, err)
}

func fileHeader(t *testing.T, field, filename string, content []byte) *multipart.FileHeader {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	form, err := multipart.NewReader(&body, mw.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { form.RemoveAll() })
	return form.File[field][0]
}

func TestStorageSaveAndDelete(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	s := NewStorageService(dir)
	require.NoError(t, s.EnsureUploadDir())

	stored, err := s.SaveFile(fileHeader(t, "resume", "Priya.PDF", []byte("%PDF-1.4")), UploadResume)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stored.Filename, "resume_"))
	assert.True(t, strings.HasSuffix(stored.Filename, ".pdf"))
	assert.Equal(t, models.SourcePDF, stored.Source)
	assert.Equal(t, s.GetFilePath(stored.Filename), stored.Path)

	data, err := os.ReadFile(stored.Path)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(data))

	require.NoError(t, s.DeleteFile(stored.Filename))
	_, err = os.Stat(stored.Path)
	assert.True(t, os.IsNotExist(err))
	assert.Error(t, s.DeleteFile(stored.Filename))
}

func TestStorageRejectsUnknownExtension(t *testing.T) {
	s := NewStorageService(t.TempDir())
	_, err := s.SaveFile(fileHeader(t, "resume", "run.exe", []byte("MZ")), UploadResume)
	assert.Error(t, err)
}

func TestStorageKeepsPathsInsideUploadDir(t *testing.T) {
	s := NewStorageService("/srv/uploads")
	assert.Equal(t, "/srv/uploads/passwd", s.GetFilePath("../../etc/passwd"))
}

func TestStorageSaveFromReader(t *testing.T) {
	s := NewStorageService(t.TempDir())

	stored, err := s.Save("archive/old_cv.docx", strings.NewReader("docx bytes"), UploadResume)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stored.Filename, "resume_"))
	assert.Equal(t, models.SourceDOCX, stored.Source)

	data, err := os.ReadFile(stored.Path)
	require.NoError(t, err)
	assert.Equal(t, "docx bytes", string(data))
}
