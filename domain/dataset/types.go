package dataset

import (
	"path/filepath"
	"strings"
	"time"
)

// FileType is the format of the file as uploaded
type FileType string

const (
	FileTypeCSV  FileType = "csv"
	FileTypeJSON FileType = "json"
	FileTypeXML  FileType = "xml"
)

// File is a catalog entry for an uploaded file the upstream backend can preview
type File struct {
	ID               string    `db:"id" json:"id"`
	OriginalFilename string    `db:"original_filename" json:"original_filename"`
	FileType         FileType  `db:"file_type" json:"file_type"`
	UploadedAt       time.Time `db:"uploaded_at" json:"uploaded_at"`
	RowCount         int       `db:"row_count" json:"row_count"`
	ColumnCount      int       `db:"column_count" json:"column_count"`
	Processed        bool      `db:"processed" json:"processed"`
}

// ParseFileType maps a file name or bare extension onto a FileType
func ParseFileType(name string) (FileType, bool) {
	ext := strings.TrimPrefix(filepath.Ext(name), ".")
	if ext == "" {
		ext = name
	}
	switch ft := FileType(strings.ToLower(ext)); ft {
	case FileTypeCSV, FileTypeJSON, FileTypeXML:
		return ft, true
	}
	return "", false
}
