package security

import (
	"bytes"
	"errors"
	"net/http"
	"path/filepath"
	"strings"
)

// FileValidationResult contains the result of file validation
type FileValidationResult struct {
	Valid        bool   // Whether the file passed all validation checks
	Extension    string // Detected file extension
	DetectedMIME string // Detected MIME type
	ContentType  string // Canonical content type to store and serve the file with
	Error        string // Error message if validation failed
}

// Magic byte signatures for allowed resume types
var magicBytes = map[string][][]byte{
	".pdf":  {{0x25, 0x50, 0x44, 0x46}}, // %PDF
	".docx": {{0x50, 0x4B, 0x03, 0x04}}, // ZIP (PK..)
}

// Allowed extensions and the content type each one is served with
var allowedExtensions = map[string]string{
	".pdf":  "application/pdf",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

// Detected MIME types accepted per extension. DOCX sniffs as a plain ZIP.
var strictMIMETypes = map[string]map[string]bool{
	".pdf":  {"application/pdf": true},
	".docx": {"application/zip": true, "application/octet-stream": true},
}

// DetectMIME sniffs the content type from the first 512 bytes.
func DetectMIME(data []byte) string {
	mime := http.DetectContentType(data)
	if i := strings.IndexByte(mime, ';'); i >= 0 {
		mime = mime[:i]
	}
	return strings.TrimSpace(mime)
}

// ValidateFile performs 3-layer file validation:
// 1. Extension whitelist check
// 2. Magic byte verification (content matches extension)
// 3. MIME type whitelist per extension
func ValidateFile(filename string, data []byte) FileValidationResult {
	detectedMIME := DetectMIME(data)
	result := FileValidationResult{
		DetectedMIME: detectedMIME,
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		result.Error = "file has no extension"
		return result
	}
	result.Extension = ext

	// Layer 1: Extension whitelist
	contentType, ok := allowedExtensions[ext]
	if !ok {
		result.Error = "file extension not allowed: " + ext + " (allowed: .pdf, .docx)"
		return result
	}

	// Layer 2: Magic bytes
	if !validateMagicBytes(ext, data) {
		result.Error = "file content does not match extension"
		return result
	}

	// Layer 3: MIME whitelist
	if !strictMIMETypes[ext][detectedMIME] {
		result.Error = "MIME type not allowed: " + detectedMIME
		return result
	}

	result.ContentType = contentType
	result.Valid = true
	return result
}

func validateMagicBytes(ext string, data []byte) bool {
	if len(data) < 4 {
		return false // File too small to validate
	}
	for _, sig := range magicBytes[ext] {
		if bytes.HasPrefix(data, sig) {
			return true
		}
	}
	return false
}

// ValidateFileExtension checks only the extension (for quick pre-validation)
func ValidateFileExtension(filename string) error {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		return errors.New("file has no extension")
	}
	if _, ok := allowedExtensions[ext]; !ok {
		return errors.New("file extension not allowed: " + ext)
	}
	return nil
}

// ContentTypeFor returns the content type a stored resume is served with.
func ContentTypeFor(filename string) string {
	if ct, ok := allowedExtensions[strings.ToLower(filepath.Ext(filename))]; ok {
		return ct
	}
	return "application/octet-stream"
}
