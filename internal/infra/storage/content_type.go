package storage

import "path/filepath"

// ContentType mimeType sederhana berdasarkan ekstensi
func ContentType(key string) string {
	switch filepath.Ext(key) {
	case ".json":
		return "application/json"
	case ".html":
		return "text/html; charset=utf-8"
	case ".pdf":
		return "application/pdf"
	case ".txt":
		return "text/plain; charset=utf-8"
	default:
		return "application/octet-stream"
	}
}
