package file

import (
	"time"

	"github.com/google/uuid"
)

type (
	File struct {
		ID         uuid.UUID `json:"id"`
		Name       string    `json:"name"`
		Type       string    `json:"type"`
		Size       uint64    `json:"size"`
		UploadDate time.Time `json:"uploadDate"`
		URL        string    `json:"url,omitempty"`
		Tags       []string  `json:"tags"`
	}
	Files []File

	UploadResponse struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		File    File   `json:"file"`
	}
)
