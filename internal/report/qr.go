package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	qrcode "github.com/skip2/go-qrcode"
)

// JobTag is the data encoded into a job's QR code: just enough for a shop
// floor scanner to look the job back up without re-keying anything.
type JobTag struct {
	ProjectName string `json:"project_name"`
	JobID       string `json:"job_id"`
	SheetCount  int    `json:"sheet_count"`
	TotalPrice  int    `json:"total_price"`
}

// WriteJobQR encodes tag as JSON into a QR code and writes it as a 256x256
// PNG to path, following the teacher's label-export QR encoding.
func WriteJobQR(path string, tag JobTag) error {
	data, err := json.Marshal(tag)
	if err != nil {
		return fmt.Errorf("report: marshal job tag: %w", err)
	}

	png, err := qrcode.Encode(string(data), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("report: encode qr code: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("report: create qr directory: %w", err)
	}
	if err := os.WriteFile(path, png, 0644); err != nil {
		return fmt.Errorf("report: write qr file: %w", err)
	}
	return nil
}
