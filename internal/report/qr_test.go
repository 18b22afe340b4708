package report

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriteJobQR_CreatesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "job.png")

	tag := JobTag{
		ProjectName: "Kitchen Cabinet",
		JobID:       "1234-abcd",
		SheetCount:  2,
		TotalPrice:  4500,
	}

	if err := WriteJobQR(path, tag); err != nil {
		t.Fatalf("WriteJobQR returned error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("QR PNG was not created: %v", err)
	}
	if info.Size() == 0 {
		t.Error("QR PNG is empty")
	}
}
