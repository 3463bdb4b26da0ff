package diag

import (
	"os"
	"path/filepath"
	"testing"
)

func TestPlotLineWritesFile(t *testing.T) {
	line := make([]int8, 64)
	for i := range line {
		line[i] = int8(i - 32)
	}

	path := filepath.Join(t.TempDir(), "line.png")
	if err := PlotLine(line, path); err != nil {
		t.Fatalf("PlotLine: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat output: %v", err)
	}
	if info.Size() == 0 {
		t.Error("output PNG is empty")
	}
}
