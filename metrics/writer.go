package metrics

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/klauspost/compress/zstd"
)

const (
	DecisionsFile = "decisions.csv"
	// CompressedSuffix is appended to trace files written with compression.
	CompressedSuffix = ".zst"
)

type Writer struct {
	baseDir  string
	compress bool
}

type WriterOption func(w *Writer)

// WithCompression writes zstd-compressed traces.
func WithCompression(enabled bool) WriterOption {
	return func(w *Writer) {
		w.compress = enabled
	}
}

// NewWriter creates <root>/<name>/<timestamp> to hold a match's traces.
func NewWriter(root, name string, opts ...WriterOption) (*Writer, error) {
	timestamp := time.Now().UTC().Format("20060102T150405.000000000Z")
	baseDir := filepath.Join(root, name, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	w := &Writer{
		baseDir: baseDir,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

// DecisionsPath is where WriteDecisions puts its file.
func (w *Writer) DecisionsPath() string {
	path := filepath.Join(w.baseDir, DecisionsFile)
	if w.compress {
		path += CompressedSuffix
	}
	return path
}

func (w *Writer) WriteDecisions(decisions []Decision) error {
	f, err := os.Create(w.DecisionsPath())
	if err != nil {
		return fmt.Errorf("failed to create decisions file: %w", err)
	}
	defer f.Close()

	var out io.Writer = f
	var enc *zstd.Encoder
	if w.compress {
		enc, err = zstd.NewWriter(f)
		if err != nil {
			return fmt.Errorf("failed to create zstd encoder: %w", err)
		}
		defer enc.Close()
		out = enc
	}

	writer := csv.NewWriter(out)

	header := []string{"turn", "agent", "name", "mode", "action", "safety", "power_mode", "target", "fallback", "duration"}
	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write decisions header: %w", err)
	}

	for _, d := range decisions {
		row := []string{
			strconv.Itoa(d.Turn),
			strconv.Itoa(d.Agent),
			d.Name,
			d.Mode,
			d.Action,
			strconv.Itoa(d.Safety),
			strconv.FormatBool(d.PowerMode),
			d.Target,
			strconv.FormatBool(d.Fallback),
			d.Duration.String(),
		}
		err = writer.Write(row)
		if err != nil {
			return fmt.Errorf("failed to write decision row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush decisions: %w", err)
	}
	if enc != nil {
		if err := enc.Close(); err != nil {
			return fmt.Errorf("failed to finish zstd stream: %w", err)
		}
	}
	return f.Close()
}
