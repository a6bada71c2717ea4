package command

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// export writes the whole book as vCard 3.0 to the given path or the
// configured default.
func (s *Session) export(args []string) (string, error) {
	if err := s.requireRecords(); err != nil {
		return "", err
	}
	path := s.opts.ExportPath
	if len(args) > 0 {
		path = args[0]
	}

	records := s.book.All()
	data, err := s.opts.Renderer.VCard(records)
	if err != nil {
		return "", err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("export: creating directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		return "", fmt.Errorf("export: writing %s: %w", path, err)
	}

	s.opts.Logger.Info("book exported", zap.String("path", path), zap.Int("contacts", len(records)))
	return fmt.Sprintf("Exported %d contacts to %s.", len(records), path), nil
}
