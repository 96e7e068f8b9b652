// Package output renders release configurations, plugin plans and
// preflight reports for the CLI.
package output

import (
	"bytes"
	"fmt"
	"io"

	"github.com/MyCarrier-DevOps/go-releaserc/internal/config"
)

// WriteConfig writes cfg in the given file format.
func WriteConfig(w io.Writer, cfg *config.Config, format config.Format) error {
	data, err := config.Marshal(cfg, format)
	if err != nil {
		return err
	}
	if !bytes.HasSuffix(data, []byte("\n")) {
		data = append(data, '\n')
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing configuration: %w", err)
	}
	return nil
}
