package render

import (
	"bytes"
	"codeberg.org/miketth/layerboard/pkg/labels"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"go.uber.org/zap"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

var ErrNoOutput = errors.New("render command wrote no image")

// Command draws layer images with an external program. The program gets a
// JSON request on stdin and must write the image to the output path of the
// request, also given as LAYERBOARD_OUTPUT.
type Command struct {
	path      string
	args      []string
	outputDir string
	log       *zap.SugaredLogger
}

type request struct {
	Layer  string         `json:"layer"`
	Output string         `json:"output"`
	Labels []labels.Label `json:"labels"`
}

func NewCommand(command []string, outputDir string, log *zap.SugaredLogger) (*Command, error) {
	if len(command) == 0 {
		return nil, errors.New("empty render command")
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	return &Command{
		path:      command[0],
		args:      command[1:],
		outputDir: outputDir,
		log:       log,
	}, nil
}

// OutputPath is where the image of a layer is written.
func (c *Command) OutputPath(layer string) string {
	name := strings.NewReplacer("/", "_", string(filepath.Separator), "_").Replace(layer)
	return filepath.Join(c.outputDir, name+".png")
}

func (c *Command) Compose(ctx context.Context, layer string, flat []labels.Label) (string, error) {
	output := c.OutputPath(layer)
	if err := os.Remove(output); err != nil && !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("remove old image: %w", err)
	}

	req, err := json.Marshal(request{Layer: layer, Output: output, Labels: flat})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, c.path, c.args...)
	cmd.Stdin = bytes.NewReader(req)
	cmd.Stderr = &stderr
	cmd.Env = append(os.Environ(),
		"LAYERBOARD_LAYER="+layer,
		"LAYERBOARD_OUTPUT="+output,
	)

	c.log.Debugw("running render command", "command", c.path, "layer", layer, "labels", len(flat))
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("%s: %w, stderr: %s", c.path, err, strings.TrimSpace(stderr.String()))
	}

	if _, err := os.Stat(output); err != nil {
		return "", fmt.Errorf("%w: %s", ErrNoOutput, output)
	}

	return output, nil
}
