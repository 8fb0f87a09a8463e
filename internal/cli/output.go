package cli

import (
	"context"
	"os"
	"path/filepath"

	"github.com/layoutkit/rect2lef/pkg/errors"
	"github.com/layoutkit/rect2lef/pkg/observability"
	"github.com/layoutkit/rect2lef/pkg/pipeline"
)

// outputOrder fixes the order files are committed and reported in.
var outputOrder = []string{pipeline.FormatLEF, pipeline.FormatLayerMap, pipeline.FormatGDS}

// pending is an artifact staged in a temporary file next to its target.
type pending struct {
	tmp, path string
	size      int
}

// writeArtifacts writes every artifact of result into dir. All artifacts are
// staged in temporary files first and only renamed into place once every one
// of them was written, so a failure leaves no partial outputs behind.
func writeArtifacts(ctx context.Context, dir string, result *pipeline.Result) ([]string, error) {
	hooks := observability.Output()
	var staged []pending
	cleanup := func() {
		for _, p := range staged {
			os.Remove(p.tmp)
		}
	}

	for _, format := range outputOrder {
		data, ok := result.Artifacts[format]
		if !ok {
			continue
		}
		path := filepath.Join(dir, result.Files[format])
		tmp, err := stage(path, data)
		if err != nil {
			hooks.OnWrite(ctx, path, len(data), err)
			cleanup()
			return nil, err
		}
		staged = append(staged, pending{tmp: tmp, path: path, size: len(data)})
	}

	paths := make([]string, 0, len(staged))
	for _, p := range staged {
		if err := os.Rename(p.tmp, p.path); err != nil {
			err = errors.Wrap(errors.ErrCodeIO, err, "write %s", p.path)
			hooks.OnWrite(ctx, p.path, p.size, err)
			cleanup()
			return nil, err
		}
		hooks.OnWrite(ctx, p.path, p.size, nil)
		paths = append(paths, p.path)
	}
	return paths, nil
}

// stage writes data to a new temporary file in path's directory and returns
// its name.
func stage(path string, data []byte) (string, error) {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeIO, err, "write %s", path)
	}
	tmp := f.Name()
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmp)
		return "", errors.Wrap(errors.ErrCodeIO, err, "write %s", path)
	}
	if err := f.Chmod(outputPerm); err != nil {
		f.Close()
		os.Remove(tmp)
		return "", errors.Wrap(errors.ErrCodeIO, err, "write %s", path)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return "", errors.Wrap(errors.ErrCodeIO, err, "write %s", path)
	}
	return tmp, nil
}
