package main

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	sed "github.com/rwtodd/tealsed"
)

// editInPlace runs the engine over filename into a temporary file next to
// it, then renames the temporary file over the original. The original is
// left alone when anything fails.
func editInPlace(engine *sed.Engine, logger *zap.Logger, filename string) (err error) {
	input, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("opening input: %w", err)
	}
	defer input.Close()

	stat, err := input.Stat()
	if err != nil {
		return fmt.Errorf("stat of %q failed: %w", filename, err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(filename), filepath.Base(filename)+"-*")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	defer func() {
		if err != nil {
			tempFile.Close()
			os.Remove(tempFile.Name())
		}
	}()

	if err = engine.Run(tempFile, input); err != nil {
		return fmt.Errorf("editing %q: %w", filename, err)
	}
	if err = tempFile.Chmod(stat.Mode()); err != nil {
		return fmt.Errorf("set mode of %q failed: %w", tempFile.Name(), err)
	}
	if err = tempFile.Close(); err != nil {
		return fmt.Errorf("closing temporary file %q failed: %w", tempFile.Name(), err)
	}

	if cerr := chown(tempFile.Name(), stat); cerr != nil {
		// errors might be platform related, just warn
		logger.Warn("failed to set UID/GID on temporary file",
			zap.String("file", tempFile.Name()), zap.Error(cerr))
	}

	if err = os.Rename(tempFile.Name(), filename); err != nil {
		return fmt.Errorf("renaming %q to %q failed: %w", tempFile.Name(), filename, err)
	}
	logger.Debug("edited in place", zap.String("file", filename))
	return nil
}
