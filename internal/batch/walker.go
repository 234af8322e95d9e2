// Package batch runs the endpoint-detection pipeline over a recording
// tree: it collects WAV files, mirrors the directory structure into the
// destination, processes files on a worker pool, and emits the feature
// report. Per-file failures never abort the batch.
package batch

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// targetWordPattern extracts the target word from a recording filename.
// The naming convention wraps the word in parentheses, e.g.
// "S04_trial12_(palo).wav".
var targetWordPattern = regexp.MustCompile(`\((.*?)\)`)

// CollectWAVs walks the source tree and returns the relative paths of all
// WAV files in lexical walk order. This order is the canonical file index
// for the batch: outcome slices and report rows follow it.
func CollectWAVs(source string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(source, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !strings.EqualFold(filepath.Ext(path), ".wav") {
			return nil
		}
		rel, err := filepath.Rel(source, path)
		if err != nil {
			return err
		}
		files = append(files, rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking source tree: %w", err)
	}
	return files, nil
}

// MirrorTree recreates every directory of the source tree under dest
// before any file is processed, so concurrent workers never race on
// directory creation.
func MirrorTree(source, dest string) error {
	err := filepath.WalkDir(source, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(source, path)
		if err != nil {
			return err
		}
		return os.MkdirAll(filepath.Join(dest, rel), 0o755)
	})
	if err != nil {
		return fmt.Errorf("mirroring directory tree: %w", err)
	}
	return nil
}

// TargetWord extracts the parenthesized target word from a recording's
// filename. Returns an error when the convention is not followed; the
// file is then counted as failed rather than guessed at.
func TargetWord(path string) (string, error) {
	base := filepath.Base(path)
	m := targetWordPattern.FindStringSubmatch(base)
	if m == nil {
		return "", fmt.Errorf("%s: no parenthesized target word in filename", base)
	}
	word := strings.TrimSpace(m[1])
	if word == "" {
		return "", fmt.Errorf("%s: empty target word in filename", base)
	}
	return word, nil
}
