package fuzztests

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const (
	maxSeedBytes = 64 << 10
	maxFuzzInput = 16 << 10
)

func addCorpusSeeds(f *testing.F) {
	addTestdataSeeds(f)
	addMarkdownSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "project", "testdata")
	if _, err := os.Stat(root); err == nil {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
			if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".toml" {
				return nil
			}
			// #nosec G304 -- path comes from repository testdata walk
			src, err := os.ReadFile(path)
			if err != nil {
				return nil
			}
			f.Add(clampSeed(src))
			return nil
		})
	}
	f.Add([]byte{})
	f.Add([]byte("[[types]]\nname = \"A\"\n"))
}

// addMarkdownSeeds adds every ```toml block of the top-level markdown files.
func addMarkdownSeeds(f *testing.F) {
	docs, _ := filepath.Glob(filepath.Join("..", "..", "*.md"))
	for _, doc := range docs {
		// #nosec G304 -- path comes from a glob over the repository root
		data, err := os.ReadFile(doc)
		if err != nil {
			continue
		}
		addTomlBlocks(f, data)
	}
}

func addTomlBlocks(f *testing.F, data []byte) {
	var block [][]byte
	inBlock := false
	for _, line := range bytes.Split(data, []byte{'\n'}) {
		trimmed := strings.TrimSpace(string(line))
		switch {
		case strings.HasPrefix(trimmed, "```toml"):
			inBlock = true
			block = block[:0]
		case strings.HasPrefix(trimmed, "```"):
			if inBlock {
				if snippet := clampSeed(bytes.Join(block, []byte{'\n'})); len(snippet) > 0 {
					f.Add(snippet)
				}
			}
			inBlock = false
			block = block[:0]
		case inBlock:
			block = append(block, line)
		}
	}
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}
