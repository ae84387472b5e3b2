package kb

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/soutienhq/soutien/core"
)

// ReadCorpus reads every .md document under dir, in file-name order, and
// returns the chunked corpus. A missing or empty directory yields an empty
// corpus, not an error; per-file read failures abort since a partially
// read corpus would silently change chunk identity.
func ReadCorpus(dir string, maxLen int) ([]core.Chunk, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading corpus dir %s: %w", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".md" {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	var chunks []core.Chunk
	for _, name := range names {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading corpus file %s: %w", path, err)
		}
		for _, content := range ChunkText(string(data), maxLen) {
			chunks = append(chunks, core.Chunk{Content: content, Source: path})
		}
	}
	return chunks, nil
}
