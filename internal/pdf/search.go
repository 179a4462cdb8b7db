package pdf

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
)

// minQueryScore is the Jaro-Winkler similarity a file name needs to match
// a query it does not literally contain.
const minQueryScore = 0.85

// Search handles certificate discovery in a directory
type Search struct {
	maxFileSize int64
	validator   *Validator
	metric      strutil.StringMetric
}

// NewSearch creates a search handler limited to files of at most maxFileSize bytes
func NewSearch(maxFileSize int64) *Search {
	return &Search{
		maxFileSize: maxFileSize,
		validator:   NewValidator(maxFileSize),
		metric:      metrics.NewJaroWinkler(),
	}
}

// SearchDirectory lists the PDF files under a directory, optionally filtered
// by a fuzzy query on the file name. With a query, results are ordered by
// score, best first.
func (s *Search) SearchDirectory(req CertificateSearchDirectoryRequest) (*CertificateSearchDirectoryResult, error) {
	if req.Directory == "" {
		return nil, fmt.Errorf("directory cannot be empty")
	}

	if _, err := os.Stat(req.Directory); os.IsNotExist(err) {
		return nil, fmt.Errorf("directory does not exist: %s", req.Directory)
	}

	absDirectory, err := filepath.Abs(req.Directory)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve directory path: %w", err)
	}

	query := strings.ToLower(strings.TrimSpace(req.Query))
	files := []FileInfo{}

	err = filepath.WalkDir(absDirectory, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil //nolint:nilerr // Intentionally continue on file errors
		}

		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && path != absDirectory {
				return filepath.SkipDir
			}
			return nil
		}

		if !isPDFName(d.Name()) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return nil //nolint:nilerr // Intentionally continue on file errors
		}

		if err := s.validator.ValidateFileInfo(path, info); err != nil {
			return nil //nolint:nilerr // Skip invalid files but continue processing
		}

		score, ok := s.matchQuery(info.Name(), query)
		if !ok {
			return nil
		}

		files = append(files, FileInfo{
			Path:         path,
			Name:         info.Name(),
			Size:         info.Size(),
			ModifiedTime: info.ModTime().Format("2006-01-02 15:04:05"),
			Score:        score,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error walking directory: %w", err)
	}

	if query != "" {
		sort.SliceStable(files, func(i, j int) bool { return files[i].Score > files[j].Score })
	}

	return &CertificateSearchDirectoryResult{
		Files:       files,
		TotalCount:  len(files),
		Directory:   absDirectory,
		SearchQuery: req.Query,
	}, nil
}

// matchQuery scores a file name against a lower-cased query. A literal
// substring match scores 1; otherwise the best Jaro-Winkler similarity
// between the query and any word of the name must reach minQueryScore.
func (s *Search) matchQuery(filename, query string) (float64, bool) {
	if query == "" {
		return 0, true
	}

	name := strings.TrimSuffix(strings.ToLower(filename), ".pdf")
	if strings.Contains(name, query) {
		return 1, true
	}

	best := strutil.Similarity(name, query, s.metric)
	for _, word := range splitIntoWords(name) {
		if score := strutil.Similarity(word, query, s.metric); score > best {
			best = score
		}
	}
	return best, best >= minQueryScore
}

// splitIntoWords splits a file name on common separators
func splitIntoWords(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		switch r {
		case ' ', '_', '-', '.', '(', ')', '[', ']':
			return true
		}
		return false
	})
}

// FindPDFsInDirectoryLimited lists up to limit PDF files under a directory,
// in walk order.
func (s *Search) FindPDFsInDirectoryLimited(directory string, limit int) ([]FileInfo, error) {
	result, err := s.SearchDirectory(CertificateSearchDirectoryRequest{Directory: directory})
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(result.Files) > limit {
		return result.Files[:limit], nil
	}
	return result.Files, nil
}
