package search

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/blevesearch/bleve/v2"

	"github.com/slackdb/slackdb-server/internal/domain"
)

// indexDir is the Bleve directory inside the search data path.
const indexDir = "catalog.bleve"

// putBatchSize bounds the number of documents in one Bleve batch.
const putBatchSize = 500

// SearchIndex is the on-disk Bleve index of catalog documents. Documents are
// keyed by DocumentID, so every brand or gear row owns at most one entry.
//
// All methods are safe for concurrent use.
type SearchIndex struct {
	mu     sync.RWMutex
	idx    bleve.Index
	dir    string
	logger *slog.Logger
}

// Options configures the search index.
type Options struct {
	DataPath string
	Logger   *slog.Logger
}

// NewSearchIndex opens the catalog index under opts.DataPath, creating it when
// missing. An index that cannot be opened, or that was written under another
// mapping version, is replaced by an empty one and must be reindexed.
func NewSearchIndex(opts Options) (*SearchIndex, error) {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	if err := os.MkdirAll(opts.DataPath, 0o755); err != nil {
		return nil, fmt.Errorf("create search directory: %w", err)
	}

	s := &SearchIndex{dir: opts.DataPath, logger: log}
	idx, err := s.open()
	if err != nil {
		return nil, err
	}
	s.idx = idx
	return s, nil
}

func (s *SearchIndex) path() string {
	return filepath.Join(s.dir, indexDir)
}

func (s *SearchIndex) open() (bleve.Index, error) {
	if _, err := os.Stat(s.path()); err != nil {
		return s.create()
	}

	if v := storedMappingVersion(s.dir); v != mappingVersion {
		s.logger.Info("search mapping version changed, recreating index",
			"old_version", v,
			"new_version", mappingVersion,
		)
		return s.create()
	}

	idx, err := bleve.Open(s.path())
	if err != nil {
		s.logger.Warn("search index unreadable, recreating", "path", s.path(), "error", err)
		return s.create()
	}
	s.logger.Info("opened search index", "path", s.path())
	return idx, nil
}

// create replaces whatever sits at the index path with an empty index.
func (s *SearchIndex) create() (bleve.Index, error) {
	if err := os.RemoveAll(s.path()); err != nil {
		return nil, fmt.Errorf("remove old index: %w", err)
	}
	idx, err := bleve.New(s.path(), buildIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("create index: %w", err)
	}
	if err := recordMappingVersion(s.dir); err != nil {
		s.logger.Warn("failed to record search mapping version", "error", err)
	}
	s.logger.Info("created search index", "path", s.path(), "mapping_version", mappingVersion)
	return idx, nil
}

// Close releases the index.
func (s *SearchIndex) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.idx.Close()
}

// Put indexes doc, replacing any earlier document of the same entity.
func (s *SearchIndex) Put(doc *SearchDocument) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.idx.Index(doc.ID, doc.ToMap()); err != nil {
		return fmt.Errorf("index %s: %w", doc.ID, err)
	}
	return nil
}

// PutAll indexes docs in batches of putBatchSize.
func (s *SearchIndex) PutAll(docs []*SearchDocument) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for chunk := range slices.Chunk(docs, putBatchSize) {
		batch := s.idx.NewBatch()
		for _, doc := range chunk {
			if err := batch.Index(doc.ID, doc.ToMap()); err != nil {
				return fmt.Errorf("batch index %s: %w", doc.ID, err)
			}
		}
		if err := s.idx.Batch(batch); err != nil {
			return fmt.Errorf("commit %d documents: %w", len(chunk), err)
		}
	}
	return nil
}

// Delete removes the document of one entity. A missing document is not an
// error.
func (s *SearchIndex) Delete(kind domain.Kind, id int64) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.idx.Delete(DocumentID(kind, id))
}

// Prune deletes every document whose id is not in keep and returns how many
// were removed.
func (s *SearchIndex) Prune(keep map[string]struct{}) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids, err := s.ids()
	if err != nil {
		return 0, err
	}

	batch := s.idx.NewBatch()
	for _, id := range ids {
		if _, ok := keep[id]; !ok {
			batch.Delete(id)
		}
	}
	n := batch.Size()
	if n == 0 {
		return 0, nil
	}
	if err := s.idx.Batch(batch); err != nil {
		return 0, fmt.Errorf("prune %d documents: %w", n, err)
	}
	return n, nil
}

// ids lists every document id in the index. The caller holds s.mu.
func (s *SearchIndex) ids() ([]string, error) {
	total, err := s.idx.DocCount()
	if err != nil {
		return nil, fmt.Errorf("count documents: %w", err)
	}
	if total == 0 {
		return nil, nil
	}

	req := bleve.NewSearchRequestOptions(bleve.NewMatchAllQuery(), int(total), 0, false)
	res, err := s.idx.Search(req)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	ids := make([]string, 0, len(res.Hits))
	for _, hit := range res.Hits {
		ids = append(ids, hit.ID)
	}
	return ids, nil
}

// DocumentCount returns the number of indexed documents.
func (s *SearchIndex) DocumentCount() (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.idx.DocCount()
}
