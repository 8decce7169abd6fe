package search

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"
	"github.com/blevesearch/bleve/v2/analysis/lang/en"
	"github.com/blevesearch/bleve/v2/mapping"
)

// mappingVersion changes whenever buildIndexMapping does. An index recorded
// under another version is recreated on open.
const mappingVersion = "2"

// versionFile sits next to the index directory and holds mappingVersion.
const versionFile = "search.version"

// storedMappingVersion returns the version recorded in dir, or "" when none is.
func storedMappingVersion(dir string) string {
	b, err := os.ReadFile(filepath.Join(dir, versionFile))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(b))
}

func recordMappingVersion(dir string) error {
	return os.WriteFile(filepath.Join(dir, versionFile), []byte(mappingVersion), 0o644)
}

// buildIndexMapping creates the Bleve index mapping for catalog documents.
//
// Names use the standard analyzer: gear names are model names ("Sonic 2.0",
// "Mantra") where English stemming does more harm than good. Descriptions
// get the English analyzer. Type, material and brand are also indexed as
// keywords for filtering and facets, and names once more as a single
// keyword term so name sorting is by the whole name.
func buildIndexMapping() mapping.IndexMapping {
	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultAnalyzer = standard.Name

	docMapping := bleve.NewDocumentMapping()

	// --- Text fields ---

	nameFieldMapping := bleve.NewTextFieldMapping()
	nameFieldMapping.Analyzer = standard.Name
	nameFieldMapping.Store = true
	nameFieldMapping.IncludeTermVectors = true // For highlighting
	nameSortMapping := bleve.NewTextFieldMapping()
	nameSortMapping.Name = "name_sort"
	nameSortMapping.Analyzer = keyword.Name
	nameSortMapping.IncludeInAll = false
	docMapping.AddFieldMappingsAt("name", nameFieldMapping, nameSortMapping)

	// Brand name is searchable text and an exact facet via a second field.
	brandTextMapping := bleve.NewTextFieldMapping()
	brandTextMapping.Analyzer = standard.Name
	brandTextMapping.Store = true
	brandTextMapping.IncludeTermVectors = true
	brandKeywordMapping := bleve.NewTextFieldMapping()
	brandKeywordMapping.Name = "brand_exact"
	brandKeywordMapping.Analyzer = keyword.Name
	brandKeywordMapping.IncludeInAll = false
	docMapping.AddFieldMappingsAt("brand_name", brandTextMapping, brandKeywordMapping)

	descFieldMapping := bleve.NewTextFieldMapping()
	descFieldMapping.Analyzer = en.AnalyzerName
	descFieldMapping.Store = false
	docMapping.AddFieldMappingsAt("description", descFieldMapping)

	countryFieldMapping := bleve.NewTextFieldMapping()
	countryFieldMapping.Analyzer = standard.Name
	countryFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("country", countryFieldMapping)

	// --- Keyword fields (exact match, facetable) ---

	typeFieldMapping := bleve.NewTextFieldMapping()
	typeFieldMapping.Analyzer = keyword.Name
	typeFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("type", typeFieldMapping)

	idFieldMapping := bleve.NewTextFieldMapping()
	idFieldMapping.Analyzer = keyword.Name
	docMapping.AddFieldMappingsAt("id", idFieldMapping)

	materialFieldMapping := bleve.NewTextFieldMapping()
	materialFieldMapping.Analyzer = keyword.Name
	materialFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("material", materialFieldMapping)

	isaFieldMapping := bleve.NewBooleanFieldMapping()
	isaFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("isa_certified", isaFieldMapping)

	// --- Numeric fields (range queries, sorting) ---

	entityIDFieldMapping := bleve.NewNumericFieldMapping()
	entityIDFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("entity_id", entityIDFieldMapping)

	widthFieldMapping := bleve.NewNumericFieldMapping()
	widthFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("width", widthFieldMapping)

	strengthFieldMapping := bleve.NewNumericFieldMapping()
	strengthFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("breaking_strength", strengthFieldMapping)

	indexMapping.AddDocumentMapping("_default", docMapping)

	return indexMapping
}
