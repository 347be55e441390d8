package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/spendscope/spendscope/internal/model"
)

// ErrMissingCategories is returned when a category document has no categories list.
var ErrMissingCategories = errors.New("category document has no categories list")

// Catalog maps opaque category ids to names and descriptions. It is immutable
// after construction and safe to share between goroutines.
type Catalog struct {
	categories []model.Category
	byID       map[string]model.Category
	tags       []string
}

// New creates a Catalog from categories and tag labels. Later duplicates of an id win.
func New(categories []model.Category, tags []string) *Catalog {
	byID := make(map[string]model.Category, len(categories))
	for _, c := range categories {
		byID[c.ID] = c
	}
	return &Catalog{
		categories: append([]model.Category(nil), categories...),
		byID:       byID,
		tags:       append([]string(nil), tags...),
	}
}

type document struct {
	Tags       []string        `json:"tags"`
	Categories *[]categoryJSON `json:"categories"`
}

type categoryJSON struct {
	ID          json.RawMessage `json:"id"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
}

// Read decodes a category document: {"tags": [...], "categories": [{"id", "category", "description"}]}.
func Read(r io.Reader) (*Catalog, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding category document: %w", err)
	}
	if doc.Categories == nil {
		return nil, ErrMissingCategories
	}

	categories := make([]model.Category, 0, len(*doc.Categories))
	for i, c := range *doc.Categories {
		id, err := ID(c.ID)
		if err != nil {
			return nil, fmt.Errorf("category %d: %w", i, err)
		}
		categories = append(categories, model.Category{
			ID:          id,
			Name:        c.Category,
			Description: c.Description,
		})
	}
	return New(categories, doc.Tags), nil
}

// Load reads a category document from disk.
func Load(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening categories %s: %w", path, err)
	}
	defer f.Close()

	c, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("reading categories %s: %w", path, err)
	}
	return c, nil
}

// All returns all categories ordered by name.
func (c *Catalog) All() []model.Category {
	out := append([]model.Category(nil), c.categories...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Tags returns the known tag labels.
func (c *Catalog) Tags() []string {
	return append([]string(nil), c.tags...)
}

// Get returns a category by id.
func (c *Catalog) Get(id string) (model.Category, bool) {
	cat, ok := c.byID[id]
	return cat, ok
}

// Exists reports whether a category id is known.
func (c *Catalog) Exists(id string) bool {
	_, ok := c.byID[id]
	return ok
}

// Name resolves an id to its category name, or model.UnknownCategory.
func (c *Catalog) Name(id string) string {
	if cat, ok := c.byID[id]; ok {
		return cat.Name
	}
	return model.UnknownCategory
}

// Len returns the number of categories.
func (c *Catalog) Len() int {
	return len(c.byID)
}
