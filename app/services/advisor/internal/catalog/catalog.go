package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/zeromicro/go-zero/core/logx"
)

// Entry is one laptop record. Price is in INR; Features is the free-text
// description the matching engine derives a partial profile from.
type Entry struct {
	Brand    string `json:"brand"`
	Model    string `json:"model"`
	Price    int64  `json:"price"`
	Features string `json:"-"`
}

// Catalog is an immutable snapshot of the laptop table, loaded once at
// startup and read lock-free by all sessions.
type Catalog struct {
	entries []Entry
}

// Load reads a CSV catalog. Required columns: Price and laptop_feature;
// Brand and Model Name are carried through when present. Prices tolerate
// comma thousands separators; an unreadable price defaults to zero rather
// than dropping the row.
func Load(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	return parse(csv.NewReader(f))
}

// MustLoad is Load that panics on failure, for service bootstrap.
func MustLoad(path string) *Catalog {
	c, err := Load(path)
	if err != nil {
		logx.Must(err)
	}
	return c
}

func (c *Catalog) Entries() []Entry {
	return c.entries
}

func (c *Catalog) Len() int {
	return len(c.entries)
}

func parse(r *csv.Reader) (*Catalog, error) {
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read catalog header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}

	priceIdx, ok := cols["price"]
	if !ok {
		return nil, fmt.Errorf("catalog missing Price column")
	}
	featureIdx, ok := cols["laptop_feature"]
	if !ok {
		return nil, fmt.Errorf("catalog missing laptop_feature column")
	}
	brandIdx, hasBrand := cols["brand"]
	modelIdx, hasModel := cols["model name"]

	var entries []Entry
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read catalog row: %w", err)
		}
		if priceIdx >= len(record) || featureIdx >= len(record) {
			continue
		}

		entry := Entry{
			Price:    parsePrice(record[priceIdx]),
			Features: strings.TrimSpace(record[featureIdx]),
		}
		if hasBrand && brandIdx < len(record) {
			entry.Brand = strings.TrimSpace(record[brandIdx])
		}
		if hasModel && modelIdx < len(record) {
			entry.Model = strings.TrimSpace(record[modelIdx])
		}
		entries = append(entries, entry)
	}

	return &Catalog{entries: entries}, nil
}

func parsePrice(s string) int64 {
	cleaned := strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if cleaned == "" {
		return 0
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || v < 0 {
		return 0
	}
	return int64(v)
}
