// Package catalog (service) imports raw product rows into the catalog DB.
// Rows arrive as loosely typed JSON objects (admin uploads, scraped feeds);
// mapstructure with decode hooks turns them into catalog records, invalid
// records are skipped with a warning rather than failing the run.
package catalog

import (
	"fmt"
	"reflect"
	"time"

	"github.com/mitchellh/mapstructure"
	"gorm.io/gorm"

	"phuler.GO/catalog"
	catalogRepo "phuler.GO/model/repository/catalog"
)

// Result holds counters from an import run.
type Result struct {
	TotalRows int
	Imported  int
	Skipped   int
	Warnings  []string
	TotalTime time.Duration
}

// stringToDateHook parses "2006-01-02" strings into catalog.Date.
func stringToDateHook() mapstructure.DecodeHookFunc {
	dateType := reflect.TypeOf(catalog.Date{})
	return func(f, t reflect.Type, data interface{}) (interface{}, error) {
		if t != dateType || f.Kind() != reflect.String {
			return data, nil
		}
		parsed, err := time.Parse("2006-01-02", data.(string))
		if err != nil {
			return nil, err
		}
		return catalog.Date{Time: parsed}, nil
	}
}

// numberKeyedMapHook accepts review distributions whose keys arrived as
// numbers (JSON re-encoders sometimes emit 5 instead of "5").
func numberKeyedMapHook() mapstructure.DecodeHookFunc {
	distType := reflect.TypeOf(map[string]float64(nil))
	return func(f, t reflect.Type, data interface{}) (interface{}, error) {
		if t != distType {
			return data, nil
		}
		raw, ok := data.(map[interface{}]interface{})
		if !ok {
			return data, nil
		}
		out := make(map[string]interface{}, len(raw))
		for k, v := range raw {
			out[fmt.Sprint(k)] = v
		}
		return out, nil
	}
}

var rowDecodeHook = mapstructure.ComposeDecodeHookFunc(
	stringToDateHook(),
	numberKeyedMapHook(),
)

// DecodeRow turns one raw row into a Product.
func DecodeRow(row map[string]interface{}) (catalog.Product, error) {
	var p catalog.Product
	cfg := &mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		DecodeHook:       rowDecodeHook,
		Result:           &p,
		TagName:          "json",
		ZeroFields:       true,
	}
	dec, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return p, err
	}
	if err := dec.Decode(row); err != nil {
		return p, err
	}
	return p, nil
}

// ImportJSON decodes, validates and upserts rows in batches.
func ImportJSON(db *gorm.DB, rows []map[string]interface{}, batchSize int) (*Result, error) {
	start := time.Now()
	if batchSize <= 0 {
		batchSize = 100
	}

	repo := catalogRepo.NewCatalogRepository(db)
	if err := repo.Migrate(); err != nil {
		return nil, fmt.Errorf("migrate catalog: %w", err)
	}

	result := &Result{TotalRows: len(rows)}
	products := make([]catalog.Product, 0, len(rows))
	for i, row := range rows {
		p, err := DecodeRow(row)
		if err != nil {
			result.Skipped++
			result.Warnings = append(result.Warnings, fmt.Sprintf("row %d: %v", i, err))
			continue
		}
		if err := p.Validate(); err != nil {
			result.Skipped++
			result.Warnings = append(result.Warnings, fmt.Sprintf("row %d: %v", i, err))
			continue
		}
		products = append(products, p)
	}

	if len(products) > 0 {
		if err := repo.UpsertBatch(products, batchSize); err != nil {
			return nil, fmt.Errorf("upsert products: %w", err)
		}
	}
	result.Imported = len(products)
	result.TotalTime = time.Since(start)
	return result, nil
}

// LoadCatalog builds the in-memory catalog from the DB, falling back to the
// embedded seed when the table is empty or missing.
func LoadCatalog(db *gorm.DB) (*catalog.Catalog, error) {
	if db != nil {
		repo := catalogRepo.NewCatalogRepository(db)
		if n, err := repo.Count(); err == nil && n > 0 {
			products, err := repo.FetchAll()
			if err != nil {
				return nil, err
			}
			return catalog.New(products), nil
		}
	}
	return catalog.LoadSeed()
}
