package catalog

import (
	"sort"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"phuler.GO/catalog"
	catalogEntity "phuler.GO/model/entity/catalog"
)

// CatalogRepository reads and writes catalog rows. The storefront runs from
// the in-memory catalog; this repository backs imports and DB-sourced loads.
type CatalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// Migrate creates the catalog table.
func (r *CatalogRepository) Migrate() error {
	return r.db.AutoMigrate(&catalogEntity.ProductRow{})
}

// FetchAll returns all products ordered by entity id (the featured order).
func (r *CatalogRepository) FetchAll() ([]catalog.Product, error) {
	var rows []catalogEntity.ProductRow
	if err := r.db.Order("entity_id").Find(&rows).Error; err != nil {
		return nil, err
	}
	products := make([]catalog.Product, 0, len(rows))
	for i := range rows {
		p, err := rows[i].ToProduct()
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, nil
}

// FetchByIDs returns the products with the given ids, ordered by id.
func (r *CatalogRepository) FetchByIDs(ids []uint) ([]catalog.Product, error) {
	var rows []catalogEntity.ProductRow
	if err := r.db.Where("entity_id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].ID < rows[j].ID })
	products := make([]catalog.Product, 0, len(rows))
	for i := range rows {
		p, err := rows[i].ToProduct()
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, nil
}

// UpsertBatch inserts or replaces products in batches of batchSize.
func (r *CatalogRepository) UpsertBatch(products []catalog.Product, batchSize int) error {
	if batchSize <= 0 {
		batchSize = 100
	}
	rows := make([]catalogEntity.ProductRow, 0, len(products))
	for i := range products {
		row, err := catalogEntity.FromProduct(&products[i])
		if err != nil {
			return err
		}
		rows = append(rows, *row)
	}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "entity_id"}},
		UpdateAll: true,
	}).CreateInBatches(rows, batchSize).Error
}

// Count returns the number of catalog rows.
func (r *CatalogRepository) Count() (int64, error) {
	var n int64
	err := r.db.Model(&catalogEntity.ProductRow{}).Count(&n).Error
	return n, err
}
