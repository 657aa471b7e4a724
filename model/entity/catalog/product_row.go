package catalog

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"

	"phuler.GO/catalog"
)

// ProductRow represents the phuler_catalog_product table. Structured fields
// (options, images, features, review distribution) are stored as JSON
// columns; the row converts to and from the in-memory catalog.Product.
type ProductRow struct {
	ID                 uint           `gorm:"column:entity_id;primaryKey" json:"id"`
	Name               string         `gorm:"column:name;size:255;not null" json:"name"`
	Category           string         `gorm:"column:category;size:64;index" json:"category"`
	Collection         string         `gorm:"column:collection;size:64;index" json:"collection"`
	Price              float64        `gorm:"column:price;type:decimal(12,4);not null" json:"price"`
	SalePrice          *float64       `gorm:"column:sale_price;type:decimal(12,4)" json:"sale_price,omitempty"`
	Material           string         `gorm:"column:material;size:128" json:"material"`
	IsNew              bool           `gorm:"column:is_new;not null;default:0" json:"is_new"`
	IsBestseller       bool           `gorm:"column:is_bestseller;not null;default:0" json:"is_bestseller"`
	Rating             float64        `gorm:"column:rating;type:decimal(3,2);not null;default:0" json:"rating"`
	ReviewCount        int            `gorm:"column:review_count;not null;default:0" json:"review_count"`
	ReviewDistribution datatypes.JSON `gorm:"column:review_distribution" json:"review_distribution,omitempty"`
	ShortDescription   string         `gorm:"column:short_description;type:text" json:"short_description"`
	Description        string         `gorm:"column:description;type:text" json:"description"`
	Dimensions         string         `gorm:"column:dimensions;size:128" json:"dimensions,omitempty"`
	Weight             string         `gorm:"column:weight;size:64" json:"weight,omitempty"`
	Features           datatypes.JSON `gorm:"column:features" json:"features,omitempty"`
	Options            datatypes.JSON `gorm:"column:options" json:"options,omitempty"`
	Images             datatypes.JSON `gorm:"column:images;not null" json:"images"`
	CreatedAt          time.Time      `gorm:"column:created_at" json:"created_at"`
	UpdatedAt          time.Time      `gorm:"column:updated_at" json:"updated_at"`
}

func (ProductRow) TableName() string {
	return "phuler_catalog_product"
}

// ToProduct converts a row into the in-memory catalog record.
func (r *ProductRow) ToProduct() (catalog.Product, error) {
	p := catalog.Product{
		ID:               r.ID,
		Name:             r.Name,
		Category:         r.Category,
		Collection:       r.Collection,
		Price:            r.Price,
		Material:         r.Material,
		IsNew:            r.IsNew,
		IsBestseller:     r.IsBestseller,
		Rating:           r.Rating,
		ReviewCount:      r.ReviewCount,
		ShortDescription: r.ShortDescription,
		Description:      r.Description,
		Dimensions:       r.Dimensions,
		Weight:           r.Weight,
		CreatedAt:        catalog.Date{Time: r.CreatedAt},
	}
	if r.SalePrice != nil {
		v := *r.SalePrice
		p.SalePrice = &v
	}
	if len(r.Images) > 0 {
		if err := json.Unmarshal(r.Images, &p.Images); err != nil {
			return p, err
		}
	}
	if len(r.Features) > 0 {
		if err := json.Unmarshal(r.Features, &p.Features); err != nil {
			return p, err
		}
	}
	if len(r.Options) > 0 {
		if err := json.Unmarshal(r.Options, &p.Options); err != nil {
			return p, err
		}
	}
	if len(r.ReviewDistribution) > 0 {
		if err := json.Unmarshal(r.ReviewDistribution, &p.ReviewDistribution); err != nil {
			return p, err
		}
	}
	return p, nil
}

// FromProduct builds a row from a catalog record.
func FromProduct(p *catalog.Product) (*ProductRow, error) {
	row := &ProductRow{
		ID:               p.ID,
		Name:             p.Name,
		Category:         p.Category,
		Collection:       p.Collection,
		Price:            p.Price,
		Material:         p.Material,
		IsNew:            p.IsNew,
		IsBestseller:     p.IsBestseller,
		Rating:           p.Rating,
		ReviewCount:      p.ReviewCount,
		ShortDescription: p.ShortDescription,
		Description:      p.Description,
		Dimensions:       p.Dimensions,
		Weight:           p.Weight,
		CreatedAt:        p.CreatedAt.Time,
	}
	if p.SalePrice != nil {
		v := *p.SalePrice
		row.SalePrice = &v
	}
	var err error
	if row.Images, err = json.Marshal(p.Images); err != nil {
		return nil, err
	}
	if len(p.Features) > 0 {
		if row.Features, err = json.Marshal(p.Features); err != nil {
			return nil, err
		}
	}
	if len(p.Options) > 0 {
		if row.Options, err = json.Marshal(p.Options); err != nil {
			return nil, err
		}
	}
	if len(p.ReviewDistribution) > 0 {
		if row.ReviewDistribution, err = json.Marshal(p.ReviewDistribution); err != nil {
			return nil, err
		}
	}
	return row, nil
}
