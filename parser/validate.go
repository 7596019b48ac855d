package parser

import (
	"fmt"
	"strings"

	"github.com/aluiziolira/go-scrape-prices/models"
)

// ValidateRecord ensures the extraction produced an emittable record.
func ValidateRecord(r *models.ProductRecord) error {
	if r == nil {
		return fmt.Errorf("record is nil")
	}
	if strings.TrimSpace(r.ProductName) == "" {
		return fmt.Errorf("record missing product name")
	}
	if strings.TrimSpace(r.ProductURL) == "" {
		return fmt.Errorf("record missing product url for %s", r.ProductName)
	}
	if r.LowestPrice != nil && *r.LowestPrice < 0 {
		return fmt.Errorf("negative lowest price for %s", r.ProductName)
	}
	if r.HighestPrice != nil && *r.HighestPrice < 0 {
		return fmt.Errorf("negative highest price for %s", r.ProductName)
	}
	return nil
}
