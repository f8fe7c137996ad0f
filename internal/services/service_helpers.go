package services

import (
	"fmt"
	"time"

	"gorm.io/datatypes"

	"github.com/SAP-F-2025/academic-records-service/internal/models"
	"github.com/SAP-F-2025/academic-records-service/internal/repositories"
)

const defaultPageSize = 20

// normalizeListParams fills page defaults so repositories never see a zero size.
func normalizeListParams(params models.ListParams) models.ListParams {
	if params.Size <= 0 {
		params.Size = defaultPageSize
	}
	if params.Size > 100 {
		params.Size = 100
	}
	if params.Page < 0 {
		params.Page = 0
	}
	return params
}

// toListFilters converts page-based params to the offset-based repository filters.
func toListFilters(params models.ListParams) repositories.ListFilters {
	params = normalizeListParams(params)
	return repositories.ListFilters{
		Query:     params.Search,
		Limit:     params.Size,
		Offset:    params.Page * params.Size,
		SortBy:    params.SortBy,
		SortOrder: params.SortDir,
	}
}

// parseEnrollmentDate converts the wire format (2006-01-02) into a date value.
func parseEnrollmentDate(value string) (*datatypes.Date, error) {
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, fmt.Errorf("parse enrollment date: %w", err)
	}
	date := datatypes.Date(parsed)
	return &date, nil
}
