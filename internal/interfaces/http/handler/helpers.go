package handler

import (
	"github.com/invoicemgr/backend/internal/domain/shared"
	"github.com/invoicemgr/backend/internal/interfaces/http/dto"
)

// toFilter converts the common list query parameters into a repository
// filter, applying pagination defaults
func toFilter(req dto.ListRequest) shared.Filter {
	filter := shared.DefaultFilter()
	if req.Page > 0 {
		filter.Page = req.Page
	}
	if req.PageSize > 0 {
		filter.PageSize = req.PageSize
	}
	if req.SortBy != "" {
		filter.OrderBy = req.SortBy
	}
	if req.SortOrder != "" {
		filter.OrderDir = req.SortOrder
	}
	filter.Search = req.Search
	return filter
}
