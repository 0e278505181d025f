package purchase

import "github.com/nexuscrm/backend/internal/domain/shared"

// toSharedFilter converts the transport-level list options into a repository
// filter, applying pagination defaults and merging resource-specific filters.
func toSharedFilter(f ListFilter, extra map[string]interface{}) shared.Filter {
	out := shared.DefaultFilter()
	out.Search = f.Search
	if f.Page > 0 {
		out.Page = f.Page
	}
	if f.PageSize > 0 {
		out.PageSize = f.PageSize
	}
	if f.OrderBy != "" {
		out.OrderBy = f.OrderBy
	}
	if f.OrderDir != "" {
		out.OrderDir = f.OrderDir
	}
	for k, v := range extra {
		out.Filters[k] = v
	}
	return out
}
