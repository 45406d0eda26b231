package serializer

import "github.com/mdouchement/lists/internal/model"

// List serializes the render of a list.
func List(m *model.List) map[string]any {
	return map[string]any{
		"id":             m.ID,
		"name":           m.Name,
		"description":    m.Description,
		"type":           m.Type,
		"created_at":     m.CreatedAt.UTC(),
		"updated_at":     m.UpdatedAt.UTC(),
		"created_by":     m.CreatedBy,
		"updated_by":     m.UpdatedBy,
		"tie_breaker_id": m.TieBreakerID,
	}
}

// ListItem serializes the render of a list item.
func ListItem(m *model.ListItem) map[string]any {
	return map[string]any{
		"id":             m.ID,
		"list_id":        m.ListID,
		"type":           m.Type,
		"value":          m.Value,
		"created_at":     m.CreatedAt.UTC(),
		"updated_at":     m.UpdatedAt.UTC(),
		"created_by":     m.CreatedBy,
		"updated_by":     m.UpdatedBy,
		"tie_breaker_id": m.TieBreakerID,
	}
}

// ListItems serializes the render of several list items.
func ListItems(ms []*model.ListItem) []map[string]any {
	r := make([]map[string]any, 0, len(ms))
	for _, m := range ms {
		r = append(r, ListItem(m))
	}
	return r
}
