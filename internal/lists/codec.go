package lists

import (
	"time"

	"github.com/gofrs/uuid"
	"github.com/mdouchement/lists/internal/database"
	"github.com/mdouchement/lists/internal/model"
)

var timeNow = func() time.Time {
	return time.Now().UTC()
}

func newTieBreakerID() string {
	return uuid.Must(uuid.NewV4()).String()
}

func encodeList(p CreateListParams, user string) *database.ListDocument {
	now := timeNow()
	return &database.ListDocument{
		Base: database.Base{
			ID:           p.ID,
			CreatedAt:    now,
			UpdatedAt:    now,
			CreatedBy:    user,
			UpdatedBy:    user,
			TieBreakerID: newTieBreakerID(),
		},
		Name:        p.Name,
		Description: p.Description,
		Type:        p.Type,
	}
}

// listPatch only carries the fields set by p, along with the update stamp.
func listPatch(p UpdateListParams, user string) database.ListPatch {
	return database.ListPatch{
		Name:        p.Name.Ptr(),
		Description: p.Description.Ptr(),
		UpdatedAt:   timeNow(),
		UpdatedBy:   user,
	}
}

func decodeList(d *database.ListDocument) *model.List {
	return &model.List{
		ID:           d.ID,
		Name:         d.Name,
		Description:  d.Description,
		Type:         d.Type,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
		CreatedBy:    d.CreatedBy,
		UpdatedBy:    d.UpdatedBy,
		TieBreakerID: d.TieBreakerID,
	}
}

func encodeListItem(id, listID string, t model.Type, value, user string, now time.Time) *database.ListItemDocument {
	d := &database.ListItemDocument{
		Base: database.Base{
			ID:           id,
			CreatedAt:    now,
			UpdatedAt:    now,
			CreatedBy:    user,
			UpdatedBy:    user,
			TieBreakerID: newTieBreakerID(),
		},
		ListID: listID,
	}
	d.SetValue(t, value)
	return d
}

func decodeListItem(d *database.ListItemDocument) *model.ListItem {
	t, v := d.Value()
	return &model.ListItem{
		ID:           d.ID,
		ListID:       d.ListID,
		Type:         t,
		Value:        v,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
		CreatedBy:    d.CreatedBy,
		UpdatedBy:    d.UpdatedBy,
		TieBreakerID: d.TieBreakerID,
	}
}

func decodeListItems(docs []*database.ListItemDocument) []*model.ListItem {
	items := make([]*model.ListItem, 0, len(docs))
	for _, d := range docs {
		items = append(items, decodeListItem(d))
	}
	return items
}
