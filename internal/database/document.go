package database

import (
	"time"

	"github.com/gofrs/uuid"
	"github.com/mdouchement/lists/internal/model"
)

type (
	// A Document defines an object that can be stored in an index.
	Document interface {
		// GetID returns the document's ID.
		GetID() string
		// SetID defines the document's ID.
		SetID(string)
	}

	// A Base contains the fields shared by all stored documents.
	Base struct {
		ID           string    `json:"id"             msgpack:"id"             bson:"_id"            storm:"id"`
		CreatedAt    time.Time `json:"created_at"     msgpack:"created_at"     bson:"created_at"`
		UpdatedAt    time.Time `json:"updated_at"     msgpack:"updated_at"     bson:"updated_at"`
		CreatedBy    string    `json:"created_by"     msgpack:"created_by"     bson:"created_by"`
		UpdatedBy    string    `json:"updated_by"     msgpack:"updated_by"     bson:"updated_by"`
		TieBreakerID string    `json:"tie_breaker_id" msgpack:"tie_breaker_id" bson:"tie_breaker_id" storm:"index"`
	}

	// A ListDocument is the stored shape of a list.
	ListDocument struct {
		Base `msgpack:",inline" bson:",inline" storm:"inline"`

		Name        string     `json:"name"        msgpack:"name"        bson:"name"`
		Description string     `json:"description" msgpack:"description" bson:"description"`
		Type        model.Type `json:"type"        msgpack:"type"        bson:"type"`
	}

	// A ListPatch is a partial update of a list document.
	// Nil fields are left unchanged.
	ListPatch struct {
		Name        *string   `json:"name,omitempty"        bson:"name,omitempty"`
		Description *string   `json:"description,omitempty" bson:"description,omitempty"`
		UpdatedAt   time.Time `json:"updated_at"            bson:"updated_at"`
		UpdatedBy   string    `json:"updated_by"            bson:"updated_by"`
	}

	// A ListItemDocument is the stored shape of a list item.
	// The value is held by the field named after the list type.
	ListItemDocument struct {
		Base `msgpack:",inline" bson:",inline" storm:"inline"`

		ListID  string `json:"list_id"            msgpack:"list_id"            bson:"list_id"            storm:"index"`
		IP      string `json:"ip,omitempty"       msgpack:"ip,omitempty"       bson:"ip,omitempty"       storm:"index"`
		IPRange string `json:"ip_range,omitempty" msgpack:"ip_range,omitempty" bson:"ip_range,omitempty" storm:"index"`
		Keyword string `json:"keyword,omitempty"  msgpack:"keyword,omitempty"  bson:"keyword,omitempty"  storm:"index"`
		Date    string `json:"date,omitempty"     msgpack:"date,omitempty"     bson:"date,omitempty"     storm:"index"`
	}
)

// GetID returns the document's ID.
func (d *Base) GetID() string {
	return d.ID
}

// SetID defines the document's ID.
func (d *Base) SetID(id string) {
	d.ID = id
}

// Apply merges the patch into the document.
func (p ListPatch) Apply(d *ListDocument) {
	if p.Name != nil {
		d.Name = *p.Name
	}
	if p.Description != nil {
		d.Description = *p.Description
	}
	d.UpdatedAt = p.UpdatedAt
	d.UpdatedBy = p.UpdatedBy
}

// Value returns the type and the value of the item, inferred from the populated field.
func (d *ListItemDocument) Value() (model.Type, string) {
	switch {
	case d.IP != "":
		return model.TypeIP, d.IP
	case d.IPRange != "":
		return model.TypeIPRange, d.IPRange
	case d.Keyword != "":
		return model.TypeKeyword, d.Keyword
	case d.Date != "":
		return model.TypeDate, d.Date
	}
	return "", ""
}

// SetValue stores v in the field named after t.
func (d *ListItemDocument) SetValue(t model.Type, v string) {
	d.IP, d.IPRange, d.Keyword, d.Date = "", "", "", ""

	switch t {
	case model.TypeIP:
		d.IP = v
	case model.TypeIPRange:
		d.IPRange = v
	case model.TypeKeyword:
		d.Keyword = v
	case model.TypeDate:
		d.Date = v
	}
}

// valueField returns the struct field name and the stored field name holding values of type t.
func valueField(t model.Type) (field string, stored string) {
	switch t {
	case model.TypeIP:
		return "IP", "ip"
	case model.TypeIPRange:
		return "IPRange", "ip_range"
	case model.TypeKeyword:
		return "Keyword", "keyword"
	case model.TypeDate:
		return "Date", "date"
	}
	return "", ""
}

// BulkAction is the directive of a bulk operation.
type BulkAction string

// BulkCreate creates the document of the operation.
const BulkCreate BulkAction = "create"

// A BulkOperation pairs a directive with the document it applies to.
type BulkOperation struct {
	Action   BulkAction
	Document *ListItemDocument
}

// ensureID assigns a random id to the document when it has none.
func ensureID(d Document) string {
	if d.GetID() == "" {
		d.SetID(uuid.Must(uuid.NewV4()).String())
	}
	return d.GetID()
}
