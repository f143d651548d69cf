package dto

import (
	"hotel/shared/constant"
	"hotel/shared/model"
	"hotel/shared/timezone"
)

type Metadata struct {
	CreatedAt  string `json:"created_at"`
	ModifiedAt string `json:"modified_at,omitempty"`
	CreatedBy  string `json:"created_by"`
	ModifiedBy string `json:"modified_by,omitempty"`
}

// FromModel renders the audit columns in the property's timezone. Rows never touched after
// insert carry no modification stamp.
func (m *Metadata) FromModel(audit model.Metadata) {
	m.CreatedAt = timezone.Format(audit.CreatedAt, constant.DateFormat)
	m.CreatedBy = audit.CreatedBy

	if audit.ModifiedAt.IsZero() {
		return
	}

	m.ModifiedAt = timezone.Format(audit.ModifiedAt, constant.DateFormat)
	m.ModifiedBy = audit.ModifiedBy
}
