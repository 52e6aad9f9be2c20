package model

type Table struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	NameAr        string    `json:"name_ar"`
	Capacity      int       `json:"capacity"`
	Type          string    `json:"type"`
	Status        string    `json:"status"`
	Description   string    `json:"description,omitempty"`
	DescriptionAr string    `json:"description_ar,omitempty"`
	IsActive      Flag      `json:"is_active"`
	ImagePath     string    `json:"image_path,omitempty"`
	CreatedAt     Timestamp `json:"created_at"`
	UpdatedAt     Timestamp `json:"updated_at"`
}

func (t Table) RecordID() int64 { return t.ID }

type TableInput struct {
	Name          string `json:"name" validate:"required"`
	NameAr        string `json:"name_ar"`
	Capacity      int    `json:"capacity" validate:"required,min=1"`
	Type          string `json:"type" validate:"required,oneof=single double family special custom"`
	Status        string `json:"status" validate:"required,oneof=available occupied reserved maintenance"`
	Description   string `json:"description"`
	DescriptionAr string `json:"description_ar"`
	IsActive      bool   `json:"is_active"`
}
