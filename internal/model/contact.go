package model

import "time"

// Contact represents a single address book entry owned by a user
type Contact struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Photo     *string   `json:"photo,omitempty"` // Pointer for optional field, stores /uploads/... path
	CreatedAt time.Time `json:"createdAt"`
	UserID    int       `json:"userId"`
}

// CreateContactRequest is used for creating a new contact (multipart form)
type CreateContactRequest struct {
	Name  string `form:"name" binding:"required"`
	Email string `form:"email" binding:"required,email"`
	Phone string `form:"phone" binding:"required"`
}

// UpdateContactRequest allows partial updates; absent fields stay untouched
type UpdateContactRequest struct {
	Name  *string `form:"name" binding:"omitempty"`
	Email *string `form:"email" binding:"omitempty,email"`
	Phone *string `form:"phone" binding:"omitempty"`
}

// ContactListParams carries the raw list query as parsed from the request
type ContactListParams struct {
	Page      int
	Limit     int
	Search    string
	SortBy    string
	SortOrder string
}

// ContactFilter is the resolved query the repository executes. SortBy holds
// an already-whitelisted column name, never raw client input.
type ContactFilter struct {
	OwnerID   *int
	Search    string
	SortBy    string
	SortOrder string
	Limit     int
	Offset    int
}

// ContactPage is the paginated list envelope
type ContactPage struct {
	Data       []Contact `json:"data"`
	Total      int64     `json:"total"`
	Page       int       `json:"page"`
	Limit      int       `json:"limit"`
	TotalPages int       `json:"totalPages"`
}
