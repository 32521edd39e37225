package domain

import (
	"strings"
	"time"
)

// PostType tags the three kinds of publications a business can make.
type PostType string

const (
	TypeEvent     PostType = "event"
	TypePromotion PostType = "promotion"
	TypeDiscount  PostType = "discount"
)

// DiscountInfo carries the promo details attached to discount and promotion
// posts. Percentage and Amount are alternatives; either may be zero.
type DiscountInfo struct {
	ID         int     `json:"id"`
	Percentage float64 `json:"percentage"`
	Amount     float64 `json:"amount"`
	Code       string  `json:"code"`
}

// Post is a read-only projection of a published event, promotion or discount.
// The backend remains the source of truth; local copies are never written back.
type Post struct {
	ID         int
	Title      string
	Content    string
	Type       PostType
	ImageURL   string
	StartDate  time.Time
	EndDate    *time.Time
	CreatedAt  *time.Time
	Location   string
	BusinessID int
	Discount   *DiscountInfo
	BranchIDs  []int
}

// PostDraft is the client-side input for creating a post. It is validated
// locally before any network call.
type PostDraft struct {
	Title     string   `validate:"required"`
	Content   string   `validate:"required"`
	Type      PostType `validate:"required,oneof=event promotion discount"`
	ImageURL  string
	StartDate time.Time `validate:"required"`
	EndDate   *time.Time
	Discount  *DiscountDraft
	BranchIDs []int
}

// DiscountDraft is the promo part of a PostDraft.
type DiscountDraft struct {
	Percentage float64
	Amount     float64
	Code       string
}

// Branch is a physical location of a business.
type Branch struct {
	ID          int
	BusinessID  int
	Description string
	Location    string
	ImageURL    string
}

// ContactInfo groups a business's public contact details.
type ContactInfo struct {
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Website string `json:"website"`
}

// Business is a read-only projection of a business profile.
type Business struct {
	ID          int
	UserID      string
	CompanyName string
	Description string
	Logo        string
	Contact     ContactInfo
	Branches    []Branch
	Posts       []Post
}

// Category selects a slice of the catalog for browsing. It widens PostType
// with "all" and "branch".
type Category string

const (
	CategoryAll        Category = "all"
	CategoryEvents     Category = "event"
	CategoryPromotions Category = "promotion"
	CategoryDiscounts  Category = "discount"
	CategoryBranches   Category = "branch"
)

// ParseCategory normalizes user input into a Category, defaulting to all.
func ParseCategory(s string) Category {
	switch Category(strings.ToLower(strings.TrimSpace(s))) {
	case CategoryEvents, CategoryPromotions, CategoryDiscounts, CategoryBranches:
		return Category(strings.ToLower(strings.TrimSpace(s)))
	default:
		return CategoryAll
	}
}
