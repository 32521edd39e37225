package api

import "github.com/kommer/client-go/internal/core/domain"

// Wire DTOs. Read endpoints return the post type as a string tag; the create
// endpoint expects it as a small integer code. Both representations live
// only in this package.

type authResponse struct {
	AccessToken string `json:"accessToken"`
}

type registerClientRequest struct {
	domain.ClientRegistration
	UserType string `json:"userType"`
}

type registerBusinessRequest struct {
	domain.BusinessRegistration
	UserType string `json:"userType"`
}

type postBranchWire struct {
	PostID           int `json:"postId"`
	BusinessBranchID int `json:"businessBranchId"`
}

type discountWire struct {
	ID         int     `json:"id"`
	Percentage float64 `json:"percentage"`
	Amount     float64 `json:"amount"`
	Code       string  `json:"code"`
}

type postWire struct {
	ID           int              `json:"id"`
	Title        string           `json:"title"`
	Content      string           `json:"content"`
	Type         string           `json:"type"`
	ImageURL     string           `json:"imageUrl"`
	StartDate    string           `json:"startDate"`
	EndDate      *string          `json:"endDate"`
	CreatedAt    *string          `json:"createdAt"`
	Location     string           `json:"location"`
	BusinessID   int              `json:"businessId"`
	Discount     *discountWire    `json:"discount"`
	PostBranches []postBranchWire `json:"postBranches"`
}

type branchWire struct {
	ID                int              `json:"id"`
	BusinessProfileID int              `json:"businessProfileId"`
	Description       string           `json:"description"`
	Location          string           `json:"location"`
	ImageURL          string           `json:"imageUrl"`
	PostBranches      []postBranchWire `json:"postBranches"`
}

type contactInfoWire struct {
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Website string `json:"website"`
}

type businessWire struct {
	ID          int             `json:"id"`
	UserID      string          `json:"userId"`
	CompanyName string          `json:"companyName"`
	Description string          `json:"description"`
	Logo        string          `json:"logo"`
	ContactInfo contactInfoWire `json:"contactInfo"`
	Branches    []branchWire    `json:"branches"`
	Posts       []postWire      `json:"posts"`
}

type createDiscountPayload struct {
	Percentage float64 `json:"percentage"`
	Amount     float64 `json:"amount"`
	Code       string  `json:"code"`
}

type createPostRequest struct {
	Title     string                 `json:"title"`
	Content   string                 `json:"content"`
	Type      int                    `json:"type"`
	ImageURL  string                 `json:"imageUrl"`
	StartDate string                 `json:"startDate"`
	EndDate   *string                `json:"endDate"`
	Discount  *createDiscountPayload `json:"discount"`
	BranchIDs []int                  `json:"branchIds"`
}

type askRequest struct {
	Prompt string `json:"prompt"`
}

type askResponse struct {
	Answer string `json:"answer"`
}

// errorResponse tolerates both error envelope spellings the backend uses.
type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
