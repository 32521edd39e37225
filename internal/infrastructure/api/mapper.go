package api

import (
	"strings"
	"time"

	"github.com/kommer/client-go/internal/core/domain"
)

// postTypeCodes is the one place that knows the integer codes the create
// endpoint expects for each post type.
var postTypeCodes = map[domain.PostType]int{
	domain.TypeEvent:     0,
	domain.TypePromotion: 1,
	domain.TypeDiscount:  2,
}

func postTypeCode(t domain.PostType) int {
	return postTypeCodes[t]
}

func parsePostType(s string) domain.PostType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "promotion":
		return domain.TypePromotion
	case "discount":
		return domain.TypeDiscount
	default:
		return domain.TypeEvent
	}
}

// parseTime accepts the timestamp spellings seen from the backend. A value
// that parses as none of them becomes the zero time rather than an error;
// dates are descriptive fields, not invariants.
func parseTime(s string) time.Time {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

func parseTimePtr(s *string) *time.Time {
	if s == nil || *s == "" {
		return nil
	}
	t := parseTime(*s)
	return &t
}

func postFromWire(w postWire) domain.Post {
	p := domain.Post{
		ID:         w.ID,
		Title:      w.Title,
		Content:    w.Content,
		Type:       parsePostType(w.Type),
		ImageURL:   w.ImageURL,
		StartDate:  parseTime(w.StartDate),
		EndDate:    parseTimePtr(w.EndDate),
		CreatedAt:  parseTimePtr(w.CreatedAt),
		Location:   w.Location,
		BusinessID: w.BusinessID,
	}
	if w.Discount != nil {
		p.Discount = &domain.DiscountInfo{
			ID:         w.Discount.ID,
			Percentage: w.Discount.Percentage,
			Amount:     w.Discount.Amount,
			Code:       w.Discount.Code,
		}
	}
	for _, pb := range w.PostBranches {
		p.BranchIDs = append(p.BranchIDs, pb.BusinessBranchID)
	}
	return p
}

func postsFromWire(ws []postWire) []domain.Post {
	out := make([]domain.Post, len(ws))
	for i, w := range ws {
		out[i] = postFromWire(w)
	}
	return out
}

func branchFromWire(w branchWire) domain.Branch {
	return domain.Branch{
		ID:          w.ID,
		BusinessID:  w.BusinessProfileID,
		Description: w.Description,
		Location:    w.Location,
		ImageURL:    w.ImageURL,
	}
}

func branchesFromWire(ws []branchWire) []domain.Branch {
	out := make([]domain.Branch, len(ws))
	for i, w := range ws {
		out[i] = branchFromWire(w)
	}
	return out
}

func businessFromWire(w businessWire) domain.Business {
	return domain.Business{
		ID:          w.ID,
		UserID:      w.UserID,
		CompanyName: w.CompanyName,
		Description: w.Description,
		Logo:        w.Logo,
		Contact: domain.ContactInfo{
			Email:   w.ContactInfo.Email,
			Phone:   w.ContactInfo.Phone,
			Website: w.ContactInfo.Website,
		},
		Branches: branchesFromWire(w.Branches),
		Posts:    postsFromWire(w.Posts),
	}
}

func createRequestFromDraft(d domain.PostDraft) createPostRequest {
	req := createPostRequest{
		Title:     d.Title,
		Content:   d.Content,
		Type:      postTypeCode(d.Type),
		ImageURL:  d.ImageURL,
		StartDate: d.StartDate.UTC().Format(time.RFC3339),
		BranchIDs: d.BranchIDs,
	}
	if req.BranchIDs == nil {
		req.BranchIDs = []int{}
	}
	if d.EndDate != nil {
		s := d.EndDate.UTC().Format(time.RFC3339)
		req.EndDate = &s
	}
	if d.Discount != nil {
		req.Discount = &createDiscountPayload{
			Percentage: d.Discount.Percentage,
			Amount:     d.Discount.Amount,
			Code:       d.Discount.Code,
		}
	}
	return req
}
