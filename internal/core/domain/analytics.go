package domain

// PostAnalytics is one row of the owner dashboard, keyed by post title.
type PostAnalytics struct {
	Title           string   `json:"title"`
	Type            PostType `json:"type"`
	GuestLikes      int      `json:"guestLikes"`
	SubscriberLikes int      `json:"subscriberLikes"`
	GuestViews      int      `json:"guestViews"`
	SubscriberViews int      `json:"subscriberViews"`
	PromosCopied    int      `json:"promosCopied"`
}

// BusinessAnalytics aggregates engagement counters for the owned business.
type BusinessAnalytics struct {
	TotalGuestLikes      int             `json:"totalGuestLikes"`
	TotalSubscriberLikes int             `json:"totalSubscriberLikes"`
	TotalGuestViews      int             `json:"totalGuestViews"`
	TotalSubscriberViews int             `json:"totalSubscriberViews"`
	TotalPromosCopied    int             `json:"totalPromosCopied"`
	TotalLikes           int             `json:"totalLikes"`
	TotalViews           int             `json:"totalViews"`
	SubscribersCount     int             `json:"subscribersCount"`
	Posts                []PostAnalytics `json:"postAnalitics"`
}

// FilterByType keeps only the rows matching the given post type. CategoryAll
// keeps everything.
func (a *BusinessAnalytics) FilterByType(cat Category) []PostAnalytics {
	if cat == CategoryAll {
		return a.Posts
	}
	var out []PostAnalytics
	for _, p := range a.Posts {
		if Category(p.Type) == cat {
			out = append(out, p)
		}
	}
	return out
}
