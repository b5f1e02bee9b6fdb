package backendtest

import (
	"encoding/json"
	"time"

	"github.com/vantagedating/adminctl/internal/backend"
)

func ts(s string) *time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return &t
}

// Seeded resource ids, for tests that act on a known record.
const (
	UserAliceID     = "user-alice"
	UserBobID       = "user-bob"
	UserCarolID     = "user-carol"
	ReportPendingID = "report-1"
	StoryFlaggedID  = "story-1"
	ProductID       = "product-1"
	GiftID          = "gift-1"
	OrderID         = "order-1"

	// PresentCategoryID is unused by presents; PresentCategoryInUseID is
	// the category of a seeded present and cannot be deleted.
	PresentCategoryID      = "pcat-2"
	PresentCategoryInUseID = "pcat-1"
)

// seed populates the server with one account per role and a small data set.
func (s *Server) seed() {
	for _, a := range []Account{
		{ID: "admin-root", Email: SuperAdminEmail, UserType: "superadmin", FirstName: "Riley", LastName: "Root"},
		{ID: "admin-mod", Email: AdminEmail, UserType: "admin", FirstName: "Morgan", LastName: "Mod"},
		{ID: "admin-viewer", Email: ViewerEmail, UserType: "viewer", FirstName: "Avery", LastName: "Analyst"},
	} {
		s.AddAccount(a)
	}

	// A regular member can log in but is not a console operator.
	s.accounts[RegularEmail] = &Account{
		ID:        "member-1",
		Email:     RegularEmail,
		Password:  Password,
		UserType:  "regular",
		FirstName: "Mel",
		LastName:  "Member",
	}

	// The backend also stores accounts of other types in the admin collection.
	s.admins = append(s.admins, backend.User{ID: "legacy-1", Email: "legacy@vantage.test", UserType: "moderator"})

	s.users = []backend.User{
		{
			ID: UserAliceID, Email: "alice@example.com", UserType: "regular", IsActive: true, IsVerified: true,
			Profile:   &backend.Profile{FirstName: "Alice", LastName: "Anders", Age: 29, Gender: "female"},
			CreatedAt: ts("2025-11-02T10:00:00Z"),
		},
		{
			ID: UserBobID, Email: "bob@example.com", UserType: "regular", IsActive: true,
			Profile:   &backend.Profile{FirstName: "Bob", LastName: "Brandt", Age: 34, Gender: "male"},
			CreatedAt: ts("2025-12-14T18:30:00Z"),
		},
		{
			ID: UserCarolID, Email: "carol@example.com", UserType: "regular",
			Profile:   &backend.Profile{FirstName: "Carol", Age: 41, Gender: "female"},
			CreatedAt: ts("2026-01-20T08:15:00Z"),
		},
	}

	// Carol has an account but never completed her profile.
	s.profiles = []backend.MemberProfile{
		{
			ID: "profile-alice", UserID: UserAliceID, FirstName: "Alice", LastName: "Anders", Age: 29, Gender: "female",
			Bio:          "Weekend hiker and amateur baker",
			Interests:    []string{"hiking", "baking"},
			Location:     &backend.Location{City: "Lisbon", Country: "Portugal"},
			Lifestyle:    &backend.Lifestyle{Height: "168", Education: "Masters", Work: "Architect"},
			Photos:       []backend.Photo{{URL: "https://cdn.vantage.test/photos/alice-1.jpg"}},
			ProfileViews: 42,
			Matches:      []json.RawMessage{json.RawMessage(`"user-bob"`)},
		},
		{
			ID: "profile-bob", UserID: UserBobID, FirstName: "Bob", LastName: "Brandt", Age: 34, Gender: "male",
			Bio:          "Cyclist, coffee snob",
			Location:     &backend.Location{City: "Porto"},
			ProfileViews: 7,
		},
	}
	s.credits = map[string]int{UserAliceID: 150, UserBobID: 20}

	s.reports = []backend.Report{
		{
			ID:           ReportPendingID,
			Reporter:     &backend.UserRef{ID: UserAliceID, Email: "alice@example.com"},
			ReportedUser: &backend.UserRef{ID: UserBobID, Email: "bob@example.com"},
			ReportType:   "harassment",
			Reason:       "Repeated unwanted messages",
			Status:       "pending",
			CreatedAt:    ts("2026-01-25T12:00:00Z"),
		},
		{
			ID:           "report-2",
			Reporter:     &backend.UserRef{ID: UserCarolID, Email: "carol@example.com"},
			ReportedUser: &backend.UserRef{ID: UserBobID, Email: "bob@example.com"},
			ReportType:   "spam",
			Status:       "resolved",
			AdminAction:  "warn",
			CreatedAt:    ts("2026-01-10T09:00:00Z"),
			ResolvedAt:   ts("2026-01-11T09:00:00Z"),
		},
	}

	s.stories = []backend.Story{
		{
			ID: StoryFlaggedID, User: &backend.UserRef{ID: UserBobID, Email: "bob@example.com"},
			MediaURL: "https://cdn.vantage.test/stories/1.jpg", MediaType: "image", IsFlagged: true,
			CreatedAt: ts("2026-01-29T20:00:00Z"),
		},
		{
			ID: "story-2", User: &backend.UserRef{ID: UserAliceID, Email: "alice@example.com"},
			MediaURL: "https://cdn.vantage.test/stories/2.mp4", MediaType: "video", IsApproved: true,
			CreatedAt: ts("2026-01-30T07:45:00Z"),
		},
	}

	s.wishlistCats = []backend.WishlistCategory{
		{ID: "wcat-1", Name: "Travel"},
		{ID: "wcat-2", Name: "Dining"},
	}
	s.wishlistProducts = []backend.WishlistProduct{
		{ID: ProductID, Name: "Weekend in Lisbon", CategoryID: "wcat-1", SortOrder: 1},
		{ID: "product-2", Name: "Tasting menu", CategoryID: "wcat-2", SortOrder: 1},
	}

	s.gifts = []backend.Gift{
		{ID: GiftID, Name: "Rose", Type: "virtual", Category: "flower", CreditCost: 5, IsActive: true},
		{ID: "gift-2", Name: "Birthday cake", Type: "present", Category: "cake", CreditCost: 120, IsActive: true},
		{ID: "gift-3", Name: "Retired teddy", Type: "present", Category: "other", CreditCost: 60},
	}
	s.presentCategories = []backend.PresentCategory{
		{ID: "pcat-1", Name: "cake"},
		{ID: "pcat-2", Name: "flower"},
	}
	s.orders = []backend.GiftOrder{
		{
			ID:              OrderID,
			Sender:          &backend.OrderParty{Email: "alice@example.com"},
			Receiver:        &backend.OrderParty{Email: "bob@example.com"},
			Item:            &backend.GiftItem{Name: "Birthday cake"},
			CreditsUsed:     120,
			DeliveryStatus:  "pending",
			DeliveryAddress: "12 Harbour Road",
			CreatedAt:       ts("2026-01-28T14:00:00Z"),
		},
	}

	s.creditSettings = backend.CreditSettings{
		ChatMessage:         1,
		VoiceCallPerMinute:  10,
		VideoCallPerMinute:  20,
		PhotoViewCredits:    2,
		VideoViewCredits:    3,
		VoiceMessageCredits: 2,
	}
}
