package backend

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/vantagedating/adminctl/internal/domain"
)

// Profile is the public profile attached to a user account.
type Profile struct {
	FirstName string   `json:"firstName,omitempty" yaml:"firstName,omitempty"`
	LastName  string   `json:"lastName,omitempty" yaml:"lastName,omitempty"`
	Age       int      `json:"age,omitempty" yaml:"age,omitempty"`
	Gender    string   `json:"gender,omitempty" yaml:"gender,omitempty"`
	Photos    []string `json:"photos,omitempty" yaml:"photos,omitempty"`
}

// User is an account record, end user or system user.
type User struct {
	ID         string     `json:"id" yaml:"id"`
	Email      string     `json:"email" yaml:"email"`
	UserType   string     `json:"userType,omitempty" yaml:"userType,omitempty"`
	IsActive   bool       `json:"isActive" yaml:"isActive"`
	IsVerified bool       `json:"isVerified" yaml:"isVerified"`
	Profile    *Profile   `json:"profile,omitempty" yaml:"profile,omitempty"`
	CreatedAt  *time.Time `json:"createdAt,omitempty" yaml:"createdAt,omitempty"`
}

// UnmarshalJSON accepts both "id" and "_id".
func (u *User) UnmarshalJSON(data []byte) error {
	type plain User
	aux := struct {
		*plain
		MongoID string `json:"_id"`
	}{plain: (*plain)(u)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if u.ID == "" {
		u.ID = aux.MongoID
	}
	return nil
}

// Name returns "First Last" from the profile, or the email.
func (u User) Name() string {
	if u.Profile != nil {
		name := strings.TrimSpace(u.Profile.FirstName + " " + u.Profile.LastName)
		if name != "" {
			return name
		}
	}
	return u.Email
}

// Role returns the user's type as a console role.
func (u User) Role() domain.Role {
	return domain.Role(u.UserType)
}

// UserStats is the dashboard summary of the user base.
type UserStats struct {
	TotalUsers    int `json:"totalUsers" yaml:"totalUsers"`
	ActiveUsers   int `json:"activeUsers" yaml:"activeUsers"`
	NewUsersToday int `json:"newUsersToday" yaml:"newUsersToday"`
	VerifiedUsers int `json:"verifiedUsers" yaml:"verifiedUsers"`
}

// UserRef is the abbreviated user embedded in reports and stories.
type UserRef struct {
	ID    string `json:"id,omitempty" yaml:"id,omitempty"`
	Email string `json:"email,omitempty" yaml:"email,omitempty"`
}

// Report is an abuse report filed by one user against another.
type Report struct {
	ID           string     `json:"id" yaml:"id"`
	Reporter     *UserRef   `json:"reporter,omitempty" yaml:"reporter,omitempty"`
	ReportedUser *UserRef   `json:"reportedUser,omitempty" yaml:"reportedUser,omitempty"`
	ReportType   string     `json:"reportType" yaml:"reportType"`
	Reason       string     `json:"reason,omitempty" yaml:"reason,omitempty"`
	Status       string     `json:"status" yaml:"status"`
	AdminAction  string     `json:"adminAction,omitempty" yaml:"adminAction,omitempty"`
	CreatedAt    *time.Time `json:"createdAt,omitempty" yaml:"createdAt,omitempty"`
	ResolvedAt   *time.Time `json:"resolvedAt,omitempty" yaml:"resolvedAt,omitempty"`
}

// Story is a user-posted story awaiting or past moderation.
type Story struct {
	ID         string     `json:"id" yaml:"id"`
	User       *UserRef   `json:"user,omitempty" yaml:"user,omitempty"`
	MediaURL   string     `json:"mediaUrl" yaml:"mediaUrl"`
	MediaType  string     `json:"mediaType" yaml:"mediaType"`
	IsFlagged  bool       `json:"isFlagged" yaml:"isFlagged"`
	IsApproved bool       `json:"isApproved" yaml:"isApproved"`
	CreatedAt  *time.Time `json:"createdAt,omitempty" yaml:"createdAt,omitempty"`
}

// WishlistCategory groups wishlist products.
type WishlistCategory struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// WishlistProduct is an item users can put on a wishlist.
type WishlistProduct struct {
	ID          string            `json:"id" yaml:"id"`
	Name        string            `json:"name" yaml:"name"`
	Description string            `json:"description,omitempty" yaml:"description,omitempty"`
	ImageURL    string            `json:"imageUrl,omitempty" yaml:"imageUrl,omitempty"`
	CategoryID  string            `json:"categoryId,omitempty" yaml:"categoryId,omitempty"`
	Category    *WishlistCategory `json:"category,omitempty" yaml:"category,omitempty"`
	SortOrder   int               `json:"sortOrder,omitempty" yaml:"sortOrder,omitempty"`
}

// Gift is a catalog entry: a virtual gift or a physical present.
type Gift struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Type        string `json:"type,omitempty" yaml:"type,omitempty"`
	Category    string `json:"category,omitempty" yaml:"category,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty" yaml:"imageUrl,omitempty"`
	CreditCost  int    `json:"creditCost" yaml:"creditCost"`
	IsActive    bool   `json:"isActive" yaml:"isActive"`
}

// PresentCategory groups physical presents.
type PresentCategory struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// OrderParty identifies the sender or receiver of a gift order.
type OrderParty struct {
	Email   string   `json:"email,omitempty" yaml:"email,omitempty"`
	Profile *Profile `json:"profile,omitempty" yaml:"profile,omitempty"`
}

// GiftItem is the gift snapshot stored on an order.
type GiftItem struct {
	Name     string `json:"name" yaml:"name"`
	ImageURL string `json:"imageUrl,omitempty" yaml:"imageUrl,omitempty"`
}

// GiftOrder is a purchased present on its way to the receiver.
type GiftOrder struct {
	ID              string      `json:"id" yaml:"id"`
	Sender          *OrderParty `json:"senderData,omitempty" yaml:"sender,omitempty"`
	Receiver        *OrderParty `json:"receiverData,omitempty" yaml:"receiver,omitempty"`
	Item            *GiftItem   `json:"giftItemData,omitempty" yaml:"item,omitempty"`
	CreditsUsed     int         `json:"creditsUsed" yaml:"creditsUsed"`
	DeliveryStatus  string      `json:"deliveryStatus" yaml:"deliveryStatus"`
	DeliveryAddress string      `json:"deliveryAddress,omitempty" yaml:"deliveryAddress,omitempty"`
	CreatedAt       *time.Time  `json:"createdAt,omitempty" yaml:"createdAt,omitempty"`
	DeliveredAt     *time.Time  `json:"deliveredAt,omitempty" yaml:"deliveredAt,omitempty"`
}

// GrowthPoint is one sample of the user growth series.
type GrowthPoint struct {
	Date  string `json:"date" yaml:"date"`
	Count int    `json:"count" yaml:"count"`
}

// Statistics is the engagement summary for a time range.
type Statistics struct {
	UserGrowth   []GrowthPoint `json:"userGrowth,omitempty" yaml:"userGrowth,omitempty"`
	Matches      int           `json:"matches" yaml:"matches"`
	Messages     int           `json:"messages" yaml:"messages"`
	ProfileViews int           `json:"profileViews" yaml:"profileViews"`
	ActiveUsers  int           `json:"activeUsers" yaml:"activeUsers"`
}

// CreditSettings is the credit price list.
type CreditSettings struct {
	ChatMessage         int `json:"chatMessage" yaml:"chatMessage"`
	VoiceCallPerMinute  int `json:"voiceCallPerMinute" yaml:"voiceCallPerMinute"`
	VideoCallPerMinute  int `json:"videoCallPerMinute" yaml:"videoCallPerMinute"`
	PhotoViewCredits    int `json:"photoViewCredits" yaml:"photoViewCredits"`
	VideoViewCredits    int `json:"videoViewCredits" yaml:"videoViewCredits"`
	VoiceMessageCredits int `json:"voiceMessageCredits" yaml:"voiceMessageCredits"`
}
