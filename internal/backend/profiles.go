package backend

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"

	"github.com/vantagedating/adminctl/internal/errors"
)

// Location is where a member says they live.
type Location struct {
	City    string `json:"city,omitempty" yaml:"city,omitempty"`
	Country string `json:"country,omitempty" yaml:"country,omitempty"`
}

// String returns "City, Country", or whichever part is set.
func (l *Location) String() string {
	if l == nil {
		return ""
	}
	parts := make([]string, 0, 2)
	for _, p := range []string{l.City, l.Country} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// Measure is a free-form value the backend sends as a number or a string.
type Measure string

// UnmarshalJSON accepts a JSON string or number.
func (m *Measure) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*m = Measure(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*m = Measure(n.String())
	return nil
}

// Lifestyle holds the optional lifestyle answers of a profile.
type Lifestyle struct {
	Height    Measure `json:"height,omitempty" yaml:"height,omitempty"`
	BodyType  string  `json:"bodyType,omitempty" yaml:"bodyType,omitempty"`
	Education string  `json:"education,omitempty" yaml:"education,omitempty"`
	Work      string  `json:"work,omitempty" yaml:"work,omitempty"`
}

// Photo is an uploaded profile picture.
type Photo struct {
	URL string `json:"url" yaml:"url"`
}

// ProfileOwner is the account a member profile belongs to.
type ProfileOwner struct {
	ID         string `json:"id,omitempty" yaml:"id,omitempty"`
	Email      string `json:"email,omitempty" yaml:"email,omitempty"`
	Credits    int    `json:"credits" yaml:"credits"`
	IsActive   bool   `json:"isActive" yaml:"isActive"`
	IsVerified bool   `json:"isVerified" yaml:"isVerified"`
}

// MemberProfile is the full dating profile of an end user.
type MemberProfile struct {
	ID           string            `json:"id" yaml:"id"`
	UserID       string            `json:"userId" yaml:"userId"`
	FirstName    string            `json:"firstName,omitempty" yaml:"firstName,omitempty"`
	LastName     string            `json:"lastName,omitempty" yaml:"lastName,omitempty"`
	Age          int               `json:"age,omitempty" yaml:"age,omitempty"`
	Gender       string            `json:"gender,omitempty" yaml:"gender,omitempty"`
	Bio          string            `json:"bio,omitempty" yaml:"bio,omitempty"`
	Interests    []string          `json:"interests,omitempty" yaml:"interests,omitempty"`
	Location     *Location         `json:"location,omitempty" yaml:"location,omitempty"`
	Lifestyle    *Lifestyle        `json:"lifestyle,omitempty" yaml:"lifestyle,omitempty"`
	Photos       []Photo           `json:"photos,omitempty" yaml:"photos,omitempty"`
	ProfileViews int               `json:"profileViews" yaml:"profileViews"`
	Matches      []json.RawMessage `json:"matches,omitempty" yaml:"-"`
	User         *ProfileOwner     `json:"user,omitempty" yaml:"user,omitempty"`
}

// Name returns "First Last", or the owner's email.
func (p MemberProfile) Name() string {
	if name := strings.TrimSpace(p.FirstName + " " + p.LastName); name != "" {
		return name
	}
	return p.Email()
}

// Email returns the owner's email, or "".
func (p MemberProfile) Email() string {
	if p.User == nil {
		return ""
	}
	return p.User.Email
}

// MatchCount returns the number of matches the profile has.
func (p MemberProfile) MatchCount() int {
	return len(p.Matches)
}

type profilesResponse struct {
	Profiles []MemberProfile `json:"profiles"`
}

type profileResponse struct {
	Profile *MemberProfile `json:"profile"`
}

// ListProfiles returns member profiles whose accounts match filter.
func (c *Client) ListProfiles(ctx context.Context, filter UserFilter) ([]MemberProfile, error) {
	if filter == "" {
		filter = UserFilterAll
	}
	query := url.Values{"filter": {string(filter)}}

	var resp profilesResponse
	if err := c.get(ctx, RouteProfiles, RouteProfiles, query, &resp); err != nil {
		return nil, err
	}
	return resp.Profiles, nil
}

// GetProfile returns the profile of the user with userID.
func (c *Client) GetProfile(ctx context.Context, userID string) (*MemberProfile, error) {
	if userID == "" {
		return nil, errors.NewInputRequiredError("user id")
	}

	var resp profileResponse
	if err := c.get(ctx, RouteProfile, resourcePath(RouteProfile, userID), nil, &resp); err != nil {
		return nil, err
	}
	if resp.Profile == nil {
		return nil, errors.New(errors.ErrCodeAPIResponse, "profile response did not include a profile")
	}
	return resp.Profile, nil
}
