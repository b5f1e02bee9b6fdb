package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/vantagedating/adminctl/internal/auth"
	"github.com/vantagedating/adminctl/internal/authz"
	"github.com/vantagedating/adminctl/internal/backend"
	"github.com/vantagedating/adminctl/internal/domain"
	"github.com/vantagedating/adminctl/internal/ux"
)

const dateLayout = "2006-01-02"

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func date(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.UTC().Format(dateLayout)
}

func timestamp(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.UTC().Format(time.RFC3339)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func refEmail(r *backend.UserRef) string {
	if r == nil {
		return "-"
	}
	return orDash(r.Email)
}

// identityView renders the signed-in operator.
type identityView struct {
	*domain.Identity
}

func (v identityView) Table() ux.Table {
	return ux.Table{
		Headers: []string{"FIELD", "VALUE"},
		Rows: [][]string{
			{"Name", v.DisplayName()},
			{"Email", v.Email},
			{"Role", v.Role().DisplayName()},
			{"ID", v.ID},
		},
	}
}

func (v identityView) Data() interface{} { return v.Identity }

// statusView is the output of auth status.
type statusView struct {
	LoggedIn   bool             `json:"loggedIn" yaml:"loggedIn"`
	APIURL     string           `json:"apiUrl" yaml:"apiUrl"`
	TokenStore string           `json:"tokenStore" yaml:"tokenStore"`
	Identity   *domain.Identity `json:"identity,omitempty" yaml:"identity,omitempty"`
	ExpiresAt  *time.Time       `json:"expiresAt,omitempty" yaml:"expiresAt,omitempty"`
}

func (v statusView) Table() ux.Table {
	rows := [][]string{
		{"Logged in", yesNo(v.LoggedIn)},
		{"Backend", v.APIURL},
		{"Token store", v.TokenStore},
	}
	if v.Identity != nil {
		rows = append(rows,
			[]string{"Email", v.Identity.Email},
			[]string{"Role", v.Identity.Role().DisplayName()},
		)
	}
	if v.ExpiresAt != nil {
		rows = append(rows, []string{"Expires", timestamp(v.ExpiresAt)})
	}
	return ux.Table{Headers: []string{"FIELD", "VALUE"}, Rows: rows}
}

func (v statusView) Data() interface{} { return v }

// tokenView shows the unverified claims of the session token.
type tokenView struct {
	*auth.TokenInfo
}

func (v tokenView) Table() ux.Table {
	return ux.Table{
		Headers: []string{"CLAIM", "VALUE"},
		Rows: [][]string{
			{"Subject", orDash(v.Subject)},
			{"Issuer", orDash(v.Issuer)},
			{"Issued", timestamp(v.IssuedAt)},
			{"Expires", timestamp(v.ExpiresAt)},
			{"Expired", yesNo(v.Expired)},
			{"Algorithm", v.Algorithm},
		},
	}
}

func (v tokenView) Data() interface{} { return v.TokenInfo }

// grantsView is the permission matrix of the operator.
type grantsView struct {
	Role   domain.Role   `json:"role" yaml:"role"`
	Grants []authz.Grant `json:"permissions" yaml:"permissions"`
}

func (v grantsView) Table() ux.Table {
	t := ux.Table{Headers: []string{"PERMISSION", "ALLOWED"}}
	for _, g := range v.Grants {
		t.Rows = append(t.Rows, []string{g.Permission.String(), yesNo(g.Allowed)})
	}
	return t
}

func (v grantsView) Data() interface{} { return v }

type usersView []backend.User

func (v usersView) Table() ux.Table {
	t := ux.Table{
		Headers: []string{"ID", "NAME", "EMAIL", "AGE", "ACTIVE", "VERIFIED", "JOINED"},
		Empty:   "No users found",
	}
	for _, u := range v {
		age := "-"
		if u.Profile != nil && u.Profile.Age > 0 {
			age = strconv.Itoa(u.Profile.Age)
		}
		t.Rows = append(t.Rows, []string{u.ID, u.Name(), u.Email, age, yesNo(u.IsActive), yesNo(u.IsVerified), date(u.CreatedAt)})
	}
	return t
}

func (v usersView) Data() interface{} { return []backend.User(v) }

type profilesView []backend.MemberProfile

func (v profilesView) Table() ux.Table {
	t := ux.Table{
		Headers: []string{"USER ID", "NAME", "AGE", "EMAIL", "LOCATION", "VIEWS", "MATCHES"},
		Empty:   "No profiles found",
	}
	for _, p := range v {
		age := "-"
		if p.Age > 0 {
			age = strconv.Itoa(p.Age)
		}
		t.Rows = append(t.Rows, []string{
			p.UserID, p.Name(), age, orDash(p.Email()), orDash(p.Location.String()),
			strconv.Itoa(p.ProfileViews), strconv.Itoa(p.MatchCount()),
		})
	}
	return t
}

func (v profilesView) Data() interface{} { return []backend.MemberProfile(v) }

// profileView renders one profile as field/value pairs.
type profileView struct {
	*backend.MemberProfile
}

func (v profileView) Table() ux.Table {
	p := v.MemberProfile
	age, credits := "-", "-"
	if p.Age > 0 {
		age = strconv.Itoa(p.Age)
	}
	if p.User != nil {
		credits = strconv.Itoa(p.User.Credits)
	}
	rows := [][]string{
		{"Name", p.Name()},
		{"User ID", p.UserID},
		{"Email", orDash(p.Email())},
		{"Age", age},
		{"Gender", orDash(p.Gender)},
		{"Location", orDash(p.Location.String())},
		{"Bio", orDash(p.Bio)},
		{"Interests", orDash(strings.Join(p.Interests, ", "))},
	}
	if l := p.Lifestyle; l != nil {
		rows = append(rows,
			[]string{"Height", orDash(string(l.Height))},
			[]string{"Body type", orDash(l.BodyType)},
			[]string{"Education", orDash(l.Education)},
			[]string{"Work", orDash(l.Work)},
		)
	}
	rows = append(rows,
		[]string{"Photos", strconv.Itoa(len(p.Photos))},
		[]string{"Profile views", strconv.Itoa(p.ProfileViews)},
		[]string{"Matches", strconv.Itoa(p.MatchCount())},
		[]string{"Credits", credits},
	)
	return ux.Table{Headers: []string{"FIELD", "VALUE"}, Rows: rows}
}

func (v profileView) Data() interface{} { return v.MemberProfile }

type adminsView []backend.User

func (v adminsView) Table() ux.Table {
	t := ux.Table{
		Headers: []string{"ID", "NAME", "EMAIL", "ROLE", "CREATED"},
		Empty:   "No system users found",
	}
	for _, u := range v {
		t.Rows = append(t.Rows, []string{u.ID, u.Name(), u.Email, u.Role().DisplayName(), date(u.CreatedAt)})
	}
	return t
}

func (v adminsView) Data() interface{} { return []backend.User(v) }

type reportsView []backend.Report

func (v reportsView) Table() ux.Table {
	t := ux.Table{
		Headers: []string{"ID", "TYPE", "REPORTER", "REPORTED", "STATUS", "ACTION", "FILED"},
		Empty:   "No reports found",
	}
	for _, r := range v {
		t.Rows = append(t.Rows, []string{
			r.ID, r.ReportType, refEmail(r.Reporter), refEmail(r.ReportedUser),
			r.Status, orDash(r.AdminAction), date(r.CreatedAt),
		})
	}
	return t
}

func (v reportsView) Data() interface{} { return []backend.Report(v) }

type storiesView []backend.Story

func (v storiesView) Table() ux.Table {
	t := ux.Table{
		Headers: []string{"ID", "USER", "MEDIA", "FLAGGED", "APPROVED", "POSTED"},
		Empty:   "No stories found",
	}
	for _, s := range v {
		t.Rows = append(t.Rows, []string{s.ID, refEmail(s.User), s.MediaType, yesNo(s.IsFlagged), yesNo(s.IsApproved), date(s.CreatedAt)})
	}
	return t
}

func (v storiesView) Data() interface{} { return []backend.Story(v) }

type categoriesView []backend.WishlistCategory

func (v categoriesView) Table() ux.Table {
	t := ux.Table{Headers: []string{"ID", "NAME"}, Empty: "No categories found"}
	for _, c := range v {
		t.Rows = append(t.Rows, []string{c.ID, c.Name})
	}
	return t
}

func (v categoriesView) Data() interface{} { return []backend.WishlistCategory(v) }

type presentCategoriesView []backend.PresentCategory

func (v presentCategoriesView) Table() ux.Table {
	t := ux.Table{Headers: []string{"ID", "NAME"}, Empty: "No present categories found"}
	for _, c := range v {
		t.Rows = append(t.Rows, []string{c.ID, c.Name})
	}
	return t
}

func (v presentCategoriesView) Data() interface{} { return []backend.PresentCategory(v) }

type productsView []backend.WishlistProduct

func (v productsView) Table() ux.Table {
	t := ux.Table{Headers: []string{"ID", "NAME", "CATEGORY", "ORDER"}, Empty: "No products found"}
	for _, p := range v {
		category := p.CategoryID
		if p.Category != nil {
			category = p.Category.Name
		}
		t.Rows = append(t.Rows, []string{p.ID, p.Name, orDash(category), strconv.Itoa(p.SortOrder)})
	}
	return t
}

func (v productsView) Data() interface{} { return []backend.WishlistProduct(v) }

type giftsView []backend.Gift

func (v giftsView) Table() ux.Table {
	t := ux.Table{Headers: []string{"ID", "NAME", "TYPE", "CATEGORY", "CREDITS", "ACTIVE"}, Empty: "No gifts found"}
	for _, g := range v {
		t.Rows = append(t.Rows, []string{g.ID, g.Name, orDash(g.Type), orDash(g.Category), strconv.Itoa(g.CreditCost), yesNo(g.IsActive)})
	}
	return t
}

func (v giftsView) Data() interface{} { return []backend.Gift(v) }

type ordersView []backend.GiftOrder

func (v ordersView) Table() ux.Table {
	t := ux.Table{Headers: []string{"ID", "ITEM", "FROM", "TO", "CREDITS", "STATUS", "ORDERED"}, Empty: "No gift orders found"}
	party := func(p *backend.OrderParty) string {
		if p == nil {
			return "-"
		}
		return orDash(p.Email)
	}
	for _, o := range v {
		item := "-"
		if o.Item != nil {
			item = o.Item.Name
		}
		t.Rows = append(t.Rows, []string{o.ID, item, party(o.Sender), party(o.Receiver), strconv.Itoa(o.CreditsUsed), o.DeliveryStatus, date(o.CreatedAt)})
	}
	return t
}

func (v ordersView) Data() interface{} { return []backend.GiftOrder(v) }

// statsView shows engagement statistics for a window.
type statsView struct {
	Range      backend.StatsRange  `json:"range" yaml:"range"`
	Statistics *backend.Statistics `json:"statistics" yaml:"statistics"`
}

func (v statsView) Table() ux.Table {
	s := v.Statistics
	rows := [][]string{
		{"Active users", strconv.Itoa(s.ActiveUsers)},
		{"Matches", strconv.Itoa(s.Matches)},
		{"Messages", strconv.Itoa(s.Messages)},
		{"Profile views", strconv.Itoa(s.ProfileViews)},
	}
	for _, p := range s.UserGrowth {
		rows = append(rows, []string{"New users " + p.Date, strconv.Itoa(p.Count)})
	}
	return ux.Table{Headers: []string{fmt.Sprintf("METRIC (%s)", v.Range), "VALUE"}, Rows: rows}
}

func (v statsView) Data() interface{} { return v }

// dashboardView combines the user summary with the weekly statistics.
type dashboardView struct {
	Users      *backend.UserStats  `json:"users" yaml:"users"`
	Statistics *backend.Statistics `json:"statistics" yaml:"statistics"`
}

func (v dashboardView) Table() ux.Table {
	return ux.Table{
		Headers: []string{"METRIC", "VALUE"},
		Rows: [][]string{
			{"Total users", strconv.Itoa(v.Users.TotalUsers)},
			{"Active users", strconv.Itoa(v.Users.ActiveUsers)},
			{"Verified users", strconv.Itoa(v.Users.VerifiedUsers)},
			{"New today", strconv.Itoa(v.Users.NewUsersToday)},
			{"Matches (7d)", strconv.Itoa(v.Statistics.Matches)},
			{"Messages (7d)", strconv.Itoa(v.Statistics.Messages)},
			{"Profile views (7d)", strconv.Itoa(v.Statistics.ProfileViews)},
		},
	}
}

func (v dashboardView) Data() interface{} { return v }

type creditsView struct {
	*backend.CreditSettings
}

func (v creditsView) Table() ux.Table {
	s := v.CreditSettings
	return ux.Table{
		Headers: []string{"ACTION", "CREDITS"},
		Rows: [][]string{
			{"Chat message", strconv.Itoa(s.ChatMessage)},
			{"Voice call (per minute)", strconv.Itoa(s.VoiceCallPerMinute)},
			{"Video call (per minute)", strconv.Itoa(s.VideoCallPerMinute)},
			{"Photo view", strconv.Itoa(s.PhotoViewCredits)},
			{"Video view", strconv.Itoa(s.VideoViewCredits)},
			{"Voice message", strconv.Itoa(s.VoiceMessageCredits)},
		},
	}
}

func (v creditsView) Data() interface{} { return v.CreditSettings }

var (
	_ ux.Tabular = identityView{}
	_ ux.Tabular = statusView{}
	_ ux.Tabular = usersView{}
	_ ux.Tabular = creditsView{}
)
