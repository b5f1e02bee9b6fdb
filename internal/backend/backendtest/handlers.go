package backendtest

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"slices"
	"strconv"
	"time"

	"github.com/vantagedating/adminctl/internal/authz"
	"github.com/vantagedating/adminctl/internal/backend"
	"github.com/vantagedating/adminctl/internal/domain"
)

// gate is a server-side permission check; nil means any authenticated caller.
type gate func(*domain.Identity) bool

type handlerFunc func(w http.ResponseWriter, r *http.Request, caller *Account)

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST "+backend.RouteLogin, s.wrapPublic("POST "+backend.RouteLogin, s.handleLogin))
	mux.HandleFunc("POST "+backend.RouteRegister, s.wrapPublic("POST "+backend.RouteRegister, s.createUser))
	s.handle(mux, "GET "+backend.RouteMe, nil, s.handleMe)

	s.handle(mux, "GET "+backend.RouteUsers, authz.CanViewUsers, s.handleListUsers)
	s.handle(mux, "GET "+backend.RouteUserStats, nil, s.handleUserStats)
	s.handle(mux, "POST "+backend.RouteUsers, authz.CanCreateUsers, s.handleCreateUser)
	s.handle(mux, "PUT "+backend.RouteUserToggleActive, authz.CanEditUsers, s.handleToggleUser("isActive"))
	s.handle(mux, "PUT "+backend.RouteUserToggleVerified, authz.CanEditUsers, s.handleToggleUser("isVerified"))

	s.handle(mux, "GET "+backend.RouteProfiles, authz.CanViewUsers, s.handleListProfiles)
	s.handle(mux, "GET "+backend.RouteProfile, authz.CanViewUsers, s.handleGetProfile)

	s.handle(mux, "GET "+backend.RouteAdmins, nil, s.handleListAdmins)
	s.handle(mux, "POST "+backend.RouteAdmins, authz.CanCreateAdminUsers, s.handleCreateAdmin)
	s.handle(mux, "PUT "+backend.RouteAdmin, authz.CanCreateAdminUsers, s.handleUpdateAdmin)
	s.handle(mux, "DELETE "+backend.RouteAdmin, authz.CanDeleteAdminUsers, s.handleDeleteAdmin)

	s.handle(mux, "GET "+backend.RouteReports, authz.CanManageReports, s.handleListReports)
	s.handle(mux, "PUT "+backend.RouteReportResolve, authz.CanManageReports, s.handleResolveReport)

	s.handle(mux, "GET "+backend.RouteStories, authz.CanManageContent, s.handleListStories)
	s.handle(mux, "PUT "+backend.RouteStoryApprove, authz.CanManageContent, s.handleApproveStory)
	s.handle(mux, "DELETE "+backend.RouteStory, authz.CanManageContent, s.handleDeleteStory)

	s.handle(mux, "GET "+backend.RouteWishlistCategories, nil, s.handleListWishlistCategories)
	s.handle(mux, "GET "+backend.RouteWishlistProducts, nil, s.handleListWishlistProducts)
	s.handle(mux, "DELETE "+backend.RouteWishlistProduct, authz.CanManageContent, s.handleDeleteWishlistProduct)
	s.handle(mux, "GET "+backend.RouteGiftCatalog, nil, s.handleListGifts)
	s.handle(mux, "DELETE "+backend.RouteGift, authz.CanManageContent, s.handleDeleteGift)
	s.handle(mux, "GET "+backend.RoutePresentCategories, nil, s.handleListPresentCategories)
	s.handle(mux, "DELETE "+backend.RoutePresentCategory, authz.CanManageContent, s.handleDeletePresentCategory)
	s.handle(mux, "GET "+backend.RouteGiftOrders, nil, s.handleListOrders)
	s.handle(mux, "PUT "+backend.RouteGiftOrderStatus, authz.CanManageContent, s.handleOrderStatus)

	s.handle(mux, "GET "+backend.RouteStatistics, nil, s.handleStatistics)
	s.handle(mux, "GET "+backend.RouteCreditSettings, nil, s.handleCreditSettings)
	s.handle(mux, "PUT "+backend.RouteCreditSettings, authz.IsSuperAdmin, s.handleUpdateCreditSettings)

	return mux
}

// record stores r and returns true when a configured failure was written.
func (s *Server) record(w http.ResponseWriter, r *http.Request, pattern string) bool {
	var body []byte
	if r.Body != nil {
		body, _ = io.ReadAll(r.Body)
		r.Body = io.NopCloser(bytes.NewReader(body))
	}

	s.mu.Lock()
	s.requests = append(s.requests, Request{
		Method:        r.Method,
		Path:          r.URL.Path,
		Query:         r.URL.RawQuery,
		Authorization: r.Header.Get("Authorization"),
		RequestID:     r.Header.Get(backend.RequestIDHeader),
		Body:          body,
	})
	f, failing := s.failures[pattern]
	s.mu.Unlock()

	if !failing {
		return false
	}
	if f.body != "" {
		w.WriteHeader(f.status)
		_, _ = io.WriteString(w, f.body) //nolint:errcheck // test server
		return true
	}
	writeMessage(w, f.status, f.message)
	return true
}

func (s *Server) wrapPublic(pattern string, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.record(w, r, pattern) {
			return
		}
		h(w, r)
	}
}

func (s *Server) handle(mux *http.ServeMux, pattern string, allowed gate, h handlerFunc) {
	mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
		if s.record(w, r, pattern) {
			return
		}
		caller, reason := s.authenticate(r)
		if caller == nil {
			writeMessage(w, http.StatusUnauthorized, reason)
			return
		}
		if allowed != nil {
			id := caller.identity()
			if !allowed(&id) {
				writeMessage(w, http.StatusForbidden, "Access denied")
				return
			}
		}
		h(w, r, caller)
	})
}

func decodeBody(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req backend.LoginRequest
	if err := decodeBody(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	s.mu.Lock()
	a, ok := s.accounts[req.Email]
	if !ok || a.Password != req.Password {
		s.mu.Unlock()
		writeMessage(w, http.StatusBadRequest, "Invalid credentials")
		return
	}
	token, err := s.signLocked(a, time.Now().Add(s.tokenTTL))
	id := a.identity()
	s.mu.Unlock()
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "Server error")
		return
	}

	writeJSON(w, http.StatusOK, backend.LoginResponse{Token: token, User: id})
}

func (s *Server) handleMe(w http.ResponseWriter, _ *http.Request, caller *Account) {
	s.mu.Lock()
	override := s.meOverride
	s.mu.Unlock()

	if override != nil {
		writeJSON(w, http.StatusOK, map[string]any{"user": override})
		return
	}
	id := caller.identity()
	writeJSON(w, http.StatusOK, map[string]any{"user": id})
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request, _ *Account) {
	filter := r.URL.Query().Get("filter")

	s.mu.Lock()
	defer s.mu.Unlock()
	users := make([]backend.User, 0, len(s.users))
	for _, u := range s.users {
		if matchesFilter(u, filter) {
			users = append(users, u)
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"users": users})
}

// matchesFilter applies a user directory filter to u.
func matchesFilter(u backend.User, filter string) bool {
	switch filter {
	case "active":
		return u.IsActive
	case "inactive":
		return !u.IsActive
	case "verified":
		return u.IsVerified
	case "unverified":
		return !u.IsVerified
	}
	return true
}

// profileLocked returns the profile of userID with its owner fields filled
// from the current user record.
func (s *Server) profileLocked(userID string) (backend.MemberProfile, bool) {
	ui := slices.IndexFunc(s.users, func(u backend.User) bool { return u.ID == userID })
	pi := slices.IndexFunc(s.profiles, func(p backend.MemberProfile) bool { return p.UserID == userID })
	if ui < 0 || pi < 0 {
		return backend.MemberProfile{}, false
	}
	u := s.users[ui]
	p := s.profiles[pi]
	p.User = &backend.ProfileOwner{
		ID:         u.ID,
		Email:      u.Email,
		Credits:    s.credits[u.ID],
		IsActive:   u.IsActive,
		IsVerified: u.IsVerified,
	}
	return p, true
}

func (s *Server) handleListProfiles(w http.ResponseWriter, r *http.Request, _ *Account) {
	filter := r.URL.Query().Get("filter")

	s.mu.Lock()
	defer s.mu.Unlock()
	profiles := make([]backend.MemberProfile, 0, len(s.profiles))
	for _, u := range s.users {
		if !matchesFilter(u, filter) {
			continue
		}
		if p, ok := s.profileLocked(u.ID); ok {
			profiles = append(profiles, p)
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"profiles": profiles})
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request, _ *Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profileLocked(r.PathValue("id"))
	if !ok {
		writeMessage(w, http.StatusNotFound, "Profile not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"profile": p})
}

func (s *Server) handleUserStats(w http.ResponseWriter, _ *http.Request, _ *Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stats := backend.UserStats{TotalUsers: len(s.users), NewUsersToday: 1}
	for _, u := range s.users {
		if u.IsActive {
			stats.ActiveUsers++
		}
		if u.IsVerified {
			stats.VerifiedUsers++
		}
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request, _ *Account) {
	s.createUser(w, r)
}

// createUser serves both the admin create route and public registration.
func (s *Server) createUser(w http.ResponseWriter, r *http.Request) {
	var req backend.CreateUserRequest
	if err := decodeBody(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Age < backend.MinimumAge {
		writeJSON(w, http.StatusBadRequest, map[string]any{"errors": []map[string]string{{"msg": "Age must be at least 18"}}})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == req.Email {
			writeMessage(w, http.StatusBadRequest, "User already exists")
			return
		}
	}
	s.nextID++
	now := time.Now().UTC().Truncate(time.Second)
	u := backend.User{
		ID:       "user-" + strconv.Itoa(s.nextID),
		Email:    req.Email,
		UserType: "regular",
		IsActive: true,
		Profile: &backend.Profile{
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Age:       req.Age,
			Gender:    req.Gender,
		},
		CreatedAt: &now,
	}
	s.users = append(s.users, u)
	writeJSON(w, http.StatusCreated, map[string]any{"user": u})
}

func (s *Server) handleToggleUser(field string) handlerFunc {
	return func(w http.ResponseWriter, r *http.Request, _ *Account) {
		var body map[string]bool
		if err := decodeBody(r, &body); err != nil {
			writeMessage(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		value, ok := body[field]
		if !ok {
			writeMessage(w, http.StatusBadRequest, field+" is required")
			return
		}

		s.mu.Lock()
		defer s.mu.Unlock()
		i := slices.IndexFunc(s.users, func(u backend.User) bool { return u.ID == r.PathValue("id") })
		if i < 0 {
			writeMessage(w, http.StatusNotFound, "User not found")
			return
		}
		if field == "isActive" {
			s.users[i].IsActive = value
		} else {
			s.users[i].IsVerified = value
		}
		writeJSON(w, http.StatusOK, map[string]any{"user": s.users[i]})
	}
}

func (s *Server) handleListAdmins(w http.ResponseWriter, _ *http.Request, _ *Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	admins := make([]backend.User, len(s.admins))
	copy(admins, s.admins)
	writeJSON(w, http.StatusOK, map[string]any{"admins": admins})
}

func (s *Server) handleCreateAdmin(w http.ResponseWriter, r *http.Request, _ *Account) {
	var req backend.CreateAdminRequest
	if err := decodeBody(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Role != domain.RoleAdmin && req.Role != domain.RoleViewer {
		writeMessage(w, http.StatusBadRequest, "Invalid role")
		return
	}
	if _, exists := s.Account(req.Email); exists {
		writeMessage(w, http.StatusBadRequest, "User already exists")
		return
	}

	s.AddAccount(Account{
		Email:     req.Email,
		Password:  req.Password,
		UserType:  string(req.Role),
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})

	s.mu.Lock()
	created := s.admins[len(s.admins)-1]
	s.mu.Unlock()
	writeJSON(w, http.StatusCreated, map[string]any{"admin": created})
}

func (s *Server) handleUpdateAdmin(w http.ResponseWriter, r *http.Request, _ *Account) {
	var req backend.UpdateAdminRequest
	if err := decodeBody(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	i := slices.IndexFunc(s.admins, func(u backend.User) bool { return u.ID == r.PathValue("id") })
	if i < 0 {
		writeMessage(w, http.StatusNotFound, "Admin not found")
		return
	}
	target := &s.admins[i]
	if target.UserType == string(domain.RoleSuperAdmin) && req.Role != domain.RoleSuperAdmin {
		writeMessage(w, http.StatusForbidden, "Super admin role cannot be changed")
		return
	}

	acct := s.accounts[target.Email]
	delete(s.accounts, target.Email)
	target.Email = req.Email
	target.UserType = string(req.Role)
	target.Profile = &backend.Profile{FirstName: req.FirstName, LastName: req.LastName}
	if acct != nil {
		acct.Email = req.Email
		acct.UserType = string(req.Role)
		acct.FirstName = req.FirstName
		acct.LastName = req.LastName
		if req.Password != "" {
			acct.Password = req.Password
		}
		s.accounts[acct.Email] = acct
	}
	writeJSON(w, http.StatusOK, map[string]any{"admin": *target})
}

func (s *Server) handleDeleteAdmin(w http.ResponseWriter, r *http.Request, _ *Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := slices.IndexFunc(s.admins, func(u backend.User) bool { return u.ID == r.PathValue("id") })
	if i < 0 {
		writeMessage(w, http.StatusNotFound, "Admin not found")
		return
	}
	if s.admins[i].UserType == string(domain.RoleSuperAdmin) {
		writeMessage(w, http.StatusForbidden, "Super admin cannot be deleted")
		return
	}
	delete(s.accounts, s.admins[i].Email)
	s.admins = slices.Delete(s.admins, i, i+1)
	writeMessage(w, http.StatusOK, "Admin deleted")
}

func (s *Server) handleListReports(w http.ResponseWriter, r *http.Request, _ *Account) {
	status := r.URL.Query().Get("status")

	s.mu.Lock()
	defer s.mu.Unlock()
	reports := make([]backend.Report, 0, len(s.reports))
	for _, rep := range s.reports {
		if status != "" && status != "all" && rep.Status != status {
			continue
		}
		reports = append(reports, rep)
	}
	writeJSON(w, http.StatusOK, map[string]any{"reports": reports})
}

func (s *Server) handleResolveReport(w http.ResponseWriter, r *http.Request, _ *Account) {
	var body struct {
		Action string `json:"action"`
	}
	if err := decodeBody(r, &body); err != nil || body.Action == "" {
		writeMessage(w, http.StatusBadRequest, "Action is required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	i := slices.IndexFunc(s.reports, func(rep backend.Report) bool { return rep.ID == r.PathValue("id") })
	if i < 0 {
		writeMessage(w, http.StatusNotFound, "Report not found")
		return
	}
	now := time.Now().UTC().Truncate(time.Second)
	s.reports[i].Status = "resolved"
	s.reports[i].AdminAction = body.Action
	s.reports[i].ResolvedAt = &now
	writeJSON(w, http.StatusOK, map[string]any{"report": s.reports[i]})
}

func (s *Server) handleListStories(w http.ResponseWriter, r *http.Request, _ *Account) {
	filter := r.URL.Query().Get("filter")

	s.mu.Lock()
	defer s.mu.Unlock()
	stories := make([]backend.Story, 0, len(s.stories))
	for _, st := range s.stories {
		if filter == "flagged" && !st.IsFlagged {
			continue
		}
		if filter == "active" && st.IsFlagged {
			continue
		}
		stories = append(stories, st)
	}
	writeJSON(w, http.StatusOK, map[string]any{"stories": stories})
}

func (s *Server) handleApproveStory(w http.ResponseWriter, r *http.Request, _ *Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := slices.IndexFunc(s.stories, func(st backend.Story) bool { return st.ID == r.PathValue("id") })
	if i < 0 {
		writeMessage(w, http.StatusNotFound, "Story not found")
		return
	}
	s.stories[i].IsFlagged = false
	s.stories[i].IsApproved = true
	writeJSON(w, http.StatusOK, map[string]any{"story": s.stories[i]})
}

func (s *Server) handleDeleteStory(w http.ResponseWriter, r *http.Request, _ *Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := slices.IndexFunc(s.stories, func(st backend.Story) bool { return st.ID == r.PathValue("id") })
	if i < 0 {
		writeMessage(w, http.StatusNotFound, "Story not found")
		return
	}
	s.stories = slices.Delete(s.stories, i, i+1)
	writeMessage(w, http.StatusOK, "Story deleted")
}

func (s *Server) handleListWishlistCategories(w http.ResponseWriter, _ *http.Request, _ *Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"categories": s.wishlistCats})
}

func (s *Server) handleListWishlistProducts(w http.ResponseWriter, r *http.Request, _ *Account) {
	categoryID := r.URL.Query().Get("categoryId")

	s.mu.Lock()
	defer s.mu.Unlock()
	products := make([]backend.WishlistProduct, 0, len(s.wishlistProducts))
	for _, p := range s.wishlistProducts {
		if categoryID != "" && p.CategoryID != categoryID {
			continue
		}
		products = append(products, p)
	}
	writeJSON(w, http.StatusOK, map[string]any{"products": products})
}

func (s *Server) handleDeleteWishlistProduct(w http.ResponseWriter, r *http.Request, _ *Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := slices.IndexFunc(s.wishlistProducts, func(p backend.WishlistProduct) bool { return p.ID == r.PathValue("id") })
	if i < 0 {
		writeMessage(w, http.StatusNotFound, "Product not found")
		return
	}
	s.wishlistProducts = slices.Delete(s.wishlistProducts, i, i+1)
	writeMessage(w, http.StatusOK, "Product deleted")
}

func (s *Server) handleListGifts(w http.ResponseWriter, r *http.Request, _ *Account) {
	includeInactive := r.URL.Query().Get("includeInactive") == "1"

	s.mu.Lock()
	defer s.mu.Unlock()
	gifts := make([]backend.Gift, 0, len(s.gifts))
	for _, g := range s.gifts {
		if !includeInactive && !g.IsActive {
			continue
		}
		gifts = append(gifts, g)
	}
	writeJSON(w, http.StatusOK, map[string]any{"gifts": gifts})
}

func (s *Server) handleDeleteGift(w http.ResponseWriter, r *http.Request, _ *Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := slices.IndexFunc(s.gifts, func(g backend.Gift) bool { return g.ID == r.PathValue("id") })
	if i < 0 {
		writeMessage(w, http.StatusNotFound, "Gift not found")
		return
	}
	s.gifts = slices.Delete(s.gifts, i, i+1)
	writeMessage(w, http.StatusOK, "Gift deleted")
}

func (s *Server) handleListPresentCategories(w http.ResponseWriter, _ *http.Request, _ *Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"categories": s.presentCategories})
}

func (s *Server) handleDeletePresentCategory(w http.ResponseWriter, r *http.Request, _ *Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := slices.IndexFunc(s.presentCategories, func(c backend.PresentCategory) bool { return c.ID == r.PathValue("id") })
	if i < 0 {
		writeMessage(w, http.StatusNotFound, "Present category not found")
		return
	}
	name := s.presentCategories[i].Name
	if slices.ContainsFunc(s.gifts, func(g backend.Gift) bool { return g.Type == "present" && g.Category == name }) {
		writeMessage(w, http.StatusBadRequest, "Category is used by existing presents")
		return
	}
	s.presentCategories = slices.Delete(s.presentCategories, i, i+1)
	writeMessage(w, http.StatusOK, "Present category deleted")
}

func (s *Server) handleListOrders(w http.ResponseWriter, r *http.Request, _ *Account) {
	status := r.URL.Query().Get("status")

	s.mu.Lock()
	defer s.mu.Unlock()
	orders := make([]backend.GiftOrder, 0, len(s.orders))
	for _, o := range s.orders {
		if status != "" && o.DeliveryStatus != status {
			continue
		}
		orders = append(orders, o)
	}
	writeJSON(w, http.StatusOK, map[string]any{"orders": orders})
}

func (s *Server) handleOrderStatus(w http.ResponseWriter, r *http.Request, _ *Account) {
	var body struct {
		DeliveryStatus string `json:"deliveryStatus"`
	}
	if err := decodeBody(r, &body); err != nil || body.DeliveryStatus == "" {
		writeMessage(w, http.StatusBadRequest, "deliveryStatus is required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	i := slices.IndexFunc(s.orders, func(o backend.GiftOrder) bool { return o.ID == r.PathValue("id") })
	if i < 0 {
		writeMessage(w, http.StatusNotFound, "Order not found")
		return
	}
	s.orders[i].DeliveryStatus = body.DeliveryStatus
	if body.DeliveryStatus == "delivered" {
		now := time.Now().UTC().Truncate(time.Second)
		s.orders[i].DeliveredAt = &now
	}
	writeJSON(w, http.StatusOK, map[string]any{"order": s.orders[i]})
}

func (s *Server) handleStatistics(w http.ResponseWriter, r *http.Request, _ *Account) {
	days := map[string]int{"7d": 7, "30d": 30, "90d": 90, "all": 365}[r.URL.Query().Get("range")]
	if days == 0 {
		days = 7
	}

	s.mu.Lock()
	active := 0
	for _, u := range s.users {
		if u.IsActive {
			active++
		}
	}
	s.mu.Unlock()

	growth := make([]backend.GrowthPoint, 0, 3)
	end := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)
	for i := 2; i >= 0; i-- {
		growth = append(growth, backend.GrowthPoint{
			Date:  end.AddDate(0, 0, -i*days/3).Format("2006-01-02"),
			Count: 10 * (3 - i),
		})
	}

	writeJSON(w, http.StatusOK, backend.Statistics{
		UserGrowth:   growth,
		Matches:      12 * days,
		Messages:     240 * days,
		ProfileViews: 90 * days,
		ActiveUsers:  active,
	})
}

func (s *Server) handleCreditSettings(w http.ResponseWriter, _ *http.Request, _ *Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"settings": s.creditSettings})
}

func (s *Server) handleUpdateCreditSettings(w http.ResponseWriter, r *http.Request, _ *Account) {
	var settings backend.CreditSettings
	if err := decodeBody(r, &settings); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.creditSettings = settings
	writeJSON(w, http.StatusOK, map[string]any{"settings": s.creditSettings})
}
