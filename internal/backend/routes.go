package backend

// Route templates. {id} is replaced with the escaped resource id.
const (
	RouteLogin    = "/api/auth/login"
	RouteMe       = "/api/auth/me"
	RouteRegister = "/api/auth/register"

	RouteUsers              = "/api/admin/users"
	RouteUserStats          = "/api/admin/users/stats"
	RouteUserToggleActive   = "/api/admin/users/{id}/toggle-active"
	RouteUserToggleVerified = "/api/admin/users/{id}/toggle-verified"
	RouteProfiles           = "/api/admin/profiles"
	RouteProfile            = "/api/admin/profiles/{id}"
	RouteAdmins             = "/api/admin/admins"
	RouteAdmin              = "/api/admin/admins/{id}"
	RouteReports            = "/api/admin/reports"
	RouteReportResolve      = "/api/admin/reports/{id}/resolve"
	RouteStories            = "/api/admin/stories"
	RouteStory              = "/api/admin/stories/{id}"
	RouteStoryApprove       = "/api/admin/stories/{id}/approve"
	RouteWishlistCategories = "/api/admin/wishlist-categories"
	RouteWishlistProducts   = "/api/admin/wishlist-products"
	RouteWishlistProduct    = "/api/admin/wishlist-products/{id}"
	RouteGiftCatalog        = "/api/admin/gift-catalog"
	RouteGift               = "/api/admin/gift-catalog/{id}"
	RoutePresentCategories  = "/api/admin/present-categories"
	RoutePresentCategory    = "/api/admin/present-categories/{id}"
	RouteGiftOrders         = "/api/admin/gift-orders"
	RouteGiftOrderStatus    = "/api/admin/gift-orders/{id}/status"
	RouteStatistics         = "/api/admin/statistics"
	RouteCreditSettings     = "/api/admin/credit-settings"
)
