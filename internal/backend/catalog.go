package backend

import (
	"context"
	"net/url"

	"github.com/vantagedating/adminctl/internal/errors"
)

// OrderStatus is the delivery state of a gift order.
type OrderStatus string

// Delivery states
const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// ParseOrderStatus validates s. allowAll permits "all" as a list filter.
func ParseOrderStatus(s string, allowAll bool) (OrderStatus, error) {
	valid := []string{"pending", "processing", "delivered", "cancelled"}
	if allowAll {
		valid = append([]string{"all"}, valid...)
	}
	if s == "" {
		if allowAll {
			return "all", nil
		}
		return "", errors.NewInputRequiredError("status")
	}
	v, err := parseChoice("status", s, "", valid)
	return OrderStatus(v), err
}

type wishlistCategoriesResponse struct {
	Categories []WishlistCategory `json:"categories"`
}

type wishlistProductsResponse struct {
	Products []WishlistProduct `json:"products"`
}

type giftsResponse struct {
	Gifts []Gift `json:"gifts"`
}

type presentCategoriesResponse struct {
	Categories []PresentCategory `json:"categories"`
}

type giftOrdersResponse struct {
	Orders []GiftOrder `json:"orders"`
}

// ListWishlistCategories returns the wishlist categories.
func (c *Client) ListWishlistCategories(ctx context.Context) ([]WishlistCategory, error) {
	var resp wishlistCategoriesResponse
	if err := c.get(ctx, RouteWishlistCategories, RouteWishlistCategories, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Categories, nil
}

// ListWishlistProducts returns wishlist products, optionally of one category.
func (c *Client) ListWishlistProducts(ctx context.Context, categoryID string) ([]WishlistProduct, error) {
	var query url.Values
	if categoryID != "" {
		query = url.Values{"categoryId": {categoryID}}
	}

	var resp wishlistProductsResponse
	if err := c.get(ctx, RouteWishlistProducts, RouteWishlistProducts, query, &resp); err != nil {
		return nil, err
	}
	return resp.Products, nil
}

// DeleteWishlistProduct removes a wishlist product.
func (c *Client) DeleteWishlistProduct(ctx context.Context, id string) error {
	if id == "" {
		return errors.NewInputRequiredError("product id")
	}
	return c.delete(ctx, RouteWishlistProduct, resourcePath(RouteWishlistProduct, id))
}

// ListGifts returns the gift catalog. includeInactive also returns disabled entries.
func (c *Client) ListGifts(ctx context.Context, includeInactive bool) ([]Gift, error) {
	var query url.Values
	if includeInactive {
		query = url.Values{"includeInactive": {"1"}}
	}

	var resp giftsResponse
	if err := c.get(ctx, RouteGiftCatalog, RouteGiftCatalog, query, &resp); err != nil {
		return nil, err
	}
	return resp.Gifts, nil
}

// DeleteGift removes a catalog entry.
func (c *Client) DeleteGift(ctx context.Context, id string) error {
	if id == "" {
		return errors.NewInputRequiredError("gift id")
	}
	return c.delete(ctx, RouteGift, resourcePath(RouteGift, id))
}

// ListPresentCategories returns the present categories.
func (c *Client) ListPresentCategories(ctx context.Context) ([]PresentCategory, error) {
	var resp presentCategoriesResponse
	if err := c.get(ctx, RoutePresentCategories, RoutePresentCategories, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Categories, nil
}

// DeletePresentCategory removes a present category. The backend refuses
// categories still used by presents.
func (c *Client) DeletePresentCategory(ctx context.Context, id string) error {
	if id == "" {
		return errors.NewInputRequiredError("category id")
	}
	return c.delete(ctx, RoutePresentCategory, resourcePath(RoutePresentCategory, id))
}

// ListGiftOrders returns gift orders with the given delivery status.
func (c *Client) ListGiftOrders(ctx context.Context, status OrderStatus) ([]GiftOrder, error) {
	var query url.Values
	if status != "" && status != "all" {
		query = url.Values{"status": {string(status)}}
	}

	var resp giftOrdersResponse
	if err := c.get(ctx, RouteGiftOrders, RouteGiftOrders, query, &resp); err != nil {
		return nil, err
	}
	return resp.Orders, nil
}

// SetGiftOrderStatus moves an order to a new delivery status.
func (c *Client) SetGiftOrderStatus(ctx context.Context, id string, status OrderStatus) error {
	if id == "" {
		return errors.NewInputRequiredError("order id")
	}
	if _, err := ParseOrderStatus(string(status), false); err != nil {
		return err
	}
	body := map[string]string{"deliveryStatus": string(status)}
	return c.put(ctx, RouteGiftOrderStatus, resourcePath(RouteGiftOrderStatus, id), body, nil)
}
