package backend

import (
	"context"
	"net/url"
	"strings"

	"github.com/vantagedating/adminctl/internal/errors"
)

// ReportStatus narrows the report queue.
type ReportStatus string

// Report queue filters
const (
	ReportStatusPending  ReportStatus = "pending"
	ReportStatusResolved ReportStatus = "resolved"
	ReportStatusAll      ReportStatus = "all"
)

// ReportAction is the moderator's verdict on a report.
type ReportAction string

// Report verdicts
const (
	ReportActionApprove ReportAction = "approve"
	ReportActionReject  ReportAction = "reject"
	ReportActionWarn    ReportAction = "warn"
	ReportActionBan     ReportAction = "ban"
)

// StoryFilter narrows the story list.
type StoryFilter string

// Story filters
const (
	StoryFilterAll     StoryFilter = "all"
	StoryFilterFlagged StoryFilter = "flagged"
	StoryFilterActive  StoryFilter = "active"
)

func parseChoice(field, s, fallback string, valid []string) (string, error) {
	if s == "" {
		return fallback, nil
	}
	for _, v := range valid {
		if s == v {
			return s, nil
		}
	}
	return "", errors.NewInputInvalidError(field, s, strings.Join(valid, ", "))
}

// ParseReportStatus validates s. An empty string selects pending.
func ParseReportStatus(s string) (ReportStatus, error) {
	v, err := parseChoice("status", s, string(ReportStatusPending), []string{"pending", "resolved", "all"})
	return ReportStatus(v), err
}

// ParseReportAction validates s. An action is required.
func ParseReportAction(s string) (ReportAction, error) {
	if s == "" {
		return "", errors.NewInputRequiredError("action")
	}
	v, err := parseChoice("action", s, "", []string{"approve", "reject", "warn", "ban"})
	return ReportAction(v), err
}

// ParseStoryFilter validates s. An empty string selects all.
func ParseStoryFilter(s string) (StoryFilter, error) {
	v, err := parseChoice("filter", s, string(StoryFilterAll), []string{"all", "flagged", "active"})
	return StoryFilter(v), err
}

type reportsResponse struct {
	Reports []Report `json:"reports"`
}

type storiesResponse struct {
	Stories []Story `json:"stories"`
}

// ListReports returns reports with the given status.
func (c *Client) ListReports(ctx context.Context, status ReportStatus) ([]Report, error) {
	if status == "" {
		status = ReportStatusPending
	}
	query := url.Values{"status": {string(status)}}

	var resp reportsResponse
	if err := c.get(ctx, RouteReports, RouteReports, query, &resp); err != nil {
		return nil, err
	}
	return resp.Reports, nil
}

// ResolveReport closes a report with the given action.
func (c *Client) ResolveReport(ctx context.Context, id string, action ReportAction) error {
	if id == "" {
		return errors.NewInputRequiredError("report id")
	}
	if _, err := ParseReportAction(string(action)); err != nil {
		return err
	}
	body := map[string]string{"action": string(action)}
	return c.put(ctx, RouteReportResolve, resourcePath(RouteReportResolve, id), body, nil)
}

// ListStories returns stories matching filter.
func (c *Client) ListStories(ctx context.Context, filter StoryFilter) ([]Story, error) {
	if filter == "" {
		filter = StoryFilterAll
	}
	query := url.Values{"filter": {string(filter)}}

	var resp storiesResponse
	if err := c.get(ctx, RouteStories, RouteStories, query, &resp); err != nil {
		return nil, err
	}
	return resp.Stories, nil
}

// ApproveStory clears a story for display.
func (c *Client) ApproveStory(ctx context.Context, id string) error {
	if id == "" {
		return errors.NewInputRequiredError("story id")
	}
	return c.put(ctx, RouteStoryApprove, resourcePath(RouteStoryApprove, id), nil, nil)
}

// DeleteStory removes a story.
func (c *Client) DeleteStory(ctx context.Context, id string) error {
	if id == "" {
		return errors.NewInputRequiredError("story id")
	}
	return c.delete(ctx, RouteStory, resourcePath(RouteStory, id))
}
