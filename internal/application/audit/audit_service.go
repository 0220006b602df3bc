package audit

import (
	"context"
	"sort"
	"time"

	"github.com/garmsource/backend/internal/domain/audit"
	"github.com/garmsource/backend/internal/domain/shared"
)

// AuditService handles the append-only audit trail
type AuditService struct {
	logRepo audit.LogRepository
	clock   shared.Clock
}

// NewAuditService creates a new AuditService
func NewAuditService(logRepo audit.LogRepository, clock shared.Clock) *AuditService {
	if clock == nil {
		clock = shared.SystemClock()
	}
	return &AuditService{
		logRepo: logRepo,
		clock:   clock,
	}
}

// Record appends an entry to the trail
func (s *AuditService) Record(ctx context.Context, req RecordEntryRequest) (*EntryResponse, error) {
	entry, err := audit.NewLogEntry(
		audit.ActionType(req.ActionType),
		req.EntityType,
		req.EntityID,
		req.Description,
		audit.EntryRefs{OrderID: req.OrderID, CustomerID: req.CustomerID},
	)
	if err != nil {
		return nil, err
	}
	if req.Metadata != nil {
		entry.WithMetadata(req.Metadata)
	}
	if req.PerformedBy != "" {
		entry.WithPerformedBy(req.PerformedBy)
	}

	if err := s.logRepo.Append(ctx, entry); err != nil {
		return nil, err
	}

	response := ToEntryResponse(entry)
	return &response, nil
}

// ListRecent returns the newest entries, newest first
func (s *AuditService) ListRecent(ctx context.Context, limit int) ([]EntryResponse, error) {
	if limit <= 0 {
		limit = 50
	}
	entries, err := s.logRepo.FindRecent(ctx, limit)
	if err != nil {
		return nil, err
	}
	return ToEntryResponses(entries), nil
}

// List returns entries matching the filter, newest first
func (s *AuditService) List(ctx context.Context, filter ListFilter) ([]EntryResponse, int64, error) {
	if filter.Limit <= 0 {
		filter.Limit = 50
	}

	query := audit.Query{
		Limit:      filter.Limit,
		Offset:     filter.Offset,
		OrderID:    filter.OrderID,
		CustomerID: filter.CustomerID,
		EntityType: filter.EntityType,
		ActionType: audit.ActionType(filter.ActionType),
	}

	entries, err := s.logRepo.Find(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.logRepo.Count(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	return ToEntryResponses(entries), total, nil
}

// ListGroupedByDay returns the recent timeline bucketed by calendar day.
// Buckets are labelled Today/Yesterday/full date, sorted newest day
// first, and each bucket keeps its entries in descending createdAt
// order. This is a pure presentation transform over ListRecent.
func (s *AuditService) ListGroupedByDay(ctx context.Context, limit int) ([]DayGroup, error) {
	entries, err := s.ListRecent(ctx, limit)
	if err != nil {
		return nil, err
	}
	return GroupByDay(entries, s.clock.Now()), nil
}

// GroupByDay buckets entries by the local calendar day of their
// createdAt. Entries are assumed newest-first and keep that order
// inside each bucket.
func GroupByDay(entries []EntryResponse, now time.Time) []DayGroup {
	byDay := make(map[string]*DayGroup)
	order := make([]string, 0)

	today := now.Format("2006-01-02")
	yesterday := now.AddDate(0, 0, -1).Format("2006-01-02")

	for _, entry := range entries {
		day := entry.CreatedAt.In(now.Location()).Format("2006-01-02")
		group, ok := byDay[day]
		if !ok {
			label := entry.CreatedAt.In(now.Location()).Format("Jan 2, 2006")
			switch day {
			case today:
				label = "Today"
			case yesterday:
				label = "Yesterday"
			}
			group = &DayGroup{Date: day, Label: label}
			byDay[day] = group
			order = append(order, day)
		}
		group.Entries = append(group.Entries, entry)
	}

	sort.Sort(sort.Reverse(sort.StringSlice(order)))

	groups := make([]DayGroup, 0, len(order))
	for _, day := range order {
		groups = append(groups, *byDay[day])
	}
	return groups
}
