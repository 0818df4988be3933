package overview

import (
	"context"
	"errors"
	"fmt"
	"time"

	"walletadmin/internal/domain/account"
	"walletadmin/internal/domain/activity"
	"walletadmin/internal/domain/notification"
	"walletadmin/internal/domain/transaction"
	"walletadmin/internal/domain/user"
)

// DefaultListLimit bounds how many rows a page loads from the database
const DefaultListLimit = 500

// Options tunes the read pipeline
type Options struct {
	Grouper   activity.Grouper
	Patterns  notification.PatternTable
	ListLimit int
}

// Service builds the admin pages: it loads records, attaches their user and
// bank account, then filters, groups and resolves them for display.
type Service struct {
	users         user.Repository
	accounts      account.Repository
	records       transaction.Repository
	notifications notification.Repository
	grouper       activity.Grouper
	patterns      notification.PatternTable
	limit         int
}

// NewService creates a new overview service
func NewService(users user.Repository, accounts account.Repository, records transaction.Repository, notifications notification.Repository, opts Options) *Service {
	if opts.Patterns == nil {
		opts.Patterns = notification.DefaultPatterns
	}
	if opts.ListLimit <= 0 {
		opts.ListLimit = DefaultListLimit
	}
	return &Service{
		users:         users,
		accounts:      accounts,
		records:       records,
		notifications: notifications,
		grouper:       opts.Grouper,
		patterns:      opts.Patterns,
		limit:         opts.ListLimit,
	}
}

// ListRequests returns bank requests matching c, grouped by day
func (s *Service) ListRequests(ctx context.Context, c activity.Criteria) ([]activity.DateGroup[RecordView], error) {
	return s.listRecords(ctx, transaction.ListParams{Kind: transaction.KindRequest, Limit: s.limit}, c)
}

// ListTransactions returns transaction history matching c, grouped by day.
// userID 0 lists every user.
func (s *Service) ListTransactions(ctx context.Context, userID int64, c activity.Criteria) ([]activity.DateGroup[RecordView], error) {
	if userID < 0 {
		return nil, errors.New("valid user ID is required")
	}
	return s.listRecords(ctx, transaction.ListParams{Kind: transaction.KindHistory, UserID: userID, Limit: s.limit}, c)
}

func (s *Service) listRecords(ctx context.Context, params transaction.ListParams, c activity.Criteria) ([]activity.DateGroup[RecordView], error) {
	records, err := s.records.List(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s records: %w", params.Kind, err)
	}
	if err := s.attachRelations(ctx, records); err != nil {
		return nil, err
	}

	filtered := activity.Filter(records, c)
	groups := activity.Group(s.grouper, filtered, func(r *transaction.Record) time.Time { return r.CreatedAt })
	return mapGroups(groups, newRecordView), nil
}

// attachRelations fills the User and BankAccount of each record
func (s *Service) attachRelations(ctx context.Context, records []*transaction.Record) error {
	if len(records) == 0 {
		return nil
	}

	ids := uniqueUserIDs(records)
	users, err := s.users.ListByIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("failed to load record owners: %w", err)
	}
	accounts, err := s.accounts.ListByUserIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("failed to load bank accounts: %w", err)
	}

	for _, r := range records {
		if r.User == nil {
			r.User = users[r.UserID]
		}
		if r.BankAccount == nil && r.BankAccountID != nil {
			owned := accounts[r.UserID]
			for i := range owned {
				if owned[i].ID == *r.BankAccountID {
					r.BankAccount = &owned[i]
					break
				}
			}
		}
	}
	return nil
}

func uniqueUserIDs(records []*transaction.Record) []int64 {
	seen := make(map[int64]struct{}, len(records))
	ids := make([]int64, 0, len(records))
	for _, r := range records {
		if r.UserID <= 0 {
			continue
		}
		if _, ok := seen[r.UserID]; ok {
			continue
		}
		seen[r.UserID] = struct{}{}
		ids = append(ids, r.UserID)
	}
	return ids
}

// ListUsers returns user rows matching c. Only status and search apply to users.
func (s *Service) ListUsers(ctx context.Context, c activity.Criteria) ([]UserRow, error) {
	users, err := s.users.List(ctx, user.ListParams{Limit: s.limit})
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	if err := s.attachHoldings(ctx, users); err != nil {
		return nil, err
	}

	c.Type = ""
	filtered := activity.Filter(users, c)

	rows := make([]UserRow, len(filtered))
	for i, u := range filtered {
		rows[i] = newUserRow(u)
	}
	return rows, nil
}

// GetUser returns a user with the primary account and total balance resolved
func (s *Service) GetUser(ctx context.Context, id int64) (*UserDetail, error) {
	if id <= 0 {
		return nil, user.ErrUserNotFound
	}
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.attachHoldings(ctx, []*user.User{u}); err != nil {
		return nil, err
	}

	primary, _ := account.ResolvePrimary(u.BankAccounts)
	status := u.StatusLabel()
	return &UserDetail{
		User:           u,
		Status:         status,
		Color:          activity.ColorForStatus(status),
		PrimaryAccount: primary,
		AccountLabel:   primary.Label(),
		TotalBalance:   account.SumBalances(u.Portfolios),
	}, nil
}

func (s *Service) attachHoldings(ctx context.Context, users []*user.User) error {
	if len(users) == 0 {
		return nil
	}
	ids := make([]int64, len(users))
	for i, u := range users {
		ids[i] = u.ID
	}

	accounts, err := s.accounts.ListByUserIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("failed to load bank accounts: %w", err)
	}
	portfolios, err := s.accounts.ListPortfoliosByUserIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("failed to load portfolios: %w", err)
	}

	for _, u := range users {
		if u.BankAccounts == nil {
			u.BankAccounts = accounts[u.ID]
		}
		if u.Portfolios == nil {
			u.Portfolios = portfolios[u.ID]
		}
	}
	return nil
}

// Activity returns a user's notifications grouped by day, with bank details
// extracted from each message.
func (s *Service) Activity(ctx context.Context, userID int64) ([]activity.DateGroup[ActivityItem], error) {
	if userID <= 0 {
		return nil, user.ErrUserNotFound
	}
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	notes, err := s.notifications.ListByUserID(ctx, userID, s.limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}

	groups := activity.Group(s.grouper, notes, func(n *notification.Notification) time.Time { return n.CreatedAt })
	return mapGroups(groups, func(n *notification.Notification) ActivityItem {
		return newActivityItem(n, s.patterns)
	}), nil
}

// PendingBacklog counts pending requests and pending history entries
func (s *Service) PendingBacklog(ctx context.Context) (Backlog, error) {
	var b Backlog
	var err error

	b.PendingRequests, err = s.records.CountByStatus(ctx, transaction.KindRequest, transaction.StatusPending)
	if err != nil {
		return Backlog{}, fmt.Errorf("failed to count pending requests: %w", err)
	}
	b.PendingHistory, err = s.records.CountByStatus(ctx, transaction.KindHistory, transaction.StatusPending)
	if err != nil {
		return Backlog{}, fmt.Errorf("failed to count pending history: %w", err)
	}
	return b, nil
}
