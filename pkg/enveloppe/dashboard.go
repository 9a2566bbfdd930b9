package enveloppe

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/mbellanger/enveloppe-go/internal/cache"
)

const (
	defaultListCacheTTL   = 5 * time.Minute
	defaultDetailCacheTTL = 5 * time.Minute
	defaultCacheSize      = 64
)

// DashboardAggregate is the in-memory bundle the engine manages as a single
// unit of consistency. It is replaced wholesale on every successful
// reconciliation or rollback, never partially mutated through sequential
// writes.
type DashboardAggregate struct {
	Budget       *Budget
	BudgetLines  []BudgetLine
	Transactions []Transaction
}

// clone returns a copy safe for local mutation. CheckedAt pointers are
// shared; flips always replace the pointer, never write through it.
func (a *DashboardAggregate) clone() *DashboardAggregate {
	if a == nil {
		return nil
	}
	out := &DashboardAggregate{
		BudgetLines:  append([]BudgetLine(nil), a.BudgetLines...),
		Transactions: append([]Transaction(nil), a.Transactions...),
	}
	if a.Budget != nil {
		budget := *a.Budget
		out.Budget = &budget
	}
	return out
}

// DashboardOptions configures a Dashboard
type DashboardOptions struct {
	// PayDay is the configured pay day of month; values <= 1 mean the
	// budget period follows the plain calendar month
	PayDay int

	// ListCacheTTL is how long a cached budget list stays fresh
	ListCacheTTL time.Duration

	// DetailCacheTTL is how long a cached detail bundle stays fresh
	DetailCacheTTL time.Duration

	// Logger for debug logging
	Logger Logger

	// Now overrides the clock, for tests
	Now func() time.Time
}

// Dashboard holds the aggregate for the active budget period and applies
// optimistic mutations against it, reconciling with server-confirmed data
// and rolling back on failure.
type Dashboard struct {
	budgets      BudgetService
	transactions TransactionService
	lines        BudgetLineService

	listCache   cache.Cache[[]*Budget]
	detailCache cache.Cache[*BudgetDetails]

	logger Logger
	now    func() time.Time
	payDay int

	periodMu sync.Mutex
	period   BudgetPeriod

	res *resource[*DashboardAggregate]
}

// NewDashboard creates a dashboard over the given collaborator services.
// The active period starts at the one resolved for the current date.
func NewDashboard(budgets BudgetService, transactions TransactionService, lines BudgetLineService, opts *DashboardOptions) *Dashboard {
	if opts == nil {
		opts = &DashboardOptions{}
	}

	now := opts.Now
	if now == nil {
		now = time.Now
	}

	listTTL := opts.ListCacheTTL
	if listTTL <= 0 {
		listTTL = defaultListCacheTTL
	}
	detailTTL := opts.DetailCacheTTL
	if detailTTL <= 0 {
		detailTTL = defaultDetailCacheTTL
	}

	d := &Dashboard{
		budgets:      budgets,
		transactions: transactions,
		lines:        lines,
		listCache:    cache.NewLRUCache[[]*Budget](defaultCacheSize, listTTL),
		detailCache:  cache.NewLRUCache[*BudgetDetails](defaultCacheSize, detailTTL),
		logger:       opts.Logger,
		now:          now,
		payDay:       opts.PayDay,
	}
	d.period = ResolvePeriod(now(), opts.PayDay)
	d.res = newResource(d.load)

	return d
}

// Dashboard creates a dashboard backed by this client's services
func (c *Client) Dashboard(opts *DashboardOptions) *Dashboard {
	if opts == nil {
		opts = &DashboardOptions{}
	}
	if opts.Logger == nil {
		opts.Logger = c.options.Logger
	}
	return NewDashboard(c.Budgets, c.Transactions, c.BudgetLines, opts)
}

// Aggregate returns the current aggregate, or nil before the first
// successful load
func (d *Dashboard) Aggregate() *DashboardAggregate {
	return d.res.Value()
}

// Loading reports whether a load is in flight
func (d *Dashboard) Loading() bool {
	return d.res.Loading()
}

// Err returns the error recorded by the last load, if any
func (d *Dashboard) Err() error {
	return d.res.Err()
}

// Period returns the active budget period
func (d *Dashboard) Period() BudgetPeriod {
	d.periodMu.Lock()
	defer d.periodMu.Unlock()
	return d.period
}

// Totals derives the display numbers from the current aggregate
func (d *Dashboard) Totals() Totals {
	return ComputeTotals(d.res.Value())
}

// Lines returns the display-ready line list, rollover line included
func (d *Dashboard) Lines() []BudgetLine {
	return DisplayLines(d.res.Value())
}

// Refresh reloads the aggregate for the active period. A failed load keeps
// the stale aggregate and records the error (see Err). A refresh requested
// while a load is in flight folds into that load rather than starting a
// second one.
func (d *Dashboard) Refresh(ctx context.Context) error {
	return d.res.Reload(ctx)
}

// SetPeriod changes the active period and loads its aggregate. When a load
// is already in flight the change is not dropped: the running load re-reads
// the active period and fetches again, so the committed aggregate always
// belongs to the period set last.
func (d *Dashboard) SetPeriod(ctx context.Context, period BudgetPeriod) error {
	d.periodMu.Lock()
	d.period = period
	d.periodMu.Unlock()
	return d.res.Reload(ctx)
}

// WarmList fetches the year's budget list into the cache, so subsequent
// period changes within the year resolve their budget without a network
// call.
func (d *Dashboard) WarmList(ctx context.Context, year int) error {
	budgets, err := d.budgets.List(ctx, year)
	if err != nil {
		return err
	}
	d.listCache.Set(strconv.Itoa(year), budgets)
	return nil
}

// InvalidateDetails drops the cached detail bundle for a budget
func (d *Dashboard) InvalidateDetails(budgetID string) {
	d.detailCache.Delete(budgetID)
}

// load fetches the aggregate for the active period: budget list cache
// first, then detail cache, then the API. A period with no budget yields
// the valid empty aggregate.
func (d *Dashboard) load(ctx context.Context) (*DashboardAggregate, error) {
	period := d.Period()

	budget, err := d.lookupBudget(ctx, period)
	if err != nil {
		return nil, err
	}

	if budget == nil {
		if d.logger != nil {
			d.logger.Debug("no budget for period", "period", period.String())
		}
		return &DashboardAggregate{
			BudgetLines:  []BudgetLine{},
			Transactions: []Transaction{},
		}, nil
	}

	if details, ok := d.detailCache.Get(budget.ID); ok {
		return aggregateFromDetails(details, budget), nil
	}

	details, err := d.budgets.Details(ctx, budget.ID)
	if err != nil {
		return nil, err
	}
	d.detailCache.Set(budget.ID, details)

	return aggregateFromDetails(details, budget), nil
}

// lookupBudget resolves the budget for a period, cache-first for the list.
// A warm list that lacks the period means the budget does not exist.
func (d *Dashboard) lookupBudget(ctx context.Context, period BudgetPeriod) (*Budget, error) {
	if budgets, ok := d.listCache.Get(strconv.Itoa(period.Year)); ok {
		for _, b := range budgets {
			if b.Month == period.Month && b.Year == period.Year {
				return b, nil
			}
		}
		return nil, nil
	}

	return d.budgets.ForPeriod(ctx, period)
}

func aggregateFromDetails(details *BudgetDetails, fallback *Budget) *DashboardAggregate {
	budget := details.Budget
	if budget == nil {
		budget = fallback
	}
	return &DashboardAggregate{
		Budget:       budget,
		BudgetLines:  details.BudgetLines,
		Transactions: details.Transactions,
	}
}

// ToggleLineCheck optimistically flips a budget line's checked marker,
// rolling back if the server rejects the toggle
func (d *Dashboard) ToggleLineCheck(ctx context.Context, lineID string) error {
	return d.toggleCheck(ctx,
		func(agg *DashboardAggregate) bool {
			for i := range agg.BudgetLines {
				if agg.BudgetLines[i].ID == lineID {
					agg.BudgetLines[i].CheckedAt = flipChecked(agg.BudgetLines[i].CheckedAt, d.now())
					return true
				}
			}
			return false
		},
		func(ctx context.Context) error { return d.lines.ToggleCheck(ctx, lineID) },
	)
}

// ToggleTransactionCheck optimistically flips a transaction's checked
// marker, rolling back if the server rejects the toggle
func (d *Dashboard) ToggleTransactionCheck(ctx context.Context, transactionID string) error {
	return d.toggleCheck(ctx,
		func(agg *DashboardAggregate) bool {
			for i := range agg.Transactions {
				if agg.Transactions[i].ID == transactionID {
					agg.Transactions[i].CheckedAt = flipChecked(agg.Transactions[i].CheckedAt, d.now())
					return true
				}
			}
			return false
		},
		func(ctx context.Context) error { return d.transactions.ToggleCheck(ctx, transactionID) },
	)
}

// toggleCheck is the snapshot-and-rollback pattern shared by both toggles:
// flip locally so the change is visible immediately, then confirm with the
// server, restoring the snapshot on failure.
func (d *Dashboard) toggleCheck(ctx context.Context, flip func(*DashboardAggregate) bool, op func(context.Context) error) error {
	snapshot := d.res.Value()
	if snapshot == nil {
		return ErrNotLoaded
	}

	next := snapshot.clone()
	if !flip(next) {
		return ErrNotFound
	}
	d.res.Set(next)

	if err := op(ctx); err != nil {
		if d.logger != nil {
			d.logger.Warn("toggle rejected, rolling back", "error", err)
		}
		d.res.Set(snapshot)
		return err
	}

	if snapshot.Budget != nil {
		d.detailCache.Delete(snapshot.Budget.ID)
	}
	return nil
}

// AddTransaction creates a transaction and folds the server-confirmed
// record into the aggregate
func (d *Dashboard) AddTransaction(ctx context.Context, params *CreateTransactionParams) (*Transaction, error) {
	return d.applyTransactionMutation(ctx,
		func(ctx context.Context) (*Transaction, error) {
			return d.transactions.Create(ctx, params)
		},
		func(agg *DashboardAggregate, txn *Transaction) {
			agg.Transactions = append(agg.Transactions, *txn)
		},
	)
}

// UpdateTransaction updates a transaction and folds the server-confirmed
// record into the aggregate
func (d *Dashboard) UpdateTransaction(ctx context.Context, transactionID string, params *UpdateTransactionParams) (*Transaction, error) {
	return d.applyTransactionMutation(ctx,
		func(ctx context.Context) (*Transaction, error) {
			return d.transactions.Update(ctx, transactionID, params)
		},
		func(agg *DashboardAggregate, txn *Transaction) {
			if txn == nil {
				return
			}
			for i := range agg.Transactions {
				if agg.Transactions[i].ID == transactionID {
					agg.Transactions[i] = *txn
				}
			}
		},
	)
}

// DeleteTransaction deletes a transaction and drops it from the aggregate
func (d *Dashboard) DeleteTransaction(ctx context.Context, transactionID string) error {
	_, err := d.applyTransactionMutation(ctx,
		func(ctx context.Context) (*Transaction, error) {
			return nil, d.transactions.Delete(ctx, transactionID)
		},
		func(agg *DashboardAggregate, _ *Transaction) {
			filtered := make([]Transaction, 0, len(agg.Transactions))
			for _, txn := range agg.Transactions {
				if txn.ID != transactionID {
					filtered = append(filtered, txn)
				}
			}
			agg.Transactions = filtered
		},
	)
	return err
}

// applyTransactionMutation is the optimistic-apply-then-reconcile pattern
// shared by create/update/delete. The aggregate is re-read after every
// server round trip so the final single write reconciles against whatever
// committed in the meantime, and the pre-mutation snapshot is restored on
// any failure.
func (d *Dashboard) applyTransactionMutation(ctx context.Context, op func(context.Context) (*Transaction, error), update func(*DashboardAggregate, *Transaction)) (*Transaction, error) {
	snapshot := d.res.Value()
	if snapshot == nil {
		return nil, ErrNotLoaded
	}
	if snapshot.Budget == nil {
		return nil, ErrNoBudget
	}

	rollback := func(err error) {
		if d.logger != nil {
			d.logger.Warn("mutation failed, rolling back", "error", err)
		}
		d.res.Set(snapshot)
	}

	txn, err := op(ctx)
	if err != nil {
		rollback(err)
		return nil, err
	}

	// Apply to the latest aggregate, not the snapshot: a toggle may have
	// committed while the server round trip was in flight.
	updated := d.res.Value().clone()
	update(updated, txn)

	// The server recomputes the budget's ending balance; fetch it rather
	// than duplicating that computation here.
	serverBudget, err := d.budgets.Get(ctx, snapshot.Budget.ID)
	if err != nil {
		rollback(err)
		return nil, err
	}

	latest := d.res.Value()
	d.res.Set(reconcileAggregate(latest, updated, snapshot, serverBudget))
	d.detailCache.Delete(snapshot.Budget.ID)

	return txn, nil
}

func flipChecked(current *time.Time, now time.Time) *time.Time {
	if current != nil {
		return nil
	}
	return &now
}
