package expense

import (
	"time"

	"github.com/hrportal/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExpenseLine is the persisted record backing one checked expense cell.
// The amount is captured when the cell is toggled so later catalog
// changes never alter historical reports. At most one line exists per
// (report, day, category).
type ExpenseLine struct {
	ID         uuid.UUID
	ReportID   uuid.UUID
	Day        string
	CategoryID uuid.UUID
	Amount     decimal.Decimal
	Applies    bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// BonusLine is the persisted record backing one bonus cell with a
// positive quantity. Contribution is amount x quantity.
type BonusLine struct {
	ID         uuid.UUID
	ReportID   uuid.UUID
	Day        string
	CategoryID uuid.UUID
	Amount     decimal.Decimal
	Quantity   int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Totals is the deterministic reduction of a report's line set
type Totals struct {
	ExpenseSubtotal decimal.Decimal
	BonusSubtotal   decimal.Decimal
	GrandTotal      decimal.Decimal
}

// ComputeTotals reduces the full line set into subtotals and a grand
// total. Pure and iteration-order independent; always fed the complete
// line set, never applied incrementally.
func ComputeTotals(lines []ExpenseLine, bonusLines []BonusLine) Totals {
	expenseSubtotal := decimal.Zero
	for _, line := range lines {
		if !line.Applies {
			continue
		}
		expenseSubtotal = expenseSubtotal.Add(line.Amount)
	}

	bonusSubtotal := decimal.Zero
	for _, line := range bonusLines {
		bonusSubtotal = bonusSubtotal.Add(line.Amount.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}

	return Totals{
		ExpenseSubtotal: expenseSubtotal,
		BonusSubtotal:   bonusSubtotal,
		GrandTotal:      expenseSubtotal.Add(bonusSubtotal),
	}
}

type expenseCell struct {
	on     bool
	amount decimal.Decimal
}

type bonusCell struct {
	quantity int
	amount   decimal.Decimal
}

// Grid is the per-day, per-category view of a report for one period.
// Lines are the source of truth; the grid is derived from them and
// exists to validate and stage cell edits.
type Grid struct {
	days       []string
	daySet     map[string]struct{}
	categories map[uuid.UUID]*Category
	expense    map[string]map[uuid.UUID]*expenseCell
	bonus      map[string]map[uuid.UUID]*bonusCell
}

// NewGrid materialises every (day, category) pair of the period at
// false / zero. Every calendar day of the period is present, weekends
// and holidays included. Amounts default to the category's current
// default and are captured into lines on toggle.
func NewGrid(period *ExpensePeriod, categories []*Category) *Grid {
	days := period.Days()
	grid := &Grid{
		days:       days,
		daySet:     make(map[string]struct{}, len(days)),
		categories: make(map[uuid.UUID]*Category, len(categories)),
		expense:    make(map[string]map[uuid.UUID]*expenseCell, len(days)),
		bonus:      make(map[string]map[uuid.UUID]*bonusCell, len(days)),
	}

	for _, day := range days {
		grid.daySet[day] = struct{}{}
		grid.expense[day] = make(map[uuid.UUID]*expenseCell)
		grid.bonus[day] = make(map[uuid.UUID]*bonusCell)
	}
	for _, category := range categories {
		grid.categories[category.ID] = category
		for _, day := range days {
			switch category.Kind {
			case CategoryKindExpense:
				grid.expense[day][category.ID] = &expenseCell{amount: category.DefaultAmount}
			case CategoryKindBonus:
				grid.bonus[day][category.ID] = &bonusCell{amount: category.DefaultAmount}
			}
		}
	}

	return grid
}

// Days returns the ordered day keys of the grid
func (g *Grid) Days() []string {
	return g.days
}

// ToggleExpense flips one expense cell. The cell keeps the amount it
// was materialised with, so the toggle captures the catalog amount in
// force when the grid was built.
func (g *Grid) ToggleExpense(day string, categoryID uuid.UUID) error {
	if _, ok := g.daySet[day]; !ok {
		return shared.ErrInvalidDay
	}
	cell, ok := g.expense[day][categoryID]
	if !ok {
		return shared.ErrInvalidCategory
	}

	cell.on = !cell.on
	return nil
}

// SetBonusQuantity sets one bonus cell quantity. Zero means "not
// applied" and produces no line.
func (g *Grid) SetBonusQuantity(day string, categoryID uuid.UUID, quantity int) error {
	if _, ok := g.daySet[day]; !ok {
		return shared.ErrInvalidDay
	}
	cell, ok := g.bonus[day][categoryID]
	if !ok {
		return shared.ErrInvalidCategory
	}
	if quantity < 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Bonus quantity cannot be negative")
	}

	cell.quantity = quantity
	return nil
}

// ExpenseChecked reports whether an expense cell is on
func (g *Grid) ExpenseChecked(day string, categoryID uuid.UUID) bool {
	cell, ok := g.expense[day][categoryID]
	return ok && cell.on
}

// BonusQuantity returns the quantity of a bonus cell
func (g *Grid) BonusQuantity(day string, categoryID uuid.UUID) int {
	cell, ok := g.bonus[day][categoryID]
	if !ok {
		return 0
	}
	return cell.quantity
}

// ApplyLines rebuilds the grid state from persisted lines. Cells with
// no line stay at false / zero; cell amounts take the captured line
// amount. Lines referencing days or categories outside the grid are
// rejected rather than silently dropped.
func (g *Grid) ApplyLines(lines []ExpenseLine, bonusLines []BonusLine) error {
	for _, line := range lines {
		if _, ok := g.daySet[line.Day]; !ok {
			return shared.ErrInvalidDay
		}
		cell, ok := g.expense[line.Day][line.CategoryID]
		if !ok {
			return shared.ErrInvalidCategory
		}
		cell.on = line.Applies
		cell.amount = line.Amount
	}
	for _, line := range bonusLines {
		if _, ok := g.daySet[line.Day]; !ok {
			return shared.ErrInvalidDay
		}
		cell, ok := g.bonus[line.Day][line.CategoryID]
		if !ok {
			return shared.ErrInvalidCategory
		}
		cell.quantity = line.Quantity
		cell.amount = line.Amount
	}
	return nil
}

// ExpenseLines materialises lines for every checked expense cell
func (g *Grid) ExpenseLines(reportID uuid.UUID) []ExpenseLine {
	now := time.Now()
	lines := make([]ExpenseLine, 0)
	for _, day := range g.days {
		for categoryID, cell := range g.expense[day] {
			if !cell.on {
				continue
			}
			lines = append(lines, ExpenseLine{
				ID:         uuid.New(),
				ReportID:   reportID,
				Day:        day,
				CategoryID: categoryID,
				Amount:     cell.amount,
				Applies:    true,
				CreatedAt:  now,
				UpdatedAt:  now,
			})
		}
	}
	return lines
}

// BonusLines materialises lines for every bonus cell with a positive
// quantity. Quantity zero never persists as a line.
func (g *Grid) BonusLines(reportID uuid.UUID) []BonusLine {
	now := time.Now()
	lines := make([]BonusLine, 0)
	for _, day := range g.days {
		for categoryID, cell := range g.bonus[day] {
			if cell.quantity <= 0 {
				continue
			}
			lines = append(lines, BonusLine{
				ID:         uuid.New(),
				ReportID:   reportID,
				Day:        day,
				CategoryID: categoryID,
				Amount:     cell.amount,
				Quantity:   cell.quantity,
				CreatedAt:  now,
				UpdatedAt:  now,
			})
		}
	}
	return lines
}

// Totals reduces the grid's current cell state the same way
// ComputeTotals reduces lines
func (g *Grid) Totals() Totals {
	expenseSubtotal := decimal.Zero
	for _, cells := range g.expense {
		for _, cell := range cells {
			if cell.on {
				expenseSubtotal = expenseSubtotal.Add(cell.amount)
			}
		}
	}

	bonusSubtotal := decimal.Zero
	for _, cells := range g.bonus {
		for _, cell := range cells {
			if cell.quantity > 0 {
				bonusSubtotal = bonusSubtotal.Add(cell.amount.Mul(decimal.NewFromInt(int64(cell.quantity))))
			}
		}
	}

	return Totals{
		ExpenseSubtotal: expenseSubtotal,
		BonusSubtotal:   bonusSubtotal,
		GrandTotal:      expenseSubtotal.Add(bonusSubtotal),
	}
}
