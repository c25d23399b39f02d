package entity

import (
	"time"

	"github.com/sangkips/storebooks/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// Expense is a discretionary business cost such as rent or advertising
type Expense struct {
	ID          string               `json:"id"`
	Date        Date                 `json:"date"`
	Category    enum.ExpenseCategory `json:"category"`
	Description string               `json:"description"`
	Amount      decimal.Decimal      `json:"amount"`
	CreatedAt   time.Time            `json:"created_at"`
}
