package enum

import (
	"encoding/json"
	"fmt"
)

// ExpenseCategory classifies a discretionary expense
type ExpenseCategory int

const (
	ExpenseCategoryAdvertising ExpenseCategory = 0
	ExpenseCategorySalaries    ExpenseCategory = 1
	ExpenseCategoryRent        ExpenseCategory = 2
	ExpenseCategoryBills       ExpenseCategory = 3
	ExpenseCategoryOther       ExpenseCategory = 4
)

var expenseCategoryNames = [...]string{"advertising", "salaries", "rent", "bills", "other"}

// ExpenseCategories lists every known category in display order
func ExpenseCategories() []ExpenseCategory {
	return []ExpenseCategory{
		ExpenseCategoryAdvertising,
		ExpenseCategorySalaries,
		ExpenseCategoryRent,
		ExpenseCategoryBills,
		ExpenseCategoryOther,
	}
}

func (c ExpenseCategory) String() string {
	if c < 0 || int(c) >= len(expenseCategoryNames) {
		return "unknown"
	}
	return expenseCategoryNames[c]
}

// IsValid reports whether c is one of the known categories
func (c ExpenseCategory) IsValid() bool {
	return c >= 0 && int(c) < len(expenseCategoryNames)
}

// ParseExpenseCategory parses a category name
func ParseExpenseCategory(str string) (ExpenseCategory, error) {
	for i, name := range expenseCategoryNames {
		if name == str {
			return ExpenseCategory(i), nil
		}
	}
	return ExpenseCategoryOther, fmt.Errorf("unknown expense category: %q", str)
}

func (c ExpenseCategory) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

func (c *ExpenseCategory) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	category, err := ParseExpenseCategory(str)
	if err != nil {
		return err
	}
	*c = category
	return nil
}
