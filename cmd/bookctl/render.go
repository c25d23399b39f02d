package main

import (
	"bytes"
	"fmt"
	"strconv"

	md "github.com/nao1215/markdown"

	"github.com/sangkips/storebooks/internal/domain/entity"
	"github.com/sangkips/storebooks/internal/domain/report"
	"github.com/sangkips/storebooks/pkg/utils"
)

func summaryTable(s report.Summary, currency string) md.TableSet {
	return md.TableSet{
		Header: []string{"Figure", "Amount"},
		Rows: [][]string{
			{"Total sales", utils.FormatMoney(s.TotalSales, currency)},
			{"Sales profit", utils.FormatMoney(s.SalesProfit, currency)},
			{"Expenses", utils.FormatMoney(s.TotalExpenses, currency)},
			{md.Bold("Net profit"), md.Bold(utils.FormatMoney(s.NetProfit, currency))},
			{"Inventory value", utils.FormatMoney(s.InventoryValue, currency)},
		},
	}
}

func salesTable(sales []entity.Sale, currency string) md.TableSet {
	rows := make([][]string, 0, len(sales))
	for _, s := range sales {
		rows = append(rows, []string{
			s.Date.String(), s.Customer, strconv.Itoa(len(s.Items)),
			utils.FormatMoney(s.TotalAmount, currency), utils.FormatMoney(s.NetProfit, currency), s.Status.String(),
		})
	}
	return md.TableSet{Header: []string{"Date", "Customer", "Lines", "Amount", "Profit", "Status"}, Rows: rows}
}

func stockTable(products []entity.Product, currency string) md.TableSet {
	rows := make([][]string, 0, len(products))
	for _, p := range products {
		rows = append(rows, []string{
			p.ID, p.Name, p.SKU, strconv.Itoa(p.Quantity), utils.FormatMoney(p.ActualUnitCost, currency),
		})
	}
	return md.TableSet{Header: []string{"ID", "Name", "SKU", "Quantity", "Unit cost"}, Rows: rows}
}

// DashboardMarkdown renders the business overview
func DashboardMarkdown(d *report.Dashboard, threshold int, currency string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Dashboard")
	doc.PlainText(fmt.Sprintf("%d products, %d sales, %d expenses recorded.", d.ProductCount, d.SaleCount, d.ExpenseCount))
	doc.Table(summaryTable(d.Summary, currency))

	doc.H2("Recent sales")
	if len(d.RecentSales) == 0 {
		doc.PlainText("No sales yet.")
	} else {
		doc.Table(salesTable(d.RecentSales, currency))
	}

	doc.H2(fmt.Sprintf("Low stock (under %d)", threshold))
	if len(d.LowStock) == 0 {
		doc.PlainText("All products are above the threshold.")
	} else {
		doc.Table(stockTable(d.LowStock, currency))
	}

	return doc.String()
}

// PeriodMarkdown renders the report for a range of days
func PeriodMarkdown(p *report.Period, currency string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Report %s to %s", p.Start, p.End))
	doc.Table(summaryTable(p.Summary, currency))

	doc.H2(fmt.Sprintf("Sales (%d)", p.SaleCount))
	if len(p.Sales) > 0 {
		doc.Table(salesTable(p.Sales, currency))
	}

	doc.H2(fmt.Sprintf("Expenses (%d)", p.ExpenseCount))
	if len(p.Expenses) > 0 {
		rows := make([][]string, 0, len(p.Expenses))
		for _, e := range p.Expenses {
			rows = append(rows, []string{e.Date.String(), e.Category.String(), e.Description, utils.FormatMoney(e.Amount, currency)})
		}
		doc.Table(md.TableSet{Header: []string{"Date", "Category", "Description", "Amount"}, Rows: rows})
	}

	return doc.String()
}

// MovementsMarkdown renders the stock history of one product
func MovementsMarkdown(p entity.Product, movements []entity.Movement, currency string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("%s (%s)", p.Name, p.SKU))
	doc.PlainText(fmt.Sprintf("%d in stock at %s each.", p.Quantity, utils.FormatMoney(p.ActualUnitCost, currency)))

	if len(movements) == 0 {
		doc.PlainText("No purchases or sales recorded.")
		return doc.String()
	}

	rows := make([][]string, 0, len(movements))
	for _, m := range movements {
		rows = append(rows, []string{
			m.Date.String(), string(m.Kind), fmt.Sprintf("%+d", m.Quantity), utils.FormatMoney(m.UnitPrice, currency), m.Details,
		})
	}
	doc.Table(md.TableSet{Header: []string{"Date", "Kind", "Quantity", "Unit price", "Details"}, Rows: rows})

	return doc.String()
}

// LowStockMarkdown renders the products under threshold
func LowStockMarkdown(products []entity.Product, threshold int, currency string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Low stock (under %d)", threshold))
	if len(products) == 0 {
		doc.PlainText("All products are above the threshold.")
	} else {
		doc.Table(stockTable(products, currency))
	}

	return doc.String()
}
