// Package report renders calculated deals as Markdown summaries and HTML.
// Rendering is read-only over the engine's outputs; nothing here feeds back
// into a calculation.
package report

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"deal_underwriter/pkg/core/deal"
	"deal_underwriter/pkg/core/promote"
	"deal_underwriter/pkg/core/structures"
)

var printer = message.NewPrinter(language.English)

func money(v float64) string {
	return printer.Sprintf("$%.0f", v)
}

func pct(v float64) string {
	return fmt.Sprintf("%.2f%%", v)
}

// DealSummaryMarkdown renders the base pipeline's result: the income and
// expense breakdown, capital stack, return metrics and exit economics.
func DealSummaryMarkdown(inputs deal.DealInputs, outputs deal.DealOutputs) string {
	var b strings.Builder

	b.WriteString("# Deal Summary\n\n")
	fmt.Fprintf(&b, "Purchase price %s, %d units, %d-year hold at a %s exit cap.\n\n",
		money(inputs.PurchasePrice), inputs.TotalUnits(), inputs.HoldPeriodYears,
		pct(inputs.ExitCapRatePercent))

	b.WriteString("## Income & Expenses (Year 1)\n\n")
	b.WriteString("| Line | Annual |\n|---|---:|\n")
	fmt.Fprintf(&b, "| Gross potential rent | %s |\n", money(outputs.Income.GrossPotentialRent))
	fmt.Fprintf(&b, "| Residential vacancy loss | %s |\n", money(-outputs.Income.ResidentialVacancyLoss))
	fmt.Fprintf(&b, "| Net commercial income | %s |\n", money(outputs.Income.NetCommercialIncome))
	fmt.Fprintf(&b, "| Other income | %s |\n", money(outputs.Income.TotalOtherIncome))
	fmt.Fprintf(&b, "| **Total income** | **%s** |\n", money(outputs.Income.TotalIncome))
	fmt.Fprintf(&b, "| Operating expenses | %s |\n", money(-outputs.ExpenseDetail.TotalExpenses))
	fmt.Fprintf(&b, "| **NOI** | **%s** |\n\n", money(outputs.NOI))

	b.WriteString("## Capital Stack\n\n")
	b.WriteString("| Source / Use | Amount |\n|---|---:|\n")
	fmt.Fprintf(&b, "| Loan (%s LTV) | %s |\n", pct(inputs.Financing.LTVPercent), money(outputs.Debt.LoanAmount))
	fmt.Fprintf(&b, "| Equity required | %s |\n", money(outputs.Debt.TotalEquity))
	fmt.Fprintf(&b, "| Annual debt service | %s |\n\n", money(outputs.Debt.ActiveAnnualDebtService))

	b.WriteString("## Returns\n\n")
	b.WriteString("| Metric | Value |\n|---|---:|\n")
	fmt.Fprintf(&b, "| Cap rate | %s |\n", pct(outputs.Returns.CapRate))
	fmt.Fprintf(&b, "| Cash-on-cash | %s |\n", pct(outputs.Returns.CashOnCash))
	fmt.Fprintf(&b, "| DSCR | %.2f |\n", outputs.Returns.DSCR)
	fmt.Fprintf(&b, "| Debt yield | %s |\n", pct(outputs.Returns.DebtYield))
	fmt.Fprintf(&b, "| IRR | %s |\n", pct(outputs.Returns.IRR))
	fmt.Fprintf(&b, "| Equity multiple | %.2fx |\n\n", outputs.Returns.EquityMultiple)

	b.WriteString("## Exit\n\n")
	fmt.Fprintf(&b, "Exit value %s off %s of exit NOI; net proceeds after the loan payoff and %s selling costs: %s.\n",
		money(outputs.Exit.ExitValue), money(outputs.Exit.ExitNOI),
		pct(inputs.SellingCostPercent), money(outputs.Exit.ExitProceeds))

	return b.String()
}

// ComparisonMarkdown tabulates a set of structure analyses side by side, one
// row per metric, in the order the analyses were produced.
func ComparisonMarkdown(analyses []structures.DealAnalysis) string {
	var b strings.Builder

	b.WriteString("# Structure Comparison\n\n")
	if len(analyses) == 0 {
		b.WriteString("No structures analyzed.\n")
		return b.String()
	}

	b.WriteString("| Metric |")
	for _, a := range analyses {
		fmt.Fprintf(&b, " %s |", a.Structure)
	}
	b.WriteString("\n|---|")
	for range analyses {
		b.WriteString("---:|")
	}
	b.WriteString("\n")

	row := func(label string, cell func(structures.DealAnalysis) string) {
		fmt.Fprintf(&b, "| %s |", label)
		for _, a := range analyses {
			fmt.Fprintf(&b, " %s |", cell(a))
		}
		b.WriteString("\n")
	}

	row("Total project cost", func(a structures.DealAnalysis) string { return money(a.TotalProjectCost) })
	row("Total debt", func(a structures.DealAnalysis) string { return money(a.TotalDebt) })
	row("Total equity", func(a structures.DealAnalysis) string { return money(a.TotalEquity) })
	row("Year-1 NOI", func(a structures.DealAnalysis) string { return money(a.YearOneNOI) })
	row("Cash-on-cash", func(a structures.DealAnalysis) string { return pct(a.CashOnCash) })
	row("Break-even occupancy", func(a structures.DealAnalysis) string { return pct(a.BreakEvenOccupancy) })
	row("IRR", func(a structures.DealAnalysis) string { return pct(a.IRR) })
	row("Equity multiple", func(a structures.DealAnalysis) string { return fmt.Sprintf("%.2fx", a.EquityMultiple) })
	row("Net sale proceeds", func(a structures.DealAnalysis) string { return money(a.NetSaleProceeds) })

	b.WriteString("\n")
	for _, a := range analyses {
		if a.CashOutOnRefi != nil {
			fmt.Fprintf(&b, "- %s returns %s of equity at the refinance.\n", a.Structure, money(*a.CashOutOnRefi))
		}
		if a.AnnualRateSavings != nil {
			fmt.Fprintf(&b, "- %s saves %s per year against market-rate debt.\n", a.Structure, money(*a.AnnualRateSavings))
		}
		if a.TotalFees != nil {
			fmt.Fprintf(&b, "- %s carries %s of sponsor fees.\n", a.Structure, money(*a.TotalFees))
		}
	}

	return b.String()
}

// PromoteMarkdown renders the waterfall ledger and each party's lifetime
// figures.
func PromoteMarkdown(result promote.PromoteOutputs) string {
	var b strings.Builder

	b.WriteString("# Distribution Waterfall\n\n")
	fmt.Fprintf(&b, "GP equity %s, LP equity %s.\n\n", money(result.GPEquity), money(result.LPEquity))

	b.WriteString("| Year | Distributable | LP Pref | GP Catch-Up | GP Split | LP Split | GP Total | LP Total | Shortfall |\n")
	b.WriteString("|---:|---:|---:|---:|---:|---:|---:|---:|---:|\n")
	for _, y := range result.Years {
		fmt.Fprintf(&b, "| %d | %s | %s | %s | %s | %s | %s | %s | %s |\n",
			y.Year, money(y.DistributableCash), money(y.LPPreferred), money(y.GPCatchUp),
			money(y.GPSplit), money(y.LPSplit), money(y.GPTotal), money(y.LPTotal),
			money(y.PrefShortfall))
	}

	b.WriteString("\n| Party | IRR | Equity Multiple | Total Distributions |\n|---|---:|---:|---:|\n")
	fmt.Fprintf(&b, "| GP | %s | %.2fx | %s |\n", pct(result.GPIRR), result.GPEquityMultiple, money(result.TotalGPDistributions))
	fmt.Fprintf(&b, "| LP | %s | %.2fx | %s |\n", pct(result.LPIRR), result.LPEquityMultiple, money(result.TotalLPDistributions))
	fmt.Fprintf(&b, "\nLifetime promote earned: %s.\n", money(result.TotalPromoteEarned))

	return b.String()
}

// RenderHTML converts a Markdown report to HTML via Goldmark.
func RenderHTML(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(markdown), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
