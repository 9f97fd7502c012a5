package report

import (
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/trailsync/emission-engine/internal/aircraft"
	"github.com/trailsync/emission-engine/internal/market"
	"github.com/trailsync/emission-engine/internal/model"
)

// FlightCarbonReport renders the carbon cost of one flight.
func FlightCarbonReport(res model.CarbonTradingResult) string {
	costs := [][2]string{
		{"Carbon Price:", money(res.CarbonPricePerTonne, 2) + " /tCO2"},
		{"Total Cost:", money(res.CarbonCostTotal, 2)},
		{"Cost per km:", money(res.CarbonCostPerKm, 4) + " /km"},
	}
	if res.CarbonCostPerPassenger.Valid {
		costs = append(costs,
			[2]string{"Cost per Passenger:", money(res.CarbonCostPerPassenger.Decimal, 2) + " /pax"},
			[2]string{"Passengers:", FormatInt(int64(res.NumPassengers))},
		)
	}

	return render("FLIGHT CARBON TRADING COST REPORT",
		section{"", [][2]string{
			{"Market:", res.MarketName},
			{"Date:", res.CalculationDate},
		}},
		section{"Emissions", [][2]string{
			{"CO2 Emissions:", FormatDecimal(res.CO2EmissionsKg, 0) + " kg"},
			{"", FormatDecimal(res.CO2EmissionsTonnes, 2) + " tonnes"},
		}},
		section{"Carbon Costs", costs},
	)
}

// ComplianceReport renders an annual allowance balance.
func ComplianceReport(res model.AnnualComplianceResult) string {
	status, marker, advice := "SURPLUS", "[OK]", "No Purchase Needed"
	if res.NeedsPurchase {
		status, marker, advice = "DEFICIT", "[!]", "Purchase Required"
	}

	return render("ANNUAL CARBON COMPLIANCE COST REPORT",
		section{"", [][2]string{
			{"Market:", res.MarketName},
			{"Status:", marker + " " + status},
		}},
		section{"Emissions Balance", [][2]string{
			{"Total Emissions:", FormatDecimal(res.TotalEmissionsTonnes, 0) + " tCO2"},
			{"Free Allowance:", FormatDecimal(res.FreeAllowanceTonnes, 0) + " tCO2"},
			{"Owned Credits:", FormatDecimal(res.OwnedCreditsTonnes, 0) + " tCO2"},
			{"Emission Deficit:", FormatDecimal(res.EmissionDeficitTonnes, 0) + " tCO2"},
		}},
		section{"Compliance Costs", [][2]string{
			{"Carbon Price:", money(res.CarbonPricePerTonne, 2) + " /tCO2"},
			{"Allowances to Buy:", FormatDecimal(res.AllowancesToBuyTonnes, 0) + " tCO2"},
			{"TOTAL COMPLIANCE COST:", money(res.ComplianceCostUSD, 2)},
		}},
		section{"Purchase Recommendation", [][2]string{
			{advice, ""},
		}},
	)
}

// PurchaseStrategyReport renders an allowance/credit purchase mix.
func PurchaseStrategyReport(s model.PurchaseStrategy) string {
	return render("CARBON PURCHASE STRATEGY",
		section{"Deficit", [][2]string{
			{"Deficit:", FormatDecimal(s.DeficitTonnes, 0) + " tCO2"},
			{"Allowance Price:", money(s.AllowancePrice, 2) + " /tCO2"},
			{"Credit Price:", money(s.CreditPrice, 2) + " /tCO2"},
			{"Credit Cap:", FormatDecimal(s.MaxCreditsAllowed, 0) + " tCO2"},
		}},
		section{"Purchase Mix", [][2]string{
			{"Credits to Buy:", FormatDecimal(s.CreditsToBuy, 0) + " tCO2 (" + money(s.CreditCost, 2) + ")"},
			{"Allowances to Buy:", FormatDecimal(s.AllowancesToBuy, 0) + " tCO2 (" + money(s.AllowanceCost, 2) + ")"},
			{"Total Cost:", money(s.TotalCost, 2)},
			{"All-Allowance Cost:", money(s.BaselineCost, 2)},
			{"Savings:", money(s.Savings, 2)},
			{"Average Price:", money(s.AveragePricePerTonne, 2) + " /tCO2"},
		}},
		section{"Recommendation", [][2]string{
			{s.Recommendation, ""},
		}},
	)
}

// ForecastTable renders a price forecast, one row per year.
func ForecastTable(points []model.ForecastPoint) string {
	rows := make([][]string, 0, len(points))
	for _, p := range points {
		rows = append(rows, []string{
			strconv.Itoa(p.Year),
			money(p.CarbonPrice, 2),
			money(p.AnnualCost, 2),
			"+" + FormatDecimal(p.CostIncreasePercent, 1) + "%",
		})
	}
	return table("CARBON COST FORECAST", []string{"Year", "Price/t", "Annual Cost", "Increase"}, rows)
}

// StrategyTable renders a market x altitude sweep and flags the cheapest option.
func StrategyTable(options []model.StrategyOption) string {
	rows := make([][]string, 0, len(options))
	cheapest := -1
	for i, o := range options {
		if cheapest < 0 || o.CarbonCost.LessThan(options[cheapest].CarbonCost) {
			cheapest = i
		}
	}
	for i, o := range options {
		mark := ""
		if i == cheapest {
			mark = "*"
		}
		rows = append(rows, []string{
			o.Market,
			FormatInt(int64(o.AltitudeM)) + " m",
			FormatDecimal(o.CO2Kg, 1),
			money(o.CarbonCost, 2),
			money(o.CostPerKm, 4),
			mark,
		})
	}
	return table("MARKET / ALTITUDE STRATEGY COMPARISON",
		[]string{"Market", "Altitude", "CO2 (kg)", "Cost", "Cost/km", ""}, rows)
}

// MarketComparison renders one flight priced in several markets with the
// difference against the first.
func MarketComparison(results []model.CarbonTradingResult) string {
	rows := make([][]string, 0, len(results))
	var ref decimal.Decimal
	for i, r := range results {
		if i == 0 {
			ref = r.CarbonCostTotal
		}
		rows = append(rows, []string{
			r.Market,
			money(r.CarbonPricePerTonne, 2),
			money(r.CarbonCostTotal, 2),
			money(ref.Sub(r.CarbonCostTotal), 2),
		})
	}
	return table("MARKET COMPARISON", []string{"Market", "Price/t", "Total Cost", "Savings vs first"}, rows)
}

// MarketsTable lists the carbon market catalogue.
func MarketsTable(markets []market.Market) string {
	rows := make([][]string, 0, len(markets))
	for _, m := range markets {
		rows = append(rows, []string{
			m.ID,
			m.Name,
			money(m.PriceUSD, 2),
			m.Currency,
			FormatFloat(m.Volatility*100, 0) + "%",
			m.Coverage,
		})
	}
	return table("CARBON MARKETS", []string{"ID", "Name", "USD/t", "Currency", "Volatility", "Coverage"}, rows)
}

// AircraftTable renders an aircraft comparison.
func AircraftTable(rows []aircraft.Comparison) string {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{
			r.Requested,
			r.ResolvedType,
			FormatFloat(r.FuelBurnCruise, 1),
			FormatFloat(r.EFCO2, 2),
			FormatFloat(r.ContrailProbability*100, 0) + "%",
		})
	}
	return table("AIRCRAFT EMISSION FACTORS",
		[]string{"Requested", "Profile", "Cruise kg/km", "kg CO2/kg fuel", "Contrail prob."}, out)
}
