package trading

import (
	"github.com/shopspring/decimal"

	"github.com/trailsync/emission-engine/internal/model"
)

// DefaultCreditLimitRatio caps offset credits at 15% of the deficit.
var DefaultCreditLimitRatio = decimal.NewFromFloat(0.15)

// Purchase recommendations.
const (
	RecommendCredits       = "Use carbon credits"
	RecommendAllowanceOnly = "Use EU Allowances only"
)

// AnnualComplianceCost balances a year's emissions against free allowances
// and owned credits. All quantities are tonnes of CO2.
func (c *Calculator) AnnualComplianceCost(totalEmissions, freeAllowance, ownedCredits decimal.Decimal) model.AnnualComplianceResult {
	deficit := decimal.Max(decimal.Zero, totalEmissions.Sub(freeAllowance).Sub(ownedCredits))

	return model.AnnualComplianceResult{
		Market:                c.market.ID,
		MarketName:            c.market.Name,
		TotalEmissionsTonnes:  totalEmissions,
		FreeAllowanceTonnes:   freeAllowance,
		OwnedCreditsTonnes:    ownedCredits,
		EmissionDeficitTonnes: deficit,
		CarbonPricePerTonne:   c.price,
		ComplianceCostUSD:     deficit.Mul(c.price),
		AllowancesToBuyTonnes: deficit,
		NeedsPurchase:         deficit.IsPositive(),
	}
}

// OptimizePurchaseStrategy covers deficit tonnes with the cheapest legal mix
// of allowances and offset credits. Credits are only used when cheaper than
// allowances and never exceed creditLimitRatio of the deficit. A negative
// deficit is treated as zero and the ratio is clamped to [0,1].
func OptimizePurchaseStrategy(deficit, allowancePrice, creditPrice, creditLimitRatio decimal.Decimal) model.PurchaseStrategy {
	deficit = decimal.Max(decimal.Zero, deficit)
	ratio := decimal.Min(decimal.NewFromInt(1), decimal.Max(decimal.Zero, creditLimitRatio))
	maxCredits := deficit.Mul(ratio)

	credits := decimal.Zero
	if creditPrice.LessThan(allowancePrice) {
		credits = decimal.Min(deficit, maxCredits)
	}
	allowances := deficit.Sub(credits)

	creditCost := credits.Mul(creditPrice)
	allowanceCost := allowances.Mul(allowancePrice)
	total := creditCost.Add(allowanceCost)
	baseline := deficit.Mul(allowancePrice)
	savings := baseline.Sub(total)

	avg := decimal.Zero
	if deficit.IsPositive() {
		avg = total.Div(deficit)
	}

	rec := RecommendAllowanceOnly
	if savings.IsPositive() {
		rec = RecommendCredits
	}

	return model.PurchaseStrategy{
		DeficitTonnes:        deficit,
		AllowancePrice:       allowancePrice,
		CreditPrice:          creditPrice,
		MaxCreditsAllowed:    maxCredits,
		CreditsToBuy:         credits,
		AllowancesToBuy:      allowances,
		CreditCost:           creditCost,
		AllowanceCost:        allowanceCost,
		TotalCost:            total,
		BaselineCost:         baseline,
		Savings:              savings,
		AveragePricePerTonne: avg,
		Recommendation:       rec,
	}
}
