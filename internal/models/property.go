package models

// AfAType selects the depreciation category of a building.
type AfAType string

const (
	AfAAltbauVor1925 AfAType = "ALTBAU_VOR_1925"
	AfAAltbauAb1925  AfAType = "ALTBAU_AB_1925"
	AfANeubauAb2023  AfAType = "NEUBAU_AB_2023"
	AfADenkmalschutz AfAType = "DENKMALSCHUTZ"
)

// PropertyInput holds everything the engine needs for one property.
// Percentages are whole-number scaled (3.5 means 3.5%).
type PropertyInput struct {
	PurchasePrice        float64 `json:"purchasePrice" binding:"gte=0"`
	BrokerFeePercent     float64 `json:"brokerFeePercent" binding:"gte=0"`
	NotaryFeePercent     float64 `json:"notaryFeePercent" binding:"gte=0"`
	TransferTaxPercent   float64 `json:"transferTaxPercent" binding:"gte=0"`
	RenovationCost       float64 `json:"renovationCost" binding:"gte=0"`
	Equity               float64 `json:"equity" binding:"gte=0"`
	InterestRate         float64 `json:"interestRate" binding:"gte=0"`
	RepaymentRate        float64 `json:"repaymentRate" binding:"gte=0"`
	FixedInterestPeriod  int     `json:"fixedInterestPeriod" binding:"gte=0,lte=100"`
	ColdRentActual       float64 `json:"coldRentActual" binding:"gte=0"`
	ColdRentTarget       float64 `json:"coldRentTarget" binding:"gte=0"`
	NonRecoverableCosts  float64 `json:"nonRecoverableCosts" binding:"gte=0"`
	MaintenanceReserve   float64 `json:"maintenanceReserve" binding:"gte=0"`
	VacancyRiskPercent   float64 `json:"vacancyRiskPercent" binding:"gte=0"`
	PersonalTaxRate      float64 `json:"personalTaxRate" binding:"gte=0"`
	BuildingSharePercent float64 `json:"buildingSharePercent" binding:"gte=0"`
	AfAType              AfAType `json:"afaType" binding:"required,oneof=ALTBAU_VOR_1925 ALTBAU_AB_1925 NEUBAU_AB_2023 DENKMALSCHUTZ"`
}

type SideCosts struct {
	BrokerFee             float64 `json:"brokerFee"`
	NotaryFee             float64 `json:"notaryFee"`
	TransferTax           float64 `json:"transferTax"`
	RenovationCost        float64 `json:"renovationCost"`
	TotalSideCosts        float64 `json:"totalSideCosts"`
	TotalSideCostsPercent float64 `json:"totalSideCostsPercent"`
}

type InvestmentVolume struct {
	PurchasePrice   float64 `json:"purchasePrice"`
	TotalSideCosts  float64 `json:"totalSideCosts"`
	TotalInvestment float64 `json:"totalInvestment"`
}

// FinancingResult summarizes a fixed-annuity loan over its fixed-interest period.
type FinancingResult struct {
	LoanAmount     float64 `json:"loanAmount"`
	MonthlyPayment float64 `json:"monthlyPayment"`
	AnnualPayment  float64 `json:"annualPayment"`
	TotalInterest  float64 `json:"totalInterest"`
	TotalCost      float64 `json:"totalCost"`
}

// AmortizationYear is one row of an amortization schedule, 1-indexed by year.
type AmortizationYear struct {
	Year                int     `json:"year"`
	StartingBalance     float64 `json:"startingBalance"`
	InterestPayment     float64 `json:"interestPayment"`
	PrincipalPayment    float64 `json:"principalPayment"`
	EndingBalance       float64 `json:"endingBalance"`
	CumulativeInterest  float64 `json:"cumulativeInterest"`
	CumulativePrincipal float64 `json:"cumulativePrincipal"`
}

// TaxResult carries the yearly tax effect of renting out the property.
// TaxEffect is positive when the property lowers the owner's tax bill.
type TaxResult struct {
	AfAAmount           float64 `json:"afaAmount"`
	DeductibleInterest  float64 `json:"deductibleInterest"`
	DeductibleCosts     float64 `json:"deductibleCosts"`
	TotalDeductions     float64 `json:"totalDeductions"`
	TaxableRentalIncome float64 `json:"taxableRentalIncome"`
	TaxEffect           float64 `json:"taxEffect"`
	MonthlyTaxEffect    float64 `json:"monthlyTaxEffect"`
}

type CashflowResult struct {
	GrossRentalIncome        float64 `json:"grossRentalIncome"`
	VacancyDeduction         float64 `json:"vacancyDeduction"`
	NetRentalIncome          float64 `json:"netRentalIncome"`
	OperatingCosts           float64 `json:"operatingCosts"`
	AnnualDebtService        float64 `json:"annualDebtService"`
	CashflowBeforeTax        float64 `json:"cashflowBeforeTax"`
	CashflowAfterTax         float64 `json:"cashflowAfterTax"`
	MonthlyCashflowBeforeTax float64 `json:"monthlyCashflowBeforeTax"`
	MonthlyCashflowAfterTax  float64 `json:"monthlyCashflowAfterTax"`
}

type YieldMetrics struct {
	GrossRentalYield float64 `json:"grossRentalYield"`
	NetRentalYield   float64 `json:"netRentalYield"`
	ReturnOnEquity   float64 `json:"returnOnEquity"`
	CashflowYield    float64 `json:"cashflowYield"`
	ObjectYield      float64 `json:"objectYield"`
}

type CumulativeCashflowPoint struct {
	Year               int     `json:"year"`
	CumulativeCashflow float64 `json:"cumulativeCashflow"`
	PropertyValue      float64 `json:"propertyValue"`
	RemainingDebt      float64 `json:"remainingDebt"`
	NetWorth           float64 `json:"netWorth"`
}

// PropertyOutput is the full set of metrics derived from one PropertyInput.
type PropertyOutput struct {
	SideCosts             SideCosts                 `json:"sideCosts"`
	InvestmentVolume      InvestmentVolume          `json:"investmentVolume"`
	Financing             FinancingResult           `json:"financing"`
	AmortizationSchedule  []AmortizationYear        `json:"amortizationSchedule"`
	AverageAnnualInterest float64                   `json:"averageAnnualInterest"`
	Tax                   TaxResult                 `json:"tax"`
	Cashflow              CashflowResult            `json:"cashflow"`
	Yields                YieldMetrics              `json:"yields"`
	CumulativeCashflow    []CumulativeCashflowPoint `json:"cumulativeCashflow"`
}

// StateSideCosts is the side-cost breakdown for a purchase in a given federal state.
type StateSideCosts struct {
	SideCosts
	FederalState       string  `json:"federalState"`
	TransferTaxPercent float64 `json:"transferTaxPercent"`
}

// ScenarioComparison lists the outputs of several inputs in request order.
type ScenarioComparison struct {
	Outputs   []PropertyOutput `json:"outputs"`
	BestIndex int              `json:"bestIndex"`
}
