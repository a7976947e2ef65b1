package models

// NeverReached marks a break-even or payback period that is not reached.
// It is kept as a plain number so exporters and clients can compare against it.
const NeverReached = 999

type Condition string

const (
	ConditionExcellent Condition = "excellent"
	ConditionGood      Condition = "good"
	ConditionAverage   Condition = "average"
	ConditionPoor      Condition = "poor"
)

type Equipment string

const (
	EquipmentLuxury Equipment = "luxury"
	EquipmentNormal Equipment = "normal"
	EquipmentSimple Equipment = "simple"
)

type RentIndexInput struct {
	City        string    `json:"city"`
	LivingArea  float64   `json:"livingArea" binding:"gte=0"`
	CurrentRent float64   `json:"currentRent" binding:"gte=0"`
	YearBuilt   int       `json:"yearBuilt" binding:"gte=0"`
	Condition   Condition `json:"condition" binding:"required,oneof=excellent good average poor"`
	Equipment   Equipment `json:"equipment" binding:"required,oneof=luxury normal simple"`
	HasBalcony  bool      `json:"hasBalcony"`
	HasElevator bool      `json:"hasElevator"`
	Floor       int       `json:"floor" binding:"gte=0"`
}

type RentRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

type RentIndexResult struct {
	City                 string    `json:"city"`
	ReferenceRentPerSqm  float64   `json:"referenceRentPerSqm"`
	MarketRentRange      RentRange `json:"marketRentRange"`
	CurrentRentPerSqm    float64   `json:"currentRentPerSqm"`
	MarketRentPerSqm     float64   `json:"marketRentPerSqm"`
	AdjustedMarketRent   float64   `json:"adjustedMarketRent"`
	RentPotentialPercent float64   `json:"rentPotentialPercent"`
	Recommendation       string    `json:"recommendation"`
}

type BreakEvenInput struct {
	PurchasePrice       float64 `json:"purchasePrice" binding:"gte=0"`
	TotalInvestment     float64 `json:"totalInvestment" binding:"gte=0"`
	AnnualCashflow      float64 `json:"annualCashflow"`
	AppreciationRate    float64 `json:"appreciationRate"`
	SellingCostsPercent float64 `json:"sellingCostsPercent" binding:"gte=0"`
}

// ReturnAtYear is the total return if the property were sold after Year years.
type ReturnAtYear struct {
	Year        int     `json:"year"`
	TotalReturn float64 `json:"totalReturn"`
	ROIPercent  float64 `json:"roiPercent"`
}

type BreakEvenResult struct {
	BreakEvenYearsCashflow         int            `json:"breakEvenYearsCashflow"`
	BreakEvenYearsWithAppreciation int            `json:"breakEvenYearsWithAppreciation"`
	Returns                        []ReturnAtYear `json:"returns"`
	Recommendation                 string         `json:"recommendation"`
}

type RenovationInput struct {
	Cost                  float64 `json:"cost" binding:"gte=0"`
	MonthlyRentIncrease   float64 `json:"monthlyRentIncrease" binding:"gte=0"`
	FinancedAmount        float64 `json:"financedAmount" binding:"gte=0"`
	InterestRate          float64 `json:"interestRate" binding:"gte=0"`
	ExpectedValueIncrease float64 `json:"expectedValueIncrease" binding:"gte=0"`
}

type RenovationResult struct {
	AnnualRentIncrease float64 `json:"annualRentIncrease"`
	AnnualInterestCost float64 `json:"annualInterestCost"`
	NetAnnualBenefit   float64 `json:"netAnnualBenefit"`
	PaybackPeriodYears float64 `json:"paybackPeriodYears"`
	ROIPercent         float64 `json:"roiPercent"`
	ValueIncreaseROI   float64 `json:"valueIncreaseRoi"`
	IsRecommended      bool    `json:"isRecommended"`
	Recommendation     string  `json:"recommendation"`
}

type ExitStrategyInput struct {
	PurchasePrice         float64 `json:"purchasePrice" binding:"gte=0"`
	CurrentValue          float64 `json:"currentValue" binding:"gte=0"`
	HoldingYears          float64 `json:"holdingYears" binding:"gte=0"`
	CumulativeCashflow    float64 `json:"cumulativeCashflow"`
	PersonalTaxRate       float64 `json:"personalTaxRate" binding:"gte=0"`
	SpeculationTaxApplies bool    `json:"speculationTaxApplies"`
}

type ExitStrategyResult struct {
	GrossProfit      float64 `json:"grossProfit"`
	SellingCosts     float64 `json:"sellingCosts"`
	SpeculationTax   float64 `json:"speculationTax"`
	NetProfit        float64 `json:"netProfit"`
	TotalReturn      float64 `json:"totalReturn"`
	AnnualizedReturn float64 `json:"annualizedReturn"`
	Recommendation   string  `json:"recommendation"`
}

type PopulationTrend string

const (
	PopulationStrongGrowth PopulationTrend = "strong_growth"
	PopulationGrowth       PopulationTrend = "growth"
	PopulationStable       PopulationTrend = "stable"
	PopulationDecline      PopulationTrend = "decline"
)

// Level is a three-step qualitative scale used by several location factors.
type Level string

const (
	LevelVeryHigh Level = "very_high"
	LevelHigh     Level = "high"
	LevelMedium   Level = "medium"
	LevelLow      Level = "low"
)

// Infrastructure sub-scores range from 1 (poor) to 10 (excellent).
type Infrastructure struct {
	PublicTransport int `json:"publicTransport" binding:"min=1,max=10"`
	Shopping        int `json:"shopping" binding:"min=1,max=10"`
	Schools         int `json:"schools" binding:"min=1,max=10"`
	Healthcare      int `json:"healthcare" binding:"min=1,max=10"`
}

type LocationAnalysisInput struct {
	PopulationTrend PopulationTrend `json:"populationTrend" binding:"required,oneof=strong_growth growth stable decline"`
	EmploymentRate  Level           `json:"employmentRate" binding:"required,oneof=high medium low"`
	Infrastructure  Infrastructure  `json:"infrastructure"`
	CrimeRate       Level           `json:"crimeRate" binding:"required,oneof=low medium high"`
	RentalDemand    Level           `json:"rentalDemand" binding:"required,oneof=very_high high medium low"`
}

type LocationAnalysisResult struct {
	OverallScore   int      `json:"overallScore"`
	Grade          string   `json:"grade"`
	Recommendation string   `json:"recommendation"`
	RiskLevel      string   `json:"riskLevel"`
	Strengths      []string `json:"strengths"`
	Weaknesses     []string `json:"weaknesses"`
}
