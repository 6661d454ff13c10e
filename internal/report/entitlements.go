package report

// Tier is a subscription level understood by the export layer.
type Tier string

const (
	TierFree Tier = "free"
	TierPro  Tier = "pro"
)

// Entitlements is an explicit capability value passed into the export layer.
// The analysis engine has no tier awareness: gating happens only where
// results are rendered, never as ambient state the engine reads.
type Entitlements struct {
	Tier            Tier
	MaxExportCharts int
	IncludeOutliers bool
}

// FreeEntitlements caps the exported report for the free tier.
func FreeEntitlements() Entitlements {
	return Entitlements{Tier: TierFree, MaxExportCharts: 2, IncludeOutliers: false}
}

// ProEntitlements exports everything the analysis produced.
func ProEntitlements() Entitlements {
	return Entitlements{Tier: TierPro, MaxExportCharts: 6, IncludeOutliers: true}
}
