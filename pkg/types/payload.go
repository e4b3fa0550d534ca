package types

// Importance grades how actionable an insight is.
type Importance string

const (
	ImportanceLow    Importance = "low"
	ImportanceMedium Importance = "medium"
	ImportanceHigh   Importance = "high"
)

// Insight is one human-readable analytics record produced by a model run.
type Insight struct {
	Type        string                 `json:"type"`
	Title       string                 `json:"title"`
	Description string                 `json:"description"`
	Importance  Importance             `json:"importance"`
	Data        map[string]interface{} `json:"data"`
}

// NetworkMetrics holds aggregate statistics over a finished graph.
type NetworkMetrics struct {
	TotalNodes                int     `json:"totalNodes"`
	TotalEdges                int     `json:"totalEdges"`
	TotalContacts             int     `json:"totalContacts"`
	TotalUsers                int     `json:"totalUsers"`
	AverageConnectionsPerUser float64 `json:"averageConnectionsPerUser"`
	NetworkDensity            float64 `json:"networkDensity"`
	MaxLevel                  int     `json:"maxLevel"`
}

// Influencer is one ranked entry in the top-influencers list.
type Influencer struct {
	Name           string  `json:"name"`
	Email          string  `json:"email"`
	Type           string  `json:"type"`
	Connections    int     `json:"connections"`
	Level          int     `json:"level"`
	InfluenceScore float64 `json:"influence_score"`
}

// ChainEntry is one link in a referral chain, ordered from the starting
// user back towards the ultimate root.
type ChainEntry struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Type  string `json:"type"`
	Level int    `json:"level"`
}

// ReferralChain is a backward referral lineage of length >= 2.
type ReferralChain struct {
	Length int          `json:"length"`
	Chain  []ChainEntry `json:"chain"`
}

// NetworkData is the serialized graph included in the payload.
type NetworkData struct {
	Nodes      []*Node `json:"nodes"`
	Edges      []*Edge `json:"edges"`
	TotalNodes int     `json:"totalNodes"`
	TotalEdges int     `json:"totalEdges"`
}

// AnalysisPayload is the full analytics result for one snapshot.
type AnalysisPayload struct {
	TotalContacts  int             `json:"totalContacts"`
	TotalUsers     int             `json:"totalUsers"`
	Timestamp      string          `json:"timestamp"`
	NetworkData    NetworkData     `json:"networkData"`
	NetworkMetrics NetworkMetrics  `json:"networkMetrics"`
	AIInsights     []Insight       `json:"aiInsights"`
	TopInfluencers []Influencer    `json:"topInfluencers"`
	ReferralChains []ReferralChain `json:"referralChains"`
}
