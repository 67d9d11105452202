package model

// CityState is the city simulation's view of the world, handed to the
// generator whenever it changes. Age drives which rules are active.
type CityState struct {
	Population            int     `json:"population"`
	Density               float64 `json:"density"`
	EconomicLevel         float64 `json:"economicLevel"`
	Age                   int     `json:"age"`
	NeedsRuleRegeneration bool    `json:"needsRuleRegeneration"`
}

// MarkDirty requests a rule regeneration on the next state update.
func (c *CityState) MarkDirty() {
	c.NeedsRuleRegeneration = true
}
