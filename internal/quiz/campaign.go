package quiz

import "math/rand/v2"

// CampaignState is the lifecycle of a survival Campaign.
type CampaignState string

const (
	CampaignNotStarted CampaignState = "not_started"
	CampaignPlaying    CampaignState = "playing"
	CampaignCleared    CampaignState = "cleared"
	CampaignGameOver   CampaignState = "game_over"
)

// Terminal reports whether the campaign accepts no further play.
func (s CampaignState) Terminal() bool {
	return s == CampaignCleared || s == CampaignGameOver
}

// ProvinceResult is the recorded outcome of one province's sub-session.
type ProvinceResult struct {
	TimeSeconds int
	Verdicts    map[string]Verdict
}

// Campaign chains sudden-death sessions across every province in a shuffled
// order. The first miss anywhere ends the whole campaign; clearing every
// province wins it. The per-province results accumulate in both outcomes.
type Campaign struct {
	provinces []string
	cursor    int
	results   map[string]ProvinceResult
	session   *Session
	state     CampaignState
}

// NewCampaign shuffles the given provinces into the campaign order.
func NewCampaign(provinces []string) *Campaign {
	order := append([]string(nil), provinces...)
	rand.Shuffle(len(order), func(i, j int) {
		order[i], order[j] = order[j], order[i]
	})
	return &Campaign{
		provinces: order,
		results:   make(map[string]ProvinceResult),
		state:     CampaignNotStarted,
	}
}

// CurrentProvince returns the province the cursor points at, or "" when the
// campaign is terminal.
func (c *Campaign) CurrentProvince() string {
	if c.state.Terminal() || c.cursor >= len(c.provinces) {
		return ""
	}
	return c.provinces[c.cursor]
}

// BeginProvince starts the sub-session for the current province with the
// fetched area names. No-op when the campaign is terminal or a sub-session
// is already running.
func (c *Campaign) BeginProvince(areas []string) {
	if c.state.Terminal() {
		return
	}
	if c.session != nil && c.session.State() == StateInProgress {
		return
	}
	c.session = NewSession(areas, ModeSuddenDeath)
	c.session.Begin()
	c.state = CampaignPlaying
}

// SubmitClick forwards a click to the current sub-session. elapsedSeconds
// is the campaign stopwatch reading at the time of the click; it is recorded
// into the province result the moment the sub-session ends, for either
// outcome. A sub-session failure ends the entire campaign.
func (c *Campaign) SubmitClick(area string, elapsedSeconds int) ClickResult {
	if c.state != CampaignPlaying || c.session == nil {
		return ClickResult{}
	}
	res := c.session.SubmitClick(area)
	if !res.Done {
		return res
	}

	c.results[c.provinces[c.cursor]] = ProvinceResult{
		TimeSeconds: elapsedSeconds,
		Verdicts:    c.session.Verdicts(),
	}
	if c.session.State() == StateFailed {
		c.state = CampaignGameOver
	}
	return res
}

// Advance moves the cursor past a completed province and returns the next
// one. When the order is exhausted the campaign transitions to Cleared and
// ok is false. Advancing is only valid once the current sub-session has
// completed.
func (c *Campaign) Advance() (next string, ok bool) {
	if c.state != CampaignPlaying || c.session == nil || c.session.State() != StateComplete {
		return "", false
	}
	c.cursor++
	c.session = nil
	if c.cursor >= len(c.provinces) {
		c.state = CampaignCleared
		return "", false
	}
	return c.provinces[c.cursor], true
}

// State returns the campaign lifecycle state.
func (c *Campaign) State() CampaignState { return c.state }

// Session returns the running sub-session, or nil between provinces.
func (c *Campaign) Session() *Session { return c.session }

// Order returns the shuffled province order.
func (c *Campaign) Order() []string { return append([]string(nil), c.provinces...) }

// Completed returns how many provinces have a recorded result.
func (c *Campaign) Completed() int { return len(c.results) }

// Results returns a copy of the accumulated per-province results.
func (c *Campaign) Results() map[string]ProvinceResult {
	out := make(map[string]ProvinceResult, len(c.results))
	for k, v := range c.results {
		out[k] = v
	}
	return out
}
