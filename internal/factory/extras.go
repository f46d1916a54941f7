package factory

// Extras is application metadata kept next to a configuration. It is persisted
// with the configuration but never emitted in the engine JSON.
type Extras struct {
	Remark string `json:"remark"`
	Delay  string `json:"delayResult,omitempty"`
	Speed  string `json:"speedResult,omitempty"`
}
