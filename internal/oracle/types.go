package oracle

type priceResponse struct {
	Data    *priceData `json:"data"`
	Success bool       `json:"success"`
}

type priceData struct {
	Value           *float64 `json:"value"`
	UpdateUnixTime  int64    `json:"updateUnixTime,omitempty"`
	UpdateHumanTime string   `json:"updateHumanTime,omitempty"`
}

type ohlcvResponse struct {
	Data struct {
		Items []Candle `json:"items"`
	} `json:"data"`
	Success bool `json:"success"`
}

// Candle is a single OHLCV bar.
type Candle struct {
	UnixTime int64   `json:"unixTime"`
	Open     float64 `json:"o"`
	High     float64 `json:"h"`
	Low      float64 `json:"l"`
	Close    float64 `json:"c"`
	Volume   float64 `json:"v"`
}
