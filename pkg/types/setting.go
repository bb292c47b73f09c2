package types

// Setting keys consumed by formatting in the caller layer.
const (
	SettingTimezone = "timezone"
	SettingCurrency = "currency"
)

// Setting is a flat key-value entry in the settings store.
type Setting struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}
