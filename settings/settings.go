// Package settings defines the per-type logging configuration record and the severity levels
// it refers to. Values are plain copyable structs; ownership and storage live elsewhere.
package settings

// EventSettings describes how one logged type is emitted.
type EventSettings struct {
	// Enabled turns logging of the type on or off.
	Enabled bool `json:"enabled"`
	// Pretty selects the multi-line rendering of the logged value instead of the compact one.
	Pretty bool `json:"pretty"`
	// Level is the severity the type is logged at.
	Level Level `json:"level"`
}

// Default returns the settings given to a freshly registered type.
func Default() EventSettings {
	return EventSettings{
		Enabled: true,
		Pretty:  true,
		Level:   Info,
	}
}
