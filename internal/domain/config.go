package domain

// Config mirrors <user-config-dir>/.askcmd/config.json.
type Config struct {
	APIKey string `json:"api_key" yaml:"api_key"`
	Model  string `json:"model" yaml:"model"`
}
