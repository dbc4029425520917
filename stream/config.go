package stream

// Config holds the MQTT connection used to publish token frames.
type Config struct {
	URL      string `yaml:"url"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	ClientID string `yaml:"clientId"`
	Topics   struct {
		Frames string `yaml:"frames"`
		Binary string `yaml:"binary"`
	} `yaml:"topics"`
}
