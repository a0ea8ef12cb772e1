package mqtt

// Config holds configuration for the MQTT transport.
type Config struct {
	// Broker is the MQTT broker host.
	Broker string `mapstructure:"broker" default:"localhost"`
	// Port is the MQTT broker port (1883 plain, 8883 TLS).
	Port int `mapstructure:"port" default:"1883"`
	// Username is the broker username (optional).
	Username string `mapstructure:"username" default:""`
	// Password is the broker password (optional).
	Password string `mapstructure:"password" default:""`
	// ClientID is the MQTT client identifier prefix. A random suffix is
	// appended so multiple instances do not kick each other off the broker.
	ClientID string `mapstructure:"client_id" default:"bookdrop-backend"`
	// UseTLS enables TLS for the broker connection.
	UseTLS bool `mapstructure:"use_tls" default:"false"`
	// CACert is the path to the CA certificate file (optional; system roots
	// are used when empty).
	CACert string `mapstructure:"ca_cert" default:""`
	// ClientCert is the path to the client certificate for mutual TLS (optional).
	ClientCert string `mapstructure:"client_cert" default:""`
	// ClientKey is the path to the client key for mutual TLS (optional).
	ClientKey string `mapstructure:"client_key" default:""`
	// TLSInsecure disables certificate verification. Not for production.
	TLSInsecure bool `mapstructure:"tls_insecure" default:"false"`
	// CommandTopicFormat is the outbound command topic template. It receives
	// the numeric return box id.
	CommandTopicFormat string `mapstructure:"command_topic_format" default:"ReturnBox%02d/Command"`
	// UnlockCooldownSeconds is the minimum interval between unlock commands
	// to the same return box.
	UnlockCooldownSeconds int `mapstructure:"unlock_cooldown_seconds" default:"5"`
}
