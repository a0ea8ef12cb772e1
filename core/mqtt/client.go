package mqtt

import (
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrNotConnected is returned by Publish when the broker is unreachable.
var ErrNotConnected = errors.New("mqtt: not connected to broker")

// Handler processes an inbound message. Handlers run on the paho delivery
// goroutine and must not block on long I/O.
type Handler func(topic string, payload []byte)

// Publisher is the outbound subset of the client, small enough to mock.
type Publisher interface {
	Publish(topic string, payload string) error
	IsConnected() bool
}

type subscription struct {
	topic   string
	qos     byte
	handler Handler
}

// Client wraps the paho MQTT client. Subscriptions registered before Connect
// are (re)applied on every successful connection, so a broker restart does
// not silently drop them.
type Client struct {
	cfg    Config
	logger *zap.Logger

	mu   sync.Mutex
	subs []subscription
	paho paho.Client
}

// NewClient creates a new MQTT client. Connect must be called before use.
func NewClient(cfg Config, logger *zap.Logger) *Client {
	return &Client{cfg: cfg, logger: logger}
}

// Subscribe registers a topic handler. It must be called before Connect.
func (c *Client) Subscribe(topic string, qos byte, handler Handler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subs = append(c.subs, subscription{topic: topic, qos: qos, handler: handler})
}

// Connect starts the connection to the broker. The connection is established
// in the background with automatic retry and reconnect; a broker that is down
// at startup is not a fatal condition. Configuration errors (e.g. an
// unreadable certificate) are returned immediately.
func (c *Client) Connect() error {
	scheme := "tcp"
	if c.cfg.UseTLS {
		scheme = "ssl"
	}

	opts := paho.NewClientOptions().
		AddBroker(fmt.Sprintf("%s://%s:%d", scheme, c.cfg.Broker, c.cfg.Port)).
		SetClientID(fmt.Sprintf("%s-%s", c.cfg.ClientID, uuid.NewString()[:8])).
		SetCleanSession(true).
		SetKeepAlive(60 * time.Second).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5 * time.Second)

	if c.cfg.Username != "" {
		opts.SetUsername(c.cfg.Username)
		opts.SetPassword(c.cfg.Password)
	}

	if c.cfg.UseTLS {
		tlsConfig, err := c.tlsConfig()
		if err != nil {
			return err
		}
		opts.SetTLSConfig(tlsConfig)
	}

	opts.SetOnConnectHandler(func(client paho.Client) {
		c.logger.Info("Connected to MQTT broker",
			zap.String("broker", c.cfg.Broker),
			zap.Int("port", c.cfg.Port),
		)
		c.resubscribe(client)
	})
	opts.SetConnectionLostHandler(func(_ paho.Client, err error) {
		c.logger.Warn("MQTT connection lost", zap.Error(err))
	})

	c.mu.Lock()
	c.paho = paho.NewClient(opts)
	client := c.paho
	c.mu.Unlock()

	// With connect retry enabled the token only completes once a broker is
	// reachable, so we do not wait on it here.
	client.Connect()
	c.logger.Info("MQTT connection initiated",
		zap.String("broker", c.cfg.Broker),
		zap.Int("port", c.cfg.Port),
		zap.Bool("tls", c.cfg.UseTLS),
	)
	return nil
}

// Publish sends a payload to a topic at QoS 1.
func (c *Client) Publish(topic string, payload string) error {
	c.mu.Lock()
	client := c.paho
	c.mu.Unlock()

	if client == nil || !client.IsConnectionOpen() {
		return ErrNotConnected
	}

	token := client.Publish(topic, 1, false, payload)
	if ok := token.WaitTimeout(5 * time.Second); !ok {
		return fmt.Errorf("mqtt: publish to %s timed out", topic)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("mqtt: publish to %s failed: %w", topic, err)
	}
	return nil
}

// IsConnected reports whether the broker connection is currently open.
func (c *Client) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.paho != nil && c.paho.IsConnectionOpen()
}

// CommandTopic formats the outbound command topic for a return box.
func (c *Client) CommandTopic(boxID int) string {
	return fmt.Sprintf(c.cfg.CommandTopicFormat, boxID)
}

// Disconnect closes the broker connection, allowing in-flight messages a
// short grace period.
func (c *Client) Disconnect() {
	c.mu.Lock()
	client := c.paho
	c.mu.Unlock()

	if client != nil && client.IsConnected() {
		client.Disconnect(250)
		c.logger.Info("MQTT client disconnected")
	}
}

func (c *Client) resubscribe(client paho.Client) {
	c.mu.Lock()
	subs := make([]subscription, len(c.subs))
	copy(subs, c.subs)
	c.mu.Unlock()

	for _, s := range subs {
		handler := s.handler
		token := client.Subscribe(s.topic, s.qos, func(_ paho.Client, msg paho.Message) {
			handler(msg.Topic(), msg.Payload())
		})
		topic := s.topic
		go func() {
			token.Wait()
			if err := token.Error(); err != nil {
				c.logger.Error("MQTT subscribe failed", zap.String("topic", topic), zap.Error(err))
				return
			}
			c.logger.Info("Subscribed to MQTT topic", zap.String("topic", topic))
		}()
	}
}

func (c *Client) tlsConfig() (*tls.Config, error) {
	tlsConfig := &tls.Config{
		InsecureSkipVerify: c.cfg.TLSInsecure, //nolint:gosec // explicit opt-in via config
	}

	if c.cfg.CACert != "" {
		pem, err := os.ReadFile(c.cfg.CACert)
		if err != nil {
			return nil, fmt.Errorf("mqtt: failed to read CA certificate: %w", err)
		}
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(pem) {
			return nil, fmt.Errorf("mqtt: no certificates found in %s", c.cfg.CACert)
		}
		tlsConfig.RootCAs = pool
	}

	if c.cfg.ClientCert != "" && c.cfg.ClientKey != "" {
		cert, err := tls.LoadX509KeyPair(c.cfg.ClientCert, c.cfg.ClientKey)
		if err != nil {
			return nil, fmt.Errorf("mqtt: failed to load client certificate: %w", err)
		}
		tlsConfig.Certificates = []tls.Certificate{cert}
	}

	return tlsConfig, nil
}
