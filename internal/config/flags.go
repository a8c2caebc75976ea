package config

import (
	"errors"
	"flag"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-a diagnostic API address in format [host]:[port]
//	-relay-url relay websocket endpoint (ws:// or wss://)
//	-relay-token relay auth token
//	-job-timeout insert job timeout (e.g., "30s")
//	-reconnect-delay pause between relay reconnects (e.g., "3s")
//	-consumer-url consumer webhook base URL
//	-consumer-token consumer auth token
//	-request-timeout consumer request timeout (e.g., "15s")
//	-batch-mode batch delivery mode ("assisted" or "auto_send")
//	-max-chars maximum characters per batch part
//	-provider default insert provider name
//	-log-level zerolog level name
//	-c/-config json file path with configs
func ParseFlags() *StructuredConfig {
	var diagAddress NetAddress
	var relayURL string
	var relayToken string
	var jobTimeout time.Duration
	var reconnectDelay time.Duration
	var consumerURL string
	var consumerToken string
	var requestTimeout time.Duration
	var batchMode string
	var maxChars int
	var defaultProvider string
	var logLevel string
	var jsonConfigPath string

	flag.Var(&diagAddress, "a", "Diagnostic API address host:port")
	flag.StringVar(&relayURL, "relay-url", "", "Relay websocket endpoint")
	flag.StringVar(&relayToken, "relay-token", "", "Relay auth token")
	flag.DurationVar(&jobTimeout, "job-timeout", 0, "Insert job timeout (e.g., 30s)")
	flag.DurationVar(&reconnectDelay, "reconnect-delay", 0, "Relay reconnect delay (e.g., 3s)")
	flag.StringVar(&consumerURL, "consumer-url", "", "Consumer webhook base URL")
	flag.StringVar(&consumerToken, "consumer-token", "", "Consumer auth token")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Consumer request timeout (e.g., 15s)")
	flag.StringVar(&batchMode, "batch-mode", "", "Batch delivery mode (assisted or auto_send)")
	flag.IntVar(&maxChars, "max-chars", 0, "Maximum characters per batch part")
	flag.StringVar(&defaultProvider, "provider", "", "Default insert provider")
	flag.StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")

	flag.Parse()

	return &StructuredConfig{
		App: App{
			LogLevel:        logLevel,
			DefaultProvider: defaultProvider,
		},
		Relay: Relay{
			URL:            relayURL,
			AuthToken:      relayToken,
			JobTimeout:     jobTimeout,
			ReconnectDelay: reconnectDelay,
		},
		Consumer: Consumer{
			URL:            consumerURL,
			AuthToken:      consumerToken,
			RequestTimeout: requestTimeout,
		},
		Batch: Batch{
			Mode:     batchMode,
			MaxChars: maxChars,
		},
		Diag: Diag{
			Address: diagAddress.String(),
		},
		Workers:      Workers{},
		JSONFilePath: jsonConfigPath,
	}
}

// String returns a canonical host:port string for a NetAddress, or an empty
// string when neither Host nor Port are set.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 {
		return errors.New("port number is a positive integer")
	}

	if host != "localhost" {
		ip := net.ParseIP(hostAndPort[0])
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
