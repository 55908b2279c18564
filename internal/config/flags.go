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
//	-a server listen address in format [host]:[port]
//	-d path of the JSON data file holding the shared document
//	-static directory served for unmatched GET paths ('' disables)
//	-server-url base URL of the sync server (agent side)
//	-state path of the agent's local state file
//	-request-timeout outbound/inbound request timeout (e.g. "15s")
//	-resync-interval periodic agent refresh interval (e.g. "5m")
//	-c/-config json file path with configs
func ParseFlags() *StructuredConfig {
	var serverAddress NetAddress
	var dataFilePath string
	var staticDir string
	var serverURL string
	var statePath string
	var requestTimeout time.Duration
	var resyncInterval time.Duration
	var jsonConfigPath string

	flag.Var(&serverAddress, "a", "Net address host:port")
	flag.StringVar(&dataFilePath, "d", "", "Data file path")
	flag.StringVar(&staticDir, "static", "", "Static assets directory")
	flag.StringVar(&serverURL, "server-url", "", "Sync server base URL")
	flag.StringVar(&statePath, "state", "", "Agent state file path")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout")
	flag.DurationVar(&resyncInterval, "resync-interval", 0, "Agent resync interval")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")

	flag.Parse()

	return &StructuredConfig{
		Storage: Storage{
			DataFilePath: dataFilePath,
			StaticDir:    staticDir,
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
		},
		Agent: Agent{
			ServerURL: serverURL,
			StatePath: statePath,
		},
		Workers: Workers{
			ResyncInterval: resyncInterval,
		},
		JSONFilePath: jsonConfigPath,
	}
}

// String returns a canonical host:port string for a NetAddress, or "" when
// neither field is set.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is
// "localhost" or empty, and returns an error if the format or values are
// invalid.
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

	if host != "" && host != "localhost" {
		if ip := net.ParseIP(host); ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
