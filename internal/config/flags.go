// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

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

// Flags holds the destinations of every configuration flag. It is filled
// when the owning FlagSet is parsed.
type Flags struct {
	serverAddress   NetAddress
	databaseDSN     string
	jsonConfigPath  string
	sessionSignKey  string
	sessionIssuer   string
	sessionDuration time.Duration
	adminUsername   string
	adminPassword   string
	bcryptCost      int
	logLevel        string
	debug           bool
	readTimeout     time.Duration
	writeTimeout    time.Duration
	secureCookies   bool
}

// RegisterFlags defines all configuration flags on fs and returns the
// destination struct to pass to [GetStructuredConfig] after fs is parsed.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-d database DSN (SQLite file path or postgres:// URL)
//	-c/-config json file path with configs
//	-session-sign-key session signing key
//	-session-issuer session issuer name
//	-session-duration session duration (e.g., "24h", "30m")
//	-admin-username bootstrap admin username
//	-admin-password bootstrap admin password
//	-bcrypt-cost bcrypt work factor
//	-log-level minimum log level
//	-debug enable debug mode
//	-read-timeout request read timeout
//	-write-timeout response write timeout
//	-secure-cookies mark cookies as Secure
func RegisterFlags(fs *flag.FlagSet) *Flags {
	f := &Flags{}

	fs.Var(&f.serverAddress, "a", "Net address host:port")
	fs.StringVar(&f.databaseDSN, "d", "", "Database DSN")
	fs.StringVar(&f.jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&f.jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&f.sessionSignKey, "session-sign-key", "", "Session signing key")
	fs.StringVar(&f.sessionIssuer, "session-issuer", "", "Session issuer")
	fs.DurationVar(&f.sessionDuration, "session-duration", 0, "Session duration (e.g., 24h, 30m)")
	fs.StringVar(&f.adminUsername, "admin-username", "", "Bootstrap admin username")
	fs.StringVar(&f.adminPassword, "admin-password", "", "Bootstrap admin password")
	fs.IntVar(&f.bcryptCost, "bcrypt-cost", 0, "Bcrypt work factor")
	fs.StringVar(&f.logLevel, "log-level", "", "Minimum log level (debug, info, warn, error)")
	fs.BoolVar(&f.debug, "debug", false, "Enable debug mode")
	fs.DurationVar(&f.readTimeout, "read-timeout", 0, "Request read timeout (e.g., 10s)")
	fs.DurationVar(&f.writeTimeout, "write-timeout", 0, "Response write timeout (e.g., 30s)")
	fs.BoolVar(&f.secureCookies, "secure-cookies", false, "Mark cookies as Secure")

	return f
}

func (f *Flags) toConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			SessionSignKey:  f.sessionSignKey,
			SessionIssuer:   f.sessionIssuer,
			SessionDuration: f.sessionDuration,
			AdminUsername:   f.adminUsername,
			AdminPassword:   f.adminPassword,
			BcryptCost:      f.bcryptCost,
			LogLevel:        f.logLevel,
			Debug:           f.debug,
		},
		Storage: Storage{
			DB: DB{
				DSN: f.databaseDSN,
			},
		},
		Server: Server{
			HTTPAddress:   f.serverAddress.String(),
			ReadTimeout:   f.readTimeout,
			WriteTimeout:  f.writeTimeout,
			SecureCookies: f.secureCookies,
		},
		JSONFilePath: f.jsonConfigPath,
	}
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
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

	if port < 1 || port > 65535 {
		return errors.New("port number must be in range 1-65535")
	}

	if host != "localhost" && host != "" {
		ip := net.ParseIP(host)
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
