package config

import (
	"errors"
	"flag"
	"net"
	"strconv"
	"strings"
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
//	-a server address in format [host]:[port]
//	-f storage data file path
//	-tls-cert TLS certificate file path
//	-tls-key TLS private key file path
//	-rsa-private-key RSA private key file path
//	-rsa-public-key RSA public key file path
//	-aes-key AES key file path
//	-aes-iv AES nonce file path
//	-ak-signing-key access-key ECDSA signing key file path
//	-ak-verifying-key access-key ECDSA verifying key file path
//	-node-name node name reported in admin login responses
//	-log-file additional log file sink, alongside stdout
//	-c/-config json file path with configs
func ParseFlags() *StructuredConfig {
	var serverAddress NetAddress
	var dataFile string
	var tlsCertFile, tlsKeyFile string
	var rsaPrivateKeyFile, rsaPublicKeyFile string
	var aesKeyFile, aesIVFile string
	var akSigningKeyFile, akVerifyingKeyFile string
	var nodeName string
	var logFilePath string
	var jsonConfigPath string

	flag.Var(&serverAddress, "a", "Net address host:port")
	flag.StringVar(&dataFile, "f", "", "Storage data file path")
	flag.StringVar(&tlsCertFile, "tls-cert", "", "TLS certificate file path")
	flag.StringVar(&tlsKeyFile, "tls-key", "", "TLS private key file path")
	flag.StringVar(&rsaPrivateKeyFile, "rsa-private-key", "", "RSA private key file path")
	flag.StringVar(&rsaPublicKeyFile, "rsa-public-key", "", "RSA public key file path")
	flag.StringVar(&aesKeyFile, "aes-key", "", "AES key file path")
	flag.StringVar(&aesIVFile, "aes-iv", "", "AES nonce file path")
	flag.StringVar(&akSigningKeyFile, "ak-signing-key", "", "Access-key ECDSA signing key file path")
	flag.StringVar(&akVerifyingKeyFile, "ak-verifying-key", "", "Access-key ECDSA verifying key file path")
	flag.StringVar(&nodeName, "node-name", "", "Node name reported in admin login responses")
	flag.StringVar(&logFilePath, "log-file", "", "Additional log file sink, alongside stdout")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")

	flag.Parse()

	return &StructuredConfig{
		Server: Server{
			Address:     serverAddress.String(),
			TLSCertFile: tlsCertFile,
			TLSKeyFile:  tlsKeyFile,
		},
		Storage: Storage{
			DataFile: dataFile,
		},
		Secrets: Secrets{
			RSAPrivateKeyFile: rsaPrivateKeyFile,
			RSAPublicKeyFile:  rsaPublicKeyFile,
			AESKeyFile:        aesKeyFile,
			AESIVFile:         aesIVFile,
		},
		AccessKeys: AccessKeys{
			SigningKeyFile:   akSigningKeyFile,
			VerifyingKeyFile: akVerifyingKeyFile,
		},
		Logger: Logger{
			LogFilePath: logFilePath,
		},
		NodeName:     nodeName,
		JSONFilePath: jsonConfigPath,
	}
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns the default server address.
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

	if host != "localhost" && host != "0.0.0.0" {
		ip := net.ParseIP(hostAndPort[0])
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
