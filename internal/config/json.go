package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// StructuredJSONConfig is the JSON-specific representation of the application
// configuration. It mirrors [StructuredConfig] but uses JSON struct tags.
//
// After decoding, the values are mapped into a [StructuredConfig] by
// [parseJSON].
type StructuredJSONConfig struct {
	Server struct {
		Address     string `json:"address"`
		TLSCertFile string `json:"tls_cert_file"`
		TLSKeyFile  string `json:"tls_key_file"`
	} `json:"server,omitempty"`

	Storage struct {
		DataFile string `json:"data_file"`
	} `json:"storage,omitempty"`

	Secrets struct {
		RSAPrivateKeyFile string `json:"rsa_private_key_file"`
		RSAPublicKeyFile  string `json:"rsa_public_key_file"`
		AESKeyFile        string `json:"aes_key_file"`
		AESIVFile         string `json:"aes_iv_file"`
	} `json:"secrets,omitempty"`

	AccessKeys struct {
		SigningKeyFile                  string `json:"signing_key_file"`
		VerifyingKeyFile                string `json:"verifying_key_file"`
		AccessKeyLength                 int    `json:"access_key_length"`
		SecretAccessKeyLength           int    `json:"secret_access_key_length"`
		DelayUnsuccessfulAttemptsMillis uint64 `json:"delay_unsuccessful_attempts_millis"`
	} `json:"access_keys,omitempty"`

	Users struct {
		DelayUnsuccessfulAttemptsMillis uint64 `json:"delay_unsuccessful_attempts_millis"`
	} `json:"users,omitempty"`

	Logger struct {
		LogFilePath string `json:"log_file_path"`
	} `json:"logger,omitempty"`

	NodeName string `json:"node_name"`
}

// parseJSON opens the JSON file at jsonFilePath, decodes it into a
// [StructuredJSONConfig], and maps the result into a [StructuredConfig].
//
// JSONFilePath is intentionally left empty in the returned config so that
// the path is not re-processed during subsequent merge steps.
//
// Returns a wrapped error if the file cannot be opened or its contents
// cannot be decoded as valid JSON.
func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		Server: Server{
			Address:     jsonCfg.Server.Address,
			TLSCertFile: jsonCfg.Server.TLSCertFile,
			TLSKeyFile:  jsonCfg.Server.TLSKeyFile,
		},
		Storage: Storage{
			DataFile: jsonCfg.Storage.DataFile,
		},
		Secrets: Secrets{
			RSAPrivateKeyFile: jsonCfg.Secrets.RSAPrivateKeyFile,
			RSAPublicKeyFile:  jsonCfg.Secrets.RSAPublicKeyFile,
			AESKeyFile:        jsonCfg.Secrets.AESKeyFile,
			AESIVFile:         jsonCfg.Secrets.AESIVFile,
		},
		AccessKeys: AccessKeys{
			SigningKeyFile:                  jsonCfg.AccessKeys.SigningKeyFile,
			VerifyingKeyFile:                jsonCfg.AccessKeys.VerifyingKeyFile,
			AccessKeyLength:                 jsonCfg.AccessKeys.AccessKeyLength,
			SecretAccessKeyLength:           jsonCfg.AccessKeys.SecretAccessKeyLength,
			DelayUnsuccessfulAttemptsMillis: jsonCfg.AccessKeys.DelayUnsuccessfulAttemptsMillis,
		},
		Users: Users{
			DelayUnsuccessfulAttemptsMillis: jsonCfg.Users.DelayUnsuccessfulAttemptsMillis,
		},
		Logger: Logger{
			LogFilePath: jsonCfg.Logger.LogFilePath,
		},
		NodeName:     jsonCfg.NodeName,
		JSONFilePath: "", // intentionally cleared to prevent re-processing
	}

	return cfg, nil
}
