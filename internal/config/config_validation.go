// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup. Fields with
// defaults applied by [StructuredConfig.applyDefaults] (listener address,
// data file path, access-key lengths, delays) are intentionally not
// checked here, since validate runs before defaults are applied.
//
// Returns nil if the configuration is valid, or a descriptive error otherwise.
func (cfg *StructuredConfig) validate() error {
	if (cfg.Server.TLSCertFile == "") != (cfg.Server.TLSKeyFile == "") {
		return ErrInvalidServerConfig
	}

	if cfg.Secrets.RSAPrivateKeyFile == "" || cfg.Secrets.RSAPublicKeyFile == "" ||
		cfg.Secrets.AESKeyFile == "" || cfg.Secrets.AESIVFile == "" {
		return ErrInvalidSecretsConfig
	}

	if cfg.AccessKeys.SigningKeyFile == "" || cfg.AccessKeys.VerifyingKeyFile == "" {
		return ErrInvalidAccessKeysConfig
	}

	return nil
}
