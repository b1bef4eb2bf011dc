package models

// Secret is the persisted value for the composite key
// (vault_name, secret_name) in the secrets table. Body is the base64
// encoding of the two-stage envelope ciphertext RSA(AES-GCM(plaintext));
// the plaintext is never persisted.
type Secret struct {
	// Created is the RFC-3339 creation timestamp. Unchanged on update.
	Created string `json:"created"`
	// Body is base64(RSA-PKCS#1-v1.5-chained(AES-256-GCM(plaintext))).
	Body string `json:"body"`
}

// SecretSummary is the shape returned when listing a vault's secret names,
// omitting the ciphertext body.
type SecretSummary struct {
	Created    string `json:"created"`
	SecretName string `json:"secret_name"`
}

// FoundSecretPayload is the "Found" body of an admin-channel FindSecret
// response. Data is base64 plaintext, mirroring the wire shape InsertSecret
// accepts it in.
type FoundSecretPayload struct {
	Data string `json:"data"`
}
