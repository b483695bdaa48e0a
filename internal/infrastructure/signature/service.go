// Package signature firma digital de registros de lote: genera pares de
// llaves RSA por usuario, guarda la privada cifrada con la llave maestra
// del servidor y firma los datos del formulario al momento de la firma
// del operador.
package signature

import (
	"crypto"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/base64"
	"encoding/hex"
	"encoding/pem"
	"fmt"

	"github.com/dmorales/batch-records-api/internal/application/auth"
	"github.com/dmorales/batch-records-api/internal/application/records"
)

const keyBits = 2048

var (
	_ auth.KeyGenerator = (*Service)(nil)
	_ records.Signer    = (*Service)(nil)
)

// Service implementa KeyGenerator y Signer. masterKey deriva de la
// llave maestra configurada; cifra las llaves privadas en reposo con
// AES-GCM.
type Service struct {
	masterKey [32]byte
}

// NewService construye el servicio con el secreto maestro del servidor.
func NewService(masterSecret string) *Service {
	return &Service{masterKey: sha256.Sum256([]byte(masterSecret))}
}

// GenerateKeyPair genera un par RSA-2048. Devuelve la pública en PEM y
// la privada cifrada (base64 de nonce||ciphertext sobre el PEM PKCS#1).
func (s *Service) GenerateKeyPair() (string, string, error) {
	key, err := rsa.GenerateKey(rand.Reader, keyBits)
	if err != nil {
		return "", "", fmt.Errorf("generar llave RSA: %w", err)
	}

	publicPEM := pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PUBLIC KEY",
		Bytes: x509.MarshalPKCS1PublicKey(&key.PublicKey),
	})
	privatePEM := pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	})

	encrypted, err := s.encrypt(privatePEM)
	if err != nil {
		return "", "", err
	}
	return string(publicPEM), encrypted, nil
}

// Sign firma data con la llave privada cifrada del usuario:
// RSA PKCS#1 v1.5 sobre SHA-256, firma en base64.
func (s *Service) Sign(data []byte, privateKeyEncrypted string) (string, error) {
	privatePEM, err := s.decrypt(privateKeyEncrypted)
	if err != nil {
		return "", err
	}
	block, _ := pem.Decode(privatePEM)
	if block == nil {
		return "", fmt.Errorf("llave privada: PEM inválido")
	}
	key, err := x509.ParsePKCS1PrivateKey(block.Bytes)
	if err != nil {
		return "", fmt.Errorf("parsear llave privada: %w", err)
	}

	digest := sha256.Sum256(data)
	sig, err := rsa.SignPKCS1v15(rand.Reader, key, crypto.SHA256, digest[:])
	if err != nil {
		return "", fmt.Errorf("firmar datos: %w", err)
	}
	return base64.StdEncoding.EncodeToString(sig), nil
}

// Verify comprueba una firma contra la llave pública PEM.
func (s *Service) Verify(data []byte, signatureB64, publicPEM string) error {
	block, _ := pem.Decode([]byte(publicPEM))
	if block == nil {
		return fmt.Errorf("llave pública: PEM inválido")
	}
	key, err := x509.ParsePKCS1PublicKey(block.Bytes)
	if err != nil {
		return fmt.Errorf("parsear llave pública: %w", err)
	}
	sig, err := base64.StdEncoding.DecodeString(signatureB64)
	if err != nil {
		return fmt.Errorf("decodificar firma: %w", err)
	}
	digest := sha256.Sum256(data)
	return rsa.VerifyPKCS1v15(key, crypto.SHA256, digest[:], sig)
}

// HashData SHA-256 en hex de los datos del formulario.
func (s *Service) HashData(data []byte) string {
	digest := sha256.Sum256(data)
	return hex.EncodeToString(digest[:])
}

func (s *Service) encrypt(plaintext []byte) (string, error) {
	block, err := aes.NewCipher(s.masterKey[:])
	if err != nil {
		return "", err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}
	sealed := gcm.Seal(nonce, nonce, plaintext, nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

func (s *Service) decrypt(encoded string) ([]byte, error) {
	sealed, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("decodificar llave cifrada: %w", err)
	}
	block, err := aes.NewCipher(s.masterKey[:])
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	if len(sealed) < gcm.NonceSize() {
		return nil, fmt.Errorf("llave cifrada truncada")
	}
	nonce, ciphertext := sealed[:gcm.NonceSize()], sealed[gcm.NonceSize():]
	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("descifrar llave privada: %w", err)
	}
	return plaintext, nil
}
