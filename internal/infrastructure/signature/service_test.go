package signature

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testMasterSecret = "secreto-maestro-de-pruebas"

func TestGenerateKeyPair_FormatoYCifrado(t *testing.T) {
	svc := NewService(testMasterSecret)

	publicPEM, privateEncrypted, err := svc.GenerateKeyPair()
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(publicPEM, "-----BEGIN RSA PUBLIC KEY-----"),
		"la llave pública debe ser PEM PKCS#1")
	assert.NotContains(t, privateEncrypted, "PRIVATE KEY",
		"la llave privada nunca se guarda en claro")
}

func TestSign_Verify_RoundTrip(t *testing.T) {
	svc := NewService(testMasterSecret)
	publicPEM, privateEncrypted, err := svc.GenerateKeyPair()
	require.NoError(t, err)

	data := []byte(`{"batchNumber":"LOTE-001","quantity":500}`)
	sig, err := svc.Sign(data, privateEncrypted)
	require.NoError(t, err)
	require.NotEmpty(t, sig)

	assert.NoError(t, svc.Verify(data, sig, publicPEM), "la firma debe verificar con la pública del par")

	tampered := []byte(`{"batchNumber":"LOTE-001","quantity":501}`)
	assert.Error(t, svc.Verify(tampered, sig, publicPEM),
		"un solo byte alterado debe invalidar la firma")
}

func TestSign_SecretoMaestroDistinto(t *testing.T) {
	_, privateEncrypted, err := NewService(testMasterSecret).GenerateKeyPair()
	require.NoError(t, err)

	otro := NewService("otro-secreto")
	_, err = otro.Sign([]byte("datos"), privateEncrypted)
	assert.Error(t, err, "sin el secreto maestro correcto no se puede descifrar la privada")
}

func TestHashData_SHA256Hex(t *testing.T) {
	svc := NewService(testMasterSecret)

	// sha256("") es un vector conocido.
	assert.Equal(t,
		"e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
		svc.HashData(nil))
	assert.Len(t, svc.HashData([]byte("x")), 64)
}
