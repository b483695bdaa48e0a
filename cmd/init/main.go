// init inicializa el sistema: crea la base de datos SQLite con el
// esquema completo, siembra la configuración por defecto y el usuario
// admin con su par de llaves RSA para firma digital.
//
// Uso: go run ./cmd/init
// Lee la misma configuración que el servidor (DB_PATH, BCRYPT_COST,
// SIGNING_MASTER_SECRET).
package main

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"

	"github.com/dmorales/batch-records-api/internal/infrastructure/signature"
	"github.com/dmorales/batch-records-api/internal/infrastructure/sqlite"
	"github.com/dmorales/batch-records-api/pkg/config"
)

const (
	defaultAdminUser     = "admin"
	defaultAdminPassword = "admin123"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "init: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("cargar configuración: %w", err)
	}

	ctx := context.Background()
	db, err := sqlite.Open(cfg.DB.Path)
	if err != nil {
		return fmt.Errorf("abrir base de datos: %w", err)
	}
	defer db.Close()

	if err := sqlite.InitSchema(ctx, db); err != nil {
		return fmt.Errorf("inicializar esquema: %w", err)
	}
	fmt.Printf("Base de datos inicializada: %s\n", cfg.DB.Path)

	// Configuración de negocio por defecto. INSERT OR IGNORE respeta
	// valores ya ajustados por un admin.
	if _, err := db.ExecContext(ctx,
		`INSERT OR IGNORE INTO system_settings (key, value) VALUES ('packaging_box_factor', ?)`,
		fmt.Sprintf("%g", cfg.Batch.BoxFactor)); err != nil {
		return fmt.Errorf("sembrar configuración: %w", err)
	}

	var adminCount int
	if err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users WHERE username = ?`, defaultAdminUser).Scan(&adminCount); err != nil {
		return fmt.Errorf("consultar usuario admin: %w", err)
	}
	if adminCount > 0 {
		fmt.Println("El usuario admin ya existe; no se modifica.")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(defaultAdminPassword), cfg.Batch.BcryptCost)
	if err != nil {
		return fmt.Errorf("hashear password: %w", err)
	}

	res, err := db.ExecContext(ctx,
		`INSERT INTO users (username, email, password_hash, role, full_name, is_active)
		 VALUES (?, ?, ?, 'admin', 'Administrador del Sistema', 1)`,
		defaultAdminUser, "admin@example.com", string(hash))
	if err != nil {
		return fmt.Errorf("crear usuario admin: %w", err)
	}
	adminID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("id del usuario admin: %w", err)
	}

	sigSvc := signature.NewService(cfg.Batch.SigningMasterSecret)
	publicPEM, privateEncrypted, err := sigSvc.GenerateKeyPair()
	if err != nil {
		return fmt.Errorf("generar llaves de firma: %w", err)
	}
	if _, err := db.ExecContext(ctx,
		`INSERT INTO digital_signatures (user_id, public_key, private_key_encrypted, is_active)
		 VALUES (?, ?, ?, 1)`,
		adminID, publicPEM, privateEncrypted); err != nil {
		return fmt.Errorf("guardar llaves de firma: %w", err)
	}

	fmt.Println("Usuario admin creado.")
	fmt.Printf("  Username: %s\n", defaultAdminUser)
	fmt.Printf("  Password: %s\n", defaultAdminPassword)
	fmt.Println("Cambie el password por defecto de inmediato.")
	return nil
}
