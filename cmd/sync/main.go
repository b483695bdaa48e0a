// sync importa productos, formulaciones e ingredientes desde una base
// de datos externa (MySQL, PostgreSQL, SQLite o SQL Server) hacia el
// catálogo local.
//
// Uso: go run ./cmd/sync -config conexion.json [-mode products|ingredients|all] [-test]
//
// El archivo de configuración describe la conexión, las tablas de
// origen y el mapeo de campos:
//
//	{
//	  "connection": {"type": "mysql", "host": "10.0.0.5", "database": "erp", ...},
//	  "tables": {"products": "articulos", "ingredients": "insumos", "productFormulation": "recetas"},
//	  "fieldMappings": {"products": {"code": "codigo", "name": "descripcion"}}
//	}
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/spf13/viper"

	appsync "github.com/dmorales/batch-records-api/internal/application/sync"
	"github.com/dmorales/batch-records-api/internal/infrastructure/connector"
	"github.com/dmorales/batch-records-api/internal/infrastructure/sqlite"
	"github.com/dmorales/batch-records-api/pkg/config"
	"github.com/dmorales/batch-records-api/pkg/logger"
)

func main() {
	configPath := flag.String("config", "", "ruta al archivo JSON de conexión externa")
	mode := flag.String("mode", "all", "qué sincronizar: products, ingredients o all")
	testOnly := flag.Bool("test", false, "solo probar la conexión y salir")
	userID := flag.Int64("user", 1, "id del usuario local que queda como creador de los registros importados")
	flag.Parse()

	if *configPath == "" {
		fmt.Fprintln(os.Stderr, "sync: falta -config")
		flag.Usage()
		os.Exit(2)
	}

	if err := run(*configPath, *mode, *testOnly, *userID); err != nil {
		fmt.Fprintf(os.Stderr, "sync: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, mode string, testOnly bool, userID int64) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("cargar configuración: %w", err)
	}

	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "debug"})

	srcCfg, err := loadSourceConfig(configPath)
	if err != nil {
		return err
	}

	src, err := connector.NewSource(srcCfg, log.Zerolog())
	if err != nil {
		return err
	}

	ctx := context.Background()
	if testOnly {
		if err := src.TestConnection(ctx); err != nil {
			return err
		}
		fmt.Println("Conexión exitosa.")
		return nil
	}

	db, err := sqlite.Open(cfg.DB.Path)
	if err != nil {
		return fmt.Errorf("abrir base de datos local: %w", err)
	}
	defer db.Close()

	engine := appsync.NewEngine(
		sqlite.NewProductRepository(db),
		sqlite.NewFormulationRepository(db),
		sqlite.NewRawMaterialRepository(db),
		log.Zerolog(),
	)

	if mode == "products" || mode == "all" {
		res := engine.SyncProducts(ctx, src, userID)
		fmt.Printf("Productos: %d importados, %d ingredientes de formulación, %d errores\n",
			res.ProductsImported, res.IngredientsImported, len(res.Errors))
		for _, e := range res.Errors {
			fmt.Printf("  error: %s\n", e.Error)
		}
	}

	if mode == "ingredients" || mode == "all" {
		res := engine.SyncIngredients(ctx, src, userID)
		fmt.Printf("Ingredientes: %d importados, %d actualizados, %d errores\n",
			res.Imported, res.Updated, len(res.Errors))
		for _, e := range res.Errors {
			fmt.Printf("  error: %s\n", e.Error)
		}
	}

	return nil
}

// loadSourceConfig lee el JSON de conexión externa con viper.
func loadSourceConfig(path string) (connector.Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")
	if err := v.ReadInConfig(); err != nil {
		return connector.Config{}, fmt.Errorf("leer configuración de conexión: %w", err)
	}
	var cfg connector.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return connector.Config{}, fmt.Errorf("interpretar configuración de conexión: %w", err)
	}
	return cfg, nil
}
