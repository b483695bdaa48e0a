package connector

import (
	"context"

	"github.com/rs/zerolog"

	appsync "github.com/dmorales/batch-records-api/internal/application/sync"
)

// Source adapta un Connector y su configuración de mapeo a la fuente
// externa que consume el motor de sincronización.
type Source struct {
	cfg  Config
	conn Connector
	log  zerolog.Logger
}

// NewSource construye la fuente para la configuración dada.
func NewSource(cfg Config, log zerolog.Logger) (*Source, error) {
	conn, err := New(cfg.Connection)
	if err != nil {
		return nil, err
	}
	return &Source{cfg: cfg, conn: conn, log: log}, nil
}

func (s *Source) Connect(ctx context.Context) error {
	return s.conn.Connect(ctx)
}

// Disconnect cierra la conexión externa. Un error al desconectar se
// registra y no se propaga: la sincronización ya terminó.
func (s *Source) Disconnect() {
	if err := s.conn.Close(); err != nil {
		s.log.Error().Err(err).Str("type", s.cfg.Connection.Type).Msg("error al desconectar fuente externa")
		return
	}
	s.log.Debug().Str("type", s.cfg.Connection.Type).Msg("conexión externa cerrada")
}

// TestConnection abre y cierra la conexión para validar la
// configuración sin ejecutar consultas.
func (s *Source) TestConnection(ctx context.Context) error {
	if err := s.conn.Connect(ctx); err != nil {
		return err
	}
	if err := s.conn.Close(); err != nil {
		s.log.Error().Err(err).Str("type", s.cfg.Connection.Type).Msg("error al desconectar fuente externa")
	}
	return nil
}

// HasFormulation indica si la configuración trae las tablas necesarias
// para importar formulaciones junto con los productos.
func (s *Source) HasFormulation() bool {
	return s.cfg.Tables.Ingredients != "" && s.cfg.Tables.ProductFormulation != ""
}

func (s *Source) FetchProducts(ctx context.Context) ([]appsync.ExternalProduct, error) {
	rows, err := s.conn.Query(ctx, productsQuery(s.cfg.Tables.Products, s.cfg.FieldMappings.Products))
	if err != nil {
		return nil, err
	}

	products := make([]appsync.ExternalProduct, 0, len(rows))
	for _, row := range rows {
		products = append(products, appsync.ExternalProduct{
			ID:          row["id"],
			Code:        asString(row["code"]),
			Name:        asString(row["name"]),
			Description: asString(row["description"]),
			Unit:        asString(row["unit"]),
		})
	}
	return products, nil
}

func (s *Source) FetchProductIngredients(ctx context.Context, externalProductID any) ([]appsync.ExternalIngredient, error) {
	query := formulationQuery(s.cfg.Tables.ProductFormulation, s.cfg.FieldMappings.Formulation)
	rows, err := s.conn.Query(ctx, query, externalProductID)
	if err != nil {
		return nil, err
	}

	ingredients := make([]appsync.ExternalIngredient, 0, len(rows))
	for _, row := range rows {
		ingredients = append(ingredients, appsync.ExternalIngredient{
			IngredientID: row["ingredient_id"],
			Name:         asString(row["ingredient_name"]),
			Unit:         asString(row["unit"]),
			Quantity:     asDecimal(row["quantity"]),
			Percentage:   asDecimal(row["percentage"]),
		})
	}
	return ingredients, nil
}

func (s *Source) FetchAllIngredients(ctx context.Context) ([]appsync.ExternalIngredient, error) {
	rows, err := s.conn.Query(ctx, ingredientsQuery(s.cfg.Tables.Ingredients, s.cfg.FieldMappings.Ingredients))
	if err != nil {
		return nil, err
	}

	ingredients := make([]appsync.ExternalIngredient, 0, len(rows))
	for _, row := range rows {
		ingredients = append(ingredients, appsync.ExternalIngredient{
			IngredientID: row["id"],
			Code:         asString(row["code"]),
			Name:         asString(row["name"]),
			Unit:         asString(row["unit"]),
			Stock:        asDecimal(row["stock"]),
			Price:        asDecimal(row["price"]),
		})
	}
	return ingredients, nil
}
