// Package sync implementa la importación unidireccional de productos e
// ingredientes desde bases de datos externas de proveedores hacia el
// almacén local.
//
// El motor es una librería: no se expone por HTTP. El resultado es de
// éxito parcial por diseño: el fallo de un producto o ingrediente se
// acumula en Errors y no aborta el resto del lote; solo un fallo
// general (p. ej. no conectar) detiene todo.
package sync

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/dmorales/batch-records-api/internal/domain/entity"
	"github.com/dmorales/batch-records-api/internal/domain/repository"
)

// SyncError error acumulado con contexto identificador del elemento.
type SyncError struct {
	Product    string `json:"product,omitempty"`
	Ingredient string `json:"ingredient,omitempty"`
	General    string `json:"general,omitempty"`
	Error      string `json:"error,omitempty"`
}

// SyncDetail acción tomada por producto.
type SyncDetail struct {
	Action  string `json:"action"` // created | updated
	Product string `json:"product"`
	Code    string `json:"code"`
}

// ProductSyncResult resultado de SyncProducts.
type ProductSyncResult struct {
	Success             bool         `json:"success"`
	ProductsImported    int          `json:"productsImported"`
	IngredientsImported int          `json:"ingredientsImported"`
	Errors              []SyncError  `json:"errors"`
	Details             []SyncDetail `json:"details"`
}

// IngredientSyncResult resultado de SyncIngredients.
type IngredientSyncResult struct {
	Success  bool        `json:"success"`
	Imported int         `json:"imported"`
	Updated  int         `json:"updated"`
	Errors   []SyncError `json:"errors"`
}

// Engine motor de sincronización sobre los repositorios locales.
type Engine struct {
	productRepo  repository.ProductRepository
	formulaRepo  repository.FormulationRepository
	materialRepo repository.RawMaterialRepository
	log          zerolog.Logger
}

// NewEngine construye el motor.
func NewEngine(
	productRepo repository.ProductRepository,
	formulaRepo repository.FormulationRepository,
	materialRepo repository.RawMaterialRepository,
	log zerolog.Logger,
) *Engine {
	return &Engine{
		productRepo:  productRepo,
		formulaRepo:  formulaRepo,
		materialRepo: materialRepo,
		log:          log,
	}
}

// SyncProducts importa productos (y su formulación, si la fuente la
// trae) desde la base externa. Clave de correspondencia: code. Un
// producto existente actualiza sus campos mutables; uno nuevo se
// inserta y su id se usa de inmediato para la formulación.
func (e *Engine) SyncProducts(ctx context.Context, src ExternalSource, userID int64) *ProductSyncResult {
	res := &ProductSyncResult{Errors: []SyncError{}, Details: []SyncDetail{}}

	if err := src.Connect(ctx); err != nil {
		res.Errors = append(res.Errors, SyncError{General: err.Error()})
		e.log.Error().Err(err).Msg("sync: conexión a fuente externa")
		return res
	}
	defer src.Disconnect()

	products, err := src.FetchProducts(ctx)
	if err != nil {
		res.Errors = append(res.Errors, SyncError{General: err.Error()})
		e.log.Error().Err(err).Msg("sync: leer productos externos")
		return res
	}

	e.log.Info().Int("count", len(products)).Msg("sync: productos encontrados en fuente externa")

	for _, ext := range products {
		if err := e.syncOneProduct(ctx, src, ext, userID, res); err != nil {
			res.Errors = append(res.Errors, SyncError{Product: ext.Name, Error: err.Error()})
			e.log.Error().Err(err).Str("product", ext.Name).Msg("sync: procesar producto")
		}
	}

	res.Success = len(res.Errors) == 0
	return res
}

func (e *Engine) syncOneProduct(ctx context.Context, src ExternalSource, ext ExternalProduct, userID int64, res *ProductSyncResult) error {
	existing, err := e.productRepo.GetByCode(ctx, ext.Code)
	if err != nil {
		return err
	}

	var productID int64
	if existing != nil {
		existing.Name = ext.Name
		existing.Presentation = ext.Presentation
		existing.Description = ext.Description
		existing.Unit = defaultString(ext.Unit, "UNIDADES")
		if err := e.productRepo.Update(ctx, existing); err != nil {
			return err
		}
		productID = existing.ID
		res.Details = append(res.Details, SyncDetail{Action: "updated", Product: ext.Name, Code: ext.Code})
	} else {
		productID, err = e.productRepo.Create(ctx, &entity.Product{
			Code:         ext.Code,
			Name:         ext.Name,
			Presentation: ext.Presentation,
			Description:  ext.Description,
			Unit:         defaultString(ext.Unit, "UNIDADES"),
			IsActive:     true,
			CreatedBy:    userID,
		})
		if err != nil {
			return err
		}
		res.ProductsImported++
		res.Details = append(res.Details, SyncDetail{Action: "created", Product: ext.Name, Code: ext.Code})
	}

	if !src.HasFormulation() {
		return nil
	}
	count, err := e.syncProductFormulation(ctx, src, ext.ID, productID, userID)
	if err != nil {
		return err
	}
	res.IngredientsImported += count
	return nil
}

// syncProductFormulation reemplaza la formulación completa del producto
// local: borra los renglones existentes e inserta uno por cada fila
// externa, con item_number secuencial 1-based en el orden en que la
// fuente devolvió las filas (no se reordena).
func (e *Engine) syncProductFormulation(ctx context.Context, src ExternalSource, externalProductID any, localProductID, userID int64) (int, error) {
	rows, err := src.FetchProductIngredients(ctx, externalProductID)
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}

	if err := e.formulaRepo.DeleteByProduct(ctx, localProductID); err != nil {
		return 0, err
	}

	count := 0
	for i, ing := range rows {
		materialID, err := e.getOrCreateRawMaterial(ctx, ing, userID)
		if err != nil {
			return count, err
		}
		if err := e.formulaRepo.Insert(ctx, &entity.FormulationItem{
			ProductID:     localProductID,
			RawMaterialID: materialID,
			ItemNumber:    i + 1,
			Percentage:    ing.Percentage,
		}); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

// getOrCreateRawMaterial resolución en tres pasos: (1) nombre exacto,
// (2) código sintetizado EXT-<id externo>, (3) alta nueva con stock y
// precio en cero. El orden importa: dos fuentes distintas con el mismo
// nombre de material se funden en una sola materia prima local. Riesgo
// documentado, no se "corrige" con normalización.
func (e *Engine) getOrCreateRawMaterial(ctx context.Context, ing ExternalIngredient, userID int64) (int64, error) {
	material, err := e.materialRepo.GetByName(ctx, ing.Name)
	if err != nil {
		return 0, err
	}
	if material != nil {
		return material.ID, nil
	}

	code := fmt.Sprintf("EXT-%v", ing.IngredientID)
	material, err = e.materialRepo.GetByCode(ctx, code)
	if err != nil {
		return 0, err
	}
	if material != nil {
		return material.ID, nil
	}

	return e.materialRepo.Create(ctx, &entity.RawMaterial{
		Code:      code,
		Name:      ing.Name,
		Unit:      defaultString(ing.Unit, "KG"),
		IsActive:  true,
		CreatedBy: userID,
	})
}

// SyncIngredients importa solo materias primas. Correspondencia pura
// por código: si existe actualiza nombre/unidad/stock/precio, si no
// inserta.
func (e *Engine) SyncIngredients(ctx context.Context, src ExternalSource, userID int64) *IngredientSyncResult {
	res := &IngredientSyncResult{Errors: []SyncError{}}

	if err := src.Connect(ctx); err != nil {
		res.Errors = append(res.Errors, SyncError{General: err.Error()})
		e.log.Error().Err(err).Msg("sync: conexión a fuente externa")
		return res
	}
	defer src.Disconnect()

	ingredients, err := src.FetchAllIngredients(ctx)
	if err != nil {
		res.Errors = append(res.Errors, SyncError{General: err.Error()})
		return res
	}

	for _, ing := range ingredients {
		if err := e.syncOneIngredient(ctx, ing, userID, res); err != nil {
			res.Errors = append(res.Errors, SyncError{Ingredient: ing.Name, Error: err.Error()})
		}
	}

	res.Success = len(res.Errors) == 0
	return res
}

func (e *Engine) syncOneIngredient(ctx context.Context, ing ExternalIngredient, userID int64, res *IngredientSyncResult) error {
	existing, err := e.materialRepo.GetByCode(ctx, ing.Code)
	if err != nil {
		return err
	}
	if existing != nil {
		existing.Name = ing.Name
		existing.Unit = defaultString(ing.Unit, "KG")
		existing.Stock = ing.Stock
		existing.UnitPrice = ing.Price
		if err := e.materialRepo.Update(ctx, existing); err != nil {
			return err
		}
		res.Updated++
		return nil
	}

	if _, err := e.materialRepo.Create(ctx, &entity.RawMaterial{
		Code:      ing.Code,
		Name:      ing.Name,
		Unit:      defaultString(ing.Unit, "KG"),
		Stock:     ing.Stock,
		UnitPrice: ing.Price,
		IsActive:  true,
		CreatedBy: userID,
	}); err != nil {
		return err
	}
	res.Imported++
	return nil
}

func defaultString(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
