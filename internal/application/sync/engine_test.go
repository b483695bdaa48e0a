package sync_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appsync "github.com/dmorales/batch-records-api/internal/application/sync"
	"github.com/dmorales/batch-records-api/internal/domain"
	"github.com/dmorales/batch-records-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type catalogFake struct {
	nextID      int64
	products    map[string]*entity.Product // por code
	materials   map[int64]*entity.RawMaterial
	formulation map[int64][]entity.FormulationItem // por product id
}

func newCatalogFake() *catalogFake {
	return &catalogFake{
		nextID:      1,
		products:    map[string]*entity.Product{},
		materials:   map[int64]*entity.RawMaterial{},
		formulation: map[int64][]entity.FormulationItem{},
	}
}

func (c *catalogFake) id() int64 {
	id := c.nextID
	c.nextID++
	return id
}

type fakeProductRepo struct {
	c *catalogFake
	// failCreateCode hace fallar Create para ese código (inyección de
	// errores parciales).
	failCreateCode string
}

func (r *fakeProductRepo) Create(_ context.Context, p *entity.Product) (int64, error) {
	if r.failCreateCode != "" && p.Code == r.failCreateCode {
		return 0, errors.New("disco lleno")
	}
	if _, dup := r.c.products[p.Code]; dup {
		return 0, domain.ErrDuplicate
	}
	cp := *p
	cp.ID = r.c.id()
	r.c.products[p.Code] = &cp
	return cp.ID, nil
}

func (r *fakeProductRepo) GetByID(_ context.Context, id int64) (*entity.Product, error) {
	for _, p := range r.c.products {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeProductRepo) GetByCode(_ context.Context, code string) (*entity.Product, error) {
	p, ok := r.c.products[code]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) Update(_ context.Context, p *entity.Product) error {
	stored, ok := r.c.products[p.Code]
	if !ok {
		return domain.ErrNotFound
	}
	*stored = *p
	return nil
}

func (r *fakeProductRepo) ListActive(context.Context) ([]*entity.Product, error) { return nil, nil }

type fakeFormulationRepo struct{ c *catalogFake }

func (r *fakeFormulationRepo) ListByProduct(_ context.Context, productID int64) ([]entity.FormulationItem, error) {
	return r.c.formulation[productID], nil
}

func (r *fakeFormulationRepo) DeleteByProduct(_ context.Context, productID int64) error {
	delete(r.c.formulation, productID)
	return nil
}

func (r *fakeFormulationRepo) Insert(_ context.Context, item *entity.FormulationItem) error {
	r.c.formulation[item.ProductID] = append(r.c.formulation[item.ProductID], *item)
	return nil
}

type fakeRawMaterialRepo struct{ c *catalogFake }

func (r *fakeRawMaterialRepo) Create(_ context.Context, m *entity.RawMaterial) (int64, error) {
	cp := *m
	cp.ID = r.c.id()
	r.c.materials[cp.ID] = &cp
	return cp.ID, nil
}

func (r *fakeRawMaterialRepo) GetByID(_ context.Context, id int64) (*entity.RawMaterial, error) {
	m, ok := r.c.materials[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return m, nil
}

func (r *fakeRawMaterialRepo) GetByCode(_ context.Context, code string) (*entity.RawMaterial, error) {
	for _, m := range r.c.materials {
		if m.Code == code {
			cp := *m
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeRawMaterialRepo) GetByName(_ context.Context, name string) (*entity.RawMaterial, error) {
	for _, m := range r.c.materials {
		if m.Name == name {
			cp := *m
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeRawMaterialRepo) Update(_ context.Context, m *entity.RawMaterial) error {
	stored, ok := r.c.materials[m.ID]
	if !ok {
		return domain.ErrNotFound
	}
	*stored = *m
	return nil
}

func (r *fakeRawMaterialRepo) ListActive(context.Context) ([]*entity.RawMaterial, error) {
	return nil, nil
}
func (r *fakeRawMaterialRepo) ListLowStock(context.Context) ([]*entity.RawMaterial, error) {
	return nil, nil
}
func (r *fakeRawMaterialRepo) DecrementStock(context.Context, int64, decimal.Decimal) error {
	return nil
}

// fakeSource fuente externa configurable.
type fakeSource struct {
	connectErr     error
	products       []appsync.ExternalProduct
	ingredients    map[string][]appsync.ExternalIngredient // por id externo (Sprintf %v)
	allIngredients []appsync.ExternalIngredient
	hasFormulation bool
	disconnected   bool
}

func (s *fakeSource) Connect(context.Context) error { return s.connectErr }
func (s *fakeSource) Disconnect()                   { s.disconnected = true }
func (s *fakeSource) HasFormulation() bool          { return s.hasFormulation }

func (s *fakeSource) FetchProducts(context.Context) ([]appsync.ExternalProduct, error) {
	return s.products, nil
}

func (s *fakeSource) FetchProductIngredients(_ context.Context, externalProductID any) ([]appsync.ExternalIngredient, error) {
	return s.ingredients[asKey(externalProductID)], nil
}

func (s *fakeSource) FetchAllIngredients(context.Context) ([]appsync.ExternalIngredient, error) {
	return s.allIngredients, nil
}

func asKey(v any) string {
	if sv, ok := v.(string); ok {
		return sv
	}
	return ""
}

func newEngine(c *catalogFake) *appsync.Engine {
	return appsync.NewEngine(
		&fakeProductRepo{c: c},
		&fakeFormulationRepo{c: c},
		&fakeRawMaterialRepo{c: c},
		zerolog.Nop(),
	)
}

// ──────────────────────────────────────────────────────────────────────────────
// SyncProducts
// ──────────────────────────────────────────────────────────────────────────────

func TestSyncProducts_ImportaYEsIdempotente(t *testing.T) {
	c := newCatalogFake()
	src := &fakeSource{
		products: []appsync.ExternalProduct{
			{ID: "p1", Code: "CR-100", Name: "Crema Base", Unit: "UNIDADES"},
			{ID: "p2", Code: "SH-200", Name: "Shampoo Neutro", Unit: ""},
		},
	}

	res := newEngine(c).SyncProducts(context.Background(), src, 1)

	assert.True(t, res.Success)
	assert.Equal(t, 2, res.ProductsImported)
	assert.Empty(t, res.Errors)
	assert.True(t, src.disconnected, "la fuente debe cerrarse al terminar")

	require.Contains(t, c.products, "SH-200")
	assert.Equal(t, "UNIDADES", c.products["SH-200"].Unit,
		"unidad vacía cae al valor por defecto")

	// Segunda corrida: mismos códigos, nada nuevo que importar.
	src.products[0].Name = "Crema Base Renombrada"
	res = newEngine(c).SyncProducts(context.Background(), src, 1)

	assert.True(t, res.Success)
	assert.Equal(t, 0, res.ProductsImported, "la segunda corrida solo actualiza")
	assert.Equal(t, "Crema Base Renombrada", c.products["CR-100"].Name,
		"el upsert debe refrescar los campos mutables")
}

func TestSyncProducts_SobrescribePresentacionLocal(t *testing.T) {
	c := newCatalogFake()
	c.products["CR-100"] = &entity.Product{
		ID:           c.id(),
		Code:         "CR-100",
		Name:         "Crema Base",
		Presentation: "850 ML",
		Unit:         "UNIDADES",
		IsActive:     true,
	}
	src := &fakeSource{products: []appsync.ExternalProduct{
		{ID: "p1", Code: "CR-100", Name: "Crema Base"},
	}}

	res := newEngine(c).SyncProducts(context.Background(), src, 1)

	assert.True(t, res.Success)
	assert.Empty(t, c.products["CR-100"].Presentation,
		"la fuente no trae presentación; se sobrescribe como el resto de campos mutables")
}

func TestSyncProducts_FormulacionConCodigoSintetizado(t *testing.T) {
	c := newCatalogFake()
	src := &fakeSource{
		hasFormulation: true,
		products: []appsync.ExternalProduct{
			{ID: "p1", Code: "CR-100", Name: "Crema Base"},
		},
		ingredients: map[string][]appsync.ExternalIngredient{
			"p1": {
				{IngredientID: "77", Name: "Ácido Esteárico", Unit: "KG", Percentage: decimal.NewFromInt(10)},
				{IngredientID: "78", Name: "Glicerina", Unit: "", Percentage: decimal.NewFromInt(90)},
			},
		},
	}

	res := newEngine(c).SyncProducts(context.Background(), src, 1)

	require.True(t, res.Success, "errores: %v", res.Errors)
	assert.Equal(t, 2, res.IngredientsImported)

	productID := c.products["CR-100"].ID
	items := c.formulation[productID]
	require.Len(t, items, 2)
	assert.Equal(t, 1, items[0].ItemNumber, "item_number secuencial desde 1")
	assert.Equal(t, 2, items[1].ItemNumber)

	// Materias primas nuevas: código EXT-<id externo>, unidad KG por defecto,
	// stock y precio en cero.
	m, err := (&fakeRawMaterialRepo{c: c}).GetByCode(context.Background(), "EXT-78")
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, "Glicerina", m.Name)
	assert.Equal(t, "KG", m.Unit)
	assert.True(t, m.Stock.IsZero())
}

func TestSyncProducts_ResuelvePorNombreAntesDeCrear(t *testing.T) {
	c := newCatalogFake()
	// Materia prima local preexistente con el mismo nombre.
	existingID, _ := (&fakeRawMaterialRepo{c: c}).Create(context.Background(), &entity.RawMaterial{
		Code: "MP-001", Name: "Glicerina", Unit: "KG",
	})

	src := &fakeSource{
		hasFormulation: true,
		products:       []appsync.ExternalProduct{{ID: "p1", Code: "CR-100", Name: "Crema Base"}},
		ingredients: map[string][]appsync.ExternalIngredient{
			"p1": {{IngredientID: "900", Name: "Glicerina", Percentage: decimal.NewFromInt(100)}},
		},
	}

	res := newEngine(c).SyncProducts(context.Background(), src, 1)
	require.True(t, res.Success)

	items := c.formulation[c.products["CR-100"].ID]
	require.Len(t, items, 1)
	assert.Equal(t, existingID, items[0].RawMaterialID,
		"el nombre exacto gana sobre el código sintetizado")
	assert.Len(t, c.materials, 1, "no debe crearse una materia prima duplicada")
}

func TestSyncProducts_ReemplazaFormulacionCompleta(t *testing.T) {
	c := newCatalogFake()
	src := &fakeSource{
		hasFormulation: true,
		products:       []appsync.ExternalProduct{{ID: "p1", Code: "CR-100", Name: "Crema Base"}},
		ingredients: map[string][]appsync.ExternalIngredient{
			"p1": {
				{IngredientID: "77", Name: "Componente A", Percentage: decimal.NewFromInt(40)},
				{IngredientID: "78", Name: "Componente B", Percentage: decimal.NewFromInt(60)},
			},
		},
	}
	engine := newEngine(c)
	require.True(t, engine.SyncProducts(context.Background(), src, 1).Success)

	// La fuente ahora trae una receta distinta de un solo renglón.
	src.ingredients["p1"] = []appsync.ExternalIngredient{
		{IngredientID: "79", Name: "Componente C", Percentage: decimal.NewFromInt(100)},
	}
	require.True(t, engine.SyncProducts(context.Background(), src, 1).Success)

	items := c.formulation[c.products["CR-100"].ID]
	require.Len(t, items, 1, "la formulación anterior debe reemplazarse completa")
	assert.Equal(t, 1, items[0].ItemNumber)
}

func TestSyncProducts_ConexionFallida(t *testing.T) {
	c := newCatalogFake()
	src := &fakeSource{connectErr: errors.New("timeout de conexión")}

	res := newEngine(c).SyncProducts(context.Background(), src, 1)

	assert.False(t, res.Success)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, "timeout de conexión", res.Errors[0].General)
	assert.Empty(t, c.products)
}

func TestSyncProducts_ErrorParcialAcumulaYSigue(t *testing.T) {
	c := newCatalogFake()
	src := &fakeSource{
		products: []appsync.ExternalProduct{
			{ID: "p1", Code: "CR-100", Name: "Crema Base"},
			{ID: "p2", Code: "SH-200", Name: "Shampoo Neutro"},
			{ID: "p3", Code: "JB-300", Name: "Jabón Líquido"},
		},
	}

	engine := appsync.NewEngine(
		&fakeProductRepo{c: c, failCreateCode: "SH-200"},
		&fakeFormulationRepo{c: c},
		&fakeRawMaterialRepo{c: c},
		zerolog.Nop(),
	)
	res := engine.SyncProducts(context.Background(), src, 1)

	assert.False(t, res.Success, "cualquier error por producto marca la corrida como fallida")
	require.Len(t, res.Errors, 1)
	assert.Equal(t, "Shampoo Neutro", res.Errors[0].Product)
	assert.Equal(t, 2, res.ProductsImported, "el fallo de un producto no detiene a los demás")
	assert.Contains(t, c.products, "CR-100")
	assert.Contains(t, c.products, "JB-300")
}

// ──────────────────────────────────────────────────────────────────────────────
// SyncIngredients
// ──────────────────────────────────────────────────────────────────────────────

func TestSyncIngredients_UpsertPorCodigo(t *testing.T) {
	c := newCatalogFake()
	repo := &fakeRawMaterialRepo{c: c}
	_, err := repo.Create(context.Background(), &entity.RawMaterial{
		Code: "MP-001", Name: "Glicerina vieja", Unit: "KG",
		Stock: decimal.NewFromInt(10), UnitPrice: decimal.NewFromInt(5),
	})
	require.NoError(t, err)

	src := &fakeSource{
		allIngredients: []appsync.ExternalIngredient{
			{Code: "MP-001", Name: "Glicerina USP", Unit: "KG",
				Stock: decimal.NewFromInt(250), Price: decimal.RequireFromString("7.80")},
			{Code: "MP-002", Name: "Ácido Esteárico", Unit: "",
				Stock: decimal.NewFromInt(90), Price: decimal.NewFromInt(3)},
		},
	}

	res := newEngine(c).SyncIngredients(context.Background(), src, 1)

	assert.True(t, res.Success)
	assert.Equal(t, 1, res.Imported)
	assert.Equal(t, 1, res.Updated)
	assert.True(t, src.disconnected)

	updated, err := repo.GetByCode(context.Background(), "MP-001")
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "Glicerina USP", updated.Name)
	assert.True(t, decimal.NewFromInt(250).Equal(updated.Stock), "el stock externo sobrescribe al local")
	assert.True(t, decimal.RequireFromString("7.80").Equal(updated.UnitPrice))

	created, err := repo.GetByCode(context.Background(), "MP-002")
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, "KG", created.Unit, "unidad vacía cae a KG")
}
