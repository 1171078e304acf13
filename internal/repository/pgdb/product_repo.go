package pgdb

import (
	"context"
	"errors"

	"github.com/DRSN-tech/credit-simulator/internal/domain"
	"github.com/DRSN-tech/credit-simulator/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/credit-simulator/pkg/e"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
	"github.com/shopspring/decimal"
)

const productColumns = `
	co_produto, no_produto, pc_taxa_juros::text, nu_minimo_meses, nu_maximo_meses,
	vr_minimo::text, vr_maximo::text
`

// ProductRepo реализует Catalog Lookup поверх PostgreSQL.
type ProductRepo struct {
	pool *pgxpool.Pool
	conv converter.ProductConverter
}

func NewProductRepo(pool *pgxpool.Pool, conv converter.ProductConverter) *ProductRepo {
	return &ProductRepo{
		pool: pool,
		conv: conv,
	}
}

// Bounds возвращает минимальную и максимальную сумму по всему каталогу.
func (p *ProductRepo) Bounds(ctx context.Context) (*domain.CatalogBounds, error) {
	query := `SELECT MIN(vr_minimo)::text, MAX(vr_maximo)::text FROM produto`

	var model converter.BoundsModel
	if err := p.pool.QueryRow(ctx, query).Scan(&model.MinPrincipal, &model.MaxPrincipal); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToBounds(&model)
}

// FindByPrincipal ищет продукт, в диапазон сумм которого попадает principal (границы включительно).
func (p *ProductRepo) FindByPrincipal(ctx context.Context, principal decimal.Decimal) (*domain.Product, error) {
	query := `
		SELECT` + productColumns + `
		FROM produto
		WHERE vr_minimo <= $1::numeric AND vr_maximo >= $1::numeric
		ORDER BY co_produto
		LIMIT 1
	`

	return p.findOne(ctx, query, principal.String())
}

// FindUnbounded ищет продукт без максимальной суммы.
func (p *ProductRepo) FindUnbounded(ctx context.Context) (*domain.Product, error) {
	query := `
		SELECT` + productColumns + `
		FROM produto
		WHERE vr_maximo IS NULL
		ORDER BY co_produto
		LIMIT 1
	`

	return p.findOne(ctx, query)
}

// List возвращает весь каталог, упорядоченный по коду продукта.
func (p *ProductRepo) List(ctx context.Context) ([]domain.Product, error) {
	query := `SELECT` + productColumns + `FROM produto ORDER BY co_produto`

	rows, err := p.pool.Query(ctx, query)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	models := make([]converter.ProductModel, 0)
	for rows.Next() {
		var model converter.ProductModel
		if err := scanProduct(rows, &model); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
		models = append(models, model)
	}

	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToArrEntity(models)
}

func (p *ProductRepo) findOne(ctx context.Context, query string, args ...any) (*domain.Product, error) {
	var model converter.ProductModel
	if err := scanProduct(p.pool.QueryRow(ctx, query, args...), &model); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrProductNotFound)
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToEntity(&model)
}

func scanProduct(row pgx.Row, model *converter.ProductModel) error {
	return row.Scan(
		&model.ID, &model.Name, &model.Rate, &model.MinTerm, &model.MaxTerm,
		&model.MinPrincipal, &model.MaxPrincipal,
	)
}
