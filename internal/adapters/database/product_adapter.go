package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/lib/pq"

	"github.com/esenciapy/backend/internal/domain/entities"
	"github.com/esenciapy/backend/internal/domain/repositories"
	"github.com/esenciapy/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/esenciapy/backend/pkg/errors"
)

// ProductAdapter implements ProductRepository
type ProductAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

var productColumns = []interface{}{
	"products.id", "products.name", "products.sku", "products.brand_id",
	goqu.I("brands.name").As("brand_name"),
	"products.gender", "products.concentration", "products.intensity",
	"products.occasions", "products.climates", "products.events",
	"products.price", "products.attributes", "products.is_active",
	"products.created_at", "products.updated_at",
}

// NewProductAdapter creates a new product adapter
func NewProductAdapter(client *postgres.Client) repositories.ProductRepository {
	return &ProductAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// GetByID retrieves an active product by ID
func (a *ProductAdapter) GetByID(ctx context.Context, id string) (*entities.Product, error) {
	query, args, err := a.baseDataset().
		Where(goqu.Ex{"products.id": id, "products.is_active": true}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	product, err := a.scanProduct(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("product with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get product", err)
	}

	families, err := a.familyNames(ctx, id)
	if err != nil {
		return nil, err
	}
	product.FamilyNames = families

	return product, nil
}

// GetByIDs retrieves multiple products by their IDs
func (a *ProductAdapter) GetByIDs(ctx context.Context, ids []string) ([]*entities.Product, error) {
	if len(ids) == 0 {
		return []*entities.Product{}, nil
	}

	query, args, err := a.baseDataset().
		Where(goqu.Ex{"products.id": ids}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get products by ids", err)
	}
	defer rows.Close()

	return a.scanProducts(rows)
}

// Search retrieves products matching the filter plus the store-side total
func (a *ProductAdapter) Search(ctx context.Context, filter repositories.ProductFilter) ([]*entities.Product, int, error) {
	// An explicit empty ID list means "match nothing", not "no filter"
	if filter.ProductIDs != nil && len(filter.ProductIDs) == 0 {
		return []*entities.Product{}, 0, nil
	}

	where := a.buildWhere(filter)

	ds := a.baseDataset().Where(where...)
	switch filter.SortByPrice {
	case entities.SortAsc:
		ds = ds.Order(goqu.I("products.price").Asc())
	case entities.SortDesc:
		ds = ds.Order(goqu.I("products.price").Desc())
	default:
		ds = ds.Order(goqu.I("products.created_at").Desc())
	}

	if filter.Limit > 0 {
		ds = ds.Limit(uint(filter.Limit))
	}
	if filter.Offset > 0 {
		ds = ds.Offset(uint(filter.Offset))
	}

	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, 0, apperrors.NewInternalError("failed to build search query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, apperrors.NewInternalError("failed to search products", err)
	}
	defer rows.Close()

	products, err := a.scanProducts(rows)
	if err != nil {
		return nil, 0, err
	}

	total, err := a.count(ctx, where)
	if err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

func (a *ProductAdapter) baseDataset() *goqu.SelectDataset {
	return a.db.Select(productColumns...).
		From("products").
		LeftJoin(goqu.T("brands"), goqu.On(goqu.Ex{"brands.id": goqu.I("products.brand_id")}))
}

func (a *ProductAdapter) buildWhere(filter repositories.ProductFilter) []goqu.Expression {
	where := []goqu.Expression{}

	if filter.Text != "" {
		pattern := "%" + filter.Text + "%"
		where = append(where, goqu.Or(
			goqu.I("products.name").ILike(pattern),
			goqu.I("products.sku").ILike(pattern),
			goqu.I("brands.name").ILike(pattern),
		))
	}
	if filter.Gender != "" {
		where = append(where, goqu.Ex{"products.gender": filter.Gender})
	}
	if filter.Intensity != "" {
		where = append(where, goqu.Ex{"products.intensity": filter.Intensity})
	}
	if filter.Occasion != "" {
		where = append(where, goqu.L("? = ANY(products.occasions)", filter.Occasion))
	}
	if filter.Climate != "" {
		where = append(where, goqu.L("? = ANY(products.climates)", filter.Climate))
	}
	if filter.Event != "" {
		where = append(where, goqu.L("? = ANY(products.events)", filter.Event))
	}
	if filter.MinPrice != nil {
		where = append(where, goqu.I("products.price").Gte(*filter.MinPrice))
	}
	if filter.MaxPrice != nil {
		where = append(where, goqu.I("products.price").Lte(*filter.MaxPrice))
	}
	if len(filter.BrandIDs) > 0 {
		where = append(where, goqu.Ex{"products.brand_id": filter.BrandIDs})
	}
	if len(filter.ProductIDs) > 0 {
		where = append(where, goqu.Ex{"products.id": filter.ProductIDs})
	}
	if filter.IsActive != nil {
		where = append(where, goqu.Ex{"products.is_active": *filter.IsActive})
	}

	return where
}

func (a *ProductAdapter) count(ctx context.Context, where []goqu.Expression) (int, error) {
	query, args, err := a.db.Select(goqu.COUNT("*")).
		From("products").
		LeftJoin(goqu.T("brands"), goqu.On(goqu.Ex{"brands.id": goqu.I("products.brand_id")})).
		Where(where...).
		ToSQL()
	if err != nil {
		return 0, apperrors.NewInternalError("failed to build count query", err)
	}

	var total int
	if err := a.client.DB().QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, apperrors.NewInternalError("failed to count products", err)
	}
	return total, nil
}

func (a *ProductAdapter) familyNames(ctx context.Context, productID string) ([]string, error) {
	query, args, err := a.db.Select("scent_families.name").
		From("product_scent_families").
		Join(goqu.T("scent_families"), goqu.On(goqu.Ex{"scent_families.id": goqu.I("product_scent_families.family_id")})).
		Where(goqu.Ex{"product_scent_families.product_id": productID}).
		Order(goqu.I("scent_families.name").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build family names query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get product families", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, apperrors.NewInternalError("failed to scan family name", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating family names", err)
	}

	return names, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (a *ProductAdapter) scanProduct(row rowScanner) (*entities.Product, error) {
	product := &entities.Product{}
	var brandName sql.NullString
	var attributes []byte

	err := row.Scan(
		&product.ID,
		&product.Name,
		&product.SKU,
		&product.BrandID,
		&brandName,
		&product.Gender,
		&product.Concentration,
		&product.Intensity,
		pq.Array(&product.Occasions),
		pq.Array(&product.Climates),
		pq.Array(&product.Events),
		&product.Price,
		&attributes,
		&product.IsActive,
		&product.CreatedAt,
		&product.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	product.BrandName = brandName.String
	if len(attributes) > 0 {
		if err := json.Unmarshal(attributes, &product.Attributes); err != nil {
			return nil, fmt.Errorf("failed to decode product attributes: %w", err)
		}
	}

	return product, nil
}

func (a *ProductAdapter) scanProducts(rows *sql.Rows) ([]*entities.Product, error) {
	products := []*entities.Product{}
	for rows.Next() {
		product, err := a.scanProduct(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan product", err)
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating products", err)
	}
	return products, nil
}
