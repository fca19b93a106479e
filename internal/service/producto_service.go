package service

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/vibesind/vibes-gestion/internal/dto"
	"github.com/vibesind/vibes-gestion/internal/model"
	"github.com/vibesind/vibes-gestion/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// precioCacheTTL bounds staleness of the public price-check cache.
const precioCacheTTL = 5 * time.Minute

// GenerateVariantSKU derives the unique identifier of one talle/color
// variant: base + TALLE + COLOR, with talle and color trimmed, stripped of
// internal whitespace and upper-cased. Returns "" if any input is blank.
func GenerateVariantSKU(base, talle, color string) string {
	if strings.TrimSpace(base) == "" || strings.TrimSpace(talle) == "" || strings.TrimSpace(color) == "" {
		return ""
	}
	return strings.TrimSpace(base) + normalizeSKUPart(talle) + normalizeSKUPart(color)
}

// ExtractBaseSKU reverses GenerateVariantSKU: it strips the normalized
// talle+color suffix from fullSKU when present, else returns fullSKU as-is.
func ExtractBaseSKU(fullSKU, talle, color string) string {
	if fullSKU == "" || talle == "" || color == "" {
		return fullSKU
	}
	suffix := normalizeSKUPart(talle) + normalizeSKUPart(color)
	if strings.HasSuffix(fullSKU, suffix) {
		return fullSKU[:len(fullSKU)-len(suffix)]
	}
	return fullSKU
}

func normalizeSKUPart(s string) string {
	return strings.ToUpper(strings.Join(strings.Fields(s), ""))
}

// ProductoService owns the catalog: logical products edited as a unit of
// talle/color variant rows.
type ProductoService interface {
	Guardar(ctx context.Context, req dto.GuardarProductoRequest) (*dto.ProductoResponse, error)
	Actualizar(ctx context.Context, skuBase string, req dto.GuardarProductoRequest) (*dto.ProductoResponse, error)
	ObtenerPorSkuBase(ctx context.Context, skuBase string) (*dto.ProductoResponse, error)
	Listar(ctx context.Context, filter dto.ProductoFilter) (*dto.ProductoListResponse, error)
	EliminarVariante(ctx context.Context, id uuid.UUID) error
	EliminarPorSkuBase(ctx context.Context, skuBase string) error
	// ObtenerPrecio serves the public price check, Redis-cached by SKU.
	ObtenerPrecio(ctx context.Context, sku string) (*dto.PrecioResponse, error)
	ListarMovimientos(ctx context.Context, filter dto.MovimientoFilter) (*dto.MovimientoListResponse, error)
}

type productoService struct {
	repo          repository.ProductoRepository
	categoriaRepo repository.CategoriaRepository
	movRepo       repository.MovimientoStockRepository
	rdb           *redis.Client
}

func NewProductoService(repo repository.ProductoRepository, categoriaRepo repository.CategoriaRepository, movRepo repository.MovimientoStockRepository, rdb *redis.Client) ProductoService {
	return &productoService{repo: repo, categoriaRepo: categoriaRepo, movRepo: movRepo, rdb: rdb}
}

// validar enforces the save preconditions shared by create and update:
// nombre, sku base and categoria present, every variant with talle AND
// color, and no duplicate generated variant SKUs.
func (s *productoService) validar(req dto.GuardarProductoRequest) ([]string, error) {
	if strings.TrimSpace(req.Nombre) == "" {
		return nil, errors.New("El nombre es requerido")
	}
	if strings.TrimSpace(req.SkuBase) == "" {
		return nil, errors.New("El SKU es requerido")
	}
	if strings.TrimSpace(req.CategoriaID) == "" {
		return nil, errors.New("La categoría es requerida")
	}

	skus := make([]string, 0, len(req.Variantes))
	seen := make(map[string]bool, len(req.Variantes))
	for _, v := range req.Variantes {
		if strings.TrimSpace(v.Talle) == "" || strings.TrimSpace(v.Color) == "" {
			return nil, errors.New("Todas las variantes deben tener talle y color")
		}
		sku := GenerateVariantSKU(req.SkuBase, v.Talle, v.Color)
		if seen[sku] {
			return nil, errors.New("Hay combinaciones de talle y color duplicadas")
		}
		seen[sku] = true
		skus = append(skus, sku)
	}
	return skus, nil
}

func (s *productoService) Guardar(ctx context.Context, req dto.GuardarProductoRequest) (*dto.ProductoResponse, error) {
	skus, err := s.validar(req)
	if err != nil {
		return nil, err
	}
	categoriaID, err := uuid.Parse(req.CategoriaID)
	if err != nil {
		return nil, errors.New("categoria_id inválido")
	}
	if _, err := s.categoriaRepo.ObtenerPorID(ctx, categoriaID); err != nil {
		return nil, errors.New("categoría no encontrada")
	}

	skuBase := strings.TrimSpace(req.SkuBase)
	if existentes, err := s.repo.FindVariantes(ctx, skuBase); err == nil && len(existentes) > 0 {
		return nil, errors.New("Ya existe un producto con ese SKU")
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		for i, v := range req.Variantes {
			p := &model.Producto{
				Nombre:      strings.TrimSpace(req.Nombre),
				Descripcion: req.Descripcion,
				Precio:      req.Precio,
				Costo:       req.Costo,
				SKU:         skus[i],
				SkuBase:     skuBase,
				Talle:       strings.TrimSpace(v.Talle),
				Color:       strings.TrimSpace(v.Color),
				Stock:       v.Stock,
				StockMinimo: v.StockMinimo,
				CategoriaID: categoriaID,
			}
			if err := s.repo.CreateTx(tx, p); err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	s.invalidarCachePrecios(ctx, skus)
	return s.ObtenerPorSkuBase(ctx, skuBase)
}

// Actualizar reconciles the stored variant set against the request by
// (talle, color) key inside one transaction: matching rows are updated in
// place (preserving their identity and references from sale/quote items),
// missing ones are inserted, leftover ones deleted.
func (s *productoService) Actualizar(ctx context.Context, skuBase string, req dto.GuardarProductoRequest) (*dto.ProductoResponse, error) {
	skus, err := s.validar(req)
	if err != nil {
		return nil, err
	}
	categoriaID, err := uuid.Parse(req.CategoriaID)
	if err != nil {
		return nil, errors.New("categoria_id inválido")
	}

	existentes, err := s.repo.FindVariantes(ctx, skuBase)
	if err != nil {
		return nil, err
	}
	if len(existentes) == 0 {
		return nil, errors.New("producto no encontrado")
	}

	nuevoSkuBase := strings.TrimSpace(req.SkuBase)
	if nuevoSkuBase != skuBase {
		if otras, err := s.repo.FindVariantes(ctx, nuevoSkuBase); err == nil && len(otras) > 0 {
			return nil, errors.New("Ya existe un producto con ese SKU")
		}
	}

	porClave := make(map[string]*model.Producto, len(existentes))
	for i := range existentes {
		k := normalizeSKUPart(existentes[i].Talle) + "|" + normalizeSKUPart(existentes[i].Color)
		porClave[k] = &existentes[i]
	}

	viejos := make([]string, 0, len(existentes))
	for _, p := range existentes {
		viejos = append(viejos, p.SKU)
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		usadas := make(map[string]bool, len(req.Variantes))
		for i, v := range req.Variantes {
			k := normalizeSKUPart(v.Talle) + "|" + normalizeSKUPart(v.Color)
			usadas[k] = true

			if existente, ok := porClave[k]; ok {
				stockAntes := existente.Stock
				existente.Nombre = strings.TrimSpace(req.Nombre)
				existente.Descripcion = req.Descripcion
				existente.Precio = req.Precio
				existente.Costo = req.Costo
				existente.SKU = skus[i]
				existente.SkuBase = nuevoSkuBase
				existente.Talle = strings.TrimSpace(v.Talle)
				existente.Color = strings.TrimSpace(v.Color)
				existente.Stock = v.Stock
				existente.StockMinimo = v.StockMinimo
				existente.CategoriaID = categoriaID
				if err := s.repo.UpdateTx(tx, existente); err != nil {
					return err
				}
				if v.Stock != stockAntes {
					mov := &model.MovimientoStock{
						ProductoID:    existente.ID,
						Tipo:          model.MovimientoAjuste,
						Cantidad:      v.Stock - stockAntes,
						StockAnterior: stockAntes,
						StockNuevo:    v.Stock,
						Motivo:        "Ajuste manual",
					}
					if err := s.movRepo.CreateTx(tx, mov); err != nil {
						return err
					}
				}
				continue
			}

			nuevo := &model.Producto{
				Nombre:      strings.TrimSpace(req.Nombre),
				Descripcion: req.Descripcion,
				Precio:      req.Precio,
				Costo:       req.Costo,
				SKU:         skus[i],
				SkuBase:     nuevoSkuBase,
				Talle:       strings.TrimSpace(v.Talle),
				Color:       strings.TrimSpace(v.Color),
				Stock:       v.Stock,
				StockMinimo: v.StockMinimo,
				CategoriaID: categoriaID,
			}
			if err := s.repo.CreateTx(tx, nuevo); err != nil {
				return err
			}
		}

		// Variants dropped from the request are removed.
		for k, p := range porClave {
			if !usadas[k] {
				if err := s.repo.DeleteTx(tx, p.ID); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	s.invalidarCachePrecios(ctx, append(viejos, skus...))
	return s.ObtenerPorSkuBase(ctx, nuevoSkuBase)
}

func (s *productoService) ObtenerPorSkuBase(ctx context.Context, skuBase string) (*dto.ProductoResponse, error) {
	variantes, err := s.repo.FindVariantes(ctx, skuBase)
	if err != nil {
		return nil, err
	}
	if len(variantes) == 0 {
		return nil, errors.New("producto no encontrado")
	}
	resp := agruparVariantes(variantes)
	return &resp, nil
}

// Listar groups variant rows by sku_base so the caller sees logical
// products. Total counts variant rows, matching the page window.
func (s *productoService) Listar(ctx context.Context, filter dto.ProductoFilter) (*dto.ProductoListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	productos, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	porBase := make(map[string][]model.Producto)
	orden := make([]string, 0)
	for _, p := range productos {
		if _, ok := porBase[p.SkuBase]; !ok {
			orden = append(orden, p.SkuBase)
		}
		porBase[p.SkuBase] = append(porBase[p.SkuBase], p)
	}

	data := make([]dto.ProductoResponse, 0, len(orden))
	for _, base := range orden {
		data = append(data, agruparVariantes(porBase[base]))
	}

	return &dto.ProductoListResponse{
		Data:  data,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *productoService) EliminarVariante(ctx context.Context, id uuid.UUID) error {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return errors.New("producto no encontrado")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidarCachePrecios(ctx, []string{p.SKU})
	return nil
}

func (s *productoService) EliminarPorSkuBase(ctx context.Context, skuBase string) error {
	variantes, err := s.repo.FindVariantes(ctx, skuBase)
	if err != nil {
		return err
	}
	if len(variantes) == 0 {
		return errors.New("producto no encontrado")
	}
	skus := make([]string, 0, len(variantes))
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		for _, v := range variantes {
			skus = append(skus, v.SKU)
			if err := s.repo.DeleteTx(tx, v.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		return txErr
	}
	s.invalidarCachePrecios(ctx, skus)
	return nil
}

func (s *productoService) ObtenerPrecio(ctx context.Context, sku string) (*dto.PrecioResponse, error) {
	cacheKey := "precio:" + sku

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Bytes(); err == nil {
			var resp dto.PrecioResponse
			if json.Unmarshal(cached, &resp) == nil {
				return &resp, nil
			}
		}
	}

	p, err := s.repo.FindBySKU(ctx, sku)
	if err != nil {
		return nil, errors.New("producto no encontrado")
	}
	resp := &dto.PrecioResponse{
		SKU:    p.SKU,
		Nombre: p.Nombre,
		Talle:  p.Talle,
		Color:  p.Color,
		Precio: p.Precio,
		Stock:  p.Stock,
	}

	if s.rdb != nil {
		if data, err := json.Marshal(resp); err == nil {
			if err := s.rdb.Set(ctx, cacheKey, data, precioCacheTTL).Err(); err != nil {
				log.Warn().Err(err).Str("sku", sku).Msg("no se pudo cachear el precio")
			}
		}
	}
	return resp, nil
}

// invalidarCachePrecios drops cached price entries after a catalog write.
// Failures only log: the cache self-heals via TTL.
func (s *productoService) invalidarCachePrecios(ctx context.Context, skus []string) {
	if s.rdb == nil || len(skus) == 0 {
		return
	}
	keys := make([]string, 0, len(skus))
	for _, sku := range skus {
		keys = append(keys, "precio:"+sku)
	}
	if err := s.rdb.Del(ctx, keys...).Err(); err != nil {
		log.Warn().Err(err).Msg("no se pudo invalidar el cache de precios")
	}
}

func agruparVariantes(variantes []model.Producto) dto.ProductoResponse {
	sort.Slice(variantes, func(i, j int) bool {
		if variantes[i].Talle != variantes[j].Talle {
			return variantes[i].Talle < variantes[j].Talle
		}
		return variantes[i].Color < variantes[j].Color
	})

	first := variantes[0]
	resp := dto.ProductoResponse{
		Nombre:      first.Nombre,
		Descripcion: first.Descripcion,
		Precio:      first.Precio,
		Costo:       first.Costo,
		SkuBase:     first.SkuBase,
		CategoriaID: first.CategoriaID.String(),
	}
	if first.Categoria != nil {
		resp.Categoria = first.Categoria.Nombre
	}
	for _, v := range variantes {
		resp.Variantes = append(resp.Variantes, dto.VarianteResponse{
			ID:          v.ID.String(),
			SKU:         v.SKU,
			Talle:       v.Talle,
			Color:       v.Color,
			Stock:       v.Stock,
			StockMinimo: v.StockMinimo,
		})
	}
	return resp
}

// ListarMovimientos pages through the stock movement journal, optionally
// filtered by variant and movement type.
func (s *productoService) ListarMovimientos(ctx context.Context, filter dto.MovimientoFilter) (*dto.MovimientoListResponse, error) {
	repoFilter := repository.MovimientoStockFilter{
		Tipo:  filter.Tipo,
		Page:  filter.Page,
		Limit: filter.Limit,
	}
	if repoFilter.Page < 1 {
		repoFilter.Page = 1
	}
	if repoFilter.Limit < 1 {
		repoFilter.Limit = 50
	}
	if filter.ProductoID != "" {
		id, err := uuid.Parse(filter.ProductoID)
		if err != nil {
			return nil, errors.New("producto_id inválido")
		}
		repoFilter.ProductoID = &id
	}

	movimientos, total, err := s.movRepo.List(ctx, repoFilter)
	if err != nil {
		return nil, err
	}

	data := make([]dto.MovimientoResponse, 0, len(movimientos))
	for _, m := range movimientos {
		item := dto.MovimientoResponse{
			ID:            m.ID.String(),
			ProductoID:    m.ProductoID.String(),
			Tipo:          m.Tipo,
			Cantidad:      m.Cantidad,
			StockAnterior: m.StockAnterior,
			StockNuevo:    m.StockNuevo,
			Motivo:        m.Motivo,
			CreatedAt:     m.CreatedAt.Format(time.RFC3339),
		}
		if m.Producto != nil {
			item.Producto = m.Producto.Nombre
			item.SKU = m.Producto.SKU
		}
		if m.ReferenciaID != nil {
			ref := m.ReferenciaID.String()
			item.ReferenciaID = &ref
		}
		data = append(data, item)
	}
	return &dto.MovimientoListResponse{
		Data:  data,
		Total: total,
		Page:  repoFilter.Page,
		Limit: repoFilter.Limit,
	}, nil
}
