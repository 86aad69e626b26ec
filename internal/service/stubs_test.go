package service_test

// In-memory repository stubs. They mimic the storage semantics the services
// rely on: reads under lock return copies (like a DB row scan), writes mutate
// the stored record. With a nil *gorm.DB the services run their transaction
// bodies directly, so these stubs exercise the full business logic.

import (
	"context"
	"errors"
	"time"

	"github.com/Spartan-876/Acuamont-System-sub000/internal/dto"
	"github.com/Spartan-876/Acuamont-System-sub000/internal/model"
	"github.com/Spartan-876/Acuamont-System-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var errStubNotFound = errors.New("not found")

// ── Producto ──────────────────────────────────────────────────────────────────

type stubProductoRepo struct {
	productos map[uuid.UUID]*model.Producto
}

func newStubProductoRepo() *stubProductoRepo {
	return &stubProductoRepo{productos: make(map[uuid.UUID]*model.Producto)}
}

func (r *stubProductoRepo) add(p *model.Producto) { r.productos[p.ID] = p }

func (r *stubProductoRepo) Create(_ context.Context, p *model.Producto) error {
	r.productos[p.ID] = p
	return nil
}

func (r *stubProductoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Producto, error) {
	p, ok := r.productos[id]
	if !ok {
		return nil, errStubNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *stubProductoRepo) FindByBarcode(_ context.Context, barcode string) (*model.Producto, error) {
	for _, p := range r.productos {
		if p.CodigoBarras == barcode && p.Activo {
			cp := *p
			return &cp, nil
		}
	}
	return nil, errStubNotFound
}

func (r *stubProductoRepo) List(_ context.Context, _ dto.ProductoFilter) ([]model.Producto, int64, error) {
	out := make([]model.Producto, 0, len(r.productos))
	for _, p := range r.productos {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *stubProductoRepo) Update(_ context.Context, p *model.Producto) error {
	r.productos[p.ID] = p
	return nil
}

func (r *stubProductoRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	if p, ok := r.productos[id]; ok {
		p.Activo = false
	}
	return nil
}

func (r *stubProductoRepo) Reactivar(_ context.Context, id uuid.UUID) error {
	if p, ok := r.productos[id]; ok {
		p.Activo = true
	}
	return nil
}

func (r *stubProductoRepo) ListBajoStockSeguridad(_ context.Context) ([]model.Producto, error) {
	var out []model.Producto
	for _, p := range r.productos {
		if p.Activo && p.Stock <= p.StockSeguridad {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubProductoRepo) FindByIDForUpdateTx(_ *gorm.DB, id uuid.UUID) (*model.Producto, error) {
	p, ok := r.productos[id]
	if !ok {
		return nil, errStubNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *stubProductoRepo) UpdateStockTx(_ *gorm.DB, id uuid.UUID, delta int) error {
	p, ok := r.productos[id]
	if !ok {
		return errStubNotFound
	}
	p.Stock += delta
	return nil
}

func (r *stubProductoRepo) AjustarStock(_ context.Context, id uuid.UUID, delta int) error {
	return r.UpdateStockTx(nil, id, delta)
}

func (r *stubProductoRepo) DB() *gorm.DB { return nil }

var _ repository.ProductoRepository = (*stubProductoRepo)(nil)

// ── Venta ─────────────────────────────────────────────────────────────────────

type stubVentaRepo struct {
	ventas map[uuid.UUID]*model.Venta
	pagos  []model.Pago
}

func newStubVentaRepo() *stubVentaRepo {
	return &stubVentaRepo{ventas: make(map[uuid.UUID]*model.Venta)}
}

func (r *stubVentaRepo) CreateTx(_ *gorm.DB, v *model.Venta) error {
	cp := *v
	r.ventas[v.ID] = &cp
	return nil
}

func (r *stubVentaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Venta, error) {
	v, ok := r.ventas[id]
	if !ok {
		return nil, errStubNotFound
	}
	cp := *v
	return &cp, nil
}

func (r *stubVentaRepo) FindByIDForUpdateTx(_ *gorm.DB, id uuid.UUID) (*model.Venta, error) {
	v, ok := r.ventas[id]
	if !ok {
		return nil, errStubNotFound
	}
	cp := *v
	cp.Cuotas = make([]model.Cuota, len(v.Cuotas))
	copy(cp.Cuotas, v.Cuotas)
	return &cp, nil
}

func (r *stubVentaRepo) UpdateTx(_ *gorm.DB, v *model.Venta) error {
	stored, ok := r.ventas[v.ID]
	if !ok {
		return errStubNotFound
	}
	stored.Deuda = v.Deuda
	stored.Estado = v.Estado
	return nil
}

func (r *stubVentaRepo) findCuota(id uuid.UUID) (*model.Venta, *model.Cuota) {
	for _, v := range r.ventas {
		for i := range v.Cuotas {
			if v.Cuotas[i].ID == id {
				return v, &v.Cuotas[i]
			}
		}
	}
	return nil, nil
}

func (r *stubVentaRepo) FindCuotaByID(_ context.Context, id uuid.UUID) (*model.Cuota, error) {
	_, c := r.findCuota(id)
	if c == nil {
		return nil, errStubNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *stubVentaRepo) FindCuotaForUpdateTx(_ *gorm.DB, id uuid.UUID) (*model.Cuota, error) {
	_, c := r.findCuota(id)
	if c == nil {
		return nil, errStubNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *stubVentaRepo) UpdateCuotaTx(_ *gorm.DB, c *model.Cuota) error {
	_, stored := r.findCuota(c.ID)
	if stored == nil {
		return errStubNotFound
	}
	stored.Saldo = c.Saldo
	stored.Estado = c.Estado
	return nil
}

func (r *stubVentaRepo) CreatePagoTx(_ *gorm.DB, p *model.Pago) error {
	r.pagos = append(r.pagos, *p)
	return nil
}

func (r *stubVentaRepo) ListCuotas(_ context.Context, ventaID uuid.UUID) ([]model.Cuota, error) {
	v, ok := r.ventas[ventaID]
	if !ok {
		return nil, errStubNotFound
	}
	out := make([]model.Cuota, len(v.Cuotas))
	copy(out, v.Cuotas)
	return out, nil
}

func (r *stubVentaRepo) ListPagosByVenta(_ context.Context, ventaID uuid.UUID) ([]model.Pago, error) {
	v, ok := r.ventas[ventaID]
	if !ok {
		return nil, errStubNotFound
	}
	cuotaIDs := make(map[uuid.UUID]bool, len(v.Cuotas))
	for _, c := range v.Cuotas {
		cuotaIDs[c.ID] = true
	}
	var out []model.Pago
	for _, p := range r.pagos {
		if cuotaIDs[p.CuotaID] {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *stubVentaRepo) List(_ context.Context, _ dto.VentaFilter) ([]model.Venta, int64, error) {
	out := make([]model.Venta, 0, len(r.ventas))
	for _, v := range r.ventas {
		out = append(out, *v)
	}
	return out, int64(len(out)), nil
}

func (r *stubVentaRepo) TotalDesde(_ context.Context, desde time.Time) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, v := range r.ventas {
		if v.Estado != model.VentaAnulada && !v.Fecha.Before(desde) {
			total = total.Add(v.Total)
		}
	}
	return total, nil
}

func (r *stubVentaRepo) DeudaPendiente(_ context.Context) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, v := range r.ventas {
		if v.Estado != model.VentaAnulada {
			total = total.Add(v.Deuda)
		}
	}
	return total, nil
}

func (r *stubVentaRepo) DB() *gorm.DB { return nil }

var _ repository.VentaRepository = (*stubVentaRepo)(nil)

// ── Cliente ───────────────────────────────────────────────────────────────────

type stubClienteRepo struct {
	clientes map[uuid.UUID]*model.Cliente
}

func newStubClienteRepo() *stubClienteRepo {
	return &stubClienteRepo{clientes: make(map[uuid.UUID]*model.Cliente)}
}

func (r *stubClienteRepo) Create(_ context.Context, c *model.Cliente) error {
	r.clientes[c.ID] = c
	return nil
}

func (r *stubClienteRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Cliente, error) {
	c, ok := r.clientes[id]
	if !ok {
		return nil, errStubNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *stubClienteRepo) FindByDocumento(_ context.Context, documento string) (*model.Cliente, error) {
	for _, c := range r.clientes {
		if c.Documento == documento {
			cp := *c
			return &cp, nil
		}
	}
	return nil, errStubNotFound
}

func (r *stubClienteRepo) List(_ context.Context, _ string) ([]model.Cliente, error) {
	out := make([]model.Cliente, 0, len(r.clientes))
	for _, c := range r.clientes {
		out = append(out, *c)
	}
	return out, nil
}

func (r *stubClienteRepo) Update(_ context.Context, c *model.Cliente) error {
	r.clientes[c.ID] = c
	return nil
}

func (r *stubClienteRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	if c, ok := r.clientes[id]; ok {
		c.Activo = false
	}
	return nil
}

var _ repository.ClienteRepository = (*stubClienteRepo)(nil)

// ── Usuario ───────────────────────────────────────────────────────────────────

type stubUsuarioRepo struct {
	usuarios map[uuid.UUID]*model.Usuario
}

func newStubUsuarioRepo() *stubUsuarioRepo {
	return &stubUsuarioRepo{usuarios: make(map[uuid.UUID]*model.Usuario)}
}

func (r *stubUsuarioRepo) Create(_ context.Context, u *model.Usuario) error {
	r.usuarios[u.ID] = u
	return nil
}

func (r *stubUsuarioRepo) FindByUsername(_ context.Context, username string) (*model.Usuario, error) {
	for _, u := range r.usuarios {
		if u.Username == username && u.Activo {
			cp := *u
			return &cp, nil
		}
	}
	return nil, errStubNotFound
}

func (r *stubUsuarioRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Usuario, error) {
	u, ok := r.usuarios[id]
	if !ok {
		return nil, errStubNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *stubUsuarioRepo) List(_ context.Context, incluirInactivos bool) ([]model.Usuario, error) {
	var out []model.Usuario
	for _, u := range r.usuarios {
		if u.Activo || incluirInactivos {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *stubUsuarioRepo) Update(_ context.Context, u *model.Usuario) error {
	r.usuarios[u.ID] = u
	return nil
}

func (r *stubUsuarioRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	if u, ok := r.usuarios[id]; ok {
		u.Activo = false
	}
	return nil
}

func (r *stubUsuarioRepo) Reactivar(_ context.Context, id uuid.UUID) error {
	if u, ok := r.usuarios[id]; ok {
		u.Activo = true
	}
	return nil
}

var _ repository.UsuarioRepository = (*stubUsuarioRepo)(nil)

// ── MetodoPago ────────────────────────────────────────────────────────────────

type stubMetodoPagoRepo struct {
	metodos map[uuid.UUID]*model.MetodoPago
}

func newStubMetodoPagoRepo() *stubMetodoPagoRepo {
	return &stubMetodoPagoRepo{metodos: make(map[uuid.UUID]*model.MetodoPago)}
}

func (r *stubMetodoPagoRepo) add(m *model.MetodoPago) { r.metodos[m.ID] = m }

func (r *stubMetodoPagoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.MetodoPago, error) {
	m, ok := r.metodos[id]
	if !ok || !m.Activo {
		return nil, errStubNotFound
	}
	cp := *m
	return &cp, nil
}

func (r *stubMetodoPagoRepo) List(_ context.Context) ([]model.MetodoPago, error) {
	out := make([]model.MetodoPago, 0, len(r.metodos))
	for _, m := range r.metodos {
		out = append(out, *m)
	}
	return out, nil
}

var _ repository.MetodoPagoRepository = (*stubMetodoPagoRepo)(nil)

// ── Serie ─────────────────────────────────────────────────────────────────────

type stubSerieRepo struct {
	series map[uuid.UUID]*model.SerieComprobante
}

func newStubSerieRepo() *stubSerieRepo {
	return &stubSerieRepo{series: make(map[uuid.UUID]*model.SerieComprobante)}
}

func (r *stubSerieRepo) add(s *model.SerieComprobante) { r.series[s.ID] = s }

func (r *stubSerieRepo) FindByID(_ context.Context, id uuid.UUID) (*model.SerieComprobante, error) {
	s, ok := r.series[id]
	if !ok {
		return nil, errStubNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *stubSerieRepo) FindByIDForUpdateTx(_ *gorm.DB, id uuid.UUID) (*model.SerieComprobante, error) {
	s, ok := r.series[id]
	if !ok || !s.Activo {
		return nil, errStubNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *stubSerieRepo) AvanzarCorrelativoTx(_ *gorm.DB, id uuid.UUID, nuevo int64) error {
	s, ok := r.series[id]
	if !ok || s.NumeroActual >= nuevo {
		return gorm.ErrRecordNotFound
	}
	s.NumeroActual = nuevo
	return nil
}

func (r *stubSerieRepo) List(_ context.Context) ([]model.SerieComprobante, error) {
	out := make([]model.SerieComprobante, 0, len(r.series))
	for _, s := range r.series {
		out = append(out, *s)
	}
	return out, nil
}

var _ repository.SerieRepository = (*stubSerieRepo)(nil)

// ── MovimientoStock ───────────────────────────────────────────────────────────

type stubMovimientoRepo struct {
	movimientos []model.MovimientoStock
}

func (r *stubMovimientoRepo) Create(_ context.Context, m *model.MovimientoStock) error {
	r.movimientos = append(r.movimientos, *m)
	return nil
}

func (r *stubMovimientoRepo) CreateTx(_ *gorm.DB, m *model.MovimientoStock) error {
	r.movimientos = append(r.movimientos, *m)
	return nil
}

func (r *stubMovimientoRepo) List(_ context.Context, filter repository.MovimientoStockFilter) ([]model.MovimientoStock, int64, error) {
	var out []model.MovimientoStock
	for _, m := range r.movimientos {
		if filter.ProductoID != nil && m.ProductoID != *filter.ProductoID {
			continue
		}
		if filter.Tipo != "" && m.Tipo != filter.Tipo {
			continue
		}
		out = append(out, m)
	}
	return out, int64(len(out)), nil
}

func (r *stubMovimientoRepo) byTipo(tipo string) []model.MovimientoStock {
	var out []model.MovimientoStock
	for _, m := range r.movimientos {
		if m.Tipo == tipo {
			out = append(out, m)
		}
	}
	return out
}

var _ repository.MovimientoStockRepository = (*stubMovimientoRepo)(nil)

// ── HistorialPrecio ───────────────────────────────────────────────────────────

type stubHistorialRepo struct {
	registros []model.HistorialPrecio
}

func (r *stubHistorialRepo) Create(_ context.Context, h *model.HistorialPrecio) error {
	r.registros = append(r.registros, *h)
	return nil
}

func (r *stubHistorialRepo) ListByProducto(_ context.Context, productoID uuid.UUID, _, _ int) ([]model.HistorialPrecio, int64, error) {
	var out []model.HistorialPrecio
	for _, h := range r.registros {
		if h.ProductoID == productoID {
			out = append(out, h)
		}
	}
	return out, int64(len(out)), nil
}

var _ repository.HistorialPrecioRepository = (*stubHistorialRepo)(nil)
