package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/Spartan-876/Acuamont-System-sub000/internal/dto"
	"github.com/Spartan-876/Acuamont-System-sub000/internal/model"
	"github.com/Spartan-876/Acuamont-System-sub000/internal/repository"
	"github.com/Spartan-876/Acuamont-System-sub000/internal/worker"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type VentaService interface {
	CrearVenta(ctx context.Context, usuarioID uuid.UUID, req dto.CrearVentaRequest) (*dto.VentaResponse, error)
	AnularVenta(ctx context.Context, id uuid.UUID) (*dto.VentaResponse, error)
	ReemplazarVenta(ctx context.Context, usuarioID, ventaID uuid.UUID, req dto.CrearVentaRequest) (*dto.VentaResponse, error)
	RegistrarPago(ctx context.Context, cuotaID uuid.UUID, req dto.RegistrarPagoRequest) (*dto.VentaResponse, error)
	ObtenerVenta(ctx context.Context, id uuid.UUID) (*dto.VentaResponse, error)
	ListarVentas(ctx context.Context, filter dto.VentaFilter) (*dto.VentaListResponse, error)
	ListarCuotas(ctx context.Context, ventaID uuid.UUID) ([]dto.CuotaResponse, error)
	ListarPagos(ctx context.Context, ventaID uuid.UUID) ([]dto.PagoResponse, error)
	Resumen(ctx context.Context) (*dto.ResumenVentasResponse, error)
}

type ventaService struct {
	repo        repository.VentaRepository
	productos   repository.ProductoRepository
	clientes    repository.ClienteRepository
	usuarios    repository.UsuarioRepository
	metodos     repository.MetodoPagoRepository
	series      repository.SerieRepository
	movimientos repository.MovimientoStockRepository
	dispatcher  *worker.Dispatcher
}

func NewVentaService(
	repo repository.VentaRepository,
	productos repository.ProductoRepository,
	clientes repository.ClienteRepository,
	usuarios repository.UsuarioRepository,
	metodos repository.MetodoPagoRepository,
	series repository.SerieRepository,
	movimientos repository.MovimientoStockRepository,
	dispatcher *worker.Dispatcher,
) VentaService {
	return &ventaService{
		repo:        repo,
		productos:   productos,
		clientes:    clientes,
		usuarios:    usuarios,
		metodos:     metodos,
		series:      series,
		movimientos: movimientos,
		dispatcher:  dispatcher,
	}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// ── CrearVenta ────────────────────────────────────────────────────────────────
// One ACID transaction:
//   1. Resolve cliente, usuario, metodo de pago
//   2. Lock producto rows (ordered by ID), check stock, descontar, snapshot price
//   3. Lock serie row, assign correlativo = numero_actual + 1
//   4. Branch on metodo.Tipo: contado settles, credito validates + builds cuotas
//   5. Persist the aggregate, THEN advance the serie counter
//   6. COMMIT; (async) dispatch comprobante job

func (s *ventaService) CrearVenta(ctx context.Context, usuarioID uuid.UUID, req dto.CrearVentaRequest) (*dto.VentaResponse, error) {
	var venta *model.Venta
	var cliente *model.Cliente

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		var err error
		venta, cliente, err = s.crearVentaTx(ctx, tx, usuarioID, req)
		return err
	})
	if txErr != nil {
		return nil, txErr
	}

	s.despacharComprobante(ctx, venta, cliente)
	return ventaToResponse(venta), nil
}

func (s *ventaService) crearVentaTx(ctx context.Context, tx *gorm.DB, usuarioID uuid.UUID, req dto.CrearVentaRequest) (*model.Venta, *model.Cliente, error) {
	clienteID, err := uuid.Parse(req.ClienteID)
	if err != nil {
		return nil, nil, fmt.Errorf("cliente_id inválido: %w", err)
	}
	serieID, err := uuid.Parse(req.SerieID)
	if err != nil {
		return nil, nil, fmt.Errorf("serie_id inválido: %w", err)
	}
	metodoID, err := uuid.Parse(req.MetodoPagoID)
	if err != nil {
		return nil, nil, fmt.Errorf("metodo_pago_id inválido: %w", err)
	}

	cliente, err := s.clientes.FindByID(ctx, clienteID)
	if err != nil {
		return nil, nil, &ErrNoEncontrado{Entidad: "cliente", ID: req.ClienteID}
	}
	if _, err := s.usuarios.FindByID(ctx, usuarioID); err != nil {
		return nil, nil, &ErrNoEncontrado{Entidad: "usuario", ID: usuarioID.String()}
	}
	metodo, err := s.metodos.FindByID(ctx, metodoID)
	if err != nil {
		return nil, nil, &ErrNoEncontrado{Entidad: "metodo de pago", ID: req.MetodoPagoID}
	}

	// Lock products in ID order so two concurrent sales sharing products
	// cannot deadlock, then apply lines in request order.
	type lineaPedida struct {
		productoID uuid.UUID
		cantidad   int
	}
	pedidas := make([]lineaPedida, 0, len(req.Detalles))
	for _, d := range req.Detalles {
		pid, err := uuid.Parse(d.ProductoID)
		if err != nil {
			return nil, nil, fmt.Errorf("producto_id inválido: %w", err)
		}
		pedidas = append(pedidas, lineaPedida{productoID: pid, cantidad: d.Cantidad})
	}

	orden := make([]lineaPedida, len(pedidas))
	copy(orden, pedidas)
	sort.Slice(orden, func(i, j int) bool {
		return orden[i].productoID.String() < orden[j].productoID.String()
	})

	bloqueados := make(map[uuid.UUID]*model.Producto, len(orden))
	for _, l := range orden {
		if _, ya := bloqueados[l.productoID]; ya {
			continue
		}
		p, err := s.productos.FindByIDForUpdateTx(tx, l.productoID)
		if err != nil {
			return nil, nil, &ErrNoEncontrado{Entidad: "producto", ID: l.productoID.String()}
		}
		if !p.Activo {
			return nil, nil, fmt.Errorf("producto %s está inactivo y no puede venderse", p.Nombre)
		}
		bloqueados[l.productoID] = p
	}

	// Stock check against the accumulated quantity per product, so repeated
	// lines of the same product cannot slip past a per-line check.
	solicitado := make(map[uuid.UUID]int, len(pedidas))
	for _, l := range pedidas {
		solicitado[l.productoID] += l.cantidad
	}
	for pid, cant := range solicitado {
		p := bloqueados[pid]
		if p.Stock < cant {
			return nil, nil, &ErrStockInsuficiente{
				ProductoID: pid,
				Nombre:     p.Nombre,
				Disponible: p.Stock,
				Solicitado: cant,
			}
		}
	}

	venta := &model.Venta{
		ID:           uuid.New(),
		SerieID:      serieID,
		ClienteID:    clienteID,
		UsuarioID:    usuarioID,
		MetodoPagoID: metodoID,
		Fecha:        time.Now(),
		MetodoPago:   metodo,
	}

	total := decimal.Zero
	for _, l := range pedidas {
		p := bloqueados[l.productoID]
		subtotal := p.PrecioVenta.Mul(decimal.NewFromInt(int64(l.cantidad)))
		total = total.Add(subtotal)
		venta.Detalles = append(venta.Detalles, model.DetalleVenta{
			ID:             uuid.New(),
			VentaID:        venta.ID,
			ProductoID:     l.productoID,
			Cantidad:       l.cantidad,
			PrecioUnitario: p.PrecioVenta,
			Subtotal:       subtotal,
		})
	}
	venta.Total = total.Round(2)

	// Serie lock comes after product locks; every operation takes locks in the
	// same order (productos → serie → venta).
	serie, err := s.series.FindByIDForUpdateTx(tx, serieID)
	if err != nil {
		return nil, nil, &ErrNoEncontrado{Entidad: "serie", ID: req.SerieID}
	}
	venta.Correlativo = serie.NumeroActual + 1
	venta.Serie = serie

	switch metodo.Tipo {
	case model.MetodoCredito:
		cuotas, deuda, err := s.construirPlanCuotas(venta, req)
		if err != nil {
			return nil, nil, err
		}
		venta.Cuotas = cuotas
		venta.Deuda = deuda
		venta.Estado = model.VentaPendiente
	default:
		// Contado and any other method settle immediately; deuda stays zero.
		venta.Deuda = decimal.Zero
		venta.Estado = model.VentaPagada
	}

	// All validation passed: apply stock decrements and persist.
	for pid, cant := range solicitado {
		p := bloqueados[pid]
		if err := s.productos.UpdateStockTx(tx, pid, -cant); err != nil {
			return nil, nil, fmt.Errorf("error descontando stock de %s: %w", p.Nombre, err)
		}
		ref := venta.ID
		mov := &model.MovimientoStock{
			ProductoID:    pid,
			Tipo:          "venta",
			Cantidad:      -cant,
			StockAnterior: p.Stock,
			StockNuevo:    p.Stock - cant,
			Motivo:        fmt.Sprintf("Venta %s-%d", serie.Serie, venta.Correlativo),
			ReferenciaID:  &ref,
		}
		if err := s.movimientos.CreateTx(tx, mov); err != nil {
			return nil, nil, err
		}
	}

	if err := s.repo.CreateTx(tx, venta); err != nil {
		return nil, nil, err
	}

	// The counter only advances once the venta row exists; its correlativo is
	// consumed even if the venta is anulada later.
	if err := s.series.AvanzarCorrelativoTx(tx, serieID, venta.Correlativo); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, &ErrConflictoConcurrencia{Recurso: "serie", ID: serieID}
		}
		return nil, nil, err
	}

	// Enrich lines for the response without another round trip.
	for i := range venta.Detalles {
		if p, ok := bloqueados[venta.Detalles[i].ProductoID]; ok {
			venta.Detalles[i].Producto = p
		}
	}
	return venta, cliente, nil
}

// construirPlanCuotas validates the credit consistency rule and builds the
// installment rows. Invariant: total == pago inicial + Σ cuotas at 2 decimals.
func (s *ventaService) construirPlanCuotas(venta *model.Venta, req dto.CrearVentaRequest) ([]model.Cuota, decimal.Decimal, error) {
	if len(req.Cuotas) == 0 {
		return nil, decimal.Zero, &ErrPlanCuotasVacio{}
	}
	if req.PagoInicial.IsNegative() {
		return nil, decimal.Zero, errors.New("el pago inicial no puede ser negativo")
	}

	planTotal := req.PagoInicial
	for _, c := range req.Cuotas {
		if !c.Monto.IsPositive() {
			return nil, decimal.Zero, errors.New("el monto de cada cuota debe ser mayor a cero")
		}
		planTotal = planTotal.Add(c.Monto)
	}
	if !venta.Total.Round(2).Equal(planTotal.Round(2)) {
		return nil, decimal.Zero, &ErrPlanCuotasInconsistente{
			Total:     venta.Total,
			PlanTotal: planTotal,
		}
	}

	cuotas := make([]model.Cuota, 0, len(req.Cuotas))
	for i, c := range req.Cuotas {
		vence, err := time.Parse("2006-01-02", c.FechaVencimiento)
		if err != nil {
			return nil, decimal.Zero, fmt.Errorf("fecha_vencimiento inválida en cuota %d: %w", i+1, err)
		}
		cuotas = append(cuotas, model.Cuota{
			ID:               uuid.New(),
			VentaID:          venta.ID,
			Numero:           i + 1,
			Monto:            c.Monto,
			Saldo:            c.Monto,
			FechaVencimiento: vence,
			Estado:           model.CuotaPendiente,
		})
	}

	// Deuda derives from total and pago inicial, not from the installment sum
	// (the consistency rule already proved both equal).
	return cuotas, venta.Total.Sub(req.PagoInicial), nil
}

// ── AnularVenta ───────────────────────────────────────────────────────────────
// Restores stock for every line, voids cuotas (saldo forfeited, not collected)
// and marks the venta anulada. Total, correlativo and pagos stay untouched:
// anulación never rewrites history.

func (s *ventaService) AnularVenta(ctx context.Context, id uuid.UUID) (*dto.VentaResponse, error) {
	var venta *model.Venta
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		var err error
		venta, err = s.anularVentaTx(ctx, tx, id)
		return err
	})
	if txErr != nil {
		return nil, txErr
	}
	return ventaToResponse(venta), nil
}

func (s *ventaService) anularVentaTx(_ context.Context, tx *gorm.DB, id uuid.UUID) (*model.Venta, error) {
	venta, err := s.repo.FindByIDForUpdateTx(tx, id)
	if err != nil {
		return nil, &ErrNoEncontrado{Entidad: "venta", ID: id.String()}
	}
	if venta.Estado == model.VentaAnulada {
		return nil, &ErrVentaYaAnulada{VentaID: id}
	}

	// La restauración alcanza también productos ya retirados del catálogo:
	// desactivar un producto nunca puede perder el stock de una anulación.
	for _, det := range venta.Detalles {
		p, err := s.productos.FindByIDForUpdateTx(tx, det.ProductoID)
		if err != nil {
			return nil, &ErrNoEncontrado{Entidad: "producto", ID: det.ProductoID.String()}
		}

		if err := s.productos.UpdateStockTx(tx, det.ProductoID, det.Cantidad); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, &ErrConflictoConcurrencia{Recurso: "producto", ID: det.ProductoID}
			}
			return nil, err
		}

		ref := venta.ID
		mov := &model.MovimientoStock{
			ProductoID:    det.ProductoID,
			Tipo:          "anulacion",
			Cantidad:      det.Cantidad,
			StockAnterior: p.Stock,
			StockNuevo:    p.Stock + det.Cantidad,
			Motivo:        fmt.Sprintf("Anulación venta correlativo %d", venta.Correlativo),
			ReferenciaID:  &ref,
		}
		if err := s.movimientos.CreateTx(tx, mov); err != nil {
			return nil, err
		}
	}

	for i := range venta.Cuotas {
		c := &venta.Cuotas[i]
		if c.Estado == model.CuotaAnulada {
			continue
		}
		c.Estado = model.CuotaAnulada
		c.Saldo = decimal.Zero
		if err := s.repo.UpdateCuotaTx(tx, c); err != nil {
			return nil, err
		}
	}

	venta.Estado = model.VentaAnulada
	venta.Deuda = decimal.Zero
	if err := s.repo.UpdateTx(tx, venta); err != nil {
		return nil, err
	}
	return venta, nil
}

// ── ReemplazarVenta ───────────────────────────────────────────────────────────
// Anula la venta original y crea una nueva en UNA sola transacción: si la
// creación falla, la anulación se revierte — nunca queda un cliente sin venta
// válida a mitad de camino.

func (s *ventaService) ReemplazarVenta(ctx context.Context, usuarioID, ventaID uuid.UUID, req dto.CrearVentaRequest) (*dto.VentaResponse, error) {
	var nueva *model.Venta
	var cliente *model.Cliente

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if _, err := s.anularVentaTx(ctx, tx, ventaID); err != nil {
			return err
		}
		var err error
		nueva, cliente, err = s.crearVentaTx(ctx, tx, usuarioID, req)
		return err
	})
	if txErr != nil {
		return nil, txErr
	}

	s.despacharComprobante(ctx, nueva, cliente)
	return ventaToResponse(nueva), nil
}

// ── RegistrarPago ─────────────────────────────────────────────────────────────
// Appends an immutable Pago row and applies it to the cuota and the venta's
// deuda. Pagos are never merged, updated or deleted.

func (s *ventaService) RegistrarPago(ctx context.Context, cuotaID uuid.UUID, req dto.RegistrarPagoRequest) (*dto.VentaResponse, error) {
	if !req.Monto.IsPositive() {
		return nil, errors.New("el monto del pago debe ser mayor a cero")
	}

	var venta *model.Venta
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		cuota, err := s.repo.FindCuotaForUpdateTx(tx, cuotaID)
		if err != nil {
			return &ErrNoEncontrado{Entidad: "cuota", ID: cuotaID.String()}
		}

		venta, err = s.repo.FindByIDForUpdateTx(tx, cuota.VentaID)
		if err != nil {
			return &ErrNoEncontrado{Entidad: "venta", ID: cuota.VentaID.String()}
		}
		// A pago racing an anulación loses: the venta lock serializes both and
		// the late pago is rejected instead of silently applied.
		if venta.Estado == model.VentaAnulada || cuota.Estado == model.CuotaAnulada {
			return &ErrVentaYaAnulada{VentaID: venta.ID}
		}

		if req.Monto.GreaterThan(cuota.Saldo) {
			return &ErrPagoExcedeSaldo{CuotaID: cuotaID, Saldo: cuota.Saldo, Intentado: req.Monto}
		}

		pago := &model.Pago{
			ID:          uuid.New(),
			CuotaID:     cuotaID,
			Monto:       req.Monto,
			Metodo:      req.Metodo,
			Observacion: req.Observacion,
			Fecha:       time.Now(),
		}
		if err := s.repo.CreatePagoTx(tx, pago); err != nil {
			return err
		}

		cuota.Saldo = cuota.Saldo.Sub(req.Monto)
		if cuota.Saldo.IsZero() {
			cuota.Estado = model.CuotaPagada
		}
		if err := s.repo.UpdateCuotaTx(tx, cuota); err != nil {
			return err
		}

		venta.Deuda = venta.Deuda.Sub(req.Monto)
		// <= for numerical-rounding safety; deuda is clamped at zero.
		if venta.Deuda.LessThanOrEqual(decimal.Zero) {
			venta.Deuda = decimal.Zero
			venta.Estado = model.VentaPagada
		}
		if err := s.repo.UpdateTx(tx, venta); err != nil {
			return err
		}

		// Reflect the change in the in-memory aggregate for the response.
		for i := range venta.Cuotas {
			if venta.Cuotas[i].ID == cuota.ID {
				venta.Cuotas[i] = *cuota
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return ventaToResponse(venta), nil
}

// ── Reads ─────────────────────────────────────────────────────────────────────

func (s *ventaService) ObtenerVenta(ctx context.Context, id uuid.UUID) (*dto.VentaResponse, error) {
	venta, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, &ErrNoEncontrado{Entidad: "venta", ID: id.String()}
	}
	return ventaToResponse(venta), nil
}

func (s *ventaService) ListarVentas(ctx context.Context, filter dto.VentaFilter) (*dto.VentaListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	ventas, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.VentaResponse, 0, len(ventas))
	for i := range ventas {
		items = append(items, *ventaToResponse(&ventas[i]))
	}
	return &dto.VentaListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *ventaService) ListarCuotas(ctx context.Context, ventaID uuid.UUID) ([]dto.CuotaResponse, error) {
	if _, err := s.repo.FindByID(ctx, ventaID); err != nil {
		return nil, &ErrNoEncontrado{Entidad: "venta", ID: ventaID.String()}
	}
	cuotas, err := s.repo.ListCuotas(ctx, ventaID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.CuotaResponse, 0, len(cuotas))
	for i := range cuotas {
		resp = append(resp, cuotaToResponse(&cuotas[i]))
	}
	return resp, nil
}

func (s *ventaService) ListarPagos(ctx context.Context, ventaID uuid.UUID) ([]dto.PagoResponse, error) {
	if _, err := s.repo.FindByID(ctx, ventaID); err != nil {
		return nil, &ErrNoEncontrado{Entidad: "venta", ID: ventaID.String()}
	}
	pagos, err := s.repo.ListPagosByVenta(ctx, ventaID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.PagoResponse, 0, len(pagos))
	for _, p := range pagos {
		resp = append(resp, dto.PagoResponse{
			ID:          p.ID.String(),
			CuotaID:     p.CuotaID.String(),
			Monto:       p.Monto,
			Metodo:      p.Metodo,
			Observacion: p.Observacion,
			Fecha:       p.Fecha.Format(time.RFC3339),
		})
	}
	return resp, nil
}

// Resumen aggregates over non-anuladas ventas, delegated to storage-level SUMs.
func (s *ventaService) Resumen(ctx context.Context) (*dto.ResumenVentasResponse, error) {
	ahora := time.Now()
	hoy := time.Date(ahora.Year(), ahora.Month(), ahora.Day(), 0, 0, 0, 0, ahora.Location())
	mes := time.Date(ahora.Year(), ahora.Month(), 1, 0, 0, 0, 0, ahora.Location())

	totalHoy, err := s.repo.TotalDesde(ctx, hoy)
	if err != nil {
		return nil, err
	}
	totalMes, err := s.repo.TotalDesde(ctx, mes)
	if err != nil {
		return nil, err
	}
	deuda, err := s.repo.DeudaPendiente(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.ResumenVentasResponse{
		TotalHoy:       totalHoy,
		TotalMes:       totalMes,
		DeudaPendiente: deuda,
	}, nil
}

// ── Helpers ───────────────────────────────────────────────────────────────────

// despacharComprobante enqueues the receipt job. Best-effort: a queue failure
// never affects the already-committed venta.
func (s *ventaService) despacharComprobante(ctx context.Context, venta *model.Venta, cliente *model.Cliente) {
	if s.dispatcher == nil || venta == nil {
		return
	}
	payload := map[string]interface{}{
		"venta_id": venta.ID.String(),
	}
	if cliente != nil && cliente.Email != nil && *cliente.Email != "" {
		payload["cliente_email"] = *cliente.Email
	}
	_ = s.dispatcher.EnqueueComprobante(ctx, payload)
}

func ventaToResponse(v *model.Venta) *dto.VentaResponse {
	detalles := make([]dto.DetalleVentaResponse, 0, len(v.Detalles))
	for _, det := range v.Detalles {
		nombre := ""
		if det.Producto != nil {
			nombre = det.Producto.Nombre
		}
		detalles = append(detalles, dto.DetalleVentaResponse{
			ProductoID:     det.ProductoID.String(),
			Producto:       nombre,
			Cantidad:       det.Cantidad,
			PrecioUnitario: det.PrecioUnitario,
			Subtotal:       det.Subtotal,
		})
	}

	cuotas := make([]dto.CuotaResponse, 0, len(v.Cuotas))
	for i := range v.Cuotas {
		cuotas = append(cuotas, cuotaToResponse(&v.Cuotas[i]))
	}

	serie := ""
	if v.Serie != nil {
		serie = v.Serie.Serie
	}
	metodo := ""
	if v.MetodoPago != nil {
		metodo = v.MetodoPago.Nombre
	}

	return &dto.VentaResponse{
		ID:          v.ID.String(),
		Serie:       serie,
		Correlativo: v.Correlativo,
		ClienteID:   v.ClienteID.String(),
		UsuarioID:   v.UsuarioID.String(),
		MetodoPago:  metodo,
		Fecha:       v.Fecha.Format(time.RFC3339),
		Total:       v.Total,
		Deuda:       v.Deuda,
		Estado:      v.Estado.String(),
		Detalles:    detalles,
		Cuotas:      cuotas,
	}
}

func cuotaToResponse(c *model.Cuota) dto.CuotaResponse {
	return dto.CuotaResponse{
		ID:               c.ID.String(),
		Numero:           c.Numero,
		Monto:            c.Monto,
		Saldo:            c.Saldo,
		FechaVencimiento: c.FechaVencimiento.Format("2006-01-02"),
		Estado:           c.Estado.String(),
	}
}
