package service

import (
	"context"
	"sort"
	"sync"
	"testing"

	"github.com/JosiasEnriquezQ19/iphone-store-management-system/internal/dto"
	"github.com/JosiasEnriquezQ19/iphone-store-management-system/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescontarStock_DejaMovimiento(t *testing.T) {
	e := newTestEnv()
	p := seedProducto(e.productoRepo, "iPhone 15 Pro", 10, 4500)
	ref := p.ID

	err := e.inventario.DescontarStockTx(nil, p.ID, 3, "venta", &ref)
	require.NoError(t, err)
	assert.Equal(t, 7, e.productoRepo.stock(p.ID))

	movs, err := e.inventario.ListarMovimientos(context.Background(), p.ID, 10)
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, model.MovimientoVenta, movs[0].Tipo)
	assert.Equal(t, -3, movs[0].Cantidad)
	assert.Equal(t, 10, movs[0].StockAnterior)
	assert.Equal(t, 7, movs[0].StockNuevo)
}

func TestDescontarStock_Insuficiente(t *testing.T) {
	e := newTestEnv()
	p := seedProducto(e.productoRepo, "iPhone 14", 2, 3200)

	err := e.inventario.DescontarStockTx(nil, p.ID, 5, "venta", nil)
	assert.ErrorIs(t, err, ErrStockInsuficiente)

	// Nothing moved, nothing logged
	assert.Equal(t, 2, e.productoRepo.stock(p.ID))
	movs, _ := e.inventario.ListarMovimientos(context.Background(), p.ID, 10)
	assert.Empty(t, movs)
}

func TestDescontarStock_CantidadInvalida(t *testing.T) {
	e := newTestEnv()
	p := seedProducto(e.productoRepo, "iPhone SE", 5, 1800)

	assert.ErrorIs(t, e.inventario.DescontarStockTx(nil, p.ID, 0, "venta", nil), ErrCantidadInvalida)
	assert.ErrorIs(t, e.inventario.DescontarStockTx(nil, p.ID, -2, "venta", nil), ErrCantidadInvalida)
	assert.Equal(t, 5, e.productoRepo.stock(p.ID))
}

// Two concurrent decrements whose sum exceeds the stock: exactly one wins.
func TestDescontarStock_ConcurrenciaExactamenteUnExito(t *testing.T) {
	e := newTestEnv()
	p := seedProducto(e.productoRepo, "iPhone 15", 10, 4000)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = e.inventario.DescontarStockTx(nil, p.ID, 6, "venta", nil)
		}(i)
	}
	wg.Wait()

	exitos := 0
	for _, err := range errs {
		if err == nil {
			exitos++
		} else {
			assert.ErrorIs(t, err, ErrStockInsuficiente)
		}
	}
	assert.Equal(t, 1, exitos)
	assert.Equal(t, 4, e.productoRepo.stock(p.ID))
}

// Dos descuentos concurrentes que ambos caben: el antes/después de cada
// movimiento refleja el stock que dejó su propio UPDATE, de modo que los
// registros encadenan 10→7→4 en algún orden y nunca repiten el mismo "antes".
func TestDescontarStock_AuditoriaConsistenteConcurrente(t *testing.T) {
	e := newTestEnv()
	p := seedProducto(e.productoRepo, "iPhone 15", 10, 4000)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = e.inventario.DescontarStockTx(nil, p.ID, 3, "venta", nil)
		}(i)
	}
	wg.Wait()

	require.NoError(t, errs[0])
	require.NoError(t, errs[1])
	assert.Equal(t, 4, e.productoRepo.stock(p.ID))

	movs, err := e.inventario.ListarMovimientos(context.Background(), p.ID, 10)
	require.NoError(t, err)
	require.Len(t, movs, 2)

	nuevos := make([]int, 0, len(movs))
	for _, m := range movs {
		assert.Equal(t, m.StockNuevo+3, m.StockAnterior)
		nuevos = append(nuevos, m.StockNuevo)
	}
	sort.Ints(nuevos)
	assert.Equal(t, []int{4, 7}, nuevos)
}

func TestAjustarStock_Ajuste(t *testing.T) {
	e := newTestEnv()
	p := seedProducto(e.productoRepo, "iPhone 13 mini", 8, 2500)

	resp, err := e.inventario.AjustarStock(context.Background(), p.ID, dto.AjusteStockRequest{
		Tipo: "ajuste", Cantidad: 3, Motivo: "conteo físico",
	})
	require.NoError(t, err)
	assert.Equal(t, 3, e.productoRepo.stock(p.ID))
	assert.Equal(t, model.MovimientoAjuste, resp.Tipo)
	assert.Equal(t, -5, resp.Cantidad)
	assert.Equal(t, 8, resp.StockAnterior)
	assert.Equal(t, 3, resp.StockNuevo)
}

func TestAjustarStock_Reposicion(t *testing.T) {
	e := newTestEnv()
	p := seedProducto(e.productoRepo, "iPhone 15 Plus", 4, 4200)

	resp, err := e.inventario.AjustarStock(context.Background(), p.ID, dto.AjusteStockRequest{
		Tipo: "reposicion", Cantidad: 10, Motivo: "lote proveedor",
	})
	require.NoError(t, err)
	assert.Equal(t, 14, e.productoRepo.stock(p.ID))
	assert.Equal(t, model.MovimientoReposicion, resp.Tipo)
	assert.Equal(t, 10, resp.Cantidad)
}
