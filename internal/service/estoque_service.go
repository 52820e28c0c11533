package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/tiagok38-hash/iStorePro/internal/apierror"
	"github.com/tiagok38-hash/iStorePro/internal/dto"
	"github.com/tiagok38-hash/iStorePro/internal/model"
	"github.com/tiagok38-hash/iStorePro/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErroPrecoVenda blocks a launch whose rows are missing a positive sale
// price. Indices identify the offending rows in submission order.
type ErroPrecoVenda struct {
	Indices []int
}

func (e *ErroPrecoVenda) Error() string {
	return "preço de venda obrigatório e maior que zero em todos os itens"
}

type EstoqueService interface {
	CriarCompra(ctx context.Context, criadoPor string, req dto.CriarCompraRequest) (*dto.CompraResponse, error)
	ObterCompra(ctx context.Context, id uuid.UUID) (*dto.CompraResponse, error)
	ListarCompras(ctx context.Context, page, limit int) (*dto.CompraListResponse, error)
	// PrepararLancamento expands a purchase order into draft launch rows,
	// skipping units already in stock. Empty result = fully launched.
	PrepararLancamento(ctx context.Context, compraID uuid.UUID) ([]dto.ItemLancamentoResponse, error)
	// LancarCompra validates and persists a launch batch atomically.
	LancarCompra(ctx context.Context, compraID uuid.UUID, criadoPor string, req dto.LancarCompraRequest) (*dto.LancamentoResponse, error)
}

type estoqueService struct {
	compraRepo  repository.CompraRepository
	produtoRepo repository.ProdutoRepository
}

func NewEstoqueService(compraRepo repository.CompraRepository, produtoRepo repository.ProdutoRepository) EstoqueService {
	return &estoqueService{compraRepo: compraRepo, produtoRepo: produtoRepo}
}

// ── Compras ───────────────────────────────────────────────────────────────────

func (s *estoqueService) CriarCompra(ctx context.Context, criadoPor string, req dto.CriarCompraRequest) (*dto.CompraResponse, error) {
	numero, err := s.compraRepo.NextNumeroCompra(ctx)
	if err != nil {
		return nil, err
	}

	compra := &model.Compra{
		NumeroCompra:    numero,
		FornecedorNome:  req.FornecedorNome,
		CompraDeCliente: req.CompraDeCliente,
		Observacoes:     req.Observacoes,
		CriadoPor:       criadoPor,
	}
	for _, item := range req.Itens {
		compra.Itens = append(compra.Itens, model.CompraItem{
			Marca:                  item.Marca,
			Categoria:              item.Categoria,
			Modelo:                 item.Modelo,
			Cor:                    item.Cor,
			Quantidade:             item.Quantidade,
			CustoUnitario:          item.CustoUnitario,
			CustoAdicionalUnitario: item.CustoAdicionalUnitario,
			TemImei:                item.TemImei,
			Condicao:               item.Condicao,
			Garantia:               item.Garantia,
			LocalEstoque:           item.LocalEstoque,
			EstoqueMinimo:          item.EstoqueMinimo,
			CodigoBarras:           item.CodigoBarras,
		})
	}
	if err := s.compraRepo.Create(ctx, compra); err != nil {
		return nil, err
	}
	return compraToResponse(compra, nil), nil
}

func (s *estoqueService) ObterCompra(ctx context.Context, id uuid.UUID) (*dto.CompraResponse, error) {
	compra, err := s.compraRepo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("compra não encontrada")
	}
	produtos, err := s.produtoRepo.FindByCompraID(ctx, id)
	if err != nil {
		return nil, err
	}
	return compraToResponse(compra, produtos), nil
}

func (s *estoqueService) ListarCompras(ctx context.Context, page, limit int) (*dto.CompraListResponse, error) {
	compras, total, err := s.compraRepo.List(ctx, page, limit)
	if err != nil {
		return nil, err
	}
	data := make([]dto.CompraResponse, 0, len(compras))
	for i := range compras {
		data = append(data, *compraToResponse(&compras[i], nil))
	}
	return &dto.CompraListResponse{Data: data, Total: total, Page: page, Limit: limit}, nil
}

// ── PrepararLancamento ────────────────────────────────────────────────────────

func (s *estoqueService) PrepararLancamento(ctx context.Context, compraID uuid.UUID) ([]dto.ItemLancamentoResponse, error) {
	compra, err := s.compraRepo.FindByID(ctx, compraID)
	if err != nil {
		return nil, errors.New("compra não encontrada")
	}
	produtos, err := s.produtoRepo.FindByCompraID(ctx, compraID)
	if err != nil {
		return nil, err
	}

	linhas := ExpandirCompra(compra, produtos)
	resp := make([]dto.ItemLancamentoResponse, 0, len(linhas))
	for _, l := range linhas {
		resp = append(resp, dto.ItemLancamentoResponse{
			CompraItemID:   l.CompraItemID.String(),
			Descricao:      l.Marca + " " + l.Modelo,
			Marca:          l.Marca,
			Categoria:      l.Categoria,
			Modelo:         l.Modelo,
			Cor:            l.Cor,
			Quantidade:     l.Quantidade,
			TemImei:        l.TemImei,
			EhApple:        l.EhApple,
			NumeroSerie:    l.NumeroSerie,
			Imei1:          l.Imei1,
			Imei2:          l.Imei2,
			SaudeBateria:   l.SaudeBateria,
			Condicao:       l.Condicao,
			Garantia:       l.Garantia,
			LocalEstoque:   l.LocalEstoque,
			PrecoCusto:     l.PrecoCusto,
			CustoAdicional: l.CustoAdicional,
			Markup:         l.Markup,
			PrecoVenda:     l.PrecoVenda,
			PrecoAtacado:   l.PrecoAtacado,
			EstoqueMinimo:  l.EstoqueMinimo,
			CodigoBarras:   l.CodigoBarras,
		})
	}
	return resp, nil
}

// ── LancarCompra ──────────────────────────────────────────────────────────────
// All-or-nothing: any structural mismatch, missing price, quantity overflow
// or duplicate identity aborts the whole batch before anything is written.

func (s *estoqueService) LancarCompra(ctx context.Context, compraID uuid.UUID, criadoPor string, req dto.LancarCompraRequest) (*dto.LancamentoResponse, error) {
	compra, err := s.compraRepo.FindByID(ctx, compraID)
	if err != nil {
		return nil, errors.New("compra não encontrada")
	}

	itemPorID := make(map[uuid.UUID]*model.CompraItem, len(compra.Itens))
	for i := range compra.Itens {
		itemPorID[compra.Itens[i].ID] = &compra.Itens[i]
	}

	// 1. Structural check: every row must reference an item of THIS order.
	// A mismatch means a stale or corrupted draft — abort, create nothing.
	type linhaLancamento struct {
		item   *model.CompraItem
		row    ItemLancamento
		barras string
	}
	linhas := make([]linhaLancamento, 0, len(req.Itens))
	lancarPorItem := make(map[uuid.UUID]int)

	for _, rowReq := range req.Itens {
		itemID, err := uuid.Parse(rowReq.CompraItemID)
		if err != nil {
			return nil, fmt.Errorf("compra_item_id inválido: %w", err)
		}
		item, ok := itemPorID[itemID]
		if !ok {
			return nil, errors.New("erro interno: item do lançamento não pertence à compra")
		}
		lancarPorItem[itemID] += rowReq.Quantidade

		row := ItemLancamento{
			CompraItemID:   itemID,
			Marca:          item.Marca,
			Categoria:      item.Categoria,
			Modelo:         item.Modelo,
			Cor:            item.Cor,
			Quantidade:     rowReq.Quantidade,
			TemImei:        item.TemImei,
			EhApple:        item.Marca == marcaApple,
			NumeroSerie:    strings.TrimSpace(rowReq.NumeroSerie),
			Imei1:          strings.TrimSpace(rowReq.Imei1),
			Imei2:          strings.TrimSpace(rowReq.Imei2),
			SaudeBateria:   ClampSaudeBateria(rowReq.SaudeBateria),
			Condicao:       rowReq.Condicao,
			Garantia:       rowReq.Garantia,
			LocalEstoque:   rowReq.LocalEstoque,
			PrecoCusto:     rowReq.PrecoCusto,
			CustoAdicional: rowReq.CustoAdicional,
			PrecoVenda:     rowReq.PrecoVenda,
			PrecoAtacado:   rowReq.PrecoAtacado,
			EstoqueMinimo:  rowReq.EstoqueMinimo,
		}
		if row.Condicao == "" {
			row.Condicao = condicaoPadrao
		}
		if row.Garantia == "" {
			row.Garantia = garantiaPadrao
		}
		if row.LocalEstoque == "" {
			row.LocalEstoque = localEstoquePadrao
		}
		if row.EhApple {
			row.EstoqueMinimo = nil
		}
		linhas = append(linhas, linhaLancamento{item: item, row: row, barras: strings.TrimSpace(rowReq.CodigoBarras)})
	}

	// 2. Quantity guard: launched + submitted must not exceed ordered.
	produtosExistentes, err := s.produtoRepo.FindByCompraID(ctx, compraID)
	if err != nil {
		return nil, err
	}
	jaLancadas := make(map[uuid.UUID]int)
	for _, p := range produtosExistentes {
		if p.CompraItemID != nil {
			jaLancadas[*p.CompraItemID] += p.Estoque
		}
	}
	for itemID, qtd := range lancarPorItem {
		item := itemPorID[itemID]
		if jaLancadas[itemID]+qtd > item.Quantidade {
			return nil, fmt.Errorf("quantidade lançada excede a quantidade comprada de %s %s", item.Marca, item.Modelo)
		}
	}

	// 3. Price guard: every row needs a positive sale price.
	rows := make([]ItemLancamento, len(linhas))
	for i := range linhas {
		rows[i] = linhas[i].row
	}
	if indices := IndicesSemPreco(rows); len(indices) > 0 {
		return nil, &ErroPrecoVenda{Indices: indices}
	}

	// 4. In-batch duplicates.
	if resultado := ValidarLote(rows); !resultado.OK {
		return nil, apierror.NewDuplicados(duplicadosDoLote(rows, resultado.Conflitos))
	}

	// 5. System-wide duplicates against the products table.
	var seriais, imeis []string
	for _, l := range linhas {
		if l.row.NumeroSerie != "" {
			seriais = append(seriais, l.row.NumeroSerie)
		}
		if l.row.Imei1 != "" {
			imeis = append(imeis, l.row.Imei1)
		}
		if l.row.Imei2 != "" {
			imeis = append(imeis, l.row.Imei2)
		}
	}
	if len(seriais) > 0 || len(imeis) > 0 {
		dup, err := s.produtoRepo.FindIdentidadesExistentes(ctx, seriais, imeis)
		if err != nil {
			return nil, err
		}
		if !dup.Vazio() {
			return nil, apierror.NewDuplicados(dup)
		}
	}

	// 6. Atomic insert: products + stock movements.
	origem := "Compra"
	if compra.CompraDeCliente {
		origem = "Comprado de Cliente"
	}

	criados := 0
	txErr := runTx(ctx, s.produtoRepo.DB(), func(tx *gorm.DB) error {
		for _, l := range linhas {
			produto := &model.Produto{
				Marca:          l.row.Marca,
				Categoria:      l.row.Categoria,
				Modelo:         l.row.Modelo,
				Cor:            l.row.Cor,
				NumeroSerie:    l.row.NumeroSerie,
				Imei1:          l.row.Imei1,
				Imei2:          l.row.Imei2,
				SaudeBateria:   l.row.SaudeBateria,
				Condicao:       l.row.Condicao,
				Garantia:       l.row.Garantia,
				LocalEstoque:   l.row.LocalEstoque,
				PrecoCusto:     l.row.PrecoCusto,
				CustoAdicional: l.row.CustoAdicional,
				Preco:          *l.row.PrecoVenda,
				PrecoAtacado:   l.row.PrecoAtacado,
				Estoque:        l.row.Quantidade,
				EstoqueMinimo:  l.row.EstoqueMinimo,
				CodigoBarras:   l.barras,
				CompraID:       &compra.ID,
				CompraItemID:   &l.item.ID,
				FornecedorID:   compra.FornecedorID,
				Origem:         origem,
				CriadoPor:      criadoPor,
				Ativo:          true,
			}
			if err := s.produtoRepo.CreateTx(tx, produto); err != nil {
				return err
			}

			ref := compra.ID
			mov := &model.MovimentoEstoque{
				ProdutoID:       produto.ID,
				Tipo:            "entrada_compra",
				Quantidade:      l.row.Quantidade,
				EstoqueAnterior: 0,
				EstoqueNovo:     l.row.Quantidade,
				Motivo:          fmt.Sprintf("Lançamento compra #%d", compra.NumeroCompra),
				ReferenciaID:    &ref,
			}
			if err := s.produtoRepo.CreateMovimentoEstoqueTx(tx, mov); err != nil {
				return err
			}
			criados++
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	return &dto.LancamentoResponse{ProdutosCriados: criados}, nil
}

// duplicadosDoLote turns per-index conflicts into the wire payload by
// collecting the colliding values under the field they were submitted in.
func duplicadosDoLote(rows []ItemLancamento, conflitos map[int]CamposConflito) apierror.Duplicados {
	var dup apierror.Duplicados
	vistosSerie := make(map[string]bool)
	vistosImei1 := make(map[string]bool)
	vistosImei2 := make(map[string]bool)

	indices := make([]int, 0, len(conflitos))
	for idx := range conflitos {
		indices = append(indices, idx)
	}
	sort.Ints(indices)

	for _, idx := range indices {
		c := conflitos[idx]
		if c.NumeroSerie && !vistosSerie[rows[idx].NumeroSerie] {
			vistosSerie[rows[idx].NumeroSerie] = true
			dup.NumeroSerie = append(dup.NumeroSerie, rows[idx].NumeroSerie)
		}
		if c.Imei1 && !vistosImei1[rows[idx].Imei1] {
			vistosImei1[rows[idx].Imei1] = true
			dup.Imei1 = append(dup.Imei1, rows[idx].Imei1)
		}
		if c.Imei2 && !vistosImei2[rows[idx].Imei2] {
			vistosImei2[rows[idx].Imei2] = true
			dup.Imei2 = append(dup.Imei2, rows[idx].Imei2)
		}
	}
	return dup
}

func compraToResponse(c *model.Compra, produtos []model.Produto) *dto.CompraResponse {
	lancadas := make(map[uuid.UUID]int)
	for _, p := range produtos {
		if p.CompraItemID != nil {
			lancadas[*p.CompraItemID] += p.Estoque
		}
	}

	itens := make([]dto.CompraItemResponse, 0, len(c.Itens))
	for _, item := range c.Itens {
		itens = append(itens, dto.CompraItemResponse{
			ID:                     item.ID.String(),
			Marca:                  item.Marca,
			Categoria:              item.Categoria,
			Modelo:                 item.Modelo,
			Cor:                    item.Cor,
			Quantidade:             item.Quantidade,
			QuantidadeLancada:      lancadas[item.ID],
			CustoUnitario:          item.CustoUnitario,
			CustoAdicionalUnitario: item.CustoAdicionalUnitario,
			TemImei:                item.TemImei,
			Condicao:               item.Condicao,
			Garantia:               item.Garantia,
			LocalEstoque:           item.LocalEstoque,
			EstoqueMinimo:          item.EstoqueMinimo,
			CodigoBarras:           item.CodigoBarras,
		})
	}

	return &dto.CompraResponse{
		ID:              c.ID.String(),
		NumeroCompra:    c.NumeroCompra,
		FornecedorNome:  c.FornecedorNome,
		CompraDeCliente: c.CompraDeCliente,
		Observacoes:     c.Observacoes,
		CriadoPor:       c.CriadoPor,
		CreatedAt:       c.CreatedAt.Format(time.RFC3339),
		Itens:           itens,
	}
}
