// Package analysis orquesta la sesión de análisis de ventas: guarda el set
// completo sin filtrar (re-filtrar nunca vuelve a parsear el archivo), relee el
// registro de costos en cada pasada y ejecuta el núcleo puro de conciliación.
package analysis

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/alexpint/impacto-vendas/internal/application/dto"
	"github.com/alexpint/impacto-vendas/internal/domain"
	domainanalysis "github.com/alexpint/impacto-vendas/internal/domain/analysis"
	"github.com/alexpint/impacto-vendas/internal/domain/entity"
	"github.com/alexpint/impacto-vendas/internal/domain/repository"
	"github.com/alexpint/impacto-vendas/pkg/logger"
)

// DefaultWatchDebounce espera tras una notificación de cambio del registro
// antes de recalcular, para absorber ráfagas de mutaciones.
const DefaultWatchDebounce = 300 * time.Millisecond

// Session estado de la sesión de análisis. Una carga de planilla o un cambio de
// filtros dispara una pasada completa filtro -> conciliación -> reporte; el
// índice de costos se reconstruye desde una lectura fresca del registro en cada
// pasada (los costos pueden cambiar entre planillas). El mutex existe porque
// Fiber atiende handlers en paralelo; dentro de la sesión solo hay reemplazo
// secuencial de estado.
type Session struct {
	repo   repository.CostEntryRepository
	parser SalesFileParser
	log    *logger.Logger

	mu       sync.Mutex
	fileName string
	records  []entity.SalesRecord

	// passToken token monotónico por pasada: un fetch del registro que resuelve
	// tarde no debe pisar el resultado de una pasada más nueva.
	passToken   uint64
	lastFilters domainanalysis.Filters
	lastResult  *dto.AnalysisResponse

	debounce time.Duration
	timer    *time.Timer
}

// NewSession construye la sesión.
func NewSession(repo repository.CostEntryRepository, parser SalesFileParser, log *logger.Logger) *Session {
	return &Session{repo: repo, parser: parser, log: log, debounce: DefaultWatchDebounce}
}

// LoadFile parsea y retiene una planilla nueva. El set anterior se descarta
// entero; los errores del tokenizador rechazan el lote completo.
func (s *Session) LoadFile(fileName string, raw []byte) (*dto.UploadResponse, error) {
	records, err := s.parser.Parse(raw)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, domain.ErrEmptySalesFile
	}

	s.mu.Lock()
	s.fileName = fileName
	s.records = records
	s.lastResult = nil
	s.mu.Unlock()

	stores, statuses := distinctDimensions(records)
	s.log.Info().Str("file", fileName).Int("rows", len(records)).Msg("planilla de ventas cargada")

	return &dto.UploadResponse{
		FileName: fileName,
		Rows:     len(records),
		Stores:   stores,
		Statuses: statuses,
	}, nil
}

// Analyze corre una pasada completa con los filtros dados sobre la planilla
// cargada. Si el registro no responde, la pasada aborta con
// domain.ErrRegistryUnavailable: nunca se degrada a un resultado de costo cero.
func (s *Session) Analyze(filters domainanalysis.Filters) (*dto.AnalysisResponse, error) {
	s.mu.Lock()
	if len(s.records) == 0 {
		s.mu.Unlock()
		return nil, domain.ErrNoSalesLoaded
	}
	records := s.records
	fileName := s.fileName
	s.passToken++
	token := s.passToken
	s.lastFilters = filters
	s.mu.Unlock()

	entries, err := s.repo.List()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRegistryUnavailable, err)
	}

	ix := domainanalysis.BuildIndex(entries)
	filtered := domainanalysis.Apply(records, filters)
	result := domainanalysis.Reconcile(filtered, ix)
	resp := toAnalysisResponse(fileName, result)

	// Publicar en caché solo si ninguna pasada más nueva arrancó mientras
	// esperábamos el registro.
	s.mu.Lock()
	if token == s.passToken {
		s.lastResult = resp
	}
	s.mu.Unlock()

	return resp, nil
}

// LastResult devuelve el último resultado publicado (nil si no hay ninguno).
func (s *Session) LastResult() *dto.AnalysisResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastResult
}

// Reconcile ejecuta la pasada y devuelve el Result del dominio (para el PDF).
func (s *Session) Reconcile(filters domainanalysis.Filters) (string, domainanalysis.Result, error) {
	s.mu.Lock()
	if len(s.records) == 0 {
		s.mu.Unlock()
		return "", domainanalysis.Result{}, domain.ErrNoSalesLoaded
	}
	records := s.records
	fileName := s.fileName
	s.mu.Unlock()

	entries, err := s.repo.List()
	if err != nil {
		return "", domainanalysis.Result{}, fmt.Errorf("%w: %v", domain.ErrRegistryUnavailable, err)
	}
	ix := domainanalysis.BuildIndex(entries)
	return fileName, domainanalysis.Reconcile(domainanalysis.Apply(records, filters), ix), nil
}

// RegistryChanged implementa usecase.RegistryWatcher: tras una mutación del
// registro se recalcula la última pasada con debounce, para que la sesión no
// sirva totales de un snapshot anterior a la mutación local más reciente.
func (s *Session) RegistryChanged() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.records) == 0 {
		return
	}
	filters := s.lastFilters
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.debounce, func() {
		if _, err := s.Analyze(filters); err != nil {
			s.log.Warn().Err(err).Msg("refresco de análisis tras cambio del registro")
		}
	})
}

// SetDebounce ajusta la ventana de debounce del watch (tests).
func (s *Session) SetDebounce(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.debounce = d
}

// GeneratePDF corre la pasada con los filtros dados y renderiza el reporte.
func (s *Session) GeneratePDF(ctx context.Context, gen ReportPDFGenerator, filters domainanalysis.Filters) ([]byte, error) {
	fileName, result, err := s.Reconcile(filters)
	if err != nil {
		return nil, err
	}
	return gen.GenerateReportPDF(ctx, fileName, result)
}

func distinctDimensions(records []entity.SalesRecord) (stores, statuses []string) {
	storeSet := make(map[string]struct{})
	statusSet := make(map[string]struct{})
	for _, r := range records {
		if r.Store != "" {
			storeSet[r.Store] = struct{}{}
		}
		if r.Status != "" {
			statusSet[r.Status] = struct{}{}
		}
	}
	for v := range storeSet {
		stores = append(stores, v)
	}
	for v := range statusSet {
		statuses = append(statuses, v)
	}
	sort.Strings(stores)
	sort.Strings(statuses)
	return stores, statuses
}

func toAnalysisResponse(fileName string, r domainanalysis.Result) *dto.AnalysisResponse {
	lines := make([]dto.ReconciledLineResponse, 0, len(r.Lines))
	for _, l := range r.Lines {
		lines = append(lines, dto.ReconciledLineResponse{
			SKU:         l.SKU,
			Date:        l.Date,
			Status:      l.Status,
			Distributor: l.Distributor,
			Units:       l.Units,
			Cost:        l.Cost,
		})
	}
	unitsBySKU := make([]dto.SKUUnitsResponse, 0)
	for _, u := range r.UnitsBySKU() {
		unitsBySKU = append(unitsBySKU, dto.SKUUnitsResponse{SKU: u.SKU, Units: u.Units})
	}
	costByDist := make([]dto.DistributorCostResponse, 0)
	for _, c := range r.CostByDistributor() {
		costByDist = append(costByDist, dto.DistributorCostResponse{Distributor: c.Distributor, Cost: c.Cost})
	}
	return &dto.AnalysisResponse{
		FileName:           fileName,
		Lines:              lines,
		TotalCostToPay:     r.TotalCostToPay,
		TotalUnitsSold:     r.TotalUnitsSold,
		MatchedCount:       r.MatchedCount,
		TotalFilteredCount: r.TotalFilteredCount,
		UnitsBySKU:         unitsBySKU,
		CostByDistributor:  costByDist,
	}
}
