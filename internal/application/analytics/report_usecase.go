// Package analytics contiene los reportes de turnos cerrados y su exportación.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/billartiochichi/billar-api/internal/application/dto"
	"github.com/billartiochichi/billar-api/internal/domain"
	"github.com/billartiochichi/billar-api/internal/domain/entity"
	"github.com/billartiochichi/billar-api/internal/domain/repository"
	"github.com/billartiochichi/billar-api/internal/domain/session"
	"github.com/billartiochichi/billar-api/pkg/dates"
)

// ReportExporter serializa un reporte a un archivo descargable (xlsx).
type ReportExporter interface {
	ExportSessions(r *dto.ReportResponse) ([]byte, error)
}

// ReportUseCase arma el reporte de turnos cerrados de un rango de días.
//
// Incluye turnos que empezaron y terminaron dentro del rango, con nombre de mesa,
// usuarios que atendieron y cobraron, consumos y los cinco totales.
type ReportUseCase struct {
	sessionRepo     repository.SessionRepository
	tableRepo       repository.TableRepository
	userRepo        repository.UserRepository
	consumptionRepo repository.ConsumptionRepository
	exporter        ReportExporter
}

// NewReportUseCase construye el caso de uso. exporter puede ser nil.
func NewReportUseCase(
	sessionRepo repository.SessionRepository,
	tableRepo repository.TableRepository,
	userRepo repository.UserRepository,
	consumptionRepo repository.ConsumptionRepository,
	exporter ReportExporter,
) *ReportUseCase {
	return &ReportUseCase{
		sessionRepo:     sessionRepo,
		tableRepo:       tableRepo,
		userRepo:        userRepo,
		consumptionRepo: consumptionRepo,
		exporter:        exporter,
	}
}

// Sessions genera el reporte.
func (uc *ReportUseCase) Sessions(ctx context.Context, in dto.ReportRequest) (*dto.ReportResponse, error) {
	from, to, err := dates.Range(in.DateStart, in.DateEnd)
	if err != nil {
		return nil, domain.ErrInvalidDate
	}
	// el reporte cubre hasta el último microsegundo del día
	to = to.Add(time.Second - time.Microsecond)

	// ── Consultas en paralelo: turnos, mesas y usuarios ───────────────────────
	type sessionsResult struct {
		list []*entity.Session
		err  error
	}
	type tablesResult struct {
		list []*entity.Table
		err  error
	}
	type usersResult struct {
		list []*entity.User
		err  error
	}
	sessionsCh := make(chan sessionsResult, 1)
	tablesCh := make(chan tablesResult, 1)
	usersCh := make(chan usersResult, 1)

	go func() {
		list, err := uc.sessionRepo.ListClosed(ctx, repository.SessionFilter{
			EndFrom:   from,
			EndTo:     to,
			StartFrom: &from,
			TableID:   in.TableID,
		})
		sessionsCh <- sessionsResult{list, err}
	}()
	go func() {
		list, err := uc.tableRepo.List(ctx)
		tablesCh <- tablesResult{list, err}
	}()
	go func() {
		list, err := uc.userRepo.List(ctx)
		usersCh <- usersResult{list, err}
	}()

	sessions := <-sessionsCh
	tables := <-tablesCh
	users := <-usersCh

	if sessions.err != nil {
		return nil, fmt.Errorf("reporte: turnos: %w", sessions.err)
	}
	if tables.err != nil {
		return nil, fmt.Errorf("reporte: mesas: %w", tables.err)
	}
	if users.err != nil {
		return nil, fmt.Errorf("reporte: usuarios: %w", users.err)
	}

	tableNames := make(map[string]string, len(tables.list))
	for _, t := range tables.list {
		tableNames[t.ID] = t.Name
	}
	usernames := make(map[string]string, len(users.list))
	for _, u := range users.list {
		usernames[u.ID] = u.Username
	}

	out := &dto.ReportResponse{
		DateStart:          in.DateStart,
		DateEnd:            in.DateEnd,
		Sessions:           make([]dto.ReportSession, 0, len(sessions.list)),
		TotalTime:          decimal.Zero,
		TotalProducts:      decimal.Zero,
		TotalDiscounts:     decimal.Zero,
		TotalExtraServices: decimal.Zero,
		TotalGeneral:       decimal.Zero,
	}
	if in.TableID != "" {
		id := in.TableID
		out.TableID = &id
	}

	for _, s := range sessions.list {
		lines, err := uc.consumptionRepo.ListBySession(ctx, s.ID)
		if err != nil {
			return nil, fmt.Errorf("reporte: consumos de %s: %w", s.ID, err)
		}
		out.Sessions = append(out.Sessions, toReportSession(s, lines, tableNames, usernames))

		out.TotalTime = out.TotalTime.Add(s.TimeSubtotal)
		out.TotalProducts = out.TotalProducts.Add(s.ProductsSubtotal)
		out.TotalDiscounts = out.TotalDiscounts.Add(s.Discount)
		out.TotalExtraServices = out.TotalExtraServices.Add(s.ExtraServices)
		out.TotalGeneral = out.TotalGeneral.Add(s.Total)
	}
	return out, nil
}

// Export genera el reporte y lo serializa con el exportador configurado.
func (uc *ReportUseCase) Export(ctx context.Context, in dto.ReportRequest) ([]byte, error) {
	if uc.exporter == nil {
		return nil, domain.ErrInternal
	}
	r, err := uc.Sessions(ctx, in)
	if err != nil {
		return nil, err
	}
	return uc.exporter.ExportSessions(r)
}

func toReportSession(s *entity.Session, lines []*entity.Consumption, tableNames, usernames map[string]string) dto.ReportSession {
	name, ok := tableNames[s.TableID]
	if !ok {
		name = s.TableID
	}
	end := *s.EndedAt
	rs := dto.ReportSession{
		Table:            name,
		AttendedBy:       label(usernames, s.AttendedBy),
		ClosedBy:         label(usernames, s.ClosedBy),
		StartedAt:        s.StartedAt,
		EndedAt:          end,
		TotalMinutes:     int(end.Sub(s.StartedAt).Minutes()),
		EffectiveMinutes: int(session.EffectiveMinutes(s, end, nil)),
		TimeSubtotal:     s.TimeSubtotal,
		ProductsSubtotal: s.ProductsSubtotal,
		Discount:         s.Discount,
		ExtraServices:    s.ExtraServices,
		Total:            s.Total,
		Consumptions:     make([]dto.ReportConsumption, 0, len(lines)),
	}
	for _, c := range lines {
		rs.Consumptions = append(rs.Consumptions, dto.ReportConsumption{
			ProductName: c.ProductName,
			Quantity:    c.Quantity,
			Subtotal:    c.Subtotal,
		})
	}
	return rs
}

// label devuelve el username o nil si el usuario no existe.
func label(usernames map[string]string, id string) *string {
	if id == "" {
		return nil
	}
	name, ok := usernames[id]
	if !ok {
		return nil
	}
	return &name
}

// RangeLabel devuelve una etiqueta legible del rango, ej: "20 Noviembre 2025 - 21 Noviembre 2025".
func RangeLabel(from, to time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	f := fmt.Sprintf("%d %s %d", from.Day(), months[from.Month()-1], from.Year())
	t := fmt.Sprintf("%d %s %d", to.Day(), months[to.Month()-1], to.Year())
	return f + " - " + t
}
