package report

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/tu-usuario/recepta-api/internal/domain/entity"
)

const sheetName = "Auditoría"

// XLSXGenerator genera la versión XLSX del reporte de auditoría usando excelize.
// Una hoja con tres bloques: entradas, situación actual, proyección.
type XLSXGenerator struct{}

// NewXLSXGenerator construye el generador.
func NewXLSXGenerator() *XLSXGenerator { return &XLSXGenerator{} }

// Generate genera el libro y devuelve sus bytes.
func (g *XLSXGenerator) Generate(_ context.Context, report *entity.AuditReport) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("xlsx: crear hoja: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("xlsx: eliminar hoja por defecto: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"0F766E"}},
	})
	if err != nil {
		return nil, fmt.Errorf("xlsx: crear estilo: %w", err)
	}
	moneyStyle, err := f.NewStyle(&excelize.Style{NumFmt: 3}) // #,##0
	if err != nil {
		return nil, fmt.Errorf("xlsx: crear estilo: %w", err)
	}

	if err := f.SetColWidth(sheetName, "A", "A", 42); err != nil {
		return nil, fmt.Errorf("xlsx: ancho de columna: %w", err)
	}
	if err := f.SetColWidth(sheetName, "B", "B", 22); err != nil {
		return nil, fmt.Errorf("xlsx: ancho de columna: %w", err)
	}

	rowNum := 1
	section := func(title string) error {
		cell := fmt.Sprintf("A%d", rowNum)
		if err := f.SetCellValue(sheetName, cell, title); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheetName, cell, fmt.Sprintf("B%d", rowNum), headerStyle); err != nil {
			return err
		}
		rowNum++
		return nil
	}
	pair := func(label string, value interface{}, isMoney bool) error {
		if err := f.SetCellValue(sheetName, fmt.Sprintf("A%d", rowNum), label); err != nil {
			return err
		}
		cell := fmt.Sprintf("B%d", rowNum)
		if err := f.SetCellValue(sheetName, cell, value); err != nil {
			return err
		}
		if isMoney {
			if err := f.SetCellStyle(sheetName, cell, cell, moneyStyle); err != nil {
				return err
			}
		}
		rowNum++
		return nil
	}
	blank := func() { rowNum++ }

	in, res := report.Inputs, report.Results

	steps := []func() error{
		func() error { return section("Auditoría de Ingresos — " + in.BusinessName) },
		func() error { return pair("Fecha", report.CreatedAt.Format("02/01/2006"), false) },
		func() error { return pair("Industria", in.Industry, false) },
		func() error { blank(); return section("Entradas") },
		func() error { return pair("Leads mensuales", in.AvgMonthlyLeads, false) },
		func() error { return pair("Tasa lead → reserva (%)", in.AvgLeadToBookingRate, false) },
		func() error { return pair("Tiempo de respuesta", in.ResponseTimeToInquiry, false) },
		func() error { return pair("Valor de vida del cliente", in.AvgCustomerLifetimeValue, true) },
		func() error { return pair("Llamadas fuera de horario", in.AfterHoursCallHandling, false) },
		func() error { return pair("Seguimiento automatizado", in.AutomatedFollowUpSystem, false) },
		func() error { return pair("Horas administrativas (bucket)", in.AdminPingPongHours, false) },
		func() error { return pair("Gasto actual en herramientas", in.CurrentToolSpend, true) },
		func() error { blank(); return section("Situación actual") },
		func() error { return pair("Reservas por mes", res.Baseline.BookingsPerMonth, false) },
		func() error { return pair("Ingresos mensuales", res.Baseline.MonthlyRevenue, true) },
		func() error { return pair("Tasa de llamadas perdidas (%)", in.AvgMissedCallRate, false) },
		func() error { blank(); return section("Proyección con recepcionista AI") },
		func() error { return pair("Leads recuperados", res.Recovery.RecoveredLeads, false) },
		func() error { return pair("Reservas recuperadas", res.Recovery.RecoveredBookings, false) },
		func() error { return pair("Ingresos recuperados", res.Recovery.RecoveredRevenue, true) },
		func() error { return pair("Reservas por seguimiento", res.FollowUp.AddedBookings, false) },
		func() error { return pair("Ingresos por seguimiento", res.FollowUp.AddedRevenue, true) },
		func() error { return pair("Ahorro en personal", res.Savings.StaffingSavings, true) },
		func() error { return pair("Horas ahorradas al mes", res.Totals.MonthlyHoursSaved, false) },
		func() error { blank(); return section("Totales") },
		func() error { return pair("Uplift mensual bruto", res.Totals.MonthlyUplift, true) },
		func() error { return pair("Ganancia neta mensual", res.Totals.MonthlyNetGain, true) },
		func() error { return pair("Uplift anual", res.Totals.AnnualUplift, true) },
		func() error { return pair("Payback (meses)", res.Totals.PaybackMonths, false) },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return nil, fmt.Errorf("xlsx: escribir celda: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: serializar libro: %w", err)
	}
	return buf.Bytes(), nil
}
