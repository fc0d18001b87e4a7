package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"barbershop/internal/domain"
)

const (
	appointmentsSheet = "Agendamentos"
	summarySheet      = "Resumo"
)

var appointmentColumns = []string{
	"ID", "Data", "Horário", "Término", "Cliente", "Telefone",
	"Serviços", "Pagamento", "Status", "Valor (R$)",
}

var statusLabels = map[domain.AppointmentStatus]string{
	domain.AppointmentStatusPending:   "Pendente",
	domain.AppointmentStatusConfirmed: "Confirmado",
	domain.AppointmentStatusFinished:  "Finalizado",
	domain.AppointmentStatusCancelled: "Cancelado",
}

var paymentLabels = map[domain.PaymentMethod]string{
	domain.PaymentMethodPix:  "Pix",
	domain.PaymentMethodCash: "Dinheiro",
}

// Period is the date range printed in the summary sheet.
type Period struct {
	From string
	To   string
}

// WriteAppointments renders an appointment sheet and a per-status summary as XLSX.
func WriteAppointments(w io.Writer, period Period, appointments []domain.Appointment) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", appointmentsSheet); err != nil {
		return fmt.Errorf("ошибка переименования листа: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#E0E0E0"}},
	})
	if err != nil {
		return fmt.Errorf("ошибка создания стиля: %w", err)
	}

	moneyStyle, err := f.NewStyle(&excelize.Style{NumFmt: 4})
	if err != nil {
		return fmt.Errorf("ошибка создания стиля: %w", err)
	}

	if err := writeRow(f, appointmentsSheet, 1, toCells(appointmentColumns)); err != nil {
		return err
	}
	lastHeader, _ := excelize.CoordinatesToCellName(len(appointmentColumns), 1)
	if err := f.SetCellStyle(appointmentsSheet, "A1", lastHeader, headerStyle); err != nil {
		return fmt.Errorf("ошибка применения стиля: %w", err)
	}

	type bucket struct {
		count int
		total float64
	}
	byStatus := make(map[domain.AppointmentStatus]*bucket)

	for i, a := range appointments {
		end := ""
		if a.ActualEndTime != nil {
			end = *a.ActualEndTime
		}

		row := []interface{}{
			a.ID, a.AppointmentDate, a.AppointmentTime, end, a.ClientName, a.ClientPhone,
			a.ServiceDescription, label(paymentLabels, a.PaymentMethod), label(statusLabels, a.Status), a.Price,
		}
		if err := writeRow(f, appointmentsSheet, i+2, row); err != nil {
			return err
		}

		b, ok := byStatus[a.Status]
		if !ok {
			b = &bucket{}
			byStatus[a.Status] = b
		}
		b.count++
		b.total += a.Price
	}

	if len(appointments) > 0 {
		last, _ := excelize.CoordinatesToCellName(len(appointmentColumns), len(appointments)+1)
		first, _ := excelize.CoordinatesToCellName(len(appointmentColumns), 2)
		if err := f.SetCellStyle(appointmentsSheet, first, last, moneyStyle); err != nil {
			return fmt.Errorf("ошибка применения стиля: %w", err)
		}
	}

	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("ошибка создания листа %s: %w", summarySheet, err)
	}

	summary := [][]interface{}{
		{"Período", period.From + " - " + period.To},
		{"Status", "Quantidade", "Valor (R$)"},
	}
	var revenue float64
	for _, status := range []domain.AppointmentStatus{
		domain.AppointmentStatusPending,
		domain.AppointmentStatusConfirmed,
		domain.AppointmentStatusFinished,
		domain.AppointmentStatusCancelled,
	} {
		b := byStatus[status]
		if b == nil {
			b = &bucket{}
		}
		summary = append(summary, []interface{}{statusLabels[status], b.count, b.total})
		if status != domain.AppointmentStatusCancelled {
			revenue += b.total
		}
	}
	summary = append(summary, []interface{}{"Faturamento", "", revenue})

	for i, row := range summary {
		if err := writeRow(f, summarySheet, i+1, row); err != nil {
			return err
		}
	}
	if err := f.SetCellStyle(summarySheet, "A2", "C2", headerStyle); err != nil {
		return fmt.Errorf("ошибка применения стиля: %w", err)
	}

	if err := f.SetColWidth(appointmentsSheet, "E", "G", 28); err != nil {
		return fmt.Errorf("ошибка установки ширины колонок: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("ошибка записи XLSX: %w", err)
	}

	return nil
}

func writeRow(f *excelize.File, sheet string, rowNum int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}

	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("ошибка записи строки %d: %w", rowNum, err)
	}

	return nil
}

func toCells(values []string) []interface{} {
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return cells
}

func label[K ~string](labels map[K]string, key K) string {
	if l, ok := labels[key]; ok {
		return l
	}
	return string(key)
}
