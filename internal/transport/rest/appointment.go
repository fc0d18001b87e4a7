package rest

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"barbershop/internal/domain"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	maxPageSize     = 200
)

// @Summary Список записей
// @Description Возвращает записи с фильтрами по дате и статусу
// @Tags Записи
// @Produce json
// @Param date query string false "Дата YYYY-MM-DD"
// @Param start_date query string false "Начало периода YYYY-MM-DD"
// @Param end_date query string false "Конец периода YYYY-MM-DD"
// @Param status query string false "Статус" Enums(pending, confirmed, finished, cancelled)
// @Param limit query int false "Размер страницы" default(50)
// @Param offset query int false "Смещение" default(0)
// @Success 200 {object} paginatedResponse
// @Failure 400 {object} errorResponseBody
// @Failure 401 {object} errorResponseBody
// @Security ApiKeyAuth
// @Router /admin/appointments [get]
func (h *Handler) getAppointments(c *gin.Context) {
	var filter domain.AppointmentFilter

	if date := c.Query("date"); date != "" {
		filter.Date = &date
	}
	if start := c.Query("start_date"); start != "" {
		filter.StartDate = &start
	}
	if end := c.Query("end_date"); end != "" {
		filter.EndDate = &end
	}
	if s := c.Query("status"); s != "" {
		status := domain.AppointmentStatus(s)
		if !status.IsValid() {
			badRequestResponse(c, "неизвестный статус")
			return
		}
		filter.Status = &status
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil || limit <= 0 {
		limit = 50
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}
	filter.Limit = limit
	filter.Offset = offset

	appointments, total, err := h.services.Booking.List(c.Request.Context(), filter)
	if err != nil {
		h.serviceErrorResponse(c, err, "ошибка получения записей")
		return
	}

	paginatedSuccessResponse(c, appointments, total, offset/limit+1, limit)
}

// @Summary Запись по ID
// @Tags Записи
// @Produce json
// @Param id path int true "ID записи"
// @Success 200 {object} domain.Appointment
// @Failure 404 {object} errorResponseBody
// @Security ApiKeyAuth
// @Router /admin/appointments/{id} [get]
func (h *Handler) getAppointmentByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	appointment, err := h.services.Booking.GetByID(c.Request.Context(), id)
	if err != nil {
		h.serviceErrorResponse(c, err, "ошибка получения записи")
		return
	}

	successResponse(c, http.StatusOK, appointment)
}

// @Summary Сменить статус записи
// @Description pending -> confirmed/finished/cancelled, confirmed -> finished/cancelled, finished -> confirmed
// @Tags Записи
// @Accept json
// @Produce json
// @Param id path int true "ID записи"
// @Param input body domain.UpdateStatusDTO true "Новый статус"
// @Success 200 {object} domain.Appointment
// @Failure 400 {object} errorResponseBody
// @Failure 404 {object} errorResponseBody
// @Failure 409 {object} errorResponseBody "Недопустимая смена статуса"
// @Security ApiKeyAuth
// @Router /admin/appointments/{id}/status [patch]
func (h *Handler) updateAppointmentStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input domain.UpdateStatusDTO
	if !h.bindJSON(c, &input) {
		return
	}

	appointment, err := h.services.Booking.UpdateStatus(c.Request.Context(), id, input)
	if err != nil {
		h.serviceErrorResponse(c, err, "ошибка смены статуса записи")
		return
	}

	successResponse(c, http.StatusOK, appointment)
}

// @Summary Изменить услуги записи
// @Description Пересчитывает цену, описание и длительность по услугам и дополнительным позициям
// @Tags Записи
// @Accept json
// @Produce json
// @Param id path int true "ID записи"
// @Param input body domain.UpdateItemsDTO true "Услуги и дополнительные позиции"
// @Success 200 {object} domain.Appointment
// @Failure 400 {object} errorResponseBody
// @Failure 404 {object} errorResponseBody
// @Security ApiKeyAuth
// @Router /admin/appointments/{id}/items [put]
func (h *Handler) updateAppointmentItems(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input domain.UpdateItemsDTO
	if !h.bindJSON(c, &input) {
		return
	}

	appointment, err := h.services.Booking.UpdateItems(c.Request.Context(), id, input)
	if err != nil {
		h.serviceErrorResponse(c, err, "ошибка изменения услуг записи")
		return
	}

	successResponse(c, http.StatusOK, appointment)
}

// @Summary Удалить запись
// @Tags Записи
// @Param id path int true "ID записи"
// @Success 204
// @Failure 404 {object} errorResponseBody
// @Security ApiKeyAuth
// @Router /admin/appointments/{id} [delete]
func (h *Handler) deleteAppointment(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.services.Booking.Delete(c.Request.Context(), id); err != nil {
		h.serviceErrorResponse(c, err, "ошибка удаления записи")
		return
	}

	noContentResponse(c)
}

// @Summary Статистика выручки
// @Description Выручка за сегодня, за месяц и за все время без учета отмененных записей
// @Tags Записи
// @Produce json
// @Success 200 {object} domain.AppointmentStats
// @Security ApiKeyAuth
// @Router /admin/appointments/stats [get]
func (h *Handler) getAppointmentStats(c *gin.Context) {
	stats, err := h.services.Booking.Stats(c.Request.Context())
	if err != nil {
		h.serviceErrorResponse(c, err, "ошибка получения статистики")
		return
	}

	successResponse(c, http.StatusOK, stats)
}

// @Summary Ссылка WhatsApp для связи с клиентом
// @Tags Записи
// @Produce json
// @Param id path int true "ID записи"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errorResponseBody
// @Security ApiKeyAuth
// @Router /admin/appointments/{id}/contact-link [get]
func (h *Handler) getContactLink(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	link, err := h.services.Booking.ContactLink(c.Request.Context(), id)
	if err != nil {
		h.serviceErrorResponse(c, err, "ошибка формирования ссылки")
		return
	}

	successResponse(c, http.StatusOK, gin.H{"url": link})
}

// @Summary Выгрузка записей в Excel
// @Tags Записи
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param from query string true "Начало периода YYYY-MM-DD"
// @Param to query string true "Конец периода YYYY-MM-DD"
// @Success 200 {file} file
// @Failure 400 {object} errorResponseBody
// @Security ApiKeyAuth
// @Router /admin/appointments/export [get]
func (h *Handler) exportAppointments(c *gin.Context) {
	from, to := c.Query("from"), c.Query("to")
	if from == "" || to == "" {
		badRequestResponse(c, "необходимо указать период")
		return
	}

	var buf bytes.Buffer
	if err := h.services.Booking.Export(c.Request.Context(), &buf, from, to); err != nil {
		h.serviceErrorResponse(c, err, "ошибка выгрузки записей")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="agendamentos_%s_%s.xlsx"`, from, to))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
