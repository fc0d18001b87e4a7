package rest

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"barbershop/internal/availability"
	"barbershop/internal/domain"
)

type availabilityResponse struct {
	Date       string              `json:"date"`
	ServiceIDs []int64             `json:"service_ids"`
	Slots      []availability.Slot `json:"slots"`
}

// @Summary Список услуг
// @Description Возвращает активные услуги в порядке отображения
// @Tags Публичное
// @Produce json
// @Success 200 {array} domain.Service
// @Failure 500 {object} errorResponseBody
// @Router /services [get]
func (h *Handler) getActiveServices(c *gin.Context) {
	services, err := h.services.Catalog.ListActive(c.Request.Context())
	if err != nil {
		h.serviceErrorResponse(c, err, "ошибка получения списка услуг")
		return
	}

	successResponse(c, http.StatusOK, services)
}

// @Summary Публичные настройки сайта
// @Description Название, интервал слотов, оформление и изображения
// @Tags Публичное
// @Produce json
// @Success 200 {object} domain.PublicSettings
// @Failure 500 {object} errorResponseBody
// @Router /settings/public [get]
func (h *Handler) getPublicSettings(c *gin.Context) {
	settings, err := h.services.Settings.Public(c.Request.Context())
	if err != nil {
		h.serviceErrorResponse(c, err, "ошибка получения настроек")
		return
	}

	successResponse(c, http.StatusOK, settings)
}

// @Summary Свободные слоты на дату
// @Description Возвращает сетку слотов дня с признаком доступности и причиной недоступности
// @Tags Публичное
// @Produce json
// @Param date query string true "Дата YYYY-MM-DD"
// @Param service_ids query string true "ID услуг через запятую"
// @Param available_only query bool false "Вернуть только свободные слоты"
// @Success 200 {object} availabilityResponse
// @Failure 400 {object} errorResponseBody
// @Failure 500 {object} errorResponseBody
// @Router /availability [get]
func (h *Handler) getAvailability(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		badRequestResponse(c, "необходимо указать дату")
		return
	}

	serviceIDs, err := parseIDList(c.QueryArray("service_ids"))
	if err != nil {
		badRequestResponse(c, err.Error())
		return
	}

	availableOnly, err := strconv.ParseBool(c.DefaultQuery("available_only", "false"))
	if err != nil {
		badRequestResponse(c, "некорректный параметр available_only")
		return
	}

	slots, err := h.services.Availability.GetSlots(c.Request.Context(), date, serviceIDs)
	if err != nil {
		h.serviceErrorResponse(c, err, "ошибка получения свободных слотов")
		return
	}
	if availableOnly {
		slots = availability.Available(slots)
	}

	successResponse(c, http.StatusOK, availabilityResponse{
		Date:       date,
		ServiceIDs: serviceIDs,
		Slots:      slots,
	})
}

// @Summary Календарь доступных дат
// @Description Для каждой даты диапазона сообщает, можно ли выбрать ее для записи
// @Tags Публичное
// @Produce json
// @Param from query string true "Начало диапазона YYYY-MM-DD"
// @Param to query string true "Конец диапазона YYYY-MM-DD"
// @Param service_ids query string true "ID услуг через запятую"
// @Success 200 {array} domain.CalendarDay
// @Failure 400 {object} errorResponseBody
// @Failure 500 {object} errorResponseBody
// @Router /availability/calendar [get]
func (h *Handler) getAvailabilityCalendar(c *gin.Context) {
	from, to := c.Query("from"), c.Query("to")
	if from == "" || to == "" {
		badRequestResponse(c, "необходимо указать диапазон дат")
		return
	}

	serviceIDs, err := parseIDList(c.QueryArray("service_ids"))
	if err != nil {
		badRequestResponse(c, err.Error())
		return
	}

	days, err := h.services.Availability.GetCalendar(c.Request.Context(), from, to, serviceIDs)
	if err != nil {
		h.serviceErrorResponse(c, err, "ошибка получения календаря")
		return
	}

	successResponse(c, http.StatusOK, days)
}

// @Summary Создать запись
// @Description Записывает клиента на выбранное время и возвращает ссылку WhatsApp для подтверждения
// @Tags Публичное
// @Accept json
// @Produce json
// @Param input body domain.CreateBookingDTO true "Данные записи"
// @Success 201 {object} domain.BookingResult
// @Failure 400 {object} errorResponseBody "Ошибка валидации"
// @Failure 409 {object} errorResponseBody "Время уже занято"
// @Failure 429 {object} errorResponseBody "Слишком много запросов"
// @Failure 500 {object} errorResponseBody
// @Router /bookings [post]
func (h *Handler) createBooking(c *gin.Context) {
	var input domain.CreateBookingDTO
	if !h.bindJSON(c, &input) {
		return
	}

	result, err := h.services.Booking.Book(c.Request.Context(), input)
	if err != nil {
		h.serviceErrorResponse(c, err, "ошибка создания записи")
		return
	}

	createdResponse(c, result)
}
