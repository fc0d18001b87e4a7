package rest

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"barbershop/internal/domain"
)

// @Summary Расписание по дням недели
// @Tags Расписание
// @Produce json
// @Success 200 {array} domain.DaySchedule
// @Security ApiKeyAuth
// @Router /admin/schedule [get]
func (h *Handler) getScheduleDays(c *gin.Context) {
	days, err := h.services.Schedule.ListDays(c.Request.Context())
	if err != nil {
		h.serviceErrorResponse(c, err, "ошибка получения расписания")
		return
	}

	successResponse(c, http.StatusOK, days)
}

// @Summary Изменить расписание дня недели
// @Description Часы работы и перерыв; день 0 - воскресенье
// @Tags Расписание
// @Accept json
// @Produce json
// @Param weekday path int true "День недели 0..6"
// @Param input body domain.UpdateDayScheduleDTO true "Изменения"
// @Success 200 {object} domain.DaySchedule
// @Failure 400 {object} errorResponseBody
// @Security ApiKeyAuth
// @Router /admin/schedule/{weekday} [put]
func (h *Handler) updateScheduleDay(c *gin.Context) {
	weekday, err := strconv.Atoi(c.Param("weekday"))
	if err != nil || weekday < 0 || weekday > 6 {
		badRequestResponse(c, "день недели должен быть от 0 до 6")
		return
	}

	var input domain.UpdateDayScheduleDTO
	if !h.bindJSON(c, &input) {
		return
	}

	day, err := h.services.Schedule.UpdateDay(c.Request.Context(), weekday, input)
	if err != nil {
		h.serviceErrorResponse(c, err, "ошибка обновления расписания")
		return
	}

	successResponse(c, http.StatusOK, day)
}

// @Summary Заблокированные даты и время
// @Tags Расписание
// @Produce json
// @Param from query string false "С даты YYYY-MM-DD, по умолчанию сегодня"
// @Success 200 {array} domain.BlockedSlot
// @Security ApiKeyAuth
// @Router /admin/blocked-slots [get]
func (h *Handler) getBlockedSlots(c *gin.Context) {
	blocks, err := h.services.Schedule.ListBlocks(c.Request.Context(), c.Query("from"))
	if err != nil {
		h.serviceErrorResponse(c, err, "ошибка получения блокировок")
		return
	}

	successResponse(c, http.StatusOK, blocks)
}

// @Summary Заблокировать день или время
// @Tags Расписание
// @Accept json
// @Produce json
// @Param input body domain.CreateBlockedSlotDTO true "Блокировка"
// @Success 201 {object} map[string]int64
// @Failure 400 {object} errorResponseBody
// @Security ApiKeyAuth
// @Router /admin/blocked-slots [post]
func (h *Handler) createBlockedSlot(c *gin.Context) {
	var input domain.CreateBlockedSlotDTO
	if !h.bindJSON(c, &input) {
		return
	}

	id, err := h.services.Schedule.CreateBlock(c.Request.Context(), input)
	if err != nil {
		h.serviceErrorResponse(c, err, "ошибка создания блокировки")
		return
	}

	createdResponse(c, gin.H{"id": id})
}

// @Summary Снять блокировку
// @Tags Расписание
// @Param id path int true "ID блокировки"
// @Success 204
// @Failure 404 {object} errorResponseBody
// @Security ApiKeyAuth
// @Router /admin/blocked-slots/{id} [delete]
func (h *Handler) deleteBlockedSlot(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.services.Schedule.DeleteBlock(c.Request.Context(), id); err != nil {
		h.serviceErrorResponse(c, err, "ошибка удаления блокировки")
		return
	}

	noContentResponse(c)
}
