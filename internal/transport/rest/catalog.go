package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"barbershop/internal/domain"
)

// @Summary Все услуги
// @Description Включая неактивные
// @Tags Услуги
// @Produce json
// @Success 200 {array} domain.Service
// @Security ApiKeyAuth
// @Router /admin/services [get]
func (h *Handler) getAllServices(c *gin.Context) {
	services, err := h.services.Catalog.ListAll(c.Request.Context())
	if err != nil {
		h.serviceErrorResponse(c, err, "ошибка получения списка услуг")
		return
	}

	successResponse(c, http.StatusOK, services)
}

// @Summary Услуга по ID
// @Tags Услуги
// @Produce json
// @Param id path int true "ID услуги"
// @Success 200 {object} domain.Service
// @Failure 404 {object} errorResponseBody
// @Security ApiKeyAuth
// @Router /admin/services/{id} [get]
func (h *Handler) getServiceByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	svc, err := h.services.Catalog.GetByID(c.Request.Context(), id)
	if err != nil {
		h.serviceErrorResponse(c, err, "ошибка получения услуги")
		return
	}

	successResponse(c, http.StatusOK, svc)
}

// @Summary Создать услугу
// @Tags Услуги
// @Accept json
// @Produce json
// @Param input body domain.CreateServiceDTO true "Услуга"
// @Success 201 {object} map[string]int64
// @Failure 400 {object} errorResponseBody
// @Security ApiKeyAuth
// @Router /admin/services [post]
func (h *Handler) createService(c *gin.Context) {
	var input domain.CreateServiceDTO
	if !h.bindJSON(c, &input) {
		return
	}

	id, err := h.services.Catalog.Create(c.Request.Context(), input)
	if err != nil {
		h.serviceErrorResponse(c, err, "ошибка создания услуги")
		return
	}

	createdResponse(c, gin.H{"id": id})
}

// @Summary Изменить услугу
// @Tags Услуги
// @Accept json
// @Produce json
// @Param id path int true "ID услуги"
// @Param input body domain.UpdateServiceDTO true "Изменения"
// @Success 200 {object} messageResponseType
// @Failure 400 {object} errorResponseBody
// @Failure 404 {object} errorResponseBody
// @Security ApiKeyAuth
// @Router /admin/services/{id} [put]
func (h *Handler) updateService(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input domain.UpdateServiceDTO
	if !h.bindJSON(c, &input) {
		return
	}

	if err := h.services.Catalog.Update(c.Request.Context(), id, input); err != nil {
		h.serviceErrorResponse(c, err, "ошибка обновления услуги")
		return
	}

	messageResponse(c, http.StatusOK, "услуга обновлена")
}

// @Summary Удалить услугу
// @Tags Услуги
// @Param id path int true "ID услуги"
// @Success 204
// @Failure 404 {object} errorResponseBody
// @Security ApiKeyAuth
// @Router /admin/services/{id} [delete]
func (h *Handler) deleteService(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.services.Catalog.Delete(c.Request.Context(), id); err != nil {
		h.serviceErrorResponse(c, err, "ошибка удаления услуги")
		return
	}

	noContentResponse(c)
}
