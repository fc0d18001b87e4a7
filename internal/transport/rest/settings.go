package rest

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"barbershop/internal/domain"
)

// @Summary Все настройки
// @Tags Настройки
// @Produce json
// @Success 200 {object} map[string]string
// @Security ApiKeyAuth
// @Router /admin/settings [get]
func (h *Handler) getAllSettings(c *gin.Context) {
	settings, err := h.services.Settings.All(c.Request.Context())
	if err != nil {
		h.serviceErrorResponse(c, err, "ошибка получения настроек")
		return
	}

	successResponse(c, http.StatusOK, settings)
}

// @Summary Название барбершопа
// @Tags Настройки
// @Accept json
// @Produce json
// @Param input body domain.UpdateBusinessNameDTO true "Название"
// @Success 200 {object} messageResponseType
// @Failure 400 {object} errorResponseBody
// @Security ApiKeyAuth
// @Router /admin/settings/business-name [put]
func (h *Handler) updateBusinessName(c *gin.Context) {
	var input domain.UpdateBusinessNameDTO
	if !h.bindJSON(c, &input) {
		return
	}

	if err := h.services.Settings.UpdateBusinessName(c.Request.Context(), input); err != nil {
		h.serviceErrorResponse(c, err, "ошибка обновления названия")
		return
	}

	messageResponse(c, http.StatusOK, "название обновлено")
}

// @Summary Интервал между слотами
// @Tags Настройки
// @Accept json
// @Produce json
// @Param input body domain.UpdateSlotIntervalDTO true "Интервал в минутах, 5..240"
// @Success 200 {object} messageResponseType
// @Failure 400 {object} errorResponseBody
// @Security ApiKeyAuth
// @Router /admin/settings/slot-interval [put]
func (h *Handler) updateSlotInterval(c *gin.Context) {
	var input domain.UpdateSlotIntervalDTO
	if !h.bindJSON(c, &input, "интервал должен быть от 5 до 240 минут") {
		return
	}

	if err := h.services.Settings.UpdateSlotInterval(c.Request.Context(), input); err != nil {
		h.serviceErrorResponse(c, err, "ошибка обновления интервала")
		return
	}

	messageResponse(c, http.StatusOK, "интервал обновлен")
}

// @Summary Оформление сайта
// @Description Цвета в формате #rrggbb, шрифт и стиль заголовков
// @Tags Настройки
// @Accept json
// @Produce json
// @Param input body domain.UpdateAppearanceDTO true "Оформление"
// @Success 200 {object} messageResponseType
// @Failure 400 {object} errorResponseBody
// @Security ApiKeyAuth
// @Router /admin/settings/appearance [put]
func (h *Handler) updateAppearance(c *gin.Context) {
	var input domain.UpdateAppearanceDTO
	if !h.bindJSON(c, &input) {
		return
	}

	if err := h.services.Settings.UpdateAppearance(c.Request.Context(), input); err != nil {
		h.serviceErrorResponse(c, err, "ошибка обновления оформления")
		return
	}

	messageResponse(c, http.StatusOK, "оформление обновлено")
}

// @Summary Загрузить логотип или фон
// @Tags Настройки
// @Accept multipart/form-data
// @Produce json
// @Param kind path string true "Тип изображения" Enums(logo, background)
// @Param file formData file true "Изображение"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errorResponseBody
// @Failure 503 {object} errorResponseBody "Хранилище не настроено"
// @Security ApiKeyAuth
// @Router /admin/settings/images/{kind} [post]
func (h *Handler) uploadImage(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		badRequestResponse(c, "файл не передан")
		return
	}

	file, err := header.Open()
	if err != nil {
		h.logger.Error("ошибка открытия загруженного файла", zap.Error(err))
		internalServerErrorResponse(c)
		return
	}
	defer file.Close()

	// One byte over the limit is enough for storage to reject the file.
	maxBytes := int64(h.config.S3.MaxUploadMB) << 20
	data, err := io.ReadAll(io.LimitReader(file, maxBytes+1))
	if err != nil {
		h.logger.Error("ошибка чтения загруженного файла", zap.Error(err))
		internalServerErrorResponse(c)
		return
	}

	url, err := h.services.Settings.UploadImage(c.Request.Context(), domain.ImageKind(c.Param("kind")), data, header.Filename)
	if err != nil {
		h.serviceErrorResponse(c, err, "ошибка загрузки изображения")
		return
	}

	successResponse(c, http.StatusOK, gin.H{"url": url})
}

// @Summary Удалить логотип или фон
// @Tags Настройки
// @Param kind path string true "Тип изображения" Enums(logo, background)
// @Success 204
// @Failure 400 {object} errorResponseBody
// @Security ApiKeyAuth
// @Router /admin/settings/images/{kind} [delete]
func (h *Handler) deleteImage(c *gin.Context) {
	if err := h.services.Settings.ClearImage(c.Request.Context(), domain.ImageKind(c.Param("kind"))); err != nil {
		h.serviceErrorResponse(c, err, "ошибка удаления изображения")
		return
	}

	noContentResponse(c)
}
