package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"barbershop/internal/domain"
)

// @Summary Администраторы
// @Tags Команда
// @Produce json
// @Success 200 {array} domain.User
// @Failure 403 {object} errorResponseBody
// @Security ApiKeyAuth
// @Router /admin/team [get]
func (h *Handler) getTeam(c *gin.Context) {
	users, err := h.services.Team.List(c.Request.Context())
	if err != nil {
		h.serviceErrorResponse(c, err, "ошибка получения списка администраторов")
		return
	}

	successResponse(c, http.StatusOK, users)
}

// @Summary Добавить администратора
// @Tags Команда
// @Accept json
// @Produce json
// @Param input body domain.CreateAdminDTO true "Email и пароль"
// @Success 201 {object} map[string]int64
// @Failure 400 {object} errorResponseBody
// @Failure 409 {object} errorResponseBody "Email уже используется"
// @Security ApiKeyAuth
// @Router /admin/team [post]
func (h *Handler) createAdmin(c *gin.Context) {
	var input domain.CreateAdminDTO
	if !h.bindJSON(c, &input) {
		return
	}

	id, err := h.services.Team.CreateAdmin(c.Request.Context(), input)
	if err != nil {
		h.serviceErrorResponse(c, err, "ошибка создания администратора")
		return
	}

	createdResponse(c, gin.H{"id": id})
}

// @Summary Сменить пароль администратора
// @Description Завершает все сессии администратора
// @Tags Команда
// @Accept json
// @Produce json
// @Param id path int true "ID администратора"
// @Param input body domain.UpdatePasswordDTO true "Новый пароль"
// @Success 200 {object} messageResponseType
// @Failure 400 {object} errorResponseBody
// @Failure 404 {object} errorResponseBody
// @Security ApiKeyAuth
// @Router /admin/team/{id}/password [put]
func (h *Handler) updateAdminPassword(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input domain.UpdatePasswordDTO
	if !h.bindJSON(c, &input, "пароль должен содержать не менее 6 символов") {
		return
	}

	if err := h.services.Team.UpdatePassword(c.Request.Context(), id, input); err != nil {
		h.serviceErrorResponse(c, err, "ошибка смены пароля")
		return
	}

	messageResponse(c, http.StatusOK, "пароль обновлен")
}

// @Summary Удалить администратора
// @Tags Команда
// @Param id path int true "ID администратора"
// @Success 204
// @Failure 403 {object} errorResponseBody "Нельзя удалить себя или главного администратора"
// @Failure 404 {object} errorResponseBody
// @Security ApiKeyAuth
// @Router /admin/team/{id} [delete]
func (h *Handler) deleteAdmin(c *gin.Context) {
	actorID, err := getUserID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.services.Team.Delete(c.Request.Context(), actorID, id); err != nil {
		h.serviceErrorResponse(c, err, "ошибка удаления администратора")
		return
	}

	noContentResponse(c)
}
