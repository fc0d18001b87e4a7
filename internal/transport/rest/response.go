package rest

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"barbershop/internal/availability"
	"barbershop/internal/domain"
)

type errorResponseBody struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Code    int    `json:"code,omitempty"`
}

type successResponseBody struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type messageResponseType struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type paginatedResponse struct {
	Data       interface{} `json:"data"`
	TotalCount int         `json:"total_count"`
	Page       int         `json:"page"`
	PageSize   int         `json:"page_size"`
	TotalPages int         `json:"total_pages"`
}

func successResponse(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, successResponseBody{
		Status: "success",
		Data:   data,
	})
}

func errorResponse(c *gin.Context, statusCode int, message string) {
	c.AbortWithStatusJSON(statusCode, errorResponseBody{
		Status:  "error",
		Message: message,
		Code:    statusCode,
	})
}

func messageResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, messageResponseType{
		Status:  "success",
		Message: message,
	})
}

func paginatedSuccessResponse(c *gin.Context, data interface{}, totalCount, page, pageSize int) {
	totalPages := 0
	if pageSize > 0 {
		totalPages = totalCount / pageSize
		if totalCount%pageSize > 0 {
			totalPages++
		}
	}

	c.JSON(http.StatusOK, paginatedResponse{
		Data:       data,
		TotalCount: totalCount,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	})
}

func createdResponse(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, successResponseBody{
		Status: "success",
		Data:   data,
	})
}

func noContentResponse(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

func badRequestResponse(c *gin.Context, message string) {
	errorResponse(c, http.StatusBadRequest, message)
}

func unauthorizedResponse(c *gin.Context) {
	errorResponse(c, http.StatusUnauthorized, "требуется авторизация")
}

func forbiddenResponse(c *gin.Context, message ...string) {
	msg := "доступ запрещен"
	if len(message) > 0 && message[0] != "" {
		msg = message[0]
	}
	errorResponse(c, http.StatusForbidden, msg)
}

func internalServerErrorResponse(c *gin.Context) {
	errorResponse(c, http.StatusInternalServerError, "внутренняя ошибка сервера")
}

// bindJSON decodes the request body into dst and answers 400 when it does not
// validate. A non-empty message replaces the generated one.
func (h *Handler) bindJSON(c *gin.Context, dst interface{}, message ...string) bool {
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return true
	}

	h.logger.Warn("неверный формат данных", zap.String("path", c.FullPath()), zap.Error(err))
	if len(message) > 0 && message[0] != "" {
		badRequestResponse(c, message[0])
		return false
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		badRequestResponse(c, "неверный формат данных")
		return false
	}

	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fmt.Sprintf("%s (%s)", strings.ToLower(fe.Field()), fe.Tag()))
	}
	badRequestResponse(c, "неверные поля: "+strings.Join(fields, ", "))
	return false
}

// serviceErrorResponse maps service errors onto HTTP statuses. Messages of
// client errors are passed through; server errors are logged and hidden.
func (h *Handler) serviceErrorResponse(c *gin.Context, err error, logMessage string) {
	var (
		parseErr  *availability.ParseError
		configErr *availability.ConfigError
	)

	switch {
	case errors.Is(err, availability.ErrNoServices), errors.Is(err, domain.ErrValidation):
		badRequestResponse(c, err.Error())
	case errors.Is(err, domain.ErrInvalidCredentials):
		errorResponse(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		forbiddenResponse(c, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		errorResponse(c, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrSlotUnavailable),
		errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, domain.ErrAlreadyExists):
		errorResponse(c, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrStorageDisabled):
		errorResponse(c, http.StatusServiceUnavailable, err.Error())
	case errors.As(err, &parseErr), errors.As(err, &configErr):
		h.logger.Error(logMessage, zap.String("path", c.FullPath()), zap.Error(err))
		errorResponse(c, http.StatusInternalServerError, "ошибка конфигурации расписания")
	default:
		h.logger.Error(logMessage, zap.String("path", c.FullPath()), zap.Error(err))
		internalServerErrorResponse(c)
	}
}
