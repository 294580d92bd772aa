package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/Zigvert/go-shareit/internal/domain/booking"
	"github.com/Zigvert/go-shareit/internal/domain/comment"
	"github.com/Zigvert/go-shareit/internal/domain/item"
	"github.com/Zigvert/go-shareit/internal/domain/user"
	"github.com/Zigvert/go-shareit/internal/pkg/logger"
)

// ErrorResponse はエラーレスポンスの統一フォーマット
type ErrorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code,omitempty"`
}

// StatusFromError はドメインエラーをHTTPステータスに対応付ける
// 分類は「存在しない → 404」「関係を持たない → 403」「入力・規則違反 → 400」
// メール重複のみ 409 とする
func StatusFromError(err error) int {
	switch {
	case errors.Is(err, user.ErrUserNotFound),
		errors.Is(err, item.ErrItemNotFound),
		errors.Is(err, booking.ErrBookingNotFound):
		return http.StatusNotFound
	case errors.Is(err, booking.ErrOwnItemBooking),
		errors.Is(err, booking.ErrNotItemOwner),
		errors.Is(err, booking.ErrNotBookerOrOwner):
		return http.StatusForbidden
	case errors.Is(err, user.ErrEmailAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, user.ErrNameRequired),
		errors.Is(err, user.ErrEmailRequired),
		errors.Is(err, item.ErrItemNotAvailable),
		errors.Is(err, item.ErrOwnerRequired),
		errors.Is(err, item.ErrNameRequired),
		errors.Is(err, item.ErrDescriptionRequired),
		errors.Is(err, booking.ErrInvalidPeriod),
		errors.Is(err, booking.ErrPeriodOverlap),
		errors.Is(err, booking.ErrAlreadyProcessed),
		errors.Is(err, booking.ErrUnknownState),
		errors.Is(err, booking.ErrInvalidPagination),
		errors.Is(err, comment.ErrTextRequired),
		errors.Is(err, comment.ErrBookingNotCompleted):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// CustomHTTPErrorHandler はカスタムエラーハンドラー
// ハンドラーはサービスのエラーをそのまま返し、ここで一括してステータスに変換する
func CustomHTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var (
		code    int
		message string
	)

	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if m, ok := he.Message.(string); ok {
			message = m
		} else {
			message = http.StatusText(code)
		}
	} else {
		code = StatusFromError(err)
		if code == http.StatusInternalServerError {
			message = "内部サーバーエラー"
		} else {
			message = err.Error()
		}
	}

	// 5xx のみエラーログを出力
	if code >= 500 {
		logger.Error("サーバーエラー",
			zap.Int("status", code),
			zap.String("path", c.Request().URL.Path),
			zap.Error(err),
		)
	}

	if err := c.JSON(code, ErrorResponse{Error: message, Code: code}); err != nil {
		logger.Error("エラーレスポンス送信失敗", zap.Error(err))
	}
}
