package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Zigvert/go-shareit/internal/application"
	"github.com/Zigvert/go-shareit/internal/domain/booking"
)

type BookingHandler struct {
	service BookingServiceInterface
}

func NewBookingHandler(s BookingServiceInterface) *BookingHandler {
	return &BookingHandler{service: s}
}

type CreateBookingRequest struct {
	ItemID string    `json:"item_id" validate:"required" example:"550e8400-e29b-41d4-a716-446655440000"`
	Start  time.Time `json:"start" example:"2024-06-02T10:00:00Z"`
	End    time.Time `json:"end" example:"2024-06-03T10:00:00Z"`
}

type BookingResponse struct {
	ID        string    `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	ItemID    string    `json:"item_id" example:"550e8400-e29b-41d4-a716-446655440000"`
	BookerID  string    `json:"booker_id" example:"user-123"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Status    string    `json:"status" example:"pending"`
	CreatedAt time.Time `json:"created_at"`
}

func toBookingResponse(b *booking.Booking) BookingResponse {
	return BookingResponse{
		ID: b.ID, ItemID: b.ItemID, BookerID: b.BookerID,
		Start: b.Start, End: b.End, Status: string(b.Status),
		CreatedAt: b.CreatedAt,
	}
}

// Create godoc
// @Summary 予約を作成
// @Description アイテムを指定期間で予約します（pending で作成され、所有者の承認待ちになります）
// @Tags bookings
// @Accept json
// @Produce json
// @Param X-Sharer-User-Id header string true "利用者ID"
// @Param request body CreateBookingRequest true "予約情報"
// @Success 201 {object} BookingResponse
// @Failure 400 {object} api.ErrorResponse
// @Failure 403 {object} api.ErrorResponse
// @Failure 404 {object} api.ErrorResponse
// @Router /bookings [post]
func (h *BookingHandler) Create(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	var req CreateBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	b, err := h.service.CreateBooking(c.Request().Context(), application.CreateBookingInput{
		BookerID: userID, ItemID: req.ItemID, Start: req.Start, End: req.End,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toBookingResponse(b))
}

// Resolve godoc
// @Summary 予約を承認または却下
// @Description アイテム所有者が pending の予約を処理します
// @Tags bookings
// @Produce json
// @Param X-Sharer-User-Id header string true "利用者ID"
// @Param id path string true "予約ID"
// @Param approved query bool true "承認なら true、却下なら false"
// @Success 200 {object} BookingResponse
// @Failure 400 {object} api.ErrorResponse
// @Failure 403 {object} api.ErrorResponse
// @Failure 404 {object} api.ErrorResponse
// @Router /bookings/{id} [patch]
func (h *BookingHandler) Resolve(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	approved, err := strconv.ParseBool(c.QueryParam("approved"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "approved は true か false を指定してください")
	}
	b, err := h.service.ResolveBooking(c.Request().Context(), userID, c.Param("id"), approved)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toBookingResponse(b))
}

// GetByID godoc
// @Summary 予約を取得
// @Description 予約者本人またはアイテム所有者のみが参照できます
// @Tags bookings
// @Produce json
// @Param X-Sharer-User-Id header string true "利用者ID"
// @Param id path string true "予約ID"
// @Success 200 {object} BookingResponse
// @Failure 403 {object} api.ErrorResponse
// @Failure 404 {object} api.ErrorResponse
// @Router /bookings/{id} [get]
func (h *BookingHandler) GetByID(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	b, err := h.service.GetBooking(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toBookingResponse(b))
}

// ListByBooker godoc
// @Summary 自分が行った予約の一覧
// @Description 状態で絞り込んだ予約一覧を開始時刻の降順で返します
// @Tags bookings
// @Produce json
// @Param X-Sharer-User-Id header string true "利用者ID"
// @Param state query string false "ALL/CURRENT/PAST/FUTURE/PENDING/REJECTED" default(ALL)
// @Param from query int false "スキップ件数" default(0)
// @Param size query int false "取得件数" default(10)
// @Success 200 {array} BookingResponse
// @Failure 400 {object} api.ErrorResponse
// @Failure 404 {object} api.ErrorResponse
// @Router /bookings [get]
func (h *BookingHandler) ListByBooker(c echo.Context) error {
	return h.list(c, booking.ViewpointBooker)
}

// ListByOwner godoc
// @Summary 自分のアイテムへの予約の一覧
// @Description 所有アイテムに対する予約一覧を開始時刻の降順で返します
// @Tags bookings
// @Produce json
// @Param X-Sharer-User-Id header string true "利用者ID"
// @Param state query string false "ALL/CURRENT/PAST/FUTURE/PENDING/REJECTED" default(ALL)
// @Param from query int false "スキップ件数" default(0)
// @Param size query int false "取得件数" default(10)
// @Success 200 {array} BookingResponse
// @Failure 400 {object} api.ErrorResponse
// @Failure 404 {object} api.ErrorResponse
// @Router /bookings/owner [get]
func (h *BookingHandler) ListByOwner(c echo.Context) error {
	return h.list(c, booking.ViewpointOwner)
}

// list は両視点で共通の一覧処理
// state/from/size の既定値は ALL/0/10
func (h *BookingHandler) list(c echo.Context, viewpoint booking.Viewpoint) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	from, err := intQueryParam(c, "from", 0)
	if err != nil {
		return err
	}
	size, err := intQueryParam(c, "size", 10)
	if err != nil {
		return err
	}
	bookings, err := h.service.ListBookings(c.Request().Context(), application.ListBookingsInput{
		UserID:    userID,
		Viewpoint: viewpoint,
		State:     c.QueryParam("state"),
		From:      from,
		Size:      size,
	})
	if err != nil {
		return err
	}
	resp := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		resp[i] = toBookingResponse(b)
	}
	return c.JSON(http.StatusOK, resp)
}

func intQueryParam(c echo.Context, name string, defaultValue int) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, name+" は整数を指定してください")
	}
	return v, nil
}
