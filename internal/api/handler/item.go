package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Zigvert/go-shareit/internal/application"
	"github.com/Zigvert/go-shareit/internal/domain/booking"
	"github.com/Zigvert/go-shareit/internal/domain/comment"
	"github.com/Zigvert/go-shareit/internal/domain/item"
)

type ItemHandler struct {
	itemService    ItemServiceInterface
	commentService CommentServiceInterface
}

func NewItemHandler(is ItemServiceInterface, cs CommentServiceInterface) *ItemHandler {
	return &ItemHandler{itemService: is, commentService: cs}
}

type CreateItemRequest struct {
	Name        string `json:"name" validate:"required" example:"電動ドリル"`
	Description string `json:"description" validate:"required" example:"コード式の電動ドリル。ビット付き。"`
	Available   *bool  `json:"available" validate:"required" example:"true"`
}

type UpdateItemRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Available   *bool   `json:"available,omitempty"`
}

type ItemResponse struct {
	ID          string `json:"id"`
	OwnerID     string `json:"owner_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
}

// BookingShortResponse はアイテムビューに埋め込む予約の短縮表現
type BookingShortResponse struct {
	ID       string    `json:"id"`
	BookerID string    `json:"booker_id"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
}

type CommentResponse struct {
	ID         string    `json:"id"`
	AuthorName string    `json:"author_name"`
	Text       string    `json:"text"`
	CreatedAt  time.Time `json:"created_at"`
}

// ItemDetailResponse はコメントと予約射影つきのアイテム表現
// last_booking / next_booking は所有者が参照したときのみ埋まる
type ItemDetailResponse struct {
	ItemResponse
	Comments    []CommentResponse     `json:"comments"`
	LastBooking *BookingShortResponse `json:"last_booking,omitempty"`
	NextBooking *BookingShortResponse `json:"next_booking,omitempty"`
}

func toItemResponse(i *item.Item) ItemResponse {
	return ItemResponse{
		ID: i.ID, OwnerID: i.OwnerID, Name: i.Name,
		Description: i.Description, Available: i.Available,
	}
}

func toBookingShort(b *booking.Booking) *BookingShortResponse {
	if b == nil {
		return nil
	}
	return &BookingShortResponse{ID: b.ID, BookerID: b.BookerID, Start: b.Start, End: b.End}
}

func toCommentResponse(c *comment.Comment) CommentResponse {
	return CommentResponse{ID: c.ID, AuthorName: c.AuthorName, Text: c.Text, CreatedAt: c.CreatedAt}
}

func toItemDetailResponse(d *application.ItemDetail) ItemDetailResponse {
	comments := make([]CommentResponse, len(d.Comments))
	for i, c := range d.Comments {
		comments[i] = toCommentResponse(c)
	}
	return ItemDetailResponse{
		ItemResponse: toItemResponse(d.Item),
		Comments:     comments,
		LastBooking:  toBookingShort(d.LastBooking),
		NextBooking:  toBookingShort(d.NextBooking),
	}
}

// Create godoc
// @Summary アイテムを登録
// @Tags items
// @Accept json
// @Produce json
// @Param X-Sharer-User-Id header string true "利用者ID"
// @Param request body CreateItemRequest true "アイテム情報"
// @Success 201 {object} ItemResponse
// @Failure 400 {object} api.ErrorResponse
// @Failure 404 {object} api.ErrorResponse
// @Router /items [post]
func (h *ItemHandler) Create(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	var req CreateItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	it, err := h.itemService.CreateItem(c.Request().Context(), application.CreateItemInput{
		OwnerID: userID, Name: req.Name, Description: req.Description, Available: *req.Available,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toItemResponse(it))
}

// Update godoc
// @Summary アイテムを部分更新
// @Description 所有者のみが更新できます
// @Tags items
// @Accept json
// @Produce json
// @Param X-Sharer-User-Id header string true "利用者ID"
// @Param id path string true "アイテムID"
// @Param request body UpdateItemRequest true "更新内容"
// @Success 200 {object} ItemResponse
// @Failure 400 {object} api.ErrorResponse
// @Failure 404 {object} api.ErrorResponse
// @Router /items/{id} [patch]
func (h *ItemHandler) Update(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	var req UpdateItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	it, err := h.itemService.UpdateItem(c.Request().Context(), application.UpdateItemInput{
		ItemID:      c.Param("id"),
		ActorID:     userID,
		Name:        req.Name,
		Description: req.Description,
		Available:   req.Available,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toItemResponse(it))
}

// GetByID godoc
// @Summary アイテムを取得
// @Description コメント付きで返します。所有者には last/next の予約射影も付与されます
// @Tags items
// @Produce json
// @Param X-Sharer-User-Id header string true "利用者ID"
// @Param id path string true "アイテムID"
// @Success 200 {object} ItemDetailResponse
// @Failure 404 {object} api.ErrorResponse
// @Router /items/{id} [get]
func (h *ItemHandler) GetByID(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	detail, err := h.itemService.GetItem(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toItemDetailResponse(detail))
}

// List godoc
// @Summary 自分のアイテム一覧
// @Tags items
// @Produce json
// @Param X-Sharer-User-Id header string true "利用者ID"
// @Param from query int false "スキップ件数" default(0)
// @Param size query int false "取得件数" default(10)
// @Success 200 {array} ItemDetailResponse
// @Failure 404 {object} api.ErrorResponse
// @Router /items [get]
func (h *ItemHandler) List(c echo.Context) error {
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
	details, err := h.itemService.ListOwnItems(c.Request().Context(), userID, from, size)
	if err != nil {
		return err
	}
	resp := make([]ItemDetailResponse, len(details))
	for i, d := range details {
		resp[i] = toItemDetailResponse(d)
	}
	return c.JSON(http.StatusOK, resp)
}

// Search godoc
// @Summary アイテムを検索
// @Description 名前・説明の部分一致。貸し出し可能なもののみが対象
// @Tags items
// @Produce json
// @Param text query string true "検索文字列"
// @Param from query int false "スキップ件数" default(0)
// @Param size query int false "取得件数" default(10)
// @Success 200 {array} ItemResponse
// @Router /items/search [get]
func (h *ItemHandler) Search(c echo.Context) error {
	from, err := intQueryParam(c, "from", 0)
	if err != nil {
		return err
	}
	size, err := intQueryParam(c, "size", 10)
	if err != nil {
		return err
	}
	items, err := h.itemService.SearchItems(c.Request().Context(), c.QueryParam("text"), from, size)
	if err != nil {
		return err
	}
	resp := make([]ItemResponse, len(items))
	for i, it := range items {
		resp[i] = toItemResponse(it)
	}
	return c.JSON(http.StatusOK, resp)
}

type AddCommentRequest struct {
	Text string `json:"text" validate:"required" example:"とても使いやすかったです"`
}

// AddComment godoc
// @Summary アイテムにコメントを追加
// @Description 承認済みかつ終了済みの予約を持つ利用者のみがコメントできます
// @Tags items
// @Accept json
// @Produce json
// @Param X-Sharer-User-Id header string true "利用者ID"
// @Param id path string true "アイテムID"
// @Param request body AddCommentRequest true "コメント"
// @Success 201 {object} CommentResponse
// @Failure 400 {object} api.ErrorResponse
// @Failure 404 {object} api.ErrorResponse
// @Router /items/{id}/comment [post]
func (h *ItemHandler) AddComment(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	var req AddCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	cm, err := h.commentService.AddComment(c.Request().Context(), application.AddCommentInput{
		AuthorID: userID, ItemID: c.Param("id"), Text: req.Text,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toCommentResponse(cm))
}
