package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Zigvert/go-shareit/internal/application"
	"github.com/Zigvert/go-shareit/internal/domain/booking"
	"github.com/Zigvert/go-shareit/internal/domain/comment"
	"github.com/Zigvert/go-shareit/internal/domain/item"
)

// MockItemService はItemServiceInterfaceのモック
type MockItemService struct {
	mock.Mock
}

func (m *MockItemService) CreateItem(ctx context.Context, input application.CreateItemInput) (*item.Item, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*item.Item), args.Error(1)
}

func (m *MockItemService) UpdateItem(ctx context.Context, input application.UpdateItemInput) (*item.Item, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*item.Item), args.Error(1)
}

func (m *MockItemService) GetItem(ctx context.Context, actorID, itemID string) (*application.ItemDetail, error) {
	args := m.Called(ctx, actorID, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*application.ItemDetail), args.Error(1)
}

func (m *MockItemService) ListOwnItems(ctx context.Context, ownerID string, from, size int) ([]*application.ItemDetail, error) {
	args := m.Called(ctx, ownerID, from, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*application.ItemDetail), args.Error(1)
}

func (m *MockItemService) SearchItems(ctx context.Context, text string, from, size int) ([]*item.Item, error) {
	args := m.Called(ctx, text, from, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*item.Item), args.Error(1)
}

// MockCommentService はCommentServiceInterfaceのモック
type MockCommentService struct {
	mock.Mock
}

func (m *MockCommentService) AddComment(ctx context.Context, input application.AddCommentInput) (*comment.Comment, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*comment.Comment), args.Error(1)
}

func sampleItem() *item.Item {
	return &item.Item{
		ID:          "item-123",
		OwnerID:     "owner-123",
		Name:        "電動ドリル",
		Description: "コード式の電動ドリル",
		Available:   true,
	}
}

func TestItemHandler_Create(t *testing.T) {
	e := NewTestEcho()

	t.Run("正常にアイテムを登録できる", func(t *testing.T) {
		mockItems := new(MockItemService)
		mockItems.On("CreateItem", mock.Anything, application.CreateItemInput{
			OwnerID: "owner-123", Name: "電動ドリル", Description: "コード式の電動ドリル", Available: true,
		}).Return(sampleItem(), nil)
		handler := NewItemHandler(mockItems, new(MockCommentService))

		reqBody := `{"name": "電動ドリル", "description": "コード式の電動ドリル", "available": true}`
		req := httptest.NewRequest(http.MethodPost, "/items", strings.NewReader(reqBody))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		req.Header.Set(UserIDHeader, "owner-123")
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := handler.Create(c)

		require.NoError(t, err)
		assert.Equal(t, http.StatusCreated, rec.Code)

		var resp ItemResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "item-123", resp.ID)
		mockItems.AssertExpectations(t)
	})

	t.Run("availableがないと400", func(t *testing.T) {
		mockItems := new(MockItemService)
		handler := NewItemHandler(mockItems, new(MockCommentService))

		reqBody := `{"name": "電動ドリル", "description": "説明"}`
		req := httptest.NewRequest(http.MethodPost, "/items", strings.NewReader(reqBody))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		req.Header.Set(UserIDHeader, "owner-123")
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := handler.Create(c)

		require.Error(t, err)
		var he *echo.HTTPError
		require.ErrorAs(t, err, &he)
		assert.Equal(t, http.StatusBadRequest, he.Code)
		mockItems.AssertNotCalled(t, "CreateItem")
	})

	t.Run("available=falseは有効な入力", func(t *testing.T) {
		mockItems := new(MockItemService)
		unavailable := sampleItem()
		unavailable.Available = false
		mockItems.On("CreateItem", mock.Anything, application.CreateItemInput{
			OwnerID: "owner-123", Name: "電動ドリル", Description: "説明", Available: false,
		}).Return(unavailable, nil)
		handler := NewItemHandler(mockItems, new(MockCommentService))

		reqBody := `{"name": "電動ドリル", "description": "説明", "available": false}`
		req := httptest.NewRequest(http.MethodPost, "/items", strings.NewReader(reqBody))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		req.Header.Set(UserIDHeader, "owner-123")
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := handler.Create(c)

		require.NoError(t, err)
		assert.Equal(t, http.StatusCreated, rec.Code)
		mockItems.AssertExpectations(t)
	})
}

func TestItemHandler_Update(t *testing.T) {
	e := NewTestEcho()

	t.Run("部分更新できる", func(t *testing.T) {
		mockItems := new(MockItemService)
		updated := sampleItem()
		updated.Name = "充電式ドリル"
		mockItems.On("UpdateItem", mock.Anything, mock.AnythingOfType("application.UpdateItemInput")).
			Return(updated, nil)
		handler := NewItemHandler(mockItems, new(MockCommentService))

		req := httptest.NewRequest(http.MethodPatch, "/items/item-123", strings.NewReader(`{"name":"充電式ドリル"}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		req.Header.Set(UserIDHeader, "owner-123")
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("id")
		c.SetParamValues("item-123")

		err := handler.Update(c)

		require.NoError(t, err)
		var resp ItemResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "充電式ドリル", resp.Name)
	})

	t.Run("所有者以外の更新は404に変換される", func(t *testing.T) {
		mockItems := new(MockItemService)
		mockItems.On("UpdateItem", mock.Anything, mock.AnythingOfType("application.UpdateItemInput")).
			Return(nil, item.ErrItemNotFound)
		handler := NewItemHandler(mockItems, new(MockCommentService))

		req := httptest.NewRequest(http.MethodPatch, "/items/item-123", strings.NewReader(`{"name":"勝手に変更"}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		req.Header.Set(UserIDHeader, "intruder")
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("id")
		c.SetParamValues("item-123")

		err := handler.Update(c)

		require.Error(t, err)
		e.HTTPErrorHandler(err, c)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestItemHandler_GetByID(t *testing.T) {
	e := NewTestEcho()

	t.Run("所有者にはlast/nextが付く", func(t *testing.T) {
		start := time.Date(2024, 6, 2, 10, 0, 0, 0, time.UTC)
		detail := &application.ItemDetail{
			Item: sampleItem(),
			Comments: []*comment.Comment{
				{ID: "c-1", AuthorName: "佐藤花子", Text: "良い品でした"},
			},
			LastBooking: &booking.Booking{ID: "b-last", BookerID: "user-1", Start: start.Add(-48 * time.Hour), End: start.Add(-24 * time.Hour)},
			NextBooking: &booking.Booking{ID: "b-next", BookerID: "user-2", Start: start, End: start.Add(24 * time.Hour)},
		}
		mockItems := new(MockItemService)
		mockItems.On("GetItem", mock.Anything, "owner-123", "item-123").Return(detail, nil)
		handler := NewItemHandler(mockItems, new(MockCommentService))

		req := httptest.NewRequest(http.MethodGet, "/items/item-123", nil)
		req.Header.Set(UserIDHeader, "owner-123")
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("id")
		c.SetParamValues("item-123")

		err := handler.GetByID(c)

		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)

		var resp ItemDetailResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.NotNil(t, resp.LastBooking)
		require.NotNil(t, resp.NextBooking)
		assert.Equal(t, "b-last", resp.LastBooking.ID)
		assert.Equal(t, "b-next", resp.NextBooking.ID)
		assert.Len(t, resp.Comments, 1)
	})

	t.Run("所有者以外にはlast/nextが出力されない", func(t *testing.T) {
		detail := &application.ItemDetail{Item: sampleItem(), Comments: []*comment.Comment{}}
		mockItems := new(MockItemService)
		mockItems.On("GetItem", mock.Anything, "user-2", "item-123").Return(detail, nil)
		handler := NewItemHandler(mockItems, new(MockCommentService))

		req := httptest.NewRequest(http.MethodGet, "/items/item-123", nil)
		req.Header.Set(UserIDHeader, "user-2")
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("id")
		c.SetParamValues("item-123")

		err := handler.GetByID(c)

		require.NoError(t, err)
		assert.NotContains(t, rec.Body.String(), "last_booking")
		assert.NotContains(t, rec.Body.String(), "next_booking")
	})
}

func TestItemHandler_Search(t *testing.T) {
	e := NewTestEcho()

	t.Run("検索結果を返す", func(t *testing.T) {
		mockItems := new(MockItemService)
		mockItems.On("SearchItems", mock.Anything, "ドリル", 0, 10).
			Return([]*item.Item{sampleItem()}, nil)
		handler := NewItemHandler(mockItems, new(MockCommentService))

		req := httptest.NewRequest(http.MethodGet, "/items/search?text="+
			"%E3%83%89%E3%83%AA%E3%83%AB", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := handler.Search(c)

		require.NoError(t, err)
		var resp []ItemResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Len(t, resp, 1)
	})

	t.Run("検索はヘッダーなしでも呼べる", func(t *testing.T) {
		mockItems := new(MockItemService)
		mockItems.On("SearchItems", mock.Anything, "", 0, 10).
			Return([]*item.Item{}, nil)
		handler := NewItemHandler(mockItems, new(MockCommentService))

		req := httptest.NewRequest(http.MethodGet, "/items/search", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := handler.Search(c)

		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestItemHandler_AddComment(t *testing.T) {
	e := NewTestEcho()

	t.Run("コメントを追加できる", func(t *testing.T) {
		mockComments := new(MockCommentService)
		mockComments.On("AddComment", mock.Anything, application.AddCommentInput{
			AuthorID: "user-2", ItemID: "item-123", Text: "とても使いやすかったです",
		}).Return(&comment.Comment{
			ID: "c-1", ItemID: "item-123", AuthorID: "user-2",
			AuthorName: "佐藤花子", Text: "とても使いやすかったです",
		}, nil)
		handler := NewItemHandler(new(MockItemService), mockComments)

		reqBody := `{"text": "とても使いやすかったです"}`
		req := httptest.NewRequest(http.MethodPost, "/items/item-123/comment", strings.NewReader(reqBody))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		req.Header.Set(UserIDHeader, "user-2")
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("id")
		c.SetParamValues("item-123")

		err := handler.AddComment(c)

		require.NoError(t, err)
		assert.Equal(t, http.StatusCreated, rec.Code)

		var resp CommentResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "佐藤花子", resp.AuthorName)
		mockComments.AssertExpectations(t)
	})

	t.Run("完了済み予約がないと400に変換される", func(t *testing.T) {
		mockComments := new(MockCommentService)
		mockComments.On("AddComment", mock.Anything, mock.AnythingOfType("application.AddCommentInput")).
			Return(nil, comment.ErrBookingNotCompleted)
		handler := NewItemHandler(new(MockItemService), mockComments)

		req := httptest.NewRequest(http.MethodPost, "/items/item-123/comment", strings.NewReader(`{"text":"先走りコメント"}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		req.Header.Set(UserIDHeader, "user-2")
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("id")
		c.SetParamValues("item-123")

		err := handler.AddComment(c)

		require.Error(t, err)
		e.HTTPErrorHandler(err, c)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("本文が空だと400", func(t *testing.T) {
		mockComments := new(MockCommentService)
		handler := NewItemHandler(new(MockItemService), mockComments)

		req := httptest.NewRequest(http.MethodPost, "/items/item-123/comment", strings.NewReader(`{"text":""}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		req.Header.Set(UserIDHeader, "user-2")
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("id")
		c.SetParamValues("item-123")

		err := handler.AddComment(c)

		require.Error(t, err)
		var he *echo.HTTPError
		require.ErrorAs(t, err, &he)
		assert.Equal(t, http.StatusBadRequest, he.Code)
		mockComments.AssertNotCalled(t, "AddComment")
	})
}
