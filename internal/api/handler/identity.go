package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// UserIDHeader は呼び出し元の利用者IDを運ぶヘッダー
// 認証自体は境界の外側で済んでいる前提で、解決済みのIDだけを受け取る
const UserIDHeader = "X-Sharer-User-Id"

func currentUserID(c echo.Context) (string, error) {
	id := c.Request().Header.Get(UserIDHeader)
	if id == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "ユーザーIDが必要です")
	}
	return id, nil
}
