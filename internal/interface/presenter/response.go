package presenter

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Envelope は統一レスポンス構造を定義します
// 権限判定APIのレスポンスは常にdataフィールドの下に本体を持つ
type Envelope struct {
	Data interface{} `json:"data"`
}

// OK は成功レスポンスを返します
func OK(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, Envelope{Data: data})
}

// Created は作成成功レスポンスを返します
func Created(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusCreated, Envelope{Data: data})
}

// NoContent はコンテンツなしレスポンスを返します
func NoContent(c echo.Context) error {
	return c.NoContent(http.StatusNoContent)
}
