// Package httpresp holds the success-side response helpers. Error responses
// live in apperr, keyed by kind.
package httpresp

import "github.com/gin-gonic/gin"

// ListResponse wraps collection payloads so clients always get a total
// alongside the page.
type ListResponse[T any] struct {
	Data  []T `json:"data"`
	Total int `json:"total"`
}

func OK(c *gin.Context, data any) {
	c.JSON(200, data)
}

func Created(c *gin.Context, data any) {
	c.JSON(201, data)
}

func List[T any](c *gin.Context, data []T) {
	c.JSON(200, ListResponse[T]{
		Data:  data,
		Total: len(data),
	})
}
