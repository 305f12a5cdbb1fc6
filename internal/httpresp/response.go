package httpresp

import "github.com/gin-gonic/gin"

type PageResponse struct {
	Items  any    `json:"items"`
	Total  int64  `json:"total"`
	Page   int    `json:"page"`
	Limit  int    `json:"limit"`
	SortBy string `json:"sortBy,omitempty"`
	Order  string `json:"order,omitempty"`
}

func OK(c *gin.Context, data any) {
	c.JSON(200, data)
}

func Created(c *gin.Context, data any) {
	c.JSON(201, data)
}

func Page(c *gin.Context, items any, total int64, page, limit int, sortBy, order string) {
	c.JSON(200, PageResponse{
		Items:  items,
		Total:  total,
		Page:   page,
		Limit:  limit,
		SortBy: sortBy,
		Order:  order,
	})
}
