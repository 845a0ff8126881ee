package handler

import (
	"github.com/rezkam/todo/internal/domain"
	"github.com/rezkam/todo/internal/ptr"
)

// MapItemToDTO converts domain.TodoItem to its wire form.
func MapItemToDTO(item *domain.TodoItem) ItemDTO {
	dto := ItemDTO{
		ID:       item.ID,
		Title:    item.Title,
		Body:     item.Body,
		Status:   int(item.Status),
		CreateAt: Timestamp(item.CreatedAt),
	}
	if item.CompletedAt != nil {
		dto.CompleteAt = ptr.To(Timestamp(*item.CompletedAt))
	}
	return dto
}

// MapPageResultToDTO converts a page of items. Nums and Body are never null.
func MapPageResultToDTO(result *domain.PageResult[domain.TodoItem]) PageResultDTO {
	nums := result.Window.VisiblePageIndices
	if nums == nil {
		nums = []int{}
	}

	body := make([]ItemDTO, 0, len(result.Items))
	for i := range result.Items {
		body = append(body, MapItemToDTO(&result.Items[i]))
	}

	return PageResultDTO{
		Pages: PagesDTO{
			First: result.Window.FirstPageIndex,
			Size:  result.Window.PageSize,
			Last:  result.Window.LastPageIndex,
			Nums:  nums,
		},
		Body: body,
	}
}

// mapPageQuery converts the request body to a service query. The direction
// token is normalized leniently by the caller before this point.
func mapPageQuery(req PageQueryRequest, direction string) domain.PageQuery {
	return domain.PageQuery{
		Page:          req.Page,
		Size:          req.Size,
		SortColumns:   req.SortColumns,
		SortDirection: direction,
		Search:        req.Search,
	}
}
