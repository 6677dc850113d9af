package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"eduplatform/internal/repository"
)

// listParams собирает search/ordering/filter/page из query-параметров запроса.
func (h *Handlers) listParams(r *http.Request, filterParam string) (repository.ListParams, int, int) {
	query := r.URL.Query()

	page, err := strconv.Atoi(query.Get("page"))
	if err != nil || page < 1 {
		page = 1
	}

	pageSize, err := strconv.Atoi(query.Get("page_size"))
	if err != nil || pageSize < 1 {
		pageSize = h.Cfg.PageSize
	}

	params := repository.ListParams{
		Search:   query.Get("search"),
		Ordering: query.Get("ordering"),
		Limit:    pageSize,
		Offset:   (page - 1) * pageSize,
	}

	if filterParam != "" {
		params.FilterID = query.Get(filterParam)
	}

	return params, page, pageSize
}

// pageLinks строит абсолютные ссылки next/previous в стиле постраничного вывода.
func (h *Handlers) pageLinks(r *http.Request, page, pageSize, count int) (*string, *string) {
	buildLink := func(p int) *string {
		u := *r.URL
		values := u.Query()
		values.Set("page", strconv.Itoa(p))
		u.RawQuery = values.Encode()

		link := h.Cfg.BaseURL + u.Path
		if u.RawQuery != "" {
			link = fmt.Sprintf("%s?%s", link, u.RawQuery)
		}
		return &link
	}

	var next, previous *string

	if page*pageSize < count {
		next = buildLink(page + 1)
	}
	if page > 1 {
		previous = buildLink(page - 1)
	}

	return next, previous
}
