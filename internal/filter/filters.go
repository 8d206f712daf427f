package filter

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/siahsang/ncnews/internal/apperror"
	"github.com/siahsang/ncnews/internal/utils/collectionutils"
	"github.com/siahsang/ncnews/internal/validator"
)

const (
	DefaultLimit  = 10
	DefaultPage   = 1
	DefaultSortBy = "created_at"
	DefaultOrder  = OrderDesc
)

type Order string

const (
	OrderAsc  Order = "asc"
	OrderDesc Order = "desc"
)

// SortableColumns lists every value accepted by sort_by.
var SortableColumns = []string{
	"created_at",
	"author",
	"title",
	"article_id",
	"topic",
	"votes",
	"article_img_url",
	"comment_count",
}

var (
	articleQueryKeys = collectionutils.SetOf([]string{"topic", "author", "sort_by", "order", "limit", "p"})
	commentQueryKeys = collectionutils.SetOf([]string{"limit", "p"})
)

type Pagination struct {
	Limit int
	Page  int
}

func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}

// ArticleFilter is the validated form of the article listing query string.
// Empty Topic and Author mean no filtering on that column.
type ArticleFilter struct {
	Topic  string
	Author string
	SortBy string
	Order  Order
	Pagination
}

// NewArticleFilter validates query keys, then sort_by, then order, then pagination,
// and stops at the first failure.
func NewArticleFilter(query url.Values) (ArticleFilter, error) {
	if err := checkKeys(query, articleQueryKeys); err != nil {
		return ArticleFilter{}, err
	}

	f := ArticleFilter{
		Topic:  strings.TrimSpace(query.Get("topic")),
		Author: strings.TrimSpace(query.Get("author")),
		SortBy: DefaultSortBy,
		Order:  DefaultOrder,
	}

	if query.Has("sort_by") {
		sortBy := query.Get("sort_by")
		if !validator.PermittedValue(sortBy, SortableColumns...) {
			return ArticleFilter{}, apperror.BadRequest(apperror.MsgInvalidSortBy)
		}
		f.SortBy = sortBy
	}

	if query.Has("order") {
		order := Order(strings.ToLower(query.Get("order")))
		if !validator.PermittedValue(order, OrderAsc, OrderDesc) {
			return ArticleFilter{}, apperror.BadRequest(apperror.MsgInvalidOrder)
		}
		f.Order = order
	}

	pagination, err := newPagination(query)
	if err != nil {
		return ArticleFilter{}, err
	}
	f.Pagination = pagination

	return f, nil
}

// NewCommentPagination validates the query string of a comment listing.
func NewCommentPagination(query url.Values) (Pagination, error) {
	if err := checkKeys(query, commentQueryKeys); err != nil {
		return Pagination{}, err
	}
	return newPagination(query)
}

func checkKeys(query url.Values, allowed map[string]struct{}) error {
	for key := range query {
		if _, ok := allowed[key]; !ok {
			return apperror.BadRequestWithDetails(apperror.MsgInvalidQueryParameter, map[string]string{key: "is not a recognised query parameter"})
		}
	}
	return nil
}

func newPagination(query url.Values) (Pagination, error) {
	v := validator.New()
	p := Pagination{
		Limit: readInt(query, "limit", DefaultLimit, v),
		Page:  readInt(query, "p", DefaultPage, v),
	}

	ValidatePagination(p, v)
	if !v.IsValid() {
		return Pagination{}, apperror.BadRequestWithDetails(apperror.MsgInvalidInput, v.Errors)
	}
	return p, nil
}

func ValidatePagination(p Pagination, v *validator.Validator) {
	v.Check(p.Limit > 0, "limit", "must be greater than 0")
	v.Check(p.Page > 0, "p", "must be greater than 0")
	if p.Limit > 0 && p.Page > 0 {
		// the offset (p-1)*limit must fit in an int
		v.Check(p.Page-1 <= math.MaxInt/p.Limit, "p", "is too large for the given limit")
	}
}

func readInt(query url.Values, key string, defaultValue int, v *validator.Validator) int {
	if !query.Has(key) {
		return defaultValue
	}

	i, err := strconv.Atoi(strings.TrimSpace(query.Get(key)))
	if err != nil {
		v.AddError(key, "must be an integer value")
		return defaultValue
	}
	return i
}
