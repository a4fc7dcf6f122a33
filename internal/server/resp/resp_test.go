package resp_test

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/Gulrukh07/BeautyShopBooking/internal/server/resp"
)

func paramsFor(t *testing.T, query string) (page, limit, offset int) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/x"+query, nil)
	return resp.PageParams(c)
}

func TestPageParamsDefaults(t *testing.T) {
	page, limit, offset := paramsFor(t, "")
	require.Equal(t, 1, page)
	require.Equal(t, 10, limit)
	require.Equal(t, 0, offset)
}

func TestPageParamsOffsets(t *testing.T) {
	page, limit, offset := paramsFor(t, "?page=3&limit=20")
	require.Equal(t, 3, page)
	require.Equal(t, 20, limit)
	require.Equal(t, 40, offset)
}

func TestPageParamsCapsAndFallbacks(t *testing.T) {
	_, limit, _ := paramsFor(t, "?limit=500")
	require.Equal(t, 100, limit)

	page, limit, _ := paramsFor(t, "?page=-1&limit=abc")
	require.Equal(t, 1, page)
	require.Equal(t, 10, limit)
}

func TestNewPageTotals(t *testing.T) {
	p := resp.NewPage([]int{1, 2, 3}, 2, 10, 23)
	require.Equal(t, 2, p.PageNumber)
	require.Equal(t, 10, p.PageSize)
	require.Equal(t, 23, p.TotalCount)
	require.Equal(t, 3, p.TotalPages)
	require.Equal(t, 23, p.Total)
}
