package public

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// getUserID reads the authenticated user from the request context. The
// zero return means the request is anonymous.
func getUserID(c *gin.Context) (uint, bool) {
	value, ok := c.Get("user_id")
	if !ok {
		return 0, false
	}
	id, ok := value.(uint)
	if !ok || id == 0 {
		return 0, false
	}
	return id, true
}

// sessionID identifies the cart owner: the user when signed in, the
// storefront session header otherwise.
func sessionID(c *gin.Context) string {
	if id, ok := getUserID(c); ok {
		return "user:" + strconv.FormatUint(uint64(id), 10)
	}
	return c.GetHeader("X-Session-ID")
}

func parseUintParam(c *gin.Context, name string) (uint, bool) {
	value, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || value == 0 {
		return 0, false
	}
	return uint(value), true
}

func parsePageQuery(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}
	return page, pageSize
}
