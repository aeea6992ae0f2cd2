package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/amai-mens-care/internal/httperr"
	"github.com/BruksfildServices01/amai-mens-care/internal/timezone"
)

// dateQuery reads an optional YYYY-MM-DD query parameter. An empty value is
// returned as "" with ok true; a malformed one answers 400 and ok is false.
func dateQuery(c *gin.Context, key string) (string, bool) {
	v := c.Query(key)
	if v == "" {
		return "", true
	}
	if _, ok := timezone.ParseDate(v); !ok {
		httperr.Respond(c, httperr.ErrBusiness("invalid_"+key))
		return "", false
	}
	return v, true
}

func paging(c *gin.Context, defLimit, maxLimit int) (page, limit, offset int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}

	limit, _ = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defLimit)))
	if limit <= 0 || limit > maxLimit {
		limit = defLimit
	}

	return page, limit, (page - 1) * limit
}
